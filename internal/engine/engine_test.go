package engine

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/engine/estimate"
	"github.com/ai-bridge/backend/internal/engine/spec"
	"github.com/ai-bridge/backend/internal/storage/models"
	"github.com/ai-bridge/backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stdout"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubCatalog struct {
	vendors []models.VendorRecord
	err     error
}

func (s *stubCatalog) ListVendors(ctx context.Context) ([]models.VendorRecord, error) {
	return s.vendors, s.err
}

func testVendors() []models.VendorRecord {
	return []models.VendorRecord{
		{
			ID:          "v-one",
			Name:        "One Systems",
			Industries:  []string{"manufacturing"},
			Specialties: []string{"quality_inspection", "predictive_maintenance"},
			PriceMin:    3_000_000,
			PriceMax:    20_000_000,
			Rating:      4.5,
			ReviewCount: 40,
		},
		{
			ID:          "v-two",
			Name:        "Two Consulting",
			Industries:  []string{"retail"},
			Specialties: []string{"demand_forecast"},
			PriceMin:    1_000_000,
			PriceMax:    8_000_000,
			Rating:      3.8,
			ReviewCount: 12,
		},
	}
}

func newTestEngine(catalog CatalogProvider) *Engine {
	return NewEngine(estimate.DefaultTable(), spec.DefaultSections(), catalog)
}

func TestSnapshotEmptySession(t *testing.T) {
	eng := newTestEngine(&stubCatalog{vendors: testVendors()})

	snap, err := eng.Snapshot(context.Background(), answers.NewSet())
	require.NoError(t, err)

	assert.Equal(t, 30, snap.Estimate.ConfidenceLevel)
	assert.Equal(t, 0, snap.Document.CompletionRate)
	assert.Len(t, snap.Matches, 2)
	// With nothing answered every vendor scores only its reputation slice.
	for _, m := range snap.Matches {
		assert.LessOrEqual(t, m.MatchScore, 20)
	}
}

func TestSnapshotRecomputesFromAnswers(t *testing.T) {
	eng := newTestEngine(&stubCatalog{vendors: testVendors()})
	set := answers.NewSet()
	set.Put(answers.Answer{
		QuestionID: answers.QIndustry,
		Value:      answers.Value{Kind: answers.KindCategory, Category: "manufacturing"},
	})
	set.Put(answers.Answer{
		QuestionID: answers.QUseCases,
		Value:      answers.Value{Kind: answers.KindCategorySet, Categories: []string{"quality_inspection"}},
	})

	snap, err := eng.Snapshot(context.Background(), set)
	require.NoError(t, err)

	require.Len(t, snap.Matches, 2)
	assert.Equal(t, "v-one", snap.Matches[0].VendorID)
	assert.Greater(t, snap.Matches[0].MatchScore, snap.Matches[1].MatchScore)
	assert.Greater(t, snap.Estimate.TotalMax, snap.Estimate.TotalMin)
	assert.Equal(t, 44, snap.Estimate.ConfidenceLevel)
}

func TestSnapshotFallsBackToProblemText(t *testing.T) {
	eng := newTestEngine(&stubCatalog{vendors: testVendors()})
	set := answers.NewSet()
	set.Put(answers.Answer{
		QuestionID: answers.QProblem,
		Value:      answers.Value{Kind: answers.KindText, Text: "Visual defect inspection on the production line is too slow"},
	})

	snap, err := eng.Snapshot(context.Background(), set)
	require.NoError(t, err)

	// Tags extracted from the problem text should lift the specialist
	// vendor above the rest even before any use case is selected.
	require.Len(t, snap.Matches, 2)
	assert.Equal(t, "v-one", snap.Matches[0].VendorID)
	assert.Greater(t, snap.Matches[0].MatchScore, snap.Matches[1].MatchScore)
}

func TestSnapshotCatalogFailure(t *testing.T) {
	eng := newTestEngine(&stubCatalog{err: errors.New("catalog offline")})

	_, err := eng.Snapshot(context.Background(), answers.NewSet())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog offline")
}

func TestSectionsReturnsCopy(t *testing.T) {
	eng := newTestEngine(&stubCatalog{vendors: testVendors()})

	sections := eng.Sections()
	require.NotEmpty(t, sections)
	sections[0].ID = "mutated"

	assert.NotEqual(t, "mutated", eng.Sections()[0].ID)
}
