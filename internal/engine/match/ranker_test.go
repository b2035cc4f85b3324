package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/storage/models"
)

func answerSet(industry, budget string, useCases ...string) answers.Set {
	set := answers.NewSet()
	if industry != "" {
		set.Put(answers.Answer{
			QuestionID: answers.QIndustry,
			Value:      answers.Value{Kind: answers.KindCategory, Category: industry},
		})
	}
	if budget != "" {
		set.Put(answers.Answer{
			QuestionID: answers.QBudget,
			Value:      answers.Value{Kind: answers.KindCategory, Category: budget},
		})
	}
	if len(useCases) > 0 {
		set.Put(answers.Answer{
			QuestionID: answers.QUseCases,
			Value:      answers.Value{Kind: answers.KindCategorySet, Categories: useCases},
		})
	}
	return set
}

func vendor(id string, industries, specialties []string, priceMin, priceMax int64, rating float64, reviews int) models.VendorRecord {
	return models.VendorRecord{
		ID:          id,
		Name:        id,
		Industries:  industries,
		Specialties: specialties,
		PriceMin:    priceMin,
		PriceMax:    priceMax,
		Rating:      rating,
		ReviewCount: reviews,
	}
}

func TestRankScoreComponents(t *testing.T) {
	set := answerSet("manufacturing", "3m-5m", "quality_inspection", "image_recognition")

	catalog := []models.VendorRecord{
		vendor("v-full", []string{"manufacturing"}, []string{"quality_inspection", "image_recognition"}, 3_000_000, 20_000_000, 5.0, 50),
	}

	matches := Rank(set, catalog)
	require.Len(t, matches, 1)

	// 35 industry + 35 full overlap + 20 budget + 10 reputation.
	assert.Equal(t, 100, matches[0].MatchScore)
	assert.Equal(t, []string{
		StrengthIndustryExpertise,
		StrengthUseCaseFit,
		StrengthBudgetFit,
		StrengthTrackRecord,
	}, matches[0].Strengths)
	assert.ElementsMatch(t, []string{"quality_inspection", "image_recognition"}, matches[0].SpecialtiesOverlap)
}

func TestRankPartialOverlapRoundsDown(t *testing.T) {
	set := answerSet("", "", "chatbot", "faq_support", "demand_forecast")

	catalog := []models.VendorRecord{
		vendor("v-one", nil, []string{"chatbot"}, 0, 0, 0, 0),
	}

	matches := Rank(set, catalog)
	require.Len(t, matches, 1)

	// floor(1/3 * 35) = 11, plus the neutral budget credit.
	assert.Equal(t, 11+10, matches[0].MatchScore)
	assert.Equal(t, []string{"chatbot"}, matches[0].SpecialtiesOverlap)
}

func TestRankGeneralistCredit(t *testing.T) {
	set := answerSet("finance", "")

	catalog := []models.VendorRecord{
		vendor("v-generalist", []string{"other"}, nil, 0, 0, 0, 0),
		vendor("v-unrelated", []string{"retail"}, nil, 0, 0, 0, 0),
	}

	matches := Rank(set, catalog)
	require.Len(t, matches, 2)

	assert.Equal(t, "v-generalist", matches[0].VendorID)
	assert.Equal(t, 15+10, matches[0].MatchScore)
	assert.Equal(t, 0+10, matches[1].MatchScore)
}

func TestRankMismatchedVendorScoresReputationOnly(t *testing.T) {
	set := answerSet("manufacturing", "", "quality_inspection")

	catalog := []models.VendorRecord{
		vendor("v-off", []string{"finance"}, nil, 0, 0, 4.0, 10),
	}

	matches := Rank(set, catalog)
	require.Len(t, matches, 1)

	// No industry or use-case credit: neutral budget plus floor(4/5*10).
	assert.Equal(t, 10+8, matches[0].MatchScore)
	assert.Empty(t, matches[0].Strengths)
	assert.Empty(t, matches[0].SpecialtiesOverlap)
}

func TestRankBudgetFalloff(t *testing.T) {
	// Band 1m-3m has width 2m; falloff reaches zero at twice the width.
	cases := []struct {
		name     string
		priceMin int64
		priceMax int64
		want     int
	}{
		{name: "intersecting", priceMin: 2_000_000, priceMax: 8_000_000, want: 20},
		{name: "gap within falloff", priceMin: 5_200_000, priceMax: 9_000_000, want: 9},
		{name: "gap beyond falloff", priceMin: 8_000_000, priceMax: 9_000_000, want: 0},
		{name: "below band within falloff", priceMin: 100_000, priceMax: 600_000, want: 18},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := answerSet("", "1m-3m")
			catalog := []models.VendorRecord{
				vendor("v", nil, nil, tc.priceMin, tc.priceMax, 0, 0),
			}
			matches := Rank(set, catalog)
			require.Len(t, matches, 1)
			assert.Equal(t, tc.want, matches[0].MatchScore)
		})
	}
}

func TestRankDeterministicTieBreaks(t *testing.T) {
	set := answerSet("manufacturing", "")

	// All four vendors score identically on every component.
	catalog := []models.VendorRecord{
		vendor("v-delta", []string{"manufacturing"}, nil, 0, 0, 4.0, 10),
		vendor("v-alpha", []string{"manufacturing"}, nil, 0, 0, 4.0, 10),
		vendor("v-rated", []string{"manufacturing"}, nil, 0, 0, 4.4, 5),
		vendor("v-reviewed", []string{"manufacturing"}, nil, 0, 0, 4.0, 90),
	}

	matches := Rank(set, catalog)
	require.Len(t, matches, 4)

	// Same score: higher rating first, then review count, then vendor id.
	assert.Equal(t, "v-rated", matches[0].VendorID)
	assert.Equal(t, "v-reviewed", matches[1].VendorID)
	assert.Equal(t, "v-alpha", matches[2].VendorID)
	assert.Equal(t, "v-delta", matches[3].VendorID)

	again := Rank(set, catalog)
	assert.Equal(t, matches, again)
}

func TestRankScoresStayInBounds(t *testing.T) {
	set := answerSet("manufacturing", "3m-5m", "quality_inspection")

	catalog := []models.VendorRecord{
		vendor("v-huge", []string{"manufacturing"}, []string{"quality_inspection"}, 0, 50_000_000, 9.9, 1000),
		vendor("v-broken", nil, nil, -5, -1, -3.0, -10),
	}

	matches := Rank(set, catalog)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.MatchScore, 0)
		assert.LessOrEqual(t, m.MatchScore, 100)
	}
}

func TestRankWithFallbackTags(t *testing.T) {
	set := answerSet("", "")

	catalog := []models.VendorRecord{
		vendor("v-cv", nil, []string{"quality_inspection"}, 0, 0, 0, 0),
	}

	withoutTags := Rank(set, catalog)
	withTags := RankWithFallbackTags(set, []string{"quality_inspection"}, catalog)

	require.Len(t, withoutTags, 1)
	require.Len(t, withTags, 1)
	assert.Greater(t, withTags[0].MatchScore, withoutTags[0].MatchScore)
}

func TestRankEmptyCatalog(t *testing.T) {
	matches := Rank(answers.NewSet(), nil)
	assert.Empty(t, matches)
}
