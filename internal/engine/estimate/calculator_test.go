package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-bridge/backend/internal/engine/answers"
)

func category(questionID, code string) answers.Answer {
	return answers.Answer{
		QuestionID: questionID,
		Value:      answers.Value{Kind: answers.KindCategory, Category: code},
	}
}

func categorySet(questionID string, codes ...string) answers.Answer {
	return answers.Answer{
		QuestionID: questionID,
		Value:      answers.Value{Kind: answers.KindCategorySet, Categories: codes},
	}
}

func boolean(questionID string, v bool) answers.Answer {
	return answers.Answer{
		QuestionID: questionID,
		Value:      answers.Value{Kind: answers.KindBool, Flag: &v},
	}
}

func text(questionID, v string) answers.Answer {
	return answers.Answer{
		QuestionID: questionID,
		Value:      answers.Value{Kind: answers.KindText, Text: v},
	}
}

func TestEstimateEmptyAnswerSet(t *testing.T) {
	est := Estimate(answers.NewSet(), DefaultTable())

	require.Equal(t, 30, est.ConfidenceLevel)
	require.Len(t, est.Breakdown, 4)

	assert.Equal(t, int64(3_000_000), est.TotalMin)
	assert.Equal(t, int64(21_500_000), est.TotalMax)
	assert.Empty(t, est.Factors)

	require.Len(t, est.Comparisons, 1)
	assert.Equal(t, "overall", est.Comparisons[0].Industry)
}

func TestEstimateManufacturingWithBudget(t *testing.T) {
	set := answers.NewSet()
	set.Put(category(answers.QIndustry, "manufacturing"))
	set.Put(categorySet(answers.QUseCases, "quality_inspection"))
	set.Put(category(answers.QBudget, "3m-5m"))

	est := Estimate(set, DefaultTable())

	// Three answered questions above the floor.
	require.Equal(t, 30+3*7, est.ConfidenceLevel)

	// The computed range must intersect the selected budget band.
	assert.LessOrEqual(t, est.TotalMin, int64(5_000_000))
	assert.GreaterOrEqual(t, est.TotalMax, int64(3_000_000))
	assert.Contains(t, est.Factors, FactorBudgetNarrowed)

	require.Len(t, est.Comparisons, 2)
	assert.Equal(t, "manufacturing", est.Comparisons[0].Industry)
	assert.Equal(t, "overall", est.Comparisons[1].Industry)
}

func TestEstimateTotalsReconcileWithBreakdown(t *testing.T) {
	cases := []struct {
		name string
		set  answers.Set
	}{
		{name: "empty", set: answers.NewSet()},
		{name: "full", set: fullAnswerSet()},
		{name: "unknown codes", set: unknownCodeSet()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est := Estimate(tc.set, DefaultTable())

			var sumMin, sumMax int64
			for _, item := range est.Breakdown {
				assert.GreaterOrEqual(t, item.MinCost, int64(0))
				assert.LessOrEqual(t, item.MinCost, item.MaxCost)
				assert.Zero(t, item.MinCost%10_000)
				assert.Zero(t, item.MaxCost%10_000)
				sumMin += item.MinCost
				sumMax += item.MaxCost
			}
			assert.Equal(t, sumMin, est.TotalMin)
			assert.Equal(t, sumMax, est.TotalMax)
			assert.LessOrEqual(t, est.TotalMin, est.TotalMax)
		})
	}
}

func TestEstimateConfidenceMonotonic(t *testing.T) {
	set := answers.NewSet()
	previous := Estimate(set, DefaultTable()).ConfidenceLevel
	require.Equal(t, 30, previous)

	steps := []answers.Answer{
		category(answers.QIndustry, "retail"),
		categorySet(answers.QUseCases, "demand_forecast"),
		text(answers.QProblem, "We want to forecast store demand"),
		category(answers.QDataReadiness, "partial"),
		category(answers.QITStaffing, "some_staff"),
		boolean(answers.QIntegration, true),
		categorySet(answers.QSecurity, "pii_handling"),
		category(answers.QBudget, "5m-10m"),
		category(answers.QTimeline, "within_6_months"),
	}

	for _, step := range steps {
		set.Put(step)
		level := Estimate(set, DefaultTable()).ConfidenceLevel
		assert.GreaterOrEqual(t, level, previous)
		assert.LessOrEqual(t, level, 95)
		previous = level
	}
}

func TestEstimateSecurityRaisesDevAndInfra(t *testing.T) {
	set := answers.NewSet()
	set.Put(category(answers.QIndustry, "manufacturing"))
	set.Put(categorySet(answers.QUseCases, "quality_inspection"))

	before := Estimate(set, DefaultTable())

	set.Put(categorySet(answers.QSecurity, "onpremise_required"))
	after := Estimate(set, DefaultTable())

	require.Contains(t, after.Factors, FactorSecurityPremium)

	assert.Greater(t, byCategory(t, after, CategoryDevelopment).MaxCost, byCategory(t, before, CategoryDevelopment).MaxCost)
	assert.Greater(t, byCategory(t, after, CategoryInfrastructure).MaxCost, byCategory(t, before, CategoryInfrastructure).MaxCost)

	// Other categories never decrease.
	assert.GreaterOrEqual(t, byCategory(t, after, CategoryIntegration).MaxCost, byCategory(t, before, CategoryIntegration).MaxCost)
	assert.GreaterOrEqual(t, byCategory(t, after, CategorySupport).MaxCost, byCategory(t, before, CategorySupport).MaxCost)
}

func TestEstimateSecurityWithBudgetLeavesOthersAlone(t *testing.T) {
	set := answers.NewSet()
	set.Put(category(answers.QIndustry, "manufacturing"))
	set.Put(categorySet(answers.QUseCases, "quality_inspection"))
	set.Put(category(answers.QBudget, "3m-5m"))

	before := Estimate(set, DefaultTable())

	set.Put(categorySet(answers.QSecurity, "onpremise_required"))
	after := Estimate(set, DefaultTable())

	require.Contains(t, after.Factors, FactorSecurityPremium)
	require.Contains(t, after.Factors, FactorBudgetNarrowed)

	// The clamp runs on the base ranges, so the premium still shows up on
	// development and infrastructure maxima.
	assert.Greater(t, byCategory(t, after, CategoryDevelopment).MaxCost, byCategory(t, before, CategoryDevelopment).MaxCost)
	assert.Greater(t, byCategory(t, after, CategoryInfrastructure).MaxCost, byCategory(t, before, CategoryInfrastructure).MaxCost)

	// Integration and support are untouched by the premium even with the
	// budget band present.
	assert.Equal(t, byCategory(t, before, CategoryIntegration), byCategory(t, after, CategoryIntegration))
	assert.Equal(t, byCategory(t, before, CategorySupport), byCategory(t, after, CategorySupport))
	assert.Equal(t, int64(680_000), byCategory(t, after, CategoryIntegration).MaxCost)
	assert.Equal(t, int64(470_000), byCategory(t, after, CategorySupport).MaxCost)
}

func byCategory(t *testing.T, est CostEstimate, cat Category) BreakdownItem {
	t.Helper()
	for _, item := range est.Breakdown {
		if item.Category == cat {
			return item
		}
	}
	t.Fatalf("category %s not found", cat)
	return BreakdownItem{}
}

func TestEstimateDisjointBudgetKeepsRange(t *testing.T) {
	set := answers.NewSet()
	set.Put(category(answers.QIndustry, "manufacturing"))
	set.Put(categorySet(answers.QUseCases, "supply_chain_optimization"))
	set.Put(category(answers.QBudget, "under_500k"))

	withBudget := Estimate(set, DefaultTable())

	set.Remove(answers.QBudget)
	withoutBudget := Estimate(set, DefaultTable())

	assert.Equal(t, withoutBudget.TotalMin, withBudget.TotalMin)
	assert.Equal(t, withoutBudget.TotalMax, withBudget.TotalMax)
	assert.Contains(t, withBudget.Factors, FactorBudgetMismatch)
	assert.NotContains(t, withBudget.Factors, FactorBudgetNarrowed)
}

func TestEstimateIntegrationAddsLineItem(t *testing.T) {
	set := answers.NewSet()
	set.Put(boolean(answers.QIntegration, true))

	est := Estimate(set, DefaultTable())

	require.Len(t, est.Breakdown, 5)
	assert.Contains(t, est.Factors, FactorIntegrationScope)

	integrationItems := 0
	for _, item := range est.Breakdown {
		if item.Category == CategoryIntegration {
			integrationItems++
		}
	}
	assert.Equal(t, 2, integrationItems)
}

func TestEstimateUrgentTimelinePremium(t *testing.T) {
	set := answers.NewSet()
	set.Put(category(answers.QIndustry, "logistics"))
	set.Put(categorySet(answers.QUseCases, "demand_forecast"))

	relaxed := Estimate(set, DefaultTable())

	set.Put(category(answers.QTimeline, "within_3_months"))
	urgent := Estimate(set, DefaultTable())

	assert.Contains(t, urgent.Factors, FactorRushDelivery)
	assert.Greater(t, urgent.TotalMax, relaxed.TotalMax)
}

func TestEstimateUnknownCodesFailClosed(t *testing.T) {
	est := Estimate(unknownCodeSet(), DefaultTable())

	// Unknown industry and use case degrade to the wide fallback range.
	fallback := Estimate(answers.NewSet(), DefaultTable())
	assert.Equal(t, fallback.TotalMin, est.TotalMin)
	assert.Equal(t, fallback.TotalMax, est.TotalMax)

	// Answered questions still count toward confidence.
	assert.Equal(t, 30+2*7, est.ConfidenceLevel)
}

func TestEstimateRoundsToTenThousand(t *testing.T) {
	table := &RateTable{
		Base: map[string]map[int]CategoryRanges{
			FallbackIndustry: {
				FallbackTier: {
					CategoryDevelopment:    {Min: 123_456, Max: 987_654},
					CategoryIntegration:    {Min: 4_999, Max: 5_000},
					CategoryInfrastructure: {Min: 0, Max: 0},
					CategorySupport:        {Min: 15_000, Max: 15_000},
				},
			},
		},
	}
	require.NoError(t, table.Validate())

	est := Estimate(answers.NewSet(), table)

	assert.Equal(t, int64(120_000), est.Breakdown[0].MinCost)
	assert.Equal(t, int64(990_000), est.Breakdown[0].MaxCost)
	assert.Equal(t, int64(0), est.Breakdown[1].MinCost)
	assert.Equal(t, int64(10_000), est.Breakdown[1].MaxCost)
	assert.Equal(t, int64(20_000), est.Breakdown[3].MinCost)
	assert.Equal(t, int64(20_000), est.Breakdown[3].MaxCost)
}

func fullAnswerSet() answers.Set {
	set := answers.NewSet()
	set.Put(category(answers.QIndustry, "finance"))
	set.Put(categorySet(answers.QUseCases, "sales_analytics", "realtime_monitoring"))
	set.Put(text(answers.QProblem, "Fraud monitoring across branch systems"))
	set.Put(category(answers.QDataReadiness, "scattered"))
	set.Put(category(answers.QITStaffing, "dedicated_team"))
	set.Put(boolean(answers.QIntegration, true))
	set.Put(categorySet(answers.QSecurity, "pii_handling", "certification_required"))
	set.Put(category(answers.QBudget, "5m-10m"))
	set.Put(category(answers.QTimeline, "within_3_months"))
	return set
}

func unknownCodeSet() answers.Set {
	set := answers.NewSet()
	set.Put(category(answers.QIndustry, "space_mining"))
	set.Put(categorySet(answers.QUseCases, "teleportation"))
	return set
}
