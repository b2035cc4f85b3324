package estimate

import (
	"math"

	"github.com/ai-bridge/backend/internal/engine/answers"
)

const (
	confidenceFloor     = 30
	confidencePerAnswer = 7
	confidenceCap       = 95

	roundingUnit = 10_000
)

// Factor codes surfaced alongside an estimate for transparency. Stable
// machine codes; display text is the export layer's concern.
const (
	FactorSecurityPremium  = "security_premium"
	FactorRushDelivery     = "rush_delivery_premium"
	FactorDataPreparation  = "data_preparation_premium"
	FactorIntegrationScope = "integration_scope_added"
	FactorBudgetNarrowed   = "budget_band_narrowed"
	FactorBudgetMismatch   = "budget_band_mismatch"
)

type BreakdownItem struct {
	Category    Category `json:"category"`
	Label       string   `json:"label"`
	MinCost     int64    `json:"min_cost"`
	MaxCost     int64    `json:"max_cost"`
	Description string   `json:"description"`
}

type IndustryComparison struct {
	Industry string `json:"industry"`
	AvgCost  int64  `json:"avg_cost"`
}

type CostEstimate struct {
	TotalMin        int64                `json:"total_min"`
	TotalMax        int64                `json:"total_max"`
	Breakdown       []BreakdownItem      `json:"breakdown"`
	ConfidenceLevel int                  `json:"confidence_level"`
	Comparisons     []IndustryComparison `json:"comparisons"`
	Factors         []string             `json:"factors"`
}

var categoryLabels = map[Category]string{
	CategoryDevelopment:    "Development",
	CategoryIntegration:    "Integration",
	CategoryInfrastructure: "Infrastructure",
	CategorySupport:        "Support",
}

var categoryDescriptions = map[Category]string{
	CategoryDevelopment:    "Model and application development",
	CategoryIntegration:    "Connecting to existing systems and data sources",
	CategoryInfrastructure: "Compute, hosting and operations setup",
	CategorySupport:        "Training, rollout and first-year support",
}

// useCaseTiers is the ordinal complexity classification behind base range
// selection. Unknown codes carry no tier and fail closed to the fallback.
var useCaseTiers = map[string]int{
	"chatbot":                   1,
	"document_automation":       1,
	"faq_support":               1,
	"demand_forecast":           2,
	"predictive_maintenance":    2,
	"sales_analytics":           2,
	"quality_inspection":        3,
	"image_recognition":         3,
	"realtime_monitoring":       3,
	"supply_chain_optimization": 4,
	"dynamic_pricing":           4,
	"multi_system_optimization": 4,
}

// primaryTier picks the most demanding tier among the selected use cases,
// since the hardest use case dominates cost. No recognized use case means
// the wide fallback tier.
func primaryTier(set answers.Set) int {
	tier := FallbackTier
	for _, code := range set.Categories(answers.QUseCases) {
		if t, ok := useCaseTiers[code]; ok && t > tier {
			tier = t
		}
	}
	return tier
}

// workItem carries unrounded costs through the adjustment pipeline.
type workItem struct {
	category    Category
	label       string
	description string
	min, max    float64
}

// Estimate derives a cost range with a category breakdown from the current
// answer set. Pure and total: any answer set, including an empty one,
// produces a valid estimate. Recomputed from scratch on every call.
func Estimate(set answers.Set, rates *RateTable) CostEstimate {
	industry := set.Category(answers.QIndustry)
	tier := primaryTier(set)
	base := rates.lookup(industry, tier)

	items := make([]workItem, 0, len(categoryOrder)+1)
	for _, cat := range categoryOrder {
		r := base[cat]
		items = append(items, workItem{
			category:    cat,
			label:       categoryLabels[cat],
			description: categoryDescriptions[cat],
			min:         float64(r.Min),
			max:         float64(r.Max),
		})
	}

	var factors []string

	// The budget clamp narrows the base ranges before any adjustment
	// factor applies, so a factor on one category can never shrink the
	// others through rescaling.
	items, budgetFactor := applyBudgetClamp(set, items)
	if budgetFactor != "" {
		factors = append(factors, budgetFactor)
	}

	if answers.SecurityRequired(set) {
		for i := range items {
			if items[i].category == CategoryDevelopment || items[i].category == CategoryInfrastructure {
				items[i].min *= 1.10
				items[i].max *= 1.20
			}
		}
		factors = append(factors, FactorSecurityPremium)
	}

	if answers.UrgentTimeline(set) {
		for i := range items {
			if items[i].category == CategoryDevelopment {
				items[i].min *= 1.15
				items[i].max *= 1.15
			}
		}
		factors = append(factors, FactorRushDelivery)
	}

	switch set.Category(answers.QDataReadiness) {
	case "scattered", "none":
		for i := range items {
			if items[i].category == CategoryDevelopment {
				items[i].min *= 1.05
				items[i].max *= 1.15
			}
		}
		factors = append(factors, FactorDataPreparation)
	}

	if needsIntegration, ok := set.Bool(answers.QIntegration); ok && needsIntegration {
		items = append(items, workItem{
			category:    CategoryIntegration,
			label:       "External system integration",
			description: "Dedicated work to connect surrounding business systems",
			min:         500_000,
			max:         1_500_000,
		})
		factors = append(factors, FactorIntegrationScope)
	}

	breakdown := make([]BreakdownItem, 0, len(items))
	var totalMin, totalMax int64
	for _, it := range items {
		minCost := roundToUnit(it.min)
		maxCost := roundToUnit(it.max)
		if maxCost < minCost {
			maxCost = minCost
		}
		breakdown = append(breakdown, BreakdownItem{
			Category:    it.category,
			Label:       it.label,
			MinCost:     minCost,
			MaxCost:     maxCost,
			Description: it.description,
		})
		totalMin += minCost
		totalMax += maxCost
	}

	return CostEstimate{
		TotalMin:        totalMin,
		TotalMax:        totalMax,
		Breakdown:       breakdown,
		ConfidenceLevel: confidence(set),
		Comparisons:     comparisons(industry, rates),
		Factors:         factors,
	}
}

// applyBudgetClamp narrows the computed range toward its intersection with
// the selected budget band by scaling every item proportionally. A band
// with no overlap leaves the range untouched and reports the mismatch.
func applyBudgetClamp(set answers.Set, items []workItem) ([]workItem, string) {
	bandMin, bandMax, ok := answers.BudgetRange(set.Category(answers.QBudget))
	if !ok {
		return items, ""
	}

	var totalMin, totalMax float64
	for _, it := range items {
		totalMin += it.min
		totalMax += it.max
	}
	if totalMin == 0 || totalMax == 0 {
		return items, ""
	}

	if float64(bandMax) < totalMin || float64(bandMin) > totalMax {
		return items, FactorBudgetMismatch
	}

	targetMin := math.Max(totalMin, float64(bandMin))
	targetMax := math.Min(totalMax, float64(bandMax))
	scaleMin := targetMin / totalMin
	scaleMax := targetMax / totalMax
	if scaleMin == 1 && scaleMax == 1 {
		return items, ""
	}

	for i := range items {
		items[i].min *= scaleMin
		items[i].max *= scaleMax
		if items[i].max < items[i].min {
			items[i].max = items[i].min
		}
	}
	return items, FactorBudgetNarrowed
}

func confidence(set answers.Set) int {
	level := confidenceFloor + confidencePerAnswer*set.AnsweredCount()
	if level > confidenceCap {
		level = confidenceCap
	}
	return level
}

// comparisons looks up the static industry-average rows: the selected
// industry first when known, then the overall average.
func comparisons(industry string, rates *RateTable) []IndustryComparison {
	out := make([]IndustryComparison, 0, 2)
	if industry != "" && industry != "overall" {
		if avg, ok := rates.average(industry); ok {
			out = append(out, IndustryComparison{Industry: avg.Industry, AvgCost: avg.AvgCost})
		}
	}
	if avg, ok := rates.average("overall"); ok {
		out = append(out, IndustryComparison{Industry: avg.Industry, AvgCost: avg.AvgCost})
	}
	return out
}

// roundToUnit rounds half-up to the nearest rounding unit, clamping
// negatives to zero.
func roundToUnit(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Floor(v/roundingUnit+0.5)) * roundingUnit
}
