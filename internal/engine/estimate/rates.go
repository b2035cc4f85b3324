package estimate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidRateTable marks structural problems in a configured rate table.
// These are data-authoring bugs and are rejected once at load time.
var ErrInvalidRateTable = errors.New("invalid rate table")

type Category string

const (
	CategoryDevelopment    Category = "development"
	CategoryIntegration    Category = "integration"
	CategoryInfrastructure Category = "infrastructure"
	CategorySupport        Category = "support"
)

// categoryOrder fixes the breakdown order so estimates are reproducible.
var categoryOrder = []Category{
	CategoryDevelopment,
	CategoryIntegration,
	CategoryInfrastructure,
	CategorySupport,
}

type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type CategoryRanges map[Category]Range

// FallbackIndustry is the lowest-information industry row. Unknown industry
// codes resolve here rather than failing.
const FallbackIndustry = "other"

// FallbackTier is the "no answer yet" complexity tier with the widest ranges.
const FallbackTier = 0

// RateTable is the calibration table behind cost estimation: base cost
// ranges keyed by (industry, use-case complexity tier), plus the static
// industry-average comparison rows.
type RateTable struct {
	Base     map[string]map[int]CategoryRanges `json:"base"`
	Averages []IndustryAverage                 `json:"averages"`
}

type IndustryAverage struct {
	Industry string `json:"industry"`
	AvgCost  int64  `json:"avg_cost"`
}

// Validate rejects structurally broken tables: negative costs, min above
// max, or a missing fallback row. Called once when configuration is loaded.
func (t *RateTable) Validate() error {
	if t == nil || len(t.Base) == 0 {
		return fmt.Errorf("%w: empty base table", ErrInvalidRateTable)
	}
	fallback, ok := t.Base[FallbackIndustry]
	if !ok {
		return fmt.Errorf("%w: missing industry %q", ErrInvalidRateTable, FallbackIndustry)
	}
	if _, ok := fallback[FallbackTier]; !ok {
		return fmt.Errorf("%w: industry %q missing tier %d", ErrInvalidRateTable, FallbackIndustry, FallbackTier)
	}
	for industry, tiers := range t.Base {
		for tier, ranges := range tiers {
			for _, cat := range categoryOrder {
				r, ok := ranges[cat]
				if !ok {
					return fmt.Errorf("%w: %s/tier %d missing category %s", ErrInvalidRateTable, industry, tier, cat)
				}
				if r.Min < 0 || r.Min > r.Max {
					return fmt.Errorf("%w: %s/tier %d/%s has min %d > max %d", ErrInvalidRateTable, industry, tier, cat, r.Min, r.Max)
				}
			}
		}
	}
	for _, avg := range t.Averages {
		if avg.AvgCost < 0 {
			return fmt.Errorf("%w: negative average for industry %q", ErrInvalidRateTable, avg.Industry)
		}
	}
	return nil
}

// lookup resolves the base ranges for an industry and tier, degrading to the
// fallback industry and then the fallback tier. Validate guarantees the
// final fallback exists.
func (t *RateTable) lookup(industry string, tier int) CategoryRanges {
	tiers, ok := t.Base[industry]
	if !ok {
		tiers = t.Base[FallbackIndustry]
	}
	ranges, ok := tiers[tier]
	if !ok {
		ranges, ok = tiers[FallbackTier]
		if !ok {
			ranges = t.Base[FallbackIndustry][FallbackTier]
		}
	}
	return ranges
}

// average returns the comparison row for an industry.
func (t *RateTable) average(industry string) (IndustryAverage, bool) {
	for _, avg := range t.Averages {
		if avg.Industry == industry {
			return avg, true
		}
	}
	return IndustryAverage{}, false
}

// LoadTable reads a rate table override from a JSON file and validates it.
func LoadTable(path string) (*RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table: %w", err)
	}
	var table RateTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse rate table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// tierRanges is the calibration baseline per complexity tier, before the
// per-industry cost factor is applied. Tier 0 is the wide "no answer yet"
// range.
var tierRanges = map[int]CategoryRanges{
	0: {
		CategoryDevelopment:    {Min: 2_000_000, Max: 15_000_000},
		CategoryIntegration:    {Min: 500_000, Max: 3_000_000},
		CategoryInfrastructure: {Min: 300_000, Max: 2_000_000},
		CategorySupport:        {Min: 200_000, Max: 1_500_000},
	},
	1: {
		CategoryDevelopment:    {Min: 1_500_000, Max: 4_000_000},
		CategoryIntegration:    {Min: 300_000, Max: 1_000_000},
		CategoryInfrastructure: {Min: 200_000, Max: 800_000},
		CategorySupport:        {Min: 150_000, Max: 600_000},
	},
	2: {
		CategoryDevelopment:    {Min: 2_200_000, Max: 7_000_000},
		CategoryIntegration:    {Min: 400_000, Max: 1_600_000},
		CategoryInfrastructure: {Min: 300_000, Max: 1_200_000},
		CategorySupport:        {Min: 250_000, Max: 1_000_000},
	},
	3: {
		CategoryDevelopment:    {Min: 2_800_000, Max: 9_000_000},
		CategoryIntegration:    {Min: 400_000, Max: 2_000_000},
		CategoryInfrastructure: {Min: 400_000, Max: 2_400_000},
		CategorySupport:        {Min: 300_000, Max: 1_400_000},
	},
	4: {
		CategoryDevelopment:    {Min: 5_000_000, Max: 16_000_000},
		CategoryIntegration:    {Min: 1_000_000, Max: 3_500_000},
		CategoryInfrastructure: {Min: 800_000, Max: 3_600_000},
		CategorySupport:        {Min: 500_000, Max: 2_000_000},
	},
}

var industryFactors = map[string]float64{
	"manufacturing":  1.10,
	"retail":         0.95,
	"finance":        1.25,
	"healthcare":     1.20,
	"logistics":      1.00,
	FallbackIndustry: 1.00,
}

var defaultAverages = []IndustryAverage{
	{Industry: "manufacturing", AvgCost: 8_500_000},
	{Industry: "retail", AvgCost: 6_200_000},
	{Industry: "finance", AvgCost: 12_000_000},
	{Industry: "healthcare", AvgCost: 9_800_000},
	{Industry: "logistics", AvgCost: 7_400_000},
	{Industry: "overall", AvgCost: 8_000_000},
}

// DefaultTable materializes the built-in calibration baseline: tier ranges
// scaled by the industry cost factor for every (industry, tier) pair.
func DefaultTable() *RateTable {
	base := make(map[string]map[int]CategoryRanges, len(industryFactors))
	for industry, factor := range industryFactors {
		tiers := make(map[int]CategoryRanges, len(tierRanges))
		for tier, ranges := range tierRanges {
			scaled := make(CategoryRanges, len(ranges))
			for cat, r := range ranges {
				scaled[cat] = Range{
					Min: int64(float64(r.Min) * factor),
					Max: int64(float64(r.Max) * factor),
				}
			}
			tiers[tier] = scaled
		}
		base[industry] = tiers
	}
	averages := make([]IndustryAverage, len(defaultAverages))
	copy(averages, defaultAverages)
	return &RateTable{Base: base, Averages: averages}
}
