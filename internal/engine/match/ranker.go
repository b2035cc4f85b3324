package match

import (
	"math"
	"sort"

	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/storage/models"
)

// Component weights. Per-vendor scores are independent of the rest of the
// catalog so ranking stays stable as vendors are added or removed.
const (
	industryWeight    = 35
	generalistCredit  = 15
	specialtyWeight   = 35
	budgetWeight      = 20
	budgetNeutral     = 10
	reputationWeight  = 10
	budgetFalloffSpan = 2.0
)

// Strength tags, emitted in fixed priority order. Stable machine codes;
// display text belongs to the export layer.
const (
	StrengthIndustryExpertise = "industry_expertise"
	StrengthUseCaseFit        = "use_case_fit"
	StrengthBudgetFit         = "budget_fit"
	StrengthTrackRecord       = "strong_track_record"
)

type VendorMatch struct {
	VendorID           string   `json:"vendor_id"`
	VendorName         string   `json:"vendor_name"`
	MatchScore         int      `json:"match_score"`
	Strengths          []string `json:"strengths"`
	SpecialtiesOverlap []string `json:"specialties_overlap"`
}

// Rank scores every vendor against the answer set and returns the catalog
// ordered by match score, with deterministic tie-breaking: higher rating,
// then higher review count, then lexicographic vendor id.
func Rank(set answers.Set, catalog []models.VendorRecord) []VendorMatch {
	return RankWithFallbackTags(set, nil, catalog)
}

// RankWithFallbackTags behaves like Rank but substitutes the supplied
// use-case tags when the answer set has none selected. Used by the
// orchestrator to feed suggestions extracted from the problem description.
func RankWithFallbackTags(set answers.Set, fallbackTags []string, catalog []models.VendorRecord) []VendorMatch {
	useCases := set.Categories(answers.QUseCases)
	if len(useCases) == 0 {
		useCases = fallbackTags
	}

	type scored struct {
		match       VendorMatch
		rating      float64
		reviewCount int
	}

	ranked := make([]scored, 0, len(catalog))
	for i := range catalog {
		vendor := &catalog[i]
		m := scoreVendor(set, useCases, vendor)
		ranked = append(ranked, scored{match: m, rating: vendor.Rating, reviewCount: vendor.ReviewCount})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.match.MatchScore != b.match.MatchScore {
			return a.match.MatchScore > b.match.MatchScore
		}
		if a.rating != b.rating {
			return a.rating > b.rating
		}
		if a.reviewCount != b.reviewCount {
			return a.reviewCount > b.reviewCount
		}
		return a.match.VendorID < b.match.VendorID
	})

	out := make([]VendorMatch, len(ranked))
	for i, s := range ranked {
		out[i] = s.match
	}
	return out
}

func scoreVendor(set answers.Set, useCases []string, vendor *models.VendorRecord) VendorMatch {
	industryPts := industryScore(set.Category(answers.QIndustry), vendor)
	specialtyPts, overlap := specialtyScore(useCases, vendor)
	budgetPts := budgetScore(set, vendor)
	reputationPts := reputationScore(vendor)

	score := industryPts + specialtyPts + budgetPts + reputationPts
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return VendorMatch{
		VendorID:           vendor.ID,
		VendorName:         vendor.Name,
		MatchScore:         score,
		Strengths:          strengths(industryPts, specialtyPts, budgetPts, reputationPts, vendor),
		SpecialtiesOverlap: overlap,
	}
}

// industryScore gives full credit for a direct industry match and partial
// credit for generalists. An unanswered industry contributes nothing, which
// affects every vendor equally.
func industryScore(industry string, vendor *models.VendorRecord) int {
	if industry == "" {
		return 0
	}
	if vendor.ServesIndustry(industry) {
		return industryWeight
	}
	if vendor.ServesIndustry("other") {
		return generalistCredit
	}
	return 0
}

// specialtyScore is proportional to the fraction of requested use cases the
// vendor claims, scaled to the weight and rounded down.
func specialtyScore(useCases []string, vendor *models.VendorRecord) (int, []string) {
	if len(useCases) == 0 || len(vendor.Specialties) == 0 {
		return 0, nil
	}
	overlap := make([]string, 0, len(useCases))
	for _, code := range useCases {
		if vendor.HasSpecialty(code) {
			overlap = append(overlap, code)
		}
	}
	pts := int(math.Floor(float64(len(overlap)) / float64(len(useCases)) * specialtyWeight))
	return pts, overlap
}

// budgetScore gives full credit when the user's band intersects the
// vendor's price range, neutral midpoint credit when the budget is unknown,
// and a linear falloff to zero beyond twice the band width otherwise.
func budgetScore(set answers.Set, vendor *models.VendorRecord) int {
	bandMin, bandMax, ok := answers.BudgetRange(set.Category(answers.QBudget))
	if !ok {
		return budgetNeutral
	}
	if vendor.PriceMax <= 0 && vendor.PriceMin <= 0 {
		return 0
	}
	if bandMin <= vendor.PriceMax && vendor.PriceMin <= bandMax {
		return budgetWeight
	}

	gap := vendor.PriceMin - bandMax
	if d := bandMin - vendor.PriceMax; d > gap {
		gap = d
	}
	width := bandMax - bandMin
	if width <= 0 {
		return 0
	}
	credit := float64(budgetWeight) * (1 - float64(gap)/(budgetFalloffSpan*float64(width)))
	if credit <= 0 {
		return 0
	}
	return int(math.Floor(credit))
}

func reputationScore(vendor *models.VendorRecord) int {
	rating := vendor.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return int(math.Floor(rating / 5 * reputationWeight))
}

// strengths maps score components to explanation tags in fixed priority
// order. Deterministic: same components, same tags.
func strengths(industryPts, specialtyPts, budgetPts, reputationPts int, vendor *models.VendorRecord) []string {
	tags := make([]string, 0, 4)
	if industryPts >= industryWeight {
		tags = append(tags, StrengthIndustryExpertise)
	}
	if specialtyPts >= specialtyWeight/2 {
		tags = append(tags, StrengthUseCaseFit)
	}
	if budgetPts >= budgetWeight {
		tags = append(tags, StrengthBudgetFit)
	}
	if reputationPts >= reputationWeight-1 && vendor.ReviewCount >= 20 {
		tags = append(tags, StrengthTrackRecord)
	}
	return tags
}
