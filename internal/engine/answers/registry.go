package answers

// Question describes one wizard question: its stable id, the shape of the
// expected value, and the allowed option codes for categorical questions.
type Question struct {
	ID       string    `json:"id"`
	Kind     ValueKind `json:"kind"`
	Options  []string  `json:"options,omitempty"`
	Required bool      `json:"required"`
}

var industryCodes = []string{
	"manufacturing",
	"retail",
	"finance",
	"healthcare",
	"logistics",
	"other",
}

var useCaseCodes = []string{
	"chatbot",
	"document_automation",
	"faq_support",
	"demand_forecast",
	"predictive_maintenance",
	"sales_analytics",
	"quality_inspection",
	"image_recognition",
	"realtime_monitoring",
	"supply_chain_optimization",
	"dynamic_pricing",
	"multi_system_optimization",
}

var dataReadinessCodes = []string{
	"organized",
	"partial",
	"scattered",
	"none",
}

var itStaffingCodes = []string{
	"dedicated_team",
	"some_staff",
	"none",
}

var securityCodes = []string{
	"none",
	"onpremise_required",
	"pii_handling",
	"certification_required",
}

var budgetCodes = []string{
	"under_500k",
	"500k-1m",
	"1m-3m",
	"3m-5m",
	"5m-10m",
	"over_10m",
}

var timelineCodes = []string{
	"within_3_months",
	"within_6_months",
	"within_1_year",
	"over_1_year",
	"undecided",
}

var registry = []Question{
	{ID: QIndustry, Kind: KindCategory, Options: industryCodes, Required: true},
	{ID: QUseCases, Kind: KindCategorySet, Options: useCaseCodes, Required: true},
	{ID: QProblem, Kind: KindText, Required: true},
	{ID: QDataReadiness, Kind: KindCategory, Options: dataReadinessCodes},
	{ID: QITStaffing, Kind: KindCategory, Options: itStaffingCodes},
	{ID: QIntegration, Kind: KindBool},
	{ID: QSecurity, Kind: KindCategorySet, Options: securityCodes},
	{ID: QBudget, Kind: KindCategory, Options: budgetCodes},
	{ID: QTimeline, Kind: KindCategory, Options: timelineCodes},
}

// Registry returns the full question list in wizard order.
func Registry() []Question {
	out := make([]Question, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the question definition for an id.
func Lookup(id string) (Question, bool) {
	for _, q := range registry {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// budgetBands maps budget band codes to currency ranges. The upper bound of
// the open-ended top band is capped for arithmetic purposes.
var budgetBands = map[string][2]int64{
	"under_500k": {0, 500_000},
	"500k-1m":    {500_000, 1_000_000},
	"1m-3m":      {1_000_000, 3_000_000},
	"3m-5m":      {3_000_000, 5_000_000},
	"5m-10m":     {5_000_000, 10_000_000},
	"over_10m":   {10_000_000, 30_000_000},
}

// BudgetRange resolves a budget band code to its currency range. Unknown
// codes report ok=false and are treated as "budget unknown" downstream.
func BudgetRange(code string) (min, max int64, ok bool) {
	r, ok := budgetBands[code]
	if !ok {
		return 0, 0, false
	}
	return r[0], r[1], true
}

// SecurityRequired reports whether the answer set declares any security
// requirement beyond "none".
func SecurityRequired(s Set) bool {
	for _, c := range s.Categories(QSecurity) {
		if c != "none" {
			return true
		}
	}
	return false
}

// UrgentTimeline reports whether delivery is requested within three months.
func UrgentTimeline(s Set) bool {
	return s.Category(QTimeline) == "within_3_months"
}
