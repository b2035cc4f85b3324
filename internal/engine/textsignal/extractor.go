package textsignal

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// keywordRule maps indicative keywords in a problem description to a
// use-case code. Rules are ordered so suggestions come out deterministic.
type keywordRule struct {
	useCase  string
	keywords []string
}

var rules = []keywordRule{
	{useCase: "chatbot", keywords: []string{"chatbot", "chat", "conversation", "inquiry"}},
	{useCase: "document_automation", keywords: []string{"document", "paperwork", "invoice", "contract", "ocr"}},
	{useCase: "faq_support", keywords: []string{"faq", "helpdesk", "support desk", "ticket"}},
	{useCase: "demand_forecast", keywords: []string{"forecast", "demand", "prediction", "inventory"}},
	{useCase: "predictive_maintenance", keywords: []string{"maintenance", "breakdown", "downtime", "sensor"}},
	{useCase: "sales_analytics", keywords: []string{"sales", "revenue", "churn", "crm"}},
	{useCase: "quality_inspection", keywords: []string{"inspection", "defect", "quality", "visual check"}},
	{useCase: "image_recognition", keywords: []string{"image", "camera", "photo", "recognition"}},
	{useCase: "realtime_monitoring", keywords: []string{"monitoring", "realtime", "real-time", "anomaly"}},
	{useCase: "supply_chain_optimization", keywords: []string{"supply chain", "logistics", "routing", "warehouse"}},
	{useCase: "dynamic_pricing", keywords: []string{"pricing", "price optimization"}},
	{useCase: "multi_system_optimization", keywords: []string{"optimization", "scheduling", "resource allocation"}},
}

// nounTags are the Penn Treebank noun tags prose emits.
var nounTags = map[string]bool{
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
}

// SuggestUseCases extracts candidate use-case codes from a free-text problem
// description: noun tokens from prose plus plain substring matches. Fail
// soft: tokenization errors degrade to substring matching, an empty result
// is always acceptable.
func SuggestUseCases(problem string) []string {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return nil
	}
	lowered := strings.ToLower(problem)

	tokens := make(map[string]bool)
	doc, err := prose.NewDocument(problem, prose.WithExtraction(false))
	if err == nil {
		for _, tok := range doc.Tokens() {
			if nounTags[tok.Tag] {
				tokens[strings.ToLower(tok.Text)] = true
			}
		}
	}

	var suggestions []string
	for _, rule := range rules {
		if matchesRule(rule, lowered, tokens) {
			suggestions = append(suggestions, rule.useCase)
		}
	}
	return suggestions
}

func matchesRule(rule keywordRule, lowered string, tokens map[string]bool) bool {
	for _, kw := range rule.keywords {
		if tokens[kw] || strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
