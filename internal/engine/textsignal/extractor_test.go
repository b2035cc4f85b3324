package textsignal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestUseCases(t *testing.T) {
	cases := []struct {
		name    string
		problem string
		want    []string
	}{
		{
			name:    "chatbot wording",
			problem: "We want a chatbot that answers customer inquiries after hours",
			want:    []string{"chatbot"},
		},
		{
			name:    "inspection wording",
			problem: "Manual visual check of parts for defect detection is too slow",
			want:    []string{"quality_inspection"},
		},
		{
			name:    "multiple signals",
			problem: "Forecast demand and optimize our supply chain routing",
			want:    []string{"demand_forecast", "supply_chain_optimization"},
		},
		{
			name:    "no signals",
			problem: "We are not sure yet what we need",
			want:    nil,
		},
		{
			name:    "empty text",
			problem: "   ",
			want:    nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SuggestUseCases(tc.problem)
			for _, want := range tc.want {
				assert.Contains(t, got, want)
			}
			if tc.want == nil {
				assert.Empty(t, got)
			}
		})
	}
}

func TestSuggestUseCasesDeterministic(t *testing.T) {
	problem := "Invoice paperwork automation plus a chatbot for the helpdesk"
	first := SuggestUseCases(problem)
	second := SuggestUseCases(problem)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
