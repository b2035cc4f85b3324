package answers

import (
	"strings"
	"time"
)

// Question identifiers used across the requirements wizard. The engine only
// ever sees these stable codes; display text lives in the export layer.
const (
	QIndustry      = "industry"
	QUseCases      = "use_cases"
	QProblem       = "problem_description"
	QDataReadiness = "data_readiness"
	QITStaffing    = "it_staffing"
	QIntegration   = "integration_needs"
	QSecurity      = "security_requirements"
	QBudget        = "budget_band"
	QTimeline      = "timeline"
)

type ValueKind string

const (
	KindCategory    ValueKind = "category"
	KindCategorySet ValueKind = "category_set"
	KindText        ValueKind = "text"
	KindScale       ValueKind = "scale"
	KindBool        ValueKind = "bool"
)

// Value holds exactly one of the supported answer shapes, discriminated by
// Kind. Zero values for the unused fields are expected.
type Value struct {
	Kind       ValueKind `json:"kind"`
	Category   string    `json:"category,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Text       string    `json:"text,omitempty"`
	Scale      int       `json:"scale,omitempty"`
	Flag       *bool     `json:"flag,omitempty"`
}

func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindCategory:
		return strings.TrimSpace(v.Category) == ""
	case KindCategorySet:
		for _, c := range v.Categories {
			if strings.TrimSpace(c) != "" {
				return false
			}
		}
		return true
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	case KindScale:
		return v.Scale == 0
	case KindBool:
		return v.Flag == nil
	default:
		return true
	}
}

type Answer struct {
	QuestionID string    `json:"question_id"`
	Value      Value     `json:"value"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Set is the per-session collection of answers, keyed by question id.
// Re-answering a question replaces the previous answer.
type Set map[string]Answer

func NewSet() Set {
	return make(Set)
}

func (s Set) Put(a Answer) {
	if a.QuestionID == "" {
		return
	}
	if a.AnsweredAt.IsZero() {
		a.AnsweredAt = time.Now().UTC()
	}
	s[a.QuestionID] = a
}

func (s Set) Remove(questionID string) {
	delete(s, questionID)
}

func (s Set) Get(questionID string) (Answer, bool) {
	a, ok := s[questionID]
	return a, ok
}

// Has reports whether the question has a non-empty answer.
func (s Set) Has(questionID string) bool {
	a, ok := s[questionID]
	return ok && !a.Value.IsEmpty()
}

// AnsweredCount counts questions with non-empty answers. Drives the
// confidence level of cost estimates.
func (s Set) AnsweredCount() int {
	n := 0
	for _, a := range s {
		if !a.Value.IsEmpty() {
			n++
		}
	}
	return n
}

// Category returns the selected category code, or "" when unanswered or the
// answer has a different shape.
func (s Set) Category(questionID string) string {
	a, ok := s[questionID]
	if !ok || a.Value.Kind != KindCategory {
		return ""
	}
	return strings.TrimSpace(a.Value.Category)
}

// Categories returns the selected category codes, empty when unanswered.
func (s Set) Categories(questionID string) []string {
	a, ok := s[questionID]
	if !ok || a.Value.Kind != KindCategorySet {
		return nil
	}
	out := make([]string, 0, len(a.Value.Categories))
	for _, c := range a.Value.Categories {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (s Set) Text(questionID string) string {
	a, ok := s[questionID]
	if !ok || a.Value.Kind != KindText {
		return ""
	}
	return strings.TrimSpace(a.Value.Text)
}

// Bool returns the flag value and whether it was answered at all.
func (s Set) Bool(questionID string) (bool, bool) {
	a, ok := s[questionID]
	if !ok || a.Value.Kind != KindBool || a.Value.Flag == nil {
		return false, false
	}
	return *a.Value.Flag, true
}

// Clone returns a deep copy so callers can snapshot a set before handing it
// to the engine.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, a := range s {
		if len(a.Value.Categories) > 0 {
			cats := make([]string, len(a.Value.Categories))
			copy(cats, a.Value.Categories)
			a.Value.Categories = cats
		}
		if a.Value.Flag != nil {
			f := *a.Value.Flag
			a.Value.Flag = &f
		}
		out[k] = a
	}
	return out
}
