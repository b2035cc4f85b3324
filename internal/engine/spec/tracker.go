package spec

import "github.com/ai-bridge/backend/internal/engine/answers"

type SectionStatus string

const (
	StatusEmpty    SectionStatus = "empty"
	StatusDraft    SectionStatus = "draft"
	StatusComplete SectionStatus = "complete"
)

// SectionDef declares which questions feed one section of the requirements
// document.
type SectionDef struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	QuestionIDs []string `json:"question_ids"`
}

type Section struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Status SectionStatus `json:"status"`
}

type Document struct {
	Sections       []Section `json:"sections"`
	CompletionRate int       `json:"completion_rate"`
}

// DefaultSections is the requirements document layout used by the wizard.
func DefaultSections() []SectionDef {
	return []SectionDef{
		{ID: "overview", Title: "Business overview", QuestionIDs: []string{answers.QIndustry, answers.QProblem}},
		{ID: "requirements", Title: "AI requirements", QuestionIDs: []string{answers.QUseCases, answers.QDataReadiness}},
		{ID: "constraints", Title: "Constraints", QuestionIDs: []string{answers.QSecurity, answers.QIntegration, answers.QITStaffing}},
		{ID: "plan", Title: "Budget and timeline", QuestionIDs: []string{answers.QBudget, answers.QTimeline}},
	}
}

// Track derives per-section status and the overall completion rate from the
// answer set. Pure and idempotent: identical inputs yield identical output.
func Track(set answers.Set, defs []SectionDef) Document {
	sections := make([]Section, 0, len(defs))
	complete := 0
	for _, def := range defs {
		answered := 0
		for _, qid := range def.QuestionIDs {
			if set.Has(qid) {
				answered++
			}
		}
		status := StatusEmpty
		switch {
		case len(def.QuestionIDs) > 0 && answered == len(def.QuestionIDs):
			status = StatusComplete
			complete++
		case answered > 0:
			status = StatusDraft
		}
		sections = append(sections, Section{ID: def.ID, Title: def.Title, Status: status})
	}

	rate := 0
	if len(defs) > 0 {
		rate = 100 * complete / len(defs)
	}
	return Document{Sections: sections, CompletionRate: rate}
}
