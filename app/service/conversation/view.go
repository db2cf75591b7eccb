package conversation

import (
	"github.com/Ram19prakash/Public-Health-Chatbot/app/client/assessment"
	"github.com/Ram19prakash/Public-Health-Chatbot/app/util/markup"
)

// View is the rendered projection of ConversationState. The display surface
// holds no state of its own: it shows exactly this and nothing else.
type View struct {
	Mode         Mode   `json:"mode"`
	Language     string `json:"language"`
	LanguageName string `json:"language_name"`
	Department   string `json:"department,omitempty"`
	Step         int    `json:"step"`

	Transcript []RenderedEntry `json:"transcript"`
	Question   *QuestionView   `json:"question,omitempty"`
	Selected   []string        `json:"selected"`

	CanAdvance bool `json:"can_advance"`
	CanRewind  bool `json:"can_rewind"`

	Recommendation *RecommendationView `json:"recommendation,omitempty"`

	Departments []Choice `json:"departments,omitempty"`
	Languages   []Choice `json:"languages"`
}

type RenderedEntry struct {
	Kind EntryKind `json:"kind"`
	HTML string    `json:"html"`
}

type QuestionView struct {
	ID       string                  `json:"id"`
	Prompt   string                  `json:"prompt"`
	Kind     assessment.QuestionKind `json:"kind"`
	Multiple bool                    `json:"multiple"`
	Options  []assessment.Option     `json:"options"`
}

type RecommendationView struct {
	Condition       string   `json:"condition,omitempty"`
	TreatmentType   string   `json:"treatment_type,omitempty"`
	Items           []string `json:"items,omitempty"`
	RequiresDoctor  bool     `json:"requires_doctor"`
	MatchedSymptoms int      `json:"matched_symptoms"`
}

type Choice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot renders the current conversation state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Mode:         c.state.mode,
		Language:     c.state.language,
		LanguageName: c.state.languageName,
		Department:   c.state.department,
		Step:         c.state.step,
		Selected:     append(make([]string, 0, len(c.state.selection)), c.state.selection...),
		CanAdvance:   c.state.current != nil && len(c.state.selection) > 0,
		CanRewind:    c.state.mode == ModeQuestions && c.state.history.size() > 0,
	}

	view.Transcript = make([]RenderedEntry, 0, len(c.state.transcript.entries))
	for _, entry := range c.state.transcript.entries {
		view.Transcript = append(view.Transcript, RenderedEntry{
			Kind: entry.Kind,
			HTML: markup.ToHTML(entry.Text),
		})
	}

	if c.state.current != nil {
		view.Question = &QuestionView{
			ID:       c.state.current.ID,
			Prompt:   c.state.current.Prompt,
			Kind:     c.state.current.Kind,
			Multiple: c.state.current.Kind == assessment.KindMultipleChoice,
			Options:  c.state.current.Options,
		}
	}

	if c.state.recommendation != nil {
		view.Recommendation = &RecommendationView{
			Condition:       c.state.recommendation.Condition,
			TreatmentType:   c.state.recommendation.TreatmentType,
			Items:           c.state.recommendation.Recommendations,
			RequiresDoctor:  c.state.recommendation.RequiresDoctor,
			MatchedSymptoms: c.state.recommendation.MatchedSymptomsCount,
		}
	}

	for _, lang := range c.cfg.Languages {
		view.Languages = append(view.Languages, Choice{ID: lang.Code, Name: lang.Name})
	}

	if c.state.mode == ModeDepartments {
		for _, dept := range c.cfg.Departments {
			view.Departments = append(view.Departments, Choice{ID: dept.ID, Name: dept.Name})
		}
	}

	return view
}
