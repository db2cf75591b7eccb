package assessment

type QuestionKind string

const (
	KindSingleChoice       QuestionKind = "single_choice"
	KindMultipleChoice     QuestionKind = "multiple_choice"
	KindTreatmentSelection QuestionKind = "treatment_selection"
)

type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

type Question struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"question"`
	Kind    QuestionKind `json:"type"`
	Options []Option     `json:"options"`
}

// LanguageInfo is the active language of the remote session.
type LanguageInfo struct {
	Language     string `json:"language"`
	LanguageName string `json:"language_name"`
}

// Recommendation is the final treatment advice for the assessed symptoms.
// FormattedMessage carries the transcript markup variant when present.
type Recommendation struct {
	Condition            string   `json:"condition"`
	TreatmentType        string   `json:"treatment_type"`
	Message              string   `json:"message"`
	FormattedMessage     string   `json:"formatted_message"`
	Recommendations      []string `json:"recommendations"`
	RequiresDoctor       bool     `json:"requires_doctor"`
	MatchedSymptomsCount int      `json:"matched_symptoms_count"`
}

// Text picks the richest message variant the service provided.
func (r *Recommendation) Text() string {
	if r.FormattedMessage != "" {
		return r.FormattedMessage
	}

	return r.Message
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

type setLanguageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type startRequest struct {
	Department string `json:"department"`
	Language   string `json:"language"`
}

// StartResult is the opening of an assessment: a welcome message and the
// first question of the department's flow.
type StartResult struct {
	Success    bool      `json:"success"`
	Department string    `json:"department"`
	Message    string    `json:"message"`
	Question   *Question `json:"question"`
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     any    `json:"answer"`
}

type answerResponse struct {
	NextQuestion *Question `json:"next_question"`
	Completed    bool      `json:"completed"`
}

type selectTreatmentRequest struct {
	TreatmentType string `json:"treatment_type"`
}

type errorResponse struct {
	Error string `json:"error"`
}
