package conversation

import (
	"errors"

	"github.com/Ram19prakash/Public-Health-Chatbot/app/client/assessment"
)

var (
	// ErrBusy means another event is still being processed for this session.
	ErrBusy = errors.New("conversation is processing another event")

	ErrNoQuestion        = errors.New("no question is currently displayed")
	ErrNoSelection       = errors.New("no option is selected")
	ErrKindMismatch      = errors.New("operation does not match the question kind")
	ErrUnknownOption     = errors.New("option does not belong to the current question")
	ErrUnknownDepartment = errors.New("unknown department")
	ErrUnknownLanguage   = errors.New("unknown language")
)

type Mode string

const (
	// ModeDepartments is the entry screen, waiting for a department pick.
	ModeDepartments Mode = "departments"
	// ModeQuestions is an assessment in progress.
	ModeQuestions Mode = "questions"
	// ModeResults shows the final recommendation, no further advancement.
	ModeResults Mode = "results"
)

// Answer holds the selected option values for one question. Single-answer
// kinds carry exactly one value.
type Answer struct {
	Values []string
}

// wire converts the answer to the shape the assessment service expects:
// a scalar for single-answer kinds, an array for multiple-choice.
func (a Answer) wire(kind assessment.QuestionKind) any {
	if kind == assessment.KindMultipleChoice {
		return a.Values
	}

	return a.Values[0]
}

// HistoryEntry pairs a question with the answer that was given for it.
type HistoryEntry struct {
	Question *assessment.Question
	Answer   Answer
}

type EntryKind string

const (
	EntryBot            EntryKind = "bot"
	EntryUser           EntryKind = "user"
	EntryNotice         EntryKind = "notice"
	EntryRecommendation EntryKind = "recommendation"
	// EntryUrgent marks a recommendation that requires professional follow-up.
	EntryUrgent EntryKind = "urgent"
)

type TranscriptEntry struct {
	Kind EntryKind
	Text string
}

// state is the single ConversationState of a session. All fields are owned
// by the Controller and mutated only under its guards.
type state struct {
	mode         Mode
	language     string
	languageName string

	department     string
	departmentName string
	welcome        string

	current   *assessment.Question
	selection []string
	history   historyStack
	step      int

	transcript     transcript
	recommendation *assessment.Recommendation
}
