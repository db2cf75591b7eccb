package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Ram19prakash/Public-Health-Chatbot/app/client/assessment"
	"github.com/Ram19prakash/Public-Health-Chatbot/app/config"

	"github.com/elliotchance/pie/v2"
)

const (
	introMessage  = "Hello! I'm your health assistant. Please choose a department to begin your assessment."
	failureNotice = "Sorry, something went wrong. Please try again."
)

// API is the slice of the assessment service the controller depends on.
type API interface {
	SetLanguage(ctx context.Context, code string) (string, error)
	StartAssessment(ctx context.Context, department, language string) (*assessment.StartResult, error)
	AnswerQuestion(ctx context.Context, questionID string, answer any) (*assessment.Question, error)
	SelectTreatment(ctx context.Context, treatmentType string) (*assessment.Recommendation, error)
	RestartSession(ctx context.Context) error
}

// Controller owns the ConversationState of one session and mirrors the
// remote assessment into it. Every user event maps to exactly one exported
// method. Events arriving while a previous one is still in flight are
// rejected with ErrBusy instead of interleaving.
type Controller struct {
	cfg *config.Config
	api API

	busy  atomic.Bool
	mu    sync.Mutex
	state state
}

func NewController(cfg *config.Config, api API, language, languageName string) *Controller {
	c := &Controller{
		cfg: cfg,
		api: api,
	}

	c.state.language = language
	c.state.languageName = languageName
	c.resetState()

	return c
}

// acquire marks the controller busy for the duration of one event.
func (c *Controller) acquire() bool {
	return c.busy.CompareAndSwap(false, true)
}

func (c *Controller) release() {
	c.busy.Store(false)
}

// SelectDepartment starts a fresh assessment for the department. Prior
// selection, history and step counter are cleared before the request is
// issued; on failure the pre-call state is restored in full and a notice
// is rendered, so a running assessment survives a failed re-pick.
func (c *Controller) SelectDepartment(ctx context.Context, id string) error {
	name, ok := c.departmentName(id)
	if !ok {
		return ErrUnknownDepartment
	}

	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	return c.selectDepartment(ctx, id, name)
}

func (c *Controller) selectDepartment(ctx context.Context, id, name string) error {
	c.mu.Lock()
	prev := c.state
	c.state.selection = nil
	c.state.history.clear()
	c.state.step = 0
	c.state.current = nil
	c.state.recommendation = nil
	c.state.department = id
	c.state.departmentName = name
	language := c.state.language
	c.mu.Unlock()

	result, err := c.api.StartAssessment(ctx, id, language)
	if err != nil {
		c.mu.Lock()
		c.state = prev
		c.state.transcript.add(EntryNotice, failureNotice)
		c.mu.Unlock()

		slog.Error("Failed to start assessment", "department", id, "error", err)

		return fmt.Errorf("failed to start assessment: %w", err)
	}

	c.mu.Lock()
	c.state.mode = ModeQuestions
	c.state.current = result.Question
	c.state.welcome = result.Message
	c.state.transcript.add(EntryUser, name)
	if result.Message != "" {
		c.state.transcript.add(EntryBot, result.Message)
	}
	c.state.transcript.add(EntryBot, result.Question.Prompt)
	c.mu.Unlock()

	return nil
}

// SelectOption replaces the selection with the one chosen value. Valid for
// single-choice and treatment-selection questions.
func (c *Controller) SelectOption(value string) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.current == nil {
		return ErrNoQuestion
	}
	if c.state.current.Kind == assessment.KindMultipleChoice {
		return ErrKindMismatch
	}
	if !optionExists(c.state.current, value) {
		return ErrUnknownOption
	}

	c.state.selection = []string{value}

	return nil
}

// ToggleOption adds or removes a value from the multiple-choice selection
// buffer. Toggling a value twice restores the buffer's prior membership.
func (c *Controller) ToggleOption(value string) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.current == nil {
		return ErrNoQuestion
	}
	if c.state.current.Kind != assessment.KindMultipleChoice {
		return ErrKindMismatch
	}
	if !optionExists(c.state.current, value) {
		return ErrUnknownOption
	}

	if pie.Contains(c.state.selection, value) {
		c.state.selection = pie.FilterNot(c.state.selection, func(v string) bool {
			return v == value
		})
	} else {
		c.state.selection = append(c.state.selection, value)
	}

	return nil
}

// Advance submits the buffered answer. For the terminal treatment question
// it finalizes the assessment instead of fetching a further question. On
// service failure the pushed history entry and the rendered answer are
// rolled back, so history always reflects successfully answered questions
// only. The selection buffer is cleared on every attempt.
func (c *Controller) Advance(ctx context.Context) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	c.mu.Lock()

	if c.state.current == nil || c.state.mode != ModeQuestions {
		c.mu.Unlock()
		return ErrNoQuestion
	}
	if len(c.state.selection) == 0 {
		c.mu.Unlock()
		return ErrNoSelection
	}

	question := c.state.current
	answer := Answer{Values: orderedSelection(question, c.state.selection)}

	c.state.history.push(HistoryEntry{Question: question, Answer: answer})
	c.state.transcript.add(EntryUser, answerText(question, answer))
	c.state.selection = nil
	c.mu.Unlock()

	if question.Kind == assessment.KindTreatmentSelection {
		return c.finalize(ctx, answer.Values[0])
	}

	next, err := c.api.AnswerQuestion(ctx, question.ID, answer.wire(question.Kind))
	if err != nil {
		c.rollback()
		slog.Error("Failed to submit answer", "question_id", question.ID, "error", err)

		return fmt.Errorf("failed to submit answer: %w", err)
	}

	c.mu.Lock()
	c.state.current = next
	c.state.step++
	c.state.transcript.add(EntryBot, next.Prompt)
	c.mu.Unlock()

	return nil
}

// finalize submits the treatment preference and shows the recommendation.
func (c *Controller) finalize(ctx context.Context, treatmentType string) error {
	rec, err := c.api.SelectTreatment(ctx, treatmentType)
	if err != nil {
		c.rollback()
		slog.Error("Failed to select treatment", "treatment_type", treatmentType, "error", err)

		return fmt.Errorf("failed to select treatment: %w", err)
	}

	kind := EntryRecommendation
	if rec.RequiresDoctor {
		kind = EntryUrgent
	}

	c.mu.Lock()
	c.state.mode = ModeResults
	c.state.current = nil
	c.state.recommendation = rec
	c.state.transcript.add(kind, rec.Text())
	c.mu.Unlock()

	if rec.RequiresDoctor {
		slog.Info("Recommendation requires professional follow-up",
			"condition", rec.Condition,
			"department", c.Department(),
			"telegram", true)
	}

	return nil
}

// rollback undoes the history push and the rendered answer of a failed
// advance, then renders a failure notice.
func (c *Controller) rollback() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.history.pop()
	c.state.transcript.dropLast()
	c.state.transcript.add(EntryNotice, failureNotice)
}

// Rewind pops the last answered question and restores it as the current one
// with its previous selection pre-populated. The transcript is recomputed
// from state rather than pruned positionally. A rewind with no history is a
// no-op.
func (c *Controller) Rewind() error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.mode != ModeQuestions {
		return nil
	}

	entry, ok := c.state.history.pop()
	if !ok {
		return nil
	}

	c.state.current = entry.Question
	c.state.selection = append([]string(nil), entry.Answer.Values...)
	c.state.step--
	c.rebuildTranscript()

	return nil
}

// Restart clears the conversation back to the department screen. The remote
// session reset is best-effort: a failed notification is logged, never
// surfaced.
func (c *Controller) Restart(ctx context.Context) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	c.restart(ctx)

	return nil
}

func (c *Controller) restart(ctx context.Context) {
	if err := c.api.RestartSession(ctx); err != nil {
		slog.Warn("Failed to notify session restart", "error", err)
	}

	c.resetState()
}

func (c *Controller) resetState() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.mode = ModeDepartments
	c.state.department = ""
	c.state.departmentName = ""
	c.state.welcome = ""
	c.state.current = nil
	c.state.selection = nil
	c.state.history.clear()
	c.state.step = 0
	c.state.recommendation = nil
	c.state.transcript.reset(TranscriptEntry{Kind: EntryBot, Text: introMessage})
}

// SetLanguage switches the conversation language. When an assessment is in
// progress it is restarted in the new language with the same department, so
// every question from here on arrives translated. On failure the previous
// language stays active.
func (c *Controller) SetLanguage(ctx context.Context, code string) error {
	name, ok := c.languageName(code)
	if !ok {
		return ErrUnknownLanguage
	}

	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	message, err := c.api.SetLanguage(ctx, code)
	if err != nil {
		c.mu.Lock()
		c.state.transcript.add(EntryNotice, failureNotice)
		c.mu.Unlock()

		slog.Error("Failed to set language", "language", code, "error", err)

		return fmt.Errorf("failed to set language: %w", err)
	}

	c.mu.Lock()
	c.state.language = code
	c.state.languageName = name
	department := c.state.department
	departmentName := c.state.departmentName
	active := c.state.mode != ModeDepartments
	c.mu.Unlock()

	if !active {
		c.mu.Lock()
		c.state.transcript.add(EntryBot, message)
		c.mu.Unlock()

		return nil
	}

	c.restart(ctx)

	if department != "" {
		return c.selectDepartment(ctx, department, departmentName)
	}

	return nil
}

// Department returns the active department id, or "" outside an assessment.
func (c *Controller) Department() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.department
}

// rebuildTranscript recomputes the transcript as a pure projection of the
// conversation state: intro, department pick, welcome, one question/answer
// pair per history entry, then the current question. Interleaved notices
// describe attempts that no longer exist and are not reproduced.
// Callers must hold c.mu.
func (c *Controller) rebuildTranscript() {
	c.state.transcript.reset(TranscriptEntry{Kind: EntryBot, Text: introMessage})

	if c.state.department == "" {
		return
	}

	c.state.transcript.add(EntryUser, c.state.departmentName)
	if c.state.welcome != "" {
		c.state.transcript.add(EntryBot, c.state.welcome)
	}

	for _, entry := range c.state.history.entries {
		c.state.transcript.add(EntryBot, entry.Question.Prompt)
		c.state.transcript.add(EntryUser, answerText(entry.Question, entry.Answer))
	}

	if c.state.current != nil {
		c.state.transcript.add(EntryBot, c.state.current.Prompt)
	}
}

func (c *Controller) departmentName(id string) (string, bool) {
	for _, d := range c.cfg.Departments {
		if d.ID == id {
			return d.Name, true
		}
	}

	return "", false
}

func (c *Controller) languageName(code string) (string, bool) {
	for _, l := range c.cfg.Languages {
		if l.Code == code {
			return l.Name, true
		}
	}

	return "", false
}

func optionExists(q *assessment.Question, value string) bool {
	values := pie.Map(q.Options, func(o assessment.Option) string {
		return o.Value
	})

	return pie.Contains(values, value)
}

// orderedSelection normalizes the buffer to the question's option order, so
// an answer reads the same no matter in which order boxes were ticked.
func orderedSelection(q *assessment.Question, selection []string) []string {
	ordered := make([]string, 0, len(selection))

	for _, opt := range q.Options {
		if pie.Contains(selection, opt.Value) {
			ordered = append(ordered, opt.Value)
		}
	}

	return ordered
}

// answerText renders an answer with the display text of its options.
func answerText(q *assessment.Question, answer Answer) string {
	texts := pie.Map(answer.Values, func(value string) string {
		for _, opt := range q.Options {
			if opt.Value == value {
				return opt.Text
			}
		}

		return value
	})

	return pie.Join(texts, ", ")
}
