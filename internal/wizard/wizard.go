// Package wizard is the screen controller: a small state machine that
// owns the active screen, the in-progress answers, the displayed result,
// the error banner, and the bounded history. All user actions enter
// through its methods; generation results are applied through a sequence
// check so stale completions never clobber newer screen state.
package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/catalog"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/gemini"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/models"
)

// Screen identifies which of the three wizard screens is active.
type Screen string

const (
	ScreenCategorySelection Screen = "category_selection"
	ScreenQuestionForm      Screen = "question_form"
	ScreenPromptDisplay     Screen = "prompt_display"
)

// MaxHistory bounds the persisted history to the most recent entries.
const MaxHistory = 50

// Generator produces prompt text from a generation request.
type Generator interface {
	Generate(ctx context.Context, req gemini.Request) (string, error)
}

// Storage is the durable side of the controller's state.
type Storage interface {
	LoadTheme() models.Theme
	SaveTheme(models.Theme)
	LoadHistory() []models.GeneratedPrompt
	SaveHistory([]models.GeneratedPrompt) error
}

type Controller struct {
	gen    Generator
	store  Storage
	logger *zap.Logger

	mu       sync.Mutex
	theme    models.Theme
	screen   Screen
	category models.Category
	answers  models.AnswerSet
	current  *models.GeneratedPrompt
	history  []models.GeneratedPrompt
	errMsg   string
	errCfg   bool
	loading  bool
	genSeq   uint64
}

// New builds a controller with theme and history loaded from storage.
func New(gen Generator, store Storage, logger *zap.Logger) *Controller {
	c := &Controller{
		gen:     gen,
		store:   store,
		logger:  logger,
		screen:  ScreenCategorySelection,
		theme:   store.LoadTheme(),
		history: sanitizeHistory(store.LoadHistory()),
	}
	return c
}

// sanitizeHistory enforces the history invariants on loaded data: unique
// ids (first occurrence wins), ratings clamped, length bounded.
func sanitizeHistory(in []models.GeneratedPrompt) []models.GeneratedPrompt {
	seen := make(map[string]bool, len(in))
	var out []models.GeneratedPrompt
	for _, p := range in {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		p.Rating = models.ClampRating(p.Rating)
		out = append(out, p)
		if len(out) == MaxHistory {
			break
		}
	}
	return out
}

// invalidate abandons any in-flight generation: its completion will fail
// the sequence check in apply and be discarded.
func (c *Controller) invalidate() {
	c.genSeq++
	c.loading = false
}

func (c *Controller) clearError() {
	c.errMsg = ""
	c.errCfg = false
}

// SelectCategory seeds a blank answer set for the category and moves to
// the question form. Unknown categories are ignored.
func (c *Controller) SelectCategory(cat models.Category) bool {
	if !catalog.Valid(cat) {
		c.logger.Warn("ignoring unknown category", zap.String("category", string(cat)))
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate()
	c.category = cat
	c.answers = catalog.SeedAnswers(cat)
	c.screen = ScreenQuestionForm
	c.clearError()
	return true
}

// Submit stores the edited answers and starts a generation. Returns false
// when no generation was started (already loading, or not on the form).
func (c *Controller) Submit(answers models.AnswerSet) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading || c.screen != ScreenQuestionForm || c.category == "" {
		return false
	}

	// Only catalogue keys survive; stray form fields are dropped.
	merged := make(models.AnswerSet)
	for _, q := range catalog.Questions(c.category) {
		merged[q.ID] = answers[q.ID]
	}
	c.answers = merged

	c.startGeneration(c.category, merged.Clone(), "")
	return true
}

// Regenerate requests a variant of the displayed record from the same
// inputs. The current record stays on screen until the variant arrives.
func (c *Controller) Regenerate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading || c.screen != ScreenPromptDisplay || c.current == nil {
		return false
	}
	c.startGeneration(c.current.Category, c.current.SourceAnswers.Clone(), c.current.Text)
	return true
}

// startGeneration must be called with the lock held.
func (c *Controller) startGeneration(cat models.Category, answers models.AnswerSet, previousText string) {
	c.clearError()
	c.loading = true
	c.genSeq++
	seq := c.genSeq

	go func() {
		text, err := c.gen.Generate(context.Background(), gemini.Request{
			Category:     cat,
			Questions:    catalog.Questions(cat),
			Answers:      answers,
			PreviousText: previousText,
		})
		c.apply(seq, cat, answers, previousText != "", text, err)
	}()
}

// apply consumes a generation completion. Completions whose sequence is no
// longer current belong to an abandoned screen state and are dropped.
func (c *Controller) apply(seq uint64, cat models.Category, answers models.AnswerSet, regenerated bool, text string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.genSeq {
		c.logger.Debug("discarding stale generation result", zap.Uint64("seq", seq))
		return
	}
	c.loading = false

	if err != nil {
		c.errMsg = "Failed to generate prompt: " + err.Error()
		if gemini.IsConfigError(err) {
			// No generation can succeed until the credential is fixed;
			// force the category screen and keep the banner up.
			c.errCfg = true
			c.screen = ScreenCategorySelection
		}
		// Otherwise stay where the attempt started: the form for a first
		// generation, the display (previous record intact) for a variant.
		return
	}

	record := models.GeneratedPrompt{
		ID:            uuid.New().String(),
		Text:          text,
		Category:      cat,
		CreatedAt:     time.Now().UTC(),
		Rating:        0,
		SourceAnswers: answers,
	}
	c.current = &record
	c.screen = ScreenPromptDisplay
	c.logger.Info("prompt generated",
		zap.String("id", record.ID),
		zap.String("category", string(cat)),
		zap.Bool("regenerated", regenerated))
}

// EditInputs returns to the question form with the displayed record's
// answers restored.
func (c *Controller) EditInputs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate()
	if c.current != nil {
		c.category = c.current.Category
		c.answers = c.current.SourceAnswers.Clone()
	}
	c.screen = ScreenQuestionForm
	c.clearError()
}

// Back leaves the question form, discarding the category and answers.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate()
	c.category = ""
	c.answers = nil
	c.screen = ScreenCategorySelection
	c.clearError()
}

// StartOver resets the whole session back to category selection.
func (c *Controller) StartOver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate()
	c.category = ""
	c.answers = nil
	c.current = nil
	c.screen = ScreenCategorySelection
	c.clearError()
}

// SaveToHistory upserts the displayed record (with its current rating)
// into the history and persists it. Re-saving an id replaces the prior
// entry; the entry moves to the front; the tail is evicted past the cap.
func (c *Controller) SaveToHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}

	entry := c.current.Clone()
	kept := make([]models.GeneratedPrompt, 0, len(c.history)+1)
	kept = append(kept, entry)
	for _, p := range c.history {
		if p.ID != entry.ID {
			kept = append(kept, p)
		}
	}
	if len(kept) > MaxHistory {
		kept = kept[:MaxHistory]
	}
	c.history = kept
	c.persistHistory()
}

// Rate sets the displayed record's rating (clamped to [0,5]) and keeps a
// matching history entry in sync.
func (c *Controller) Rate(rating int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}

	rating = models.ClampRating(rating)
	c.current.Rating = rating

	changed := false
	for i := range c.history {
		if c.history[i].ID == c.current.ID {
			c.history[i].Rating = rating
			changed = true
		}
	}
	if changed {
		c.persistHistory()
	}
}

// UseHistory restores a history entry as the displayed record, including
// its category, answers, and stored rating.
func (c *Controller) UseHistory(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.history {
		if p.ID == id {
			c.invalidate()
			entry := p.Clone()
			c.category = entry.Category
			c.answers = entry.SourceAnswers.Clone()
			c.current = &entry
			c.screen = ScreenPromptDisplay
			c.clearError()
			return true
		}
	}
	return false
}

// DeleteHistory removes one entry. The displayed record is unaffected
// even when it refers to the deleted entry.
func (c *Controller) DeleteHistory(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.history[:0]
	for _, p := range c.history {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(c.history) {
		return
	}
	c.history = kept
	c.persistHistory()
}

// ClearHistory removes all entries.
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
	c.persistHistory()
}

// ToggleTheme flips the theme and persists the preference.
func (c *Controller) ToggleTheme() models.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = c.theme.Toggle()
	c.store.SaveTheme(c.theme)
	return c.theme
}

// persistHistory must be called with the lock held. Failures are logged;
// the in-memory state remains authoritative for the session.
func (c *Controller) persistHistory() {
	if err := c.store.SaveHistory(c.history); err != nil {
		c.logger.Warn("persisting history", zap.Error(err))
	}
}
