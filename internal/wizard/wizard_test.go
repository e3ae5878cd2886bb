package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/catalog"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/gemini"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/models"
)

// fakeGen is a scriptable Generator. When gate is set, Generate blocks
// until the gate channel is closed.
type fakeGen struct {
	mu   sync.Mutex
	gate chan struct{}
	text string
	err  error
	reqs []gemini.Request
}

func (f *fakeGen) Generate(ctx context.Context, req gemini.Request) (string, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.text, f.err
}

func (f *fakeGen) setResult(text string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	f.err = err
}

func (f *fakeGen) lastRequest(t *testing.T) gemini.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.reqs)
	return f.reqs[len(f.reqs)-1]
}

// memStore is an in-memory Storage used to observe persistence calls.
type memStore struct {
	mu      sync.Mutex
	theme   models.Theme
	history []models.GeneratedPrompt
	saveErr error
	saves   int
}

func (m *memStore) LoadTheme() models.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.theme == "" {
		return models.ThemeLight
	}
	return m.theme
}

func (m *memStore) SaveTheme(theme models.Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
}

func (m *memStore) LoadHistory() []models.GeneratedPrompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.GeneratedPrompt, len(m.history))
	copy(out, m.history)
	return out
}

func (m *memStore) SaveHistory(history []models.GeneratedPrompt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.history = make([]models.GeneratedPrompt, len(history))
	copy(m.history, history)
	return nil
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func newController(gen Generator, store Storage) *Controller {
	return New(gen, store, zap.NewNop())
}

// waitIdle waits for an in-flight generation to be applied.
func waitIdle(t *testing.T, c *Controller) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return !c.Snapshot().Loading
	}, 2*time.Second, 5*time.Millisecond)
	return c.Snapshot()
}

// generate drives the controller from category selection through a
// completed generation and returns the resulting snapshot.
func generate(t *testing.T, c *Controller, cat models.Category, answers models.AnswerSet) Snapshot {
	t.Helper()
	require.True(t, c.SelectCategory(cat))
	require.True(t, c.Submit(answers))
	snap := waitIdle(t, c)
	require.Equal(t, ScreenPromptDisplay, snap.Screen)
	require.NotNil(t, snap.Current)
	return snap
}

func TestNewStartsOnCategorySelection(t *testing.T) {
	c := newController(&fakeGen{}, &memStore{theme: models.ThemeDark})
	snap := c.Snapshot()

	assert.Equal(t, ScreenCategorySelection, snap.Screen)
	assert.Equal(t, models.ThemeDark, snap.Theme)
	assert.Empty(t, snap.History)
	assert.Nil(t, snap.Current)
	assert.False(t, snap.Loading)
}

func TestNewSanitizesLoadedHistory(t *testing.T) {
	loaded := []models.GeneratedPrompt{
		{ID: "a", Text: "first occurrence", Rating: 9},
		{ID: "", Text: "no id"},
		{ID: "a", Text: "duplicate", Rating: 2},
		{ID: "b", Rating: -3},
	}
	for i := 0; i < 55; i++ {
		loaded = append(loaded, models.GeneratedPrompt{ID: fmt.Sprintf("c%d", i)})
	}

	c := newController(&fakeGen{}, &memStore{history: loaded})
	history := c.Snapshot().History

	require.Len(t, history, MaxHistory)
	assert.Equal(t, "a", history[0].ID)
	assert.Equal(t, "first occurrence", history[0].Text)
	assert.Equal(t, models.MaxRating, history[0].Rating)
	assert.Equal(t, "b", history[1].ID)
	assert.Equal(t, models.MinRating, history[1].Rating)
	assert.Equal(t, "c0", history[2].ID)
}

func TestSelectCategorySeedsForm(t *testing.T) {
	c := newController(&fakeGen{}, &memStore{})

	require.True(t, c.SelectCategory(models.CategoryProgramming))
	snap := c.Snapshot()

	assert.Equal(t, ScreenQuestionForm, snap.Screen)
	assert.Equal(t, models.CategoryProgramming, snap.Category)
	assert.Equal(t, catalog.SeedAnswers(models.CategoryProgramming), snap.Answers)
	require.Len(t, snap.Questions, 3)
	assert.Equal(t, "prog_task", snap.Questions[0].ID)
}

func TestSelectCategoryRejectsUnknown(t *testing.T) {
	c := newController(&fakeGen{}, &memStore{})

	assert.False(t, c.SelectCategory("Cooking"))
	assert.Equal(t, ScreenCategorySelection, c.Snapshot().Screen)
}

func TestSubmitGeneratesPrompt(t *testing.T) {
	gen := &fakeGen{text: "Write a Go function that reverses a linked list."}
	c := newController(gen, &memStore{})

	snap := generate(t, c, models.CategoryProgramming, models.AnswerSet{
		"prog_task":     "write a function",
		"prog_language": "Go",
		"stray_field":   "dropped",
	})

	assert.Equal(t, gen.text, snap.Current.Text)
	assert.Equal(t, models.CategoryProgramming, snap.Current.Category)
	assert.Equal(t, 0, snap.Current.Rating)
	assert.NotEmpty(t, snap.Current.ID)
	assert.False(t, snap.Current.CreatedAt.IsZero())
	assert.False(t, snap.CurrentSaved)
	assert.Empty(t, snap.ErrorMessage)

	req := gen.lastRequest(t)
	assert.Equal(t, models.CategoryProgramming, req.Category)
	assert.Empty(t, req.PreviousText)
	assert.Equal(t, "Go", req.Answers["prog_language"])
	assert.NotContains(t, req.Answers, "stray_field")
	assert.NotContains(t, snap.Current.SourceAnswers, "stray_field")
}

func TestSubmitRejectedOffForm(t *testing.T) {
	c := newController(&fakeGen{}, &memStore{})
	assert.False(t, c.Submit(models.AnswerSet{}))
}

func TestSubmitRejectedWhileLoading(t *testing.T) {
	gen := &fakeGen{gate: make(chan struct{}), text: "done"}
	c := newController(gen, &memStore{})

	require.True(t, c.SelectCategory(models.CategoryWriting))
	require.True(t, c.Submit(models.AnswerSet{"writing_topic": "rain"}))
	assert.True(t, c.Snapshot().Loading)

	assert.False(t, c.Submit(models.AnswerSet{"writing_topic": "sun"}))

	close(gen.gate)
	snap := waitIdle(t, c)
	assert.Equal(t, "rain", snap.Current.SourceAnswers["writing_topic"])
}

func TestSubmitConfigErrorReturnsToCategorySelection(t *testing.T) {
	gen := &fakeGen{err: gemini.ErrInvalidAPIKey}
	c := newController(gen, &memStore{})

	require.True(t, c.SelectCategory(models.CategoryWriting))
	require.True(t, c.Submit(models.AnswerSet{"writing_topic": "rain"}))
	snap := waitIdle(t, c)

	assert.Equal(t, ScreenCategorySelection, snap.Screen)
	assert.True(t, snap.ConfigError)
	assert.Contains(t, snap.ErrorMessage, "Failed to generate prompt:")
	assert.Nil(t, snap.Current)
}

func TestSubmitGenericErrorStaysOnForm(t *testing.T) {
	gen := &fakeGen{err: errors.New("upstream timeout")}
	c := newController(gen, &memStore{})

	require.True(t, c.SelectCategory(models.CategoryWriting))
	require.True(t, c.Submit(models.AnswerSet{"writing_topic": "rain"}))
	snap := waitIdle(t, c)

	assert.Equal(t, ScreenQuestionForm, snap.Screen)
	assert.False(t, snap.ConfigError)
	assert.Contains(t, snap.ErrorMessage, "upstream timeout")
	assert.Nil(t, snap.Current)
	assert.Equal(t, "rain", snap.Answers["writing_topic"])
}

func TestRegenerateResetsRatingAndKeepsSavedEntry(t *testing.T) {
	gen := &fakeGen{text: "first version"}
	store := &memStore{}
	c := newController(gen, store)

	snap := generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})
	firstID := snap.Current.ID

	c.Rate(4)
	c.SaveToHistory()
	gen.setResult("second version", nil)

	require.True(t, c.Regenerate())
	snap = waitIdle(t, c)

	req := gen.lastRequest(t)
	assert.Equal(t, "first version", req.PreviousText)
	assert.Equal(t, "rain", req.Answers["writing_topic"])

	require.Equal(t, ScreenPromptDisplay, snap.Screen)
	assert.Equal(t, "second version", snap.Current.Text)
	assert.Equal(t, 0, snap.Current.Rating)
	assert.NotEqual(t, firstID, snap.Current.ID)
	assert.False(t, snap.CurrentSaved)

	require.Len(t, snap.History, 1)
	assert.Equal(t, firstID, snap.History[0].ID)
	assert.Equal(t, 4, snap.History[0].Rating)
}

func TestRegenerateFailureKeepsDisplayedRecord(t *testing.T) {
	gen := &fakeGen{text: "first version"}
	c := newController(gen, &memStore{})

	snap := generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})
	firstID := snap.Current.ID

	gen.setResult("", errors.New("upstream timeout"))
	require.True(t, c.Regenerate())
	snap = waitIdle(t, c)

	assert.Equal(t, ScreenPromptDisplay, snap.Screen)
	require.NotNil(t, snap.Current)
	assert.Equal(t, firstID, snap.Current.ID)
	assert.Equal(t, "first version", snap.Current.Text)
	assert.Contains(t, snap.ErrorMessage, "upstream timeout")
}

func TestRegenerateRejectedOffDisplay(t *testing.T) {
	c := newController(&fakeGen{}, &memStore{})
	assert.False(t, c.Regenerate())

	require.True(t, c.SelectCategory(models.CategoryWriting))
	assert.False(t, c.Regenerate())
}

func TestEditInputsRestoresAnswers(t *testing.T) {
	gen := &fakeGen{text: "generated"}
	c := newController(gen, &memStore{})

	generate(t, c, models.CategoryProgramming, models.AnswerSet{
		"prog_task":     "explain a concept",
		"prog_language": "Go",
	})

	c.EditInputs()
	snap := c.Snapshot()

	assert.Equal(t, ScreenQuestionForm, snap.Screen)
	assert.Equal(t, models.CategoryProgramming, snap.Category)
	assert.Equal(t, "explain a concept", snap.Answers["prog_task"])
	assert.Equal(t, "Go", snap.Answers["prog_language"])
}

func TestBackDiscardsFormState(t *testing.T) {
	c := newController(&fakeGen{}, &memStore{})
	require.True(t, c.SelectCategory(models.CategoryWriting))

	c.Back()
	snap := c.Snapshot()

	assert.Equal(t, ScreenCategorySelection, snap.Screen)
	assert.Empty(t, snap.Category)
	assert.Empty(t, snap.Answers)
	assert.Empty(t, snap.Questions)
}

func TestStartOverClearsEverything(t *testing.T) {
	gen := &fakeGen{text: "generated"}
	c := newController(gen, &memStore{})
	generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})

	c.StartOver()
	snap := c.Snapshot()

	assert.Equal(t, ScreenCategorySelection, snap.Screen)
	assert.Empty(t, snap.Category)
	assert.Nil(t, snap.Current)
	assert.Empty(t, snap.ErrorMessage)
}

func TestSaveToHistoryUpserts(t *testing.T) {
	gen := &fakeGen{text: "generated"}
	store := &memStore{}
	c := newController(gen, store)
	generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})

	c.SaveToHistory()
	snap := c.Snapshot()
	require.Len(t, snap.History, 1)
	assert.True(t, snap.CurrentSaved)

	// Re-saving after rating replaces the entry instead of duplicating it.
	c.Rate(3)
	c.SaveToHistory()
	snap = c.Snapshot()
	require.Len(t, snap.History, 1)
	assert.Equal(t, 3, snap.History[0].Rating)

	require.Len(t, store.LoadHistory(), 1)
}

func TestSaveToHistoryWithoutCurrentIsNoop(t *testing.T) {
	store := &memStore{}
	c := newController(&fakeGen{}, store)
	c.SaveToHistory()
	assert.Zero(t, store.saveCount())
}

func TestSaveToHistoryEvictsOldestPastCap(t *testing.T) {
	preloaded := make([]models.GeneratedPrompt, MaxHistory)
	for i := range preloaded {
		preloaded[i] = models.GeneratedPrompt{ID: fmt.Sprintf("p%d", i)}
	}
	gen := &fakeGen{text: "generated"}
	store := &memStore{history: preloaded}
	c := newController(gen, store)

	snap := generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})
	newID := snap.Current.ID
	c.SaveToHistory()

	history := c.Snapshot().History
	require.Len(t, history, MaxHistory)
	assert.Equal(t, newID, history[0].ID)
	assert.Equal(t, "p0", history[1].ID)
	assert.Equal(t, "p48", history[MaxHistory-1].ID)
	for _, p := range history {
		assert.NotEqual(t, "p49", p.ID)
	}
}

func TestRateClampsAndSyncsHistory(t *testing.T) {
	gen := &fakeGen{text: "generated"}
	store := &memStore{}
	c := newController(gen, store)
	generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})
	c.SaveToHistory()

	c.Rate(9)
	snap := c.Snapshot()
	assert.Equal(t, models.MaxRating, snap.Current.Rating)
	assert.Equal(t, models.MaxRating, snap.History[0].Rating)

	c.Rate(-2)
	snap = c.Snapshot()
	assert.Equal(t, models.MinRating, snap.Current.Rating)
	assert.Equal(t, models.MinRating, snap.History[0].Rating)
}

func TestRateWithoutCurrentIsNoop(t *testing.T) {
	store := &memStore{}
	c := newController(&fakeGen{}, store)
	c.Rate(5)
	assert.Zero(t, store.saveCount())
}

func TestRateUnsavedRecordDoesNotPersist(t *testing.T) {
	gen := &fakeGen{text: "generated"}
	store := &memStore{}
	c := newController(gen, store)
	generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})

	c.Rate(5)
	assert.Zero(t, store.saveCount())
	assert.Equal(t, 5, c.Snapshot().Current.Rating)
}

func TestUseHistoryRestoresEntry(t *testing.T) {
	entry := models.GeneratedPrompt{
		ID:            "h1",
		Text:          "Explain goroutines to a beginner.",
		Category:      models.CategoryProgramming,
		Rating:        3,
		SourceAnswers: models.AnswerSet{"prog_task": "explain a concept"},
	}
	c := newController(&fakeGen{}, &memStore{history: []models.GeneratedPrompt{entry}})

	require.True(t, c.UseHistory("h1"))
	snap := c.Snapshot()

	assert.Equal(t, ScreenPromptDisplay, snap.Screen)
	require.NotNil(t, snap.Current)
	assert.Equal(t, "h1", snap.Current.ID)
	assert.Equal(t, 3, snap.Current.Rating)
	assert.Equal(t, models.CategoryProgramming, snap.Category)
	assert.Equal(t, "explain a concept", snap.Answers["prog_task"])
	assert.True(t, snap.CurrentSaved)
}

func TestUseHistoryUnknownID(t *testing.T) {
	c := newController(&fakeGen{}, &memStore{})
	assert.False(t, c.UseHistory("missing"))
	assert.Equal(t, ScreenCategorySelection, c.Snapshot().Screen)
}

func TestDeleteHistory(t *testing.T) {
	store := &memStore{history: []models.GeneratedPrompt{{ID: "h1"}, {ID: "h2"}}}
	c := newController(&fakeGen{}, store)

	c.DeleteHistory("h1")
	history := c.Snapshot().History
	require.Len(t, history, 1)
	assert.Equal(t, "h2", history[0].ID)
	assert.Equal(t, 1, store.saveCount())

	// Deleting a missing id does not rewrite storage.
	c.DeleteHistory("h1")
	assert.Equal(t, 1, store.saveCount())
}

func TestDeleteHistoryKeepsDisplayedRecord(t *testing.T) {
	gen := &fakeGen{text: "generated"}
	c := newController(gen, &memStore{})
	snap := generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})
	c.SaveToHistory()

	c.DeleteHistory(snap.Current.ID)
	snap = c.Snapshot()

	assert.Empty(t, snap.History)
	require.NotNil(t, snap.Current)
	assert.False(t, snap.CurrentSaved)
}

func TestClearHistory(t *testing.T) {
	store := &memStore{history: []models.GeneratedPrompt{{ID: "h1"}, {ID: "h2"}}}
	c := newController(&fakeGen{}, store)

	c.ClearHistory()

	assert.Empty(t, c.Snapshot().History)
	assert.Empty(t, store.LoadHistory())
}

func TestToggleThemePersists(t *testing.T) {
	store := &memStore{}
	c := newController(&fakeGen{}, store)

	assert.Equal(t, models.ThemeDark, c.ToggleTheme())
	assert.Equal(t, models.ThemeDark, store.LoadTheme())

	assert.Equal(t, models.ThemeLight, c.ToggleTheme())
	assert.Equal(t, models.ThemeLight, store.LoadTheme())
}

func TestStaleGenerationResultDiscarded(t *testing.T) {
	gen := &fakeGen{gate: make(chan struct{}), text: "too late"}
	c := newController(gen, &memStore{})

	require.True(t, c.SelectCategory(models.CategoryWriting))
	require.True(t, c.Submit(models.AnswerSet{"writing_topic": "rain"}))
	require.True(t, c.Snapshot().Loading)

	c.StartOver()
	close(gen.gate)

	assert.Never(t, func() bool {
		snap := c.Snapshot()
		return snap.Current != nil || snap.Screen != ScreenCategorySelection || snap.Loading
	}, 300*time.Millisecond, 10*time.Millisecond)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	gen := &fakeGen{text: "generated"}
	c := newController(gen, &memStore{})
	generate(t, c, models.CategoryWriting, models.AnswerSet{"writing_topic": "rain"})
	c.SaveToHistory()

	snap := c.Snapshot()
	snap.Answers["writing_topic"] = "mutated"
	snap.Current.Text = "mutated"
	snap.History[0].Text = "mutated"

	fresh := c.Snapshot()
	assert.Equal(t, "rain", fresh.Answers["writing_topic"])
	assert.Equal(t, "generated", fresh.Current.Text)
	assert.Equal(t, "generated", fresh.History[0].Text)
}
