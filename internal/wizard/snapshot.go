package wizard

import (
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/catalog"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/models"
)

// Snapshot is an immutable view of the controller for rendering. All
// slices and maps are copies; mutating them does not affect the session.
type Snapshot struct {
	Screen       Screen
	Theme        models.Theme
	Category     models.Category
	Questions    []models.Question
	Answers      models.AnswerSet
	Current      *models.GeneratedPrompt
	CurrentSaved bool
	ErrorMessage string
	ConfigError  bool
	History      []models.GeneratedPrompt
	Loading      bool
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Screen:       c.screen,
		Theme:        c.theme,
		Category:     c.category,
		Answers:      c.answers.Clone(),
		ErrorMessage: c.errMsg,
		ConfigError:  c.errCfg,
		Loading:      c.loading,
	}
	if c.category != "" {
		snap.Questions = catalog.Questions(c.category)
	}
	if c.current != nil {
		current := c.current.Clone()
		snap.Current = &current
		for _, p := range c.history {
			if p.ID == current.ID {
				snap.CurrentSaved = true
				break
			}
		}
	}
	snap.History = make([]models.GeneratedPrompt, 0, len(c.history))
	for _, p := range c.history {
		snap.History = append(snap.History, p.Clone())
	}
	return snap
}
