package models

import "time"

// Theme selects the visual appearance applied to the root page element.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme for a stored string, defaulting to light
// for absent or unrecognized values.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// IsDark reports whether the dark theme is active. Used by templates.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Category is one of the fixed use-case buckets that selects a question catalogue.
type Category string

const (
	CategoryWriting     Category = "Writing"
	CategoryProgramming Category = "Programming"
	CategoryBusiness    Category = "Business"
	CategorySocialMedia Category = "Social Media"
	CategoryLearning    Category = "Learning & Education"
	CategoryCustom      Category = "Custom / Other"
)

type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
)

// Question describes one form field of a category's questionnaire.
type Question struct {
	ID          string
	Label       string
	Placeholder string
	Type        QuestionType
	Rows        int // textarea height, 0 for single-line inputs
}

// AnswerSet maps question IDs to the user's free-text answers. Iteration
// order is defined by the owning category's question catalogue, not the map.
type AnswerSet map[string]string

// Clone returns an independent copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return AnswerSet{}
	}
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

const (
	MinRating = 0 // unrated
	MaxRating = 5
)

// ClampRating forces a rating into the valid [0,5] range. Out-of-range
// values can arrive through the history reuse path.
func ClampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// GeneratedPrompt is one generated result plus its metadata and the answers
// it was generated from. JSON tags define the persisted history format.
type GeneratedPrompt struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Category      Category  `json:"category"`
	CreatedAt     time.Time `json:"createdAt"`
	Rating        int       `json:"rating"` // 0-5 stars, 0 means unrated
	SourceAnswers AnswerSet `json:"sourceAnswers"`
}

// Clone returns an independent copy, including the source answers.
func (p GeneratedPrompt) Clone() GeneratedPrompt {
	out := p
	out.SourceAnswers = p.SourceAnswers.Clone()
	return out
}
