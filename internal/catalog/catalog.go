// Package catalog holds the static per-category question catalogue that
// drives the wizard's dynamic form.
package catalog

import "github.com/link2dawood/Free-AI-Prompt-Generator/internal/models"

var categories = []models.Category{
	models.CategoryWriting,
	models.CategoryProgramming,
	models.CategoryBusiness,
	models.CategorySocialMedia,
	models.CategoryLearning,
	models.CategoryCustom,
}

var questions = map[models.Category][]models.Question{
	models.CategoryWriting: {
		{ID: "writing_topic", Type: models.QuestionText, Label: "Main topic or subject?", Placeholder: "e.g., a fantasy novel, a technical blog post"},
		{ID: "writing_style", Type: models.QuestionText, Label: "Desired style or tone?", Placeholder: "e.g., formal, humorous, persuasive"},
		{ID: "writing_audience", Type: models.QuestionText, Label: "Target audience?", Placeholder: "e.g., children, experts, general public"},
		{ID: "writing_details", Type: models.QuestionTextarea, Rows: 3, Label: "Any specific details or keywords to include?", Placeholder: `e.g., mention a character named Alex, include the keyword "innovation"`},
	},
	models.CategoryProgramming: {
		{ID: "prog_task", Type: models.QuestionText, Label: "Programming task?", Placeholder: "e.g., generate a Python function, explain a concept"},
		{ID: "prog_language", Type: models.QuestionText, Label: "Programming language/technology?", Placeholder: "e.g., JavaScript, Python, React"},
		{ID: "prog_context", Type: models.QuestionTextarea, Rows: 4, Label: "Relevant context or code snippet (optional)?", Placeholder: "Paste code here or describe the situation..."},
	},
	models.CategoryBusiness: {
		{ID: "biz_goal", Type: models.QuestionText, Label: "Business objective?", Placeholder: "e.g., increase sales, draft a marketing email"},
		{ID: "biz_product", Type: models.QuestionText, Label: "Product or service?", Placeholder: "e.g., a new mobile app, a consulting service"},
		{ID: "biz_audience", Type: models.QuestionText, Label: "Target audience/stakeholder?", Placeholder: "e.g., potential investors, existing customers"},
		{ID: "biz_tone", Type: models.QuestionText, Label: "Desired tone for communication?", Placeholder: "e.g., professional, friendly, urgent"},
	},
	models.CategorySocialMedia: {
		{ID: "social_platform", Type: models.QuestionText, Label: "Social media platform?", Placeholder: "e.g., Instagram, Twitter (X), LinkedIn"},
		{ID: "social_content_type", Type: models.QuestionText, Label: "Type of content?", Placeholder: "e.g., caption for a photo, a tweet thread idea"},
		{ID: "social_goal", Type: models.QuestionText, Label: "Goal of the post?", Placeholder: "e.g., engagement, brand awareness, drive traffic"},
		{ID: "social_vibe", Type: models.QuestionText, Label: "Desired vibe or key message?", Placeholder: "e.g., fun and quirky, informative and helpful"},
	},
	models.CategoryLearning: {
		{ID: "learn_subject", Type: models.QuestionText, Label: "Subject or topic?", Placeholder: "e.g., World War II, calculus, learning Spanish"},
		{ID: "learn_objective", Type: models.QuestionText, Label: "Learning objective?", Placeholder: "e.g., explain a concept simply, create study questions"},
		{ID: "learn_level", Type: models.QuestionText, Label: "Learning level?", Placeholder: "e.g., beginner, intermediate, advanced"},
		{ID: "learn_format", Type: models.QuestionText, Label: "Preferred format for the AI's help?", Placeholder: "e.g., a summary, a list of key points, an analogy"},
	},
	models.CategoryCustom: {
		{ID: "custom_goal", Type: models.QuestionTextarea, Rows: 3, Label: "Primary goal for your prompt?", Placeholder: "Describe what you want the AI to help you with..."},
		{ID: "custom_context", Type: models.QuestionTextarea, Rows: 4, Label: "Key details, context, or constraints?", Placeholder: "e.g., specific keywords, desired output format, AI persona"},
	},
}

// Categories returns the fixed category list in display order.
func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether cat is one of the known categories.
func Valid(cat models.Category) bool {
	_, ok := questions[cat]
	return ok
}

// Questions returns the question list for a category in catalogue order.
func Questions(cat models.Category) []models.Question {
	qs := questions[cat]
	out := make([]models.Question, len(qs))
	copy(out, qs)
	return out
}

// SeedAnswers builds an empty answer set whose keys exactly match the
// category's question IDs.
func SeedAnswers(cat models.Category) models.AnswerSet {
	qs := questions[cat]
	answers := make(models.AnswerSet, len(qs))
	for _, q := range qs {
		answers[q.ID] = ""
	}
	return answers
}
