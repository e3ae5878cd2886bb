package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/catalog"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/models"
	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/wizard"
)

type pageData struct {
	Snap       wizard.Snapshot
	Categories []models.Category
}

func (s *Server) data() pageData {
	return pageData{
		Snap:       s.wizard.Snapshot(),
		Categories: catalog.Categories(),
	}
}

// handleIndex renders whichever screen the controller says is active. The
// busy screen takes over while a generation call is outstanding.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.data()
	if data.Snap.Loading {
		s.renderPage(w, "generating.html", data)
		return
	}

	switch data.Snap.Screen {
	case wizard.ScreenQuestionForm:
		s.renderPage(w, "form.html", data)
	case wizard.ScreenPromptDisplay:
		s.renderPage(w, "display.html", data)
	default:
		s.renderPage(w, "category.html", data)
	}
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	s.wizard.SelectCategory(models.Category(r.FormValue("category")))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	snap := s.wizard.Snapshot()
	answers := make(models.AnswerSet, len(snap.Questions))
	for _, q := range snap.Questions {
		answers[q.ID] = r.FormValue(q.ID)
	}
	s.wizard.Submit(answers)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGeneratingStatus is polled by the busy screen; the page reloads
// once loading turns false and lands on whatever screen is current then.
func (s *Server) handleGeneratingStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"loading": s.wizard.Snapshot().Loading,
	})
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	s.wizard.Regenerate()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEditInputs(w http.ResponseWriter, r *http.Request) {
	s.wizard.EditInputs()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.wizard.Back()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleStartOver(w http.ResponseWriter, r *http.Request) {
	s.wizard.StartOver()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.wizard.SaveToHistory()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		http.Error(w, "Invalid rating", http.StatusBadRequest)
		return
	}
	s.wizard.Rate(rating)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	s.wizard.ToggleTheme()
	redirectBack(w, r)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "history.html", s.data())
}

func (s *Server) handleUseHistory(w http.ResponseWriter, r *http.Request) {
	if !s.wizard.UseHistory(r.PathValue("id")) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	s.wizard.DeleteHistory(r.PathValue("id"))
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.wizard.ClearHistory()
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

// redirectBack returns to the page the action was triggered from; the
// theme toggle lives in the header of every page.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
