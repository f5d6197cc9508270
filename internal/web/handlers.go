package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/astview/internal/coordinator"
	"github.com/Mr-Dark-debug/astview/internal/render"
	"github.com/Mr-Dark-debug/astview/internal/surface"
)

//go:embed page.html.tmpl
var pageFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "page.html.tmpl"))

type pageData struct {
	Code    string
	Notice  string
	Display template.HTML
}

// display runs one trigger against a fresh surface and returns what the
// display region should hold, plus the HTTP status for it.
func (s *Server) display(r *http.Request, source string) (string, string, int) {
	buf := surface.NewBuffer()
	res := s.coord.Trigger(r.Context(), source, buf, buf)

	status := http.StatusOK
	switch res.Outcome {
	case coordinator.OutcomeEmpty:
		return "", buf.Notice(), http.StatusUnprocessableEntity
	case coordinator.OutcomeFailed:
		status = http.StatusBadGateway
	}

	fragment, err := render.HTMLString(buf.Current())
	if err != nil {
		s.logger.Error("rendering display", zap.Error(err))
		return "", "", http.StatusInternalServerError
	}
	return fragment, "", status
}

func (s *Server) writePage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("writing page", zap.Error(err))
	}
}

// handleIndex serves the empty viewer.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, pageData{})
}

// handleView parses the submitted form and serves the page with the
// display region replaced.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	code := r.PostForm.Get("code")

	fragment, notice, status := s.display(r, code)
	s.writePage(w, status, pageData{
		Code:    code,
		Notice:  notice,
		Display: template.HTML(fragment),
	})
}

// handleAPIRender takes raw source text as the body and returns only the
// display region's HTML.
func (s *Server) handleAPIRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSourceSize))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	fragment, notice, status := s.display(r, string(body))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	out := strings.TrimSpace(fragment)
	if notice != "" {
		out = `<div class="alert" role="alert">` + template.HTMLEscapeString(notice) + "</div>"
	}
	if _, err := io.WriteString(w, out); err != nil {
		s.logger.Debug("writing render response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		s.logger.Debug("writing health response", zap.Error(err))
	}
}
