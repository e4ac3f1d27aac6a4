package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views renders the HTML pages
type Views struct {
	templates *template.Template
	appName   string
	logger    *zap.Logger
}

// page is the data passed to every template
type page struct {
	AppName string
	Title   string
	Data    interface{}
}

// formPage backs the create and edit forms
type formPage struct {
	Form     interface{}
	Errors   map[string]string
	PhotoURL string
}

// errorPage backs error.html
type errorPage struct {
	Status  int
	Message string
}

// NewViews parses the embedded templates
func NewViews(appName string, logger *zap.Logger) (*Views, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("2006/01/02 15:04:05")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Views{templates: tmpl, appName: appName, logger: logger}, nil
}

// Render executes the named page into a buffer so a template error never
// produces a half-written response.
func (v *Views) Render(w http.ResponseWriter, status int, name, title string, data interface{}) {
	var buf bytes.Buffer
	err := v.templates.ExecuteTemplate(&buf, name, page{AppName: v.appName, Title: title, Data: data})
	if err != nil {
		v.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError shows the error page
func (v *Views) RenderError(w http.ResponseWriter, status int, message string) {
	v.Render(w, status, "error", http.StatusText(status), errorPage{Status: status, Message: message})
}

// respondError writes an error in the format the client asked for
func respondError(w http.ResponseWriter, r *http.Request, views *Views, status int, message string) {
	if wantsJSON(r) {
		respondWithError(w, status, message)
		return
	}
	views.RenderError(w, status, message)
}
