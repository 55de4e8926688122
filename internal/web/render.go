package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/utakatalp/nba-tracker/internal/apperrors"
	"github.com/utakatalp/nba-tracker/internal/auth"
	"github.com/utakatalp/nba-tracker/internal/league"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutTemplate = "layout.html"
	displayDate    = "January 02, 2006"
)

var funcs = template.FuncMap{
	"formatDate": formatDate,
	"avg":        formatAverage,
	"sameID":     sameID,
}

// view is the data every page template receives.
type view struct {
	Title   string
	Session *auth.Session
	Flash   *flash
	Error   string
	Data    any
}

func parsePages() (map[string]*template.Template, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		base := path.Base(name)
		if base == layoutTemplate {
			continue
		}
		t, err := template.New(layoutTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", base, err)
		}
		pages[strings.TrimSuffix(base, ".html")] = t
	}
	return pages, nil
}

// render executes a page into a buffer first so a template failure still
// produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, v view) {
	tmpl, ok := s.pages[page]
	if !ok {
		log.Printf("web: unknown page %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if sess, ok := auth.SessionFrom(r.Context()); ok {
		v.Session = &sess
	}
	v.Flash = popFlash(w, r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, v); err != nil {
		log.Printf("web: rendering %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Status  int
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int) {
	msg := "Something went wrong on our side."
	if status == http.StatusNotFound {
		msg = "The page you were looking for does not exist."
	}
	s.render(w, r, status, "error", view{
		Title: http.StatusText(status),
		Data:  errorPage{Status: status, Message: msg},
	})
}

// fail renders the page matching err. Anything that is not a lookup miss is
// logged and shown as a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		s.renderError(w, r, http.StatusNotFound)
		return
	}
	log.Printf("web: %s %s: %v", r.Method, r.URL.Path, err)
	s.renderError(w, r, http.StatusInternalServerError)
}

// invalid re-renders a form with the validation message, or falls back to
// fail for any other error.
func (s *Server) invalid(w http.ResponseWriter, r *http.Request, page string, v view, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidationFailed {
		s.fail(w, r, err)
		return
	}
	v.Error = appErr.Message
	s.render(w, r, apperrors.HTTPStatus(err), page, v)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// formatDate renders dates as "January 02, 2006" and absent dates as "".
func formatDate(v any) string {
	switch d := v.(type) {
	case league.Date:
		if d.IsZero() {
			return ""
		}
		return d.Format(displayDate)
	case league.NullDate:
		if !d.Valid {
			return ""
		}
		return formatDate(d.Date)
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.Format(displayDate)
	case string:
		t, err := league.ParseISO(d)
		if err != nil {
			return d
		}
		return t.Format(displayDate)
	default:
		return ""
	}
}

func formatAverage(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// sameID reports whether a raw form value names id. Used to keep select
// options chosen after a failed submission.
func sameID(raw string, id int64) bool {
	return strings.TrimSpace(raw) == strconv.FormatInt(id, 10)
}
