package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"game_inventory/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageList = "list.html"
	pageForm = "form.html"
)

type Mode string

const (
	ModeNew  Mode = "new"
	ModeEdit Mode = "edit"
)

// ListPage is the data of the listing page.
type ListPage struct {
	View  models.View
	Games []models.Game
	Error string
}

// FormPage is the data of the create/edit page. Game is nil for an empty
// create form.
type FormPage struct {
	Mode  Mode
	Game  *models.Game
	Error string
}

func (p FormPage) Action() string {
	if p.Mode == ModeEdit && p.Game != nil {
		return fmt.Sprintf("/items/edit/%d", p.Game.ID)
	}
	return "/items/new"
}

// Renderer holds the parsed page templates. It is safe for concurrent use.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"price": func(p float64) string {
		return strconv.FormatFloat(p, 'f', 2, 64)
	},
}

func New() (*Renderer, error) {
	const op = "views.New"

	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageList, pageForm} {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+page); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

func (r *Renderer) List(w http.ResponseWriter, status int, data ListPage) error {
	return r.render(w, pageList, status, data)
}

func (r *Renderer) Form(w http.ResponseWriter, status int, data FormPage) error {
	return r.render(w, pageForm, status, data)
}

// render executes into a buffer so a template failure never leaves a
// half-written page behind.
func (r *Renderer) render(w http.ResponseWriter, page string, status int, data any) error {
	const op = "views.render"

	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%s: unknown page %q", op, page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets. Mount it under /static/ with the prefix
// stripped.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
