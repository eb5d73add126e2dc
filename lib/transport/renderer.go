package transport

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/lib"
	"github.com/labstack/echo/v4"
)

const layoutTemplate = "layout.html"

var templateFuncs = template.FuncMap{
	"currency": lib.FormatCurrency,
	"amount": func(cents int64) string {
		return lib.FromMinorUnits(cents).StringFixed(2)
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"isoDate": func(t time.Time) string {
		return t.Format(common.DateLayout)
	},
	"pages": func(total int) []int {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	},
}

// Renderer renders a page wrapped in the shared layout. Every page is parsed
// into its own template set so their "content" blocks do not collide.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout and the given pages (name -> file) from fsys.
func NewRenderer(fsys fs.FS, pages map[string]string) (*Renderer, error) {
	layout, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(fsys, layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for name, file := range pages {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
