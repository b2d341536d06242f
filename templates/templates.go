package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"os"

	"github.com/gin-contrib/multitemplate"

	"mcq-server/models"
	"mcq-server/utils"
)

//go:embed *.html
var embedded embed.FS

// Pages rendered inside layout.html, by template name.
var Pages = []string{"loading", "error", "empty", "intro", "exam", "result"}

// Funcs available to every page.
var Funcs = template.FuncMap{
	"letter": utils.OptionLetter,
	"inc":    func(i int) int { return i + 1 },
	"round":  func(f float64) int { return int(math.Round(f)) },
	"isSelected": func(selected *int, i int) bool {
		return selected != nil && *selected == i
	},
	"isCorrect": func(a *models.UserAnswer) bool {
		return a != nil && a.IsCorrect != nil && *a.IsCorrect
	},
}

// NewRenderer parses the pages from dir, or from the embedded copies when dir is empty.
func NewRenderer(dir string) (multitemplate.Render, error) {
	var fsys fs.FS = embedded
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	renderer := multitemplate.New()
	for _, page := range Pages {
		tmpl, err := template.New("layout.html").Funcs(Funcs).ParseFS(fsys, "layout.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		renderer.Add(page, tmpl)
	}
	return renderer, nil
}
