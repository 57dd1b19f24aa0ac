package webui

import (
	"embed"
	"html/template"
	"io"
	"net/url"

	"tasksync/internal/tasksync"
)

//go:embed templates/index.html
var templates embed.FS

// Task ids are opaque, so they are escaped as a single path segment.
var pageFuncs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

var pageTmpl = template.Must(template.New("index.html").Funcs(pageFuncs).ParseFS(templates, "templates/index.html"))

// Page is the data behind the task page.
type Page struct {
	Entries []tasksync.Entry
	Input   string
	Error   string
}

// RenderPage writes the task page.
func RenderPage(w io.Writer, p Page) error {
	return pageTmpl.ExecuteTemplate(w, "index.html", p)
}
