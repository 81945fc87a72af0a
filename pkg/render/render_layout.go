package render

import (
	"fmt"
	"html/template"

	"github.com/dustin/go-humanize"
)

const appTitle = "Protein Reference Viewer"

// Shared by every page template.
var funcMap = template.FuncMap{
	"add":   func(a, b int) int { return a + b },
	"sub":   func(a, b int) int { return a - b },
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"score": func(f float64) string { return fmt.Sprintf("%.3f", f) },
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

const headTmpl = `
{{define "head"}}
	<meta charset="utf-8">
	<link href="/static/style.css" rel="stylesheet"></link>
{{end}}`

const headerTmpl = `
{{define "header"}}
	<header class="app-header">
		<h1 class="app-name"><a href="/">` + appTitle + `</a></h1>
		<p class="app-description">
			Browse reference proteins, their domains and sequences, and the proteins that share
			annotation with them.
		</p>
		{{if .Mode}}<span class="mode-badge mode-{{.Mode}}">{{.Mode}} data</span>{{end}}
	</header>
{{end}}`

const reviewedBadgeTmpl = `
{{define "reviewedBadge"}}
	{{if .IsReviewed}}<span class="badge badge-reviewed" title="Reviewed (Swiss-Prot)">reviewed</span>{{else}}<span class="badge badge-unreviewed" title="Unreviewed (TrEMBL)">unreviewed</span>{{end}}
{{end}}`

// newPage parses the shared fragments followed by the page's own templates.
func newPage(name string, templates ...string) *template.Template {
	t := template.New(name).Funcs(funcMap)
	t = template.Must(t.Parse(headTmpl))
	t = template.Must(t.Parse(headerTmpl))
	t = template.Must(t.Parse(reviewedBadgeTmpl))
	for _, tmpl := range templates {
		t = template.Must(t.Parse(tmpl))
	}
	return t
}
