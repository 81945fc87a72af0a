package render

import (
	"html/template"
	"io"

	"github.com/yumyai/protview/pkg/model"
)

var graphPageTemplate *template.Template

type GraphPageData struct {
	Mode       string
	Entry      string
	MinJaccard float64
	Graph      model.Graph
}

func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		{{template "head" .}}
		<title>{{.Entry}} graph - ` + appTitle + `</title>
	</head>
	<body>
		{{template "header" .}}
		<nav class="tabs">
			<a href="/protein/{{.Entry}}">Details</a>
			<a class="active" href="/graph/{{.Entry}}">Graph</a>
		</nav>
		<section class="graph">
			<form action="/graph/{{.Entry}}" method="GET">
				<label>Minimum Jaccard:
					<input type="number" name="min_jaccard" min="0" max="1" step="0.05" value="{{score .MinJaccard}}"></input>
				</label>
				<input type="submit" value="Apply"></input>
				[<a href="/api/v1/proteins/{{.Entry}}/graph?min_jaccard={{score .MinJaccard}}" target="_blank">JSON</a>]
			</form>
			<div id="graph-canvas" class="graph-canvas" data-source="/api/v1/proteins/{{.Entry}}/graph?min_jaccard={{score .MinJaccard}}">
				<p>{{len .Graph.Nodes}} nodes, {{len .Graph.Edges}} edges</p>
			</div>
			{{if .Graph.Edges}}
			<table class="protein-table">
				<tr><th>Source</th><th>Target</th><th>Similarity</th></tr>
				{{range .Graph.Edges}}
				<tr>
					<td>{{.Source}}</td>
					<td><a href="/graph/{{.Target}}">{{.Target}}</a></td>
					<td class="num">{{score .Similarity}}</td>
				</tr>
				{{end}}
			</table>
			{{else}}
				<p class="empty">No correlations above the threshold.</p>
			{{end}}
		</section>
	</body>
	</html>`

	graphPageTemplate = newPage("graph_page", mainTmpl)
}

// RenderGraphPage renders the graph placeholder: a summary and an edge table.
func RenderGraphPage(w io.Writer, data GraphPageData) error {
	return graphPageTemplate.Execute(w, data)
}
