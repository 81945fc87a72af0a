package render

import (
	"html/template"
	"io"

	"github.com/yumyai/protview/pkg/model"
)

var proteinPageTemplate *template.Template
var notFoundPageTemplate *template.Template

// RelatedRow is one related protein with the score linking it to the page's protein.
type RelatedRow struct {
	Protein model.Protein
	Jaccard float64
}

type ProteinPageData struct {
	Mode    string
	Protein model.Protein
	Related []RelatedRow
}

func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		{{template "head" .}}
		<title>{{.Protein.Entry}} - ` + appTitle + `</title>
	</head>
	<body>
		{{template "header" .}}
		<nav class="tabs">
			<a class="active" href="/protein/{{.Protein.Entry}}">Details</a>
			<a href="/graph/{{.Protein.Entry}}">Graph</a>
		</nav>
		{{template "details" .Protein}}
		{{template "sequence" .Protein}}
		{{template "related" .}}
	</body>
	</html>`

	detailsTmpl := `
	{{define "details"}}
	<section class="details">
		<h2>{{.Entry}} <small>{{.EntryName}}</small> {{template "reviewedBadge" .Reviewed}}</h2>
		<dl>
			<dt>Protein</dt><dd>{{.DisplayName}}</dd>
			{{if .HasAlternateNames}}<dt>Alternate names</dt><dd>{{.ProteinName}}</dd>{{end}}
			<dt>Organism</dt><dd><em>{{.Organism}}</em></dd>
			<dt>Gene</dt><dd>{{.GeneNameOrNA}}</dd>
			{{if .ECNumber}}<dt>EC number</dt><dd>{{.ECNumber}}</dd>{{end}}
			<dt>Length</dt><dd>{{comma .Length}} aa</dd>
			{{if .SimilarCount}}<dt>Similar proteins</dt><dd>{{.SimilarCount}}</dd>{{end}}
		</dl>
		<h3>InterPro domains ({{.DomainCount}})</h3>
		{{if .Domains}}
		<ul class="domains">
			{{range .Domains}}<li><a href="https://www.ebi.ac.uk/interpro/entry/InterPro/{{.}}/" target="_blank">{{.}}</a></li>{{end}}
		</ul>
		{{else}}
			<p class="empty">No domains annotated.</p>
		{{end}}
	</section>
	{{end}}`

	sequenceTmpl := `
	{{define "sequence"}}
	<section class="sequence">
		<h3>Sequence [<a href="/sequence/by-entry?entry={{.Entry}}" target="_blank">FASTA</a>]</h3>
		<pre>{{.SequencePreview 100}}</pre>
		{{if gt .Length 100}}
		<details>
			<summary>Show full sequence</summary>
			<pre>{{.Sequence}}</pre>
		</details>
		{{end}}
	</section>
	{{end}}`

	relatedTmpl := `
	{{define "related"}}
	<section class="related">
		<h3>Related proteins</h3>
		{{if .Related}}
		<table class="protein-table">
			<tr><th>Entry</th><th>Protein</th><th>Organism</th><th>Status</th><th>Jaccard</th></tr>
			{{range .Related}}
			<tr>
				<td><a href="/protein/{{.Protein.Entry}}">{{.Protein.Entry}}</a></td>
				<td>{{.Protein.DisplayName}}</td>
				<td><em>{{.Protein.Organism}}</em></td>
				<td>{{template "reviewedBadge" .Protein.Reviewed}}</td>
				<td class="num">{{score .Jaccard}}</td>
			</tr>
			{{end}}
		</table>
		{{else}}
			<p class="empty">No related proteins.</p>
		{{end}}
	</section>
	{{end}}`

	proteinPageTemplate = newPage("protein_page", mainTmpl, detailsTmpl, sequenceTmpl, relatedTmpl)

	notFoundTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		{{template "head" .}}
		<title>Not found - ` + appTitle + `</title>
	</head>
	<body>
		{{template "header" .}}
		<p class="empty">No protein with entry <strong>{{.Entry}}</strong>. <a href="/">Back to the list</a></p>
	</body>
	</html>`

	notFoundPageTemplate = newPage("not_found", notFoundTmpl)
}

func RenderProteinPage(w io.Writer, data ProteinPageData) error {
	return proteinPageTemplate.Execute(w, data)
}

// RenderNotFoundPage tells the user entry does not exist.
func RenderNotFoundPage(w io.Writer, mode, entry string) error {
	return notFoundPageTemplate.Execute(w, struct {
		Mode  string
		Entry string
	}{Mode: mode, Entry: entry})
}
