package render

import (
	"html/template"
	"io"

	"github.com/yumyai/protview/pkg/handler/request"
	"github.com/yumyai/protview/pkg/model"
)

var listPageTemplate *template.Template

// ListPageData is the protein list with an optional preview of the selected protein.
type ListPageData struct {
	Mode      string
	Request   request.ProteinListRequest
	Rows      []model.Protein
	Total     int
	TotalPage int

	// Preview is set when Request.Selected names a known protein.
	Preview *model.Protein
	Related []model.Protein
}

func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		{{template "head" .}}
		<title>` + appTitle + `</title>
	</head>
	<body>
		{{template "header" .}}
		{{template "searchForm" .}}
		<div class="list-layout">
			<div class="list-column">
				{{template "table" .}}
				{{template "pagination" .}}
			</div>
			{{if .Preview}}{{template "preview" .}}{{end}}
		</div>
	</body>
	</html>`

	searchForm := `
	{{define "searchForm"}}
	<form id="searchForm" class="search-form" action="/" method="GET">
		<div class="form-row">
			<label>Search by:
				<select name="search_by">
					<option value="entry"       {{if eq .Request.Search_By.String "entry"}}selected{{end}}>Entry</option>
					<option value="name"        {{if eq .Request.Search_By.String "name"}}selected{{end}}>Name</option>
					<option value="description" {{if eq .Request.Search_By.String "description"}}selected{{end}}>Description</option>
				</select>
			</label>
			<input type="text" name="q" placeholder="Filter by entry, e.g. P69905" value="{{.Request.Query}}"></input>
			<label>Page Size:
				<select name="page_size">
					<option value=25  {{if eq .Request.Page_Size 25}}selected{{end}}>25</option>
					<option value=50  {{if eq .Request.Page_Size 50}}selected{{end}}>50</option>
					<option value=100 {{if eq .Request.Page_Size 100}}selected{{end}}>100</option>
				</select>
			</label>
			<input type="submit" value="Search"></input>
		</div>
	</form>
	{{end}}`

	tableTmpl := `
	{{define "table"}}
		<p class="result-count">{{comma .Total}} {{plural .Total "protein" "proteins"}}</p>
		{{if .Rows}}
		<table class="protein-table">
			<tr>
				<th>Entry</th>
				<th>Entry name</th>
				<th>Protein</th>
				<th>Organism</th>
				<th>Status</th>
				<th>Length</th>
				<th>Domains</th>
			</tr>
			{{range .Rows}}
			<tr{{if eq .Entry $.Request.Selected}} class="selected"{{end}}>
				<td><a href="/?q={{$.Request.Query}}&search_by={{$.Request.Search_By}}&page={{$.Request.Page}}&page_size={{$.Request.Page_Size}}&selected={{.Entry}}">{{.Entry}}</a></td>
				<td>{{.EntryName}}</td>
				<td class="col-name"><a href="/protein/{{.Entry}}" title="{{.ProteinName}}">{{.DisplayName}}</a></td>
				<td><em>{{.Organism}}</em></td>
				<td>{{template "reviewedBadge" .Reviewed}}</td>
				<td class="num">{{comma .Length}}</td>
				<td class="num">{{.DomainCount}}</td>
			</tr>
			{{end}}
		</table>
		{{else}}
			<p class="empty">No proteins found.</p>
		{{end}}
	{{end}}`

	previewTmpl := `
	{{define "preview"}}
	<aside class="preview">
		<h2><a href="/protein/{{.Preview.Entry}}">{{.Preview.Entry}}</a> {{template "reviewedBadge" .Preview.Reviewed}}</h2>
		<p>{{.Preview.DisplayName}}</p>
		<p><em>{{.Preview.Organism}}</em>, {{comma .Preview.Length}} aa</p>
		<h3>Related proteins</h3>
		{{if .Related}}
		<ul>
			{{range .Related}}<li><a href="/protein/{{.Entry}}">{{.Entry}}</a> {{.DisplayName}}</li>{{end}}
		</ul>
		{{else}}
			<p class="empty">No related proteins.</p>
		{{end}}
	</aside>
	{{end}}`

	paginationTmpl := `{{define "pagination"}}
	<div class="pagination">
		{{if gt .Request.Page 1}}
			<a href="/?q={{.Request.Query}}&search_by={{.Request.Search_By}}&page={{sub .Request.Page 1}}&page_size={{.Request.Page_Size}}">&lt;&lt; prev</a>
		{{else}}
			<span>&lt;&lt; prev</span>
		{{end}}
		<span>{{.Request.Page}} / {{.TotalPage}}</span>
		{{if lt .Request.Page .TotalPage}}
			<a href="/?q={{.Request.Query}}&search_by={{.Request.Search_By}}&page={{add .Request.Page 1}}&page_size={{.Request.Page_Size}}">next &gt;&gt;</a>
		{{else}}
			<span>next &gt;&gt;</span>
		{{end}}
	</div>{{end}}`

	listPageTemplate = newPage("protein_list", mainTmpl, searchForm, tableTmpl, previewTmpl, paginationTmpl)
}

// RenderProteinListPage renders one page of the (already filtered) protein list.
func RenderProteinListPage(w io.Writer, data ListPageData) error {
	if data.TotalPage < 1 {
		data.TotalPage = 1
	}
	return listPageTemplate.Execute(w, data)
}
