package report

import "html/template"

const noDataText = "No data"

const sharedTemplates = `
{{define "head"}}<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}}</title>
<style>
:root { --primary: #3b82f6; --accent: #0ea5e9; --muted: #64748b; --border: #e2e8f0; --bg: #ffffff; }
* { box-sizing: border-box; }
body { margin: 0; font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Ubuntu, Cantarell, Noto Sans, Arial, sans-serif; background: #fff; color: #0f172a; }
.container { padding: 20px; }
.brand { height: 8px; background: var(--primary); }
.header { display: flex; justify-content: space-between; align-items: flex-start; gap: 12px; margin-top: 16px; }
.title { font-size: 22px; font-weight: 800; }
.subtitle { color: var(--muted); font-size: 12px; margin-top: 4px; }
.chips { display: flex; gap: 8px; flex-wrap: wrap; }
.chip { padding: 6px 10px; border: 1px solid var(--border); border-radius: 8px; background: #f8fafc; font-size: 12px; color: #475569; }
.grid { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
.section { margin-top: 18px; }
.section-title { font-size: 14px; font-weight: 700; margin-bottom: 8px; }
.card { border: 1px solid var(--border); border-radius: 10px; padding: 12px; background: var(--bg); box-shadow: 0 2px 8px rgba(0,0,0,0.04); }
.bar-row { display: grid; grid-template-columns: 1fr 4fr auto; gap: 10px; align-items: center; margin: 6px 0; }
.bar-label { font-size: 12px; color: #334155; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.bar-track { height: 10px; background: #f1f5f9; border-radius: 999px; overflow: hidden; border: 1px solid #e2e8f0; }
.bar-fill { height: 100%; background: linear-gradient(90deg, var(--primary), var(--accent)); }
.bar-value { font-size: 12px; color: #334155; min-width: 90px; text-align: right; }
.empty { font-size: 12px; color: var(--muted); padding: 12px; }
table { width: 100%; border-collapse: separate; border-spacing: 0; }
thead th { text-align: left; font-size: 12px; font-weight: 700; background: #f8fafc; padding: 8px; border-top: 1px solid var(--border); border-bottom: 1px solid var(--border); }
thead th.num { text-align: right; }
tbody td { font-size: 12px; padding: 8px; border-bottom: 1px solid var(--border); color: #334155; }
.cell.num { text-align: right; white-space: nowrap; }
.cell.name { max-width: 260px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.cell.emph { color: var(--primary); font-weight: 700; }
.footer { margin-top: 16px; color: #64748b; font-size: 10px; text-align: right; }
</style>{{end}}

{{define "header"}}<div class="header">
<div>
<div class="title">{{.Title}}</div>
<div class="subtitle">{{.Subtitle}}</div>
</div>
<div class="chips">{{range .Chips}}<div class="chip">{{.Label}}: {{.Value}}</div>{{end}}</div>
</div>{{end}}

{{define "bars"}}<div class="card">{{range .}}<div class="bar-row">
<div class="bar-label" title="{{.Title}}">{{.Label}}</div>
<div class="bar-track"><div class="bar-fill" style="width:{{.Width}}%"></div></div>
<div class="bar-value">{{.Value}}</div>
</div>{{else}}<div class="empty">` + noDataText + `</div>{{end}}</div>{{end}}

{{define "table"}}<div class="card"><table>
<thead><tr>{{range .Columns}}<th{{if .Numeric}} class="num"{{end}}>{{.Name}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td class="{{.Class}}">{{.Text}}</td>{{end}}</tr>{{else}}<tr><td colspan="{{len .Columns}}" class="empty">` + noDataText + `</td></tr>{{end}}</tbody>
</table></div>{{end}}

{{define "footer"}}<div class="footer">Generated by Daily Sales Tracker</div>{{end}}
`

const salesTemplate = `<!doctype html>
<html lang="en">
<head>{{template "head" .}}</head>
<body>
<div class="brand"></div>
<div class="container">
{{template "header" .}}
<div class="section">
<div class="section-title">Revenue by Product</div>
{{template "bars" .ProductBars}}
</div>
<div class="section">
<div class="section-title">Details</div>
{{template "table" .Details}}
</div>
{{template "footer"}}
</div>
</body>
</html>`

const analyticsTemplate = `<!doctype html>
<html lang="en">
<head>{{template "head" .}}</head>
<body>
<div class="brand"></div>
<div class="container">
{{template "header" .}}
<div class="grid section">
<div>
<div class="section-title">Revenue by Day</div>
{{template "bars" .DayBars}}
</div>
<div>
<div class="section-title">Top Products</div>
{{template "bars" .ProductBars}}
</div>
</div>
<div class="section">
<div class="section-title">Daily Breakdown</div>
{{template "table" .Daily}}
</div>
<div class="section">
<div class="section-title">Product Breakdown</div>
{{template "table" .Products}}
</div>
{{template "footer"}}
</div>
</body>
</html>`

var (
	salesTmpl     = template.Must(template.Must(template.New("sales").Parse(sharedTemplates)).Parse(salesTemplate))
	analyticsTmpl = template.Must(template.Must(template.New("analytics").Parse(sharedTemplates)).Parse(analyticsTemplate))
)
