package server

// Descriptions are pre-escaped and pre-formatted by the markup package, so
// the template embeds them as trusted fragments.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 64rem; padding: 0 1rem; color: #222; }
h1 { font-weight: 600; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: .5rem .75rem; text-align: left; vertical-align: top; }
th { background: #f6f3ee; }
td.price { text-align: right; white-space: nowrap; }
img.photo { max-width: 96px; max-height: 72px; }
footer { margin-top: 2rem; color: #888; font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Products}}
<table>
<thead>
<tr><th></th><th>Category</th><th>Description</th><th>18&nbsp;mm</th><th>12&nbsp;mm</th><th>8&nbsp;mm</th><th>6&nbsp;mm</th><th>Stock</th></tr>
</thead>
<tbody>
{{range .Products}}
<tr>
<td>{{if .PhotoURL}}<img class="photo" src="{{.PhotoURL}}" alt="{{.Category}}">{{end}}</td>
<td>{{.Category}}</td>
<td>{{.DescriptionHTML}}</td>
<td class="price">{{.Price18mm}}</td>
<td class="price">{{.Price12mm}}</td>
<td class="price">{{.Price8mm}}</td>
<td class="price">{{.Price6mm}}</td>
<td>{{.Stock}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p>No products available right now.</p>
{{end}}
{{if not .Refreshed.IsZero}}
<footer>Updated {{.Refreshed.Format "2006-01-02 15:04"}}</footer>
{{end}}
</body>
</html>
`
