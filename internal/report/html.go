// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pdiddy/paper-debrief/pkg/types"
)

var htmlTmpl = template.Must(template.New("debrief").Funcs(template.FuncMap{
	"pct":  func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Daily Debrief {{.Date}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 760px; margin: 2rem auto; color: #1b1b1b; }
  header { border-bottom: 2px solid #1b1b1b; margin-bottom: 1.5rem; }
  header p { color: #666; }
  .card { border: 1px solid #ddd; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1.25rem; }
  .card h2 { margin: 0 0 .25rem; font-size: 1.1rem; }
  .badge { display: inline-block; background: #eef; border-radius: 4px; padding: .1rem .5rem; margin-right: .3rem; font-size: .75rem; }
  .why { font-style: italic; color: #444; }
  .meter { background: #eee; border-radius: 4px; height: 8px; width: 140px; display: inline-block; vertical-align: middle; }
  .meter span { display: block; background: #46a; border-radius: 4px; height: 8px; }
  .metrics { font-size: .85rem; color: #555; margin-top: .5rem; }
  .metrics td { padding-right: .75rem; }
</style>
</head>
<body>
<header>
  <h1>Daily Debrief</h1>
  <p>{{if .Date}}{{.Date}}{{else}}latest papers{{end}} · generated {{.GeneratedAt}} · topics: {{join .Intent.Topics ", "}}</p>
</header>
{{if not .Cards}}
<p>No papers made the cut today. A quiet day is a good day.</p>
{{end}}
{{range .Cards}}
<div class="card">
  <h2>{{.Rank}}. <a href="{{.ReadLink}}">{{.Title}}</a></h2>
  <div>{{range .Badges}}<span class="badge">{{.}}</span>{{end}}</div>
  <p>{{.Summary}}</p>
  {{if .PersonalizedReason}}<p class="why">{{.PersonalizedReason}}</p>{{end}}
  <table class="metrics">
    <tr><td>novelty</td><td><span class="meter"><span style="width:{{.NoveltyPct}}%"></span></span></td><td>{{.NoveltyPct}}%</td></tr>
    <tr><td>results</td><td><span class="meter"><span style="width:{{.ResultsPct}}%"></span></span></td><td>{{.ResultsPct}}%</td></tr>
    <tr><td>completeness</td><td><span class="meter"><span style="width:{{.CompletenessPct}}%"></span></span></td><td>{{.CompletenessPct}}%</td></tr>
    <tr><td>relevance</td><td></td><td>{{pct .Relevance}}</td></tr>
    <tr><td>priority</td><td></td><td>{{printf "%.1f" .Priority}}</td></tr>
  </table>
</div>
{{end}}
</body>
</html>
`))

// WriteHTML renders the briefing as a standalone HTML page.
func WriteHTML(w io.Writer, b types.Briefing) error {
	if err := htmlTmpl.Execute(w, b); err != nil {
		return fmt.Errorf("rendering briefing HTML: %w", err)
	}
	return nil
}
