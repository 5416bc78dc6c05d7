package journal

import (
	"bytes"
	"os"
	"text/template"
	"time"
)

var orgFuncs = template.FuncMap{
	"fmtValue": func(m MetricRecord) string {
		met := m.toMetric()
		return met.Format()
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// WriteOrg renders the run as an org-mode report for the trading notebook.
func (s Snapshot) WriteOrg(path string) error {
	t, err := template.New("run").Funcs(orgFuncs).Parse(orgTemplate)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, s); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

const orgTemplate = `
* RUN: {{.Strategy}} {{.Ticker}}
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:STRATEGY:    {{.Strategy}}
:TICKER:      {{.Ticker}}
:SIZE:        {{printf "%.0f" .Size}}
:INITIAL:     {{printf "%.2f" .InitialCash}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Parameters
| Parameter | Value |
|-----------+-------|
{{- range $k, $v := .Params}}
| {{$k}} | {{printf "%g" $v}} |
{{- end}}

** Metrics
| Metric | Value |
|--------+-------|
{{- range .Metrics}}
{{- if not .Header}}
| {{.Title}} | {{fmtValue .}} |
{{- end}}
{{- end}}

** Trades
| Side | Size | Entry | Exit | Profit |
|------+------+-------+------+--------|
{{- range .Trades}}
| {{.Side}} | {{printf "%.0f" .Size}} | {{printf "%.2f" .EntryPrice}} | {{if .Open}}(open){{else}}{{printf "%.2f" .ExitPrice}}{{end}} | {{if .Open}}n/a{{else}}{{printf "%.2f" .Profit}}{{end}} |
{{- end}}
`
