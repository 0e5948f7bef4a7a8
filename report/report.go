package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/TFMV/salesgen/metrics"
	"github.com/TFMV/salesgen/pkg/audit"
	"github.com/dustin/go-humanize"
)

// -----------------------------
// Report Types
// -----------------------------

// Report combines the summary and audit of one dataset.
type Report struct {
	RunID       string          `json:"run_id,omitempty"`
	Source      string          `json:"source"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     metrics.Summary `json:"summary"`
	Audit       audit.Result    `json:"audit"`
}

// Passed reports whether the audit found no violations.
func (r Report) Passed() bool { return r.Audit.Valid }

// ReportGenerator defines the methods for generating reports.
type ReportGenerator interface {
	GenerateReport(r Report) ([]byte, error)
	SaveReportToFile(r Report, filePath string) error
}

// NewGenerator returns the generator for format: "text", "json" or "html".
func NewGenerator(format string) (ReportGenerator, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextReportGenerator{}, nil
	case "json":
		return &JSONReportGenerator{}, nil
	case "html":
		return &HTMLReportGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func saveToFile(g ReportGenerator, r Report, filePath string) error {
	data, err := g.GenerateReport(r)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// -----------------------------
// JSON Report Generator
// -----------------------------

// JSONReportGenerator generates JSON reports.
type JSONReportGenerator struct{}

// GenerateReport serializes the report to JSON.
func (j *JSONReportGenerator) GenerateReport(r Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// SaveReportToFile saves the JSON report to a file.
func (j *JSONReportGenerator) SaveReportToFile(r Report, filePath string) error {
	return saveToFile(j, r, filePath)
}

// ReportFromFilePath loads a JSON report from a file.
func ReportFromFilePath(filePath string) (Report, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Report{}, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, err
	}
	return r, nil
}

// -----------------------------
// Text Report Generator
// -----------------------------

// TextReportGenerator generates plain text reports for terminals.
type TextReportGenerator struct{}

var funcs = map[string]any{
	"pct":   func(f float64) string { return fmt.Sprintf("%.2f%%", f*100) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"mean":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
	"comma": humanize.Comma,
}

const textTemplate = `Dataset: {{.Source}}
Rows: {{.Summary.Rows}}
{{- if .Summary.Rows}}
Dates: {{date .Summary.FirstDate}} to {{date .Summary.LastDate}}
Revenue: {{comma .Summary.Revenue}}
Units: {{comma .Summary.Units}}
Returned: {{.Summary.Returned}} ({{pct .Summary.ReturnRate}})
Age: {{.Summary.Age.Min}}-{{.Summary.Age.Max}} (mean {{mean .Summary.Age.Mean}})
Price: {{.Summary.Price.Min}}-{{.Summary.Price.Max}} (mean {{mean .Summary.Price.Mean}})
Qty Item: {{.Summary.Quantity.Min}}-{{.Summary.Quantity.Max}} (mean {{mean .Summary.Quantity.Mean}})
{{template "dist" dist "Years" .Summary.Years}}
{{- template "dist" dist "Segments" .Summary.Segments}}
{{- template "dist" dist "Brands" .Summary.Brands}}
{{- template "dist" dist "Ratings" .Summary.Ratings}}
{{- end}}
Audit: {{if .Audit.Valid}}PASS{{else}}FAIL{{end}}
{{- range $rule, $n := .Audit.Violations}}
  {{$rule}}: {{$n}} violation(s)
{{- range index $.Audit.Errors $rule}}
    {{.}}
{{- end}}
{{- end}}
{{define "dist"}}{{.Title}}:
{{- range .Counts}}
  {{printf "%-24s" .Value}} {{printf "%6d" .Rows}}  {{pct .Share}}
{{- end}}
{{end}}`

type distView struct {
	Title  string
	Counts metrics.Distribution
}

var textTmpl = texttemplate.Must(texttemplate.New("report").Funcs(funcs).Funcs(map[string]any{
	"dist": func(title string, d metrics.Distribution) distView { return distView{title, d} },
}).Parse(textTemplate))

// GenerateReport renders the report as text.
func (g *TextReportGenerator) GenerateReport(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveReportToFile saves the text report to a file.
func (g *TextReportGenerator) SaveReportToFile(r Report, filePath string) error {
	return saveToFile(g, r, filePath)
}

// -----------------------------
// HTML Report Generator
// -----------------------------

// HTMLReportGenerator generates HTML reports.
type HTMLReportGenerator struct{}

// HTML template for the report.
const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Sales Dataset Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f4f4f4; }
        .status-pass { color: green; }
        .status-fail { color: red; }
    </style>
</head>
<body>
    <h1>Sales Dataset Report</h1>
    <p><strong>Source:</strong> {{.Source}}</p>
    <p><strong>Rows:</strong> {{.Summary.Rows}}</p>
    <p><strong>Revenue:</strong> {{comma .Summary.Revenue}}</p>
    <p><strong>Return Rate:</strong> {{pct .Summary.ReturnRate}}</p>

    <h2>Audit</h2>
    <p><strong>Status:</strong> {{if .Audit.Valid}}<span class="status-pass">PASS</span>{{else}}<span class="status-fail">FAIL</span>{{end}}</p>
    <table>
        <tr>
            <th>Rule</th>
            <th>Violations</th>
        </tr>
        {{range $rule, $n := .Audit.Violations}}
        <tr>
            <td>{{$rule}}</td>
            <td>{{$n}}</td>
        </tr>
        {{else}}
        <tr><td colspan="2">None</td></tr>
        {{end}}
    </table>

    <h2>Brands</h2>
    <table>
        <tr>
            <th>Brand</th>
            <th>Rows</th>
            <th>Share</th>
        </tr>
        {{range .Summary.Brands}}
        <tr>
            <td>{{.Value}}</td>
            <td>{{.Rows}}</td>
            <td>{{pct .Share}}</td>
        </tr>
        {{end}}
    </table>

    <footer>
        <p>Generated on {{.GeneratedAt}}</p>
    </footer>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Funcs(funcs).Parse(htmlTemplate))

// GenerateReport generates an HTML report.
func (h *HTMLReportGenerator) GenerateReport(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveReportToFile saves the HTML report to a file.
func (h *HTMLReportGenerator) SaveReportToFile(r Report, filePath string) error {
	return saveToFile(h, r, filePath)
}
