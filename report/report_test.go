package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TFMV/salesgen/metrics"
	"github.com/TFMV/salesgen/pkg/audit"
	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestReport(t *testing.T, n int) Report {
	t.Helper()
	g := sales.NewGenerator(sales.Options{Seed: sales.DefaultSeed})
	txs, err := g.Generate(context.Background(), n)
	require.NoError(t, err)

	return Report{
		RunID:       "run-1",
		Source:      "product_sales_data.csv",
		GeneratedAt: time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC),
		Summary:     metrics.Summarize(txs),
		Audit:       audit.NewDatasetAuditor(sales.PricingLegacy).Audit(txs),
	}
}

func failingReport(t *testing.T) Report {
	t.Helper()
	r := createTestReport(t, 500)
	r.Audit = audit.Result{
		Valid:      false,
		Rows:       500,
		Violations: map[string]int{"TotalAmountRule": 2},
		Errors:     map[string][]string{"TotalAmountRule": {"row 3: total 1, want 2", "row 8: total 5, want 6"}},
	}
	return r
}

func TestNewGenerator(t *testing.T) {
	for format, want := range map[string]ReportGenerator{
		"":     &TextReportGenerator{},
		"text": &TextReportGenerator{},
		"JSON": &JSONReportGenerator{},
		"html": &HTMLReportGenerator{},
	} {
		g, err := NewGenerator(format)
		require.NoError(t, err, format)
		assert.IsType(t, want, g, format)
	}

	_, err := NewGenerator("xml")
	assert.Error(t, err)
}

func TestTextReportPassing(t *testing.T) {
	r := createTestReport(t, 500)
	data, err := (&TextReportGenerator{}).GenerateReport(r)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "Dataset: product_sales_data.csv\nRows: 500\n"))
	assert.Regexp(t, `\nRevenue: \d{1,3}(,\d{3})+\n`, out)
	assert.Contains(t, out, "Brands:\n")
	assert.Contains(t, out, "Ratings:\n")
	assert.Contains(t, out, "Audit: PASS\n")
	assert.NotContains(t, out, "violation")
	assert.NotContains(t, out, "<no value>")
}

func TestTextReportFailing(t *testing.T) {
	data, err := (&TextReportGenerator{}).GenerateReport(failingReport(t))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Audit: FAIL\n  TotalAmountRule: 2 violation(s)\n    row 3: total 1, want 2\n    row 8")
}

func TestTextReportEmptyDataset(t *testing.T) {
	r := Report{Source: "empty.csv", Audit: audit.NewAuditor().Audit(nil)}
	data, err := (&TextReportGenerator{}).GenerateReport(r)
	require.NoError(t, err)
	assert.Equal(t, "Dataset: empty.csv\nRows: 0\nAudit: PASS\n", string(data))
}

func TestJSONReportRoundTrip(t *testing.T) {
	r := failingReport(t)
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, (&JSONReportGenerator{}).SaveReportToFile(r, path))

	loaded, err := ReportFromFilePath(path)
	require.NoError(t, err)
	assert.Equal(t, "run-1", loaded.RunID)
	assert.False(t, loaded.Passed())
	assert.Equal(t, 2, loaded.Audit.Violations["TotalAmountRule"])
	assert.Equal(t, r.Summary.Revenue, loaded.Summary.Revenue)
}

func TestReportFromFilePathErrors(t *testing.T) {
	_, err := ReportFromFilePath(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = ReportFromFilePath(path)
	assert.Error(t, err)
}

func TestHTMLReport(t *testing.T) {
	r := failingReport(t)
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, (&HTMLReportGenerator{}).SaveReportToFile(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	html := string(data)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Sales Dataset Report</title>",
		"product_sales_data.csv",
		"FAIL",
		"TotalAmountRule",
		"H&amp;M",
	} {
		assert.Contains(t, html, want)
	}
}
