package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/export"
	"github.com/goliatone/go-timeeffort/pkg/testsupport"
)

func janeDoe(t *testing.T) document.Document {
	t.Helper()
	renderer := document.New(document.WithClock(testsupport.FixedClock))
	return renderer.Render(testsupport.CompleteRecord(), decimal.NewFromInt(100))
}

func exportTo(t *testing.T, exporter export.Exporter, doc document.Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, exporter.Export(testsupport.Context(), doc, &buf))
	return buf.Bytes()
}

func newTextExporter(t *testing.T) *export.TextExporter {
	t.Helper()
	engine, err := export.NewTemplateEngine()
	require.NoError(t, err)
	return export.NewTextExporter(engine)
}

type memorySink struct {
	mu    sync.Mutex
	files map[string][]byte
	fail  error
}

func (s *memorySink) Save(_ context.Context, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", s.fail
	}
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[name] = append([]byte(nil), data...)
	return "mem://" + name, nil
}

type failingExporter struct{}

func (failingExporter) Name() string        { return "broken" }
func (failingExporter) Extension() string   { return "bin" }
func (failingExporter) ContentType() string { return "application/octet-stream" }
func (failingExporter) Export(context.Context, document.Document, io.Writer) error {
	return export.ErrEncode
}

func TestPDFExporter_WritesPDF(t *testing.T) {
	doc := janeDoe(t)
	data := exportTo(t, export.NewPDFExporter(), doc)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "missing PDF header")
	assert.Contains(t, string(data), "%%EOF")
	assert.Equal(t, len(doc.Pages), bytes.Count(data, []byte("<</Type /Page\n")))
}

func TestPDFExporter_Deterministic(t *testing.T) {
	doc := janeDoe(t)
	first := exportTo(t, export.NewPDFExporter(), doc)
	second := exportTo(t, export.NewPDFExporter(), doc)
	assert.Equal(t, first, second)
}

func TestPDFExporter_TranslatesAccents(t *testing.T) {
	record := testsupport.CompleteRecord()
	record.EmployeeName = "José Muñiz"
	doc := document.New(document.WithClock(testsupport.FixedClock)).Render(record, decimal.NewFromInt(100))

	var buf bytes.Buffer
	require.NoError(t, export.NewPDFExporter(export.WithFontFamily("Times")).Export(testsupport.Context(), doc, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExporters_RejectEmptyDocument(t *testing.T) {
	registry, err := export.DefaultRegistry()
	require.NoError(t, err)

	for _, name := range registry.List() {
		exporter, err := registry.Get(name)
		require.NoError(t, err)
		err = exporter.Export(testsupport.Context(), document.Document{}, io.Discard)
		assert.ErrorIs(t, err, export.ErrEmptyDocument, name)
	}
}

func TestExporters_HonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := export.NewJSONExporter().Export(ctx, janeDoe(t), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestXLSXExporter_Workbook(t *testing.T) {
	data := exportTo(t, export.NewXLSXExporter(), janeDoe(t))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)

	var flat []string
	for _, row := range rows {
		flat = append(flat, strings.Join(row, "|"))
	}
	assert.Equal(t, document.DefaultTitle, flat[0])
	assert.Contains(t, flat, "Name|Jane Doe")
	assert.Contains(t, flat, "Funding Source|Percent|Hours")
	assert.Contains(t, flat, "ERI - Instituto de Resiliencia|60%|48.00")
	assert.Contains(t, flat, "NASA Isla Grant 2|40%|32.00")
	assert.Contains(t, flat, "TOTAL|100.0%")
	assert.Contains(t, flat, "Supervisor Signature|John Smith")
	assert.Contains(t, flat, "Generated: 2024-01-16T09:30:00.000Z")
}

func TestTextExporter_Report(t *testing.T) {
	out := string(exportTo(t, newTextExporter(t), janeDoe(t)))

	for _, want := range []string{
		document.DefaultTitle + "\n" + document.DefaultOrganization + "\n",
		"Employee ID: E-1024\n",
		"Period: 2024-01-01 to 2024-01-15\n",
		"  ERI - Instituto de Resiliencia: 60% (48.00 hrs)\n  NASA Isla Grant 2: 40% (32.00 hrs)\n  TOTAL: 100.0%\n",
		"SUPERVISOR REVIEW AND CERTIFICATION\n",
		"reviewed this Time & Effort report",
		"Generated: 2024-01-16T09:30:00.000Z\n" + document.ElectronicSignatureNotice,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "&amp;")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 96, "line too wide: %q", line)
	}
}

func TestHTMLExporter_SanitisesFields(t *testing.T) {
	engine, err := export.NewTemplateEngine()
	require.NoError(t, err)

	record := testsupport.CompleteRecord()
	record.EmployeeName = `Jane <script>alert("x")</script> Doe`
	record.ActivitiesDescription = "Line one\nLine <b>two</b>"
	doc := document.New(document.WithClock(testsupport.FixedClock)).Render(record, decimal.NewFromInt(100))

	out := string(exportTo(t, export.NewHTMLExporter(engine), doc))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "Line one<br")
	assert.Contains(t, out, "Line &lt;b&gt;two")
	assert.Contains(t, out, "<td>ERI - Instituto de Resiliencia</td><td>60%</td><td>48.00</td>")
	assert.Contains(t, out, "<h1>"+document.DefaultTitle+"</h1>")
	assert.Contains(t, out, "<style>")
}

func TestHTMLExporter_DefaultThemeColoursSources(t *testing.T) {
	engine, err := export.NewTemplateEngine()
	require.NoError(t, err)

	out := string(exportTo(t, export.NewHTMLExporter(engine), janeDoe(t)))

	assert.Contains(t, out, `data-theme="report"`)
	assert.Contains(t, out, "--header-bg: #4472c4;")
	assert.Contains(t, out, "--source-eriPercent: #2563eb;")
	assert.Contains(t, out, "--source-nasaIslaPercent: #dc2626;")
	assert.Contains(t, out, "tr.source-eriPercent td:first-child { border-left: 6px solid var(--source-eriPercent); }")
	assert.Contains(t, out, `<tr class="source source-eriPercent"><td>ERI - Instituto de Resiliencia</td>`)
	assert.NotContains(t, out, "<link")
}

func TestHTMLExporter_PrintVariant(t *testing.T) {
	engine, err := export.NewTemplateEngine()
	require.NoError(t, err)

	exporter := export.NewHTMLExporter(engine, export.WithTheme(export.DefaultThemeName, export.PrintVariant))
	out := string(exportTo(t, exporter, janeDoe(t)))

	assert.Contains(t, out, `data-variant="print"`)
	assert.Contains(t, out, "--source-eriPercent: #777777;")
	assert.Contains(t, out, "--header-bg: #e5e5e5;")
	assert.Contains(t, out, "--rule: #cccccc;")
}

type themeCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []themeCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, themeCall{name: name, variant: variant})
	if s.err != nil {
		return nil, s.err
	}
	return s.selection, nil
}

func TestHTMLExporter_PassesThemeRequestToSelector(t *testing.T) {
	engine, err := export.NewTemplateEngine()
	require.NoError(t, err)

	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456"},
		},
	}}
	exporter := export.NewHTMLExporter(engine,
		export.WithThemeSelector(selector),
		export.WithTheme("acme", "dark"),
	)
	out := string(exportTo(t, exporter, janeDoe(t)))

	require.Len(t, selector.calls, 1)
	assert.Equal(t, themeCall{name: "acme", variant: "dark"}, selector.calls[0])
	assert.Contains(t, out, "--brand: #123456;")
	assert.Contains(t, out, `data-theme="acme" data-variant="dark"`)
	assert.NotContains(t, out, "tr.source-eriPercent td:first-child")
}

func TestHTMLExporter_SelectorFailure(t *testing.T) {
	engine, err := export.NewTemplateEngine()
	require.NoError(t, err)

	selector := &stubThemeSelector{err: theme.ErrThemeNotFound}
	err = export.NewHTMLExporter(engine, export.WithThemeSelector(selector)).Export(testsupport.Context(), janeDoe(t), io.Discard)
	assert.ErrorIs(t, err, export.ErrEncode)
}

func TestNewThemeRegistry_LoadsManifestDir(t *testing.T) {
	dir := t.TempDir()
	manifest := strings.Join([]string{
		"name: acme",
		"version: 1.0.0",
		"tokens:",
		"  header-bg: \"#0f172a\"",
		"assets:",
		"  prefix: /assets/acme",
		"  files:",
		"    report.stylesheet: report.css",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte(manifest), 0o644))

	themes, err := export.NewThemeRegistry(dir)
	require.NoError(t, err)
	assert.Len(t, themes.Themes(), 2)

	registry, err := export.DefaultRegistry(export.WithHTMLOptions(
		export.WithThemeProvider(themes, export.DefaultThemeName, ""),
		export.WithTheme("acme", ""),
	))
	require.NoError(t, err)
	exporter, err := registry.Get("html")
	require.NoError(t, err)
	out := string(exportTo(t, exporter, janeDoe(t)))

	assert.Contains(t, out, "--header-bg: #0f172a;")
	assert.Contains(t, out, `<link rel="stylesheet" href="/assets/acme/report.css">`)

	_, err = export.NewThemeRegistry(t.TempDir())
	assert.Error(t, err)
}

func TestJSONExporter_Document(t *testing.T) {
	doc := janeDoe(t)
	data := exportTo(t, export.NewJSONExporter(), doc)

	var decoded document.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Name, decoded.Name)
	assert.Equal(t, "100.0", decoded.Summary.TotalPercent)
	assert.Len(t, decoded.Pages, len(doc.Pages))
}

func TestRegistry_Duplicates(t *testing.T) {
	registry := export.NewRegistry()
	require.NoError(t, registry.Register(export.NewJSONExporter()))
	assert.Error(t, registry.Register(export.NewJSONExporter()))
	assert.Error(t, registry.Register(nil))

	_, err := registry.Get("yaml")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
	assert.True(t, registry.Has(" JSON "))
}

func TestDefaultRegistry_Formats(t *testing.T) {
	registry, err := export.DefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "json", "pdf", "text", "xlsx"}, registry.List())
}

func TestService_ExportsEveryFormat(t *testing.T) {
	sink := &memorySink{}
	savedAt := time.Date(2024, time.January, 17, 8, 0, 0, 0, time.UTC)
	core, logs := observer.New(zapcore.InfoLevel)

	service, err := export.NewService(
		export.WithSink(sink),
		export.WithClock(func() time.Time { return savedAt }),
		export.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)

	doc := janeDoe(t)
	results, err := service.Export(testsupport.Context(), doc, "", "pdf", "xlsx", "PDF", "json")
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, result := range results {
		assert.True(t, result.Success, result.Format)
		assert.Equal(t, savedAt, result.SavedAt)
		assert.Equal(t, "mem://"+result.Name, result.Location)
		assert.Equal(t, len(sink.files[result.Name]), result.Size)
	}
	assert.Equal(t, "TimeEffort_Jane_Doe_2024-01-01_2024-01-15.pdf", results[0].Name)
	assert.Equal(t, 3, logs.FilterMessage("document exported").Len())
}

func TestService_ReportsPartialFailure(t *testing.T) {
	registry := export.NewRegistry()
	registry.MustRegister(export.NewJSONExporter())
	registry.MustRegister(failingExporter{})

	service, err := export.NewService(export.WithRegistry(registry), export.WithSink(&memorySink{}))
	require.NoError(t, err)

	results, err := service.Export(testsupport.Context(), janeDoe(t), "report", "json", "broken", "csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, export.ErrEncode)
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.Equal(t, "report.json", results[0].Name)
	assert.False(t, results[1].Success)
	assert.True(t, results[1].SavedAt.IsZero())
	assert.False(t, results[2].Success)
}

func TestService_SinkFailure(t *testing.T) {
	sinkErr := errors.New("disk full")
	service, err := export.NewService(export.WithSink(&memorySink{fail: sinkErr}))
	require.NoError(t, err)

	results, err := service.Export(testsupport.Context(), janeDoe(t), "", "json")
	assert.ErrorIs(t, err, sinkErr)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
}

func TestService_Defaults(t *testing.T) {
	_, err := export.NewService(export.WithDefaultFormats("docx"))
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	service, err := export.NewService(export.WithSink(&memorySink{}))
	require.NoError(t, err)
	_, err = service.Export(testsupport.Context(), janeDoe(t), "")
	assert.ErrorIs(t, err, export.ErrNoFormats)

	service, err = export.NewService(export.WithSink(&memorySink{}), export.WithDefaultFormats("text"))
	require.NoError(t, err)
	results, err := service.Export(testsupport.Context(), janeDoe(t), "")
	require.NoError(t, err)
	assert.Equal(t, "TimeEffort_Jane_Doe_2024-01-01_2024-01-15.txt", results[0].Name)
}

func TestFileSink_WritesIntoDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := export.NewFileSink(dir)

	location, err := sink.Save(testsupport.Context(), "report.txt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.txt"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileSink_RejectsPaths(t *testing.T) {
	sink := export.NewFileSink(t.TempDir())
	for _, name := range []string{"../escape/report.txt", "Jane/Doe.pdf", `Jane\Doe.pdf`, "..", ""} {
		_, err := sink.Save(testsupport.Context(), name, []byte("hello"))
		assert.ErrorIs(t, err, export.ErrSink, name)
	}
}

func TestService_NameMatchesLocation(t *testing.T) {
	record := testsupport.CompleteRecord()
	record.EmployeeName = "Jane/Doe"
	doc := document.New(document.WithClock(testsupport.FixedClock)).Render(record, decimal.NewFromInt(100))

	service, err := export.NewService(export.WithSink(export.NewFileSink(t.TempDir())))
	require.NoError(t, err)
	results, err := service.Export(testsupport.Context(), doc, "", "json")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	assert.Equal(t, "TimeEffort_Jane_Doe_2024-01-01_2024-01-15.json", results[0].Name)
	assert.Equal(t, results[0].Name, filepath.Base(results[0].Location))
}
