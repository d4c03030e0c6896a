package driver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"w3cv/internal/diag"
	"w3cv/internal/observ"
	"w3cv/internal/source"
	"w3cv/internal/w3c"
)

type fakeChecker struct {
	html    *w3c.HTMLResponse
	css     *w3c.CSSResponse
	err     error
	calls   []string
	onCheck func()
}

func (f *fakeChecker) CheckHTML(_ context.Context, name string, _ []byte) (*w3c.HTMLResponse, error) {
	f.calls = append(f.calls, "html:"+name)
	if f.onCheck != nil {
		f.onCheck()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.html == nil {
		return &w3c.HTMLResponse{}, nil
	}
	return f.html, nil
}

func (f *fakeChecker) CheckCSS(_ context.Context, name string, _ []byte) (*w3c.CSSResponse, error) {
	f.calls = append(f.calls, "css:"+name)
	if f.onCheck != nil {
		f.onCheck()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.css == nil {
		return &w3c.CSSResponse{}, nil
	}
	return f.css, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func shortLines(res *Result) []string {
	out := diag.FormatShortDiagnostics(res.Path, res.Bag.Items())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestValidateHTMLSeverityMapping(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "index.html", "<!doctype html><title>x</title>\n")
	checker := &fakeChecker{html: &w3c.HTMLResponse{Messages: []w3c.HTMLMessage{
		{Type: "error", Message: "Stray end tag", LastLine: 3},
		{Type: "info", SubType: "warning", Message: "Consider lang", LastLine: 1},
		{Type: "info", Message: "Trailing slash"},
		{Type: "non-document-error", SubType: "io", Message: "HTTP resource not retrievable", LastLine: 7},
		{Type: "non-document-error", Message: "no line"},
	}}}

	res := Validate(context.Background(), source.NewFileSet(), p, Options{Checker: checker})
	if res.Err != nil {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	want := []string{
		"[" + p + "] Stray end tag",
		"[" + p + "] Consider lang",
		"[" + p + "] Trailing slash",
		"[" + p + ":7] HTTP resource not retrievable",
		"[" + p + "] no line",
	}
	got := shortLines(res)
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}

	items := res.Bag.Items()
	wantCodes := []diag.Code{diag.HTMLError, diag.HTMLWarning, diag.HTMLInfo, diag.HTMLNonDocument, diag.HTMLNonDocument}
	wantSev := []diag.Severity{diag.SevError, diag.SevWarning, diag.SevInfo, diag.SevError, diag.SevError}
	for i, d := range items {
		if d.Code != wantCodes[i] || d.Severity != wantSev[i] {
			t.Errorf("item %d: got %v/%v, want %v/%v", i, d.Code, d.Severity, wantCodes[i], wantSev[i])
		}
	}
	if items[0].Primary.Line != 3 {
		t.Errorf("error line: got %d, want 3", items[0].Primary.Line)
	}
	if res.Count() != 5 {
		t.Errorf("Count: got %d, want 5", res.Count())
	}
}

func TestValidateCSS(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "site.css", "a { colr: red }\n")
	resp := &w3c.CSSResponse{CSSValidation: w3c.CSSValidation{
		Errors:   []w3c.CSSMessage{{Line: 1, Message: "  Property colr doesn't exist \n"}},
		Warnings: []w3c.CSSMessage{{Line: 1, Message: "vendor extension"}},
	}}

	res := Validate(context.Background(), source.NewFileSet(), p, Options{Checker: &fakeChecker{css: resp}})
	got := shortLines(res)
	if len(got) != 1 || got[0] != "["+p+":1] Property colr doesn't exist" {
		t.Fatalf("unexpected lines: %q", got)
	}

	res = Validate(context.Background(), source.NewFileSet(), p, Options{Checker: &fakeChecker{css: resp}, CSSWarnings: true})
	if res.Count() != 2 {
		t.Fatalf("with warnings: got %d, want 2", res.Count())
	}
	if res.Bag.Items()[1].Code != diag.CSSWarning {
		t.Errorf("second item code: got %v", res.Bag.Items()[1].Code)
	}
}

func TestValidateOK(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "ok.svg", "<svg xmlns=\"http://www.w3.org/2000/svg\"/>")
	checker := &fakeChecker{}
	res := Validate(context.Background(), source.NewFileSet(), p, Options{Checker: checker})
	if !res.OK() || res.Count() != 0 {
		t.Fatalf("expected OK, got err=%v count=%d", res.Err, res.Count())
	}
	if len(checker.calls) != 1 || checker.calls[0] != "html:"+p {
		t.Errorf("svg should go to the HTML checker, calls=%v", checker.calls)
	}
}

func TestValidateFailures(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "")
	bomOnly := writeFile(t, dir, "bom.html", "\xef\xbb\xbf")
	text := writeFile(t, dir, "notes.txt", "hello")
	page := writeFile(t, dir, "page.html", "<p>")

	tests := []struct {
		name    string
		path    string
		err     error
		kind    FailureKind
		message string
	}{
		{name: "missing", path: filepath.Join(dir, "missing.html"), kind: KindIO},
		{name: "directory", path: dir, kind: KindIO},
		{name: "empty", path: empty, kind: KindIO, message: "file " + empty + " is empty"},
		{name: "bom only", path: bomOnly, kind: KindIO, message: "file " + bomOnly + " is empty"},
		{name: "extension", path: text, kind: KindUnsupportedExtension,
			message: "file " + text + " does not have a valid file extension. Only " + source.AllowedExtensions + " are allowed."},
		{name: "network", path: page, err: &w3c.TransportError{Endpoint: "x", Err: errors.New("refused")}, kind: KindNetwork},
		{name: "status", path: page, err: &w3c.StatusError{StatusCode: 503, Status: "503 Service Unavailable", Endpoint: "x"}, kind: KindResponse},
		{name: "decode", path: page, err: &w3c.DecodeError{Endpoint: "x", Err: errors.New("bad json")}, kind: KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(context.Background(), source.NewFileSet(), tt.path, Options{Checker: &fakeChecker{err: tt.err}})
			if res.Err == nil {
				t.Fatalf("expected failure")
			}
			if res.Err.Kind != tt.kind {
				t.Errorf("kind: got %s, want %s", res.Err.Kind, tt.kind)
			}
			if tt.message != "" && res.Err.Error() != tt.message {
				t.Errorf("message: got %q, want %q", res.Err.Error(), tt.message)
			}
			if res.Count() != 1 {
				t.Errorf("Count: got %d, want 1", res.Count())
			}
			if res.OK() {
				t.Errorf("failed result reported OK")
			}
		})
	}
}

func TestValidateFilesSumsCounts(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", "<p>")
	b := writeFile(t, dir, "b.css", "a{}")
	c := writeFile(t, dir, "c.txt", "x")
	checker := &fakeChecker{
		html: &w3c.HTMLResponse{Messages: []w3c.HTMLMessage{{Type: "error", Message: "one"}, {Type: "error", Message: "two"}}},
	}

	var seen []string
	timer := observ.NewTimer()
	var events []Event
	run, err := ValidateFiles(context.Background(), []string{a, b, c}, Options{
		Checker:  checker,
		Timer:    timer,
		Progress: sinkFunc(func(e Event) { events = append(events, e) }),
		OnResult: func(r *Result) { seen = append(seen, r.Path) },
	})
	if err != nil {
		t.Fatalf("ValidateFiles: %v", err)
	}
	if got := run.Total(); got != 3 {
		t.Fatalf("Total: got %d, want 3", got)
	}
	if len(seen) != 3 || seen[0] != a || seen[1] != b || seen[2] != c {
		t.Errorf("OnResult order: %v", seen)
	}
	if len(timer.Report().Phases) != 3 {
		t.Errorf("timer phases: got %d, want 3", len(timer.Report().Phases))
	}
	if len(events) == 0 || events[0].Status != StatusQueued {
		t.Errorf("first event should be queued, got %+v", events)
	}
	last := events[len(events)-1]
	if last.File != c || last.Status != StatusError {
		t.Errorf("last event: %+v", last)
	}
}

func TestValidateFilesStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", "<p>")
	b := writeFile(t, dir, "b.html", "<p>")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	checker := &fakeChecker{onCheck: cancel}

	run, err := ValidateFiles(ctx, []string{a, b}, Options{Checker: checker})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected one finished result, got %d", len(run.Results))
	}
	if len(checker.calls) != 1 {
		t.Errorf("second file should not be checked, calls=%v", checker.calls)
	}
}

func TestValidateAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"type":"error","lastLine":2,"message":"Bad value"}]}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	p := writeFile(t, dir, "page.html", "<p>\n<p>\n")
	client := w3c.NewClient(w3c.WithHTMLEndpoint(srv.URL), w3c.WithHTTPClient(srv.Client()))
	res := Validate(context.Background(), source.NewFileSet(), p, Options{Checker: client})
	got := shortLines(res)
	if len(got) != 1 || got[0] != "["+p+"] Bad value" {
		t.Fatalf("unexpected lines: %q", got)
	}
	if res.Bag.Items()[0].Primary.Line != 2 {
		t.Errorf("line not kept for pretty output")
	}
}

type sinkFunc func(Event)

func (f sinkFunc) OnEvent(e Event) { f(e) }

func TestClassifyWrapsUnknownErrors(t *testing.T) {
	fe := classify("x.html", errors.New("boom"))
	if fe.Kind != KindNetwork || fe.Error() != "x.html: boom" {
		t.Fatalf("unexpected classification: %s %q", fe.Kind, fe.Error())
	}
	if again := classify("x.html", fe); again != fe {
		t.Errorf("FileError should pass through unchanged")
	}
}

func TestValidateFilesDropsCancelledRequest(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", "<p>")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	checker := &fakeChecker{
		onCheck: cancel,
		err:     &w3c.TransportError{Endpoint: "x", Err: context.Canceled},
	}
	var seen int
	run, err := ValidateFiles(ctx, []string{a}, Options{Checker: checker, OnResult: func(*Result) { seen++ }})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(run.Results) != 0 || seen != 0 {
		t.Errorf("interrupted file should not be reported, results=%d seen=%d", len(run.Results), seen)
	}
}
