package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matheuskafuri/newsassist/internal/api"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, ColorNever), &out, &errOut
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "always": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(in)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseColorMode("rainbow"); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestResolveColorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ResolveColors(ColorAuto) {
		t.Error("NO_COLOR should disable auto colors")
	}
	if !ResolveColors(ColorAlways) {
		t.Error("always should win over NO_COLOR")
	}
}

func TestPrinterPlain(t *testing.T) {
	p, out, errOut := newTestPrinter()
	p.Success("collected %d", 3)
	p.Warning("slow")
	p.Header("Trending")

	if !strings.Contains(out.String(), "[OK] collected 3") {
		t.Errorf("missing success line: %q", out.String())
	}
	if !strings.Contains(out.String(), "Trending\n--------") {
		t.Errorf("missing header: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[WARN] slow") {
		t.Errorf("warning should go to stderr: %q", errOut.String())
	}
	if p.StatusBadge(true, "OK") != "[OK]" {
		t.Errorf("unexpected badge %q", p.StatusBadge(true, "OK"))
	}
}

func TestPrinterJSON(t *testing.T) {
	p, out, _ := newTestPrinter()
	if err := p.JSON(map[string]int{"count": 2}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "{\n  \"count\": 2\n}\n" {
		t.Errorf("unexpected json %q", out.String())
	}
}

func TestTableRender(t *testing.T) {
	var out bytes.Buffer
	tbl := NewTable(&out, "ID", "Title")
	tbl.AddRow("1", "First")
	tbl.AddRow("2", "Second")
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	if err := tbl.Render(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ID", "TITLE", "First", "Second"} {
		if !strings.Contains(strings.ToUpper(out.String()), strings.ToUpper(want)) {
			t.Errorf("table missing %q: %q", want, out.String())
		}
	}
}

func TestFormatError(t *testing.T) {
	p, _, errOut := newTestPrinter()
	p.FormatError(&CLIError{Summary: "unknown topic", Suggestion: "Run 'newsassist trending'"})

	got := errOut.String()
	if !strings.Contains(got, "[ERROR] unknown topic") {
		t.Errorf("missing summary: %q", got)
	}
	if strings.Contains(got, "Cause:") {
		t.Errorf("should not print Cause without detail: %q", got)
	}
	if !strings.Contains(got, "Suggestion: Run 'newsassist trending'") {
		t.Errorf("missing suggestion: %q", got)
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"plain", errors.New("boom"), ExitGeneral},
		{"transport", &api.Error{Kind: api.KindTransport, Message: "network error: could not reach the news service"}, ExitAPIError},
		{"timeout", &api.Error{Kind: api.KindTransport, Message: "request timed out"}, ExitTimeout},
		{"http", &api.Error{Kind: api.KindHTTP, Status: 500, Message: "HTTP error! status: 500"}, ExitAPIError},
		{"validation", &api.Error{Kind: api.KindValidation, Message: "Please enter a question"}, ExitUsageError},
		{"config", ConfigError(errors.New("bad url")), ExitConfigError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			if got.ExitCode != tt.code {
				t.Errorf("exit code = %d, want %d", got.ExitCode, tt.code)
			}
			if got.Summary == "" {
				t.Error("expected summary")
			}
		})
	}
}

func TestFromErrorKeepsUserMessage(t *testing.T) {
	got := FromError(&api.Error{Kind: api.KindApplication, Message: "rate limited"})
	if got.Summary != "rate limited" {
		t.Errorf("summary = %q", got.Summary)
	}
	if !errors.Is(got, got.Err) {
		t.Error("expected wrapped error")
	}
}
