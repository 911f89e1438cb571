package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "snapshot error",
			code:    "R002",
			wantMsg: "Router state has no root route",
			wantCat: CategorySnapshot,
		},
		{
			name:    "serializer error",
			code:    "R010",
			wantMsg: "Unknown serializer",
			wantCat: CategorySerializer,
		},
		{
			name:    "archive error",
			code:    "R032",
			wantMsg: "Archive not configured",
			wantCat: CategoryArchive,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "state.json")
	if err.Message != `file "state.json" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() = %q, want %q", err.Error(), err.Message)
	}
}

func TestRouterStoreError_Error(t *testing.T) {
	err := New("R002").WithDetail("state for /a has no root")
	want := "R002: Router state has no root route (state for /a has no root)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRouterStoreError_Wrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := New("R030").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestRouterStoreError_IsByCode(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", New("R041").WithDetail("missing"))

	if !stderrors.Is(wrapped, New("R041")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(wrapped, New("R040")) {
		t.Error("errors.Is should not match a different code")
	}

	var re *RouterStoreError
	if !stderrors.As(wrapped, &re) || re.Detail != "missing" {
		t.Errorf("errors.As = %v", re)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R020") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("R003")
	if FromError(orig, "R020") != orig {
		t.Error("FromError should return RouterStoreError unchanged")
	}

	plain := fmt.Errorf("boom")
	got := FromError(plain, "R020")
	if got.Code != "R020" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestCode(t *testing.T) {
	if got := Code(fmt.Errorf("outer: %w", New("R004"))); got != "R004" {
		t.Errorf("Code = %q, want R004", got)
	}
	if got := Code(fmt.Errorf("plain")); got != "" {
		t.Errorf("Code = %q, want empty", got)
	}
	if got := Code(nil); got != "" {
		t.Errorf("Code(nil) = %q, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	SetColors(false)
	defer SetColors(true)

	err := New("R002").
		WithDetail(`Router state for "/projects" has no root route`).
		Wrap(fmt.Errorf("root missing"))
	out := err.Format()

	for _, want := range []string{
		"ERROR R002: Router state has no root route",
		`Router state for "/projects" has no root route`,
		"Cause: root missing",
		"Hint: Send the snapshot produced by the router",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	if got := New("R010").FormatCompact(); got != "R010: Unknown serializer" {
		t.Errorf("FormatCompact() = %q", got)
	}
	if got := Newf(CategoryCLI, "bad flag").FormatCompact(); got != "bad flag" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	SetColors(false)
	defer SetColors(true)

	var buf bytes.Buffer
	PrintError(&buf, New("R001"))
	if !strings.Contains(buf.String(), "ERROR R001") {
		t.Errorf("PrintError output = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError output = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("expected registered codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %v", codes)
			break
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" {
			t.Errorf("code %s has no message", code)
		}
	}
}

func TestWrapText(t *testing.T) {
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
	lines := wrapText("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
