package clipboardx

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryClipboard(t *testing.T) {
	var m Memory
	if m.Read() != "" {
		t.Fatalf("expected empty clipboard")
	}
	m.Write("hello")
	if got := m.Read(); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
}

func TestSystemWritesOSC52ToConfiguredOutput(t *testing.T) {
	var out bytes.Buffer
	s := &System{Out: &out}
	if !s.writeOSC52("hi") {
		t.Fatalf("expected OSC 52 write to succeed")
	}
	if got := out.String(); !strings.HasPrefix(got, "\x1b]52;c;aGk=") {
		t.Fatalf("unexpected OSC 52 sequence %q", got)
	}
	if s.writeOSC52("") {
		t.Fatalf("empty text should not be sent")
	}
}
