package format

import (
	"bytes"
	"strings"
	"testing"
)

type pairs [][2]string

func (p pairs) Header() []string { return []string{"KEY", "VALUE"} }

func (p pairs) Rows() [][]string {
	out := make([][]string, len(p))
	for i, kv := range p {
		out[i] = []string{kv[0], kv[1]}
	}
	return out
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"a": 1}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"a\":1}\n" {
		t.Fatalf("unexpected json %q", got)
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, pairs{{"id", "e-1"}}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "KEY") || !strings.Contains(out, "e-1") {
		t.Fatalf("expected header and row in table; got %q", out)
	}
}

func TestWrite_Rejects(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, 3, "text", false); err == nil {
		t.Fatalf("expected text output of a non-table to fail")
	}
	if err := Write(&buf, 3, "edn", false); err == nil {
		t.Fatalf("expected an unknown format to fail")
	}
}
