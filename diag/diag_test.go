package diag

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/pathfinder/log"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		File:     "paths.sdoc",
		Line:     4,
		Column:   2,
		Severity: Error,
		Message:  `Invalid key "\x01"`,
	}

	want := `paths.sdoc:4:2: error: Invalid key "\x01"`
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{Warning, "warning"},
		{Error, "error"},
		{Severity(7), "Severity(7)"},
	}

	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStore(t *testing.T) {
	var s Store

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			s.Record(Diagnostic{Severity: Severity(i % 2), Line: uint32(i)})
		}()
	}

	wg.Wait()

	if s.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", s.Len())
	}

	if w, e := s.Count(Warning), s.Count(Error); w != 25 || e != 25 {
		t.Errorf("Count = %d warnings, %d errors; want 25, 25", w, e)
	}

	if n := len(slices.Collect(s.All())); n != 50 {
		t.Errorf("All() yielded %d", n)
	}

	if s.Len() != 50 {
		t.Error("All() consumed the queue")
	}
}

func TestStore_ReplayPreservesOrder(t *testing.T) {
	var s Store

	for _, m := range []string{"a", "b", "c"} {
		s.Record(Diagnostic{Message: m})
	}

	var got []string

	s.Replay(SinkFunc(func(d Diagnostic) { got = append(got, d.Message) }))

	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("replayed %v", got)
	}

	if s.Len() != 0 {
		t.Errorf("Len() after Replay = %d", s.Len())
	}
}

func TestTee(t *testing.T) {
	var a, b Store

	Tee{&a, nil, &b}.Record(Diagnostic{Message: "x"})

	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("Tee delivered %d, %d", a.Len(), b.Len())
	}

	Discard.Record(Diagnostic{})
}

func TestHere(t *testing.T) {
	file, line := Here(0)

	if file != "diag_test.go" {
		t.Errorf("file = %q", file)
	}

	if line == 0 {
		t.Error("line = 0")
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer

	l := log.Make(&buf, log.WithFormat(log.FormatJSON), log.WithLevel(log.LevelWarn))

	sink := LogSink{Logger: &l}
	sink.Record(Diagnostic{File: "f", Line: 3, Column: 9, Severity: Warning, Message: "w"})
	sink.Record(Diagnostic{File: "f", Line: 0, Column: 0, Severity: Error, Message: "e"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records: %q", len(lines), buf.String())
	}

	var rec struct {
		Level  string `json:"level"`
		Msg    string `json:"msg"`
		File   string `json:"file"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}

	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}

	if rec.Level != "WARN" || rec.Msg != "w" || rec.File != "f" ||
		rec.Line != 3 || rec.Column != 9 {
		t.Errorf("warning record = %+v", rec)
	}

	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatal(err)
	}

	if rec.Level != "ERROR" || rec.Msg != "e" {
		t.Errorf("error record = %+v", rec)
	}
}
