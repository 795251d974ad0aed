package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf_pages/logger"
	"pdf_pages/pdf"
	"pdf_pages/pdf/pdftest"
)

type harness struct {
	t      *testing.T
	dir    string
	out    bytes.Buffer
	viewed []string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, dir: t.TempDir()}
}

func (h *harness) file(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatal(err)
	}
	return path
}

func (h *harness) read(name string) string {
	h.t.Helper()
	data, err := os.ReadFile(filepath.Join(h.dir, name))
	if err != nil {
		h.t.Fatalf("expected output %s: %v", name, err)
	}
	return string(data)
}

func (h *harness) run(path string, lines ...string) (*Session, error) {
	s := New(Config{
		In:    strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:   &h.out,
		Codec: pdftest.Codec{},
		Viewer: func(path string) error {
			h.viewed = append(h.viewed, path)
			return nil
		},
		Log: logger.NewNoOpLogger(),
	})
	err := s.Run(path)
	return s, err
}

func TestChainedOperationsUseTheSameSource(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a,b,c,d,e")

	s, err := h.run(src,
		"0",              // do not open viewer
		"1", "3,1,3", "", // extract, default name
		"2", "2", "90", filepath.Join(h.dir, "turned"), // rotate, custom name
		"3", "1,5", "", // delete
		"0",
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.State() != StateExit {
		t.Errorf("final state = %v", s.State())
	}

	if got := h.read("doc_selected.pdf"); got != pdftest.Prefix+"c,a" {
		t.Errorf("extract wrote %q", got)
	}
	if got := h.read("turned.pdf"); got != pdftest.Prefix+"a,b@90,c,d,e" {
		t.Errorf("rotate wrote %q", got)
	}
	if got := h.read("doc_cleared.pdf"); got != pdftest.Prefix+"b,c,d" {
		t.Errorf("delete wrote %q", got)
	}
	if !strings.Contains(h.out.String(), "Selected 2 pages: 3, 1") {
		t.Errorf("selection not reported:\n%s", h.out.String())
	}
}

func TestMerge(t *testing.T) {
	h := newHarness(t)
	src := h.file("a.pdf", pdftest.Prefix+"a1,a2")
	b := h.file("b.pdf", pdftest.Prefix+"b1")
	c := h.file("c.pdf", pdftest.Prefix+"c1,c2")
	bad := h.file("bad.pdf", "garbage")

	_, err := h.run(src,
		"",
		"4", b, "1", bad, "1", c, "0", "",
		"0",
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.read("a_merged.pdf"); got != pdftest.Prefix+"a1,a2,b1,c1,c2" {
		t.Errorf("merge wrote %q", got)
	}
	if !strings.Contains(h.out.String(), "Cannot open "+bad) {
		t.Errorf("bad merge file not reported:\n%s", h.out.String())
	}
}

func TestSplit(t *testing.T) {
	h := newHarness(t)
	src := h.file("report.pdf", pdftest.Prefix+"p,q,r,s")

	if _, err := h.run(src, "", "5", "0"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, label := range []string{"p", "q", "r", "s"} {
		name := fmt.Sprintf("report_page_%d.pdf", i+1)
		if got := h.read(name); got != pdftest.Prefix+""+label {
			t.Errorf("%s = %q", name, got)
		}
	}
}

func TestInvalidAngleRotatesNothing(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a,b")

	if _, err := h.run(src, "", "2", "all", "45", "", "0"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.read("doc_rotated.pdf"); got != pdftest.Prefix+"a,b" {
		t.Errorf("rotate wrote %q", got)
	}
	if !strings.Contains(h.out.String(), "invalid rotation angle") {
		t.Errorf("invalid angle not reported:\n%s", h.out.String())
	}
}

func TestEmptyResultIsNotSaved(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a,b")

	if _, err := h.run(src, "", "3", "all", "1", "x", "", "0"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "doc_cleared.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("empty result was written: %v", err)
	}
	out := h.out.String()
	if !strings.Contains(out, "Nothing to save") {
		t.Errorf("empty result not reported:\n%s", out)
	}
	if !strings.Contains(out, "No pages selected") {
		t.Errorf("empty selection not reported:\n%s", out)
	}
}

func TestInvalidMenuInputReprompts(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a")

	s, err := h.run(src, "", "9", "hello", "0")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.State() != StateExit {
		t.Errorf("final state = %v", s.State())
	}
	if n := strings.Count(h.out.String(), "Your choice?"); n != 3 {
		t.Errorf("menu shown %d times, want 3", n)
	}
}

func TestSaveFailureReturnsToReady(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a,b")
	missingDir := filepath.Join(h.dir, "missing", "out")

	if _, err := h.run(src, "", "1", "1", missingDir, "1", "2", "", "0"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(h.out.String(), "Save failed") {
		t.Errorf("save failure not reported:\n%s", h.out.String())
	}
	if got := h.read("doc_selected.pdf"); got != pdftest.Prefix+"b" {
		t.Errorf("retry wrote %q", got)
	}
}

func TestDecodeErrorReturnsToPickFile(t *testing.T) {
	h := newHarness(t)
	bad := h.file("bad.pdf", "not a pdf")
	good := h.file("good.pdf", pdftest.Prefix+"a")

	s, err := h.run("", bad, good, "", "0")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.State() != StateExit {
		t.Errorf("final state = %v", s.State())
	}
	if !strings.Contains(h.out.String(), "Opened file: "+good) {
		t.Errorf("second file not opened:\n%s", h.out.String())
	}
}

func TestChooseNewFile(t *testing.T) {
	h := newHarness(t)
	first := h.file("first.pdf", pdftest.Prefix+"a")
	second := h.file("second.pdf", pdftest.Prefix+"x,y")

	if _, err := h.run(first, "", "6", second, "", "1", "2", "", "0"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.read("second_selected.pdf"); got != pdftest.Prefix+"y" {
		t.Errorf("extract from new file wrote %q", got)
	}
}

func TestQuitFromPickFileAfterOpening(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a")

	if _, err := h.run(src, "", "6", ""); err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
}

func TestViewer(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a")

	if _, err := h.run(src, "1", "0"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.viewed) != 1 || h.viewed[0] != src {
		t.Errorf("viewer calls = %v", h.viewed)
	}
}

func TestStartupFailures(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run(""); !errors.Is(err, ErrNoFile) {
		t.Errorf("no file: Run = %v, want ErrNoFile", err)
	}
	if _, err := h.run(filepath.Join(h.dir, "missing.pdf")); !errors.Is(err, pdf.ErrNotFound) {
		t.Errorf("missing file: Run = %v, want ErrNotFound", err)
	}
}

func TestEndOfInputExits(t *testing.T) {
	h := newHarness(t)
	src := h.file("doc.pdf", pdftest.Prefix+"a")

	s := New(Config{
		In:    strings.NewReader(""),
		Out:   &h.out,
		Codec: pdftest.Codec{},
		Log:   logger.NewNoOpLogger(),
	})
	if err := s.Run(src); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.State() != StateExit {
		t.Errorf("final state = %v", s.State())
	}
}
