package pdf

import (
	"fmt"
	"reflect"
	"testing"
)

type testSource struct {
	name  string
	pages int
}

func (s *testSource) Name() string   { return s.name }
func (s *testSource) PageCount() int { return s.pages }

func testDocument(name string, pages int) *Document {
	return NewDocument(&testSource{name: name, pages: pages})
}

// labels renders pages as "name:number@rotation" for comparison.
func labels(doc *Document) []string {
	out := make([]string, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		label := fmt.Sprintf("%s:%d", p.Source.Name(), p.Number)
		if p.Rotation != Angle0 {
			label += fmt.Sprintf("@%d", p.Rotation)
		}
		out = append(out, label)
	}
	return out
}

func TestExtract(t *testing.T) {
	src := testDocument("a", 5)
	got := Extract(src, ParseSelection("3,1,3", src.PageCount()))

	if want := []string{"a:3", "a:1"}; !reflect.DeepEqual(labels(got), want) {
		t.Errorf("Extract = %v, want %v", labels(got), want)
	}
	if src.PageCount() != 5 {
		t.Errorf("source modified: %d pages", src.PageCount())
	}
}

func TestExtractEmptySelection(t *testing.T) {
	got := Extract(testDocument("a", 3), Selection{})
	if got.PageCount() != 0 {
		t.Errorf("expected empty document, got %d pages", got.PageCount())
	}
}

func TestRotate(t *testing.T) {
	src := testDocument("a", 3)
	got := Rotate(src, Selection{1}, Angle90)

	if want := []string{"a:1", "a:2@90", "a:3"}; !reflect.DeepEqual(labels(got), want) {
		t.Errorf("Rotate = %v, want %v", labels(got), want)
	}
	if want := []string{"a:1", "a:2", "a:3"}; !reflect.DeepEqual(labels(src), want) {
		t.Errorf("source modified: %v", labels(src))
	}
}

func TestRotateIgnoresSelectionOrder(t *testing.T) {
	got := Rotate(testDocument("a", 4), Selection{3, 0}, Angle180)
	want := []string{"a:1@180", "a:2", "a:3", "a:4@180"}
	if !reflect.DeepEqual(labels(got), want) {
		t.Errorf("Rotate = %v, want %v", labels(got), want)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	src := testDocument("a", 4)
	sel := Selection{0, 2}
	got := Rotate(Rotate(src, sel, Angle90), sel, Angle270)
	if !reflect.DeepEqual(labels(got), labels(src)) {
		t.Errorf("rotate 90 then 270 = %v, want %v", labels(got), labels(src))
	}
}

func TestRotateInvalidAngleIsNoop(t *testing.T) {
	src := testDocument("a", 2)
	got := Rotate(src, SelectAll(2), Angle(45))
	if !reflect.DeepEqual(labels(got), labels(src)) {
		t.Errorf("Rotate by 45 = %v", labels(got))
	}
}

func TestRemovePages(t *testing.T) {
	got := RemovePages(testDocument("a", 3), Selection{0, 2})
	if want := []string{"a:2"}; !reflect.DeepEqual(labels(got), want) {
		t.Errorf("RemovePages = %v, want %v", labels(got), want)
	}
}

func TestRemoveAllPages(t *testing.T) {
	got := RemovePages(testDocument("a", 3), SelectAll(3))
	if got.PageCount() != 0 {
		t.Errorf("expected empty document, got %v", labels(got))
	}
}

func TestRemoveNothing(t *testing.T) {
	src := testDocument("a", 3)
	got := RemovePages(src, Selection{})
	if !reflect.DeepEqual(labels(got), labels(src)) {
		t.Errorf("RemovePages with empty selection = %v", labels(got))
	}
}

func TestMerge(t *testing.T) {
	a, b, c := testDocument("a", 2), testDocument("b", 1), testDocument("c", 3)
	got := Merge(a, b, c)

	if got.PageCount() != a.PageCount()+b.PageCount()+c.PageCount() {
		t.Fatalf("Merge page count = %d", got.PageCount())
	}
	want := []string{"a:1", "a:2", "b:1", "c:1", "c:2", "c:3"}
	if !reflect.DeepEqual(labels(got), want) {
		t.Errorf("Merge = %v, want %v", labels(got), want)
	}
	if a.PageCount() != 2 {
		t.Errorf("base modified: %v", labels(a))
	}
}

func TestMergeNothing(t *testing.T) {
	a := testDocument("a", 2)
	if got := Merge(a); !reflect.DeepEqual(labels(got), labels(a)) {
		t.Errorf("Merge() = %v", labels(got))
	}
}

func TestSplit(t *testing.T) {
	src := Rotate(testDocument("a", 4), Selection{1}, Angle90)

	var names []string
	var pages []string
	for name, doc := range Split(src, "report") {
		if doc.PageCount() != 1 {
			t.Fatalf("%s has %d pages", name, doc.PageCount())
		}
		names = append(names, name)
		pages = append(pages, labels(doc)...)
	}

	wantNames := []string{"report_page_1.pdf", "report_page_2.pdf", "report_page_3.pdf", "report_page_4.pdf"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("names = %v, want %v", names, wantNames)
	}
	if !reflect.DeepEqual(pages, labels(src)) {
		t.Errorf("pages = %v, want %v", pages, labels(src))
	}
}

func TestSplitStopsEarly(t *testing.T) {
	count := 0
	for range Split(testDocument("a", 10), "x") {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("consumed %d pages", count)
	}
}
