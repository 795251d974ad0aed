package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Source is a decoded input document. Pages keep a reference to the Source
// they were cut from so a Codec can encode them later.
type Source interface {
	Name() string
	PageCount() int
}

// Codec decodes byte streams into Documents and encodes Documents back to bytes.
type Codec interface {
	Decode(name string, rs io.ReadSeeker) (*Document, error)
	Encode(w io.Writer, doc *Document) error
}

// Angle is a clockwise page rotation in degrees.
type Angle int

const (
	Angle0   Angle = 0
	Angle90  Angle = 90
	Angle180 Angle = 180
	Angle270 Angle = 270
)

// Valid reports whether a is one of 0, 90, 180, 270.
func (a Angle) Valid() bool {
	switch a {
	case Angle0, Angle90, Angle180, Angle270:
		return true
	}
	return false
}

// NormalizeAngle maps any value outside the valid set to 0.
func NormalizeAngle(degrees int) (Angle, error) {
	a := Angle(degrees)
	if !a.Valid() {
		return Angle0, fmt.Errorf("%w: %d (expected 0, 90, 180 or 270)", ErrInvalidAngle, degrees)
	}
	return a, nil
}

// ParseAngle parses user input into an Angle. Non-numeric or unsupported
// values yield Angle0 together with an ErrInvalidAngle error; callers are
// expected to warn and carry on with the zero rotation.
func ParseAngle(s string) (Angle, error) {
	degrees, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Angle0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
	}
	return NormalizeAngle(degrees)
}

// Page is a handle on one page of a Source.
type Page struct {
	Source Source
	// Number is the 1-based page number inside Source
	Number int
	// Rotation is added on top of the rotation stored in the source page
	Rotation Angle
}

// Rotate returns a copy of p turned clockwise by a.
func (p Page) Rotate(a Angle) Page {
	p.Rotation = Angle((int(p.Rotation) + int(a)) % 360)
	return p
}

// Document is an ordered sequence of pages. Transforms never modify a
// Document in place; they always build a new one.
type Document struct {
	Name  string
	Pages []Page
}

// NewDocument wraps every page of src, in reading order.
func NewDocument(src Source) *Document {
	doc := &Document{Name: src.Name(), Pages: make([]Page, 0, src.PageCount())}
	for i := 1; i <= src.PageCount(); i++ {
		doc.Pages = append(doc.Pages, Page{Source: src, Number: i})
	}
	return doc
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

func (d *Document) derive(capacity int) *Document {
	return &Document{Name: d.Name, Pages: make([]Page, 0, capacity)}
}
