package pdf

import "errors"

var (
	// ErrNotFound is returned when a source file does not exist
	ErrNotFound = errors.New("file not found")

	// ErrDecode is returned when a byte stream cannot be decoded as a PDF document
	ErrDecode = errors.New("cannot decode PDF")

	// ErrEmptyDocument is returned when encoding a document without pages
	ErrEmptyDocument = errors.New("document has no pages")

	// ErrInvalidAngle marks a rotation angle outside 0, 90, 180, 270
	ErrInvalidAngle = errors.New("invalid rotation angle")

	// ErrSave is returned when an output document cannot be encoded or written
	ErrSave = errors.New("cannot save PDF")

	// ErrForeignSource is returned when a codec is asked to encode pages it did not decode
	ErrForeignSource = errors.New("page source belongs to another codec")
)
