package pdf

import "time"

// Name modifiers appended to the source name when saving a result.
const (
	SuffixSelected = "selected"
	SuffixRotated  = "rotated"
	SuffixCleared  = "cleared"
	SuffixMerged   = "merged"
)

const (
	// Extension is the file extension enforced on every saved document
	Extension = ".pdf"

	// DefaultFilePermissions for written documents
	DefaultFilePermissions = 0644

	// ViewerTimeout bounds how long launching an external viewer may take
	ViewerTimeout = 10 * time.Second
)
