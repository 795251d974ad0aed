package api

const (
	// MaxErrorLength truncates error messages returned to clients
	MaxErrorLength = 200

	// HeaderWarning carries non-fatal input problems, such as an invalid angle
	HeaderWarning = "X-Warning"

	// HeaderRequestID identifies a request in logs and responses
	HeaderRequestID = "X-Request-ID"

	// MergeFilesField is the multipart field holding the documents to append
	MergeFilesField = "files"
)
