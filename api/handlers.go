package api

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	pdfPkg "pdf_pages/pdf"
)

// transform builds the output document from the uploaded one.
type transform func(c *gin.Context, doc *pdfPkg.Document) (*pdfPkg.Document, bool)

func HandleInfo(c *gin.Context, config *Config) {
	doc, header, ok := readUpload(c, config)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename":    header.Filename,
		"total_pages": doc.PageCount(),
	})
}

func HandleExtract(c *gin.Context, config *Config) {
	handlePDFFile(c, config, func(c *gin.Context, doc *pdfPkg.Document) (*pdfPkg.Document, bool) {
		sel, ok := selectPages(c, doc)
		if !ok {
			return nil, false
		}
		return pdfPkg.Extract(doc, sel), true
	}, pdfPkg.SuffixSelected)
}

func HandleRotate(c *gin.Context, config *Config) {
	handlePDFFile(c, config, func(c *gin.Context, doc *pdfPkg.Document) (*pdfPkg.Document, bool) {
		sel, ok := selectPages(c, doc)
		if !ok {
			return nil, false
		}
		angle, err := pdfPkg.ParseAngle(c.PostForm("angle"))
		if err != nil {
			c.Header(HeaderWarning, err.Error())
		}
		return pdfPkg.Rotate(doc, sel, angle), true
	}, pdfPkg.SuffixRotated)
}

func HandleRemovePages(c *gin.Context, config *Config) {
	handlePDFFile(c, config, func(c *gin.Context, doc *pdfPkg.Document) (*pdfPkg.Document, bool) {
		sel, ok := selectPages(c, doc)
		if !ok {
			return nil, false
		}
		return pdfPkg.RemovePages(doc, sel), true
	}, pdfPkg.SuffixCleared)
}

func HandleMerge(c *gin.Context, config *Config) {
	handlePDFFile(c, config, func(c *gin.Context, doc *pdfPkg.Document) (*pdfPkg.Document, bool) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
			return nil, false
		}

		var additional []*pdfPkg.Document
		for _, header := range form.File[MergeFilesField] {
			other, ok := decodeHeader(c, config, header)
			if !ok {
				return nil, false
			}
			additional = append(additional, other)
		}
		return pdfPkg.Merge(doc, additional...), true
	}, pdfPkg.SuffixMerged)
}

func HandleSplit(c *gin.Context, config *Config) {
	doc, header, ok := readUpload(c, config)
	if !ok {
		return
	}

	base := uploadBase(header.Filename)
	archive := base + "_pages.zip"

	// each page is encoded in memory before its entry is written, and headers
	// go out only once the first page is ready
	var zipWriter *zip.Writer
	for name, page := range pdfPkg.Split(doc, base) {
		var buf bytes.Buffer
		if err := config.Codec.Encode(&buf, page); err != nil {
			requestLog(c, config).WithError(err).WithField("entry", name).Error("Split failed")
			if zipWriter == nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error())})
				return
			}
			// the archive is left without its central directory so the
			// client cannot read it as complete
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}

		if zipWriter == nil {
			c.Header("Content-Type", "application/zip")
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive))
			c.Status(http.StatusOK)
			zipWriter = zip.NewWriter(c.Writer)
		}

		entry, err := zipWriter.Create(name)
		if err == nil {
			_, err = entry.Write(buf.Bytes())
		}
		if err != nil {
			requestLog(c, config).WithError(err).WithField("entry", name).Error("Split write failed")
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
	}

	if zipWriter == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "The document has no pages"})
		return
	}
	if err := zipWriter.Close(); err != nil {
		requestLog(c, config).WithError(err).Error("Split archive close failed")
		c.Error(err)
	}
}

func handlePDFFile(c *gin.Context, config *Config, operation transform, suffix string) {
	doc, header, ok := readUpload(c, config)
	if !ok {
		return
	}

	result, ok := operation(c, doc)
	if !ok {
		return
	}
	if result.PageCount() == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "The result has no pages"})
		return
	}

	var buf bytes.Buffer
	if err := config.Codec.Encode(&buf, result); err != nil {
		requestLog(c, config).WithError(err).Error("PDF operation error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error())})
		return
	}

	requestLog(c, config).WithFields(logrus.Fields{
		"operation": suffix,
		"pages":     result.PageCount(),
	}).Info("PDF operation completed")

	filename := outputName(header.Filename, suffix)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// selectPages parses the "pages" form field against doc. A missing or blank
// field is a bad request; tokens that select nothing only set HeaderWarning.
func selectPages(c *gin.Context, doc *pdfPkg.Document) (pdfPkg.Selection, bool) {
	pagesParam := c.PostForm("pages")
	if pagesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return nil, false
	}
	sel := pdfPkg.ParseSelection(pagesParam, doc.PageCount())
	if sel.Empty() {
		c.Header(HeaderWarning, "no pages selected")
	}
	return sel, true
}

// readUpload decodes the "pdf" form file.
func readUpload(c *gin.Context, config *Config) (*pdfPkg.Document, *multipart.FileHeader, bool) {
	c.Header(HeaderRequestID, generateUniqueID())

	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return nil, nil, false
	}
	file.Close()

	doc, ok := decodeHeader(c, config, header)
	if !ok {
		return nil, nil, false
	}
	return doc, header, true
}

func decodeHeader(c *gin.Context, config *Config, header *multipart.FileHeader) (*pdfPkg.Document, bool) {
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return nil, false
	}
	defer file.Close()

	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read input file"})
		return nil, false
	}

	doc, err := config.Codec.Decode(sanitizeFilename(header.Filename), bytes.NewReader(data))
	if err != nil {
		requestLog(c, config).WithError(err).WithField("file", header.Filename).Warn("Decode failed")
		status := http.StatusInternalServerError
		if errors.Is(err, pdfPkg.ErrDecode) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": truncate(err.Error())})
		return nil, false
	}
	return doc, true
}

func requestLog(c *gin.Context, config *Config) logrus.FieldLogger {
	return config.Log.WithFields(logrus.Fields{
		"path":       c.FullPath(),
		"request_id": c.Writer.Header().Get(HeaderRequestID),
	})
}

func truncate(msg string) string {
	if len(msg) > MaxErrorLength {
		return msg[:MaxErrorLength] + "..."
	}
	return msg
}

// uploadBase strips the .pdf extension from an uploaded file name
func uploadBase(originalName string) string {
	if strings.HasSuffix(strings.ToLower(originalName), pdfPkg.Extension) {
		originalName = originalName[:len(originalName)-len(pdfPkg.Extension)]
	}
	base := sanitizeFilename(originalName)
	if originalName == "" || base == "document.pdf" {
		return "document"
	}
	return base
}

// outputName derives "{name}_{suffix}.pdf" from an uploaded file name
func outputName(originalName, suffix string) string {
	return uploadBase(originalName) + "_" + suffix + pdfPkg.Extension
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	filename = filepath.Base(filename)
	filename = norm.NFC.String(strings.TrimSpace(filename))

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

// generateUniqueID generates a unique identifier for a request
func generateUniqueID() string {
	return uuid.NewString()
}

// validatePDFFile checks if the file is a valid PDF by reading the header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	// Read first 4 bytes to check PDF header
	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %v", err)
	}

	if n < 4 || string(buffer[:4]) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}

	return nil
}
