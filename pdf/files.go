package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// OpenFile reads and decodes the PDF at path.
func OpenFile(codec Codec, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return codec.Decode(filepath.Base(path), bytes.NewReader(data))
}

// EnsureExtension appends ".pdf" unless path already ends with it.
func EnsureExtension(path string) string {
	if strings.HasSuffix(path, Extension) {
		return path
	}
	return path + Extension
}

// SaveFile encodes doc and writes it to path, adding the .pdf extension if
// missing. It returns the path actually written.
func SaveFile(codec Codec, doc *Document, path string) (string, error) {
	path = EnsureExtension(path)

	var buf bytes.Buffer
	if err := codec.Encode(&buf, doc); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	return path, nil
}

// BaseName returns the file name of path without directory and extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SplitBase returns path without its extension, so split pages are written
// next to the source file.
func SplitBase(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// SuggestName proposes "{dir}/{baseName}_{modifier}.pdf" for a result derived
// from the file at sourcePath.
func SuggestName(sourcePath, modifier string) string {
	name := BaseName(sourcePath) + "_" + modifier + Extension
	return filepath.Join(filepath.Dir(sourcePath), name)
}

// SaveSplit writes every page of src as its own file and returns the paths
// in page order. Each page is encoded and written before the next is built.
func SaveSplit(codec Codec, src *Document, baseName string) ([]string, error) {
	var written []string
	for name, page := range Split(src, baseName) {
		path, err := SaveFile(codec, page, name)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
