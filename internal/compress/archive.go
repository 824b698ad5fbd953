package compress

import (
	"fmt"
	"io"
)

const (
	TypeZip = "zip"
	TypeTar = "tar"
)

// NewArchiveWriter returns a writer that stores its input as fileName inside
// an archive of the given type.
func NewArchiveWriter(w io.Writer, archiveType, fileName string) (io.WriteCloser, error) {
	switch archiveType {
	case TypeZip:
		return NewZipWriter(w, fileName)
	case TypeTar:
		return NewTarWriter(w, fileName), nil
	}
	return nil, fmt.Errorf("unsupported archive type %q", archiveType)
}

// ContentType is the media type of an archive type.
func ContentType(archiveType string) string {
	if archiveType == TypeTar {
		return "application/x-tar"
	}
	return "application/zip"
}
