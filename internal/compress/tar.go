package compress

import (
	"archive/tar"
	"bytes"
	"io"
	"time"
)

// TarWriter packs everything written to it into a single file of a TAR
// archive. The header needs the file size, so content is buffered until Close.
type TarWriter struct {
	w        io.Writer
	fileName string
	buf      bytes.Buffer
	modTime  time.Time
}

func NewTarWriter(w io.Writer, fileName string) *TarWriter {
	return &TarWriter{
		w:        w,
		fileName: fileName,
		modTime:  time.Now(),
	}
}

func (t *TarWriter) Write(p []byte) (int, error) {
	return t.buf.Write(p)
}

// Close writes the header, the buffered content and the archive trailer.
func (t *TarWriter) Close() error {
	tw := tar.NewWriter(t.w)
	hdr := &tar.Header{
		Name:     t.fileName,
		Mode:     0o644,
		Size:     int64(t.buf.Len()),
		ModTime:  t.modTime,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := io.Copy(tw, &t.buf); err != nil {
		return err
	}
	return tw.Close()
}
