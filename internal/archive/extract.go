// Package archive decodes tar-formatted export streams into flat file
// records.
package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"errors"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"

	apperrors "github.com/layerpeek/layerpeek/internal/errors"
	"github.com/layerpeek/layerpeek/internal/domain/model"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Extract consumes a tar byte stream end to end and produces one FileRecord
// per entry, preserving stream order. File content is buffered in full;
// directory entries are recorded with size 0. The stream is fully drained
// before returning: a truncated or malformed stream yields an extraction
// error and no partial results. Gzip-compressed streams are detected by
// their magic bytes and decompressed transparently.
func Extract(r io.Reader, root string) ([]model.FileRecord, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Extraction(err, "read archive stream")
	}

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		gz, gzErr := gzip.NewReader(br)
		if gzErr != nil {
			return nil, apperrors.Extraction(gzErr, "open gzip stream")
		}
		defer gz.Close()
		src = gz
	}

	tr := tar.NewReader(src)
	var records []model.FileRecord
	for {
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			return records, nil
		}
		if nextErr != nil {
			return nil, apperrors.Extraction(nextErr, "decode archive entry")
		}

		rec := model.FileRecord{
			Name:     path.Base(path.Clean(hdr.Name)),
			Path:     entryPath(root, hdr.Name),
			Size:     hdr.Size,
			Modified: hdr.ModTime,
			Kind:     model.FileKindFile,
		}
		if hdr.Typeflag == tar.TypeDir {
			rec.Kind = model.FileKindDirectory
			rec.Size = 0
		} else if hdr.Typeflag == tar.TypeReg {
			content, readErr := io.ReadAll(tr)
			if readErr != nil {
				return nil, apperrors.Extraction(readErr, "read archive entry content")
			}
			rec.Content = content
		}
		records = append(records, rec)
	}
}

// entryPath joins the export root with a tar entry name into the full path
// within the inspected subtree.
func entryPath(root, name string) string {
	return path.Join("/", root, name)
}
