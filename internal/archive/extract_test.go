package archive

import (
	"archive/tar"
	"bytes"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/layerpeek/layerpeek/internal/errors"
	"github.com/layerpeek/layerpeek/internal/domain/model"
)

type tarEntry struct {
	name    string
	dir     bool
	content string
}

func buildTar(t *testing.T, entries []tarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	modTime := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.name,
			Mode:    0o644,
			ModTime: modTime,
		}
		if e.dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
		} else {
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.content))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.dir {
			_, err := tw.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestExtractPlainTar(t *testing.T) {
	raw := buildTar(t, []tarEntry{
		{name: "etc/", dir: true},
		{name: "etc/hosts", content: "127.0.0.1 localhost\n"},
	})

	records, err := Extract(bytes.NewReader(raw), "/")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "etc", records[0].Name)
	assert.Equal(t, "/etc", records[0].Path)
	assert.Equal(t, model.FileKindDirectory, records[0].Kind)
	assert.Zero(t, records[0].Size)
	assert.Empty(t, records[0].Content)

	assert.Equal(t, "hosts", records[1].Name)
	assert.Equal(t, "/etc/hosts", records[1].Path)
	assert.Equal(t, model.FileKindFile, records[1].Kind)
	assert.Equal(t, int64(20), records[1].Size)
	assert.Equal(t, "127.0.0.1 localhost\n", string(records[1].Content))
	assert.False(t, records[1].Modified.IsZero())
}

func TestExtractStreamOrder(t *testing.T) {
	raw := buildTar(t, []tarEntry{
		{name: "b.txt", content: "b"},
		{name: "a.txt", content: "a"},
	})

	records, err := Extract(bytes.NewReader(raw), "/")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b.txt", records[0].Name)
	assert.Equal(t, "a.txt", records[1].Name)
}

func TestExtractUnderRoot(t *testing.T) {
	raw := buildTar(t, []tarEntry{
		{name: "hosts", content: "x"},
	})

	records, err := Extract(bytes.NewReader(raw), "/etc")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/etc/hosts", records[0].Path)
}

func TestExtractGzipStream(t *testing.T) {
	raw := buildTar(t, []tarEntry{
		{name: "bin/", dir: true},
		{name: "bin/sh", content: "#!"},
	})

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	records, err := Extract(bytes.NewReader(buf.Bytes()), "/")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "/bin/sh", records[1].Path)
	assert.Equal(t, "#!", string(records[1].Content))
}

func TestExtractTruncatedStream(t *testing.T) {
	raw := buildTar(t, []tarEntry{
		{name: "var/log/big.log", content: string(bytes.Repeat([]byte("x"), 1000))},
	})

	// Cut inside the entry's content region.
	records, err := Extract(bytes.NewReader(raw[:700]), "/")
	require.Error(t, err)
	assert.True(t, apperrors.IsExtraction(err))
	assert.Nil(t, records)
}

func TestExtractGarbageStream(t *testing.T) {
	records, err := Extract(bytes.NewReader([]byte("this is not a tar archive, not even close")), "/")
	require.Error(t, err)
	assert.True(t, apperrors.IsExtraction(err))
	assert.Nil(t, records)
}

func TestExtractEmptyStream(t *testing.T) {
	// An empty reader is an empty tar stream: no entries, no error.
	records, err := Extract(bytes.NewReader(nil), "/")
	require.NoError(t, err)
	assert.Empty(t, records)
}
