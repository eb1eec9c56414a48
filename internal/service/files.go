package service

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/layerpeek/layerpeek/internal/archive"
	apperrors "github.com/layerpeek/layerpeek/internal/errors"
	"github.com/layerpeek/layerpeek/internal/domain/model"
)

// FileServiceOptions groups dependencies for FileService.
type FileServiceOptions struct {
	Sandbox *SandboxManager // Required: sandbox lease manager
	Logger  *slog.Logger    // Optional: structured logger
}

// FileService retrieves individual file contents from an image's filesystem
// through the sandbox lease, re-entering the export/extract path for a
// single file. Concurrent identical fetches are coalesced.
type FileService struct {
	sandbox *SandboxManager
	logger  *slog.Logger
	group   singleflight.Group
}

// NewFileService constructs a FileService.
func NewFileService(opts FileServiceOptions) (*FileService, error) {
	if opts.Sandbox == nil {
		return nil, errors.New("SandboxManager is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "file_service")
	}
	return &FileService{sandbox: opts.Sandbox, logger: logger}, nil
}

// Fetch reads one file from the image's filesystem. Fetches are independent
// of any job record and may run concurrently with job processing.
func (s *FileService) Fetch(ctx context.Context, image, filePath string) (*model.FileRecord, error) {
	if strings.TrimSpace(image) == "" {
		return nil, apperrors.Validation("image reference is required")
	}
	cleaned := path.Clean("/" + strings.TrimPrefix(filePath, "/"))
	if cleaned == "/" {
		return nil, apperrors.Validation("file path is required")
	}

	v, err, _ := s.group.Do(image+"\x00"+cleaned, func() (any, error) {
		return s.fetch(ctx, image, cleaned)
	})
	if err != nil {
		return nil, err
	}
	rec, ok := v.(*model.FileRecord)
	if !ok {
		return nil, errors.New("unexpected fetch result type")
	}
	return rec, nil
}

func (s *FileService) fetch(ctx context.Context, image, cleaned string) (*model.FileRecord, error) {
	var rec *model.FileRecord
	err := s.sandbox.WithFilesystem(ctx, image, func(h *FilesystemHandle) error {
		rc, exportErr := h.Export(ctx, cleaned)
		if exportErr != nil {
			return exportErr
		}
		defer rc.Close()

		// A single-path export yields a tar rooted at the entry's parent.
		records, extractErr := archive.Extract(rc, path.Dir(cleaned))
		if extractErr != nil {
			return extractErr
		}
		rec = pick(records, cleaned)
		if rec == nil {
			return apperrors.NotFoundf("file %s not found", cleaned)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// pick selects the record matching the requested path, falling back to the
// first regular file when the export renamed the entry.
func pick(records []model.FileRecord, cleaned string) *model.FileRecord {
	base := path.Base(cleaned)
	for i := range records {
		if records[i].Path == cleaned || records[i].Name == base {
			return &records[i]
		}
	}
	for i := range records {
		if records[i].Kind == model.FileKindFile {
			return &records[i]
		}
	}
	return nil
}
