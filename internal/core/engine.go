package core

import (
	"context"
	"io"

	"github.com/layerpeek/layerpeek/internal/domain/model"
)

// ImageEngine is the container-engine port used to acquire images and read
// their filesystems. Implementations serialize at the transport level and are
// safe for concurrent use.
type ImageEngine interface {
	// EnsureImage makes the image locally available, pulling it if absent.
	EnsureImage(ctx context.Context, ref string) error

	// InspectImage reads back manifest and config metadata for a locally
	// available image.
	InspectImage(ctx context.Context, ref string) (*model.ImageMetadata, error)

	// CreateContainer creates a non-executing container bound to the image,
	// returning its id. The container is never started; it only serves as a
	// named filesystem snapshot the engine can export from.
	CreateContainer(ctx context.Context, ref string) (string, error)

	// ExportPath streams a tar archive of the given path from the
	// container's filesystem. The caller owns the returned reader.
	ExportPath(ctx context.Context, containerID, path string) (io.ReadCloser, error)

	// RemoveContainer force-removes the container.
	RemoveContainer(ctx context.Context, containerID string) error
}
