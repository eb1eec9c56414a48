// Package dockerengine implements the core.ImageEngine port on the Docker
// Engine API.
package dockerengine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/distribution/reference"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/opencontainers/go-digest"

	apperrors "github.com/layerpeek/layerpeek/internal/errors"
	"github.com/layerpeek/layerpeek/internal/domain/model"
)

// Engine wraps a Docker API client. Safe for concurrent use; the client
// serializes at the transport level.
type Engine struct {
	cli    client.APIClient
	logger *slog.Logger
}

// Options groups dependencies for New.
type Options struct {
	Client client.APIClient // Required: Docker API client
	Logger *slog.Logger     // Optional: structured logger
}

// New creates an Engine over the given Docker API client.
func New(opts Options) (*Engine, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("docker client is required")
	}
	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "docker_engine")
	}
	return &Engine{cli: opts.Client, logger: logger}, nil
}

// Connect creates an Engine backed by a client configured from the
// environment (DOCKER_HOST and friends), with API version negotiation.
func Connect(logger *slog.Logger) (*Engine, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return New(Options{Client: cli, Logger: logger})
}

// Close releases the underlying client transport.
func (e *Engine) Close() error {
	return e.cli.Close()
}

// Health verifies the engine endpoint is reachable.
func (e *Engine) Health(ctx context.Context) error {
	_, err := e.cli.Ping(ctx)
	return err
}

// EnsureImage makes the image locally available, pulling it when absent.
func (e *Engine) EnsureImage(ctx context.Context, ref string) error {
	named, err := normalizeRef(ref)
	if err != nil {
		return err
	}

	if _, _, inspErr := e.cli.ImageInspectWithRaw(ctx, named); inspErr == nil {
		return nil
	} else if !client.IsErrNotFound(inspErr) {
		return apperrors.Acquisition(inspErr, "inspect local image")
	}

	if e.logger != nil {
		e.logger.InfoContext(ctx, "pulling image", "ref", named)
	}
	rc, err := e.cli.ImagePull(ctx, named, image.PullOptions{})
	if err != nil {
		return apperrors.Acquisition(err, fmt.Sprintf("pull image %s", named))
	}
	defer rc.Close()
	// The pull is only complete once the progress stream is drained.
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return apperrors.Acquisition(err, fmt.Sprintf("pull image %s", named))
	}
	return nil
}

// InspectImage reads manifest and config metadata for a locally available
// image. Per-layer size falls back to an even split of the total image size
// when the engine does not expose per-layer sizes.
func (e *Engine) InspectImage(ctx context.Context, ref string) (*model.ImageMetadata, error) {
	named, err := normalizeRef(ref)
	if err != nil {
		return nil, err
	}

	insp, _, err := e.cli.ImageInspectWithRaw(ctx, named)
	if err != nil {
		return nil, apperrors.Acquisition(err, fmt.Sprintf("inspect image %s", named))
	}

	meta := &model.ImageMetadata{
		Reference: named,
		Config: model.ImageConfig{
			Created:      parseCreated(insp.Created),
			Architecture: insp.Architecture,
			OS:           insp.Os,
		},
		Layers: layersFrom(insp),
	}
	if insp.Config != nil {
		meta.Config.Env = insp.Config.Env
	}
	return meta, nil
}

// CreateContainer creates a non-executing container bound to the image. The
// container is configured with a no-op command and never started; it exists
// only so the engine can export filesystem content from it.
func (e *Engine) CreateContainer(ctx context.Context, ref string) (string, error) {
	named, err := normalizeRef(ref)
	if err != nil {
		return "", err
	}
	created, err := e.cli.ContainerCreate(ctx, &container.Config{
		Image: named,
		Cmd:   []string{"true"},
	}, nil, nil, nil, "")
	if err != nil {
		return "", apperrors.Sandbox(err, fmt.Sprintf("create container for %s", named))
	}
	return created.ID, nil
}

// ExportPath streams a tar archive of the given path from the container's
// filesystem.
func (e *Engine) ExportPath(ctx context.Context, containerID, path string) (io.ReadCloser, error) {
	rc, _, err := e.cli.CopyFromContainer(ctx, containerID, path)
	if err != nil {
		if client.IsErrNotFound(err) {
			return nil, apperrors.NotFoundf("path %s not found in container", path)
		}
		return nil, apperrors.Sandbox(err, fmt.Sprintf("export %s", path))
	}
	return rc, nil
}

// RemoveContainer force-removes the container.
func (e *Engine) RemoveContainer(ctx context.Context, containerID string) error {
	err := e.cli.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
	if err != nil && !client.IsErrNotFound(err) {
		return apperrors.Sandbox(err, fmt.Sprintf("remove container %s", containerID))
	}
	return nil
}

// normalizeRef validates a reference and normalizes it to its familiar form,
// applying the default tag when none is present.
func normalizeRef(ref string) (string, error) {
	named, err := reference.ParseNormalizedNamed(ref)
	if err != nil {
		return "", apperrors.Acquisition(err, fmt.Sprintf("parse image reference %q", ref))
	}
	return reference.FamiliarString(reference.TagNameOnly(named)), nil
}

func parseCreated(created string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return time.Time{}
	}
	return t
}

func layersFrom(insp types.ImageInspect) []model.Layer {
	count := len(insp.RootFS.Layers)
	if count == 0 {
		return nil
	}
	// The inspect response reports only a total size; approximate per-layer
	// size as an even split across the layer count.
	approx := insp.Size / int64(count)
	layers := make([]model.Layer, 0, count)
	for _, l := range insp.RootFS.Layers {
		layers = append(layers, model.Layer{Digest: digest.Digest(l), Size: approx})
	}
	return layers
}
