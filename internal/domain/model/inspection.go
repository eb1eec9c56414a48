package model

import (
	"time"

	"github.com/opencontainers/go-digest"
)

// Layer describes one filesystem layer of an inspected image. Size is
// approximate when the engine does not report per-layer sizes (an even split
// of the total image size across layers).
type Layer struct {
	Digest digest.Digest `json:"digest"`
	Size   int64         `json:"size"`
}

// ImageConfig carries the config metadata reported by the engine for an image.
type ImageConfig struct {
	Created      time.Time `json:"created"`
	Architecture string    `json:"architecture"`
	OS           string    `json:"os"`
	Env          []string  `json:"env"`
}

// ImageMetadata is the manifest/config view produced by the image acquirer.
type ImageMetadata struct {
	Reference string      `json:"reference"`
	Config    ImageConfig `json:"config"`
	Layers    []Layer     `json:"layers"`
}

// InspectionResult is the aggregate outcome of a completed inspection job:
// layer metadata, config metadata, and the file tree rooted at the inspected
// subtree. It is stored in both the job record and the result cache.
type InspectionResult struct {
	Image  string      `json:"image"`
	Config ImageConfig `json:"config"`
	Layers []Layer     `json:"layers"`
	Tree   []*FileNode `json:"tree"`
}
