package model

import "time"

// FileKind distinguishes file entries from directory entries.
type FileKind string

const (
	// FileKindFile marks a regular file entry.
	FileKindFile FileKind = "file"
	// FileKindDirectory marks a directory entry.
	FileKindDirectory FileKind = "directory"
)

// FileRecord is one flat entry decoded from an exported archive stream.
// Records are produced per extraction call and consumed immediately by the
// tree builder; they are not persisted standalone. Content is populated only
// for regular files.
type FileRecord struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Kind     FileKind  `json:"kind"`
	Modified time.Time `json:"modified"`
	Content  []byte    `json:"content,omitempty"`
}

// FileNode is one node of the hierarchical output tree. Children are kept in
// first-seen order, not sorted. Every node except the synthetic root has a
// parent already present in the tree at attachment time.
type FileNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Size     string      `json:"size"`
	Kind     FileKind    `json:"kind"`
	Modified time.Time   `json:"modified"`
	Children []*FileNode `json:"children,omitempty"`
}
