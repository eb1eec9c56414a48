// Package tree assembles flat file records into the hierarchical listing
// served with an inspection result.
package tree

import (
	"path"
	"sort"
	"strings"

	"github.com/layerpeek/layerpeek/internal/domain/model"
)

// rootPath is the conceptual root the virtual tree node is seeded at.
const rootPath = "/"

// Build reconstructs a hierarchical tree from a flat record list and returns
// the top-level nodes in first-seen order.
//
// Records are processed in ascending path-depth order so a directory is
// always handled before its descendants; attachment looks the parent up by
// path and the parent must already exist as a built node. Records whose
// parent path has no node (an intermediate directory entry absent from the
// archive) are dropped rather than having ancestors synthesized.
func Build(records []model.FileRecord) []*model.FileNode {
	sorted := make([]model.FileRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return depth(sorted[i].Path) < depth(sorted[j].Path)
	})

	root := &model.FileNode{Path: rootPath, Kind: model.FileKindDirectory}
	nodes := map[string]*model.FileNode{rootPath: root}

	for i := range sorted {
		rec := &sorted[i]
		p := normalize(rec.Path)
		if p == rootPath {
			continue
		}
		parent, ok := nodes[path.Dir(p)]
		if !ok {
			// Parent directory never appeared in the archive; drop the
			// record instead of inventing ancestors.
			continue
		}
		node := &model.FileNode{
			Name:     rec.Name,
			Path:     p,
			Size:     FormatSize(rec.Size),
			Kind:     rec.Kind,
			Modified: rec.Modified,
		}
		parent.Children = append(parent.Children, node)
		nodes[p] = node
	}

	return root.Children
}

// normalize cleans a record path into the absolute form nodes are registered
// under.
func normalize(p string) string {
	return path.Clean(rootPath + strings.TrimPrefix(p, rootPath))
}

func depth(p string) int {
	return strings.Count(normalize(p), "/")
}
