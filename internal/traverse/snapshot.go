package traverse

import (
	"os"
	"path/filepath"

	"github.com/treescope/treescope/internal/classify"
	"github.com/treescope/treescope/internal/filter"
	"github.com/treescope/treescope/internal/types"
	"github.com/treescope/treescope/internal/utils"
)

// Snapshot builds the structured node tree for JSON and XML output. It honors
// the same filter, ordering, and depth rules as Render: subdirectories before
// files, each group ascending by name, hidden directories flattened into the
// parent's child list, unreadable subtrees marked AccessDenied on their node.
func Snapshot(configuration types.TraversalConfig) (*types.TreeNode, error) {
	rootPath, rootError := classify.ResolveRoot(configuration.RootPath)
	if rootError != nil {
		return nil, rootError
	}

	rootNode := &types.TreeNode{
		Path: rootPath,
		Name: filepath.Base(rootPath),
		Type: types.KindDirectory,
	}
	rootInformation, rootStatError := os.Stat(rootPath)
	if rootStatError == nil {
		rootNode.LastModified = utils.FormatTimestamp(rootInformation.ModTime())
	}

	entryFilter := filter.New(configuration)
	childNodes, buildError := buildSnapshotNodes(rootPath, 0, configuration, entryFilter)
	if buildError != nil {
		rootNode.AccessDenied = true
		return rootNode, nil
	}
	rootNode.Children = childNodes
	return rootNode, nil
}

// buildSnapshotNodes lists one directory and converts its visible entries into
// nodes, recursing into every subdirectory. The returned error is the listing
// failure for directoryPath itself; failures below it are recorded on the
// affected child node instead of propagating.
func buildSnapshotNodes(directoryPath string, depth int, configuration types.TraversalConfig, entryFilter *filter.EntryFilter) ([]*types.TreeNode, error) {
	if configuration.DepthExceeded(depth) {
		return nil, nil
	}

	childDirectories, childFiles, listError := listChildren(directoryPath, configuration.ExcludePatterns)
	if listError != nil {
		return nil, listError
	}

	var nodes []*types.TreeNode
	for _, childDirectory := range childDirectories {
		descendantNodes, buildError := buildSnapshotNodes(childDirectory.Path, depth+1, configuration, entryFilter)
		if !entryFilter.IsVisible(childDirectory) {
			// Hidden directories contribute their descendants at this level.
			nodes = append(nodes, descendantNodes...)
			continue
		}
		directoryNode := &types.TreeNode{
			Path:         childDirectory.Path,
			Name:         childDirectory.Name,
			Type:         types.KindDirectory,
			LastModified: utils.FormatTimestamp(childDirectory.ModifiedAt),
		}
		if buildError != nil {
			directoryNode.AccessDenied = true
		} else {
			directoryNode.Children = descendantNodes
		}
		nodes = append(nodes, directoryNode)
	}
	for _, childFile := range childFiles {
		if !entryFilter.IsVisible(childFile) {
			continue
		}
		nodes = append(nodes, &types.TreeNode{
			Path:         childFile.Path,
			Name:         childFile.Name,
			Type:         types.KindFile,
			Size:         utils.FormatByteSize(childFile.SizeBytes),
			SizeBytes:    childFile.SizeBytes,
			LastModified: utils.FormatTimestamp(childFile.ModifiedAt),
		})
	}
	return nodes, nil
}
