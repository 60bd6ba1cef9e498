package traverse

import (
	"io/fs"
	"path/filepath"

	"github.com/treescope/treescope/internal/classify"
	"github.com/treescope/treescope/internal/types"
	"github.com/treescope/treescope/internal/utils"
)

// CollectStatistics scans the root and returns aggregate file and directory
// counts plus the total size of all counted files. The root itself is not
// counted. A missing or non-directory root fails the whole call; behavior on
// unreadable subtrees mid-scan follows options.SkipInaccessible: when true
// the subtree is skipped and counting continues, when false the call aborts
// with the listing error.
func CollectStatistics(rootPath string, options types.StatisticsOptions) (types.Statistics, error) {
	absoluteRootPath, rootError := classify.ResolveRoot(rootPath)
	if rootError != nil {
		return types.Statistics{}, rootError
	}

	if !options.Recursive {
		return collectTopLevelStatistics(absoluteRootPath, options)
	}

	var statistics types.Statistics
	walkError := filepath.WalkDir(absoluteRootPath, func(currentPath string, directoryEntry fs.DirEntry, visitError error) error {
		if visitError != nil {
			if options.SkipInaccessible {
				// The unreadable directory was already counted on its first
				// visit; its contents silently drop out of the totals.
				return nil
			}
			return visitError
		}
		if currentPath == absoluteRootPath {
			return nil
		}
		if utils.ShouldExcludeEntry(directoryEntry.Name(), directoryEntry.IsDir(), options.ExcludePatterns) {
			if directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			statistics.DirectoryCount++
			return nil
		}
		statistics.FileCount++
		entryInformation, informationError := directoryEntry.Info()
		if informationError == nil {
			statistics.TotalBytes += entryInformation.Size()
		}
		return nil
	})
	if walkError != nil {
		return types.Statistics{}, walkError
	}
	return statistics, nil
}

// collectTopLevelStatistics counts only the root's immediate children.
func collectTopLevelStatistics(absoluteRootPath string, options types.StatisticsOptions) (types.Statistics, error) {
	childDirectories, childFiles, listError := listChildren(absoluteRootPath, options.ExcludePatterns)
	if listError != nil {
		return types.Statistics{}, listError
	}
	statistics := types.Statistics{
		FileCount:      len(childFiles),
		DirectoryCount: len(childDirectories),
	}
	for _, childFile := range childFiles {
		statistics.TotalBytes += childFile.SizeBytes
	}
	return statistics, nil
}
