// Package traverse implements directory tree rendering and aggregate scanning.
package traverse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/treescope/treescope/internal/types"
	"github.com/treescope/treescope/internal/utils"
)

const (
	// warningStatPathFormat is used when file information cannot be retrieved.
	warningStatPathFormat = "Warning: unable to stat %s: %v\n"
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// listChildren reads one directory and partitions its entries into directory
// and file snapshots, each group sorted ascending by name. Entries matching an
// exclusion pattern are pruned before either group is built. An entry that
// vanished between listing and stat is skipped; other metadata failures are
// reported to stderr and leave zero-valued metadata.
func listChildren(directoryPath string, exclusionPatterns []string) ([]types.DirectoryEntry, []types.DirectoryEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	var childDirectories []types.DirectoryEntry
	var childFiles []types.DirectoryEntry
	for _, directoryEntry := range directoryEntries {
		if utils.ShouldExcludeEntry(directoryEntry.Name(), directoryEntry.IsDir(), exclusionPatterns) {
			continue
		}
		snapshot := types.DirectoryEntry{
			Path:        filepath.Join(directoryPath, directoryEntry.Name()),
			Name:        directoryEntry.Name(),
			IsDirectory: directoryEntry.IsDir(),
		}
		entryInformation, informationError := directoryEntry.Info()
		if informationError != nil {
			if errors.Is(informationError, fs.ErrNotExist) {
				continue
			}
			fmt.Fprintf(os.Stderr, warningStatPathFormat, snapshot.Path, informationError)
		} else {
			snapshot.ModifiedAt = entryInformation.ModTime()
			if !snapshot.IsDirectory {
				snapshot.SizeBytes = entryInformation.Size()
			}
		}
		if snapshot.IsDirectory {
			childDirectories = append(childDirectories, snapshot)
		} else {
			childFiles = append(childFiles, snapshot)
		}
	}

	sortEntriesByName(childDirectories)
	sortEntriesByName(childFiles)
	return childDirectories, childFiles, nil
}

func sortEntriesByName(entries []types.DirectoryEntry) {
	sort.Slice(entries, func(firstIndex, secondIndex int) bool {
		return entries[firstIndex].Name < entries[secondIndex].Name
	})
}
