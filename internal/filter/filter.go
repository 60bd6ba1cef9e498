// Package filter decides which traversed entries are visible in rendered output.
package filter

import (
	"path/filepath"

	"github.com/treescope/treescope/internal/classify"
	"github.com/treescope/treescope/internal/types"
)

// EntryFilter evaluates entry visibility for one traversal configuration.
// Visibility only controls what is printed; directories are always traversed
// regardless of the outcome.
type EntryFilter struct {
	configuration types.TraversalConfig
}

// New constructs an EntryFilter for the provided configuration.
func New(configuration types.TraversalConfig) *EntryFilter {
	return &EntryFilter{configuration: configuration}
}

// IsVisible reports whether the entry appears in rendered output.
//
// Rules in precedence order: folder-only mode hides files; file-only mode
// hides directories; a non-empty extension set restricts files to member
// extensions; a search pattern must match the file name with glob semantics.
// Extension and pattern rules never apply to directories.
func (entryFilter *EntryFilter) IsVisible(entry types.DirectoryEntry) bool {
	if entry.IsDirectory {
		return entryFilter.configuration.Mode != types.ModeFileOnly
	}
	if entryFilter.configuration.Mode == types.ModeFolderOnly {
		return false
	}
	if len(entryFilter.configuration.IncludeExtensions) > 0 {
		entryExtension := classify.FileExtension(entry.Name)
		if _, included := entryFilter.configuration.IncludeExtensions[entryExtension]; !included {
			return false
		}
	}
	if entryFilter.configuration.SearchPattern != "" {
		isMatched, matchError := filepath.Match(entryFilter.configuration.SearchPattern, entry.Name)
		if matchError != nil || !isMatched {
			return false
		}
	}
	return true
}
