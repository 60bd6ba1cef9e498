package traverse

import (
	"path/filepath"
	"strings"

	"github.com/treescope/treescope/internal/classify"
	"github.com/treescope/treescope/internal/filter"
	"github.com/treescope/treescope/internal/types"
	"github.com/treescope/treescope/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directoryIcon = "📁"
	fileIcon      = "📄"

	// accessDeniedSentinel is emitted in place of an unreadable subtree.
	accessDeniedSentinel = "[Access Denied]"

	iconNameSeparator = " "
	lineSeparator     = "\n"
)

// renderFrame is one unit of pending work on the renderer's explicit stack.
// The line is pre-rendered by the parent while connector positions are still
// known; childPrefix seeds the frames of this frame's own children.
type renderFrame struct {
	path        string
	depth       int
	childPrefix string
	line        string
	isDirectory bool
}

// renderState is the per-call accumulator: an ordered line buffer plus the
// frame stack. It is owned by exactly one Render call and discarded at
// completion, which keeps Render reentrant across concurrent callers.
type renderState struct {
	lines []string
	stack []renderFrame
}

func (state *renderState) push(frame renderFrame) {
	state.stack = append(state.stack, frame)
}

func (state *renderState) pop() renderFrame {
	lastIndex := len(state.stack) - 1
	frame := state.stack[lastIndex]
	state.stack = state.stack[:lastIndex]
	return frame
}

// Render produces the connector-drawn textual tree for the configured root.
//
// The walk is an explicit work stack rather than native recursion, so tree
// depth costs heap instead of call-stack frames. Per directory the visit list
// is all subdirectories ascending by name followed by all filter-passing
// files ascending by name; connector selection ("last" position) is computed
// against the visible subset of that list. An unreadable directory
// contributes one sentinel line and abandons only its own subtree.
func Render(configuration types.TraversalConfig) (string, error) {
	rootPath, rootError := classify.ResolveRoot(configuration.RootPath)
	if rootError != nil {
		return "", rootError
	}

	entryFilter := filter.New(configuration)
	state := &renderState{}
	state.lines = append(state.lines, directoryIcon+iconNameSeparator+filepath.Base(rootPath))
	state.push(renderFrame{path: rootPath, depth: 0, childPrefix: utils.EmptyString, isDirectory: true})

	for len(state.stack) > 0 {
		frame := state.pop()
		if frame.line != utils.EmptyString {
			state.lines = append(state.lines, frame.line)
		}
		if !frame.isDirectory {
			continue
		}
		if configuration.DepthExceeded(frame.depth) {
			continue
		}

		childDirectories, childFiles, listError := listChildren(frame.path, configuration.ExcludePatterns)
		if listError != nil {
			state.lines = append(state.lines, frame.childPrefix+accessDeniedSentinel)
			continue
		}

		visitList := append(childDirectories, childFiles...)
		visibility := make([]bool, len(visitList))
		lastVisibleIndex := -1
		for index, entry := range visitList {
			visibility[index] = entryFilter.IsVisible(entry)
			if visibility[index] {
				lastVisibleIndex = index
			}
		}

		for index := len(visitList) - 1; index >= 0; index-- {
			entry := visitList[index]
			if !visibility[index] {
				if entry.IsDirectory {
					// Hidden directories still descend; their children render
					// at the parent's prefix.
					state.push(renderFrame{
						path:        entry.Path,
						depth:       frame.depth + 1,
						childPrefix: frame.childPrefix,
						isDirectory: true,
					})
				}
				continue
			}
			connector := treeBranchConnector
			childPadding := treeBranchPadding
			if index == lastVisibleIndex {
				connector = treeLastConnector
				childPadding = treeLastPadding
			}
			entryIcon := fileIcon
			if entry.IsDirectory {
				entryIcon = directoryIcon
			}
			entryLine := frame.childPrefix + connector + entryIcon + iconNameSeparator + entry.Name + detailSuffix(entry, configuration.Details)
			state.push(renderFrame{
				path:        entry.Path,
				depth:       frame.depth + 1,
				childPrefix: frame.childPrefix + childPadding,
				line:        entryLine,
				isDirectory: entry.IsDirectory,
			})
		}
	}

	return strings.Join(state.lines, lineSeparator) + lineSeparator, nil
}

// detailSuffix appends the requested metadata as space-separated suffixes.
// Size applies to files only; modification time applies to both kinds.
func detailSuffix(entry types.DirectoryEntry, details types.DetailFlags) string {
	var suffixBuilder strings.Builder
	if details.Size && !entry.IsDirectory {
		suffixBuilder.WriteString(iconNameSeparator + utils.FormatByteSize(entry.SizeBytes))
	}
	if details.ModifiedAt {
		formattedTimestamp := utils.FormatTimestamp(entry.ModifiedAt)
		if formattedTimestamp != utils.EmptyString {
			suffixBuilder.WriteString(iconNameSeparator + formattedTimestamp)
		}
	}
	return suffixBuilder.String()
}
