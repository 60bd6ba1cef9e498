// Package types defines every cross-package data structure used by the treescope CLI.
package types

import (
	"encoding/xml"
	"time"
)

const (
	KindFile      = "file"
	KindDirectory = "directory"

	ModeFull       = "full"
	ModeDetailed   = "detailed"
	ModeFileOnly   = "files"
	ModeFolderOnly = "folders"

	CommandTree  = "tree"
	CommandStats = "stats"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// UnlimitedDepth disables the depth gate on traversal.
const UnlimitedDepth = -1

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// DirectoryEntry is an immutable metadata snapshot of one traversed entry,
// taken at visit time and never cached across calls.
type DirectoryEntry struct {
	Path        string
	Name        string
	IsDirectory bool
	SizeBytes   int64
	ModifiedAt  time.Time
}

// DetailFlags select which metadata suffixes are appended to rendered lines.
type DetailFlags struct {
	Size       bool
	ModifiedAt bool
}

// TraversalConfig is the read-only per-call configuration for tree traversal.
type TraversalConfig struct {
	RootPath          string
	MaxDepth          int
	IncludeExtensions map[string]struct{}
	SearchPattern     string
	ExcludePatterns   []string
	Details           DetailFlags
	Mode              string
}

// DepthExceeded reports whether listing children of a directory at the given
// depth would violate the configured depth bound. Depth zero is the root, so
// MaxDepth zero limits output to the root's immediate children.
func (configuration TraversalConfig) DepthExceeded(depth int) bool {
	return configuration.MaxDepth >= 0 && depth > configuration.MaxDepth
}

// Statistics aggregates counts and sizes produced by one statistics scan.
// The scanned root itself is excluded from the directory count.
type Statistics struct {
	FileCount      int   `json:"fileCount" xml:"fileCount"`
	DirectoryCount int   `json:"directoryCount" xml:"directoryCount"`
	TotalBytes     int64 `json:"totalBytes" xml:"totalBytes"`
}

// StatisticsReport pairs aggregate statistics with the scanned root for
// structured output.
type StatisticsReport struct {
	XMLName xml.Name `json:"-" xml:"statistics"`
	Path    string   `json:"path" xml:"path"`
	Statistics
}

// StatisticsOptions configures one statistics scan.
type StatisticsOptions struct {
	Recursive        bool
	SkipInaccessible bool
	ExcludePatterns  []string
}

// TreeNode represents a node of a directory tree returned for structured output.
type TreeNode struct {
	XMLName      xml.Name    `json:"-" xml:"node"`
	Path         string      `json:"path" xml:"path"`
	Name         string      `json:"name" xml:"name"`
	Type         string      `json:"type" xml:"type"`
	Size         string      `json:"size,omitempty" xml:"size,omitempty"`
	SizeBytes    int64       `json:"-" xml:"-"`
	LastModified string      `json:"lastModified,omitempty" xml:"lastModified,omitempty"`
	AccessDenied bool        `json:"accessDenied,omitempty" xml:"accessDenied,omitempty"`
	Children     []*TreeNode `json:"children,omitempty" xml:"children>node,omitempty"`
}
