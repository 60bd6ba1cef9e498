// Package classify identifies filesystem paths as files or directories and
// extracts their display name and extension.
package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root path that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
)

// NotFoundError marks a path that vanished between listing and classification.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (notFound *NotFoundError) Error() string {
	return fmt.Sprintf("path '%s' does not exist", notFound.Path)
}

// Classification describes one existing path.
type Classification struct {
	IsDirectory bool
	Name        string
	Extension   string
}

// Classify stats the provided path and returns whether it is a directory, its
// base name, and (for files) its lower-case extension including the leading
// dot. A missing path yields *NotFoundError so callers can treat the race with
// concurrent filesystem mutation as a per-entry, non-fatal condition.
func Classify(path string) (Classification, error) {
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return Classification{}, &NotFoundError{Path: path}
		}
		return Classification{}, fmt.Errorf(errorStatFormat, path, statError)
	}
	baseName := filepath.Base(path)
	classification := Classification{
		IsDirectory: fileInformation.IsDir(),
		Name:        baseName,
	}
	if !classification.IsDirectory {
		classification.Extension = FileExtension(baseName)
	}
	return classification, nil
}

// FileExtension returns the lower-case extension of a file name including the
// leading dot, or an empty string for extensionless names.
func FileExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// ResolveRoot validates a traversal root: it must exist and be a directory.
// The cleaned absolute path is returned. Failures here are call-level and
// abort the whole operation.
func ResolveRoot(rootPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	fileInformation, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", &NotFoundError{Path: cleanPath}
		}
		return "", fmt.Errorf(errorStatFormat, cleanPath, statError)
	}
	if !fileInformation.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, cleanPath)
	}
	return cleanPath, nil
}
