package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treescope/treescope/internal/utils"
)

const commentPrefix = "#"

// LoadIgnoreFilePatterns reads the exclusion pattern file from the provided
// directory and returns its patterns. Blank lines and comment lines are
// skipped. A missing file yields no patterns and no error.
func LoadIgnoreFilePatterns(directoryPath string) ([]string, error) {
	ignoreFilePath := filepath.Join(directoryPath, utils.IgnoreFileName)
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return utils.DeduplicatePatterns(ignorePatterns), nil
}
