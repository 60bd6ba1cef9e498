// Package utils contains general helper functions used across the treescope tool.
package utils

import (
	"path/filepath"
	"strings"
)

const directoryPatternSuffix = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ShouldExcludeEntry reports whether an entry name matches any exclusion
// pattern. A pattern with a trailing slash matches directories only; other
// patterns are evaluated against the name with filepath.Match semantics and a
// literal-equality fallback for patterns that fail to parse.
func ShouldExcludeEntry(entryName string, isDirectory bool, exclusionPatterns []string) bool {
	for _, patternValue := range exclusionPatterns {
		if strings.HasSuffix(patternValue, directoryPatternSuffix) {
			patternDirectory := strings.TrimSuffix(patternValue, directoryPatternSuffix)
			if isDirectory && entryName == patternDirectory {
				return true
			}
			continue
		}
		isMatched, matchError := filepath.Match(patternValue, entryName)
		if matchError == nil && isMatched {
			return true
		}
		if matchError != nil && patternValue == entryName {
			return true
		}
	}
	return false
}
