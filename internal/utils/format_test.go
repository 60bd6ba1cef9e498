package utils_test

import (
	"testing"
	"time"

	"github.com/treescope/treescope/internal/utils"
)

func TestFormatByteSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0 B"},
		{name: "zero", bytes: 0, expected: "0 B"},
		{name: "below kilobyte boundary", bytes: 1023, expected: "1023 B"},
		{name: "one kilobyte", bytes: 1024, expected: "1 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "two fractional digits", bytes: 1300, expected: "1.27 KB"},
		{name: "one gigabyte", bytes: 1073741824, expected: "1 GB"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10 MB"},
		{name: "terabyte ceiling", bytes: 3 * 1024 * 1024 * 1024 * 1024, expected: "3 TB"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatByteSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if utils.FormatTimestamp(time.Time{}) != "" {
		t.Fatalf("zero time should format as empty string")
	}
	value := time.Date(2024, time.March, 7, 14, 30, 59, 0, time.Local)
	expected := "2024-03-07 14:30"
	if result := utils.FormatTimestamp(value); result != expected {
		t.Fatalf("expected %s, got %s", expected, result)
	}
}

func TestDeduplicatePatterns(t *testing.T) {
	patterns := []string{"vendor/", "*.log", "vendor/", "*.log", "tmp"}
	result := utils.DeduplicatePatterns(patterns)
	expected := []string{"vendor/", "*.log", "tmp"}
	if len(result) != len(expected) {
		t.Fatalf("expected %d patterns, got %d", len(expected), len(result))
	}
	for index := range expected {
		if result[index] != expected[index] {
			t.Fatalf("expected %s at index %d, got %s", expected[index], index, result[index])
		}
	}
}

func TestShouldExcludeEntry(t *testing.T) {
	testCases := []struct {
		name        string
		entryName   string
		isDirectory bool
		patterns    []string
		expected    bool
	}{
		{name: "no patterns", entryName: "main.go", expected: false},
		{name: "glob match", entryName: "debug.log", patterns: []string{"*.log"}, expected: true},
		{name: "glob miss", entryName: "debug.txt", patterns: []string{"*.log"}, expected: false},
		{name: "directory pattern on directory", entryName: "vendor", isDirectory: true, patterns: []string{"vendor/"}, expected: true},
		{name: "directory pattern on file", entryName: "vendor", isDirectory: false, patterns: []string{"vendor/"}, expected: false},
		{name: "literal name", entryName: "node_modules", isDirectory: true, patterns: []string{"node_modules"}, expected: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.ShouldExcludeEntry(testCase.entryName, testCase.isDirectory, testCase.patterns)
			if result != testCase.expected {
				t.Fatalf("expected %v, got %v", testCase.expected, result)
			}
		})
	}
}
