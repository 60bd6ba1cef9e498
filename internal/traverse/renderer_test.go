package traverse_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/treescope/treescope/internal/traverse"
	"github.com/treescope/treescope/internal/types"
)

func writeFileOfSize(t *testing.T, filePath string, size int) {
	t.Helper()
	if writeError := os.WriteFile(filePath, bytes.Repeat([]byte("x"), size), 0o644); writeError != nil {
		t.Fatalf("writing %s: %v", filePath, writeError)
	}
}

func makeDirectory(t *testing.T, directoryPath string) {
	t.Helper()
	if makeError := os.MkdirAll(directoryPath, 0o755); makeError != nil {
		t.Fatalf("mkdir %s: %v", directoryPath, makeError)
	}
}

func fullConfig(rootPath string) types.TraversalConfig {
	return types.TraversalConfig{
		RootPath: rootPath,
		MaxDepth: types.UnlimitedDepth,
		Mode:     types.ModeFull,
	}
}

func renderLines(t *testing.T, configuration types.TraversalConfig) []string {
	t.Helper()
	rendered, renderError := traverse.Render(configuration)
	if renderError != nil {
		t.Fatalf("Render error: %v", renderError)
	}
	if !strings.HasSuffix(rendered, "\n") {
		t.Fatalf("rendered output should end with a newline")
	}
	return strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
}

// TestRenderOrdersDirectoriesBeforeFiles verifies the combined visit list:
// directories ascending by name, then files ascending by name, with the
// connector chosen against that list.
func TestRenderOrdersDirectoriesBeforeFiles(t *testing.T) {
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "sub"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "a.txt"), 10)
	writeFileOfSize(t, filepath.Join(rootDirectory, "b.md"), 2048)

	lines := renderLines(t, fullConfig(rootDirectory))
	expected := []string{
		"📁 " + filepath.Base(rootDirectory),
		"├── 📁 sub",
		"├── 📄 a.txt",
		"└── 📄 b.md",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %q", len(expected), len(lines), lines)
	}
	for index := range expected {
		if lines[index] != expected[index] {
			t.Fatalf("line %d: expected %q, got %q", index, expected[index], lines[index])
		}
	}
}

// TestRenderDeterminism verifies byte-identical output across repeated calls.
func TestRenderDeterminism(t *testing.T) {
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "alpha", "nested"))
	makeDirectory(t, filepath.Join(rootDirectory, "beta"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "alpha", "one.txt"), 5)
	writeFileOfSize(t, filepath.Join(rootDirectory, "two.txt"), 7)

	configuration := fullConfig(rootDirectory)
	firstRendering, firstError := traverse.Render(configuration)
	if firstError != nil {
		t.Fatalf("first Render error: %v", firstError)
	}
	secondRendering, secondError := traverse.Render(configuration)
	if secondError != nil {
		t.Fatalf("second Render error: %v", secondError)
	}
	if firstRendering != secondRendering {
		t.Fatalf("identical input should render identically:\n%s\n---\n%s", firstRendering, secondRendering)
	}
}

// TestRenderDepthZeroShowsImmediateChildrenOnly verifies the depth bound.
func TestRenderDepthZeroShowsImmediateChildrenOnly(t *testing.T) {
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "sub", "nested"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "sub", "deep.txt"), 1)
	writeFileOfSize(t, filepath.Join(rootDirectory, "top.txt"), 1)

	configuration := fullConfig(rootDirectory)
	configuration.MaxDepth = 0
	rendered := strings.Join(renderLines(t, configuration), "\n")
	if !strings.Contains(rendered, "sub") || !strings.Contains(rendered, "top.txt") {
		t.Fatalf("immediate children missing:\n%s", rendered)
	}
	if strings.Contains(rendered, "nested") || strings.Contains(rendered, "deep.txt") {
		t.Fatalf("grandchildren should not appear at depth 0:\n%s", rendered)
	}
}

// TestRenderExtensionFilterKeepsDirectories verifies that extension filtering
// hides files but never directories, and that filtered directories still
// recurse.
func TestRenderExtensionFilterKeepsDirectories(t *testing.T) {
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "sub"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "a.txt"), 1)
	writeFileOfSize(t, filepath.Join(rootDirectory, "b.md"), 1)
	writeFileOfSize(t, filepath.Join(rootDirectory, "sub", "c.txt"), 1)

	configuration := fullConfig(rootDirectory)
	configuration.IncludeExtensions = map[string]struct{}{".txt": {}}
	lines := renderLines(t, configuration)
	expected := []string{
		"📁 " + filepath.Base(rootDirectory),
		"├── 📁 sub",
		"│   └── 📄 c.txt",
		"└── 📄 a.txt",
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("expected:\n%s\ngot:\n%s", strings.Join(expected, "\n"), strings.Join(lines, "\n"))
	}
}

// TestRenderAccessDeniedIsLocal verifies that one unreadable subtree yields a
// single sentinel line while siblings render normally.
func TestRenderAccessDeniedIsLocal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not restrict root")
	}
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "alpha"))
	makeDirectory(t, filepath.Join(rootDirectory, "beta"))
	makeDirectory(t, filepath.Join(rootDirectory, "gamma"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "alpha", "a.txt"), 1)
	writeFileOfSize(t, filepath.Join(rootDirectory, "gamma", "g.txt"), 1)

	deniedPath := filepath.Join(rootDirectory, "beta")
	if chmodError := os.Chmod(deniedPath, 0o000); chmodError != nil {
		t.Fatalf("chmod: %v", chmodError)
	}
	t.Cleanup(func() {
		_ = os.Chmod(deniedPath, 0o755)
	})

	lines := renderLines(t, fullConfig(rootDirectory))
	rendered := strings.Join(lines, "\n")
	if strings.Count(rendered, "[Access Denied]") != 1 {
		t.Fatalf("expected exactly one sentinel line:\n%s", rendered)
	}
	expected := []string{
		"📁 " + filepath.Base(rootDirectory),
		"├── 📁 alpha",
		"│   └── 📄 a.txt",
		"├── 📁 beta",
		"│   [Access Denied]",
		"└── 📁 gamma",
		"    └── 📄 g.txt",
	}
	if rendered != strings.Join(expected, "\n") {
		t.Fatalf("expected:\n%s\ngot:\n%s", strings.Join(expected, "\n"), rendered)
	}
}

// TestRenderDetailSuffixes verifies size and timestamp suffixes.
func TestRenderDetailSuffixes(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFileOfSize(t, filepath.Join(rootDirectory, "data.bin"), 1536)

	configuration := fullConfig(rootDirectory)
	configuration.Mode = types.ModeDetailed
	configuration.Details = types.DetailFlags{Size: true}
	lines := renderLines(t, configuration)
	if lines[1] != "└── 📄 data.bin 1.5 KB" {
		t.Fatalf("unexpected detail line: %q", lines[1])
	}

	configuration.Details = types.DetailFlags{Size: true, ModifiedAt: true}
	lines = renderLines(t, configuration)
	if !strings.HasPrefix(lines[1], "└── 📄 data.bin 1.5 KB ") {
		t.Fatalf("timestamp suffix missing: %q", lines[1])
	}
}

// TestRenderFolderOnlyMode verifies that files disappear while the directory
// skeleton remains.
func TestRenderFolderOnlyMode(t *testing.T) {
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "docs"))
	makeDirectory(t, filepath.Join(rootDirectory, "src"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "readme.md"), 1)

	configuration := fullConfig(rootDirectory)
	configuration.Mode = types.ModeFolderOnly
	lines := renderLines(t, configuration)
	expected := []string{
		"📁 " + filepath.Base(rootDirectory),
		"├── 📁 docs",
		"└── 📁 src",
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("expected:\n%s\ngot:\n%s", strings.Join(expected, "\n"), strings.Join(lines, "\n"))
	}
}

// TestRenderFileOnlyMode verifies that directory lines disappear while their
// files still render.
func TestRenderFileOnlyMode(t *testing.T) {
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "sub"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "sub", "x.txt"), 1)
	writeFileOfSize(t, filepath.Join(rootDirectory, "a.txt"), 1)

	configuration := fullConfig(rootDirectory)
	configuration.Mode = types.ModeFileOnly
	rendered := strings.Join(renderLines(t, configuration), "\n")
	if strings.Contains(rendered, "📁 sub") {
		t.Fatalf("directory line should be hidden in file-only mode:\n%s", rendered)
	}
	if !strings.Contains(rendered, "x.txt") || !strings.Contains(rendered, "a.txt") {
		t.Fatalf("files below hidden directories should still render:\n%s", rendered)
	}
}

// TestRenderEmptyRoot verifies that an empty directory renders only the
// synthesized root line.
func TestRenderEmptyRoot(t *testing.T) {
	rootDirectory := t.TempDir()
	lines := renderLines(t, fullConfig(rootDirectory))
	if len(lines) != 1 {
		t.Fatalf("expected only the root line, got %q", lines)
	}
}

// TestRenderMissingRootFails verifies call-level error semantics.
func TestRenderMissingRootFails(t *testing.T) {
	configuration := fullConfig(filepath.Join(t.TempDir(), "absent"))
	if _, renderError := traverse.Render(configuration); renderError == nil {
		t.Fatalf("expected error for missing root")
	}
}

// TestRenderExclusionPatternsPruneTraversal verifies that excluded directories
// neither render nor recurse.
func TestRenderExclusionPatternsPruneTraversal(t *testing.T) {
	rootDirectory := t.TempDir()
	makeDirectory(t, filepath.Join(rootDirectory, "vendor"))
	writeFileOfSize(t, filepath.Join(rootDirectory, "vendor", "lib.go"), 1)
	writeFileOfSize(t, filepath.Join(rootDirectory, "main.go"), 1)

	configuration := fullConfig(rootDirectory)
	configuration.ExcludePatterns = []string{"vendor/"}
	rendered := strings.Join(renderLines(t, configuration), "\n")
	if strings.Contains(rendered, "vendor") || strings.Contains(rendered, "lib.go") {
		t.Fatalf("excluded subtree leaked into output:\n%s", rendered)
	}
	if !strings.Contains(rendered, "main.go") {
		t.Fatalf("sibling of excluded directory missing:\n%s", rendered)
	}
}
