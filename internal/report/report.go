// Package report assembles final textual reports around engine results.
package report

import (
	"fmt"
	"strings"

	"github.com/treescope/treescope/internal/types"
	"github.com/treescope/treescope/internal/utils"
)

const (
	treeHeaderFormat  = "--- Directory Tree: %s [%s] ---"
	statsHeaderFormat = "--- Directory Statistics: %s ---"

	fileCountLineFormat      = "Files: %d"
	directoryCountLineFormat = "Directories: %d"
	totalSizeLineFormat      = "Total Size: %s"

	reportLineSeparator = "\n"
)

// AssembleTree prepends a header naming the root and active mode to the
// rendered tree body. It contains no decision logic of its own.
func AssembleTree(rootPath string, mode string, renderedTree string) string {
	header := fmt.Sprintf(treeHeaderFormat, rootPath, mode)
	return header + reportLineSeparator + renderedTree
}

// AssembleStatistics formats aggregate statistics under a header naming the root.
func AssembleStatistics(rootPath string, statistics types.Statistics) string {
	reportLines := []string{
		fmt.Sprintf(statsHeaderFormat, rootPath),
		fmt.Sprintf(fileCountLineFormat, statistics.FileCount),
		fmt.Sprintf(directoryCountLineFormat, statistics.DirectoryCount),
		fmt.Sprintf(totalSizeLineFormat, utils.FormatByteSize(statistics.TotalBytes)),
	}
	return strings.Join(reportLines, reportLineSeparator) + reportLineSeparator
}
