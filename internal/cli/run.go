package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/treescope/treescope/internal/classify"
	"github.com/treescope/treescope/internal/config"
	"github.com/treescope/treescope/internal/output"
	"github.com/treescope/treescope/internal/report"
	"github.com/treescope/treescope/internal/services/clipboard"
	"github.com/treescope/treescope/internal/traverse"
	"github.com/treescope/treescope/internal/types"
	"github.com/treescope/treescope/internal/utils"
	"golang.org/x/sync/errgroup"
)

const (
	// errorCopyFormat reports a clipboard copy failure.
	errorCopyFormat = "copying output to clipboard: %w"
	// reportSeparator joins per-root raw reports.
	reportSeparator = "\n"
)

// resolveRoots validates every input path up front and removes duplicates.
// Any invalid root aborts the whole invocation with no partial output.
func resolveRoots(inputPaths []string) ([]string, error) {
	uniqueRoots := make(map[string]struct{})
	var validatedRoots []string
	for _, inputPath := range inputPaths {
		rootPath, rootError := classify.ResolveRoot(inputPath)
		if rootError != nil {
			return nil, rootError
		}
		if _, exists := uniqueRoots[rootPath]; exists {
			continue
		}
		uniqueRoots[rootPath] = struct{}{}
		validatedRoots = append(validatedRoots, rootPath)
	}
	return validatedRoots, nil
}

// rootExclusions merges invocation-level patterns with the root's ignore file.
// Ignore-file load failures degrade to the base patterns with a warning.
func rootExclusions(rootPath string, basePatterns []string, loadIgnoreFile bool) []string {
	if !loadIgnoreFile {
		return basePatterns
	}
	ignorePatterns, loadError := config.LoadIgnoreFilePatterns(rootPath)
	if loadError != nil {
		fmt.Fprintf(os.Stderr, warningIgnoreFileFormat, utils.IgnoreFileName, rootPath, loadError)
		return basePatterns
	}
	return utils.DeduplicatePatterns(append(append([]string{}, basePatterns...), ignorePatterns...))
}

// traversalConfig builds the engine configuration for one root.
func (request treeRequest) traversalConfig(rootPath string) types.TraversalConfig {
	return types.TraversalConfig{
		RootPath:          rootPath,
		MaxDepth:          request.maximumDepth,
		IncludeExtensions: request.includeExtensions,
		SearchPattern:     request.searchPattern,
		ExcludePatterns:   rootExclusions(rootPath, request.exclusionPatterns, request.loadIgnoreFile),
		Details:           request.details,
		Mode:              request.mode,
	}
}

// runTree renders every validated root concurrently and emits the combined
// output in argument order.
func runTree(inputPaths []string, request treeRequest) error {
	validatedRoots, resolveError := resolveRoots(inputPaths)
	if resolveError != nil {
		return resolveError
	}

	if request.format == types.FormatRaw {
		assembledReports := make([]string, len(validatedRoots))
		var processingGroup errgroup.Group
		for index, rootPath := range validatedRoots {
			index, rootPath := index, rootPath
			processingGroup.Go(func() error {
				renderedTree, renderError := traverse.Render(request.traversalConfig(rootPath))
				if renderError != nil {
					return renderError
				}
				assembledReports[index] = report.AssembleTree(rootPath, request.mode, renderedTree)
				return nil
			})
		}
		if waitError := processingGroup.Wait(); waitError != nil {
			return waitError
		}
		return emitOutput(strings.Join(assembledReports, reportSeparator), request.copyToClipboard)
	}

	treeSnapshots := make([]*types.TreeNode, len(validatedRoots))
	var processingGroup errgroup.Group
	for index, rootPath := range validatedRoots {
		index, rootPath := index, rootPath
		processingGroup.Go(func() error {
			snapshot, snapshotError := traverse.Snapshot(request.traversalConfig(rootPath))
			if snapshotError != nil {
				return snapshotError
			}
			treeSnapshots[index] = snapshot
			return nil
		})
	}
	if waitError := processingGroup.Wait(); waitError != nil {
		return waitError
	}

	var renderedOutput string
	var renderError error
	if request.format == types.FormatJSON {
		renderedOutput, renderError = output.RenderTreeJSON(treeSnapshots)
	} else {
		renderedOutput, renderError = output.RenderTreeXML(treeSnapshots)
	}
	if renderError != nil {
		return renderError
	}
	return emitOutput(renderedOutput, request.copyToClipboard)
}

// runStats aggregates every validated root concurrently and emits the combined
// output in argument order.
func runStats(inputPaths []string, request statsRequest) error {
	validatedRoots, resolveError := resolveRoots(inputPaths)
	if resolveError != nil {
		return resolveError
	}

	collectedStatistics := make([]types.Statistics, len(validatedRoots))
	var processingGroup errgroup.Group
	for index, rootPath := range validatedRoots {
		index, rootPath := index, rootPath
		processingGroup.Go(func() error {
			statistics, statisticsError := traverse.CollectStatistics(rootPath, types.StatisticsOptions{
				Recursive:        request.recursive,
				SkipInaccessible: request.skipInaccessible,
				ExcludePatterns:  rootExclusions(rootPath, request.exclusionPatterns, request.loadIgnoreFile),
			})
			if statisticsError != nil {
				return statisticsError
			}
			collectedStatistics[index] = statistics
			return nil
		})
	}
	if waitError := processingGroup.Wait(); waitError != nil {
		return waitError
	}

	if request.format == types.FormatRaw {
		assembledReports := make([]string, len(validatedRoots))
		for index, rootPath := range validatedRoots {
			assembledReports[index] = report.AssembleStatistics(rootPath, collectedStatistics[index])
		}
		return emitOutput(strings.Join(assembledReports, reportSeparator), request.copyToClipboard)
	}

	statisticsReports := make([]*types.StatisticsReport, len(validatedRoots))
	for index, rootPath := range validatedRoots {
		statisticsReports[index] = &types.StatisticsReport{
			Path:       rootPath,
			Statistics: collectedStatistics[index],
		}
	}
	var renderedOutput string
	var renderError error
	if request.format == types.FormatJSON {
		renderedOutput, renderError = output.RenderStatisticsJSON(statisticsReports)
	} else {
		renderedOutput, renderError = output.RenderStatisticsXML(statisticsReports)
	}
	if renderError != nil {
		return renderError
	}
	return emitOutput(renderedOutput, request.copyToClipboard)
}

// emitOutput prints the assembled text to stdout and optionally copies it to
// the system clipboard.
func emitOutput(outputText string, copyToClipboard bool) error {
	fmt.Print(outputText)
	if !strings.HasSuffix(outputText, reportSeparator) {
		fmt.Println()
	}
	if copyToClipboard {
		copierService := clipboard.NewService()
		if copyError := copierService.Copy(outputText); copyError != nil {
			return fmt.Errorf(errorCopyFormat, copyError)
		}
	}
	return nil
}
