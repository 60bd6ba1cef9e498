// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/treescope/treescope/internal/config"
	"github.com/treescope/treescope/internal/types"
	"github.com/treescope/treescope/internal/utils"
)

const (
	exclusionFlagName        = "e"
	depthFlagName            = "depth"
	extensionFlagName        = "ext"
	patternFlagName          = "pattern"
	sizeFlagName             = "size"
	modifiedFlagName         = "modified"
	detailsFlagName          = "details"
	filesOnlyFlagName        = "files"
	foldersOnlyFlagName      = "dirs"
	formatFlagName           = "format"
	recursiveFlagName        = "recursive"
	skipInaccessibleFlagName = "skip-inaccessible"
	noIgnoreFileFlagName     = "no-ignore-file"
	copyFlagName             = "copy"
	configFlagName           = "config"
	versionFlagName          = "version"

	versionTemplate      = "treescope version: %s\n"
	defaultPath          = "."
	rootUse              = "treescope"
	rootShortDescription = "treescope command line interface"
	rootLongDescription  = `treescope inspects directory structure without reading file contents.
It renders connector-drawn directory trees and aggregate statistics.
Use --format to select raw, json, or xml output, and --version to print the application version.`

	treeUse               = "tree [paths...]"
	statsUse              = "stats [paths...]"
	treeAlias             = "t"
	statsAlias            = "s"
	treeShortDescription  = "display directory tree (" + treeAlias + ")"
	statsShortDescription = "display directory statistics (" + statsAlias + ")"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `List directories and files for one or more paths as a connector-drawn tree.
Directories always sort before files; use --ext, --pattern, --files, or --dirs
to narrow what is displayed, and --size/--modified to append metadata.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Render only the first two levels with file sizes
  treescope tree --depth 1 --size .

  # Show .go files only, keeping the directory skeleton
  treescope tree --ext .go ./internal

  # Exclude vendor directory
  treescope tree -e vendor .`

	// statsLongDescription provides detailed help for the stats command.
	statsLongDescription = `Report file count, directory count, and total size for one or more paths.
Use --recursive=false for a top-level-only scan. --skip-inaccessible controls
whether unreadable subtrees are skipped (default) or abort the scan.`
	// statsUsageExample demonstrates stats command usage.
	statsUsageExample = `  # Aggregate the whole tree
  treescope stats .

  # Count only the immediate children, as JSON
  treescope stats --recursive=false --format json ./cmd`

	versionFlagDescription          = "display application version"
	depthFlagDescription            = "maximum directory depth (-1 for unlimited)"
	extensionFlagDescription        = "restrict files to the given extension (repeatable)"
	patternFlagDescription          = "glob pattern file names must match"
	sizeFlagDescription             = "append file sizes"
	modifiedFlagDescription         = "append modification times"
	detailsFlagDescription          = "append sizes and modification times"
	filesOnlyFlagDescription        = "display files only"
	foldersOnlyFlagDescription      = "display folders only"
	formatFlagDescription           = "output format"
	recursiveFlagDescription        = "aggregate the whole subtree"
	skipInaccessibleFlagDescription = "skip unreadable subtrees instead of aborting"
	exclusionFlagDescription        = "exclude entries matching the pattern"
	noIgnoreFileFlagDescription     = "do not load " + utils.IgnoreFileName
	copyFlagDescription             = "copy output to the system clipboard"
	configFlagDescription           = "configuration file path"

	invalidFormatMessage       = "Invalid format value '%s'"
	invalidModeMessage         = "Invalid mode value '%s'"
	conflictingModeFlagsError  = "--" + filesOnlyFlagName + " and --" + foldersOnlyFlagName + " are mutually exclusive"
	errorLoadConfigFormat      = "loading configuration: %w"
	warningIgnoreFileFormat    = "Warning: loading %s for %s: %v\n"
	extensionSeparatorPrefix   = "."
	defaultMaximumDepth        = types.UnlimitedDepth
	defaultRecursiveAggregate  = true
	defaultSkipInaccessible    = true
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// isSupportedMode reports whether the provided display mode is recognized.
func isSupportedMode(mode string) bool {
	switch mode {
	case types.ModeFull, types.ModeDetailed, types.ModeFileOnly, types.ModeFolderOnly:
		return true
	default:
		return false
	}
}

// Execute runs the treescope application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, utils.EmptyString, configFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(&configurationPath),
		createStatsCommand(&configurationPath),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// treeFlagValues stores raw flag state for the tree command.
type treeFlagValues struct {
	depth             int
	extensions        []string
	pattern           string
	includeSize       bool
	includeModified   bool
	includeDetails    bool
	filesOnly         bool
	foldersOnly       bool
	format            string
	exclusionPatterns []string
	disableIgnoreFile bool
	copyToClipboard   bool
}

// statsFlagValues stores raw flag state for the stats command.
type statsFlagValues struct {
	recursive         bool
	skipInaccessible  bool
	format            string
	exclusionPatterns []string
	disableIgnoreFile bool
	copyToClipboard   bool
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(configurationPath *string) *cobra.Command {
	var flagValues treeFlagValues

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: *configurationPath})
			if loadError != nil {
				return fmt.Errorf(errorLoadConfigFormat, loadError)
			}
			request, resolveError := resolveTreeRequest(command, flagValues, applicationConfiguration.Tree)
			if resolveError != nil {
				return resolveError
			}
			return runTree(arguments, request)
		},
	}

	treeCommand.Flags().IntVar(&flagValues.depth, depthFlagName, defaultMaximumDepth, depthFlagDescription)
	treeCommand.Flags().StringArrayVar(&flagValues.extensions, extensionFlagName, nil, extensionFlagDescription)
	treeCommand.Flags().StringVar(&flagValues.pattern, patternFlagName, utils.EmptyString, patternFlagDescription)
	treeCommand.Flags().BoolVar(&flagValues.includeSize, sizeFlagName, false, sizeFlagDescription)
	treeCommand.Flags().BoolVar(&flagValues.includeModified, modifiedFlagName, false, modifiedFlagDescription)
	treeCommand.Flags().BoolVar(&flagValues.includeDetails, detailsFlagName, false, detailsFlagDescription)
	treeCommand.Flags().BoolVar(&flagValues.filesOnly, filesOnlyFlagName, false, filesOnlyFlagDescription)
	treeCommand.Flags().BoolVar(&flagValues.foldersOnly, foldersOnlyFlagName, false, foldersOnlyFlagDescription)
	treeCommand.Flags().StringVar(&flagValues.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	treeCommand.Flags().StringArrayVarP(&flagValues.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	treeCommand.Flags().BoolVar(&flagValues.disableIgnoreFile, noIgnoreFileFlagName, false, noIgnoreFileFlagDescription)
	treeCommand.Flags().BoolVar(&flagValues.copyToClipboard, copyFlagName, false, copyFlagDescription)
	return treeCommand
}

// createStatsCommand returns the stats subcommand.
func createStatsCommand(configurationPath *string) *cobra.Command {
	var flagValues statsFlagValues

	statsCommand := &cobra.Command{
		Use:     statsUse,
		Aliases: []string{statsAlias},
		Short:   statsShortDescription,
		Long:    statsLongDescription,
		Example: statsUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: *configurationPath})
			if loadError != nil {
				return fmt.Errorf(errorLoadConfigFormat, loadError)
			}
			request, resolveError := resolveStatsRequest(command, flagValues, applicationConfiguration.Stats)
			if resolveError != nil {
				return resolveError
			}
			return runStats(arguments, request)
		},
	}

	statsCommand.Flags().BoolVar(&flagValues.recursive, recursiveFlagName, defaultRecursiveAggregate, recursiveFlagDescription)
	statsCommand.Flags().BoolVar(&flagValues.skipInaccessible, skipInaccessibleFlagName, defaultSkipInaccessible, skipInaccessibleFlagDescription)
	statsCommand.Flags().StringVar(&flagValues.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	statsCommand.Flags().StringArrayVarP(&flagValues.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	statsCommand.Flags().BoolVar(&flagValues.disableIgnoreFile, noIgnoreFileFlagName, false, noIgnoreFileFlagDescription)
	statsCommand.Flags().BoolVar(&flagValues.copyToClipboard, copyFlagName, false, copyFlagDescription)
	return statsCommand
}

// treeRequest is the fully resolved configuration for one tree invocation.
type treeRequest struct {
	maximumDepth      int
	includeExtensions map[string]struct{}
	searchPattern     string
	details           types.DetailFlags
	mode              string
	format            string
	exclusionPatterns []string
	loadIgnoreFile    bool
	copyToClipboard   bool
}

// statsRequest is the fully resolved configuration for one stats invocation.
type statsRequest struct {
	recursive         bool
	skipInaccessible  bool
	format            string
	exclusionPatterns []string
	loadIgnoreFile    bool
	copyToClipboard   bool
}

// resolveTreeRequest merges flag state with configuration defaults. Explicitly
// set flags win over configuration values.
func resolveTreeRequest(command *cobra.Command, flagValues treeFlagValues, configuration config.TreeCommandConfiguration) (treeRequest, error) {
	request := treeRequest{
		maximumDepth:    flagValues.depth,
		searchPattern:   flagValues.pattern,
		format:          strings.ToLower(flagValues.format),
		loadIgnoreFile:  !flagValues.disableIgnoreFile,
		copyToClipboard: flagValues.copyToClipboard,
	}

	if !command.Flags().Changed(formatFlagName) && configuration.Format != utils.EmptyString {
		request.format = strings.ToLower(configuration.Format)
	}
	if !isSupportedFormat(request.format) {
		return treeRequest{}, fmt.Errorf(invalidFormatMessage, request.format)
	}
	if !command.Flags().Changed(depthFlagName) && configuration.Depth != nil {
		request.maximumDepth = *configuration.Depth
	}

	includeSize := flagValues.includeSize || flagValues.includeDetails
	includeModified := flagValues.includeModified || flagValues.includeDetails
	if !command.Flags().Changed(sizeFlagName) && !flagValues.includeDetails && configuration.Size != nil {
		includeSize = *configuration.Size
	}
	if !command.Flags().Changed(modifiedFlagName) && !flagValues.includeDetails && configuration.Modified != nil {
		includeModified = *configuration.Modified
	}
	request.details = types.DetailFlags{Size: includeSize, ModifiedAt: includeModified}

	if flagValues.filesOnly && flagValues.foldersOnly {
		return treeRequest{}, fmt.Errorf(conflictingModeFlagsError)
	}
	request.mode = types.ModeFull
	if configuration.Mode != utils.EmptyString {
		configuredMode := strings.ToLower(configuration.Mode)
		if !isSupportedMode(configuredMode) {
			return treeRequest{}, fmt.Errorf(invalidModeMessage, configuration.Mode)
		}
		request.mode = configuredMode
	}
	if flagValues.filesOnly {
		request.mode = types.ModeFileOnly
	}
	if flagValues.foldersOnly {
		request.mode = types.ModeFolderOnly
	}
	if request.mode == types.ModeFull && (includeSize || includeModified) {
		request.mode = types.ModeDetailed
	}

	request.includeExtensions = normalizeExtensions(flagValues.extensions)
	request.exclusionPatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Exclude...), flagValues.exclusionPatterns...))
	return request, nil
}

// resolveStatsRequest merges flag state with configuration defaults.
func resolveStatsRequest(command *cobra.Command, flagValues statsFlagValues, configuration config.StatsCommandConfiguration) (statsRequest, error) {
	request := statsRequest{
		recursive:        flagValues.recursive,
		skipInaccessible: flagValues.skipInaccessible,
		format:           strings.ToLower(flagValues.format),
		loadIgnoreFile:   !flagValues.disableIgnoreFile,
		copyToClipboard:  flagValues.copyToClipboard,
	}

	if !command.Flags().Changed(formatFlagName) && configuration.Format != utils.EmptyString {
		request.format = strings.ToLower(configuration.Format)
	}
	if !isSupportedFormat(request.format) {
		return statsRequest{}, fmt.Errorf(invalidFormatMessage, request.format)
	}
	if !command.Flags().Changed(recursiveFlagName) && configuration.Recursive != nil {
		request.recursive = *configuration.Recursive
	}
	if !command.Flags().Changed(skipInaccessibleFlagName) && configuration.SkipInaccessible != nil {
		request.skipInaccessible = *configuration.SkipInaccessible
	}
	request.exclusionPatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Exclude...), flagValues.exclusionPatterns...))
	return request, nil
}

// normalizeExtensions lower-cases extensions and guarantees a leading dot.
func normalizeExtensions(extensions []string) map[string]struct{} {
	if len(extensions) == 0 {
		return nil
	}
	normalized := make(map[string]struct{}, len(extensions))
	for _, extension := range extensions {
		trimmedExtension := strings.ToLower(strings.TrimSpace(extension))
		if trimmedExtension == utils.EmptyString {
			continue
		}
		if !strings.HasPrefix(trimmedExtension, extensionSeparatorPrefix) {
			trimmedExtension = extensionSeparatorPrefix + trimmedExtension
		}
		normalized[trimmedExtension] = struct{}{}
	}
	return normalized
}
