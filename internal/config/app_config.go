// Package config loads layered application configuration and exclusion files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".treescope"
	// GlobalConfigFileName is the file name of the global configuration.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the file name of the per-project configuration.
	LocalConfigFileName = ".treescope.yaml"

	configurationType = "yaml"

	// errorWorkingDirectoryFormat reports failure to determine the working directory.
	errorWorkingDirectoryFormat = "determine working directory: %w"
	// errorExplicitConfigMissingFormat reports an explicitly requested configuration file that does not exist.
	errorExplicitConfigMissingFormat = "configuration file '%s' does not exist"
	// errorReadConfigFormat reports failure to read a configuration file.
	errorReadConfigFormat = "reading configuration %s: %w"
	// errorDecodeConfigFormat reports failure to decode a configuration file.
	errorDecodeConfigFormat = "decoding configuration %s: %w"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Tree  TreeCommandConfiguration  `mapstructure:"tree"`
	Stats StatsCommandConfiguration `mapstructure:"stats"`
}

// TreeCommandConfiguration defines defaults for the tree command.
type TreeCommandConfiguration struct {
	Format   string   `mapstructure:"format"`
	Mode     string   `mapstructure:"mode"`
	Depth    *int     `mapstructure:"depth"`
	Size     *bool    `mapstructure:"size"`
	Modified *bool    `mapstructure:"modified"`
	Exclude  []string `mapstructure:"exclude"`
}

// StatsCommandConfiguration defines defaults for the stats command.
type StatsCommandConfiguration struct {
	Format           string   `mapstructure:"format"`
	Recursive        *bool    `mapstructure:"recursive"`
	SkipInaccessible *bool    `mapstructure:"skip_inaccessible"`
	Exclude          []string `mapstructure:"exclude"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// Local values override global values; absent files contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, GlobalConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	return merged, nil
}

// resolveLocalConfigPath returns the local configuration path to load, or an
// empty string when none applies. An explicit path must exist.
func resolveLocalConfigPath(workingDirectory string, explicitFilePath string) (string, error) {
	if explicitFilePath != "" {
		if _, statError := os.Stat(explicitFilePath); statError != nil {
			return "", fmt.Errorf(errorExplicitConfigMissingFormat, explicitFilePath)
		}
		return explicitFilePath, nil
	}
	candidatePath := filepath.Join(workingDirectory, LocalConfigFileName)
	if _, statError := os.Stat(candidatePath); statError != nil {
		return "", nil
	}
	return candidatePath, nil
}

// loadConfigurationFromPath reads one configuration file; a missing file
// yields a zero configuration without error.
func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	if _, statError := os.Stat(configurationPath); statError != nil {
		return ApplicationConfiguration{}, nil
	}
	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	viperInstance.SetConfigType(configurationType)
	if readError := viperInstance.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorReadConfigFormat, configurationPath, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := viperInstance.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorDecodeConfigFormat, configurationPath, decodeError)
	}
	return configuration, nil
}

// Merge overlays the other configuration on top of the receiver. Set string
// fields, non-nil pointers, and non-empty slices in other win.
func (configuration ApplicationConfiguration) Merge(other ApplicationConfiguration) ApplicationConfiguration {
	merged := configuration
	merged.Tree = merged.Tree.merge(other.Tree)
	merged.Stats = merged.Stats.merge(other.Stats)
	return merged
}

func (configuration TreeCommandConfiguration) merge(other TreeCommandConfiguration) TreeCommandConfiguration {
	merged := configuration
	if other.Format != "" {
		merged.Format = other.Format
	}
	if other.Mode != "" {
		merged.Mode = other.Mode
	}
	if other.Depth != nil {
		merged.Depth = other.Depth
	}
	if other.Size != nil {
		merged.Size = other.Size
	}
	if other.Modified != nil {
		merged.Modified = other.Modified
	}
	if len(other.Exclude) > 0 {
		merged.Exclude = other.Exclude
	}
	return merged
}

func (configuration StatsCommandConfiguration) merge(other StatsCommandConfiguration) StatsCommandConfiguration {
	merged := configuration
	if other.Format != "" {
		merged.Format = other.Format
	}
	if other.Recursive != nil {
		merged.Recursive = other.Recursive
	}
	if other.SkipInaccessible != nil {
		merged.SkipInaccessible = other.SkipInaccessible
	}
	if len(other.Exclude) > 0 {
		merged.Exclude = other.Exclude
	}
	return merged
}
