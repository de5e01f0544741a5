package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"threatmap/internal/config"
	"threatmap/internal/log"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "threatmap",
	Short: "Threat model registry and consistency checker",
	Long: `Threatmap loads data-flow-diagram threat models from YAML, checks them
for dangling references and unmanaged threats, enumerates candidate
threats with STRIDE, and renders DFD and attack tree diagrams as
Graphviz DOT.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(teardownLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/threatmap/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log file")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("model_path", defaults.ModelPath)
	viper.SetDefault("check.watch", defaults.Check.Watch)
	viper.SetDefault("check.debounce_ms", defaults.Check.DebounceMS)
	viper.SetDefault("render.output_dir", defaults.Render.OutputDir)
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.path", defaults.Logging.Path)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .threatmap/config.yaml (current directory)
		// 2. ~/.config/threatmap/config.yaml (user config)
		if _, err := os.Stat(".threatmap/config.yaml"); err == nil {
			viper.SetConfigFile(".threatmap/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "threatmap"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)

	setupLogging()
}

func setupLogging() {
	if !debug && !cfg.Logging.Enabled && os.Getenv("THREATMAP_DEBUG") == "" {
		return
	}

	path := cfg.Logging.Path
	if path == "" {
		path = filepath.Join(os.TempDir(), "threatmap.log")
	}

	cleanup, err := log.Init(path)
	if err != nil {
		// Logging is best effort, the commands work without it.
		return
	}
	logCleanup = cleanup
}

func teardownLogging() {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

// modelPath resolves the model file for a command: the positional argument
// when given, otherwise the configured default.
func modelPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.ModelPath
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
