package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/corefsieve/internal/logging"
	"github.com/ppiankov/corefsieve/internal/model"
)

// Version is set at build time with -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	noCache bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "corefsieve",
	Short: "corefsieve - sieve-based coreference resolution",
	Long: `corefsieve groups the mentions of a pre-analysed document into
coreference chains.

Mentions are matched by six deterministic passes run from highest to
lowest precision: apposition, predicate nominative, relative pronoun,
exact string match, relaxed string match and pronoun agreement.

Input documents are JSON files listing each sentence's mentions with
their spans, tokens and upstream syntactic relations.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("corefsieve %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.corefsieve/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&noCache, "no-cache", false, "disable the report cache")
	flags.String("dict", "", "dictionary file (.yaml or .toml; default: built-in English lists)")
	flags.StringSlice("sieves", nil, "sieves to run (default: all, always in priority order)")
	flags.String("concordance", "", "attribute agreement rule: strict or lenient")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")

	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("dictionary.path", flags.Lookup("dict"))
	_ = viper.BindPFlag("sieves.enabled", flags.Lookup("sieves"))
	_ = viper.BindPFlag("sieves.concordance", flags.Lookup("concordance"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if err := setDefaults(viper.GetViper(), model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".corefsieve"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// COREFSIEVE_SIEVES_CONCORDANCE overrides sieves.concordance
	viper.SetEnvPrefix("COREFSIEVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every field of cfg with v so that environment
// variables can override keys absent from the config file
func setDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return err
	}
	for key, val := range values {
		v.SetDefault(key, val)
	}
	return nil
}

// loadConfig merges defaults, config file, environment and flags. The
// defaults must already be registered with setDefaults.
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) (*slog.Logger, error) {
	return logging.New(cfg.Logging, os.Stderr)
}
