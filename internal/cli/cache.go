package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/corefsieve/internal/model"
	"github.com/ppiankov/corefsieve/internal/pipeline"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the report cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		if err := clearCache(cfg); err != nil {
			return err
		}
		fmt.Printf("✓ Cleared cache: %s\n", cfg.Cache.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// clearCache empties both cache layers of the configured directory, even
// when caching is disabled for resolution
func clearCache(cfg *model.Config) error {
	cfg.Cache.Enabled = true

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	if err := p.ClearCache(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
