package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vine-io/flowlayout/schema"
)

const (
	envFormat = "FLOWLAYOUT_FORMAT"
	envConfig = "FLOWLAYOUT_CONFIG"

	defaultConfigPath = "~/.flowlayout.yaml"
)

var (
	configPath string
	envFile    string
	formatName string
	quiet      bool

	// loaded by the root pre run
	settings *fileConfig
)

var rootCmd = &cobra.Command{
	Use:   "flowlayout",
	Short: "Export and rebuild BPMN diagram layouts",
	Long: `flowlayout converts BPMN 2.0 diagrams to declarative layout configs and
builds BPMN diagrams back from them, in either exact lane-relative or
column-based mode.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}

		path := configPath
		if !cmd.Flags().Changed("config") {
			if v := os.Getenv(envConfig); v != "" {
				path = v
			}
		}
		cfg, err := loadConfig(path, path == defaultConfigPath)
		if err != nil {
			return err
		}
		settings = cfg
		return nil
	},
}

// Execute runs the root command, exiting non zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "settings file (env "+envConfig+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "environment file")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "", "layout config format: json, yaml, hcl or msgpack (env "+envFormat+")")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary")
}

// AddCommand adds a subcommand to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// resolveFormat picks the layout format: flag, environment, settings
// file, then the extension of path.
func resolveFormat(path string) (schema.Format, error) {
	for _, name := range []string{formatName, os.Getenv(envFormat), settings.formatName()} {
		if name != "" {
			return schema.ParseFormat(name)
		}
	}
	if path != "" && path != "-" {
		if f, err := schema.FormatOf(path); err == nil {
			return f, nil
		}
	}
	return schema.FormatJSON, nil
}
