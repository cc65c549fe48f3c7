package cli

import (
	"fmt"

	"github.com/leonhh/applist/internal/config"
	"github.com/leonhh/applist/internal/dispatch"
	"github.com/leonhh/applist/internal/introspect"
	"github.com/leonhh/applist/internal/models"
	"github.com/leonhh/applist/internal/registry"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags are parsed
type app struct {
	cfg     *models.Config
	service *introspect.Service
	output  string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "applist",
		Short: "Inspect installed Android packages",
		Long: `Applist reads a package registry and answers questions about the
installed packages: descriptors, native libraries, icons, requested
permissions and the contents of their APK archives.

The registry is a YAML manifest passed with --registry, the APPLIST_REGISTRY
environment variable or the registry key of a config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.String("config", "", "Path to a config file (yaml, toml or json)")
	flags.String("registry", "", "Path to the package manifest")
	flags.StringVarP(&a.output, "output", "o", "json", "Output format (json, yaml)")
	flags.Int("icon-size", 0, "Default max icon dimension in pixels")
	flags.Int("cpu-workers", 0, "Size of the CPU worker pool")
	flags.Int("io-workers", 0, "Size of the I/O worker pool")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")

	// Add subcommands
	rootCmd.AddCommand(
		NewListCmd(a),
		NewInfoCmd(a),
		NewLibsCmd(a),
		NewPermsCmd(a),
		NewIconCmd(a),
		NewFilesCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	switch a.output {
	case "json", "yaml":
	default:
		return &models.IntrospectError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown output format %q", a.output),
		}
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := setupLogging(cmd, cfg); err != nil {
		return err
	}
	logrus.Debugf("Configuration: %+v", *cfg)

	reg, err := registry.NewManifestRegistry(cfg.Registry)
	if err != nil {
		return err
	}

	in, err := introspect.New(reg,
		introspect.WithLogger(logrus.StandardLogger()),
		introspect.WithDefaultIconSize(cfg.Icon.Size),
	)
	if err != nil {
		return err
	}

	a.service = introspect.NewService(in, dispatch.New(cfg.Workers.CPU, cfg.Workers.IO))
	return nil
}

func setupLogging(cmd *cobra.Command, cfg *models.Config) error {
	if cfg.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return nil
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return &models.IntrospectError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("invalid log level: %w", err),
		}
	}
	logrus.SetLevel(level)
	return nil
}
