package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "webdesk",
		Short:         "Serve the browser desktop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	flags := cmd.Flags()
	flags.String("port", "", "HTTP port (overrides PORT)")
	flags.String("host", "", "Bind address (overrides HOST)")
	flags.String("storage", "", "Storage driver memory|sqlite (overrides STORAGE_DRIVER)")
	flags.String("db", "", "SQLite database path (overrides STORAGE_PATH)")
	flags.String("manifest", "", "Application manifest override, YAML or TOML (overrides APPS_MANIFEST)")
	flags.String("log-level", "", "Log level (overrides LOG_LEVEL)")
	flags.Bool("dev", false, "Development logging")
	flags.Bool("browser-preview", false, "Fetch page previews in the browser app")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// applyFlags overrides environment values with explicitly set flags
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetString("port")
	}
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("storage") {
		cfg.Storage.Driver, _ = flags.GetString("storage")
	}
	if flags.Changed("db") {
		cfg.Storage.Path, _ = flags.GetString("db")
	}
	if flags.Changed("manifest") {
		cfg.Registry.Manifest, _ = flags.GetString("manifest")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("dev") {
		cfg.Logging.Development, _ = flags.GetBool("dev")
	}
	if flags.Changed("browser-preview") {
		cfg.Browser.PreviewEnabled, _ = flags.GetBool("browser-preview")
	}
}
