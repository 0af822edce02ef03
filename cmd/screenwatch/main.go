package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := newRootCmd(config.New()).ExecuteContext(ctx)
	cancel()

	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

// reportFailure logs why the command could not run.
func reportFailure(err error) {
	fields := common.Fields{}
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		fields["reason"] = userErr.UserMessage
	}
	common.LogError(err, "Failed to start monitoring", fields)
}

type rootOptions struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	opts := &rootOptions{v: v}

	cmd := &cobra.Command{
		Use:   "screenwatch",
		Short: "Watch the screen for an image and react when it disappears",
		Long: `screenwatch periodically captures the display and looks for a target image.
While the image is visible it presses the refresh key. When it disappears it
sounds an alert and asks whether to keep monitoring. In aggressive mode it
also clicks a configured control before alerting.`,
		SilenceUsage:      true,
		PersistentPreRunE: opts.initLogging,
		RunE:              opts.runMonitor,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: config.yaml next to the executable or in the working directory)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	cmd.Flags().String("mode", "", "operating mode (standard, aggressive, ask)")

	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = v.BindPFlag(config.KeyMode, cmd.Flags().Lookup("mode"))

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(versionCmd())

	return cmd
}

// initLogging configures logging from flags and environment before the
// config document is read, so that load failures are logged consistently.
func (o *rootOptions) initLogging(_ *cobra.Command, _ []string) error {
	common.SetupLogger(common.ParseLevel(o.v.GetString(config.KeyLogLevel)), o.v.GetString(config.KeyLogFormat), nil)
	return nil
}

// loadConfig reads the document and reapplies logging with its settings.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.v, o.cfgFile)
	if err != nil {
		return nil, err
	}
	common.SetupLogger(common.ParseLevel(cfg.LogLevel), cfg.LogFormat, nil)
	common.LogDebug("Configuration loaded", common.Fields{"file": cfg.File, "mode": cfg.Mode.String()})
	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "screenwatch %s\n", version)
		},
	}
}
