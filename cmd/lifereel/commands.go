package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lifereel/internal/app"
	"lifereel/internal/preview"
)

func newRootCmd() *cobra.Command {
	cfg := app.NewConfig()
	var configPath string

	root := &cobra.Command{
		Use:   "lifereel",
		Short: "Render a Game of Life run to an MJPEG video",
		Long: `lifereel reads a 0/1 grid, plays Conway's Game of Life on it with clamped
edges and writes every generation as a frame of an AVI video. Selected
generations can also be saved as PNG stills.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := cfg.Load(configPath, cmd.Flags()); err != nil {
					return err
				}
			}
			log, err := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, err = app.Run(ctx, *cfg, log)
			return err
		},
	}
	cfg.Bind(root.Flags())
	root.Flags().StringVar(&configPath, "config", "", "YAML file with default settings")
	root.SetContext(context.Background())

	root.AddCommand(newPreviewCmd())
	return root
}

func newPreviewCmd() *cobra.Command {
	cfg := app.NewConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play the simulation in a window",
		Long: `preview plays the run live. Space pauses, N steps once, R restarts and
Q or Esc quits. The window needs a build with the 'ebiten' tag.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := cfg.Load(configPath, cmd.Flags()); err != nil {
					return err
				}
			}
			log, err := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(log)
			log.Info("preview", "input", cfg.Input, "rounds", cfg.Rounds, "fps", cfg.FPS)
			return preview.Run(preview.Options{Config: *cfg})
		},
	}
	cfg.BindSimulation(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with default settings")
	return cmd
}
