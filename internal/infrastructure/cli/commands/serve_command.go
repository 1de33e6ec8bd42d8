package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/aiagent-go/internal/app"
	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/infrastructure/httpapi"
	"github.com/doeshing/aiagent-go/internal/version"
)

// NewServeCommand runs the HTTP API until interrupted.
func NewServeCommand(container *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, container, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func serve(ctx context.Context, container *app.Container, addr string) error {
	if addr == "" {
		addr = container.Config.Server.Addr
	}
	log := container.Logger
	log.Info("starting api", map[string]interface{}{"build": version.Current().String(), "addr": addr})
	if container.Config.Safety.Watch {
		go func() {
			if err := container.Safety.Watch(ctx, log); err != nil {
				log.Warn("safety rules watch stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}
	return httpapi.Serve(ctx, addr, container.API().Router(), domain.DefaultShutdownGrace, log)
}
