package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/internal/server"
)

func newServeCmd(g *globals) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sign-up page, JSON API and user card over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			gin.SetMode(cfg.Server.Mode)

			target, closer, err := buildSink(cfg.Sink, g.logger)
			if err != nil {
				return err
			}
			defer closer.Close()

			translator, err := loadTranslator(cfg.Render)
			if err != nil {
				return err
			}
			renderer, err := newHTMLRenderer(cfg.Render, translator)
			if err != nil {
				return err
			}

			srv, err := server.New(
				server.WithLogger(g.logger),
				server.WithSink(target),
				server.WithRenderer(renderer),
				server.WithValidator(newValidator(translator, cfg.Render.Locale)),
				server.WithTranslator(translator, cfg.Render.Locale),
				server.WithServiceName(serviceName),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cfg.Server)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
