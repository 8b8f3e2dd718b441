package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jacksmith/menu/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin pages and the public menu",
	Long: `Serve the catalog over HTTP.

  /                  public menu, ?q= searches
  /admin/products    create, edit and delete products
  /healthz           liveness check

The listen address defaults to addr in .menuconfig.yaml (":8080").
Logs are JSON on stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides addr in .menuconfig.yaml)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{jsonLogs: true, html: true, writes: true})
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(a.store, a.form(), a.html, a.logger, server.Config{
		Addr:          addr,
		MaxImageBytes: a.cfg.MaxImageBytes,
	})

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("serving catalog", zap.String("addr", addr), zap.Int("products", a.html.Len()))
	return srv.ListenAndServe(ctx)
}
