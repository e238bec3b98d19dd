package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/server"
)

var httpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve share links and the summary over local HTTP",
	Long: `Start a small HTTP server. Opening a share link against it
(GET /?import=...) merges the orders once and redirects to a clean URL.
GET /summary returns the staff report (?format=digest or csv for the
other renderings), GET /share returns a link and GET /orders the raw orders.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "Listen address (env DINNER_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := httpAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl, _, err := sess.controller(ctx, "")
	if err != nil {
		return err
	}

	srv := server.New(ctrl, cfg.ShareBaseURL, log.StandardLogger())
	if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Printf("Server stopped")
	return nil
}
