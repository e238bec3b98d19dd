package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/export"
)

var (
	exportFormat string
	exportDir    string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the order summary for the restaurant",
	Long: `Render the stored orders as a plain-text report, a short chat message or a
CSV sheet. Files are named Dinner_Order_YYYY-MM-DD.txt (or .csv).`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "report", "Export format: report, digest or csv")
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", ".", "Output directory for the export file")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Print to stdout instead of writing a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	orders, err := sess.store.Read(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read orders: %w", err)
	}
	if len(orders) == 0 {
		log.Warn("No orders stored yet; the export will be empty")
	}

	now := time.Now()
	if exportStdout {
		content, err := export.Render(format, orders, now)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}

	path, err := export.WriteFile(exportDir, format, orders, now)
	if err != nil {
		return err
	}
	log.Printf("Export written: %s", path)
	return nil
}
