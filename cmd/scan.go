package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/csv"
	"dinnerconcierge/internal/extract"
)

var scanOutput string

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Turn a photo of a menu into a catalog CSV",
	Long: `Send a photo of a printed menu to the extraction service and write the
recognised catalog as CSV. The file can be passed back with --menu.

Requires DINNER_GEMINI_API_KEY (or GEMINI_API_KEY).`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "menu.csv", "Catalog CSV to write, or - for stdout")
}

func runScan(cmd *cobra.Command, args []string) error {
	client := extract.NewClient(cfg.ExtractConfig(), log.StandardLogger())
	if !client.Configured() {
		return extract.ErrMissingCredential
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Scanning %s...", args[0])
	menu, err := client.ExtractFile(ctx, args[0])
	if err != nil {
		return err
	}
	if menu == nil {
		return errors.New("no menu was recognised in the image")
	}

	var out io.Writer = cmd.OutOrStdout()
	if scanOutput != "-" {
		file, err := os.Create(scanOutput)
		if err != nil {
			return fmt.Errorf("failed to create catalog file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := csv.WriteCatalog(out, *menu); err != nil {
		return err
	}
	if scanOutput != "-" {
		log.Printf("Wrote %d menu items to %s", len(menu.AllItems()), scanOutput)
	}
	return nil
}
