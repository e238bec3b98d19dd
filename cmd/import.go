package cmd

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/codec"
)

var importCmd = &cobra.Command{
	Use:   "import <link or payload>",
	Short: "Merge orders from a share link into the stored orders",
	Long: `Decode a share link (or the bare payload from one) and merge the orders it
carries into the stored orders. Imported orders replace stored orders for the
same person; everyone else is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := context.Background()
	ctrl, _, err := sess.controller(ctx, "")
	if err != nil {
		return err
	}

	names, err := ctrl.Import(codec.PayloadFromInput(args[0]))
	if err != nil {
		return fmt.Errorf("failed to read shared orders: %w", err)
	}
	if len(names) == 0 {
		log.Printf("The link carried no orders; nothing was imported")
		return nil
	}

	log.Printf("Imported orders for %s", strings.Join(names, ", "))
	for _, name := range ctrl.Orders().Names() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
