package cmd

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/models"
)

var copyLink bool

var shareCmd = &cobra.Command{
	Use:   "share [person]",
	Short: "Print a link that carries the stored orders",
	Long: `Print a share link for every stored order, or only for one person's order.
Opening the link with 'dinner import' or 'dinner serve' on another device
merges the orders there.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "Also copy the link to the clipboard")
}

func runShare(cmd *cobra.Command, args []string) error {
	var person string
	if len(args) == 1 {
		member, err := models.ParseMember(args[0])
		if err != nil {
			return err
		}
		person = string(member)
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctrl, _, err := sess.controller(context.Background(), "")
	if err != nil {
		return err
	}
	if person != "" {
		if _, ok := ctrl.Orders()[person]; !ok {
			return fmt.Errorf("%s has not ordered yet", person)
		}
	}

	link, err := ctrl.ShareLink(cfg.ShareBaseURL, person)
	if err != nil {
		return fmt.Errorf("failed to build share link: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), link)
	if copyLink {
		if err := clipboard.WriteAll(link); err != nil {
			log.WithError(err).Warn("Could not copy link to clipboard")
		}
	}
	return nil
}
