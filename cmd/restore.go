package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/backup"
)

var (
	inputFile        string
	dropExisting     bool
	skipConfirmation bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the stored orders from a backup",
	Long:  "Restore the stored orders from a JSON backup file, merging by default or replacing with --drop",
	RunE:  runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input backup file to restore (required)")
	restoreCmd.Flags().BoolVar(&dropExisting, "drop", false, "Replace the stored orders instead of merging")
	restoreCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")

	restoreCmd.MarkFlagRequired("input")
}

func runRestore(cmd *cobra.Command, args []string) error {
	if inputFile == "" {
		return fmt.Errorf("input file is required")
	}

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", inputFile)
	}

	if err := backup.ValidateBackupFile(inputFile); err != nil {
		return fmt.Errorf("backup file validation failed: %w", err)
	}

	if !skipConfirmation {
		log.Printf("About to restore:")
		log.Printf("  Source file: %s", inputFile)
		log.Printf("  Storage: %s", cfg.Store)
		if dropExisting {
			log.Printf("  WARNING: Stored orders will be REPLACED!")
		} else {
			log.Printf("  Orders in the backup replace stored orders for the same person")
		}

		if !confirmAction("Do you want to continue?") {
			log.Println("Restore cancelled")
			return nil
		}
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	backupService := backup.NewService(sess.store)

	log.Printf("Starting restore from %s...", inputFile)
	count, err := backupService.Restore(context.Background(), inputFile, dropExisting)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	log.Printf("Restore completed successfully! %d orders stored", count)
	return nil
}

func confirmAction(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
