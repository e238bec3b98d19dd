package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/backup"
)

var outputDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup the stored orders",
	Long:  "Backup the stored orders to a JSON file that 'dinner restore' can read back",
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&outputDir, "output", "o", "./backups", "Output directory for backup files")
}

func runBackup(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	backupService := backup.NewService(sess.store)

	log.Printf("Starting backup of '%s' from %s storage...", sess.store.Key(), cfg.Store)
	backupFile, err := backupService.Backup(context.Background(), outputDir)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	log.Printf("Backup completed successfully: %s", backupFile)

	return nil
}
