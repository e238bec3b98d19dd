package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dinnerconcierge/internal/config"
)

var (
	cfg          *config.Config
	storeBackend string
	dbPath       string
	menuFile     string
)

var rootCmd = &cobra.Command{
	Use:   "dinner",
	Short: "Collect the family's dinner orders and hand them to the restaurant",
	Long: `Dinner is a small concierge for a family dinner. Everyone picks a soup,
an appetizer, a main and any add-ons; orders are kept locally, can be shared
between devices as a link, and exported as a plain-text summary for the staff.

Running dinner without a command starts the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Storage backend: sqlite, mongo or memory (env DINNER_STORE)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "SQLite database file (env DINNER_DB_PATH)")
	rootCmd.PersistentFlags().StringVarP(&menuFile, "menu", "m", "", "Catalog CSV file to use instead of the built-in menu")
	rootCmd.Flags().StringVarP(&importPayload, "import", "i", "", "Share link or payload to import at startup")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	c, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if storeBackend != "" {
		c.Store = storeBackend
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if err := c.ConfigureLogger(log.StandardLogger(), os.Stderr, false); err != nil {
		log.Fatal(err)
	}
	cfg = c
}
