// Package backup dumps the stored order set to a JSON file and restores it.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dinnerconcierge/internal/models"
	"dinnerconcierge/internal/store"
)

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(s *store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Backup writes the stored orders to outputDir and returns the file path.
func (s *Service) Backup(ctx context.Context, outputDir string) (string, error) {
	orders, err := s.store.Read(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read orders: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("backup_%s_%s.json", s.store.Key(), timestamp)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(orders); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("backup failed: %w", err)
	}

	return path, nil
}

// Restore loads a backup file into the store. Without dropExisting the backup
// is merged over the stored orders; with it the stored orders are replaced.
// It returns the number of orders stored afterwards.
func (s *Service) Restore(ctx context.Context, inputFile string, dropExisting bool) (int, error) {
	restored, err := readBackup(inputFile)
	if err != nil {
		return 0, err
	}

	orders := restored
	if !dropExisting {
		current, err := s.store.Read(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to read orders: %w", err)
		}
		orders = current.Merge(restored)
	}

	if err := s.store.Write(ctx, orders); err != nil {
		return 0, fmt.Errorf("restore failed: %w", err)
	}
	return len(orders), nil
}

func readBackup(inputFile string) (models.OrderSet, error) {
	file, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	orders := models.OrderSet{}
	if err := json.NewDecoder(file).Decode(&orders); err != nil {
		return nil, fmt.Errorf("failed to parse backup file: %w", err)
	}
	for name, order := range orders {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("backup contains an order without a name")
		}
		// older dumps may omit the name inside the order
		if order.UserName == "" {
			order.UserName = name
		}
		if order.ALaCarte == nil {
			order.ALaCarte = []models.MenuItem{}
		}
		orders[name] = order
	}
	return orders, nil
}

func ValidateBackupFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open backup file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("cannot get file info: %w", err)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("backup file is empty")
	}

	if extension := filepath.Ext(filename); extension != ".json" {
		return fmt.Errorf("expected JSON file but got %s", extension)
	}

	return nil
}
