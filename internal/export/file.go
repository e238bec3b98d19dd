package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dinnerconcierge/internal/models"
)

// WriteFile renders orders into outputDir under the dated export name and
// returns the path written. A partial file is removed on failure.
func WriteFile(outputDir string, f Format, orders models.OrderSet, at time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	content, err := Render(f, orders, at)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, FileName(f, at))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("export failed: %w", err)
	}

	return path, nil
}
