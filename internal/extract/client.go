// Package extract turns a photograph of a menu into a catalog by asking the
// Gemini generateContent API for structured JSON.
package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"dinnerconcierge/internal/models"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	instruction = "Analyze this menu image. Extract the menu items into categories: soup, appetizer, main, and aLaCarte. " +
		"For the 'main' category, include all main courses. Assign a unique short ID to each item. " +
		"Include prices as numbers if visible. Return pure JSON matching the schema."
	systemInstruction = "You are a data extraction assistant specialized in digitizing restaurant menus. " +
		"Be precise with prices and names."
)

// ErrMissingCredential means no API key is configured. Extract reports it by
// returning a nil menu without calling the service.
var ErrMissingCredential = errors.New("extraction API key is not configured")

// ExtractionError wraps any failure of the call itself.
type ExtractionError struct {
	Op  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("menu extraction failed (%s): %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func NewClient(cfg Config, logger logrus.FieldLogger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema"`
	Temperature      float64 `json:"temperature"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Extract sends image to the service and returns the normalized catalog.
// A nil menu with a nil error means there was nothing usable: either no API
// key is configured or the service answered with no text or null. A menu
// lacking any of the four categories, or with no soup, appetizer or main
// items, is an *ExtractionError.
func (c *Client) Extract(ctx context.Context, image []byte) (*models.FullMenu, error) {
	if !c.Configured() {
		c.logger.WithError(ErrMissingCredential).Warn("Skipping menu extraction")
		return nil, nil
	}
	if len(image) == 0 {
		return nil, &ExtractionError{Op: "read image", Err: errors.New("no image data")}
	}

	reqBody, err := json.Marshal(c.buildRequest(image))
	if err != nil {
		return nil, &ExtractionError{Op: "encode request", Err: err}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &ExtractionError{Op: "build request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("X-Request-ID", requestID)

	logger := c.logger.WithFields(logrus.Fields{"request_id": requestID, "model": c.cfg.Model, "image_bytes": len(image)})
	logger.Info("Requesting menu extraction")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ExtractionError{Op: "call", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExtractionError{Op: "read response", Err: err}
	}

	var envelope generateResponse
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil {
			msg = envelope.Error.Message
		}
		return nil, &ExtractionError{Op: "call", Err: errors.Errorf("status %d: %s", resp.StatusCode, msg)}
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ExtractionError{Op: "parse response", Err: err}
	}

	text := envelope.text()
	if text == "" {
		logger.Warn("Extraction returned no text")
		return nil, nil
	}

	var shape *menuShape
	if err := json.Unmarshal([]byte(text), &shape); err != nil {
		return nil, &ExtractionError{Op: "parse menu", Err: err}
	}
	if shape == nil {
		logger.Warn("Extraction returned a null menu")
		return nil, nil
	}
	menu, err := shape.menu()
	if err != nil {
		return nil, &ExtractionError{Op: "parse menu", Err: err}
	}

	normalized := Normalize(menu)
	for _, c := range []models.Category{models.CategorySoup, models.CategoryAppetizer, models.CategoryMain} {
		if len(normalized.Category(c).Items) == 0 {
			return nil, &ExtractionError{Op: "parse menu", Err: errors.Errorf("no %s items recognised", c)}
		}
	}
	logger.WithField("items", len(normalized.AllItems())).Info("Menu extracted")
	return &normalized, nil
}

// menuShape keeps absent categories distinguishable from empty ones.
type menuShape struct {
	Soup      *models.MenuCategory `json:"soup"`
	Appetizer *models.MenuCategory `json:"appetizer"`
	Main      *models.MenuCategory `json:"main"`
	ALaCarte  *models.MenuCategory `json:"aLaCarte"`
}

func (s menuShape) menu() (models.FullMenu, error) {
	fields := map[models.Category]*models.MenuCategory{
		models.CategorySoup:      s.Soup,
		models.CategoryAppetizer: s.Appetizer,
		models.CategoryMain:      s.Main,
		models.CategoryALaCarte:  s.ALaCarte,
	}
	var menu models.FullMenu
	for _, c := range models.Categories {
		src := fields[c]
		if src == nil {
			return models.FullMenu{}, errors.Errorf("category %s is missing", c)
		}
		*menu.Category(c) = *src
	}
	return menu, nil
}

// ExtractFile reads an image from disk and extracts it.
func (c *Client) ExtractFile(ctx context.Context, path string) (*models.FullMenu, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Op: "read image", Err: err}
	}
	return c.Extract(ctx, image)
}

func (c *Client) buildRequest(image []byte) generateRequest {
	return generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType(image), Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: instruction},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   menuSchema(),
			Temperature:      0.1,
		},
	}
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

func mimeType(image []byte) string {
	detected := http.DetectContentType(image)
	if strings.HasPrefix(detected, "image/") {
		return detected
	}
	return "image/jpeg"
}
