package providers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// imageSaver downloads rendered images into the configured save directory.
// File names combine nanosecond time with a uuid fragment so repeated
// generations within one run never collide.
type imageSaver struct {
	client  *http.Client
	saveDir string
	logger  *slog.Logger
}

func newImageSaver(saveDir string, timeout time.Duration, logger *slog.Logger) *imageSaver {
	return &imageSaver{
		client:  &http.Client{Timeout: timeout},
		saveDir: saveDir,
		logger:  logger,
	}
}

// Download fetches an image URL and writes it to disk as PNG. Returns the
// local path, or "" on failure (soft: the run continues without an image).
func (s *imageSaver) Download(ctx context.Context, url string) string {
	if err := os.MkdirAll(s.saveDir, 0o755); err != nil {
		s.logger.Error("Failed to create image save directory", "dir", s.saveDir, "error", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.Error("Failed to build image download request", "error", err)
		return ""
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Image download failed", "reason", classifyTransportError(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Image download rejected", "status", resp.StatusCode)
		return ""
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("Failed to read image body", "error", err)
		return ""
	}

	name := fmt.Sprintf("img_%d_%s.png", time.Now().UnixNano(), uuid.NewString()[:8])
	path := filepath.Join(s.saveDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Failed to write image file", "path", path, "error", err)
		return ""
	}

	s.logger.Info("Image saved", "path", path, "bytes", len(data))
	return path
}
