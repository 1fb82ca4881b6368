package providers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestImageSaver_Download(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	saver := newImageSaver(dir, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	path := saver.Download(context.Background(), server.URL)
	if path == "" {
		t.Fatal("Expected a saved image path")
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("Expected .png extension, got %s", path)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("Expected image under save dir %s, got %s", dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved image: %v", err)
	}
	if string(data) != string(payload) {
		t.Error("Saved image content does not match response body")
	}
}

func TestImageSaver_UniqueNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "img")
	}))
	defer server.Close()

	saver := newImageSaver(t.TempDir(), 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	first := saver.Download(context.Background(), server.URL)
	second := saver.Download(context.Background(), server.URL)
	if first == "" || second == "" {
		t.Fatal("Expected both downloads to succeed")
	}
	if first == second {
		t.Errorf("Expected unique file names, got %s twice", first)
	}
}

func TestImageSaver_RejectedDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	saver := newImageSaver(t.TempDir(), 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if path := saver.Download(context.Background(), server.URL); path != "" {
		t.Errorf("Expected empty path for rejected download, got %s", path)
	}
}
