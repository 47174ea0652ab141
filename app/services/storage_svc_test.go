package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestObjectPathShape(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), "http://localhost:8080/storage")
	now := time.UnixMilli(1724900000000)

	got := storage.ObjectPath("shoe.png", 2, now)
	want := "products/1724900000000-2-shoe.png"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	// Path components in the upload name must not escape the bucket.
	got = storage.ObjectPath("../../etc/passwd", 0, now)
	if strings.Contains(got, "..") {
		t.Errorf("object path must strip directories, got %s", got)
	}
}

func TestDownloadURLRoundTrip(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), "http://localhost:8080/storage")

	objectPath := "products/1724900000000-0-air max.png"
	downloadURL := storage.DownloadURL(objectPath)
	if !strings.Contains(downloadURL, "/o/") || !strings.Contains(downloadURL, "?alt=media") {
		t.Fatalf("download URL missing markers: %s", downloadURL)
	}

	recovered, err := storage.PathFromURL(downloadURL)
	if err != nil {
		t.Fatalf("path recovery failed: %v", err)
	}
	if recovered != objectPath {
		t.Errorf("expected %s back, got %s", objectPath, recovered)
	}
}

func TestPathFromURLRejectsForeignURLs(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), "http://localhost:8080/storage")

	for _, badURL := range []string{
		"http://localhost:8080/images/shoe.png",
		"http://localhost:8080/storage/o/products%2Fshoe.png",
	} {
		if _, err := storage.PathFromURL(badURL); err == nil {
			t.Errorf("url %q: expected an error", badURL)
		}
	}
}

func TestSaveBatchAccumulatesPartialFailures(t *testing.T) {
	root := t.TempDir()
	storage := NewFileStorage(root, "http://localhost:8080/storage")

	files := []UploadFile{
		{Name: "one.png", Reader: strings.NewReader("first")},
		{Name: "two.png", Reader: failingReader{}},
		{Name: "three.png", Reader: strings.NewReader("third")},
	}

	results, failures := storage.SaveBatch(context.Background(), files)

	if len(results) != 2 {
		t.Fatalf("expected 2 successful uploads, got %d", len(results))
	}
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Name != "two.png" || failures[0].Index != 1 {
		t.Errorf("unexpected failure record %+v", failures[0])
	}
	if results[0].Index > results[1].Index {
		t.Error("results must come back in queue order")
	}

	for _, result := range results {
		objectPath, err := storage.PathFromURL(result.URL)
		if err != nil {
			t.Fatalf("result URL %s not recoverable: %v", result.URL, err)
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(objectPath))); err != nil {
			t.Errorf("object %s not on disk: %v", objectPath, err)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("stream interrupted")
}
