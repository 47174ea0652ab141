package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// FileStorage is the blob store for product images. Objects are addressed by
// a path like "products/<epoch-ms>-<index>-<filename>" and exposed through a
// download URL of the shape <base>/o/<escaped path>?alt=media, so the object
// path can always be recovered from a stored URL by splitting on the fixed
// "/o/" and "?alt=" markers.
type FileStorage struct {
	root    string
	baseURL string
}

func NewFileStorage(root, baseURL string) *FileStorage {
	return &FileStorage{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *FileStorage) ObjectPath(filename string, index int, now time.Time) string {
	return fmt.Sprintf("products/%d-%d-%s", now.UnixMilli(), index, filepath.Base(filename))
}

func (s *FileStorage) DownloadURL(objectPath string) string {
	return fmt.Sprintf("%s/o/%s?alt=media", s.baseURL, url.PathEscape(objectPath))
}

// PathFromURL reconstructs the object path out of a download URL.
func (s *FileStorage) PathFromURL(downloadURL string) (string, error) {
	_, after, found := strings.Cut(downloadURL, "/o/")
	if !found {
		return "", fmt.Errorf("no object marker in url %q", downloadURL)
	}
	escaped, _, found := strings.Cut(after, "?alt=")
	if !found {
		return "", fmt.Errorf("no alt marker in url %q", downloadURL)
	}
	objectPath, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("invalid escaping in url %q: %w", downloadURL, err)
	}
	return objectPath, nil
}

func (s *FileStorage) Save(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	fullPath := filepath.Join(s.root, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create object %s: %w", objectPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write object %s: %w", objectPath, err)
	}

	return s.DownloadURL(objectPath), nil
}

func (s *FileStorage) Delete(ctx context.Context, objectPath string) error {
	fullPath := filepath.Join(s.root, filepath.FromSlash(objectPath))
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}
	return nil
}

type UploadFile struct {
	Name   string
	Reader io.Reader
}

type UploadResult struct {
	Index int
	Name  string
	URL   string
}

type UploadFailure struct {
	Index int
	Name  string
	Err   error
}

// SaveBatch uploads every file concurrently and accumulates successes and
// failures separately: one bad file does not discard the URLs that did make
// it. Results come back in queue order.
func (s *FileStorage) SaveBatch(ctx context.Context, files []UploadFile) ([]UploadResult, []UploadFailure) {
	var (
		mu       sync.Mutex
		results  []UploadResult
		failures []UploadFailure
	)

	now := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			objectPath := s.ObjectPath(file.Name, i, now)
			downloadURL, err := s.Save(ctx, objectPath, file.Reader)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, UploadFailure{Index: i, Name: file.Name, Err: err})
				return nil
			}
			results = append(results, UploadResult{Index: i, Name: file.Name, URL: downloadURL})
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })
	sort.Slice(failures, func(a, b int) bool { return failures[a].Index < failures[b].Index })
	return results, failures
}
