package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anvil-mc/anvil/internal/domain/entities"
	"github.com/anvil-mc/anvil/internal/domain/interfaces"
)

const defaultBatchWidth = 4

// HTTPDownloader handles single-file downloads, concurrent batch downloads,
// and mirror probing.
type HTTPDownloader struct {
	httpClient *http.Client
	logger     interfaces.Logger
}

// NewHTTPDownloader creates a new downloader
func NewHTTPDownloader(logger interfaces.Logger) *HTTPDownloader {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &HTTPDownloader{
		httpClient: &http.Client{
			Timeout: 15 * time.Minute, // Long timeout for large downloads
		},
		logger: logger,
	}
}

// DownloadFile downloads one file to dest, reporting cumulative progress.
// fallbackSize is used for progress totals when the server omits a length.
func (d *HTTPDownloader) DownloadFile(ctx context.Context, url, dest string, fallbackSize int64, progress interfaces.ProgressFunc) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	var downloaded int64
	return d.fetchToFile(ctx, url, dest, fallbackSize, func(delta, total int64) {
		downloaded += delta
		if progress != nil {
			progress(downloaded, total)
		}
	})
}

// DownloadBatch downloads every task concurrently with a bounded width,
// reporting aggregate progress against totalSize. Individual file order is
// not guaranteed; a failing task cancels the rest. progress is invoked
// serially even though transfers run concurrently, so callers need no
// synchronization of their own.
func (d *HTTPDownloader) DownloadBatch(ctx context.Context, tasks []entities.DownloadTask, totalSize int64, width int, progress interfaces.ProgressFunc) error {
	if width <= 0 {
		width = defaultBatchWidth
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(width)

	var done atomic.Int64
	var progressMu sync.Mutex
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := os.MkdirAll(task.Folder, 0750); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", task.Name, err)
			}
			err := d.fetchToFile(ctx, task.URL, task.Path, task.Size, func(delta, _ int64) {
				if progress == nil {
					return
				}
				progressMu.Lock()
				progress(done.Add(delta), totalSize)
				progressMu.Unlock()
			})
			if err != nil {
				return fmt.Errorf("failed to download %s: %w", task.Name, err)
			}
			if task.SHA1 != "" {
				if err := VerifyChecksum(task.Path, task.SHA1); err != nil {
					_ = os.Remove(task.Path)
					return fmt.Errorf("checksum verification failed for %s: %w", task.Name, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	d.logger.Debug("batch download complete",
		interfaces.F("files", len(tasks)),
		interfaces.F("bytes", done.Load()))
	return nil
}

// CheckMirror probes each mirror root for a repository-relative path and
// returns the first one answering 200, or nil when no mirror has the file.
// Unreachable mirrors are skipped, not fatal.
func (d *HTTPDownloader) CheckMirror(ctx context.Context, relPath string, mirrors []string) (*entities.MirrorHit, error) {
	for _, mirror := range mirrors {
		url := strings.TrimRight(mirror, "/") + "/" + relPath

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			continue
		}
		resp, err := d.httpClient.Do(req)
		if err != nil {
			d.logger.Debug("mirror unreachable", interfaces.F("mirror", mirror), interfaces.F("error", err))
			continue
		}
		//nolint:errcheck // Best effort close, HEAD responses carry no body
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return &entities.MirrorHit{URL: url, Size: resp.ContentLength}, nil
		}
	}
	return nil, nil
}

// fetchToFile streams url into dest, invoking onBytes with each chunk's size
// and the resolved total (Content-Length when present, fallbackSize otherwise).
func (d *HTTPDownloader) fetchToFile(ctx context.Context, url, dest string, fallbackSize int64, onBytes func(delta, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "anvil/1.0")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	total := fallbackSize
	if resp.ContentLength > 0 {
		total = resp.ContentLength
	}

	// Stream into a sibling temp file and rename on success, so a failed
	// transfer never leaves a partial file at the final path.
	tmp := dest + ".part"
	//nolint:gosec // G304: File path dest is function parameter for download destination
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				_ = out.Close()
				_ = os.Remove(tmp)
				return fmt.Errorf("failed to write file: %w", err)
			}
			if onBytes != nil {
				onBytes(int64(n), total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = out.Close()
			_ = os.Remove(tmp)
			return fmt.Errorf("failed to read response: %w", readErr)
		}
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
