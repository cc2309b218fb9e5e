package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxFileSize = 50 * 1024 * 1024 // 50 MB

var documentMimeTypes = map[string]bool{
	"application/pdf": true,
}

var coverMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// DiskStore keeps blobs on the local filesystem under baseDir, in
// YYYY/MM/DD subdirectories. References are paths relative to baseDir.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) *DiskStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &DiskStore{baseDir: baseDir}
}

// Put writes the bytes to disk and returns the relative reference. The
// first 512 bytes are sniffed for the MIME type; files outside the
// allowlist for the given kind are rejected before anything is written.
func (s *DiskStore) Put(ctx context.Context, r io.Reader, originalName string, kind Kind) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", 0, fmt.Errorf("failed to read file: %w", err)
	}
	if n == 0 {
		return "", 0, ErrEmptyFile
	}

	mimeType := http.DetectContentType(buf[:n])
	mimeType = strings.Split(mimeType, ";")[0] // strip charset params

	allowed := coverMimeTypes
	if kind == KindDocument {
		allowed = documentMimeTypes
	}
	if !allowed[mimeType] {
		return "", 0, ErrInvalidMimeType
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(originalName), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(buf[:n]), io.LimitReader(r, MaxFileSize-int64(n)+1)))
	if err != nil {
		_ = os.Remove(absPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	if written > MaxFileSize {
		_ = os.Remove(absPath)
		return "", 0, ErrFileTooLarge
	}

	return filepath.ToSlash(filepath.Join(relDir, filename)), written, nil
}

// Delete removes the file; a reference that no longer resolves is fine.
func (s *DiskStore) Delete(ref string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(ref)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) Exists(ref string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, filepath.FromSlash(ref)))
	return err == nil
}

func (s *DiskStore) Open(ref string) (io.ReadSeekCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(ref)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name)) // strip extension (added separately)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
