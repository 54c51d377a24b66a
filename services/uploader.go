package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fundspark/fundspark-backend/config"
	"github.com/fundspark/fundspark-backend/errs"
)

// Uploader validates and stores uploaded images under the configured uploads
// directory and maps stored files back to their public URLs.
type Uploader struct {
	baseDir      string
	uploadDir    string
	origin       string
	allowedTypes map[string]struct{}
	allowedExts  map[string]struct{}
	maxSize      int64
}

func NewUploader(settings config.Settings) (*Uploader, error) {
	u := &Uploader{
		baseDir:      settings.BaseDir,
		uploadDir:    settings.UploadDir,
		origin:       settings.Origin,
		allowedTypes: toSet(settings.AllowedImageTypes),
		allowedExts:  toSet(settings.AllowedImageExtensions),
		maxSize:      settings.MaxImageSize,
	}

	if err := os.MkdirAll(u.imagesDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return u, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func (u *Uploader) imagesDir() string {
	return filepath.Join(u.baseDir, u.uploadDir, "images")
}

// Save validates the uploaded file and writes it under a random filename.
// Validation rejections happen before anything touches the disk.
func (u *Uploader) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if _, ok := u.allowedTypes[strings.ToLower(contentType)]; !ok {
		return "", errs.NewUnsupportedMediaError(contentType)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if _, ok := u.allowedExts[ext]; !ok {
		return "", errs.NewUnsupportedMediaError(ext)
	}

	if header.Size > u.maxSize {
		return "", errs.NewOversizedMediaError(u.maxSize)
	}

	name, err := randomFilename(ext)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(u.imagesDir(), name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	// Without a configured origin the URL stays host-relative.
	url := fmt.Sprintf("/api/%s/images/%s", u.uploadDir, name)
	if u.origin != "" {
		url = "https://" + u.origin + url
	}
	return url, nil
}

// RemoveByURL deletes the stored file a public upload URL points at.
// Best-effort by contract: failures are logged and swallowed, and URLs that
// do not point into the uploads tree are ignored.
func (u *Uploader) RemoveByURL(url string) {
	_, relative, found := strings.Cut(url, "/api/")
	if !found {
		return
	}

	path := filepath.Join(u.baseDir, filepath.Clean("/"+relative))
	if !strings.HasPrefix(path, filepath.Join(u.baseDir, u.uploadDir)) {
		return
	}

	if err := os.Remove(path); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("orphaned upload not removed")
	}
}

// RemoveAll deletes every file the given upload URLs point at.
func (u *Uploader) RemoveAll(urls []string) {
	for _, url := range urls {
		u.RemoveByURL(url)
	}
}

func randomFilename(ext string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + "." + ext, nil
}
