package uploads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
)

// AttachmentMetadata describes one stored attachment (typically the
// source checklist document from an inbox message).
type AttachmentMetadata struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Key      string    `json:"key"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	MimeType string    `json:"mimeType"`
}

// AttachmentService coordinates attachment storage across drivers.
type AttachmentService struct {
	Driver StorageDriver
}

// NewAttachmentService creates an attachment service over the given driver.
func NewAttachmentService(driver StorageDriver) *AttachmentService {
	return &AttachmentService{Driver: driver}
}

// Store saves the incoming attachment via the driver and returns its
// metadata. The storage key is a fresh UUID plus the original extension.
func (s *AttachmentService) Store(ctx context.Context, filename string, reader io.Reader, size int64, mime string) (*AttachmentMetadata, error) {
	if mime == "" {
		mime = "application/octet-stream"
	}
	id := uuid.New()
	key := id.String() + filepath.Ext(filename)

	if err := s.Driver.Save(ctx, key, reader, mime); err != nil {
		return nil, fmt.Errorf("storage driver failed: %w", err)
	}

	url, err := s.Driver.GenerateURL(ctx, key, 0)
	if err != nil {
		if delErr := s.Driver.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to clean up orphaned attachment", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to generate URL: %w", err)
	}

	metadata := &AttachmentMetadata{
		ID:       id,
		Name:     filename,
		Key:      key,
		URL:      url,
		Size:     size,
		MimeType: mime,
	}
	slog.InfoContext(ctx, "attachment stored", "id", id, "key", key)
	return metadata, nil
}

// Open retrieves the attachment content and its MIME type.
func (s *AttachmentService) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.Driver.Get(ctx, key)
}

// ReadAll retrieves the full attachment content as bytes.
func (s *AttachmentService) ReadAll(ctx context.Context, key string) ([]byte, string, error) {
	reader, mime, err := s.Driver.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read attachment %s: %w", key, err)
	}
	return data, mime, nil
}
