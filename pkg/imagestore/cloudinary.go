package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrTooLarge    = errors.New("imagestore: file too large")
	ErrInvalidType = errors.New("imagestore: invalid file type")
)

type Config struct {
	URL          string
	UploadFolder string
	MaxSizeMB    int
}

// Client talks to the external image host. All catalog assets live under
// a single folder; the returned asset id is what the store needs to
// destroy the asset later.
type Client struct {
	cld      *cloudinary.Cloudinary
	folder   string
	maxBytes int64
}

type UploadResult struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId"`
	Format  string `json:"format"`
	Bytes   int    `json:"bytes"`
}

func NewClient(cfg *Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("imagestore: CLOUDINARY_URL is required")
	}
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("imagestore: init: %w", err)
	}
	return &Client{
		cld:      cld,
		folder:   cfg.UploadFolder,
		maxBytes: int64(cfg.MaxSizeMB) * 1024 * 1024,
	}, nil
}

// ValidateImage rejects non-image uploads before any bytes leave the
// process. Extension check mirrors the content-type check because some
// browsers send application/octet-stream for drag-and-drop files.
func (c *Client) ValidateImage(header *multipart.FileHeader) error {
	if header.Size > c.maxBytes {
		return ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidType, contentType)
}

// MaxSizeMB reports the configured upload cap, for user-facing messages.
func (c *Client) MaxSizeMB() int {
	return int(c.maxBytes / (1024 * 1024))
}

func (c *Client) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID(filename),
		ResourceType:   "image",
		Folder:         c.folder,
		Overwrite:      api.Bool(true),
		UniqueFilename: api.Bool(true),
		UseFilename:    api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("imagestore: upload: %w", err)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}

	return &UploadResult{
		URL:     url,
		AssetID: result.PublicID,
		Format:  result.Format,
		Bytes:   result.Bytes,
	}, nil
}

func (c *Client) Destroy(ctx context.Context, assetID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     assetID,
		ResourceType: "image",
	})
	return err
}

func publicID(originalName string) string {
	ext := filepath.Ext(originalName)
	name := strings.TrimSuffix(originalName, ext)
	name = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	return fmt.Sprintf("%s_%d", name, time.Now().Unix())
}
