package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// DefaultFolder is the Cloudinary folder profile pictures are stored under.
const DefaultFolder = "artisans"

// ErrNotConfigured is the cause reported when no image host credentials were
// supplied.
var ErrNotConfigured = errors.New("image hosting is not configured")

// UploadError reports a failed image upload.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "image upload: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Credentials identify a Cloudinary account.
type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Cloudinary uploads in-memory images to a fixed Cloudinary folder.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// Option customizes a Cloudinary uploader.
type Option func(*config.Configuration)

// WithUploadPrefix points the uploader at a different API host.
func WithUploadPrefix(prefix string) Option {
	return func(c *config.Configuration) {
		c.API.UploadPrefix = prefix
	}
}

func NewCloudinary(creds Credentials, folder string, opts ...Option) (*Cloudinary, error) {
	if creds.CloudName == "" || creds.APIKey == "" || creds.APISecret == "" {
		return nil, ErrNotConfigured
	}
	conf, err := config.NewFromParams(creds.CloudName, creds.APIKey, creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	for _, opt := range opts {
		opt(conf)
	}
	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	if folder == "" {
		folder = DefaultFolder
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

// Upload sends data to Cloudinary and returns the secure URL of the stored
// image. Any failure, including an error reported in the API response body,
// is returned as an *UploadError.
func (c *Cloudinary) Upload(ctx context.Context, data []byte) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return "", &UploadError{Err: err}
	}
	if res.Error.Message != "" {
		return "", &UploadError{Err: errors.New(res.Error.Message)}
	}
	if res.SecureURL == "" {
		return "", &UploadError{Err: errors.New("response carried no secure_url")}
	}
	return res.SecureURL, nil
}

// Disabled is used when no credentials are configured; every upload fails.
type Disabled struct{}

func (Disabled) Upload(context.Context, []byte) (string, error) {
	return "", &UploadError{Err: ErrNotConfigured}
}
