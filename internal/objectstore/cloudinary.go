package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryBucket stores objects as Cloudinary image assets. The key minus
// its extension is the public ID, Cloudinary appends the format itself.
type CloudinaryBucket struct {
	up cloudinaryAPI
}

func NewCloudinaryBucket(cloudinaryURL string) (*CloudinaryBucket, error) {
	if strings.TrimSpace(cloudinaryURL) == "" {
		return nil, errors.New("CLOUDINARY_URL is required")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryBucket{up: &cld.Upload}, nil
}

func publicID(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}

func (b *CloudinaryBucket) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	resp, err := b.up.Upload(ctx, bytes.NewReader(body), uploader.UploadParams{
		PublicID:  publicID(key),
		Overwrite: api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", key, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", key, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (b *CloudinaryBucket) Delete(ctx context.Context, key string) error {
	resp, err := b.up.Destroy(ctx, uploader.DestroyParams{PublicID: publicID(key)})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", key, err)
	}
	switch {
	case resp.Error.Message != "":
		return fmt.Errorf("cloudinary destroy %s: %s", key, resp.Error.Message)
	case resp.Result == "not found":
		return fmt.Errorf("cloudinary destroy %s: %w", key, ErrNotFound)
	}
	return nil
}
