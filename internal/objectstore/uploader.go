package objectstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"shopadmin/internal/imaging"
	"shopadmin/internal/retry"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultPutTimeout = 30 * time.Second

type UploaderOptions struct {
	Bucket Bucket
	// Compress runs every file through imaging.Compress before upload.
	Compress    bool
	Compression imaging.Policy
	Retry       retry.Policy
	// PutTimeout bounds a single Put attempt; zero means 30s.
	PutTimeout time.Duration
	// Transient reports whether a Put error is worth another attempt.
	// Defaults to IsTransient.
	Transient func(error) bool
	Logger    *zap.SugaredLogger
}

// Uploader fans a request's files out to a Bucket. It keeps no per-request state.
type Uploader struct {
	bucket      Bucket
	compress    bool
	compression imaging.Policy
	retry       retry.Policy
	putTimeout  time.Duration
	transient   func(error) bool
	logger      *zap.SugaredLogger
	newKey      func(folder, name string) string
}

func NewUploader(opts UploaderOptions) (*Uploader, error) {
	if opts.Bucket == nil {
		return nil, errors.New("objectstore: bucket is required")
	}
	u := &Uploader{
		bucket:      opts.Bucket,
		compress:    opts.Compress,
		compression: opts.Compression,
		retry:       opts.Retry,
		putTimeout:  opts.PutTimeout,
		transient:   opts.Transient,
		logger:      opts.Logger,
		newKey:      NewKey,
	}
	if u.retry.MaxAttempts == 0 {
		u.retry = retry.DefaultPolicy()
	}
	if u.putTimeout <= 0 {
		u.putTimeout = defaultPutTimeout
	}
	if u.transient == nil {
		u.transient = IsTransient
	}
	if u.logger == nil {
		u.logger = zap.NewNop().Sugar()
	}
	return u, nil
}

// NewKey builds folder/{uuid}_{name}. Only the base name of the client
// supplied filename is kept.
func NewKey(folder, name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		name = "image"
	}
	return fmt.Sprintf("%s/%s_%s", strings.Trim(folder, "/"), uuid.NewString(), name)
}

// Upload stores files concurrently under folder and returns the stored objects
// in input order. If any file fails, the ones that were stored are deleted
// before the error is returned.
func (u *Uploader) Upload(ctx context.Context, files []File, folder string) ([]Object, error) {
	objects := make([]Object, len(files))
	if len(files) == 0 {
		return objects, nil
	}

	stored := make([]bool, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			body, contentType := f.Data, f.ContentType
			if u.compress {
				out, err := imaging.Compress(body, u.compression)
				if err != nil {
					return fmt.Errorf("%s: %w", f.Name, err)
				}
				body, contentType = out, u.compression.ContentType()
			}

			key := u.newKey(folder, f.Name)
			url, err := u.put(gctx, key, contentType, body)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrUpload, key, err)
			}
			objects[i] = Object{Key: key, URL: url, ContentType: contentType, Size: len(body)}
			stored[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var orphans []string
		for i, ok := range stored {
			if ok {
				orphans = append(orphans, objects[i].Key)
			}
		}
		if len(orphans) > 0 {
			if rmErr := u.Remove(context.WithoutCancel(ctx), orphans); rmErr != nil {
				u.logger.Errorw("failed to clean up partial upload", "keys", orphans, "error", rmErr.Error())
			}
		}
		return nil, err
	}

	u.logger.Infow("uploaded images", "folder", folder, "count", len(objects))
	return objects, nil
}

func (u *Uploader) put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	var url string
	err := retry.Do(ctx, u.retry, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, u.putTimeout)
		defer cancel()

		out, err := u.bucket.Put(callCtx, key, contentType, body)
		if err != nil {
			if !u.transient(err) {
				return retry.Permanent(err)
			}
			u.logger.Warnw("put attempt failed", "key", key, "error", err.Error())
			return err
		}
		url = out
		return nil
	})
	return url, err
}

// Remove deletes keys, attempting every key even after a failure.
func (u *Uploader) Remove(ctx context.Context, keys []string) error {
	var errs error
	for _, key := range keys {
		if err := u.bucket.Delete(ctx, key); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		u.logger.Infow("removed object", "key", key)
	}
	return errs
}
