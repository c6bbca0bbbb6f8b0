package objectstore

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net"
	"net/http"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"shopadmin/internal/imaging"
	"shopadmin/internal/retry"
)

// flakyBucket wraps a MemoryBucket and fails Put for names listed in failOn.
type flakyBucket struct {
	*MemoryBucket
	failOn   string
	failures int
	err      error

	mu    sync.Mutex
	calls map[string]int
}

func newFlakyBucket(failOn string, failures int) *flakyBucket {
	return &flakyBucket{
		MemoryBucket: NewMemoryBucket(""),
		failOn:       failOn,
		failures:     failures,
		err:          &net.OpError{Op: "write", Net: "tcp", Err: syscall.ECONNRESET},
		calls:        map[string]int{},
	}
}

func (b *flakyBucket) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if b.failOn != "" && strings.HasSuffix(key, b.failOn) {
		b.mu.Lock()
		b.calls[key]++
		n := b.calls[key]
		b.mu.Unlock()
		if b.failures < 0 || n <= b.failures {
			return "", b.err
		}
	}
	return b.MemoryBucket.Put(ctx, key, contentType, body)
}

func fastUploader(t *testing.T, b Bucket, compress bool) *Uploader {
	t.Helper()
	u, err := NewUploader(UploaderOptions{
		Bucket:      b,
		Compress:    compress,
		Compression: imaging.Policy{Codec: imaging.JPEGCodec{}},
		Retry:       retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
	})
	if err != nil {
		t.Fatalf("NewUploader: %v", err)
	}
	return u
}

func files(names ...string) []File {
	out := make([]File, len(names))
	for i, n := range names {
		out[i] = File{Name: n, ContentType: "image/png", Data: []byte("payload-" + n)}
	}
	return out
}

func TestUploadPreservesOrder(t *testing.T) {
	bucket := NewMemoryBucket("https://cdn.example.com")
	in := files("a.png", "b.png", "c.png", "d.png", "e.png")

	objs, err := fastUploader(t, bucket, false).Upload(context.Background(), in, "products")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(objs) != len(in) {
		t.Fatalf("got %d objects, want %d", len(objs), len(in))
	}
	for i, o := range objs {
		if !strings.HasPrefix(o.Key, "products/") || !strings.HasSuffix(o.Key, "_"+in[i].Name) {
			t.Errorf("object %d key = %q, want products/{uuid}_%s", i, o.Key, in[i].Name)
		}
		if o.URL != "https://cdn.example.com/"+o.Key {
			t.Errorf("object %d url = %q", i, o.URL)
		}
		body, ct, ok := bucket.Get(o.Key)
		if !ok || !bytes.Equal(body, in[i].Data) || ct != "image/png" {
			t.Errorf("object %d stored incorrectly", i)
		}
	}
}

func TestUploadEmpty(t *testing.T) {
	objs, err := fastUploader(t, NewMemoryBucket(""), false).Upload(context.Background(), nil, "products")
	if err != nil || len(objs) != 0 {
		t.Fatalf("Upload(nil) = %v, %v", objs, err)
	}
}

func TestUploadRetriesTransientPut(t *testing.T) {
	bucket := newFlakyBucket("b.png", 2)
	objs, err := fastUploader(t, bucket, false).Upload(context.Background(), files("a.png", "b.png"), "products")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(objs) != 2 || len(bucket.Keys()) != 2 {
		t.Fatalf("objects=%d stored=%d, want 2/2", len(objs), len(bucket.Keys()))
	}
}

func TestUploadDoesNotRetryPermanentPut(t *testing.T) {
	bucket := newFlakyBucket("b.png", -1)
	bucket.err = errors.New("AccessDenied: 403 forbidden")
	_, err := fastUploader(t, bucket, false).Upload(context.Background(), files("b.png"), "products")
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	for key, n := range bucket.calls {
		if n != 1 {
			t.Fatalf("Put(%s) called %d times, want 1", key, n)
		}
	}
	if len(bucket.calls) != 1 {
		t.Fatalf("calls = %v, want one key", bucket.calls)
	}
}

func TestUploadHonoursCustomTransient(t *testing.T) {
	bucket := newFlakyBucket("b.png", 1)
	bucket.err = errors.New("quota exceeded")
	u, err := NewUploader(UploaderOptions{
		Bucket:    bucket,
		Retry:     retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
		Transient: func(error) bool { return true },
	})
	if err != nil {
		t.Fatalf("NewUploader: %v", err)
	}
	if _, err := u.Upload(context.Background(), files("b.png"), "products"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	respErr := func(code int) error {
		return &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
			Err:      errors.New("api error"),
		}
	}
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("AccessDenied: 403 forbidden"), false},
		{"network", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
		{"deadline", context.DeadlineExceeded, true},
		{"status 403", respErr(http.StatusForbidden), false},
		{"status 429", respErr(http.StatusTooManyRequests), true},
		{"status 503", respErr(http.StatusServiceUnavailable), true},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, true},
		{"server fault", &smithy.GenericAPIError{Code: "Boom", Fault: smithy.FaultServer}, true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied", Fault: smithy.FaultClient}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestUploadFailureRemovesStoredSiblings(t *testing.T) {
	bucket := newFlakyBucket("bad.png", -1)
	_, err := fastUploader(t, bucket, false).Upload(context.Background(), files("a.png", "bad.png", "c.png"), "products")
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}
	if keys := bucket.Keys(); len(keys) != 0 {
		t.Fatalf("bucket still holds %v after failed upload", keys)
	}
}

func TestUploadCompressesAndForcesContentType(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	bucket := NewMemoryBucket("")
	in := []File{{Name: "photo.png", ContentType: "image/png", Data: buf.Bytes()}}

	objs, err := fastUploader(t, bucket, true).Upload(context.Background(), in, "trial-products")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if objs[0].ContentType != "image/jpeg" {
		t.Fatalf("content type = %s, want image/jpeg", objs[0].ContentType)
	}
	if _, ct, _ := bucket.Get(objs[0].Key); ct != "image/jpeg" {
		t.Fatalf("stored content type = %s", ct)
	}
}

func TestUploadCompressionError(t *testing.T) {
	bucket := NewMemoryBucket("")
	_, err := fastUploader(t, bucket, true).Upload(context.Background(), files("x.png"), "products")
	if !errors.Is(err, imaging.ErrCompression) {
		t.Fatalf("err = %v, want ErrCompression", err)
	}
	if errors.Is(err, ErrUpload) {
		t.Fatal("compression failure should not be reported as upload failure")
	}
}

func TestRemoveAttemptsEveryKey(t *testing.T) {
	bucket := NewMemoryBucket("")
	ctx := context.Background()
	_, _ = bucket.Put(ctx, "products/one", "image/png", nil)
	_, _ = bucket.Put(ctx, "products/two", "image/png", nil)

	err := fastUploader(t, bucket, false).Remove(ctx, []string{"products/one", "products/missing", "products/two"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for the missing key", err)
	}
	if keys := bucket.Keys(); len(keys) != 0 {
		t.Fatalf("bucket still holds %v", keys)
	}
}

func TestNewKeyStripsDirectories(t *testing.T) {
	key := NewKey("products", `..\..\etc/passwd.png`)
	if !strings.HasPrefix(key, "products/") || !strings.HasSuffix(key, "_passwd.png") || strings.Count(key, "/") != 1 {
		t.Fatalf("unexpected key %q", key)
	}
}
