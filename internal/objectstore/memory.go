package objectstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryBucket keeps objects in process. Used for local runs and tests.
type MemoryBucket struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	contentType string
	body        []byte
}

func NewMemoryBucket(baseURL string) *MemoryBucket {
	if baseURL == "" {
		baseURL = "memory://bucket"
	}
	return &MemoryBucket{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]memoryObject),
	}
}

func (b *MemoryBucket) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cp := make([]byte, len(body))
	copy(cp, body)

	b.mu.Lock()
	b.objects[key] = memoryObject{contentType: contentType, body: cp}
	b.mu.Unlock()
	return b.baseURL + "/" + key, nil
}

func (b *MemoryBucket) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[key]; !ok {
		return fmt.Errorf("delete %s: %w", key, ErrNotFound)
	}
	delete(b.objects, key)
	return nil
}

// Get returns the stored body and content type of key.
func (b *MemoryBucket) Get(key string) ([]byte, string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.objects[key]
	return o.body, o.contentType, ok
}

// Keys lists stored keys in lexical order.
func (b *MemoryBucket) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
