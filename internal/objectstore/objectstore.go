// Package objectstore puts uploaded images into a public bucket and hands
// back the URLs they are served from.
package objectstore

import (
	"context"
	"errors"
)

var (
	ErrUpload   = errors.New("image upload failed")
	ErrNotFound = errors.New("object not found")
)

// File is one uploaded payload as received from the client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Object is a stored file. URL is publicly readable.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// Bucket is a remote object store. Put returns the public URL of key.
type Bucket interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// URLs returns the public URLs of objs in order.
func URLs(objs []Object) []string {
	urls := make([]string, len(objs))
	for i, o := range objs {
		urls[i] = o.URL
	}
	return urls
}

// Keys returns the keys of objs in order.
func Keys(objs []Object) []string {
	keys := make([]string, len(objs))
	for i, o := range objs {
		keys[i] = o.Key
	}
	return keys
}
