package service

import (
	"context"
	"io"
)

// MediaKind groups stored assets by their role on a profile.
type MediaKind string

const (
	MediaKindAvatar MediaKind = "avatar"
	MediaKindCover  MediaKind = "cover"
)

// MediaUpload is a file received from a client.
type MediaUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// MediaAsset is a stored file and the stable URL it is served from.
type MediaAsset struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// MediaStorage uploads and deletes binary assets on a remote object store.
type MediaStorage interface {
	// Upload stores the file and returns its URL. A failed upload is always an
	// error, never an empty asset.
	Upload(ctx context.Context, kind MediaKind, upload *MediaUpload) (*MediaAsset, error)

	// Delete removes the asset previously returned at url.
	Delete(ctx context.Context, url string) error
}
