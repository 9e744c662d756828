// Package media stores profile images on any gocloud.dev blob bucket.
package media

import (
	"context"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"

	"vidtube/config"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/lifecycle"
	"vidtube/internal/domain/service"
	"vidtube/internal/errors"
	"vidtube/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
	"gocloud.dev/gcerrors"
)

const defaultMaxUploadSize = 8 << 20

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobStorage struct {
	bucket *blob.Bucket
	cfg    config.MediaConfig
	logger *slog.Logger
}

// New opens the bucket named by media.bucketUrl and closes it on stop.
func New(params Params) (service.MediaStorage, error) {
	if params.Config.Media == nil || params.Config.Media.BucketURL == "" {
		return nil, errors.New("media.bucketUrl is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewWithBucket(bucket, params.Config.Media, params.Logger), nil
}

// NewWithBucket wraps an already opened bucket.
func NewWithBucket(bucket *blob.Bucket, cfg *config.MediaConfig, logger *slog.Logger) service.MediaStorage {
	storage := &blobStorage{bucket: bucket, logger: logger}
	if cfg != nil {
		storage.cfg = *cfg
	}
	if storage.cfg.MaxUploadSize <= 0 {
		storage.cfg.MaxUploadSize = defaultMaxUploadSize
	}

	return storage
}

// Upload reads the whole file, sniffs its content type from the bytes and
// writes it under <prefix>/<kind>/<uuid><ext>.
func (s *blobStorage) Upload(ctx context.Context, kind service.MediaKind, upload *service.MediaUpload) (*service.MediaAsset, error) {
	if upload == nil || upload.Open == nil {
		return nil, domainerrors.ErrMediaUploadFailed.WithDetails("no file received")
	}
	if upload.Size > s.cfg.MaxUploadSize {
		return nil, domainerrors.ErrMediaUploadFailed.WithDetails("file exceeds " + util.FormatBytes(s.cfg.MaxUploadSize))
	}

	rc, err := upload.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.cfg.MaxUploadSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	switch {
	case len(data) == 0:
		return nil, domainerrors.ErrMediaUploadFailed.WithDetails("file is empty")
	case int64(len(data)) > s.cfg.MaxUploadSize:
		return nil, domainerrors.ErrMediaUploadFailed.WithDetails("file exceeds " + util.FormatBytes(s.cfg.MaxUploadSize))
	}

	detected := mimetype.Detect(data)
	if !s.allowed(detected.String()) {
		return nil, domainerrors.ErrUnsupportedMediaType.WithDetails(detected.String())
	}

	key := path.Join(s.cfg.KeyPrefix, string(kind), uuid.NewString()+detected.Extension())
	contentType := strings.TrimSpace(strings.SplitN(detected.String(), ";", 2)[0])

	err = s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
		Metadata:     map[string]string{"original-name": path.Base(upload.Filename)},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "write %s", key)
	}

	s.logger.DebugContext(ctx, "Media stored", slog.String("key", key), slog.Int("size", len(data)))

	return &service.MediaAsset{
		Key:         key,
		URL:         s.urlFor(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// Delete removes the object behind url. A missing object is not an error.
func (s *blobStorage) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFor(url)
	if !ok {
		return errors.Errorf("url %q is not served by this store", url)
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

func (s *blobStorage) allowed(contentType string) bool {
	if len(s.cfg.AllowedTypes) == 0 {
		return true
	}

	return mimetype.EqualsAny(contentType, s.cfg.AllowedTypes...)
}

func (s *blobStorage) urlFor(key string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	if base == "" {
		return key
	}

	return base + "/" + key
}

func (s *blobStorage) keyFor(url string) (string, bool) {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	if base == "" {
		return url, url != ""
	}

	key, found := strings.CutPrefix(url, base+"/")
	if !found || key == "" || slices.Contains(strings.Split(key, "/"), "..") {
		return "", false
	}

	return key, true
}
