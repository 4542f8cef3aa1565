package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/asyncmod/internal/manifest"
	"github.com/imamik/asyncmod/internal/platform/s3"
	"github.com/imamik/asyncmod/internal/util/retry"
)

// ObjectStore is the subset of the S3 client a Bucket needs.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
}

// Bucket resolves modules stored as <prefix><name>.{yaml,yml,hcl} objects.
type Bucket struct {
	store  ObjectStore
	bucket string
	prefix string
	retry  []retry.Option

	// isNotFound classifies store errors; defaults to s3.IsNotFound.
	isNotFound func(error) bool
}

// NewBucket returns a Bucket source. Reads are retried according to opts.
func NewBucket(store ObjectStore, bucket, prefix string, opts ...retry.Option) *Bucket {
	return &Bucket{
		store:      store,
		bucket:     bucket,
		prefix:     prefix,
		retry:      opts,
		isNotFound: s3.IsNotFound,
	}
}

// Resolve implements Source.
func (b *Bucket) Resolve(ctx context.Context, name string) (*manifest.Manifest, string, error) {
	if name == "" || strings.Contains(name, "/") {
		return nil, "", notFound(name)
	}

	for _, ext := range manifest.Extensions {
		key := b.prefix + name + ext
		data, found, err := b.fetch(ctx, key)
		if err != nil {
			return nil, "", err
		}
		if !found {
			continue
		}

		location := fmt.Sprintf("s3://%s/%s", b.bucket, key)
		format, err := manifest.FormatFromPath(key)
		if err != nil {
			return nil, "", err
		}
		m, err := manifest.Parse(data, format, location)
		if err != nil {
			return nil, "", err
		}
		if err := checkName(m, name, location); err != nil {
			return nil, "", err
		}
		return m, location, nil
	}
	return nil, "", notFound(name)
}

func (b *Bucket) fetch(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = b.store.GetObject(ctx, b.bucket, key)
		if err != nil && b.isNotFound(err) {
			return retry.Permanent(err)
		}
		return err
	}, b.retry...)

	switch {
	case err == nil:
		return data, true, nil
	case retry.IsPermanent(err):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

// List implements Source. Objects in nested "directories" are ignored.
func (b *Bucket) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		keys, err = b.store.ListObjects(ctx, b.bucket, b.prefix)
		return err
	}, b.retry...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, key := range keys {
		rel := strings.TrimPrefix(key, b.prefix)
		if strings.Contains(rel, "/") {
			continue
		}
		if n, ok := stripExt(rel); ok && n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names, nil
}
