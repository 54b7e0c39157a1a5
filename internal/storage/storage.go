// Package storage provides the object store gateway used for media blobs.
package storage

import "context"

// ObjectStore is a key-addressed blob store with deterministic public URLs.
//
// Put refuses to overwrite an existing key unless overwrite is set; the
// caller decides per upload whether replacement is expected (profile and
// cover images) or an error (post images). PublicURL is derivable from
// bucket and key alone, so no round trip is needed after a successful Put.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error
	PublicURL(bucket, key string) string
}
