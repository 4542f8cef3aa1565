// Package source locates module manifests by name.
//
// A [Dir] searches local module roots, a [Bucket] reads from S3-compatible
// object storage, and a [Chain] tries several sources in order. Every
// source reports a missing module with [ErrNotFound].
package source
