// Package s3 reads module manifests from S3-compatible object storage.
//
// The client is a thin wrapper over aws-sdk-go-v2 that exposes only the
// read operations the module sources need and classifies not-found
// errors across providers that do not return the SDK's typed errors.
package s3
