// Package retry retries transient failures with exponential backoff.
//
// [Do] runs an operation up to a fixed number of attempts, doubling the
// delay between attempts up to a ceiling. It is used by the S3 module
// source to ride out flaky object storage reads.
package retry
