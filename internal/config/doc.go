// Package config loads the asyncmod configuration file.
//
// The [Config] struct names the module sources an import may resolve
// against: local module roots and an optional S3 bucket. Credentials and
// fetch retry tuning come from the environment rather than the file.
package config
