package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for common errors.
func (c *Config) Validate() error {
	if len(c.ModulePaths) == 0 && !c.S3.Enabled() {
		return fmt.Errorf("at least one module source is required: set module_paths or s3.bucket")
	}

	for i, p := range c.ModulePaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("module_paths[%d] is empty", i)
		}
	}

	if c.S3.Enabled() {
		if err := c.S3.validate(); err != nil {
			return fmt.Errorf("s3 validation failed: %w", err)
		}
	}
	return nil
}

func (s S3Config) validate() error {
	if s.AccessKey == "" || s.SecretKey == "" {
		return fmt.Errorf("credentials are required: set %s and %s", EnvS3AccessKey, EnvS3SecretKey)
	}
	u, err := url.Parse(s.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q", s.Endpoint)
	}
	if strings.HasPrefix(s.Prefix, "/") {
		return fmt.Errorf("prefix %q must not start with /", s.Prefix)
	}
	return nil
}
