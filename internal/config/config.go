package config

import "os"

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "asyncmod.yaml"

// DefaultModulePath is used when neither the file nor the flags name a root.
const DefaultModulePath = "./modules"

// Environment variables holding the S3 credentials.
const (
	EnvS3AccessKey = "ASYNCMOD_S3_ACCESS_KEY"
	EnvS3SecretKey = "ASYNCMOD_S3_SECRET_KEY"
)

// Config is the asyncmod configuration.
type Config struct {
	ModulePaths []string `yaml:"module_paths"`
	S3          S3Config `yaml:"s3"`
	MetricsFile string   `yaml:"metrics_file"`

	// Fetch holds retry tuning for remote sources, read from the environment.
	Fetch *FetchSettings `yaml:"-"`
}

// S3Config describes an S3-compatible bucket holding module manifests.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`

	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// Enabled reports whether a bucket is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.ModulePaths) == 0 && !c.S3.Enabled() {
		c.ModulePaths = []string{DefaultModulePath}
	}
	if c.S3.Region == "" {
		c.S3.Region = "fsn1"
	}
	// Hetzner Object Storage endpoints follow the region name.
	if c.S3.Enabled() && c.S3.Endpoint == "" {
		c.S3.Endpoint = "https://" + c.S3.Region + ".your-objectstorage.com"
	}
	if c.S3.AccessKey == "" {
		c.S3.AccessKey = os.Getenv(EnvS3AccessKey)
	}
	if c.S3.SecretKey == "" {
		c.S3.SecretKey = os.Getenv(EnvS3SecretKey)
	}
	if c.Fetch == nil {
		c.Fetch = LoadFetchSettings()
	}
}
