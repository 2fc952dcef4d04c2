// Package config holds the configuration shared by all participants of a
// zcbus installation.
//
// Participants that want to exchange data must use the same global section:
// it determines where service descriptions live and how they are named. The
// defaults section supplies the values used when a service is created without
// an explicit setting.
//
// Configuration files are YAML:
//
//	global:
//	  root_path: /tmp/zcbus
//	  service:
//	    creation_timeout: 500ms
//	defaults:
//	  publish_subscribe:
//	    max_subscribers: 8
//
// Fields missing from a file keep their default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/facebookgo/atomicfile"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable tools read the config path from.
const EnvConfigPath = "ZCBUS_CONFIG"

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// TypeNamePolicy controls how payload and header types without a portable
// name are treated.
type TypeNamePolicy string

const (
	// TypeNamePolicyStrict rejects types whose name falls back to the Go
	// runtime identity or whose layout contains pointers.
	TypeNamePolicyStrict TypeNamePolicy = "strict"

	// TypeNamePolicyPermissive accepts such types and logs a warning. Only
	// meant for single-process development setups.
	TypeNamePolicyPermissive TypeNamePolicy = "permissive"
)

// UnableToDeliverStrategy defines what a publisher does when a subscriber
// buffer is full and safe overflow is disabled.
type UnableToDeliverStrategy string

const (
	// StrategyBlock blocks the publisher until the subscriber has space.
	StrategyBlock UnableToDeliverStrategy = "block"

	// StrategyDiscardSample drops the sample for that subscriber.
	StrategyDiscardSample UnableToDeliverStrategy = "discard_sample"
)

// Config is the complete configuration.
type Config struct {
	Global   Global   `yaml:"global"`
	Defaults Defaults `yaml:"defaults"`
}

// Global contains the settings every participant must agree on.
type Global struct {
	// Prefix is prepended to every file created for a service.
	Prefix string `yaml:"prefix"`

	// RootPath is the directory below which all service files are stored.
	RootPath string `yaml:"root_path"`

	// TypeNamePolicy controls the acceptance of non-portable types.
	TypeNamePolicy TypeNamePolicy `yaml:"type_name_policy"`

	Service Service `yaml:"service"`
}

// Service contains the service storage layout and timing.
type Service struct {
	// Directory is relative to RootPath.
	Directory string `yaml:"directory"`

	// StaticConfigSuffix is the file suffix of static service descriptions.
	StaticConfigSuffix string `yaml:"static_config_suffix"`

	// DynamicConfigSuffix is the file suffix of the shared node tables.
	DynamicConfigSuffix string `yaml:"dynamic_config_suffix"`

	// CreationTimeout is how long an opener waits for a service that is
	// still being created.
	CreationTimeout time.Duration `yaml:"creation_timeout"`

	// OpenOrCreateRetries bounds the open/create alternation of
	// open-or-create when other participants create and remove the service
	// concurrently.
	OpenOrCreateRetries int `yaml:"open_or_create_retries"`
}

// Defaults contains per messaging pattern defaults.
type Defaults struct {
	PublishSubscribe PublishSubscribe `yaml:"publish_subscribe"`
}

// PublishSubscribe holds the values a publish-subscribe service is created
// with when the builder does not set them.
type PublishSubscribe struct {
	MaxSubscribers                    uint64                  `yaml:"max_subscribers"`
	MaxPublishers                     uint64                  `yaml:"max_publishers"`
	MaxNodes                          uint64                  `yaml:"max_nodes"`
	SubscriberMaxBufferSize           uint64                  `yaml:"subscriber_max_buffer_size"`
	SubscriberMaxBorrowedSamples      uint64                  `yaml:"subscriber_max_borrowed_samples"`
	PublisherMaxLoanedSamples         uint64                  `yaml:"publisher_max_loaned_samples"`
	PublisherHistorySize              uint64                  `yaml:"publisher_history_size"`
	EnableSafeOverflow                bool                    `yaml:"enable_safe_overflow"`
	UnableToDeliverStrategy           UnableToDeliverStrategy `yaml:"unable_to_deliver_strategy"`
	SubscriberExpiredConnectionBuffer uint64                  `yaml:"subscriber_expired_connection_buffer"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Global: Global{
			Prefix:         "zcb_",
			RootPath:       "/tmp/zcbus",
			TypeNamePolicy: TypeNamePolicyStrict,
			Service: Service{
				Directory:           "services",
				StaticConfigSuffix:  ".service",
				DynamicConfigSuffix: ".dynamic",
				CreationTimeout:     500 * time.Millisecond,
				OpenOrCreateRetries: 8,
			},
		},
		Defaults: Defaults{
			PublishSubscribe: PublishSubscribe{
				MaxSubscribers:                    8,
				MaxPublishers:                     2,
				MaxNodes:                          20,
				SubscriberMaxBufferSize:           2,
				SubscriberMaxBorrowedSamples:      2,
				PublisherMaxLoanedSamples:         2,
				PublisherHistorySize:              0,
				EnableSafeOverflow:                true,
				UnableToDeliverStrategy:           StrategyBlock,
				SubscriberExpiredConnectionBuffer: 128,
			},
		},
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by EnvConfigPath, or returns the defaults
// when the variable is unset.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the config as YAML. The file is replaced atomically so readers
// never observe a partial write.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	f, err := atomicfile.New(path, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Abort()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks the config for values no participant could work with.
func (c *Config) Validate() error {
	g := c.Global
	switch {
	case g.RootPath == "":
		return fmt.Errorf("%w: global.root_path must not be empty", ErrInvalidConfig)
	case g.Service.Directory == "":
		return fmt.Errorf("%w: global.service.directory must not be empty", ErrInvalidConfig)
	case g.Service.StaticConfigSuffix == "" || g.Service.DynamicConfigSuffix == "":
		return fmt.Errorf("%w: global.service suffixes must not be empty", ErrInvalidConfig)
	case g.Service.StaticConfigSuffix == g.Service.DynamicConfigSuffix:
		return fmt.Errorf("%w: static and dynamic config suffixes must differ", ErrInvalidConfig)
	case g.Service.CreationTimeout < 0:
		return fmt.Errorf("%w: global.service.creation_timeout must not be negative", ErrInvalidConfig)
	case g.Service.OpenOrCreateRetries < 1:
		return fmt.Errorf("%w: global.service.open_or_create_retries must be at least 1", ErrInvalidConfig)
	}

	switch g.TypeNamePolicy {
	case TypeNamePolicyStrict, TypeNamePolicyPermissive:
	default:
		return fmt.Errorf("%w: unknown type_name_policy %q", ErrInvalidConfig, g.TypeNamePolicy)
	}

	switch c.Defaults.PublishSubscribe.UnableToDeliverStrategy {
	case StrategyBlock, StrategyDiscardSample:
	default:
		return fmt.Errorf("%w: unknown unable_to_deliver_strategy %q",
			ErrInvalidConfig, c.Defaults.PublishSubscribe.UnableToDeliverStrategy)
	}
	return nil
}
