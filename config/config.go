package config

import "time"

// Config contains all application settings
type Config struct {
	BindPort int    `mapstructure:"PORT" yaml:"port"`
	BindHost string `mapstructure:"HOST" yaml:"host"`

	// Vendor control endpoint
	VendorURL     string        `mapstructure:"VENDOR_URL" yaml:"vendor_url"`
	VendorGroupID string        `mapstructure:"VENDOR_GROUP_ID" yaml:"vendor_group_id"`
	VendorTimeout time.Duration `mapstructure:"VENDOR_TIMEOUT" yaml:"vendor_timeout"`

	AddressPool      string `mapstructure:"ADDRESS_POOL" yaml:"address_pool"`
	FetchConcurrency int    `mapstructure:"FETCH_CONCURRENCY" yaml:"fetch_concurrency"`

	// Operator login
	OperatorID           string        `mapstructure:"OPERATOR_ID" yaml:"operator_id"`
	OperatorPasswordHash string        `mapstructure:"OPERATOR_PASSWORD_HASH" yaml:"operator_password_hash"`
	SessionSecret        string        `mapstructure:"SESSION_SECRET" yaml:"session_secret"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL" yaml:"session_ttl"`

	NATSServerURL string `mapstructure:"NATS_URL" yaml:"nats_url"`

	LogLevel  string `mapstructure:"LOG_LEVEL" yaml:"log_level"`
	LogFormat string `mapstructure:"LOG_FORMAT" yaml:"log_format"`

	// Version
	BuildVersion string `yaml:"-"`
	BuildHash    string `yaml:"-"`
	BuildTime    string `yaml:"-"`
}
