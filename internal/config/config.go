// Package config handles runtime configuration: defaults, an optional JSON
// overlay, and command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the vault.
//
// Fields:
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps the registry in memory.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - SessionTokenValidity: lifetime of an issued session token.
//   - DemoUsername / DemoPassword: the credential pair accepted at login.
//   - DemoSecondFactorCode: the static six-digit verification code.
//   - TOTPSecret: base32 TOTP secret; when set it replaces the static code.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings. An empty
//     base endpoint disables presigned transfers entirely.
type Config struct {
	DatabaseDSN          string
	SecretKey            string
	SessionTokenValidity time.Duration
	DemoUsername         string
	DemoPassword         string
	DemoSecondFactorCode string
	TOTPSecret           string
	S3RootUser           string
	S3RootPassword       string
	S3Bucket             string
	S3Region             string
	S3BaseEndpoint       string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionTokenValidity = 30 * time.Minute
	c.DemoUsername = "demo"
	c.DemoPassword = "secure123"
	c.DemoSecondFactorCode = "123456"
	c.TOTPSecret = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "filevault"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
