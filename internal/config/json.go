package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkalachov/filevault/internal/flagx"
	"github.com/dkalachov/filevault/internal/timex"
)

// JsonConfig is the DTO for JSON configuration files. It uses timex.Duration
// for interval fields, which parses both string values such as "30m" and
// integer nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	DatabaseDSN          string         `json:"database_dsn"`
	SecretKey            string         `json:"secret_key"`
	SessionTokenValidity timex.Duration `json:"session_token_validity"`
	DemoUsername         string         `json:"demo_username"`
	DemoPassword         string         `json:"demo_password"`
	DemoSecondFactorCode string         `json:"demo_second_factor_code"`
	TOTPSecret           string         `json:"totp_secret"`
	S3RootUser           string         `json:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. A file that names a setting must
// name all of them, as values are copied over wholesale. Read or parse
// failures panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionTokenValidity = time.Duration(c.SessionTokenValidity.Duration)
	config.DemoUsername = c.DemoUsername
	config.DemoPassword = c.DemoPassword
	config.DemoSecondFactorCode = c.DemoSecondFactorCode
	config.TOTPSecret = c.TOTPSecret
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
