package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ppandzharov/blogadmin/internal/flagx"
	"github.com/ppandzharov/blogadmin/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "72h" and integer nanoseconds. After unmarshalling, the fields are
// copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	BcryptCost      int            `json:"bcrypt_cost"`
	SessionLifetime timex.Duration `json:"session_lifetime"`
	PreviewSecret   string         `json:"preview_secret"`
	PreviewLifetime timex.Duration `json:"preview_lifetime"`
	AdminOrigin     string         `json:"admin_origin"`
	SiteURL         string         `json:"site_url"`
	SecureCookies   bool           `json:"secure_cookies"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
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

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.BcryptCost = c.BcryptCost
	config.SessionLifetime = time.Duration(c.SessionLifetime.Duration)
	config.PreviewSecret = c.PreviewSecret
	config.PreviewLifetime = time.Duration(c.PreviewLifetime.Duration)
	config.AdminOrigin = c.AdminOrigin
	config.SiteURL = c.SiteURL
	config.SecureCookies = c.SecureCookies
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
