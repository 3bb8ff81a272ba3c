package config

import (
	"flag"
	"os"
	"time"

	"github.com/ppandzharov/blogadmin/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-w int      bcrypt work factor for password hashing
//	-t int      session token lifetime, hours
//	-s string   preview token HMAC secret
//	-o string   admin frontend origin (CORS + cookie domain)
//	-f string   public site URL (sitemap)
//	-k          mark the session cookie Secure (HTTPS only)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-w", "-t", "-s", "-o", "-f", "-k", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt work factor")

	sessionLifetime := fs.Int("t", int(config.SessionLifetime.Hours()), "session token lifetime (in hours)")

	fs.StringVar(&config.PreviewSecret, "s", config.PreviewSecret, "preview token secret")
	fs.StringVar(&config.AdminOrigin, "o", config.AdminOrigin, "admin frontend origin")
	fs.StringVar(&config.SiteURL, "f", config.SiteURL, "public site URL")
	fs.BoolVar(&config.SecureCookies, "k", config.SecureCookies, "set the Secure flag on session cookies")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionLifetime = time.Duration(*sessionLifetime) * time.Hour
}
