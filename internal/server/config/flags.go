package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docshare/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string             HTTP bind address (e.g., ":8080")
//	-d string             PostgreSQL DSN
//	-s string             JWT HMAC secret key
//	-t int                access token validity, minutes
//	-w int                download token validity window, minutes
//	-v int                verification token validity, hours
//	-u string             S3 root user
//	-p string             S3 root password
//	-b string             S3 bucket name
//	-g string             S3 region
//	-e string             S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-smtp-addr string     SMTP host:port
//	-smtp-user string     SMTP username
//	-smtp-password string SMTP password
//	-smtp-from string     From address on notification mail
//	-f string             frontend base URL for verification links
//	-ops-email string     bootstrap ops account email
//	-ops-password string  bootstrap ops account password
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers (minutes or hours) and then
//     converted to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-w", "-v", "-u", "-p", "-b", "-g", "-e",
		"-smtp-addr", "-smtp-user", "-smtp-password", "-smtp-from",
		"-f", "-ops-email", "-ops-password",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	downloadTokenValidityDuration := fs.Int("w", int(config.DownloadTokenValidityDuration.Minutes()), "download_token_validity_duration (in minutes)")
	verificationTokenValidityDuration := fs.Int("v", int(config.VerificationTokenValidityDuration.Hours()), "verification_token_validity_duration (in hours)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.SMTPAddr, "smtp-addr", config.SMTPAddr, "SMTP server address (host:port)")
	fs.StringVar(&config.SMTPUsername, "smtp-user", config.SMTPUsername, "SMTP username")
	fs.StringVar(&config.SMTPPassword, "smtp-password", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.SMTPFrom, "smtp-from", config.SMTPFrom, "notification mail From address")

	fs.StringVar(&config.FrontendURL, "f", config.FrontendURL, "frontend base URL for verification links")
	fs.StringVar(&config.OpsEmail, "ops-email", config.OpsEmail, "bootstrap ops account email")
	fs.StringVar(&config.OpsPassword, "ops-password", config.OpsPassword, "bootstrap ops account password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.DownloadTokenValidityDuration = time.Duration(*downloadTokenValidityDuration) * time.Minute
	config.VerificationTokenValidityDuration = time.Duration(*verificationTokenValidityDuration) * time.Hour
}
