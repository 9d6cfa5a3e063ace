package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	BASE_URL            = "http://localhost:8080" // Used in invitation links sent out via email/SMS
	TLS_DOMAINS         = ""                      // e.g. "example.com,example2.com"
	MYSQL_DSN           = ""                      // MySQL will be used if this is set
	SQLITE_FILE         = "coparent.db"           // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS        = "0.0.0.0:8080"
	DEBUG_MODE          = true
	SESSION_KEY         = "change me in production"
	DEFAULT_BUCKET_DIR  = "" // Used for creating the initial document storage bucket
	TMP_DIR             = "/tmp"
	SMTP_HOST           = ""
	SMTP_PORT           = 587
	SMTP_USER           = ""
	SMTP_PASSWORD       = ""
	SMTP_FROM           = "noreply@coparentalidad.app"
	SUPERADMIN_EMAIL    = "" // If set, a SUPERADMIN account is created at startup
	SUPERADMIN_NAME     = "Superadmin"
	SUPERADMIN_PASSWORD = ""
)

func init() {
	readEnvString("BASE_URL", &BASE_URL)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("SMTP_HOST", &SMTP_HOST)
	readEnvInt("SMTP_PORT", &SMTP_PORT)
	readEnvString("SMTP_USER", &SMTP_USER)
	readEnvString("SMTP_PASSWORD", &SMTP_PASSWORD)
	readEnvString("SMTP_FROM", &SMTP_FROM)
	readEnvString("SUPERADMIN_EMAIL", &SUPERADMIN_EMAIL)
	readEnvString("SUPERADMIN_NAME", &SUPERADMIN_NAME)
	readEnvString("SUPERADMIN_PASSWORD", &SUPERADMIN_PASSWORD)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
