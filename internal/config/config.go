// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables, an
// optional .env file and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// ResultHostname is the base URL used for root namespace short links.
	ResultHostname string

	// RootDomain is the bare domain user subdomains hang off, e.g. "sho.rt".
	// Empty serves subdomain links under /s/{label}/{code}.
	RootDomain string

	// FilePath is the path of the journal file for the in-memory store.
	FilePath string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// SQLitePath is a SQLite file path or a libsql:// URL.
	SQLitePath string

	GRPCPort int

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string

	// TrustedSubnet is the CIDR allowed to read /internal/stats.
	TrustedSubnet string

	// AnonymousRate throttles anonymous link creation per client, in the
	// limiter format ("30-M"). Empty disables it.
	AnonymousRate string

	// ReapInterval is the period of the expired link reaper. Zero disables it.
	ReapInterval time.Duration

	LogLevel string

	// CertCacheDir stores ACME certificates when HTTPS is enabled.
	CertCacheDir string

	// Config is the path of the JSON config file.
	Config string

	// EnablePprof indicates whether to enable pprof for performance profiling.
	EnablePprof bool

	// EnableHTTPS indicates whether to enable https.
	EnableHTTPS bool
}

// flags holds the command-line values; Parse starts every call from them.
var flags = Options{}

func init() {
	flag.StringVar(&flags.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&flags.ResultHostname, "b", "http://localhost:8080", "result base url")
	flag.StringVar(&flags.RootDomain, "r", "", "root domain for subdomain links")
	flag.StringVar(&flags.FilePath, "f", "", "path to storage file")
	flag.StringVar(&flags.DatabaseDSN, "d", "", "postgres dsn")
	flag.StringVar(&flags.SQLitePath, "l", "", "sqlite file or libsql:// url")
	flag.IntVar(&flags.GRPCPort, "g", 3200, "gRPC port")
	flag.StringVar(&flags.JWTSecret, "k", "", "bearer token signing secret")
	flag.StringVar(&flags.TrustedSubnet, "t", "", "trusted subnet (CIDR)")
	flag.StringVar(&flags.AnonymousRate, "rate", "30-M", "anonymous creation rate per client")
	flag.DurationVar(&flags.ReapInterval, "reap", time.Hour, "expired link reaper interval")
	flag.StringVar(&flags.LogLevel, "log", "info", "log level")
	flag.StringVar(&flags.CertCacheDir, "cert-cache", "certs", "ACME certificate cache dir")
	flag.StringVar(&flags.Config, "c", "", "path to JSON config file")
	flag.BoolVar(&flags.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&flags.EnableHTTPS, "s", false, "enable https")
}

// Parse parses the command-line flags, then applies a .env file from the
// working directory, environment variables and finally the JSON config file.
func Parse() (*Options, error) {
	flag.Parse()

	// a missing .env is fine; existing variables win over it
	_ = godotenv.Load()

	options := flags
	if err := applyEnv(&options); err != nil {
		return nil, err
	}

	if options.Config != "" {
		if err := applyFile(&options, options.Config); err != nil {
			return nil, err
		}
	}

	return &options, nil
}

func applyEnv(o *Options) error {
	str := map[string]*string{
		"SERVER_ADDRESS":    &o.Port,
		"BASE_URL":          &o.ResultHostname,
		"ROOT_DOMAIN":       &o.RootDomain,
		"FILE_STORAGE_PATH": &o.FilePath,
		"DATABASE_DSN":      &o.DatabaseDSN,
		"SQLITE_DSN":        &o.SQLitePath,
		"JWT_SECRET":        &o.JWTSecret,
		"TRUSTED_SUBNET":    &o.TrustedSubnet,
		"ANONYMOUS_RATE":    &o.AnonymousRate,
		"LOG_LEVEL":         &o.LogLevel,
		"CERT_CACHE_DIR":    &o.CertCacheDir,
		"CONFIG":            &o.Config,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("GRPC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRPC_PORT: %w", err)
		}
		o.GRPCPort = port
	}

	if v := os.Getenv("REAP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REAP_INTERVAL: %w", err)
		}
		o.ReapInterval = d
	}

	if v := os.Getenv("ENABLE_HTTPS"); v != "" {
		httpMode, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ENABLE_HTTPS: %w", err)
		}
		o.EnableHTTPS = httpMode
	}

	return nil
}

// fileOptions is the JSON config file. Absent keys leave the option as is.
type fileOptions struct {
	ServerAddress   *string `json:"server_address"`
	BaseURL         *string `json:"base_url"`
	RootDomain      *string `json:"root_domain"`
	FileStoragePath *string `json:"file_storage_path"`
	DatabaseDSN     *string `json:"database_dsn"`
	SQLiteDSN       *string `json:"sqlite_dsn"`
	GRPCPort        *int    `json:"grpc_port"`
	JWTSecret       *string `json:"jwt_secret"`
	TrustedSubnet   *string `json:"trusted_subnet"`
	AnonymousRate   *string `json:"anonymous_rate"`
	ReapInterval    *string `json:"reap_interval"`
	LogLevel        *string `json:"log_level"`
	EnablePprof     *bool   `json:"enable_pprof"`
	EnableHTTPS     *bool   `json:"enable_https"`
}

func applyFile(o *Options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var f fileOptions
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&o.Port, f.ServerAddress)
	set(&o.ResultHostname, f.BaseURL)
	set(&o.RootDomain, f.RootDomain)
	set(&o.FilePath, f.FileStoragePath)
	set(&o.DatabaseDSN, f.DatabaseDSN)
	set(&o.SQLitePath, f.SQLiteDSN)
	set(&o.GRPCPort, f.GRPCPort)
	set(&o.JWTSecret, f.JWTSecret)
	set(&o.TrustedSubnet, f.TrustedSubnet)
	set(&o.AnonymousRate, f.AnonymousRate)
	set(&o.LogLevel, f.LogLevel)
	set(&o.EnablePprof, f.EnablePprof)
	set(&o.EnableHTTPS, f.EnableHTTPS)

	if f.ReapInterval != nil {
		d, err := time.ParseDuration(*f.ReapInterval)
		if err != nil {
			return fmt.Errorf("reap_interval: %w", err)
		}
		o.ReapInterval = d
	}

	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
