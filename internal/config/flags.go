package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process arguments.
// Parsing errors yield an empty config; use parseFlags to observe them.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-d local SQLite DSN
//	-c/-config json file path with configs
//	-remote remote kind ("http" or "postgres")
//	-remote-address PostgREST base URL
//	-api-key PostgREST api key
//	-postgres-dsn remote Postgres DSN
//	-geocoder-address reverse geocoder base URL
//	-token user access token
//	-log-file client log file path
//	-headless run without the terminal dashboard
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval background sync interval (e.g., "5m")
//	-address-concurrency concurrent address resolutions
//	-page-size remote page size
func ParseFlags(args []string) *StructuredConfig {
	cfg, err := parseFlags(args)
	if err != nil {
		return &StructuredConfig{}
	}
	return cfg
}

func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("catalog-mirror", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var remoteKind, remoteAddress, apiKey, postgresDSN, geocoderAddress string
	var accessToken, logFile string
	var headless bool
	var requestTimeout, syncInterval time.Duration
	var addressConcurrency, pageSize int

	fs.Var(&serverAddress, "a", "Control API net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Local SQLite DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&remoteKind, "remote", "", "Remote kind: http or postgres")
	fs.StringVar(&remoteAddress, "remote-address", "", "PostgREST base URL")
	fs.StringVar(&apiKey, "api-key", "", "PostgREST api key")
	fs.StringVar(&postgresDSN, "postgres-dsn", "", "Remote Postgres DSN")
	fs.StringVar(&geocoderAddress, "geocoder-address", "", "Reverse geocoder base URL")
	fs.StringVar(&accessToken, "token", "", "User access token")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")
	fs.BoolVar(&headless, "headless", false, "Run without the terminal dashboard")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	fs.IntVar(&addressConcurrency, "address-concurrency", 0, "Concurrent address resolutions")
	fs.IntVar(&pageSize, "page-size", 0, "Remote page size")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			AccessToken: accessToken,
			LogFile:     logFile,
			Headless:    headless,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			Kind:            remoteKind,
			HTTPAddress:     remoteAddress,
			APIKey:          apiKey,
			PostgresDSN:     postgresDSN,
			GeocoderAddress: geocoderAddress,
			RequestTimeout:  requestTimeout,
		},
		Workers: Workers{
			SyncInterval:       syncInterval,
			AddressConcurrency: addressConcurrency,
			PageSize:           pageSize,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
