package config

import (
	"errors"
	"flag"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-admin-key static operator secret for /admin endpoints
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-rate-limit-attempts failed attempts before lockout
//	-rate-limit-window lockout window (e.g., "15m")
//	-rate-limit-keys max license keys tracked by the failure table
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var adminKey string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var rateLimitAttempts int
	var rateLimitWindow time.Duration
	var rateLimitKeys int

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&adminKey, "admin-key", "", "Operator secret for admin endpoints")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&rateLimitAttempts, "rate-limit-attempts", 0, "Failed attempts before lockout")
	flag.DurationVar(&rateLimitWindow, "rate-limit-window", 0, "Lockout window (e.g., 15m)")
	flag.IntVar(&rateLimitKeys, "rate-limit-keys", 0, "Max license keys tracked by the failure table")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AdminKey: adminKey,
			RateLimit: RateLimit{
				MaxAttempts:    rateLimitAttempts,
				Window:         rateLimitWindow,
				MaxTrackedKeys: rateLimitKeys,
			},
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
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
