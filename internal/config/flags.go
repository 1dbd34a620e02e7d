package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server command line.
//
// Flags:
//
//	-a, --address          HTTP server address in format [host]:[port]
//	    --grpc-address     gRPC health server address in format [host]:[port]
//	-d, --database-dsn     database DSN (postgres URL or sqlite file)
//	    --storage-driver   postgres | sqlite | mongo | memory
//	    --mongo-uri        MongoDB connection URI
//	    --mongo-database   MongoDB database name
//	-c, --config           JSON file path with configs
//	    --token-sign-key   bearer token signing key
//	    --token-issuer     bearer token issuer
//	    --request-timeout  request timeout (e.g. "30s")
//	    --kdf-workers      concurrent key derivations
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var (
		databaseDSN    string
		storageDriver  string
		mongoURI       string
		mongoDatabase  string
		jsonConfigPath string
		tokenSignKey   string
		tokenIssuer    string
		requestTimeout time.Duration
		kdfWorkers     int
	)

	fs := pflag.NewFlagSet("go-pass-locker", pflag.ContinueOnError)
	fs.VarP(&serverAddress, "address", "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVarP(&databaseDSN, "database-dsn", "d", "", "Database DSN")
	fs.StringVar(&storageDriver, "storage-driver", "", "Storage driver: postgres, sqlite, mongo, memory")
	fs.StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI")
	fs.StringVar(&mongoDatabase, "mongo-database", "", "MongoDB database name")
	fs.StringVarP(&jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&kdfWorkers, "kdf-workers", 0, "Concurrent key derivations")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Vault: Vault{
			KDFWorkers: kdfWorkers,
		},
		Storage: Storage{
			Driver: storageDriver,
			DB: DB{
				DSN: databaseDSN,
			},
			Mongo: Mongo{
				URI:      mongoURI,
				Database: mongoDatabase,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// Hosts other than "localhost" must be IP addresses.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
