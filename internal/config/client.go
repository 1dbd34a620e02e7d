package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ErrInvalidClientConfigs indicates a missing server address or token.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// ClientConfig configures the command line vault client.
type ClientConfig struct {
	// Address is the vault server base URL or host:port.
	//
	// Env: PASSLOCKER_ADDRESS
	Address string `env:"ADDRESS"`

	// Token is the bearer token issued by the identity provider.
	//
	// Env: PASSLOCKER_TOKEN
	Token string `env:"TOKEN"`

	// MasterPassword unlocks records. It is only read from the environment
	// so it does not end up in shell history.
	//
	// Env: PASSLOCKER_MASTER_PASSWORD
	MasterPassword string `env:"MASTER_PASSWORD"`

	// AccountPassword is the secret stored by add and update. When it is
	// empty the client reads it from stdin.
	//
	// Env: PASSLOCKER_ACCOUNT_PASSWORD
	AccountPassword string `env:"ACCOUNT_PASSWORD"`

	// RequestTimeout bounds a single API call, retries included.
	//
	// Env: PASSLOCKER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryAttempts is how often a 503 answer is retried.
	//
	// Env: PASSLOCKER_RETRY_ATTEMPTS
	RetryAttempts int `env:"RETRY_ATTEMPTS"`
}

type clientEnv struct {
	Client ClientConfig `envPrefix:"PASSLOCKER_"`
}

// GetClientConfig reads the client configuration from the environment and
// the command line and returns it with the remaining positional arguments.
// Flags take precedence over environment variables.
//
// Flags:
//
//	-a, --address          vault server address
//	-t, --token            bearer token
//	    --request-timeout  request timeout (e.g. "30s")
//	    --retries          retries of 503 answers
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	var envCfg clientEnv
	if err := parseEnv(&envCfg); err != nil {
		return nil, nil, err
	}
	cfg := envCfg.Client

	fs := pflag.NewFlagSet("go-pass-locker-client", pflag.ContinueOnError)
	address := fs.StringP("address", "a", "", "Vault server address")
	token := fs.StringP("token", "t", "", "Bearer token")
	requestTimeout := fs.Duration("request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	retries := fs.Int("retries", 0, "Retries of 503 answers")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if fs.Changed("address") {
		cfg.Address = *address
	}
	if fs.Changed("token") {
		cfg.Token = *token
	}
	if fs.Changed("request-timeout") {
		cfg.RequestTimeout = *requestTimeout
	}
	if fs.Changed("retries") {
		cfg.RetryAttempts = *retries
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.RetryAttempts < 0 {
		cfg.RetryAttempts = 0
	}

	if cfg.Address == "" || cfg.Token == "" {
		return nil, nil, ErrInvalidClientConfigs
	}

	return &cfg, fs.Args(), nil
}
