package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"github.com/stylus-nft/minter/internal/models"
	"github.com/stylus-nft/minter/pkg/validation"
)

const (
	// DefaultRPCURL is the Arbitrum Stylus testnet endpoint the minter talks to.
	DefaultRPCURL = "https://stylus-testnet.arbitrum.io/rpc"

	EnvPrivateKey      = "PRIVATE_KEY"
	EnvContractAddress = "CONTRACT_ADDRESS"
)

type Config struct {
	Development bool

	// Blockchain configuration
	RPCURL          string
	PrivateKey      string
	ContractAddress string

	// Timeout bounds the whole run. Zero means no deadline.
	Timeout time.Duration
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file if one exists. It does not validate; call Validate once all
// overrides are applied.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		RPCURL:          DefaultRPCURL,
		PrivateKey:      getEnv(EnvPrivateKey, ""),
		ContractAddress: getEnv(EnvContractAddress, ""),
	}
}

// Validate checks that all required configuration fields are properly set.
// Every failure is a models.ConfigurationError.
func (c *Config) Validate() error {
	if c.PrivateKey == "" {
		return configError(EnvPrivateKey, errors.New("PRIVATE_KEY is required"))
	}
	if err := validation.ValidatePrivateKey(c.PrivateKey); err != nil {
		return configError(EnvPrivateKey, err)
	}

	if c.ContractAddress == "" {
		return configError(EnvContractAddress, errors.New("CONTRACT_ADDRESS is required"))
	}
	if err := validation.ValidateAddress(c.ContractAddress); err != nil {
		return configError(EnvContractAddress, err)
	}

	if c.RPCURL == "" {
		return configError("rpc-url", errors.New("RPC URL is required"))
	}
	if c.Timeout < 0 {
		return configError("timeout", errors.New("timeout cannot be negative"))
	}

	return nil
}

// Contract returns the parsed contract address. Call Validate first.
func (c *Config) Contract() common.Address {
	return common.HexToAddress(strings.TrimSpace(c.ContractAddress))
}

func configError(op string, err error) error {
	return models.NewError(models.ConfigurationError, op, err)
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return defaultValue
}
