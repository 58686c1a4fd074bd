package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/stylus-nft/minter/internal/contract"
	"github.com/stylus-nft/minter/internal/models"
	"github.com/stylus-nft/minter/pkg/logger"
)

// Ethereum is a session with an Ethereum-compatible JSON-RPC node.
type Ethereum struct {
	logger *logger.Logger
	apiURL string
	client *ethclient.Client
}

// Dial connects to apiURL. For HTTP endpoints no request is made until the
// first call, so a dead node surfaces on ChainID rather than here.
func Dial(ctx context.Context, apiURL string, logger *logger.Logger) (*Ethereum, error) {
	client, err := ethclient.DialContext(ctx, apiURL)
	if err != nil {
		return nil, models.NewError(models.ConnectivityError, "dial",
			fmt.Errorf("failed to connect to the RPC server: %w", err))
	}
	logger.Debug("Connected to RPC", "url", apiURL)
	return &Ethereum{apiURL: apiURL, logger: logger, client: client}, nil
}

// NewDialer adapts Dial to models.Dialer.
func NewDialer(logger *logger.Logger) models.Dialer {
	return func(ctx context.Context, rawURL string) (models.BlockchainService, error) {
		eth, err := Dial(ctx, rawURL, logger)
		if err != nil {
			return nil, err
		}
		return eth, nil
	}
}

func (e *Ethereum) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := e.client.ChainID(ctx)
	if err != nil {
		return nil, models.NewError(models.ConnectivityError, "eth_chainId",
			fmt.Errorf("failed to get chain id from %s: %w", e.apiURL, err))
	}
	return id, nil
}

// BindToken builds the ERC-721 binding for address.
func (e *Ethereum) BindToken(address common.Address) (models.TokenContract, error) {
	parsedABI, err := contract.Parse()
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(address, parsedABI, e.client, e.client, e.client)
	return &Token{
		logger:   e.logger.With("contract", address.Hex()),
		contract: bound,
		backend:  e.client,
	}, nil
}

func (e *Ethereum) Close() {
	if e.client != nil {
		e.client.Close()
	}
}
