package models

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BlockchainService is an open session with a JSON-RPC node.
type BlockchainService interface {
	// ChainID returns the chain id reported by the node.
	ChainID(ctx context.Context) (*big.Int, error)
	// BindToken returns a handle for the token contract at address.
	// The address is not checked on-chain.
	BindToken(address common.Address) (TokenContract, error)
	Close()
}

// Dialer opens a BlockchainService for an RPC endpoint.
type Dialer func(ctx context.Context, rawURL string) (BlockchainService, error)

// Signer authorizes state-changing calls.
type Signer interface {
	Address() common.Address
	// TransactOpts returns fresh, signed transaction options bound to ctx.
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// TokenContract is the subset of the ERC-721 interface the workflow uses.
// View methods never need a signer; SafeMint blocks until the
// transaction is mined.
type TokenContract interface {
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Name(ctx context.Context) (string, error)
	Symbol(ctx context.Context) (string, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)

	SafeMint(ctx context.Context, signer Signer, to common.Address, tokenID *big.Int) (*types.Receipt, error)
}
