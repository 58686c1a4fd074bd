package signer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/stylus-nft/minter/internal/models"
	"github.com/stylus-nft/minter/pkg/validation"
)

// Signer is a secp256k1 account able to sign transactions for one chain.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
}

// ParsePrivateKey decodes a hex private key (with or without 0x) and derives its address.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, common.Address, error) {
	if err := validation.ValidatePrivateKey(hexKey); err != nil {
		return nil, common.Address{}, models.NewError(models.ConfigurationError, "PRIVATE_KEY", err)
	}
	hexKey = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"), "0X")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, common.Address{}, models.NewError(models.ConfigurationError, "PRIVATE_KEY", err)
	}
	return key, crypto.PubkeyToAddress(key.PublicKey), nil
}

// New loads a signer for chainID from a hex private key.
func New(hexKey string, chainID *big.Int) (*Signer, error) {
	if chainID == nil {
		return nil, errors.New("chain id is required")
	}
	key, address, err := ParsePrivateKey(hexKey)
	if err != nil {
		return nil, err
	}
	return &Signer{key: key, address: address, chainID: new(big.Int).Set(chainID)}, nil
}

func (s *Signer) Address() common.Address {
	return s.address
}

func (s *Signer) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// TransactOpts builds EIP-155 transaction options. Gas price, gas limit and
// nonce are left unset so the binding fills them from the node.
func (s *Signer) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}
