package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token is a read-only snapshot of an ERC-721 contract as seen by a signer.
type Token struct {
	// Address is the contract address of the token
	Address common.Address `json:"address"`
	// Name is the collection name returned by name()
	Name string `json:"name"`
	// Symbol is the short symbol returned by symbol()
	Symbol string `json:"symbol"`
	// TokenURI is tokenUri() of the inspected token id
	TokenURI string `json:"token_uri"`
	// Holder is the account whose balance was read
	Holder common.Address `json:"holder"`
	// Balance is balanceOf(Holder)
	Balance *big.Int `json:"balance"`
}
