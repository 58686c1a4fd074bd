package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/stylus-nft/minter/internal/contract"
	"github.com/stylus-nft/minter/internal/models"
	"github.com/stylus-nft/minter/pkg/logger"
)

// ErrReverted is returned when a mined transaction has a failed status.
var ErrReverted = errors.New("transaction reverted")

// Token is a bound ERC-721 contract.
type Token struct {
	logger   *logger.Logger
	contract *bind.BoundContract
	backend  bind.DeployBackend
}

func (t *Token) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	results := []interface{}{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &results, method, params...); err != nil {
		return nil, models.NewError(models.ContractCallError, method,
			fmt.Errorf("failed to call %s: %w", method, err))
	}
	if len(results) == 0 {
		return nil, models.NewError(models.ContractCallError, method,
			fmt.Errorf("%s returned no values", method))
	}
	return results, nil
}

func (t *Token) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	out, err := t.call(ctx, contract.MethodOwnerOf, tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := t.call(ctx, contract.MethodBalanceOf, owner)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (t *Token) Name(ctx context.Context) (string, error) {
	return t.callString(ctx, contract.MethodName)
}

func (t *Token) Symbol(ctx context.Context) (string, error) {
	return t.callString(ctx, contract.MethodSymbol)
}

func (t *Token) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	return t.callString(ctx, contract.MethodTokenURI, tokenID)
}

func (t *Token) callString(ctx context.Context, method string, params ...interface{}) (string, error) {
	out, err := t.call(ctx, method, params...)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// SafeMint submits safeMint(to, tokenID) signed by signer and waits until it
// is mined. It is submitted once; a failed receipt is a TransactionError.
func (t *Token) SafeMint(ctx context.Context, signer models.Signer, to common.Address, tokenID *big.Int) (*types.Receipt, error) {
	opts, err := signer.TransactOpts(ctx)
	if err != nil {
		return nil, models.NewError(models.TransactionError, contract.MethodSafeMint, err)
	}

	tx, err := t.contract.Transact(opts, contract.MethodSafeMint, to, tokenID)
	if err != nil {
		return nil, models.NewError(models.TransactionError, contract.MethodSafeMint,
			fmt.Errorf("failed to send transaction: %w", err))
	}
	t.logger.Info("Mint transaction sent", "tx", tx.Hash().Hex(), "nonce", tx.Nonce(), "to", to.Hex(), "tokenId", tokenID)

	receipt, err := bind.WaitMined(ctx, t.backend, tx)
	if err != nil {
		return nil, models.NewError(models.TransactionError, contract.MethodSafeMint,
			fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, models.NewError(models.TransactionError, contract.MethodSafeMint,
			fmt.Errorf("%w: %s in block %v", ErrReverted, tx.Hash().Hex(), receipt.BlockNumber))
	}
	return receipt, nil
}
