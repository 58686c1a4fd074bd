package minter

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylus-nft/minter/internal/config"
	"github.com/stylus-nft/minter/internal/models"
	"github.com/stylus-nft/minter/pkg/logger"
)

const (
	testKey      = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)

var (
	firstOwner = common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	signerAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

// fakeLedger is an in-memory node and ERC-721 contract. It records every
// call in order.
type fakeLedger struct {
	calls []string

	owners map[string]common.Address

	dialErr   error
	chainErr  error
	mintErr   error
	blockMint bool
	boundTo   common.Address
	closed    bool
	mintedBy  common.Address
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{owners: map[string]common.Address{"0": firstOwner}}
}

func (f *fakeLedger) dial(ctx context.Context, rawURL string) (models.BlockchainService, error) {
	f.calls = append(f.calls, "dial")
	if f.dialErr != nil {
		return nil, f.dialErr
	}
	return f, nil
}

func (f *fakeLedger) ChainID(ctx context.Context) (*big.Int, error) {
	f.calls = append(f.calls, "chainId")
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return big.NewInt(23011), nil
}

func (f *fakeLedger) BindToken(address common.Address) (models.TokenContract, error) {
	f.calls = append(f.calls, "bind")
	f.boundTo = address
	return f, nil
}

func (f *fakeLedger) Close() {
	f.closed = true
}

func (f *fakeLedger) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	f.calls = append(f.calls, "ownerOf")
	owner, ok := f.owners[tokenID.String()]
	if !ok {
		return common.Address{}, models.NewError(models.ContractCallError, "ownerOf", errors.New("execution reverted"))
	}
	return owner, nil
}

func (f *fakeLedger) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	f.calls = append(f.calls, "balanceOf")
	n := int64(0)
	for _, o := range f.owners {
		if o == owner {
			n++
		}
	}
	return big.NewInt(n), nil
}

func (f *fakeLedger) Name(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "name")
	return "Test NFT", nil
}

func (f *fakeLedger) Symbol(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "symbol")
	return "TEST", nil
}

func (f *fakeLedger) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	f.calls = append(f.calls, "tokenUri")
	return "https://example.com/" + tokenID.String(), nil
}

func (f *fakeLedger) SafeMint(ctx context.Context, signer models.Signer, to common.Address, tokenID *big.Int) (*types.Receipt, error) {
	f.calls = append(f.calls, "safeMint")
	if f.blockMint {
		<-ctx.Done()
		return nil, models.NewError(models.TransactionError, "safeMint", ctx.Err())
	}
	if f.mintErr != nil {
		return nil, f.mintErr
	}
	f.mintedBy = signer.Address()
	f.owners[tokenID.String()] = to
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      common.HexToHash("0x01"),
		BlockNumber: big.NewInt(7),
		GasUsed:     90000,
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		RPCURL:          config.DefaultRPCURL,
		PrivateKey:      testKey,
		ContractAddress: testContract,
	}
}

func newTestMinter(cfg *config.Config, ledger *fakeLedger) (*Minter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewMinter(cfg, ledger.dial, out, logger.NewNop()), out
}

func TestRunHappyPath(t *testing.T) {
	ledger := newFakeLedger()
	m, out := newTestMinter(testConfig(), ledger)

	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, []string{
		"Owner Address: " + firstOwner.Hex(),
		"Minting...",
		"New Owner Address: " + signerAddr.Hex(),
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))

	assert.Equal(t, signerAddr, ledger.mintedBy)
	assert.Equal(t, common.HexToAddress(testContract), ledger.boundTo)
	assert.True(t, ledger.closed)
}

func TestRunCallOrder(t *testing.T) {
	ledger := newFakeLedger()
	m, _ := newTestMinter(testConfig(), ledger)

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, []string{"dial", "chainId", "bind", "ownerOf", "safeMint", "ownerOf"}, ledger.calls)
}

func TestRunMissingConfigMakesNoNetworkCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"no private key", func(c *config.Config) { c.PrivateKey = "" }},
		{"no contract address", func(c *config.Config) { c.ContractAddress = "" }},
		{"malformed private key", func(c *config.Config) { c.PrivateKey = "0x1234" }},
		{"malformed contract address", func(c *config.Config) { c.ContractAddress = "contract" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			ledger := newFakeLedger()
			m, out := newTestMinter(cfg, ledger)

			err := m.Run(context.Background())
			require.Error(t, err)
			assert.True(t, models.IsKind(err, models.ConfigurationError), err)
			assert.Empty(t, ledger.calls)
			assert.Empty(t, out.String())
		})
	}
}

func TestRunMintRevertSkipsPostRead(t *testing.T) {
	ledger := newFakeLedger()
	ledger.mintErr = models.NewError(models.TransactionError, "safeMint", errors.New("transaction reverted"))
	m, out := newTestMinter(testConfig(), ledger)

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.TransactionError))

	assert.Equal(t, []string{"dial", "chainId", "bind", "ownerOf", "safeMint"}, ledger.calls)
	assert.NotContains(t, out.String(), "New Owner Address")
	assert.Equal(t, firstOwner, ledger.owners["0"])
	assert.True(t, ledger.closed)
}

func TestRunConnectivityFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.chainErr = models.NewError(models.ConnectivityError, "eth_chainId", errors.New("connection refused"))
	m, out := newTestMinter(testConfig(), ledger)

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ConnectivityError))
	assert.Equal(t, []string{"dial", "chainId"}, ledger.calls)
	assert.True(t, ledger.closed)
	assert.Empty(t, out.String())
}

func TestRunDialFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.dialErr = models.NewError(models.ConnectivityError, "dial", errors.New("no known transport"))
	m, _ := newTestMinter(testConfig(), ledger)

	err := m.Run(context.Background())
	assert.True(t, models.IsKind(err, models.ConnectivityError))
	assert.Equal(t, []string{"dial"}, ledger.calls)
	assert.False(t, ledger.closed)
}

func TestRunPreReadFailureStopsBeforeMint(t *testing.T) {
	ledger := newFakeLedger()
	delete(ledger.owners, "0")
	m, out := newTestMinter(testConfig(), ledger)

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ContractCallError))
	assert.Equal(t, []string{"dial", "chainId", "bind", "ownerOf"}, ledger.calls)
	assert.NotContains(t, out.String(), "Minting...")
}

func TestRunTimeout(t *testing.T) {
	ledger := newFakeLedger()
	ledger.blockMint = true
	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	m, _ := newTestMinter(cfg, ledger)

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, models.IsKind(err, models.TransactionError))
}

func TestInspect(t *testing.T) {
	ledger := newFakeLedger()
	ledger.owners["0"] = signerAddr
	m, out := newTestMinter(testConfig(), ledger)

	summary, err := m.Inspect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test NFT", summary.Name)
	assert.Equal(t, "TEST", summary.Symbol)
	assert.Equal(t, "https://example.com/0", summary.TokenURI)
	assert.Equal(t, int64(1), summary.Balance.Int64())
	assert.Equal(t, signerAddr, summary.Holder)
	assert.Equal(t, common.HexToAddress(testContract), summary.Address)

	assert.NotContains(t, ledger.calls, "safeMint")
	assert.Contains(t, out.String(), "Name: Test NFT")
	assert.Contains(t, out.String(), "Symbol: TEST")
}

func TestTokenIDIsZero(t *testing.T) {
	assert.Equal(t, int64(0), TokenID().Int64())
	TokenID().SetInt64(5)
	assert.Equal(t, int64(0), TokenID().Int64())
}
