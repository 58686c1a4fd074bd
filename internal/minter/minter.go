package minter

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/stylus-nft/minter/internal/config"
	"github.com/stylus-nft/minter/internal/models"
	"github.com/stylus-nft/minter/internal/signer"
	"github.com/stylus-nft/minter/pkg/logger"
)

// tokenID is the only token this program ever mints.
const tokenID = 0

// TokenID returns the id of the minted token.
func TokenID() *big.Int {
	return big.NewInt(tokenID)
}

// Minter runs the mint workflow against one contract:
// connect, load signer, bind, read owner, mint, read owner again.
// Any failing step ends the run; nothing is retried.
type Minter struct {
	logger *logger.Logger
	config *config.Config

	dial models.Dialer
	out  io.Writer
}

// NewMinter creates a Minter. Result lines are written to out.
func NewMinter(cfg *config.Config, dial models.Dialer, out io.Writer, logger *logger.Logger) *Minter {
	return &Minter{
		config: cfg,
		dial:   dial,
		out:    out,
		logger: logger,
	}
}

// session holds everything a workflow needs once setup has succeeded.
type session struct {
	service models.BlockchainService
	signer  *signer.Signer
	token   models.TokenContract
}

func (s *session) Close() {
	s.service.Close()
}

// open validates the configuration, then connects, loads the signer and
// binds the contract. Configuration errors are returned before dialing.
func (m *Minter) open(ctx context.Context) (*session, error) {
	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	service, err := m.dial(ctx, m.config.RPCURL)
	if err != nil {
		return nil, err
	}

	chainID, err := service.ChainID(ctx)
	if err != nil {
		service.Close()
		return nil, err
	}
	m.logger.Info("Connected to RPC", "url", m.config.RPCURL, "chainId", chainID)

	s, err := signer.New(m.config.PrivateKey, chainID)
	if err != nil {
		service.Close()
		return nil, err
	}
	m.logger.Info("Signer loaded", "address", s.Address().Hex(), "chainId", s.ChainID())

	token, err := service.BindToken(m.config.Contract())
	if err != nil {
		service.Close()
		return nil, err
	}
	m.logger.Debug("Contract bound", "address", m.config.Contract().Hex())

	return &session{service: service, signer: s, token: token}, nil
}

func (m *Minter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.config.Timeout > 0 {
		return context.WithTimeout(ctx, m.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// Run executes the mint workflow once.
func (m *Minter) Run(ctx context.Context) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	s, err := m.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	owner, err := s.token.OwnerOf(ctx, TokenID())
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Owner Address:", owner.Hex())

	fmt.Fprintln(m.out, "Minting...")
	receipt, err := s.token.SafeMint(ctx, s.signer, s.signer.Address(), TokenID())
	if err != nil {
		return err
	}
	m.logger.Info("Mint transaction mined",
		"tx", receipt.TxHash.Hex(),
		"block", receipt.BlockNumber,
		"gasUsed", receipt.GasUsed)

	newOwner, err := s.token.OwnerOf(ctx, TokenID())
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "New Owner Address:", newOwner.Hex())

	if newOwner != s.signer.Address() {
		m.logger.Warn("Token owner differs from minter after mint", "owner", newOwner.Hex(), "signer", s.signer.Address().Hex())
	}
	return nil
}

// Inspect reads name, symbol, the token URI of the minted token id and the
// signer's balance. It never sends a transaction.
func (m *Minter) Inspect(ctx context.Context) (*models.Token, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	s, err := m.open(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	summary := &models.Token{Address: m.config.Contract(), Holder: s.signer.Address()}
	if summary.Name, err = s.token.Name(ctx); err != nil {
		return nil, err
	}
	if summary.Symbol, err = s.token.Symbol(ctx); err != nil {
		return nil, err
	}
	if summary.TokenURI, err = s.token.TokenURI(ctx, TokenID()); err != nil {
		return nil, err
	}
	if summary.Balance, err = s.token.BalanceOf(ctx, s.signer.Address()); err != nil {
		return nil, err
	}

	fmt.Fprintln(m.out, "Contract:", summary.Address.Hex())
	fmt.Fprintln(m.out, "Name:", summary.Name)
	fmt.Fprintln(m.out, "Symbol:", summary.Symbol)
	fmt.Fprintf(m.out, "Token URI (%d): %s\n", tokenID, summary.TokenURI)
	fmt.Fprintf(m.out, "Balance of %s: %s\n", summary.Holder.Hex(), summary.Balance)
	return summary, nil
}
