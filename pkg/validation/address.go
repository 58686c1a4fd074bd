package validation

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidateAddress validates an Ethereum address (20 bytes, hex, optional 0x prefix)
func ValidateAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("address cannot be empty")
	}

	normalized := strip0x(addr)
	if len(normalized) != 2*common.AddressLength {
		return fmt.Errorf("invalid address length: expected %d characters (without 0x), got %d", 2*common.AddressLength, len(normalized))
	}
	if !common.IsHexAddress(addr) {
		return fmt.Errorf("invalid hex address: %q", addr)
	}

	return nil
}

// ValidatePrivateKey checks that key is a 32-byte secp256k1 scalar in hex
func ValidatePrivateKey(key string) error {
	if key == "" {
		return fmt.Errorf("private key cannot be empty")
	}

	normalized := strip0x(key)
	if len(normalized) != 64 {
		return fmt.Errorf("invalid private key length: expected 64 characters (without 0x), got %d", len(normalized))
	}
	if _, err := crypto.HexToECDSA(normalized); err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	return nil
}

func strip0x(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	return strings.TrimPrefix(s, "0X")
}
