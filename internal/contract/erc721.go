package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Method names of the deployed Stylus ERC-721 contract.
//
// Selectors:
//
//	approve(address,uint256)                  → 0x095ea7b3
//	balanceOf(address)                        → 0x70a08231
//	getApproved(uint256)                      → 0x081812fc
//	isApprovedForAll(address,address)         → 0xe985e9c5
//	name()                                    → 0x06fdde03
//	ownerOf(uint256)                          → 0x6352211e
//	safeMint(address,uint256)                 → 0xa1448194
//	safeTransferFrom(address,address,uint256) → 0x42842e0e
//	setApprovalForAll(address,bool)           → 0xa22cb465
//	symbol()                                  → 0x95d89b41
//	tokenUri(uint256)                         → 0x1675f455
//	transferFrom(address,address,uint256)     → 0x23b872dd
const (
	MethodApprove           = "approve"
	MethodBalanceOf         = "balanceOf"
	MethodGetApproved       = "getApproved"
	MethodIsApprovedForAll  = "isApprovedForAll"
	MethodName              = "name"
	MethodOwnerOf           = "ownerOf"
	MethodSafeMint          = "safeMint"
	MethodSafeTransferFrom  = "safeTransferFrom"
	MethodSetApprovalForAll = "setApprovalForAll"
	MethodSymbol            = "symbol"
	MethodTokenURI          = "tokenUri"
	MethodTransferFrom      = "transferFrom"
)

// Mutability is the stateMutability of an ABI function.
type Mutability string

const (
	View       Mutability = "view"
	NonPayable Mutability = "nonpayable"
)

// Param is one input or output of a function.
type Param struct {
	InternalType string `json:"internalType"`
	Name         string `json:"name"`
	Type         string `json:"type"`
}

// Function is one entry of the contract's ABI.
type Function struct {
	Inputs          []Param    `json:"inputs"`
	Name            string     `json:"name"`
	Outputs         []Param    `json:"outputs"`
	StateMutability Mutability `json:"stateMutability"`
	Type            string     `json:"type"`
}

// ReadOnly reports whether the function can be invoked with eth_call alone.
func (f Function) ReadOnly() bool {
	return f.StateMutability == View
}

func address(name string) Param { return Param{InternalType: "address", Name: name, Type: "address"} }
func uint256(name string) Param { return Param{InternalType: "uint256", Name: name, Type: "uint256"} }
func boolean(name string) Param { return Param{InternalType: "bool", Name: name, Type: "bool"} }
func str(name string) Param     { return Param{InternalType: "string", Name: name, Type: "string"} }

// ERC721 is the interface exported by the Stylus NFT contract, in ABI order.
var ERC721 = []Function{
	{
		Name: MethodApprove, Type: "function",
		Inputs:          []Param{address("to"), uint256("token_id")},
		Outputs:         []Param{},
		StateMutability: NonPayable,
	},
	{
		Name: MethodBalanceOf, Type: "function",
		Inputs:          []Param{address("owner")},
		Outputs:         []Param{uint256("")},
		StateMutability: View,
	},
	{
		Name: MethodGetApproved, Type: "function",
		Inputs:          []Param{uint256("token_id")},
		Outputs:         []Param{address("")},
		StateMutability: View,
	},
	{
		Name: MethodIsApprovedForAll, Type: "function",
		Inputs:          []Param{address("owner"), address("operator")},
		Outputs:         []Param{boolean("")},
		StateMutability: View,
	},
	{
		Name: MethodName, Type: "function",
		Inputs:          []Param{},
		Outputs:         []Param{str("")},
		StateMutability: View,
	},
	{
		Name: MethodOwnerOf, Type: "function",
		Inputs:          []Param{uint256("token_id")},
		Outputs:         []Param{address("")},
		StateMutability: View,
	},
	{
		Name: MethodSafeMint, Type: "function",
		Inputs:          []Param{address("to"), uint256("token_id")},
		Outputs:         []Param{},
		StateMutability: NonPayable,
	},
	{
		Name: MethodSafeTransferFrom, Type: "function",
		Inputs:          []Param{address("from"), address("to"), uint256("token_id")},
		Outputs:         []Param{},
		StateMutability: NonPayable,
	},
	{
		Name: MethodSetApprovalForAll, Type: "function",
		Inputs:          []Param{address("operator"), boolean("approved")},
		Outputs:         []Param{},
		StateMutability: NonPayable,
	},
	{
		Name: MethodSymbol, Type: "function",
		Inputs:          []Param{},
		Outputs:         []Param{str("")},
		StateMutability: View,
	},
	{
		Name: MethodTokenURI, Type: "function",
		Inputs:          []Param{uint256("token_id")},
		Outputs:         []Param{str("")},
		StateMutability: View,
	},
	{
		Name: MethodTransferFrom, Type: "function",
		Inputs:          []Param{address("from"), address("to"), uint256("token_id")},
		Outputs:         []Param{},
		StateMutability: NonPayable,
	},
}

// Lookup returns the table entry for a method name.
func Lookup(name string) (Function, bool) {
	for _, f := range ERC721 {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}

// JSON renders the table in the standard ABI JSON encoding.
func JSON() (string, error) {
	b, err := json.Marshal(ERC721)
	if err != nil {
		return "", fmt.Errorf("failed to encode ERC-721 ABI: %w", err)
	}
	return string(b), nil
}

// Parse returns the table as a go-ethereum ABI ready for packing calls.
func Parse() (abi.ABI, error) {
	raw, err := JSON()
	if err != nil {
		return abi.ABI{}, err
	}
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ERC-721 ABI: %w", err)
	}
	return parsed, nil
}
