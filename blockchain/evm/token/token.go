// Package token contains the go-ethereum wrappers for the MyToken contract:
// an ERC20 token with the access roles and the voting extension.
//
// Reader calls the view methods only. Contract adds the methods that
// send the transactions.
package token

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Methods that the contract artifact must have for the bindings.
var Methods = []string{
	"name",
	"symbol",
	"totalSupply",
	"balanceOf",
	"MINTER_ROLE",
	"hasRole",
	"winningProposal",
	"winnerName",
	"mint",
	"vote",
}

// Reader implements the view methods of the contract.
type Reader struct {
	address  common.Address
	contract *bind.BoundContract
}

// Contract implements all methods of the contract.
type Contract struct {
	Reader
}

// NewReader creates an instance of Reader using the given caller.
func NewReader(address common.Address, contractAbi abi.ABI, caller bind.ContractCaller) *Reader {
	return &Reader{
		address:  address,
		contract: bind.NewBoundContract(address, contractAbi, caller, nil, nil),
	}
}

// New creates an instance of Contract using the given backend.
func New(address common.Address, contractAbi abi.ABI, backend bind.ContractBackend) *Contract {
	return &Contract{
		Reader: Reader{
			address:  address,
			contract: bind.NewBoundContract(address, contractAbi, backend, backend, backend),
		},
	}
}

// Deploy sends the contract creation transaction.
// The returned contract is usable once the transaction is mined.
func Deploy(opts *bind.TransactOpts, contractAbi abi.ABI, bytecode []byte, backend bind.ContractBackend) (common.Address, *types.Transaction, *Contract, error) {
	if len(bytecode) == 0 {
		return common.Address{}, nil, nil, fmt.Errorf("no bytecode to deploy")
	}
	address, tx, contract, err := bind.DeployContract(opts, contractAbi, bytecode, backend)
	if err != nil {
		return common.Address{}, nil, nil, fmt.Errorf("bind.DeployContract: %w", err)
	}

	return address, tx, &Contract{Reader{address: address, contract: contract}}, nil
}

// Address of the contract
func (r *Reader) Address() common.Address {
	return r.address
}

// call invokes the view method and returns the first output.
func (r *Reader) call(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no output", method)
	}

	return out[0], nil
}

// Name of the token
func (r *Reader) Name(ctx context.Context) (string, error) {
	out, err := r.call(ctx, "name")
	if err != nil {
		return "", err
	}

	return *abi.ConvertType(out, new(string)).(*string), nil
}

// Symbol of the token
func (r *Reader) Symbol(ctx context.Context) (string, error) {
	out, err := r.call(ctx, "symbol")
	if err != nil {
		return "", err
	}

	return *abi.ConvertType(out, new(string)).(*string), nil
}

// TotalSupply in the smallest units of the token
func (r *Reader) TotalSupply(ctx context.Context) (*big.Int, error) {
	out, err := r.call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(out, new(*big.Int)).(**big.Int), nil
}

// BalanceOf the account in the smallest units of the token
func (r *Reader) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := r.call(ctx, "balanceOf", account)
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(out, new(*big.Int)).(**big.Int), nil
}

// MinterRole is the id of the role that is allowed to mint the tokens
func (r *Reader) MinterRole(ctx context.Context) ([32]byte, error) {
	out, err := r.call(ctx, "MINTER_ROLE")
	if err != nil {
		return [32]byte{}, err
	}

	return *abi.ConvertType(out, new([32]byte)).(*[32]byte), nil
}

// HasRole returns true if the account was granted the role
func (r *Reader) HasRole(ctx context.Context, role [32]byte, account common.Address) (bool, error) {
	out, err := r.call(ctx, "hasRole", role, account)
	if err != nil {
		return false, err
	}

	return *abi.ConvertType(out, new(bool)).(*bool), nil
}

// WinningProposal is the index of the proposal with the most votes
func (r *Reader) WinningProposal(ctx context.Context) (*big.Int, error) {
	out, err := r.call(ctx, "winningProposal")
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(out, new(*big.Int)).(**big.Int), nil
}

// WinnerName is the name of the winning proposal, encoded as bytes32
func (r *Reader) WinnerName(ctx context.Context) ([32]byte, error) {
	out, err := r.call(ctx, "winnerName")
	if err != nil {
		return [32]byte{}, err
	}

	return *abi.ConvertType(out, new([32]byte)).(*[32]byte), nil
}

// Mint sends the transaction that creates the amount of tokens for the account.
// The sender must have the minter role.
func (c *Contract) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	tx, err := c.contract.Transact(opts, "mint", to, amount)
	if err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}
	return tx, nil
}

// Vote sends the transaction that votes for the proposal with the amount of voting power.
func (c *Contract) Vote(opts *bind.TransactOpts, proposal *big.Int, amount *big.Int) (*types.Transaction, error) {
	tx, err := c.contract.Transact(opts, "vote", proposal, amount)
	if err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}
	return tx, nil
}
