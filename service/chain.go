package service

import (
	"context"
	"fmt"
	"math/big"

	evm_abi "github.com/blocklords/ballot-token/blockchain/evm/abi"
	"github.com/blocklords/ballot-token/blockchain/evm/client"
	"github.com/blocklords/ballot-token/blockchain/evm/token"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Token is the contract binding used by the service.
// token.Contract implements it.
type Token interface {
	Name(ctx context.Context) (string, error)
	Symbol(ctx context.Context) (string, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	MinterRole(ctx context.Context) ([32]byte, error)
	HasRole(ctx context.Context, role [32]byte, account common.Address) (bool, error)
	WinningProposal(ctx context.Context) (*big.Int, error)
	WinnerName(ctx context.Context) ([32]byte, error)
	Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error)
	Vote(opts *bind.TransactOpts, proposal *big.Int, amount *big.Int) (*types.Transaction, error)
}

// Chain is the read-only chain client along with the contract bindings.
type Chain interface {
	// Token returns the binding of the contract at the address
	Token(address common.Address) Token
	// Deploy sends the transaction that creates a new contract
	Deploy(opts *bind.TransactOpts) (common.Address, *types.Transaction, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Signer is the server wallet.
// wallet.Wallet implements it.
type Signer interface {
	Address() common.Address
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
}

// evmChain binds the contract artifact to the client.
type evmChain struct {
	*client.Client
	artifact *evm_abi.Abi
}

// NewChain returns the Chain over the go-ethereum client.
// The artifact must have all methods that the token binding calls.
func NewChain(c *client.Client, artifact *evm_abi.Abi) (Chain, error) {
	if err := artifact.HasMethods(token.Methods...); err != nil {
		return nil, fmt.Errorf("artifact.HasMethods: %w", err)
	}

	return &evmChain{
		Client:   c,
		artifact: artifact,
	}, nil
}

func (chain *evmChain) Token(address common.Address) Token {
	return token.New(address, chain.artifact.Geth(), chain.Backend())
}

func (chain *evmChain) Deploy(opts *bind.TransactOpts) (common.Address, *types.Transaction, error) {
	address, tx, _, err := token.Deploy(opts, chain.artifact.Geth(), chain.artifact.Bytecode(), chain.Backend())
	if err != nil {
		return common.Address{}, nil, err
	}
	return address, tx, nil
}
