package controller

import (
	"context"
	"math/big"

	"github.com/blocklords/ballot-token/service"

	"github.com/ethereum/go-ethereum/common"
)

// Service is the chain-call surface that the controller exposes over http.
// *service.Service implements it.
type Service interface {
	ContractAddress() string
	ServerWalletAddress() string
	TokenName(ctx context.Context) (string, error)
	TotalSupply(ctx context.Context) (string, error)
	TokenBalance(ctx context.Context, account common.Address) (string, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (string, error)
	CheckMinterRole(ctx context.Context, account common.Address) (string, error)
	MintTokens(ctx context.Context, to common.Address, amount *big.Int) (*service.MintResult, error)
	DeployToken(ctx context.Context) (*service.DeployResult, error)
	Vote(ctx context.Context, ballot common.Address, proposal *big.Int, amount *big.Int) (*service.VoteResult, error)
	Results(ctx context.Context, ballot common.Address) (string, error)
}
