package client

import (
	"context"
	"math/big"

	"github.com/blocklords/ballot-token/blockchain/network/provider"

	"github.com/ethereum/go-ethereum"
	eth_common "github.com/ethereum/go-ethereum/common"
	eth_types "github.com/ethereum/go-ethereum/core/types"
)

// redactedBackend hides the provider url in the errors of the node.
// The contract bindings call the node through it as well.
type redactedBackend struct {
	Backend
	provider provider.Provider
}

func (b *redactedBackend) CodeAt(ctx context.Context, contract eth_common.Address, blockNumber *big.Int) ([]byte, error) {
	code, err := b.Backend.CodeAt(ctx, contract, blockNumber)
	return code, b.provider.RedactError(err)
}

func (b *redactedBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	out, err := b.Backend.CallContract(ctx, call, blockNumber)
	return out, b.provider.RedactError(err)
}

func (b *redactedBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*eth_types.Header, error) {
	header, err := b.Backend.HeaderByNumber(ctx, number)
	return header, b.provider.RedactError(err)
}

func (b *redactedBackend) PendingCodeAt(ctx context.Context, account eth_common.Address) ([]byte, error) {
	code, err := b.Backend.PendingCodeAt(ctx, account)
	return code, b.provider.RedactError(err)
}

func (b *redactedBackend) PendingNonceAt(ctx context.Context, account eth_common.Address) (uint64, error) {
	nonce, err := b.Backend.PendingNonceAt(ctx, account)
	return nonce, b.provider.RedactError(err)
}

func (b *redactedBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := b.Backend.SuggestGasPrice(ctx)
	return price, b.provider.RedactError(err)
}

func (b *redactedBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	tip, err := b.Backend.SuggestGasTipCap(ctx)
	return tip, b.provider.RedactError(err)
}

func (b *redactedBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	gas, err := b.Backend.EstimateGas(ctx, call)
	return gas, b.provider.RedactError(err)
}

func (b *redactedBackend) SendTransaction(ctx context.Context, tx *eth_types.Transaction) error {
	return b.provider.RedactError(b.Backend.SendTransaction(ctx, tx))
}

func (b *redactedBackend) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]eth_types.Log, error) {
	logs, err := b.Backend.FilterLogs(ctx, query)
	return logs, b.provider.RedactError(err)
}

func (b *redactedBackend) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- eth_types.Log) (ethereum.Subscription, error) {
	sub, err := b.Backend.SubscribeFilterLogs(ctx, query, ch)
	return sub, b.provider.RedactError(err)
}

func (b *redactedBackend) TransactionReceipt(ctx context.Context, txHash eth_common.Hash) (*eth_types.Receipt, error) {
	receipt, err := b.Backend.TransactionReceipt(ctx, txHash)
	return receipt, b.provider.RedactError(err)
}

func (b *redactedBackend) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := b.Backend.ChainID(ctx)
	return id, b.provider.RedactError(err)
}
