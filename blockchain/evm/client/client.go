// Package client is the EVM blockchain client.
// Any reply from client is validated.
// Then the reply is converted into the internal data type.
package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/blocklords/ballot-token/app/log"
	"github.com/blocklords/ballot-token/blockchain/network"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	eth_common "github.com/ethereum/go-ethereum/common"
	eth_types "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the part of the node api used by the client.
// ethclient.Client implements it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

type Client struct {
	backend Backend
	logger  *log.Logger
	Network *network.Network
}

// New creates a network client connected to the blockchain.
// The client makes sure that the node is on the network with the configured chain id.
func New(ctx context.Context, n *network.Network, parent *log.Logger) (*Client, error) {
	logger := parent.Child("client", "chain_id", n.Id)
	logger.Info("connecting to the node", "provider", n.Provider.Redacted())

	backend, err := ethclient.DialContext(ctx, n.Provider.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to blockchain. please try again later: %w", n.Provider.RedactError(err))
	}

	c := NewWithBackend(backend, n, logger)
	if err := c.validateChainId(ctx); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

// NewWithBackend creates a client over the already connected backend.
// The errors of the backend never show the provider path.
func NewWithBackend(backend Backend, n *network.Network, logger *log.Logger) *Client {
	return &Client{
		backend: &redactedBackend{Backend: backend, provider: n.Provider},
		logger:  logger,
		Network: n,
	}
}

func (c *Client) validateChainId(ctx context.Context) error {
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("client.ChainID: %w", err)
	}
	if id.Cmp(c.Network.ChainId()) != 0 {
		return fmt.Errorf("the node is on the chain %s, but configured %d", id, c.Network.Id)
	}
	return nil
}

// Backend returns the node api used by the contract bindings
func (c *Client) Backend() Backend {
	return c.backend
}

// TransactionReceipt returns the receipt of the mined transaction.
func (c *Client) TransactionReceipt(ctx context.Context, hash eth_common.Hash) (*eth_types.Receipt, error) {
	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("client.TransactionReceipt(%s): %w", hash.Hex(), err)
	}

	return receipt, nil
}

// WaitMined waits until the transaction is mined and returns its receipt.
// The deadline of the context limits the waiting.
func (c *Client) WaitMined(ctx context.Context, tx *eth_types.Transaction) (*eth_types.Receipt, error) {
	c.logger.Debug("waiting for the transaction", "hash", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("bind.WaitMined(%s): %w", tx.Hash().Hex(), err)
	}

	c.logger.Debug("transaction mined", "hash", tx.Hash().Hex(), "block_number", receipt.BlockNumber)
	return receipt, nil
}

// Close the connection to the node
func (c *Client) Close() {
	c.backend.Close()
}
