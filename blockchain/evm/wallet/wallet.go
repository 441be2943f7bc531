// Package wallet keeps the server account that signs the transactions.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet is the signing account bound to the chain.
// It's immutable after creation.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainId *big.Int
}

// New derives the account from the hex encoded private key.
// The key may have the 0x prefix.
func New(privateKey string, chainId *big.Int) (*Wallet, error) {
	if chainId == nil || chainId.Sign() <= 0 {
		return nil, fmt.Errorf("chain id should be a positive number")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"))
	if err != nil {
		// the error of crypto package could include the key
		return nil, fmt.Errorf("the private key is not a valid secp256k1 key")
	}

	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainId: new(big.Int).Set(chainId),
	}, nil
}

// Address of the account
func (w *Wallet) Address() common.Address {
	return w.address
}

// Transactor returns the options to sign the transaction on the chain.
// The context is used to send the transaction. Nonce and gas are
// calculated by the node when the transaction is sent.
func (w *Wallet) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, w.chainId)
	if err != nil {
		return nil, fmt.Errorf("bind.NewKeyedTransactorWithChainID: %w", err)
	}
	opts.Context = ctx

	return opts, nil
}
