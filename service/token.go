package service

import (
	"context"
	"fmt"

	"github.com/blocklords/ballot-token/blockchain/evm/util"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Receipt statuses
const (
	SUCCESS  = "success"
	REVERTED = "reverted"
)

// ContractAddress is the configured token address.
// Doesn't call the blockchain.
func (s *Service) ContractAddress() string {
	return s.tokenAddress.Hex()
}

// ServerWalletAddress is the account that signs the transactions.
// Doesn't call the blockchain.
func (s *Service) ServerWalletAddress() string {
	return s.wallet.Address().Hex()
}

// TokenName returns the name of the token
func (s *Service) TokenName(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	name, err := s.token().Name(ctx)
	if err != nil {
		return "", s.observe("TokenName", fmt.Errorf("token.Name: %w", err))
	}

	s.observe("TokenName", nil)
	return name, nil
}

// TotalSupply returns the supply in ether units along with the symbol: "1 MTK"
func (s *Service) TotalSupply(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	t := s.token()
	symbol, err := t.Symbol(ctx)
	if err != nil {
		return "", s.observe("TotalSupply", fmt.Errorf("token.Symbol: %w", err))
	}
	supply, err := t.TotalSupply(ctx)
	if err != nil {
		return "", s.observe("TotalSupply", fmt.Errorf("token.TotalSupply: %w", err))
	}

	s.observe("TotalSupply", nil)
	return util.FormatEther(supply) + " " + symbol, nil
}

// TokenBalance returns the balance of the account in ether units along with the symbol: "0.5 MTK"
func (s *Service) TokenBalance(ctx context.Context, account common.Address) (string, error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	t := s.token()
	symbol, err := t.Symbol(ctx)
	if err != nil {
		return "", s.observe("TokenBalance", fmt.Errorf("token.Symbol: %w", err))
	}
	balance, err := t.BalanceOf(ctx, account)
	if err != nil {
		return "", s.observe("TokenBalance", fmt.Errorf("token.BalanceOf(%s): %w", account.Hex(), err))
	}

	s.observe("TokenBalance", nil)
	return util.FormatEther(balance) + " " + symbol, nil
}

// TransactionReceipt returns the status and the block of the mined transaction.
func (s *Service) TransactionReceipt(ctx context.Context, hash common.Hash) (string, error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	receipt, err := s.chain.TransactionReceipt(ctx, hash)
	if err != nil {
		return "", s.observe("TransactionReceipt", err)
	}

	s.observe("TransactionReceipt", nil)
	return fmt.Sprintf("Transaction status: %s, Block number %s", receiptStatus(receipt), receipt.BlockNumber), nil
}

// CheckMinterRole returns the sentence whether the account can mint the tokens or not.
func (s *Service) CheckMinterRole(ctx context.Context, account common.Address) (string, error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	t := s.token()
	role, err := t.MinterRole(ctx)
	if err != nil {
		return "", s.observe("CheckMinterRole", fmt.Errorf("token.MinterRole: %w", err))
	}
	hasRole, err := t.HasRole(ctx, role, account)
	if err != nil {
		return "", s.observe("CheckMinterRole", fmt.Errorf("token.HasRole: %w", err))
	}

	s.observe("CheckMinterRole", nil)
	verb := "does not have"
	if hasRole {
		verb = "has"
	}
	return fmt.Sprintf("The address %s: %s the role %s", account.Hex(), verb, hexutil.Encode(role[:])), nil
}

func receiptStatus(receipt *types.Receipt) string {
	if receipt.Status == types.ReceiptStatusSuccessful {
		return SUCCESS
	}
	return REVERTED
}
