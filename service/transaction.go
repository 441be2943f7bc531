package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MintResult is the reply of the minting.
type MintResult struct {
	Result string `json:"result"` // status of the receipt
	Hash   string `json:"hash"`
}

// DeployResult is the reply of the deployment.
type DeployResult struct {
	Result  string `json:"result"` // status of the receipt
	Hash    string `json:"hash"`
	Address string `json:"address"`
}

// VoteResult is the reply of the vote.
// The transaction is not awaited, use TransactionReceipt to get its status.
type VoteResult struct {
	Hash string `json:"hash"`
}

// MintTokens sends the transaction that mints the tokens to the account,
// then waits for its receipt. If amount is nil, then the configured amount is minted.
func (s *Service) MintTokens(ctx context.Context, to common.Address, amount *big.Int) (*MintResult, error) {
	if amount == nil {
		amount = s.mintAmount
	}
	if amount.Sign() <= 0 {
		return nil, errors.New("amount to mint should be positive")
	}

	sendCtx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	opts, err := s.wallet.Transactor(sendCtx)
	if err != nil {
		return nil, s.observe("MintTokens", fmt.Errorf("wallet.Transactor: %w", err))
	}
	tx, err := s.token().Mint(opts, to, amount)
	if err != nil {
		return nil, s.observe("MintTokens", fmt.Errorf("token.Mint: %w", err))
	}
	s.logger.Info("mint transaction sent", "hash", tx.Hash().Hex(), "to", to.Hex(), "amount", amount.String())

	waitCtx, cancelWait := withTimeout(ctx, s.receiptTimeout)
	defer cancelWait()

	receipt, err := s.chain.WaitMined(waitCtx, tx)
	if err != nil {
		return nil, s.observe("MintTokens", err)
	}

	s.observe("MintTokens", nil)
	return &MintResult{
		Result: receiptStatus(receipt),
		Hash:   tx.Hash().Hex(),
	}, nil
}

// DeployToken deploys a new instance of the token contract from the artifact,
// then waits for its receipt.
func (s *Service) DeployToken(ctx context.Context) (*DeployResult, error) {
	sendCtx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	opts, err := s.wallet.Transactor(sendCtx)
	if err != nil {
		return nil, s.observe("DeployToken", fmt.Errorf("wallet.Transactor: %w", err))
	}
	address, tx, err := s.chain.Deploy(opts)
	if err != nil {
		return nil, s.observe("DeployToken", fmt.Errorf("chain.Deploy: %w", err))
	}
	s.logger.Info("deploy transaction sent", "hash", tx.Hash().Hex(), "address", address.Hex())

	waitCtx, cancelWait := withTimeout(ctx, s.receiptTimeout)
	defer cancelWait()

	receipt, err := s.chain.WaitMined(waitCtx, tx)
	if err != nil {
		return nil, s.observe("DeployToken", err)
	}

	s.observe("DeployToken", nil)
	return &DeployResult{
		Result:  receiptStatus(receipt),
		Hash:    tx.Hash().Hex(),
		Address: address.Hex(),
	}, nil
}

// Vote sends the vote transaction to the ballot contract.
// Doesn't wait for the receipt.
func (s *Service) Vote(ctx context.Context, ballot common.Address, proposal *big.Int, amount *big.Int) (*VoteResult, error) {
	if proposal == nil || proposal.Sign() < 0 {
		return nil, errors.New("proposal index should be a non negative number")
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, errors.New("voting amount should be a non negative number")
	}

	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	opts, err := s.wallet.Transactor(ctx)
	if err != nil {
		return nil, s.observe("Vote", fmt.Errorf("wallet.Transactor: %w", err))
	}
	tx, err := s.chain.Token(ballot).Vote(opts, proposal, amount)
	if err != nil {
		return nil, s.observe("Vote", fmt.Errorf("token.Vote: %w", err))
	}
	s.logger.Info("vote transaction sent", "hash", tx.Hash().Hex(), "ballot", ballot.Hex(), "proposal", proposal.String())

	s.observe("Vote", nil)
	return &VoteResult{Hash: tx.Hash().Hex()}, nil
}
