package service

import (
	"context"
	"fmt"

	"github.com/blocklords/ballot-token/blockchain/evm/util"
	"github.com/ethereum/go-ethereum/common"
)

// Results returns the winning proposal of the ballot contract.
func (s *Service) Results(ctx context.Context, ballot common.Address) (string, error) {
	ctx, cancel := withTimeout(ctx, s.requestTimeout)
	defer cancel()

	contract := s.chain.Token(ballot)
	proposal, err := contract.WinningProposal(ctx)
	if err != nil {
		return "", s.observe("Results", fmt.Errorf("token.WinningProposal: %w", err))
	}
	name, err := contract.WinnerName(ctx)
	if err != nil {
		return "", s.observe("Results", fmt.Errorf("token.WinnerName: %w", err))
	}

	s.observe("Results", nil)
	return fmt.Sprintf("Winning proposal is %s owned by %s", proposal, util.Bytes32ToString(name)), nil
}
