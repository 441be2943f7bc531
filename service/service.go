// Package service is the chain-call surface of the gateway.
//
// Each operation makes one or two calls against the token contract
// and formats the result for the http replies. The service keeps no state
// besides the dependencies passed on creation.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/blocklords/ballot-token/app/configuration"
	"github.com/blocklords/ballot-token/app/log"
	"github.com/blocklords/ballot-token/common/data_type/key_value"
	"github.com/blocklords/ballot-token/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// ServiceConfigurations are setting the default configuration parameters.
//
// Set the default value to nil, if the parameter is required from the user
var ServiceConfigurations = configuration.DefaultConfig{
	Title: "Service",
	Parameters: key_value.New(map[string]interface{}{
		"TOKEN_ADDRESS":         nil,
		"TOKEN_ARTIFACT_PATH":   "./assets/MyToken.json",
		"MINT_AMOUNT":           "1000000000000000000",
		"CHAIN_REQUEST_TIMEOUT": "30s",
		"CHAIN_RECEIPT_TIMEOUT": "2m",
	}),
}

// Parameters are the dependencies of the service.
type Parameters struct {
	TokenAddress   common.Address
	Chain          Chain
	Wallet         Signer
	MintAmount     *big.Int      // the amount minted if the request doesn't set it
	RequestTimeout time.Duration // limits every operation, zero means no limit
	ReceiptTimeout time.Duration // limits waiting for the transaction receipt, zero means no limit
	Logger         *log.Logger
	Metrics        *metrics.Metrics // optional
}

// NewParameters reads the parameters from the app configuration.
// Chain and Wallet are set by the caller.
func NewParameters(appConfig *configuration.Config) (Parameters, error) {
	appConfig.SetDefaults(ServiceConfigurations)
	if err := appConfig.Validate(ServiceConfigurations); err != nil {
		return Parameters{}, err
	}

	rawAddress := appConfig.GetString("TOKEN_ADDRESS")
	if !common.IsHexAddress(rawAddress) {
		return Parameters{}, fmt.Errorf("TOKEN_ADDRESS '%s' is not a valid address", rawAddress)
	}

	mintAmount, ok := math.ParseBig256(appConfig.GetString("MINT_AMOUNT"))
	if !ok || mintAmount.Sign() <= 0 {
		return Parameters{}, fmt.Errorf("MINT_AMOUNT should be a positive number")
	}

	return Parameters{
		TokenAddress:   common.HexToAddress(rawAddress),
		MintAmount:     mintAmount,
		RequestTimeout: appConfig.GetDuration("CHAIN_REQUEST_TIMEOUT"),
		ReceiptTimeout: appConfig.GetDuration("CHAIN_RECEIPT_TIMEOUT"),
	}, nil
}

type Service struct {
	tokenAddress   common.Address
	chain          Chain
	wallet         Signer
	mintAmount     *big.Int
	requestTimeout time.Duration
	receiptTimeout time.Duration
	logger         *log.Logger
	metrics        *metrics.Metrics
}

// New returns the service with the dependencies.
// The dependencies are not modified by the service.
func New(parameters Parameters) (*Service, error) {
	if parameters.Chain == nil {
		return nil, errors.New("missing chain")
	}
	if parameters.Wallet == nil {
		return nil, errors.New("missing wallet")
	}
	if parameters.Logger == nil {
		return nil, errors.New("missing logger")
	}
	if parameters.MintAmount == nil || parameters.MintAmount.Sign() <= 0 {
		return nil, errors.New("mint amount should be a positive number")
	}

	return &Service{
		tokenAddress:   parameters.TokenAddress,
		chain:          parameters.Chain,
		wallet:         parameters.Wallet,
		mintAmount:     new(big.Int).Set(parameters.MintAmount),
		requestTimeout: parameters.RequestTimeout,
		receiptTimeout: parameters.ReceiptTimeout,
		logger:         parameters.Logger.Child("service"),
		metrics:        parameters.Metrics,
	}, nil
}

// withTimeout derives the context limited by the duration.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// observe records the outcome of the operation.
// Returns the same error to be used in the return statement.
func (s *Service) observe(operation string, err error) error {
	s.metrics.ObserveChainCall(operation, err)
	if err != nil {
		s.logger.Error(operation, "error", err)
	}
	return err
}

// token at the configured address
func (s *Service) token() Token {
	return s.chain.Token(s.tokenAddress)
}
