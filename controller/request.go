package controller

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/blocklords/ballot-token/common/data_type/key_value"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidHash    = errors.New("invalid transaction hash")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrInvalidBody    = errors.New("invalid request body")
)

// badRequest converts the validation error into the 400 reply.
func badRequest(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

func parseAddress(name string, raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, badRequest(fmt.Errorf("%w: '%s' parameter '%s'", ErrInvalidAddress, name, raw))
	}
	return common.HexToAddress(raw), nil
}

// parseHash accepts only 0x prefixed 32 bytes.
func parseHash(name string, raw string) (common.Hash, error) {
	bytes, err := hexutil.Decode(raw)
	if err != nil || len(bytes) != common.HashLength {
		return common.Hash{}, badRequest(fmt.Errorf("%w: '%s' parameter '%s'", ErrInvalidHash, name, raw))
	}
	return common.BytesToHash(bytes), nil
}

// parseBody decodes the json object of the request.
func parseBody(ctx *fiber.Ctx) (key_value.KeyValue, error) {
	body, err := key_value.NewFromBytes(ctx.Body())
	if err != nil {
		return nil, badRequest(fmt.Errorf("%w: %v", ErrInvalidBody, err))
	}
	return body, nil
}

func bodyAddress(body key_value.KeyValue, name string) (common.Address, error) {
	raw, err := body.GetString(name)
	if err != nil {
		return common.Address{}, badRequest(fmt.Errorf("%w: %v", ErrInvalidAddress, err))
	}
	return parseAddress(name, raw)
}

// bodyNumber returns the non negative number.
// The number is passed as json number or as a decimal string.
func bodyNumber(body key_value.KeyValue, name string) (*big.Int, error) {
	number, err := body.GetBigNumber(name)
	if err != nil {
		return nil, badRequest(fmt.Errorf("%w: %v", ErrInvalidNumber, err))
	}
	if number.Sign() < 0 {
		return nil, badRequest(fmt.Errorf("%w: parameter '%s' is negative", ErrInvalidNumber, name))
	}
	return number, nil
}
