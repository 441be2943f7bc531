package controller

import (
	"fmt"
	"math/big"

	"github.com/gofiber/fiber/v2"
)

// Route is the http endpoint along with its handler
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
}

func (c *Controller) routes() []Route {
	return []Route{
		{fiber.MethodGet, "/contract-address", c.contractAddress},
		{fiber.MethodGet, "/token-name", c.tokenName},
		{fiber.MethodGet, "/total-supply", c.totalSupply},
		{fiber.MethodGet, "/token-balance/:address", c.tokenBalance},
		{fiber.MethodGet, "/transaction-receipt", c.transactionReceipt},
		{fiber.MethodGet, "/server-wallet-address", c.serverWalletAddress},
		{fiber.MethodGet, "/check-minter-role", c.checkMinterRole},
		{fiber.MethodPost, "/mint-tokens", c.mintTokens},
		{fiber.MethodPost, "/deploy-token", c.deployToken},
		{fiber.MethodPost, "/vote", c.vote},
		{fiber.MethodGet, "/results", c.results},
	}
}

// reply wraps the value as {"result": value}
func reply(ctx *fiber.Ctx, value interface{}) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"result": value})
}

func (c *Controller) contractAddress(ctx *fiber.Ctx) error {
	return reply(ctx, c.service.ContractAddress())
}

func (c *Controller) serverWalletAddress(ctx *fiber.Ctx) error {
	return reply(ctx, c.service.ServerWalletAddress())
}

func (c *Controller) tokenName(ctx *fiber.Ctx) error {
	name, err := c.service.TokenName(ctx.UserContext())
	if err != nil {
		return err
	}
	return reply(ctx, name)
}

func (c *Controller) totalSupply(ctx *fiber.Ctx) error {
	supply, err := c.service.TotalSupply(ctx.UserContext())
	if err != nil {
		return err
	}
	return reply(ctx, supply)
}

func (c *Controller) tokenBalance(ctx *fiber.Ctx) error {
	account, err := parseAddress("address", ctx.Params("address"))
	if err != nil {
		return err
	}
	balance, err := c.service.TokenBalance(ctx.UserContext(), account)
	if err != nil {
		return err
	}
	return reply(ctx, balance)
}

func (c *Controller) transactionReceipt(ctx *fiber.Ctx) error {
	hash, err := parseHash("hash", ctx.Query("hash"))
	if err != nil {
		return err
	}
	receipt, err := c.service.TransactionReceipt(ctx.UserContext(), hash)
	if err != nil {
		return err
	}
	return reply(ctx, receipt)
}

func (c *Controller) checkMinterRole(ctx *fiber.Ctx) error {
	account, err := parseAddress("address", ctx.Query("address"))
	if err != nil {
		return err
	}
	sentence, err := c.service.CheckMinterRole(ctx.UserContext(), account)
	if err != nil {
		return err
	}
	return reply(ctx, sentence)
}

// mintTokens expects {"address": "0x..", "amount": "1000"}.
// The amount is optional.
func (c *Controller) mintTokens(ctx *fiber.Ctx) error {
	body, err := parseBody(ctx)
	if err != nil {
		return err
	}
	to, err := bodyAddress(body, "address")
	if err != nil {
		return err
	}

	var amount *big.Int
	if body.Exist("amount") && body["amount"] != nil {
		amount, err = bodyNumber(body, "amount")
		if err != nil {
			return err
		}
		if amount.Sign() == 0 {
			return badRequest(fmt.Errorf("%w: parameter 'amount' should be positive", ErrInvalidNumber))
		}
	}

	result, err := c.service.MintTokens(ctx.UserContext(), to, amount)
	if err != nil {
		return err
	}
	return reply(ctx, result)
}

func (c *Controller) deployToken(ctx *fiber.Ctx) error {
	result, err := c.service.DeployToken(ctx.UserContext())
	if err != nil {
		return err
	}
	return reply(ctx, result)
}

// vote expects {"address": "0x..", "proposalIndex": 0, "votingAmount": "100"}.
func (c *Controller) vote(ctx *fiber.Ctx) error {
	body, err := parseBody(ctx)
	if err != nil {
		return err
	}
	ballot, err := bodyAddress(body, "address")
	if err != nil {
		return err
	}
	proposal, err := bodyNumber(body, "proposalIndex")
	if err != nil {
		return err
	}
	amount, err := bodyNumber(body, "votingAmount")
	if err != nil {
		return err
	}

	result, err := c.service.Vote(ctx.UserContext(), ballot, proposal, amount)
	if err != nil {
		return err
	}
	return reply(ctx, result)
}

func (c *Controller) results(ctx *fiber.Ctx) error {
	ballot, err := parseAddress("address", ctx.Query("address"))
	if err != nil {
		return err
	}
	sentence, err := c.service.Results(ctx.UserContext(), ballot)
	if err != nil {
		return err
	}
	return reply(ctx, sentence)
}
