package service

import (
	"context"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/blocklords/ballot-token/app/configuration"
	"github.com/blocklords/ballot-token/app/log"
	"github.com/blocklords/ballot-token/blockchain/evm/util"
	"github.com/blocklords/ballot-token/metrics"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/suite"
)

// fakeToken returns the preset values.
// If err is set, then every method fails.
type fakeToken struct {
	address    common.Address
	name       string
	symbol     string
	supply     *big.Int
	balances   map[common.Address]*big.Int
	role       [32]byte
	minters    map[common.Address]bool
	proposal   *big.Int
	winnerName [32]byte
	err        error

	calls []string
	mints []*big.Int
	votes [][2]*big.Int
}

func (t *fakeToken) call(method string) error {
	t.calls = append(t.calls, method)
	return t.err
}

func (t *fakeToken) Name(ctx context.Context) (string, error) {
	return t.name, t.call("name")
}

func (t *fakeToken) Symbol(ctx context.Context) (string, error) {
	return t.symbol, t.call("symbol")
}

func (t *fakeToken) TotalSupply(ctx context.Context) (*big.Int, error) {
	return t.supply, t.call("totalSupply")
}

func (t *fakeToken) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, ok := t.balances[account]
	if !ok {
		balance = big.NewInt(0)
	}
	return balance, t.call("balanceOf")
}

func (t *fakeToken) MinterRole(ctx context.Context) ([32]byte, error) {
	return t.role, t.call("MINTER_ROLE")
}

func (t *fakeToken) HasRole(ctx context.Context, role [32]byte, account common.Address) (bool, error) {
	return role == t.role && t.minters[account], t.call("hasRole")
}

func (t *fakeToken) WinningProposal(ctx context.Context) (*big.Int, error) {
	return t.proposal, t.call("winningProposal")
}

func (t *fakeToken) WinnerName(ctx context.Context) ([32]byte, error) {
	return t.winnerName, t.call("winnerName")
}

func (t *fakeToken) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	if err := t.call("mint"); err != nil {
		return nil, err
	}
	t.mints = append(t.mints, amount)
	return types.NewTransaction(uint64(len(t.calls)), t.address, big.NewInt(0), 100_000, big.NewInt(1), nil), nil
}

func (t *fakeToken) Vote(opts *bind.TransactOpts, proposal *big.Int, amount *big.Int) (*types.Transaction, error) {
	if err := t.call("vote"); err != nil {
		return nil, err
	}
	t.votes = append(t.votes, [2]*big.Int{proposal, amount})
	return types.NewTransaction(uint64(len(t.calls)), t.address, big.NewInt(0), 100_000, big.NewInt(1), nil), nil
}

type fakeChain struct {
	tokens   map[common.Address]*fakeToken
	receipt  *types.Receipt
	err      error
	deployed common.Address
	deploys  int
	waits    int
}

func (c *fakeChain) Token(address common.Address) Token {
	t, ok := c.tokens[address]
	if !ok {
		t = &fakeToken{address: address, err: errors.New("execution reverted")}
		c.tokens[address] = t
	}
	return t
}

func (c *fakeChain) Deploy(opts *bind.TransactOpts) (common.Address, *types.Transaction, error) {
	if c.err != nil {
		return common.Address{}, nil, c.err
	}
	c.deploys++
	return c.deployed, types.NewContractCreation(0, big.NewInt(0), 1_000_000, big.NewInt(1), []byte{0x60}), nil
}

func (c *fakeChain) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.receipt, nil
}

func (c *fakeChain) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	c.waits++
	if c.err != nil {
		return nil, c.err
	}
	return c.receipt, nil
}

type fakeWallet struct {
	address common.Address
}

func (w *fakeWallet) Address() common.Address {
	return w.address
}

func (w *fakeWallet) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: w.address, Context: ctx}, nil
}

// Define the suite, and absorb the built-in basic suite
// functionality from testify - including a T() method which
// returns the current testing context
type TestServiceSuite struct {
	suite.Suite
	service      *Service
	chain        *fakeChain
	token        *fakeToken
	tokenAddress common.Address
	ballot       common.Address
	account      common.Address
	server       common.Address
	metrics      *metrics.Metrics
}

func (suite *TestServiceSuite) SetupTest() {
	logger, err := log.New("test_suite", log.WITHOUT_TIMESTAMP)
	suite.Require().NoError(err)

	suite.tokenAddress = common.HexToAddress("0x29b0d9A9A989e4651488D0002ebf79199cE1b7C1")
	suite.ballot = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	suite.account = common.HexToAddress("0xb7E957790Ea36C7EAC30464dE74F13770fd6dA8A")
	suite.server = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	suite.token = &fakeToken{
		address: suite.tokenAddress,
		name:    "MyToken",
		symbol:  "MTK",
		supply:  big.NewInt(1_000_000_000_000_000_000),
		balances: map[common.Address]*big.Int{
			suite.account: big.NewInt(500_000_000_000_000_000),
		},
		role:    common.HexToHash("0x9f2df0fed2c77648de5860a4cc508cd0818c85b8b8a1ab4ceeef8d981c8956a6"),
		minters: map[common.Address]bool{suite.account: true},
	}
	ballot := &fakeToken{
		address:    suite.ballot,
		proposal:   big.NewInt(2),
		winnerName: util.StringToBytes32("Alice"),
	}
	suite.chain = &fakeChain{
		tokens: map[common.Address]*fakeToken{
			suite.tokenAddress: suite.token,
			suite.ballot:       ballot,
		},
		receipt: &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(4_567_890),
		},
		deployed: common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"),
	}
	suite.metrics = metrics.New()

	s, err := New(Parameters{
		TokenAddress:   suite.tokenAddress,
		Chain:          suite.chain,
		Wallet:         &fakeWallet{address: suite.server},
		MintAmount:     big.NewInt(1_000_000_000_000_000_000),
		RequestTimeout: time.Second,
		ReceiptTimeout: time.Second,
		Logger:         logger,
		Metrics:        suite.metrics,
	})
	suite.Require().NoError(err)
	suite.service = s
}

func (suite *TestServiceSuite) TestNew() {
	logger, err := log.New("test_suite", log.WITHOUT_TIMESTAMP)
	suite.Require().NoError(err)

	valid := Parameters{
		Chain:      suite.chain,
		Wallet:     &fakeWallet{},
		MintAmount: big.NewInt(1),
		Logger:     logger,
	}
	_, err = New(valid)
	suite.Require().NoError(err)

	invalid := valid
	invalid.Chain = nil
	_, err = New(invalid)
	suite.Require().Error(err)

	invalid = valid
	invalid.Wallet = nil
	_, err = New(invalid)
	suite.Require().Error(err)

	invalid = valid
	invalid.Logger = nil
	_, err = New(invalid)
	suite.Require().Error(err)

	invalid = valid
	invalid.MintAmount = big.NewInt(0)
	_, err = New(invalid)
	suite.Require().Error(err)
}

func (suite *TestServiceSuite) TestAddresses() {
	suite.Require().Equal(suite.tokenAddress.Hex(), suite.service.ContractAddress())
	suite.Require().Equal(suite.server.Hex(), suite.service.ServerWalletAddress())

	// no network call
	suite.Require().Empty(suite.token.calls)
}

func (suite *TestServiceSuite) TestTokenName() {
	name, err := suite.service.TokenName(context.Background())
	suite.Require().NoError(err)
	suite.Require().Equal("MyToken", name)
	suite.Require().Equal([]string{"name"}, suite.token.calls)
}

func (suite *TestServiceSuite) TestTotalSupply() {
	supply, err := suite.service.TotalSupply(context.Background())
	suite.Require().NoError(err)
	suite.Require().Equal("1 MTK", supply)
	suite.Require().Equal([]string{"symbol", "totalSupply"}, suite.token.calls)
}

func (suite *TestServiceSuite) TestTokenBalance() {
	balance, err := suite.service.TokenBalance(context.Background(), suite.account)
	suite.Require().NoError(err)
	suite.Require().Equal("0.5 MTK", balance)

	balance, err = suite.service.TokenBalance(context.Background(), suite.server)
	suite.Require().NoError(err)
	suite.Require().Equal("0 MTK", balance)
}

func (suite *TestServiceSuite) TestTransactionReceipt() {
	receipt, err := suite.service.TransactionReceipt(context.Background(), common.HexToHash("0x01"))
	suite.Require().NoError(err)
	suite.Require().Equal("Transaction status: success, Block number 4567890", receipt)

	suite.chain.receipt.Status = types.ReceiptStatusFailed
	receipt, err = suite.service.TransactionReceipt(context.Background(), common.HexToHash("0x01"))
	suite.Require().NoError(err)
	suite.Require().Equal("Transaction status: reverted, Block number 4567890", receipt)
}

func (suite *TestServiceSuite) TestCheckMinterRole() {
	sentence, err := suite.service.CheckMinterRole(context.Background(), suite.account)
	suite.Require().NoError(err)
	suite.Require().Contains(sentence, "has the role")
	suite.Require().Contains(sentence, suite.account.Hex())
	suite.Require().Contains(sentence, "0x9f2df0fed2c77648de5860a4cc508cd0818c85b8b8a1ab4ceeef8d981c8956a6")
	suite.Require().Equal([]string{"MINTER_ROLE", "hasRole"}, suite.token.calls)

	sentence, err = suite.service.CheckMinterRole(context.Background(), suite.server)
	suite.Require().NoError(err)
	suite.Require().Contains(sentence, "does not have the role")
}

func (suite *TestServiceSuite) TestResults() {
	sentence, err := suite.service.Results(context.Background(), suite.ballot)
	suite.Require().NoError(err)
	suite.Require().Equal("Winning proposal is 2 owned by Alice", sentence)
	suite.Require().True(strings.Contains(sentence, "2"))
	suite.Require().True(strings.Contains(sentence, "Alice"))

	// the configured token is not called
	suite.Require().Empty(suite.token.calls)
}

func (suite *TestServiceSuite) TestMintTokens() {
	result, err := suite.service.MintTokens(context.Background(), suite.account, nil)
	suite.Require().NoError(err)
	suite.Require().Equal(SUCCESS, result.Result)
	suite.Require().NotEmpty(result.Hash)
	suite.Require().Equal(1, suite.chain.waits)

	// the default amount is used
	suite.Require().Len(suite.token.mints, 1)
	suite.Require().EqualValues(1_000_000_000_000_000_000, suite.token.mints[0].Int64())

	_, err = suite.service.MintTokens(context.Background(), suite.account, big.NewInt(7))
	suite.Require().NoError(err)
	suite.Require().EqualValues(7, suite.token.mints[1].Int64())

	_, err = suite.service.MintTokens(context.Background(), suite.account, big.NewInt(0))
	suite.Require().Error(err)
}

func (suite *TestServiceSuite) TestDeployToken() {
	result, err := suite.service.DeployToken(context.Background())
	suite.Require().NoError(err)
	suite.Require().Equal(SUCCESS, result.Result)
	suite.Require().Equal(suite.chain.deployed.Hex(), result.Address)
	suite.Require().Equal(1, suite.chain.deploys)
	suite.Require().Equal(1, suite.chain.waits)
}

func (suite *TestServiceSuite) TestVote() {
	result, err := suite.service.Vote(context.Background(), suite.ballot, big.NewInt(1), big.NewInt(10))
	suite.Require().NoError(err)
	suite.Require().NotEmpty(result.Hash)

	ballot := suite.chain.tokens[suite.ballot]
	suite.Require().Len(ballot.votes, 1)
	suite.Require().EqualValues(1, ballot.votes[0][0].Int64())
	suite.Require().EqualValues(10, ballot.votes[0][1].Int64())

	// the vote is not awaited
	suite.Require().Zero(suite.chain.waits)

	_, err = suite.service.Vote(context.Background(), suite.ballot, big.NewInt(-1), big.NewInt(10))
	suite.Require().Error(err)
	_, err = suite.service.Vote(context.Background(), suite.ballot, big.NewInt(1), nil)
	suite.Require().Error(err)
}

func (suite *TestServiceSuite) TestErrors() {
	rpcErr := errors.New("connection refused")
	suite.token.err = rpcErr
	ctx := context.Background()

	_, err := suite.service.TokenName(ctx)
	suite.Require().ErrorIs(err, rpcErr)
	_, err = suite.service.TotalSupply(ctx)
	suite.Require().ErrorIs(err, rpcErr)
	_, err = suite.service.TokenBalance(ctx, suite.account)
	suite.Require().ErrorIs(err, rpcErr)
	_, err = suite.service.CheckMinterRole(ctx, suite.account)
	suite.Require().ErrorIs(err, rpcErr)
	_, err = suite.service.MintTokens(ctx, suite.account, nil)
	suite.Require().ErrorIs(err, rpcErr)

	// the contract at the unknown address reverts
	_, err = suite.service.Results(ctx, suite.account)
	suite.Require().Error(err)
	_, err = suite.service.Vote(ctx, suite.account, big.NewInt(0), big.NewInt(1))
	suite.Require().Error(err)

	suite.chain.err = rpcErr
	_, err = suite.service.TransactionReceipt(ctx, common.HexToHash("0x01"))
	suite.Require().ErrorIs(err, rpcErr)
	_, err = suite.service.DeployToken(ctx)
	suite.Require().ErrorIs(err, rpcErr)
}

func (suite *TestServiceSuite) TestTimeout() {
	ctx, cancel := withTimeout(context.Background(), 0)
	_, ok := ctx.Deadline()
	suite.Require().False(ok)
	cancel()

	ctx, cancel = withTimeout(context.Background(), time.Minute)
	_, ok = ctx.Deadline()
	suite.Require().True(ok)
	cancel()
}

func TestService(t *testing.T) {
	suite.Run(t, new(TestServiceSuite))
}

func TestNewParameters(t *testing.T) {
	osArgs := os.Args
	os.Args = []string{os.Args[0]}
	defer func() { os.Args = osArgs }()

	logger, err := log.New("test_suite", log.WITHOUT_TIMESTAMP)
	if err != nil {
		t.Fatal(err)
	}
	newConfig := func() *configuration.Config {
		appConfig, err := configuration.NewAppConfig(logger)
		if err != nil {
			t.Fatal(err)
		}
		return appConfig
	}

	t.Setenv("TOKEN_ADDRESS", "")
	t.Setenv("MINT_AMOUNT", "")
	t.Setenv("CHAIN_REQUEST_TIMEOUT", "")
	if _, err := NewParameters(newConfig()); err == nil {
		t.Fatal("missing TOKEN_ADDRESS should fail")
	}

	t.Setenv("TOKEN_ADDRESS", "not an address")
	if _, err := NewParameters(newConfig()); err == nil {
		t.Fatal("invalid TOKEN_ADDRESS should fail")
	}

	t.Setenv("TOKEN_ADDRESS", "0x29b0d9A9A989e4651488D0002ebf79199cE1b7C1")
	t.Setenv("MINT_AMOUNT", "-5")
	if _, err := NewParameters(newConfig()); err == nil {
		t.Fatal("negative MINT_AMOUNT should fail")
	}

	t.Setenv("MINT_AMOUNT", "")
	t.Setenv("CHAIN_REQUEST_TIMEOUT", "5s")
	parameters, err := NewParameters(newConfig())
	if err != nil {
		t.Fatal(err)
	}
	if parameters.TokenAddress != common.HexToAddress("0x29b0d9A9A989e4651488D0002ebf79199cE1b7C1") {
		t.Fatalf("unexpected address %s", parameters.TokenAddress.Hex())
	}
	if parameters.MintAmount.String() != "1000000000000000000" {
		t.Fatalf("unexpected mint amount %s", parameters.MintAmount)
	}
	if parameters.RequestTimeout != 5*time.Second || parameters.ReceiptTimeout != 2*time.Minute {
		t.Fatalf("unexpected timeouts %s %s", parameters.RequestTimeout, parameters.ReceiptTimeout)
	}
}
