// Ballot token gateway is the http api over the ERC-20 token
// with the voting extension.
//
// Each endpoint makes one or two calls to the token smartcontract
// through the go-ethereum client:
//   - reads of the token metadata, balances and the roles
//   - writes signed by the server wallet: minting, deploying and voting
//
// The server wallet key is read from the environment variables.
// If the app is started with --secure argument, then the key is read from the HashiCorp Vault.
//
// Run it with:
//
//	go run . .env --debug
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/blocklords/ballot-token/app/configuration"
	"github.com/blocklords/ballot-token/app/log"
	evm_abi "github.com/blocklords/ballot-token/blockchain/evm/abi"
	"github.com/blocklords/ballot-token/blockchain/evm/client"
	"github.com/blocklords/ballot-token/blockchain/evm/wallet"
	"github.com/blocklords/ballot-token/blockchain/network"
	"github.com/blocklords/ballot-token/controller"
	"github.com/blocklords/ballot-token/metrics"
	"github.com/blocklords/ballot-token/security/vault"
	"github.com/blocklords/ballot-token/service"
)

// startupTimeout limits the connection to the node and to the vault
const startupTimeout = 30 * time.Second

func main() {
	logger, err := log.New("main", log.WITH_TIMESTAMP)
	if err != nil {
		log.Fatal("log.New(`main`)", "error", err)
	}

	logger.Info("Load app configuration")
	appConfig, err := configuration.NewAppConfig(logger)
	if err != nil {
		logger.Fatal("configuration.NewAppConfig", "error", err)
	}
	logger.SetDebug(appConfig.Debug)
	logger.Info("App configuration loaded successfully")

	parameters, err := service.NewParameters(appConfig)
	if err != nil {
		logger.Fatal("service.NewParameters", "error", err)
	}
	address, err := controller.ListenAddress(appConfig)
	if err != nil {
		logger.Fatal("controller.ListenAddress", "error", err)
	}
	shutdownTimeout := controller.ShutdownTimeout(appConfig)

	n, err := network.New(appConfig)
	if err != nil {
		logger.Fatal("network.New", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	privateKey, err := serverWalletKey(ctx, appConfig, logger)
	if err != nil {
		logger.Fatal("serverWalletKey", "error", err)
	}
	w, err := wallet.New(privateKey, n.ChainId())
	if err != nil {
		logger.Fatal("wallet.New", "error", err)
	}
	logger.Info("server wallet", "address", w.Address().Hex())

	artifactPath := appConfig.GetString("TOKEN_ARTIFACT_PATH")
	artifact, err := evm_abi.NewFromFile(artifactPath)
	if err != nil {
		logger.Fatal("evm_abi.NewFromFile", "path", artifactPath, "error", err)
	}
	if !artifact.Deployable() {
		logger.Warn("the artifact has no bytecode, deploy-token is disabled", "path", artifactPath)
	}

	c, err := client.New(ctx, n, logger)
	if err != nil {
		logger.Fatal("client.New", "error", err)
	}
	defer c.Close()

	chain, err := service.NewChain(c, artifact)
	if err != nil {
		logger.Fatal("service.NewChain", "error", err)
	}

	m := metrics.New()

	parameters.Chain = chain
	parameters.Wallet = w
	parameters.Logger = logger
	parameters.Metrics = m
	s, err := service.New(parameters)
	if err != nil {
		logger.Fatal("service.New", "error", err)
	}
	logger.Info("token", "address", s.ContractAddress())

	httpController, err := controller.New(s, logger, m)
	if err != nil {
		logger.Fatal("controller.New", "error", err)
	}

	stop, stopCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopCancel()
	go func() {
		<-stop.Done()
		logger.Info("shutting down", "timeout", shutdownTimeout.String())

		if err := httpController.Shutdown(shutdownTimeout); err != nil {
			logger.Error("controller.Shutdown", "error", err)
		}
	}()

	if err := httpController.Run(address); err != nil {
		logger.Fatal("controller.Run", "error", err)
	}
}

// serverWalletKey returns the private key from the environment.
// In the secure mode the key is read from the vault.
func serverWalletKey(ctx context.Context, appConfig *configuration.Config, logger *log.Logger) (string, error) {
	if !appConfig.Secure {
		logger.Warn("App is running in an unsafe environment, the server wallet key is read from PRIVATE_KEY")
		if !appConfig.Exist("PRIVATE_KEY") {
			return "", errors.New("missing 'PRIVATE_KEY' environment variable")
		}
		return appConfig.GetString("PRIVATE_KEY"), nil
	}

	logger.Info("Security enabled, reading the server wallet key from the vault")
	parameters, err := vault.NewParameters(appConfig)
	if err != nil {
		return "", err
	}
	v, err := vault.New(ctx, parameters, logger)
	if err != nil {
		return "", err
	}
	return v.PrivateKey(ctx)
}
