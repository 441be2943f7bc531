// Package network is used to get the blockchain network information.
package network

import (
	"fmt"
	"math/big"

	"github.com/blocklords/ballot-token/app/configuration"
	"github.com/blocklords/ballot-token/blockchain/network/provider"
	"github.com/blocklords/ballot-token/common/data_type/key_value"
)

// SepoliaId is the chain id of the Sepolia test network
const SepoliaId uint64 = 11155111

// alchemyUrl is the Sepolia endpoint of Alchemy, the api key is appended to it.
const alchemyUrl = "https://eth-sepolia.g.alchemy.com/v2/"

// NetworkConfigurations is the default configuration of the network.
// PROVIDER_URL has a priority over the ALCHEMY_API_KEY.
var NetworkConfigurations = configuration.DefaultConfig{
	Title: "Network",
	Parameters: key_value.New(map[string]interface{}{
		"CHAIN_ID":        SepoliaId,
		"PROVIDER_URL":    "",
		"ALCHEMY_API_KEY": "",
	}),
}

type Network struct {
	Id       uint64            `json:"id"`
	Provider provider.Provider `json:"provider"`
}

// New returns the network from the app configuration.
func New(appConfig *configuration.Config) (*Network, error) {
	appConfig.SetDefaults(NetworkConfigurations)

	id := appConfig.GetUint64("CHAIN_ID")
	if id == 0 {
		return nil, fmt.Errorf("CHAIN_ID is not a positive number")
	}

	url := appConfig.GetString("PROVIDER_URL")
	if len(url) == 0 {
		if !appConfig.Exist("ALCHEMY_API_KEY") {
			return nil, fmt.Errorf("missing 'ALCHEMY_API_KEY' or 'PROVIDER_URL' environment variable")
		}
		url = alchemyUrl + appConfig.GetString("ALCHEMY_API_KEY")
	}

	p, err := provider.New(url)
	if err != nil {
		return nil, fmt.Errorf("provider.New: %w", err)
	}

	return &Network{
		Id:       id,
		Provider: p,
	}, nil
}

// ChainId returns the id as a big number used by the transaction signer
func (n *Network) ChainId() *big.Int {
	return new(big.Int).SetUint64(n.Id)
}
