// Package abi loads the compiled smartcontract artifact.
// The artifact is the json produced by the hardhat compiler:
// it keeps the interface of the smartcontract and its deployment bytecode.
package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Abi is the wrapper over the geth abi along with the bytecode.
type Abi struct {
	ContractName string
	geth         abi.ABI
	bytecode     []byte
}

// artifact is the part of the hardhat artifact that we use.
type artifact struct {
	ContractName string          `json:"contractName"`
	Abi          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// New parses the hardhat artifact.
func New(raw []byte) (*Abi, error) {
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("json.Unmarshal artifact: %w", err)
	}
	if len(a.Abi) == 0 {
		return nil, errors.New("artifact has no abi")
	}

	gethAbi, err := abi.JSON(bytes.NewReader(a.Abi))
	if err != nil {
		return nil, fmt.Errorf("failed to decompose abi to geth abi: %w", err)
	}

	bytecode := []byte{}
	if len(a.Bytecode) > 0 && a.Bytecode != "0x" {
		bytecode, err = hexutil.Decode(a.Bytecode)
		if err != nil {
			return nil, fmt.Errorf("hexutil.Decode bytecode: %w", err)
		}
	}

	return &Abi{
		ContractName: a.ContractName,
		geth:         gethAbi,
		bytecode:     bytecode,
	}, nil
}

// NewFromFile reads the hardhat artifact from the path.
func NewFromFile(path string) (*Abi, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}

	a, err := New(raw)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return a, nil
}

// Geth returns the abi used by the go-ethereum bindings
func (a *Abi) Geth() abi.ABI {
	return a.geth
}

// Bytecode returns the deployment code.
// It's empty if the artifact doesn't have it.
func (a *Abi) Bytecode() []byte {
	return a.bytecode
}

// Deployable returns true if the artifact has the bytecode
func (a *Abi) Deployable() bool {
	return len(a.bytecode) > 0
}

// HasMethods returns an error listing the methods that the abi doesn't have.
func (a *Abi) HasMethods(methods ...string) error {
	missing := make([]string, 0)
	for _, method := range methods {
		if _, ok := a.geth.Methods[method]; !ok {
			missing = append(missing, method)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("abi misses the methods: %v", missing)
	}
	return nil
}
