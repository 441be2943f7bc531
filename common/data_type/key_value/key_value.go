// Package key_value is a loosely typed map with typed getters.
// It is used for the request bodies and for the configuration defaults.
package key_value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
)

// KeyValue is identical to the golang map
type KeyValue map[string]interface{}

// New converts the map to the key-value data type
func New(keyValue map[string]interface{}) KeyValue {
	return KeyValue(keyValue)
}

// Empty creates a key-value without any parameter
func Empty() KeyValue {
	return KeyValue(map[string]interface{}{})
}

// NewFromBytes decodes the JSON object.
// The numbers are kept as json.Number to not lose the precision of big numbers.
func NewFromBytes(raw []byte) (KeyValue, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var kv KeyValue
	if err := decoder.Decode(&kv); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}
	if kv == nil {
		return nil, errors.New("expected a json object, got null")
	}

	return kv, nil
}

// Set the parameter. Returns the same key-value to chain the calls.
func (k KeyValue) Set(name string, value interface{}) KeyValue {
	k[name] = value
	return k
}

// ToMap converts the key-value to the golang map
func (k KeyValue) ToMap() map[string]interface{} {
	return map[string]interface{}(k)
}

// Exist returns true if the parameter is set, even with a nil value
func (k KeyValue) Exist(name string) bool {
	_, ok := k[name]
	return ok
}

// ToInterface converts the map into the struct through json encoding
func (k KeyValue) ToInterface(i interface{}) error {
	raw, err := json.Marshal(k)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	if err := json.Unmarshal(raw, i); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	return nil
}

// GetString returns the parameter as a string
func (k KeyValue) GetString(name string) (string, error) {
	raw, exists := k[name]
	if !exists {
		return "", errors.New("missing '" + name + "' parameter")
	}
	value, ok := raw.(string)
	if !ok {
		return "", errors.New("expected string type for '" + name + "' parameter")
	}

	return value, nil
}

// GetUint64 returns the parameter as an uint64
func (k KeyValue) GetUint64(name string) (uint64, error) {
	raw, exists := k[name]
	if !exists {
		return 0, errors.New("missing '" + name + "' parameter")
	}

	switch value := raw.(type) {
	case uint64:
		return value, nil
	case int:
		if value < 0 {
			return 0, errors.New("parameter '" + name + "' is negative")
		}
		return uint64(value), nil
	case json.Number:
		number, err := strconv.ParseUint(string(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parameter '%s': %w", name, err)
		}
		return number, nil
	default:
		return 0, errors.New("parameter '" + name + "' expected to be as a number")
	}
}

// GetBigNumber returns the parsed large number.
// The number could be passed as a json number or as a string in decimal or 0x prefixed hex format.
func (k KeyValue) GetBigNumber(name string) (*big.Int, error) {
	raw, exists := k[name]
	if !exists {
		return nil, errors.New("missing '" + name + "' parameter")
	}

	var str string
	switch value := raw.(type) {
	case *big.Int:
		return new(big.Int).Set(value), nil
	case uint64:
		return new(big.Int).SetUint64(value), nil
	case int:
		return big.NewInt(int64(value)), nil
	case json.Number:
		str = string(value)
	case string:
		str = value
	default:
		return nil, errors.New("parameter '" + name + "' expected to be as a number")
	}

	// ParseBig256 treats the empty string as zero
	if len(str) == 0 {
		return nil, errors.New("parameter '" + name + "' is empty")
	}
	number, ok := math.ParseBig256(str)
	if !ok {
		return nil, errors.New("parameter '" + name + "' is not a big number")
	}

	return number, nil
}
