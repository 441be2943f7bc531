package util

import (
	"bytes"
	"math/big"
	"strings"
)

// EtherDecimals is the amount of decimals in one ether as well as in one token
const EtherDecimals = 18

// FormatEther returns the wei in the ether unit.
// See FormatUnits for the format.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// FormatUnits returns the fixed-point number as a decimal string.
// The trailing zeros of the fraction are removed, and the
// fraction is omitted if it's zero:
//
//	FormatUnits(1000000000000000000, 18) = "1"
//	FormatUnits(500000000000000000, 18) = "0.5"
//	FormatUnits(-1500, 3) = "-1.5"
func FormatUnits(value *big.Int, decimals int) string {
	if value == nil {
		return "0"
	}

	digits := new(big.Int).Abs(value).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	integer := digits[:len(digits)-decimals]
	fraction := strings.TrimRight(digits[len(digits)-decimals:], "0")

	sign := ""
	if value.Sign() < 0 {
		sign = "-"
	}
	if len(fraction) == 0 {
		return sign + integer
	}
	return sign + integer + "." + fraction
}

// Bytes32ToString decodes the fixed-size solidity string.
// The value is right padded with zeros.
func Bytes32ToString(value [32]byte) string {
	return string(bytes.TrimRight(value[:], "\x00"))
}

// StringToBytes32 encodes the string as a fixed-size solidity string.
// The string longer than 32 bytes is truncated.
func StringToBytes32(value string) [32]byte {
	var encoded [32]byte
	copy(encoded[:], value)
	return encoded
}
