package key_value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
)

// Define the suite, and absorb the built-in basic suite
// functionality from testify - including a T() method which
// returns the current testing context
type TestKeyValueSuite struct {
	suite.Suite
	kv KeyValue
}

func (suite *TestKeyValueSuite) SetupTest() {
	empty := map[string]interface{}{}
	suite.Require().EqualValues(empty, Empty().ToMap())

	raw := []byte(`{"address":"0x29b0d9A9A989e4651488D0002ebf79199cE1b7C1","proposalIndex":2,"votingAmount":"100000000000000000000000","negative":-1,"fraction":0.5}`)
	kv, err := NewFromBytes(raw)
	suite.Require().NoError(err)
	suite.kv = kv
}

func (suite *TestKeyValueSuite) TestNewFromBytes() {
	_, err := NewFromBytes([]byte(``))
	suite.Require().Error(err)

	_, err = NewFromBytes([]byte(`null`))
	suite.Require().Error(err)

	// arrays are not objects
	_, err = NewFromBytes([]byte(`[1,2]`))
	suite.Require().Error(err)

	kv, err := NewFromBytes([]byte(`{}`))
	suite.Require().NoError(err)
	suite.Require().Empty(kv)
}

func (suite *TestKeyValueSuite) TestString() {
	address, err := suite.kv.GetString("address")
	suite.Require().NoError(err)
	suite.Require().Equal("0x29b0d9A9A989e4651488D0002ebf79199cE1b7C1", address)

	_, err = suite.kv.GetString("proposalIndex")
	suite.Require().Error(err)

	_, err = suite.kv.GetString("not_exist")
	suite.Require().Error(err)
}

func (suite *TestKeyValueSuite) TestNumbers() {
	index, err := suite.kv.GetUint64("proposalIndex")
	suite.Require().NoError(err)
	suite.Require().EqualValues(2, index)

	bigIndex, err := suite.kv.GetBigNumber("proposalIndex")
	suite.Require().NoError(err)
	suite.Require().Zero(bigIndex.Cmp(big.NewInt(2)))

	// string numbers exceeding 64 bits are kept as is
	amount, err := suite.kv.GetBigNumber("votingAmount")
	suite.Require().NoError(err)
	expected, _ := new(big.Int).SetString("100000000000000000000000", 10)
	suite.Require().Zero(amount.Cmp(expected))

	_, err = suite.kv.GetUint64("votingAmount")
	suite.Require().Error(err)

	_, err = suite.kv.GetUint64("negative")
	suite.Require().Error(err)
	_, err = suite.kv.GetBigNumber("fraction")
	suite.Require().Error(err)
	_, err = suite.kv.GetBigNumber("address")
	suite.Require().Error(err)
	_, err = suite.kv.GetBigNumber("not_exist")
	suite.Require().Error(err)

	kv := Empty().Set("number", uint64(5)).Set("int", 7)
	number, err := kv.GetBigNumber("number")
	suite.Require().NoError(err)
	suite.Require().EqualValues(5, number.Uint64())
	integer, err := kv.GetUint64("int")
	suite.Require().NoError(err)
	suite.Require().EqualValues(7, integer)
}

func (suite *TestKeyValueSuite) TestToInterface() {
	type Vote struct {
		Address string `json:"address"`
	}
	var vote Vote
	suite.Require().NoError(suite.kv.ToInterface(&vote))
	suite.Require().Equal("0x29b0d9A9A989e4651488D0002ebf79199cE1b7C1", vote.Address)
	suite.Require().True(suite.kv.Exist("address"))
	suite.Require().False(suite.kv.Exist("hash"))
}

func TestKeyValue(t *testing.T) {
	suite.Run(t, new(TestKeyValueSuite))
}
