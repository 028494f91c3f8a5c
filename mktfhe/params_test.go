package mktfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/mktfhe"
	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func TestParametersLiteralInvariants(t *testing.T) {
	base := tfhe.Params128.Literal()

	assert.Panics(t, func() {
		mktfhe.ParametersLiteral{Base: base, Parties: 1, RingStdDev: 1e-10}.Compile()
	})
	assert.Panics(t, func() {
		mktfhe.ParametersLiteral{Base: base, Parties: 2, RingStdDev: 0}.Compile()
	})
}

func TestParams128x2(t *testing.T) {
	params := mktfhe.Params128x2
	assert.Equal(t, 2, params.Parties())
	assert.Equal(t, tfhe.Params128.PolyDegree(), params.PolyDegree())

	lit := params.Literal()
	assert.Equal(t, 2, lit.Parties)
}
