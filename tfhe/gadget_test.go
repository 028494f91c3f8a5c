package tfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func TestDecomposeRecomposeRoundTrip(t *testing.T) {
	gp := tfhe.GadgetParametersLiteral{Base: 1 << 10, Level: 2}.Compile()

	xs := []int32{0, 1 << 20, -(1 << 20), -(1 << 31), -(1 << 31) + 1}
	digits := make([]int32, gp.Level())
	for _, x := range xs {
		tfhe.DecomposeAssign(x, gp, digits)
		for _, d := range digits {
			half := gp.Base() / 2
			assert.GreaterOrEqual(t, d, -half)
			assert.Less(t, d, half)
		}
		got := tfhe.Recompose(digits, gp)
		assert.InDelta(t, x, got, 1<<21)
	}
}

func TestGadgetValueDescending(t *testing.T) {
	gp := tfhe.GadgetParametersLiteral{Base: 1 << 10, Level: 2}.Compile()
	assert.Equal(t, int32(1)<<22, gp.GadgetValue(0))
	assert.Equal(t, int32(1)<<12, gp.GadgetValue(1))
}

func TestGadgetParametersLiteralInvariants(t *testing.T) {
	assert.Panics(t, func() {
		tfhe.GadgetParametersLiteral{Base: 3, Level: 2}.Compile()
	})
	assert.Panics(t, func() {
		tfhe.GadgetParametersLiteral{Base: 1 << 10, Level: 0}.Compile()
	})
	assert.Panics(t, func() {
		tfhe.GadgetParametersLiteral{Base: 1 << 20, Level: 3}.Compile()
	})
}
