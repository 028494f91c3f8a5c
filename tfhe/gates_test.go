package tfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func TestGateTruthTables(t *testing.T) {
	params := tfhe.Params128
	rng := tfhe.NewRNG()
	sk, ck := tfhe.MakeKeyPair(rng, params)
	ev := tfhe.NewEvaluator(ck)

	for _, x := range []bool{false, true} {
		for _, y := range []bool{false, true} {
			ctX := tfhe.EncryptBool(rng, sk, params, x)
			ctY := tfhe.EncryptBool(rng, sk, params, y)

			assert.Equal(t, !(x && y), tfhe.DecryptBool(sk, ev.GateNAND(ctX, ctY)), "NAND(%v,%v)", x, y)
			assert.Equal(t, x && y, tfhe.DecryptBool(sk, ev.GateAND(ctX, ctY)), "AND(%v,%v)", x, y)
			assert.Equal(t, x || y, tfhe.DecryptBool(sk, ev.GateOR(ctX, ctY)), "OR(%v,%v)", x, y)
			assert.Equal(t, x != y, tfhe.DecryptBool(sk, ev.GateXOR(ctX, ctY)), "XOR(%v,%v)", x, y)
			assert.Equal(t, x == y, tfhe.DecryptBool(sk, ev.GateXNOR(ctX, ctY)), "XNOR(%v,%v)", x, y)
			assert.Equal(t, !x, tfhe.DecryptBool(sk, ev.GateNOT(ctX)))
		}
	}
}

func TestGateMUX(t *testing.T) {
	params := tfhe.Params128
	rng := tfhe.NewRNG()
	sk, ck := tfhe.MakeKeyPair(rng, params)
	ev := tfhe.NewEvaluator(ck)

	for _, cond := range []bool{false, true} {
		ctCond := tfhe.EncryptBool(rng, sk, params, cond)
		ctA := tfhe.EncryptBool(rng, sk, params, true)
		ctB := tfhe.EncryptBool(rng, sk, params, false)

		want := false
		if cond {
			want = true
		}
		got := tfhe.DecryptBool(sk, ev.GateMUX(ctCond, ctA, ctB))
		assert.Equal(t, want, got)
	}
}

func TestEvaluatorShallowCopyIndependentScratch(t *testing.T) {
	params := tfhe.Params128
	rng := tfhe.NewRNG()
	sk, ck := tfhe.MakeKeyPair(rng, params)
	ev1 := tfhe.NewEvaluator(ck)
	ev2 := ev1.ShallowCopy()

	ctX := tfhe.EncryptBool(rng, sk, params, true)
	ctY := tfhe.EncryptBool(rng, sk, params, true)

	r1 := ev1.GateAND(ctX, ctY)
	r2 := ev2.GateAND(ctX, ctY)

	assert.True(t, tfhe.DecryptBool(sk, r1))
	assert.True(t, tfhe.DecryptBool(sk, r2))
}
