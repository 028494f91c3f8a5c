package mktfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/mktfhe"
	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func twoPartySetup(t *testing.T) (mktfhe.Setup, []*tfhe.RNG) {
	t.Helper()
	params := mktfhe.Params128x2
	rngs := []*tfhe.RNG{tfhe.NewRNG(), tfhe.NewRNG()}
	setup := mktfhe.MakeSetup(rngs, params)
	return setup, rngs
}

func TestMultiKeyGateNAND(t *testing.T) {
	setup, rngs := twoPartySetup(t)
	ev := mktfhe.NewEvaluator(setup.CloudKey)

	cases := []struct{ m1, m2, want bool }{
		{true, true, false},
		{true, false, true},
		{false, true, true},
		{false, false, true},
	}

	for _, c := range cases {
		for trial := 0; trial < 10; trial++ {
			ct1 := mktfhe.Encrypt(rngs[0].Uniform, rngs[0].Gaussian, setup.Secrets[0], 0, setup.Params, c.m1)
			ct2 := mktfhe.Encrypt(rngs[1].Uniform, rngs[1].Gaussian, setup.Secrets[1], 1, setup.Params, c.m2)

			got := mktfhe.Decrypt(setup.Secrets, ev.GateNAND(ct1, ct2))
			assert.Equal(t, c.want, got, "NAND(%v,%v) trial %d", c.m1, c.m2, trial)
		}
	}
}

func TestMultiKeyGateTruthTable(t *testing.T) {
	setup, rngs := twoPartySetup(t)
	ev := mktfhe.NewEvaluator(setup.CloudKey)

	for _, m1 := range []bool{false, true} {
		for _, m2 := range []bool{false, true} {
			ct1 := mktfhe.Encrypt(rngs[0].Uniform, rngs[0].Gaussian, setup.Secrets[0], 0, setup.Params, m1)
			ct2 := mktfhe.Encrypt(rngs[1].Uniform, rngs[1].Gaussian, setup.Secrets[1], 1, setup.Params, m2)

			assert.Equal(t, m1 && m2, mktfhe.Decrypt(setup.Secrets, ev.GateAND(ct1, ct2)))
			assert.Equal(t, m1 || m2, mktfhe.Decrypt(setup.Secrets, ev.GateOR(ct1, ct2)))
			assert.Equal(t, m1 != m2, mktfhe.Decrypt(setup.Secrets, ev.GateXOR(ct1, ct2)))
			assert.Equal(t, !m1, mktfhe.Decrypt(setup.Secrets, ev.GateNOT(ct1)))
		}
	}
}

func TestMultiKeyGateMUX(t *testing.T) {
	setup, rngs := twoPartySetup(t)
	ev := mktfhe.NewEvaluator(setup.CloudKey)

	ctCond := mktfhe.Encrypt(rngs[0].Uniform, rngs[0].Gaussian, setup.Secrets[0], 0, setup.Params, true)
	ctA := mktfhe.Encrypt(rngs[0].Uniform, rngs[0].Gaussian, setup.Secrets[0], 0, setup.Params, true)
	ctB := mktfhe.Encrypt(rngs[1].Uniform, rngs[1].Gaussian, setup.Secrets[1], 1, setup.Params, false)

	got := mktfhe.Decrypt(setup.Secrets, ev.GateMUX(ctCond, ctA, ctB))
	assert.True(t, got)
}
