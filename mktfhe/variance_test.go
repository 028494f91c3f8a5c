package mktfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/mktfhe"
	"github.com/stretchr/testify/assert"
)

func TestVarianceBoundsGrowWithParties(t *testing.T) {
	small := mktfhe.KeySwitchVarianceBound(2, 500, 8, 4, 1e-9)
	large := mktfhe.KeySwitchVarianceBound(4, 500, 8, 4, 1e-9)
	assert.Greater(t, large, small)

	smallExt := mktfhe.ExternalProductVarianceBound(2, 4, 1<<7, 3.29e-10, 1024)
	largeExt := mktfhe.ExternalProductVarianceBound(4, 4, 1<<7, 3.29e-10, 1024)
	assert.Greater(t, largeExt, smallExt)

	smallRot := mktfhe.BlindRotateVarianceBound(500, 2, 4, 1<<7, 3.29e-10, 1024)
	largeRot := mktfhe.BlindRotateVarianceBound(500, 4, 4, 1<<7, 3.29e-10, 1024)
	assert.Greater(t, largeRot, smallRot)
}

func TestVarianceBoundsPositive(t *testing.T) {
	assert.Greater(t, mktfhe.KeySwitchVarianceBound(2, 500, 8, 4, 1e-9), 0.0)
	assert.Greater(t, mktfhe.ExternalProductVarianceBound(2, 4, 1<<7, 3.29e-10, 1024), 0.0)
	assert.Greater(t, mktfhe.BlindRotateVarianceBound(500, 2, 4, 1<<7, 3.29e-10, 1024), 0.0)
}
