package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"tee-red", "jeans-raw"}, splitIDs(" tee-red , jeans-raw,, "))
	assert.Empty(t, splitIDs(""))
	assert.Empty(t, splitIDs(" , "))
}
