package cloze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeIDKnownValues(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "a"},
		{51, "Z"},
		{52, "ba"},
		{1234567890, "dmSkYk"},
	}
	for _, c := range cases {
		got, err := EncodeID(c.n)
		assert.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestEncodeIDNegative(t *testing.T) {
	_, err := EncodeID(-1)
	assert.Error(t, err)
}

func TestDecodeIDInvalidCharacter(t *testing.T) {
	_, err := DecodeID("a1b")
	assert.Error(t, err)
}

func TestDecodeIDEmpty(t *testing.T) {
	_, err := DecodeID("")
	assert.Error(t, err)
}

func TestCodecRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 51, 52, 53, 2703, 2704, 1234567890, 999999} {
		code, err := EncodeID(n)
		assert.NoError(t, err)
		assert.NotEmpty(t, code)
		for _, r := range code {
			assert.Contains(t, codecAlphabet, string(r))
		}

		decoded, err := DecodeID(code)
		assert.NoError(t, err)
		assert.Equal(t, n, decoded)
	}
}
