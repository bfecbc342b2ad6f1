package fgz

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, input []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	require.NoError(t, Compress(input, &compressed))

	var decompressed bytes.Buffer
	require.NoError(t, Decompress(bytes.NewReader(compressed.Bytes()), &decompressed))

	require.Equal(t, input, decompressed.Bytes())
	return compressed.Bytes()
}

func TestRoundTripSingleByte(t *testing.T) {
	out := roundTrip(t, []byte{0x41})
	require.Equal(t, []byte(Magic), out[:len(Magic)])
}

func TestRoundTripRepeatedByte(t *testing.T) {
	compressed := roundTrip(t, []byte{0x41, 0x41, 0x41, 0x41})
	require.Less(t, len(compressed), 4+len(Magic)+8+257, "compressed form should not blow up")
}

func TestRoundTripAlternatingBytes(t *testing.T) {
	input := []byte{0x41, 0x42, 0x41, 0x42, 0x41, 0x42, 0x41, 0x42}
	roundTrip(t, input)

	var header Header
	var compressed bytes.Buffer
	require.NoError(t, Compress(input, &compressed))
	_, err := header.ReadFrom(bytes.NewReader(compressed.Bytes()))
	require.NoError(t, err)

	for s, l := range header.CodeLens {
		if s == 'A' || s == 'B' || s == 256 {
			require.NotZero(t, l, "symbol %d should have a non-zero code length", s)
		} else {
			require.Zero(t, l, "symbol %d should not appear", s)
		}
	}
}

func TestRoundTripAllByteValues(t *testing.T) {
	input := make([]byte, 257)
	for i := 0; i < 256; i++ {
		input[i] = byte(i)
	}
	input[256] = 0x00
	roundTrip(t, input)
}

func TestRoundTripRandom(t *testing.T) {
	for _, n := range []int{1, 2, 17, 1023, 1024, 1025, 5000} {
		input := make([]byte, n)
		for i := range input {
			input[i] = byte(rand.Intn(256)) //nolint:gosec
		}
		roundTrip(t, input)
	}
}

func TestCompressEmptyInput(t *testing.T) {
	var out bytes.Buffer
	err := Compress(nil, &out)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestDecompressTamperedMagic(t *testing.T) {
	var compressed bytes.Buffer
	require.NoError(t, Compress([]byte("hello"), &compressed))

	tampered := compressed.Bytes()
	tampered[0] = 'G'

	var out bytes.Buffer
	err := Decompress(bytes.NewReader(tampered), &out)
	require.ErrorIs(t, err, ErrMagicMissing)
}

func TestDecompressTruncatedHeader(t *testing.T) {
	var out bytes.Buffer
	err := Decompress(bytes.NewReader([]byte(Magic)), &out)
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecompressTruncatedPayload(t *testing.T) {
	var compressed bytes.Buffer
	require.NoError(t, Compress(bytes.Repeat([]byte("the quick brown fox"), 20), &compressed))

	truncated := compressed.Bytes()[:compressed.Len()-3]

	var out bytes.Buffer
	err := Decompress(bytes.NewReader(truncated), &out)
	require.ErrorIs(t, err, ErrTruncatedPayload)
}
