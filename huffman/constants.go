// Package huffman builds length-limited canonical Huffman codes over the
// fixed 257-symbol alphabet used by the fg2019 container format (the 256
// byte values plus a synthetic end-of-stream symbol), and the flat lookup
// table used to decode them in constant time.
package huffman

const (
	// NumSymbols is the size of the coded alphabet: every byte value plus EOS.
	NumSymbols = 257

	// EOS is the synthetic end-of-stream symbol appended once to every payload.
	EOS = 256

	// MaxCodeLen is the hard cap on any symbol's code length, enforced by
	// limitLengths so the decoder table can be indexed by a fixed MaxCodeLen-bit
	// window.
	MaxCodeLen = 12

	// DecodeTableSize is the number of entries in a DecodeTable: one per
	// possible MaxCodeLen-bit window.
	DecodeTableSize = 1 << MaxCodeLen
)
