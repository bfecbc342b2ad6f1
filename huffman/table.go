package huffman

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// symbolCode is the per-symbol (length, value) pair stored in a Code.
type symbolCode struct {
	length uint8
	value  uint16
}

// Code is the compression table: a dense, O(1)-lookup mapping from each of
// the NumSymbols symbols to its canonical (code_length, code_value) pair.
// A zero length means the symbol never appears in the payload.
type Code [NumSymbols]symbolCode

// Len returns the code length, in bits, assigned to symbol s. Zero means s
// is absent from the payload.
func (c *Code) Len(symbol int) uint8 {
	return c[symbol].length
}

// Value returns the canonical code value assigned to symbol s, significant
// in its low Len(s) bits.
func (c *Code) Value(symbol int) uint16 {
	return c[symbol].value
}

// Lengths extracts the length vector suitable for writing into a container
// header: one byte per symbol, 0..255 then EOS.
func (c *Code) Lengths() [NumSymbols]byte {
	var out [NumSymbols]byte
	for s := range c {
		out[s] = byte(c[s].length)
	}
	return out
}

func (c *Code) String() string {
	return fmt.Sprintf("huffman.Code{%d live symbols}", c.liveCount())
}

func (c *Code) liveCount() int {
	n := 0
	for _, sc := range c {
		if sc.length > 0 {
			n++
		}
	}
	return n
}

// NewCodeFromFrequencies builds a length-limited canonical Huffman code from
// a dense frequency vector indexed by symbol (0..255 plus EOS at index EOS).
// A caller that has not already counted EOS gets it treated as occurring
// exactly once: every payload carries exactly one EOS marker, so its code
// must always exist even when the caller forgot to account for it.
func NewCodeFromFrequencies(freqs [NumSymbols]int) (*Code, error) {
	for s, f := range freqs {
		if f < 0 {
			return nil, fmt.Errorf("huffman: negative frequency for symbol %d", s)
		}
	}

	live := bitset.New(NumSymbols)
	for s, f := range freqs {
		if f > 0 {
			live.Set(uint(s))
		}
	}
	if live.Count() == 0 {
		return nil, fmt.Errorf("huffman: no live symbols")
	}

	freqs[EOS] = 1

	root := buildTree(freqs)

	var codeLens [NumSymbols]int
	depths(root, &codeLens)

	return NewCodeFromLengths(codeLens)
}

// NewCodeFromLengths rebuilds a canonical Code purely from a length vector,
// applying the same limiting pass a fresh build would. The pass leaves
// lengths it has already produced unchanged, such as those of a Code from
// NewCodeFromFrequencies; other lengths whose Kraft sum is below 1 can be
// shortened by its deflate pass. This
// is what both the compressor (to fold the limiter's adjustments back into
// its working table) and the decompressor (reconstructing the code from
// the header's length table alone) call.
func NewCodeFromLengths(codeLens [NumSymbols]int) (*Code, error) {
	limitLengths(&codeLens)

	records := sortedRecords(codeLens)
	assignCodeValues(records)

	var code Code
	for _, r := range records {
		if r.codeLen == 0 {
			continue
		}
		if r.codeLen > MaxCodeLen {
			return nil, fmt.Errorf("huffman: code length %d for symbol %d exceeds MaxCodeLen %d", r.codeLen, r.symbol, MaxCodeLen)
		}
		code[r.symbol] = symbolCode{length: uint8(r.codeLen), value: r.codeValue}
	}
	return &code, nil
}

// DecodeTable is the flat lookup table used to decode one symbol per
// MaxCodeLen-bit window of input: for any index i read as the next
// MaxCodeLen bits of input MSB-first, Symbol[i] is the symbol whose code is
// a prefix of i and Length[i] is that code's length.
type DecodeTable struct {
	Symbol [DecodeTableSize]int
	Length [DecodeTableSize]uint8
}

// NewDecodeTable expands a Code into a DecodeTable. Indices not covered by
// any codeword (possible when Kraft's sum is strictly below 1) are left
// zero-valued and must never be read during a well-formed decode.
func NewDecodeTable(c *Code) *DecodeTable {
	var t DecodeTable
	for symbol, sc := range c {
		if sc.length == 0 {
			continue
		}
		shift := uint(MaxCodeLen - int(sc.length))
		first := int(sc.value) << shift
		last := (int(sc.value)+1)<<shift - 1
		for i := first; i <= last; i++ {
			t.Symbol[i] = symbol
			t.Length[i] = sc.length
		}
	}
	return &t
}
