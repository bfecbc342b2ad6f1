// Package fgz implements the fg2019 container: a fixed header (magic,
// payload byte count, per-symbol code length table) followed by a
// canonical-Huffman-coded payload, and the buffered streaming encoder and
// decoder that produce and consume it.
package fgz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/fg2019/huffcat/huffman"
)

// Magic is the fixed 6-byte ASCII marker every container begins with.
const Magic = "FG2019"

// BufSize is the size, in bytes, of the fixed read/write buffers used by
// the streaming encoder and decoder.
const BufSize = 1024

// Header is the fixed-layout preamble of an fg2019 container: the magic
// marker, the payload length in bytes, and the code length per symbol
// (0..255 then EOS), indexed by symbol value.
type Header struct {
	PayloadSize uint64
	CodeLens    [huffman.NumSymbols]byte
}

// WriteTo writes the header in a fixed field order: magic, then an 8-byte
// little-endian payload size, then the 257-byte length table. Encoder and
// decoder must agree on this order byte-for-byte since there is no
// self-describing framing around it.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var n int64

	written, err := io.WriteString(w, Magic)
	n += int64(written)
	if err != nil {
		return n, fmt.Errorf("fgz: write magic: %w", err)
	}

	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], h.PayloadSize)
	wn, err := w.Write(sizeBuf[:])
	n += int64(wn)
	if err != nil {
		return n, fmt.Errorf("fgz: write payload size: %w", err)
	}

	wn, err = w.Write(h.CodeLens[:])
	n += int64(wn)
	if err != nil {
		return n, fmt.Errorf("fgz: write length table: %w", err)
	}

	return n, nil
}

// ErrMagicMissing is returned by ReadFrom when the first bytes of the
// stream do not match Magic byte-for-byte.
var ErrMagicMissing = errors.New("fgz: magic missing")

// ErrMalformedHeader is returned by ReadFrom when the stream is truncated
// before the payload-size field or the length table has been fully read.
var ErrMalformedHeader = errors.New("fgz: malformed header")

// ReadFrom parses a Header, verifying the magic marker first. A short read
// anywhere in the header is reported as ErrMalformedHeader, except a
// magic mismatch (including a too-short magic), which is ErrMagicMissing.
func (h *Header) ReadFrom(r io.Reader) (int64, error) {
	var magicBuf [len(Magic)]byte
	n, err := io.ReadFull(r, magicBuf[:])
	if err != nil {
		return int64(n), fmt.Errorf("%w: %v", ErrMagicMissing, err)
	}
	if !bytes.Equal(magicBuf[:], []byte(Magic)) {
		return int64(n), ErrMagicMissing
	}

	var sizeBuf [8]byte
	sn, err := io.ReadFull(r, sizeBuf[:])
	n += int64(sn)
	if err != nil {
		return n, fmt.Errorf("%w: payload size: %v", ErrMalformedHeader, err)
	}
	h.PayloadSize = binary.LittleEndian.Uint64(sizeBuf[:])

	ln, err := io.ReadFull(r, h.CodeLens[:])
	n += int64(ln)
	if err != nil {
		return n, fmt.Errorf("%w: length table: %v", ErrMalformedHeader, err)
	}

	return n, nil
}

// payloadSize computes ceil(sum(freq[s] * len[s]) / 8) over all symbols: the
// number of whole bytes the coded payload occupies once packed MSB-first
// with no padding between codewords. freqs[huffman.EOS] must already be 1.
func payloadSize(freqs [huffman.NumSymbols]int, code *huffman.Code) uint64 {
	var bits uint64
	for s, f := range freqs {
		bits += uint64(f) * uint64(code.Len(s))
	}
	return (bits + 7) / 8
}
