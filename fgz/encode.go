package fgz

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/fg2019/huffcat/huffman"
)

// ErrEmptyInput is returned by Compress when given a zero-byte input.
var ErrEmptyInput = errors.New("fgz: input is empty")

// Compress builds a length-limited canonical Huffman code over input's byte
// frequencies, writes the fg2019 header, then streams the coded payload
// (terminated by the EOS symbol) to w. w is wrapped in a BufSize-byte
// buffered writer so the underlying stream sees whole-buffer writes rather
// than one small write per bit-flush.
func Compress(input []byte, w io.Writer) error {
	if len(input) == 0 {
		return ErrEmptyInput
	}

	var freqs [huffman.NumSymbols]int
	for _, b := range input {
		freqs[b]++
	}

	code, err := huffman.NewCodeFromFrequencies(freqs)
	if err != nil {
		return fmt.Errorf("fgz: building code: %w", err)
	}
	freqs[huffman.EOS] = 1 // NewCodeFromFrequencies's own invariant, mirrored for payloadSize

	header := Header{
		PayloadSize: payloadSize(freqs, code),
		CodeLens:    code.Lengths(),
	}
	if _, err := header.WriteTo(w); err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, BufSize)
	bitW := bitio.NewWriter(bw)

	for _, b := range input {
		if err := bitW.WriteBits(uint64(code.Value(int(b))), code.Len(int(b))); err != nil {
			return fmt.Errorf("fgz: writing payload: %w", err)
		}
	}
	if err := bitW.WriteBits(uint64(code.Value(huffman.EOS)), code.Len(huffman.EOS)); err != nil {
		return fmt.Errorf("fgz: writing EOS: %w", err)
	}
	// Close flushes exactly the bits written, padding the final byte with
	// zeros if needed and never emitting a spurious extra byte.
	if err := bitW.Close(); err != nil {
		return fmt.Errorf("fgz: closing bit writer: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("fgz: flushing output: %w", err)
	}

	return nil
}
