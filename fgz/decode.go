package fgz

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/fg2019/huffcat/huffman"
)

// ErrTruncatedPayload is returned by Decompress when fewer payload bytes
// are available than the header declared, or when the bit stream never
// decodes to EOS and the defensive iteration cap trips.
var ErrTruncatedPayload = errors.New("fgz: truncated payload")

// maxDecodeIterationSlack bounds how many symbols past the payload's
// declared byte count the decoder will attempt before giving up and
// reporting ErrTruncatedPayload instead of looping forever on a corrupt
// stream that never produces EOS. A payload of N bytes can hold at most 8*N
// single-bit symbols, so 8*N+1 iterations is already generous; this just
// needs to be a priori finite.
const maxDecodeIterationSlack = 64

// Decompress reads an fg2019 container from r (header, then payload) and
// writes the original byte stream to w.
func Decompress(r io.Reader, w io.Writer) error {
	var header Header
	if _, err := header.ReadFrom(r); err != nil {
		return err
	}

	var codeLens [huffman.NumSymbols]int
	for s, l := range header.CodeLens {
		codeLens[s] = int(l)
	}
	code, err := huffman.NewCodeFromLengths(codeLens)
	if err != nil {
		return fmt.Errorf("fgz: rebuilding code from header: %w", err)
	}
	table := huffman.NewDecodeTable(code)

	br := bufio.NewReaderSize(r, BufSize)

	var bytesRead uint64
	var truncated bool
	window := newBitWindow(func() (byte, bool) {
		if bytesRead >= header.PayloadSize {
			return 0, false
		}
		b, err := br.ReadByte()
		if err != nil {
			truncated = true
			return 0, false
		}
		bytesRead++
		return b, true
	})

	bw := bufio.NewWriterSize(w, BufSize)

	maxIterations := header.PayloadSize*8 + maxDecodeIterationSlack
	for iter := uint64(0); ; iter++ {
		if iter > maxIterations {
			return ErrTruncatedPayload
		}

		window.refill()
		if truncated {
			return fmt.Errorf("%w: declared %d bytes, read %d", ErrTruncatedPayload, header.PayloadSize, bytesRead)
		}

		idx := window.peek(uint(huffman.MaxCodeLen))
		length := table.Length[idx]
		if length == 0 {
			// no codeword covers this window: either the payload is
			// corrupt/truncated, or we have legitimately run out of bits
			// after EOS without finding it.
			if window.exhausted() {
				return ErrTruncatedPayload
			}
			return fmt.Errorf("%w: unmapped decode table entry", ErrMalformedPayload)
		}
		symbol := table.Symbol[idx]
		window.consume(uint(length))

		if symbol == huffman.EOS {
			break
		}

		if err := bw.WriteByte(byte(symbol)); err != nil {
			return fmt.Errorf("fgz: writing output: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("fgz: flushing output: %w", err)
	}

	return nil
}

// ErrMalformedPayload is returned when the payload's bits do not decode
// through the header's own code table — a corrupt (not merely truncated)
// stream.
var ErrMalformedPayload = errors.New("fgz: malformed payload")
