package huffman

import "golang.org/x/exp/slices"

// symbolRecord is a symbol paired with its code length and, once assigned,
// its canonical code value. codeValue is meaningful only once
// assignCodeValues has run.
type symbolRecord struct {
	symbol    int
	codeLen   int
	codeValue uint16
}

// sortedRecords builds the NumSymbols records from a length vector and
// orders them by (length ascending, symbol ascending) — the ordering both
// the encoder and the decoder must agree on for canonical code generation
// to be reproducible from the length table alone.
func sortedRecords(codeLens [NumSymbols]int) []symbolRecord {
	records := make([]symbolRecord, NumSymbols)
	for s := range records {
		records[s] = symbolRecord{symbol: s, codeLen: codeLens[s]}
	}
	slices.SortFunc(records, func(a, b symbolRecord) int {
		if a.codeLen != b.codeLen {
			return a.codeLen - b.codeLen
		}
		return a.symbol - b.symbol
	})
	return records
}

// assignCodeValues assigns canonical code values in place to a
// (length, symbol)-sorted record slice. Records with codeLen == 0 (absent
// symbols) are left at codeValue == 0 and never read by the table
// builders.
func assignCodeValues(records []symbolRecord) {
	first := -1
	for i, r := range records {
		if r.codeLen > 0 {
			records[i].codeValue = 0
			first = i
			break
		}
	}
	if first == -1 {
		return
	}

	prevLen := records[first].codeLen
	var prevVal uint16

	for i := first + 1; i < len(records); i++ {
		if records[i].codeLen == 0 {
			continue
		}
		prevVal = (prevVal + 1) << uint(records[i].codeLen-prevLen)
		records[i].codeValue = prevVal
		prevLen = records[i].codeLen
	}
}
