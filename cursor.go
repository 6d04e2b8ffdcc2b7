package skimxml

import "bytes"

// splitOnChar splits window on sep into dst without copying. The
// delimiter itself is dropped; empty segments are kept. Needing more
// segments than dst has capacity for is a malformed document.
func splitOnChar(window []byte, sep byte, dst [][]byte) ([][]byte, error) {
	out := dst[:0]

	for {
		if len(out) == cap(dst) {
			return nil, ErrMalformedInput
		}

		i := bytes.IndexByte(window, sep)

		if i < 0 {
			return append(out, window), nil
		}

		out = append(out, window[:i])
		window = window[i+1:]
	}
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

func trimQuotes(value []byte) []byte {
	return bytes.TrimFunc(value, isQuote)
}
