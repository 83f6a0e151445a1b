package tableau

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// This file contains the binary encoding used to persist a Formula as an
// opaque blob, e.g. in a submission history row. A Formula's canonical
// string form (Formula.String) is itself a complete, lossless encoding, so
// Codec only needs to round-trip that string through encoding.BinaryMarshaler
// for callers such as rezi.EncBinary/rezi.DecBinary.

// Codec adapts a Formula to encoding.BinaryMarshaler/BinaryUnmarshaler so it
// can be stored by code that persists arbitrary binary-marshalable values
// (the server's sqlite-backed submission store).
type Codec struct {
	F Formula
}

// MarshalBinary encodes the formula's canonical string form.
func (c Codec) MarshalBinary() ([]byte, error) {
	return encBinaryString(c.F.String()), nil
}

// UnmarshalBinary decodes a string previously produced by MarshalBinary and
// re-parses it. It fails if the stored text is no longer a well-formed
// formula, which should only happen on data corruption since every value
// ever encoded came from a successful Parse.
func (c *Codec) UnmarshalBinary(data []byte) error {
	s, _, err := decBinaryString(data)
	if err != nil {
		return fmt.Errorf("decode formula text: %w", err)
	}
	f, cat, _ := Parse(s)
	if cat == NotAFormula {
		return fmt.Errorf("decoded text is not a well-formed formula: %q", s)
	}
	c.F = f
	return nil
}

func encBinaryString(s string) []byte {
	enc := make([]byte, 0, len(s))

	chCount := 0
	for _, ch := range s {
		chBuf := make([]byte, utf8.UTFMax)
		byteLen := utf8.EncodeRune(chBuf, ch)
		enc = append(enc, chBuf[:byteLen]...)
		chCount++
	}

	countBytes := encBinaryInt(chCount)
	enc = append(countBytes, enc...)

	return enc
}

func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	for shift := 0; shift < 8; shift++ {
		enc[shift] = byte(i >> (8 * shift))
	}
	return enc
}

func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("data does not contain 8 bytes")
	}
	var val int
	for shift := 0; shift < 8; shift++ {
		val |= int(data[shift]) << (8 * shift)
	}
	return val, 8, nil
}

// decBinaryString returns the decoded string followed by the number of
// bytes consumed from data.
func decBinaryString(data []byte) (string, int, error) {
	runeCount, _, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decoding string rune count: %w", err)
	}
	data = data[8:]

	if runeCount < 0 {
		return "", 0, fmt.Errorf("string rune count < 0")
	}

	readBytes := 8
	var sb strings.Builder

	for i := 0; i < runeCount; i++ {
		ch, bytesRead := utf8.DecodeRune(data)
		if ch == utf8.RuneError {
			if bytesRead == 0 {
				return "", 0, fmt.Errorf("unexpected end of data in string")
			} else if bytesRead == 1 {
				return "", 0, fmt.Errorf("invalid UTF-8 encoding in string")
			}
			return "", 0, fmt.Errorf("invalid unicode replacement character in rune")
		}

		sb.WriteRune(ch)
		readBytes += bytesRead
		data = data[bytesRead:]
	}

	return sb.String(), readBytes, nil
}
