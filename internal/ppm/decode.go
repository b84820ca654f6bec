package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ironsheep/ppm-tools/internal/pixel"
)

// Magic is the P3 file signature.
const Magic = "P3"

// maxDimension bounds width and height so their product cannot overflow.
const maxDimension = 1 << 15

// initialPixels caps the pixel slice allocated up front. Larger images grow
// as samples arrive, so memory follows the input size rather than the header.
const initialPixels = 1 << 16

// Decode reads a P3 image from r.
//
// Returns:
//   - *pixel.Buffer: the decoded image with the header's width, height and max value.
//   - error: *FormatError for a bad header or sample, *TruncatedDataError when
//     the input ends early, or the underlying read error.
func Decode(r io.Reader) (*pixel.Buffer, error) {
	tr := newTokenReader(r)

	magic, err := tr.next()
	if err != nil {
		return nil, headerErr("magic", err)
	}
	if magic != Magic {
		return nil, &FormatError{Field: "magic", Token: magic, Reason: "expected " + Magic}
	}

	width, err := tr.headerInt("width", 1, maxDimension)
	if err != nil {
		return nil, err
	}
	height, err := tr.headerInt("height", 1, maxDimension)
	if err != nil {
		return nil, err
	}
	maxValue, err := tr.headerInt("max value", 1, pixel.MaxSupportedValue)
	if err != nil {
		return nil, err
	}

	total := width * height
	pix := make([]pixel.RGB, 0, min(total, initialPixels))

	want := total * 3
	samples := 0
	for len(pix) < total {
		var ch [3]int
		for c := range ch {
			tok, err := tr.next()
			if errors.Is(err, io.EOF) {
				return nil, &TruncatedDataError{Want: want, Got: samples}
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read sample: %w", err)
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &FormatError{Field: "sample", Token: tok, Reason: "not an integer"}
			}
			if v < 0 || v > maxValue {
				return nil, &FormatError{Field: "sample", Token: tok, Reason: fmt.Sprintf("outside [0,%d]", maxValue)}
			}
			ch[c] = v
			samples++
		}
		pix = append(pix, pixel.RGB{R: ch[0], G: ch[1], B: ch[2]})
	}

	buf := &pixel.Buffer{Width: width, Height: height, MaxValue: maxValue, Pix: pix}
	return buf, nil
}

// Load opens path and decodes it as a P3 image.
func Load(path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return buf, nil
}

// tokenReader splits a P3 stream into whitespace-separated tokens, dropping
// '#' comments that run to the end of the line.
type tokenReader struct {
	r   *bufio.Reader
	tok []byte
}

func newTokenReader(r io.Reader) *tokenReader {
	return &tokenReader{r: bufio.NewReader(r)}
}

// next returns the next token, or io.EOF when the input is exhausted.
func (t *tokenReader) next() (string, error) {
	t.tok = t.tok[:0]
	comment := false
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(t.tok) > 0 {
				return string(t.tok), nil
			}
			return "", err
		}
		switch {
		case comment:
			if b == '\n' || b == '\r' {
				comment = false
			}
		case b == '#':
			if len(t.tok) > 0 {
				// A comment directly after a token ends that token.
				return string(t.tok), t.skipComment()
			}
			comment = true
		case isSpace(b):
			if len(t.tok) > 0 {
				return string(t.tok), nil
			}
		default:
			t.tok = append(t.tok, b)
		}
	}
}

func (t *tokenReader) skipComment() error {
	for {
		b, err := t.r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if b == '\n' || b == '\r' {
			return nil
		}
	}
}

func (t *tokenReader) headerInt(field string, min, max int) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, headerErr(field, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &FormatError{Field: field, Token: tok, Reason: "not an integer"}
	}
	if v < min || v > max {
		return 0, &FormatError{Field: field, Token: tok, Reason: fmt.Sprintf("outside [%d,%d]", min, max)}
	}
	return v, nil
}

func headerErr(field string, err error) error {
	if errors.Is(err, io.EOF) {
		return &FormatError{Field: field, Reason: "unexpected end of header"}
	}
	return fmt.Errorf("failed to read %s: %w", field, err)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
