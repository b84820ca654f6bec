package ppm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ironsheep/ppm-tools/internal/pixel"
)

// Encode writes buf to w as a P3 image, one sample per line.
//
// A buffer with no max value is written with the 8-bit default (255).
func Encode(w io.Writer, buf *pixel.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("refusing to encode: %w", err)
	}
	maxValue := buf.MaxValue
	if maxValue <= 0 {
		maxValue = pixel.DefaultMaxValue
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", Magic, buf.Width, buf.Height, maxValue); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	line := make([]byte, 0, 8)
	for _, p := range buf.Pix {
		for _, v := range [3]int{p.R, p.G, p.B} {
			line = strconv.AppendInt(line[:0], int64(v), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("failed to write samples: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush image: %w", err)
	}
	return nil
}

// Save writes buf to path as a P3 image, replacing any existing file.
func Save(path string, buf *pixel.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
