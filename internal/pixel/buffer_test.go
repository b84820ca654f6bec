package pixel

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mustRows builds a buffer from rows or fails the test.
func mustRows(t *testing.T, rows [][]RGB) *Buffer {
	t.Helper()
	b, err := FromRows(rows, 255)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	return b
}

// grayRows builds a buffer whose pixels are Gray(v) for each value.
func grayRows(t *testing.T, values [][]int) *Buffer {
	t.Helper()
	rows := make([][]RGB, len(values))
	for i, line := range values {
		rows[i] = make([]RGB, len(line))
		for j, v := range line {
			rows[i][j] = Gray(v)
		}
	}
	return mustRows(t, rows)
}

// patternBuffer creates a width x height buffer where every pixel is distinct.
func patternBuffer(t *testing.T, width, height int) *Buffer {
	t.Helper()
	b, err := New(width, height, 255)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := row*width + col
			b.Set(row, col, RGB{R: (i * 7) % 256, G: (i * 13) % 256, B: (i * 29) % 256})
		}
	}
	return b
}

func TestNew(t *testing.T) {
	b, err := New(3, 2, 255)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Width != 3 || b.Height != 2 || b.MaxValue != 255 {
		t.Errorf("dimensions: got %dx%d max %d, want 3x2 max 255", b.Width, b.Height, b.MaxValue)
	}
	if len(b.Pix) != 6 {
		t.Errorf("len(Pix): got %d, want 6", len(b.Pix))
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxValue      int
	}{
		{"zero width", 0, 5, 255},
		{"zero height", 5, 0, 255},
		{"negative width", -1, 5, 255},
		{"zero max", 5, 5, 0},
		{"max too large", 5, 5, 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, tt.maxValue)
			if !errors.Is(err, ErrInvalidBuffer) {
				t.Errorf("got %v, want ErrInvalidBuffer", err)
			}
		})
	}
}

func TestFromRows(t *testing.T) {
	b := mustRows(t, [][]RGB{
		{{1, 2, 3}, {4, 5, 6}},
		{{7, 8, 9}, {10, 11, 12}},
	})

	if got := b.At(1, 0); got != (RGB{7, 8, 9}) {
		t.Errorf("At(1,0): got %v, want {7 8 9}", got)
	}
	if got := b.At(0, 1); got != (RGB{4, 5, 6}) {
		t.Errorf("At(0,1): got %v, want {4 5 6}", got)
	}
	if diff := cmp.Diff([][]RGB{{{1, 2, 3}, {4, 5, 6}}, {{7, 8, 9}, {10, 11, 12}}}, b.Rows()); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRows_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rows [][]RGB
	}{
		{"no rows", nil},
		{"empty row", [][]RGB{{}}},
		{"ragged", [][]RGB{{{0, 0, 0}, {0, 0, 0}}, {{0, 0, 0}}}},
		{"channel too large", [][]RGB{{{256, 0, 0}}}},
		{"negative channel", [][]RGB{{{0, -1, 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRows(tt.rows, 255); !errors.Is(err, ErrInvalidBuffer) {
				t.Errorf("got %v, want ErrInvalidBuffer", err)
			}
		})
	}
}

func TestBuffer_CloneIsIndependent(t *testing.T) {
	b := patternBuffer(t, 4, 3)
	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("Clone is not equal to its source")
	}
	c.Set(0, 0, RGB{1, 1, 1})
	if b.Equal(c) {
		t.Error("modifying the clone changed the source")
	}
}

func TestBuffer_Equal(t *testing.T) {
	a := grayRows(t, [][]int{{1, 2}})
	b := grayRows(t, [][]int{{1, 2}})
	c := grayRows(t, [][]int{{1}, {2}})

	if !a.Equal(b) {
		t.Error("identical buffers reported unequal")
	}
	if a.Equal(c) {
		t.Error("buffers with different shapes reported equal")
	}
	var nilBuf *Buffer
	if a.Equal(nilBuf) {
		t.Error("buffer reported equal to nil")
	}
}

func TestBuffer_AtOutOfRangePanics(t *testing.T) {
	b := patternBuffer(t, 2, 2)
	defer func() {
		if recover() == nil {
			t.Error("At(2,0) did not panic")
		}
	}()
	b.At(2, 0)
}

func TestBuffer_IsGray(t *testing.T) {
	if !grayRows(t, [][]int{{0, 100, 255}}).IsGray() {
		t.Error("gray buffer not detected")
	}
	if mustRows(t, [][]RGB{{{1, 2, 3}}}).IsGray() {
		t.Error("colour buffer reported gray")
	}
}

func TestBuffer_Validate(t *testing.T) {
	b := &Buffer{Width: 2, Height: 2, MaxValue: 255, Pix: make([]RGB, 3)}
	if err := b.Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("short Pix: got %v, want ErrInvalidBuffer", err)
	}

	b = &Buffer{Width: 1, Height: 1, MaxValue: 15, Pix: []RGB{{16, 0, 0}}}
	if err := b.Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("channel above max: got %v, want ErrInvalidBuffer", err)
	}

	if err := (&Buffer{}).Validate(); err != nil {
		t.Errorf("zero buffer: got %v, want nil", err)
	}
}
