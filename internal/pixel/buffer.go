package pixel

// DefaultMaxValue is the channel ceiling assumed when a buffer does not carry one.
const DefaultMaxValue = 255

// MaxSupportedValue is the largest channel ceiling the P3 format allows.
const MaxSupportedValue = 65535

// RGB is a single pixel with three integer channels in [0, MaxValue].
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Gray returns a pixel with all three channels set to v.
func Gray(v int) RGB {
	return RGB{R: v, G: v, B: v}
}

// Mean returns the truncated unweighted channel average floor((r+g+b)/3).
func (p RGB) Mean() int {
	return (p.R + p.G + p.B) / 3
}

// Buffer is a rectangular RGB raster.
//
// Pix holds Width*Height pixels in row-major order. A Buffer produced by New,
// FromRows or any transformation in this package satisfies Validate.
type Buffer struct {
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	MaxValue int   `json:"max_value"`
	Pix      []RGB `json:"-"`
}

// New returns a black buffer of the given size.
//
// Width and height must be positive and maxValue must lie in [1, 65535].
func New(width, height, maxValue int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidf("new", "dimensions %dx%d must be positive", width, height)
	}
	if maxValue < 1 || maxValue > MaxSupportedValue {
		return nil, invalidf("new", "max value %d outside [1,%d]", maxValue, MaxSupportedValue)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		MaxValue: maxValue,
		Pix:      make([]RGB, width*height),
	}, nil
}

// FromRows builds a buffer from a [row][col] grid.
//
// Every row must have the same, non-zero length and every channel must lie in
// [0, maxValue]. The rows are copied; the caller keeps ownership of the slice.
func FromRows(rows [][]RGB, maxValue int) (*Buffer, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, invalidf("from rows", "no pixels")
	}
	b, err := New(len(rows[0]), len(rows), maxValue)
	if err != nil {
		return nil, err
	}
	for row, line := range rows {
		if len(line) != b.Width {
			return nil, invalidf("from rows", "row %d has %d pixels, want %d", row, len(line), b.Width)
		}
		copy(b.Pix[row*b.Width:], line)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate reports whether b satisfies the Buffer invariants.
func (b *Buffer) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return invalidf("validate", "negative dimensions %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height {
		return invalidf("validate", "%d pixels for %dx%d", len(b.Pix), b.Width, b.Height)
	}
	max := b.maxValue()
	for i, p := range b.Pix {
		if !inRange(p.R, max) || !inRange(p.G, max) || !inRange(p.B, max) {
			return invalidf("validate", "pixel (%d,%d) = %v outside [0,%d]", i/b.Width, i%b.Width, p, max)
		}
	}
	return nil
}

// Empty reports whether the buffer holds no pixels.
func (b *Buffer) Empty() bool {
	return b.Width == 0 || b.Height == 0 || len(b.Pix) == 0
}

// At returns the pixel at (row, col). It panics if the position is out of range,
// like a slice index would.
func (b *Buffer) At(row, col int) RGB {
	return b.Pix[b.offset(row, col)]
}

// Set stores p at (row, col), panicking on an out-of-range position.
func (b *Buffer) Set(row, col int, p RGB) {
	b.Pix[b.offset(row, col)] = p
}

// InBounds reports whether (row, col) addresses a pixel of b.
func (b *Buffer) InBounds(row, col int) bool {
	return row >= 0 && row < b.Height && col >= 0 && col < b.Width
}

// Row returns the pixels of one row. The slice aliases b.
func (b *Buffer) Row(row int) []RGB {
	start := row * b.Width
	return b.Pix[start : start+b.Width : start+b.Width]
}

// Rows returns a copied [row][col] view of the buffer.
func (b *Buffer) Rows() [][]RGB {
	rows := make([][]RGB, b.Height)
	for row := range rows {
		rows[row] = append([]RGB(nil), b.Row(row)...)
	}
	return rows
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	out := b.like(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether two buffers have identical dimensions, max value and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || b.maxValue() != o.maxValue() {
		return false
	}
	if len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// IsGray reports whether every pixel has equal channels.
func (b *Buffer) IsGray() bool {
	for _, p := range b.Pix {
		if p.R != p.G || p.G != p.B {
			return false
		}
	}
	return true
}

func (b *Buffer) offset(row, col int) int {
	if !b.InBounds(row, col) {
		panic("pixel: position out of range")
	}
	return row*b.Width + col
}

// like allocates an output buffer with b's max value and the given dimensions.
func (b *Buffer) like(width, height int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		MaxValue: b.maxValue(),
		Pix:      make([]RGB, width*height),
	}
}

func (b *Buffer) maxValue() int {
	if b.MaxValue <= 0 {
		return DefaultMaxValue
	}
	return b.MaxValue
}

func inRange(v, max int) bool {
	return v >= 0 && v <= max
}
