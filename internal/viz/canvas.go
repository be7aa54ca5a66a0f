package viz

import "strings"

// Braille cells pack 2x4 dots per terminal character, giving the
// canvas a sub-character dot grid of (Width*2) x (Height*4).
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		if c.Grid[i] == nil {
			c.Grid[i] = make([]rune, c.Width)
		}
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // empty braille cell
		}
	}
}

// Set lights the dot at sub-character coordinates (x, y). Out-of-range
// coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.Grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
