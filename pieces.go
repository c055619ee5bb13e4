package main

// Mask is a rectangular boolean grid describing which cells a piece
// occupies. Masks are treated as immutable: rotation returns a new value.
type Mask [][]bool

func (m Mask) Height() int {
	return len(m)
}

func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Cells counts the occupied cells of the mask.
func (m Mask) Cells() int {
	count := 0
	for _, row := range m {
		for _, occupied := range row {
			if occupied {
				count++
			}
		}
	}
	return count
}

// Rotated returns a copy of the mask rotated 90 degrees counterclockwise,
// so out[i][j] == m[j][cols-1-i]. This is the single canonical rotation;
// there is no wall-kick correction anywhere.
func (m Mask) Rotated() Mask {
	rows := m.Height()
	cols := m.Width()
	out := make(Mask, cols)
	for i := range out {
		out[i] = make([]bool, rows)
		for j := 0; j < rows; j++ {
			out[i][j] = m[j][cols-1-i]
		}
	}
	return out
}

// parseMask builds a mask from rows of '#' (occupied) and '.' characters.
// Only used for the package-level shape table, so bad literals panic.
func parseMask(rows ...string) Mask {
	mask := make(Mask, len(rows))
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			panic("piece mask rows must have equal width")
		}
		mask[i] = make([]bool, len(row))
		for j, char := range row {
			switch char {
			case '#':
				mask[i][j] = true
			case '.':
			default:
				panic("piece mask cells must be '#' or '.'")
			}
		}
	}
	return mask
}

// The seven standard tetrominoes.
var tetrominoes = []Mask{
	parseMask("####"), // I
	parseMask( // O
		"##",
		"##",
	),
	parseMask( // T
		"###",
		".#.",
	),
	parseMask( // S
		".##",
		"##.",
	),
	parseMask( // Z
		"##.",
		".##",
	),
	parseMask( // J
		"#..",
		"###",
	),
	parseMask( // L
		"..#",
		"###",
	),
}
