package main

import (
	"fmt"
	"math/rand"
	"time"
)

// Cell is the state of one board position. The numeric values matter: a row
// is complete only when its cells sum to 2*width, so a row still holding
// active (value 1) cells never clears even if every cell is occupied.
type Cell int8

const (
	CellEmpty  Cell = 0
	CellActive Cell = 1
	CellLocked Cell = 2
)

const (
	// framesPerDrop gates gravity: only every framesPerDrop-th Tick call
	// actually moves the piece down.
	framesPerDrop = 8

	// speedRampRate shortens the driver's pacing interval once per lock
	// event that cleared at least one row.
	speedRampRate = 0.95

	// softDropMultiplier is the row step applied to the next gated tick
	// after a soft-drop input.
	softDropMultiplier = 2
)

// lineClearPoints[k-1] is awarded for clearing k rows in one lock.
var lineClearPoints = [4]int{40, 100, 300, 1200}

// PieceSource supplies the next piece shape. Injected so games can be
// driven deterministically in tests.
type PieceSource interface {
	Pick() Mask
}

type randomSource struct {
	rng *rand.Rand
}

// NewRandomSource picks uniformly among the seven tetrominoes.
func NewRandomSource() PieceSource {
	return &randomSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *randomSource) Pick() Mask {
	return tetrominoes[s.rng.Intn(len(tetrominoes))]
}

// Grid is the falling-block state machine. It owns the board, the active
// piece, the next-piece slot, score and pacing speed. It performs no I/O
// and no timing: the driver calls Tick at its own cadence and reads
// Snapshot for rendering. Not safe for concurrent use.
type Grid struct {
	width  int
	height int
	cells  []Cell // row-major, row 0 = top

	current Mask // nil when no piece is falling
	row     int  // anchor: board row of current[0][0]
	col     int

	next           Mask
	score          int
	speed          float64
	frameCounter   int
	fallMultiplier int
	gameOver       bool
	source         PieceSource
}

// minBoardSide is the smallest board dimension that fits every tetromino
// in every orientation.
const minBoardSide = 4

// NewGrid returns an empty board with the next-piece slot primed. No piece
// is falling yet; call SpawnFirst to start play.
func NewGrid(width, height int, speed float64, source PieceSource) (*Grid, error) {
	if width < minBoardSide || height < minBoardSide {
		return nil, fmt.Errorf("board %dx%d too small, need at least %dx%d", width, height, minBoardSide, minBoardSide)
	}
	if speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %g", speed)
	}
	if source == nil {
		return nil, fmt.Errorf("piece source is required")
	}
	g := &Grid{
		width:          width,
		height:         height,
		cells:          make([]Cell, width*height),
		speed:          speed,
		fallMultiplier: 1,
		source:         source,
	}
	g.next = source.Pick()
	return g, nil
}

func (g *Grid) at(row, col int) Cell {
	return g.cells[row*g.width+col]
}

func (g *Grid) set(row, col int, value Cell) {
	if row >= 0 && row < g.height && col >= 0 && col < g.width {
		g.cells[row*g.width+col] = value
	}
}

// CanPlace reports whether the mask fits the board with its top-left at
// (row, col): every occupied mask cell must land in bounds and not on a
// locked cell. Active cells do not block, so a piece never collides with
// its own footprint. Pure query, no mutation.
func (g *Grid) CanPlace(mask Mask, row, col int) bool {
	for i, maskRow := range mask {
		for j, occupied := range maskRow {
			if !occupied {
				continue
			}
			r, c := row+i, col+j
			if c < 0 || c >= g.width || r < 0 || r >= g.height {
				return false
			}
			if g.at(r, c) == CellLocked {
				return false
			}
		}
	}
	return true
}

// drawCurrent writes value into every occupied cell of the active
// footprint.
func (g *Grid) drawCurrent(value Cell) {
	for i, maskRow := range g.current {
		for j, occupied := range maskRow {
			if occupied {
				g.set(g.row+i, g.col+j, value)
			}
		}
	}
}

// translate moves the active piece by the given offset if the oracle
// permits, erasing the old footprint and drawing the new one atomically.
// Reports whether the move happened.
func (g *Grid) translate(dRow, dCol int) bool {
	if g.current == nil {
		return false
	}
	if !g.CanPlace(g.current, g.row+dRow, g.col+dCol) {
		return false
	}
	g.drawCurrent(CellEmpty)
	g.row += dRow
	g.col += dCol
	g.drawCurrent(CellActive)
	return true
}

func (g *Grid) MoveLeft() {
	g.translate(0, -1)
}

func (g *Grid) MoveRight() {
	g.translate(0, 1)
}

// Rotate swaps in the counterclockwise-rotated mask at the same anchor when
// it fits. Blocked rotations are silent no-ops.
func (g *Grid) Rotate() {
	if g.current == nil {
		return
	}
	rotated := g.current.Rotated()
	if !g.CanPlace(rotated, g.row, g.col) {
		return
	}
	g.drawCurrent(CellEmpty)
	g.current = rotated
	g.drawCurrent(CellActive)
}

// SoftDrop accelerates gravity for the next gated tick only; the
// multiplier resets to 1 as soon as that tick executes.
func (g *Grid) SoftDrop() {
	if g.current == nil {
		return
	}
	g.fallMultiplier = softDropMultiplier
}

// Tick is one gravity-evaluation event. The frame counter always advances;
// the piece only moves on every framesPerDrop-th call. A gated tick tries
// the multiplied drop first and falls back to a single row, so a soft drop
// can never skip over a valid settle position. If even one row is blocked
// the piece locks.
func (g *Grid) Tick() {
	g.frameCounter++
	if g.current == nil {
		return
	}
	if g.frameCounter%framesPerDrop != 0 {
		g.drawCurrent(CellActive)
		return
	}
	step := g.fallMultiplier
	g.fallMultiplier = 1
	if g.translate(step, 0) {
		return
	}
	if step > 1 && g.translate(1, 0) {
		return
	}
	g.lock()
}

// lock settles the active piece permanently, resolves completed rows and
// hands the board to the next piece.
func (g *Grid) lock() {
	g.drawCurrent(CellLocked)
	g.current = nil
	g.clearLines()
	g.spawn(g.next)
	g.next = g.source.Pick()
}

// clearLines removes every complete row in a single pass by keeping the
// incomplete rows and prepending that many empty rows. Completeness is the
// weighted sum check: only a row of all-locked cells reaches 2*width.
func (g *Grid) clearLines() {
	kept := make([]Cell, 0, len(g.cells))
	cleared := 0
	for row := 0; row < g.height; row++ {
		sum := 0
		for col := 0; col < g.width; col++ {
			sum += int(g.at(row, col))
		}
		if sum == 2*g.width {
			cleared++
			continue
		}
		kept = append(kept, g.cells[row*g.width:(row+1)*g.width]...)
	}
	if cleared == 0 {
		return
	}
	g.cells = append(make([]Cell, cleared*g.width), kept...)
	g.score += lineClearPoints[cleared-1]
	g.speed *= speedRampRate
}

// spawn places the mask horizontally centered on the top row. A blocked
// spawn is the sole game-over trigger: the flag is set and no piece is
// left active.
func (g *Grid) spawn(mask Mask) {
	g.current = mask
	g.row = 0
	g.col = g.width/2 - mask.Width()/2
	if !g.CanPlace(mask, g.row, g.col) {
		g.gameOver = true
		g.current = nil
		return
	}
	g.drawCurrent(CellActive)
}

// SpawnFirst promotes the primed next piece onto the board and refills the
// slot. No-op once a piece is falling or the game is over.
func (g *Grid) SpawnFirst() {
	if g.current != nil || g.gameOver {
		return
	}
	g.spawn(g.next)
	g.next = g.source.Pick()
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) Score() int {
	return g.score
}

// Speed is the driver's pacing interval in seconds. It only shrinks (by
// speedRampRate per clearing lock), never grows.
func (g *Grid) Speed() float64 {
	return g.speed
}

func (g *Grid) GameOver() bool {
	return g.gameOver
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Width    int
	Height   int
	Cells    [][]Cell
	Next     Mask
	Score    int
	Speed    float64
	GameOver bool
}

// Snapshot copies the board so the renderer never aliases live state.
func (g *Grid) Snapshot() Snapshot {
	cells := make([][]Cell, g.height)
	for row := range cells {
		cells[row] = make([]Cell, g.width)
		copy(cells[row], g.cells[row*g.width:(row+1)*g.width])
	}
	return Snapshot{
		Width:    g.width,
		Height:   g.height,
		Cells:    cells,
		Next:     g.next,
		Score:    g.score,
		Speed:    g.speed,
		GameOver: g.gameOver,
	}
}
