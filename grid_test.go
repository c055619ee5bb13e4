package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource hands out masks in a fixed cycle so tests are deterministic.
type stubSource struct {
	masks []Mask
	index int
}

func (s *stubSource) Pick() Mask {
	mask := s.masks[s.index%len(s.masks)]
	s.index++
	return mask
}

func newTestGrid(t *testing.T, width, height int, masks ...Mask) *Grid {
	t.Helper()
	if len(masks) == 0 {
		masks = []Mask{parseMask("##", "##")}
	}
	grid, err := NewGrid(width, height, 0.1, &stubSource{masks: masks})
	require.NoError(t, err)
	return grid
}

func countCells(g *Grid, state Cell) int {
	count := 0
	for _, cell := range g.cells {
		if cell == state {
			count++
		}
	}
	return count
}

func TestNewGridValidation(t *testing.T) {
	source := &stubSource{masks: []Mask{parseMask("##", "##")}}

	_, err := NewGrid(3, 20, 0.1, source)
	assert.Error(t, err)

	_, err = NewGrid(10, 3, 0.1, source)
	assert.Error(t, err)

	_, err = NewGrid(10, 20, 0, source)
	assert.Error(t, err)

	_, err = NewGrid(10, 20, 0.1, nil)
	assert.Error(t, err)

	grid, err := NewGrid(10, 20, 0.1, source)
	require.NoError(t, err)
	assert.False(t, grid.GameOver())
	assert.Nil(t, grid.current)
	assert.NotNil(t, grid.next)
	assert.Zero(t, grid.Score())
}

func TestCanPlace(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	square := parseMask("##", "##")

	assert.True(t, grid.CanPlace(square, 0, 0))
	assert.True(t, grid.CanPlace(square, 18, 8))

	// Out of bounds on every edge.
	assert.False(t, grid.CanPlace(square, -1, 0))
	assert.False(t, grid.CanPlace(square, 0, -1))
	assert.False(t, grid.CanPlace(square, 19, 0))
	assert.False(t, grid.CanPlace(square, 0, 9))

	grid.set(5, 5, CellLocked)
	assert.False(t, grid.CanPlace(square, 5, 5))
	assert.False(t, grid.CanPlace(square, 4, 4))
	assert.True(t, grid.CanPlace(square, 6, 6))

	// A piece's own active footprint never blocks the oracle.
	grid.set(2, 2, CellActive)
	assert.True(t, grid.CanPlace(square, 2, 2))
}

func TestSpawnCentersMask(t *testing.T) {
	square := parseMask("##", "##")
	grid := newTestGrid(t, 10, 20, square)
	grid.SpawnFirst()
	assert.Equal(t, 0, grid.row)
	assert.Equal(t, 4, grid.col)
	assert.Equal(t, square.Cells(), countCells(grid, CellActive))

	long := parseMask("####")
	grid = newTestGrid(t, 10, 20, long)
	grid.SpawnFirst()
	assert.Equal(t, 3, grid.col)
}

func TestFootprintMatchesMaskCells(t *testing.T) {
	for kind, mask := range tetrominoes {
		grid := newTestGrid(t, 10, 20, mask)
		grid.SpawnFirst()
		assert.Equal(t, mask.Cells(), countCells(grid, CellActive), "piece kind %d", kind)
	}
}

func TestMoveBlockedByLockedColumn(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	grid.current = parseMask("#")
	grid.row, grid.col = 5, 5
	grid.drawCurrent(CellActive)
	grid.set(5, 6, CellLocked)

	grid.MoveRight()
	assert.Equal(t, 5, grid.row)
	assert.Equal(t, 5, grid.col)
	assert.Equal(t, CellActive, grid.at(5, 5))

	grid.set(5, 6, CellEmpty)
	grid.MoveRight()
	assert.Equal(t, 6, grid.col)
	assert.Equal(t, CellEmpty, grid.at(5, 5))
	assert.Equal(t, CellActive, grid.at(5, 6))
}

func TestMoveLeftAtWallIsNoOp(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	grid.current = parseMask("#")
	grid.row, grid.col = 5, 0
	grid.drawCurrent(CellActive)

	grid.MoveLeft()
	assert.Equal(t, 0, grid.col)
	assert.Equal(t, CellActive, grid.at(5, 0))
}

func TestRotateAgainstWallIsNoOp(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	vertical := parseMask("#", "#", "#", "#")
	grid.current = vertical
	grid.row, grid.col = 0, 9
	grid.drawCurrent(CellActive)
	before := grid.Snapshot()

	// The rotated I would span columns 9..12, off the board.
	grid.Rotate()
	assert.Equal(t, 0, grid.row)
	assert.Equal(t, 9, grid.col)
	assert.Equal(t, 4, grid.current.Height())
	assert.Equal(t, 1, grid.current.Width())
	assert.Equal(t, before.Cells, grid.Snapshot().Cells)

	// Repeating the blocked rotation changes nothing either.
	grid.Rotate()
	assert.Equal(t, before.Cells, grid.Snapshot().Cells)
}

func TestRotateSwapsFootprint(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	grid.current = parseMask("####")
	grid.row, grid.col = 5, 3
	grid.drawCurrent(CellActive)

	grid.Rotate()
	assert.Equal(t, 1, grid.current.Width())
	assert.Equal(t, 4, grid.current.Height())
	assert.Equal(t, 4, countCells(grid, CellActive))
	for i := 0; i < 4; i++ {
		assert.Equal(t, CellActive, grid.at(5+i, 3))
	}
}

func TestTickCadenceGatesGravity(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	grid.SpawnFirst()
	startRow := grid.row

	for i := 1; i < framesPerDrop; i++ {
		grid.Tick()
		assert.Equal(t, startRow, grid.row, "tick %d should not move the piece", i)
	}
	grid.Tick()
	assert.Equal(t, startRow+1, grid.row)
}

func TestTickWithoutPieceOnlyCounts(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	for i := 0; i < framesPerDrop; i++ {
		grid.Tick()
	}
	assert.Equal(t, framesPerDrop, grid.frameCounter)
	assert.Zero(t, countCells(grid, CellActive))
	assert.False(t, grid.GameOver())
}

func tickToGate(g *Grid) {
	for i := 0; i < framesPerDrop; i++ {
		g.Tick()
	}
}

func TestSoftDropRetriesSingleRow(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	grid.current = parseMask("#")
	grid.row, grid.col = 5, 5
	grid.drawCurrent(CellActive)
	// Two rows down is blocked, one row is a valid settle.
	grid.set(7, 5, CellLocked)

	grid.SoftDrop()
	tickToGate(grid)

	assert.Equal(t, 6, grid.row)
	assert.Equal(t, CellActive, grid.at(6, 5))
	assert.Equal(t, 1, grid.fallMultiplier, "multiplier is transient")
}

func TestSoftDropMovesTwoRows(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	grid.current = parseMask("#")
	grid.row, grid.col = 5, 5
	grid.drawCurrent(CellActive)

	grid.SoftDrop()
	tickToGate(grid)
	assert.Equal(t, 7, grid.row)

	// Without a fresh soft drop the next gated tick is a single row.
	tickToGate(grid)
	assert.Equal(t, 8, grid.row)
}

func TestTickLocksBlockedPiece(t *testing.T) {
	square := parseMask("##", "##")
	grid := newTestGrid(t, 10, 20, square)
	grid.current = square
	grid.row, grid.col = 18, 4
	grid.drawCurrent(CellActive)

	tickToGate(grid)

	assert.Equal(t, CellLocked, grid.at(18, 4))
	assert.Equal(t, CellLocked, grid.at(19, 5))
	// The next piece spawned at the top.
	require.NotNil(t, grid.current)
	assert.Equal(t, 0, grid.row)
	assert.Equal(t, square.Cells(), countCells(grid, CellActive))
}

func TestLockPromotesNextPiece(t *testing.T) {
	square := parseMask("##", "##")
	long := parseMask("####")
	grid := newTestGrid(t, 10, 20, square, long)
	grid.SpawnFirst() // current=square, next=long
	grid.current = square
	grid.drawCurrent(CellEmpty)
	grid.row, grid.col = 18, 0
	grid.drawCurrent(CellActive)

	tickToGate(grid)

	assert.Equal(t, 1, grid.current.Height())
	assert.Equal(t, 4, grid.current.Width())
	assert.Equal(t, 2, grid.next.Height())
}

func lockRow(g *Grid, row int) {
	for col := 0; col < g.width; col++ {
		g.set(row, col, CellLocked)
	}
}

func TestClearLinesScoring(t *testing.T) {
	cases := []struct {
		rows   int
		points int
	}{
		{1, 40},
		{2, 100},
		{3, 300},
		{4, 1200},
	}
	for _, tc := range cases {
		grid := newTestGrid(t, 10, 20)
		startSpeed := grid.Speed()
		for i := 0; i < tc.rows; i++ {
			lockRow(grid, grid.height-1-i)
		}
		// A partial row above must survive.
		grid.set(10, 3, CellLocked)

		grid.clearLines()

		assert.Equal(t, tc.points, grid.Score(), "%d rows", tc.rows)
		assert.InDelta(t, startSpeed*speedRampRate, grid.Speed(), 1e-12, "speed ramps exactly once for %d rows", tc.rows)
		assert.Equal(t, 1, countCells(grid, CellLocked))
		assert.Equal(t, CellLocked, grid.at(10+tc.rows, 3), "surviving content shifts down by the cleared count")
	}
}

func TestClearLinesNoCompleteRows(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	startSpeed := grid.Speed()
	lockRow(grid, 19)
	grid.set(19, 4, CellEmpty) // one hole

	grid.clearLines()

	assert.Zero(t, grid.Score())
	assert.Equal(t, startSpeed, grid.Speed())
	assert.Equal(t, 9, countCells(grid, CellLocked))
}

func TestActiveCellsNeverCompleteARow(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	for col := 0; col < grid.width; col++ {
		grid.set(19, col, CellActive)
	}

	grid.clearLines()

	assert.Zero(t, grid.Score())
	assert.Equal(t, 10, countCells(grid, CellActive))

	// Even a single active cell in an otherwise locked row blocks the clear.
	grid = newTestGrid(t, 10, 20)
	lockRow(grid, 19)
	grid.set(19, 0, CellActive)
	grid.clearLines()
	assert.Zero(t, grid.Score())
}

func TestClearDisjointRowsInOnePass(t *testing.T) {
	grid := newTestGrid(t, 10, 20)
	lockRow(grid, 19)
	lockRow(grid, 17)
	grid.set(18, 2, CellLocked) // incomplete row between them

	grid.clearLines()

	assert.Equal(t, 100, grid.Score())
	assert.Equal(t, 1, countCells(grid, CellLocked))
	assert.Equal(t, CellLocked, grid.at(19, 2), "the incomplete row lands on the floor")
	for col := 0; col < grid.width; col++ {
		assert.Equal(t, CellEmpty, grid.at(0, col))
		assert.Equal(t, CellEmpty, grid.at(1, col))
	}
}

func TestLockTriggersClearAndScore(t *testing.T) {
	// A 1x1 piece completes the bottom row on lock: score 40, speed cut once,
	// next piece spawned.
	dot := parseMask("#")
	grid := newTestGrid(t, 10, 20, dot)
	startSpeed := grid.Speed()
	lockRow(grid, 19)
	grid.set(19, 5, CellEmpty)
	grid.current = dot
	grid.row, grid.col = 19, 5
	grid.drawCurrent(CellActive)

	tickToGate(grid)

	assert.Equal(t, 40, grid.Score())
	assert.InDelta(t, startSpeed*speedRampRate, grid.Speed(), 1e-12)
	assert.Zero(t, countCells(grid, CellLocked))
	require.NotNil(t, grid.current)
	assert.Equal(t, 0, grid.row)
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	square := parseMask("##", "##")
	grid := newTestGrid(t, 10, 20, square)
	lockRow(grid, 0)
	lockRow(grid, 1)

	grid.SpawnFirst()

	assert.True(t, grid.GameOver())
	assert.Nil(t, grid.current)
	assert.Zero(t, countCells(grid, CellActive))
}

func TestGameOverIsPermanent(t *testing.T) {
	square := parseMask("##", "##")
	grid := newTestGrid(t, 10, 20, square)
	lockRow(grid, 0)
	lockRow(grid, 1)
	grid.SpawnFirst()
	require.True(t, grid.GameOver())
	before := grid.Snapshot()

	grid.MoveLeft()
	grid.MoveRight()
	grid.Rotate()
	grid.SoftDrop()
	for i := 0; i < 2*framesPerDrop; i++ {
		grid.Tick()
	}
	grid.SpawnFirst()

	assert.True(t, grid.GameOver())
	assert.Nil(t, grid.current)
	assert.Equal(t, before.Cells, grid.Snapshot().Cells)
	assert.Equal(t, before.Score, grid.Score())
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	square := parseMask("##", "##")
	grid := newTestGrid(t, 10, 20, square)
	grid.SpawnFirst()

	snapshot := grid.Snapshot()
	assert.Equal(t, 10, snapshot.Width)
	assert.Equal(t, 20, snapshot.Height)
	assert.Equal(t, grid.Speed(), snapshot.Speed)
	assert.Equal(t, CellActive, snapshot.Cells[0][4])

	snapshot.Cells[0][4] = CellLocked
	assert.Equal(t, CellActive, grid.at(0, 4))
}

func TestBoardCellsAlwaysValid(t *testing.T) {
	grid := newTestGrid(t, 10, 20, tetrominoes...)
	grid.SpawnFirst()
	// Drive a while and check the three-state invariant plus the footprint
	// count after every event.
	for i := 0; i < 400 && !grid.GameOver(); i++ {
		switch i % 4 {
		case 0:
			grid.MoveLeft()
		case 1:
			grid.Rotate()
		case 2:
			grid.MoveRight()
		case 3:
			grid.SoftDrop()
		}
		grid.Tick()
		for _, cell := range grid.cells {
			assert.Contains(t, []Cell{CellEmpty, CellActive, CellLocked}, cell)
		}
		if grid.current != nil {
			assert.Equal(t, grid.current.Cells(), countCells(grid, CellActive))
		} else {
			assert.Zero(t, countCells(grid, CellActive))
		}
	}
}
