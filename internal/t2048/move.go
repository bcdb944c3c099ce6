package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a name ("up", "down", "left", "right") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// MoveResult is the outcome of sliding a board in one direction.
type MoveResult struct {
	Board       Board
	ScoreGained int
	Moved       bool
}

// slideRow slides and merges a single row to the left.
// A tile produced by a merge never merges again in the same move.
func slideRow(row []int) ([]int, int) {
	tiles := make([]int, 0, len(row))
	for _, v := range row {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	result := make([]int, 0, len(row))
	score := 0
	for i := 0; i < len(tiles); {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			merged := tiles[i] * 2
			result = append(result, merged)
			score += merged
			i += 2
			continue
		}
		result = append(result, tiles[i])
		i++
	}

	for len(result) < len(row) {
		result = append(result, 0)
	}
	return result, score
}

// reverseRow returns a reversed copy of a row.
func reverseRow(row []int) []int {
	out := make([]int, len(row))
	for i, v := range row {
		out[len(row)-1-i] = v
	}
	return out
}

// RotateClockwise rotates a square board 90° clockwise: (r, c) → (c, N-1-r).
func RotateClockwise(b Board) Board {
	n := len(b)
	out := NewBoard(n)
	for r := range n {
		for c := range n {
			out[c][n-1-r] = b[r][c]
		}
	}
	return out
}

// RotateCounterClockwise rotates a square board 90° counter-clockwise: (r, c) → (N-1-c, r).
func RotateCounterClockwise(b Board) Board {
	n := len(b)
	out := NewBoard(n)
	for r := range n {
		for c := range n {
			out[n-1-c][r] = b[r][c]
		}
	}
	return out
}

// slideLeft applies slideRow to every row of a working copy.
func slideLeft(b Board) (Board, int) {
	total := 0
	for r, row := range b {
		newRow, score := slideRow(row)
		b[r] = newRow
		total += score
	}
	return b, total
}

// Move slides the board in the given direction and merges tiles.
// The input board is never modified.
func Move(board Board, dir Direction) MoveResult {
	work := board.Clone()
	total := 0

	switch dir {
	case DirLeft:
		work, total = slideLeft(work)
	case DirRight:
		for r, row := range work {
			newRow, score := slideRow(reverseRow(row))
			work[r] = reverseRow(newRow)
			total += score
		}
	case DirUp:
		work, total = slideLeft(RotateCounterClockwise(work))
		work = RotateClockwise(work)
	case DirDown:
		work, total = slideLeft(RotateClockwise(work))
		work = RotateCounterClockwise(work)
	default:
		return MoveResult{Board: work}
	}

	return MoveResult{
		Board:       work,
		ScoreGained: total,
		Moved:       !Equal(board, work),
	}
}
