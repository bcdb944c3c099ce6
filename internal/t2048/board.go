// Package t2048 implements the rules of the 2048 sliding-tile puzzle on square boards
// of any supported size: the board model, the move engine and terminal-state checks.
package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// Board size limits.
const (
	MinBoardSize     = 3
	MaxBoardSize     = 8
	DefaultBoardSize = 4
)

// DefaultFourProbability is the chance that a spawned tile is a 4 instead of a 2.
const DefaultFourProbability = 0.10

// Board is an N×N grid of tiles indexed [row][col]. Zero is an empty cell.
type Board [][]int

// Position identifies a single cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Random is a uniform source of floats in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// ValidBoardSize reports whether size is within the supported range.
func ValidBoardSize(size int) bool {
	return size >= MinBoardSize && size <= MaxBoardSize
}

// NewBoard returns an empty size×size board.
func NewBoard(size int) Board {
	b := make(Board, size)
	for r := range b {
		b[r] = make([]int, size)
	}
	return b
}

// Size returns the board dimension.
func (b Board) Size() int {
	return len(b)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for r, row := range b {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether both boards have identical dimensions and cell values.
func Equal(a, b Board) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

// Valid reports whether the board is square, within size limits and every
// non-empty cell holds a power of two of at least 2.
func (b Board) Valid() bool {
	if !ValidBoardSize(len(b)) {
		return false
	}
	for _, row := range b {
		if len(row) != len(b) {
			return false
		}
		for _, v := range row {
			if v == 0 {
				continue
			}
			if v < 2 || v&(v-1) != 0 {
				return false
			}
		}
	}
	return true
}

// EmptyPositions returns all empty cells in row-major order.
func EmptyPositions(b Board) []Position {
	var cells []Position
	for r, row := range b {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Spawner places new tiles on a board.
type Spawner struct {
	Rand            Random
	FourProbability float64
}

// AddRandomTile returns a copy of b with one new tile in a random empty cell.
// A full board is returned as an unchanged copy.
func (s Spawner) AddRandomTile(b Board) Board {
	out := b.Clone()
	empty := EmptyPositions(out)
	if len(empty) == 0 {
		return out
	}

	idx := int(s.Rand.Float64() * float64(len(empty)))
	if idx >= len(empty) {
		idx = len(empty) - 1
	}
	pos := empty[idx]

	value := 2
	if s.Rand.Float64() < s.FourProbability {
		value = 4
	}
	out[pos.Row][pos.Col] = value
	return out
}

// AddRandomTile spawns a tile using the default 2/4 weighting.
func AddRandomTile(b Board, rnd Random) Board {
	return Spawner{Rand: rnd, FourProbability: DefaultFourProbability}.AddRandomTile(b)
}

// InitializeBoard returns a fresh board with two spawned tiles.
func (s Spawner) InitializeBoard(size int) Board {
	b := NewBoard(size)
	b = s.AddRandomTile(b)
	return s.AddRandomTile(b)
}

// InitializeBoard returns a fresh board with two tiles using the default weighting.
func InitializeBoard(size int, rnd Random) Board {
	return Spawner{Rand: rnd, FourProbability: DefaultFourProbability}.InitializeBoard(size)
}

// String renders the board as right-aligned columns, one row per line.
func (b Board) String() string {
	width := 1
	for _, row := range b {
		for _, v := range row {
			if n := len(strconv.Itoa(v)); n > width {
				width = n
			}
		}
	}

	var sb strings.Builder
	for _, row := range b {
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if v == 0 {
				fmt.Fprintf(&sb, "%*s", width, ".")
				continue
			}
			fmt.Fprintf(&sb, "%*d", width, v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
