package t2048

import (
	"math/rand"
	"testing"
)

// seqRandom replays a fixed sequence of floats.
type seqRandom struct {
	values []float64
	i      int
}

func (s *seqRandom) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func countTiles(b Board) int {
	n := 0
	for _, row := range b {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func TestNewBoard(t *testing.T) {
	for size := MinBoardSize; size <= MaxBoardSize; size++ {
		b := NewBoard(size)
		if b.Size() != size {
			t.Fatalf("NewBoard(%d).Size() = %d", size, b.Size())
		}
		for _, row := range b {
			if len(row) != size {
				t.Fatalf("NewBoard(%d) row length = %d", size, len(row))
			}
		}
		if countTiles(b) != 0 {
			t.Errorf("NewBoard(%d) has tiles", size)
		}
	}
}

func TestEmptyPositionsRowMajor(t *testing.T) {
	board := Board{
		{2, 0, 8},
		{0, 64, 0},
		{512, 0, 2048},
	}

	got := EmptyPositions(board)
	want := []Position{{0, 1}, {1, 0}, {1, 2}, {2, 1}}
	if len(got) != len(want) {
		t.Fatalf("EmptyPositions count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EmptyPositions[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAddRandomTile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		pos    Position
		value  int
	}{
		{name: "first cell gets a two", values: []float64{0.0, 0.5}, pos: Position{0, 0}, value: 2},
		{name: "last cell gets a four", values: []float64{0.999, 0.05}, pos: Position{2, 2}, value: 4},
		{name: "boundary stays a two", values: []float64{0.5, 0.1}, pos: Position{1, 1}, value: 2},
		{name: "just under boundary", values: []float64{0.5, 0.09}, pos: Position{1, 1}, value: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard(3)
			got := AddRandomTile(board, &seqRandom{values: tt.values})

			if countTiles(board) != 0 {
				t.Fatal("AddRandomTile mutated its input")
			}
			if countTiles(got) != 1 {
				t.Fatalf("AddRandomTile placed %d tiles, want 1", countTiles(got))
			}
			if v := got[tt.pos.Row][tt.pos.Col]; v != tt.value {
				t.Errorf("cell %v = %d, want %d\n%s", tt.pos, v, tt.value, got)
			}
		})
	}
}

func TestAddRandomTileFullBoard(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 4, 8},
		{16, 32, 64, 128},
	}

	got := AddRandomTile(board, rand.New(rand.NewSource(1)))
	if !Equal(got, board) {
		t.Errorf("AddRandomTile on full board changed it:\n%s", got)
	}
}

func TestSpawnerFourProbability(t *testing.T) {
	s := Spawner{Rand: &seqRandom{values: []float64{0.1, 0.99}}, FourProbability: 1.0}
	got := s.AddRandomTile(NewBoard(4))
	if HighestTile(got) != 4 {
		t.Errorf("Spawner with probability 1 spawned %d, want 4", HighestTile(got))
	}
}

func TestInitializeBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for size := MinBoardSize; size <= MaxBoardSize; size++ {
		b := InitializeBoard(size, rng)
		if got := countTiles(b); got != 2 {
			t.Errorf("InitializeBoard(%d) has %d tiles, want 2", size, got)
		}
		if !b.Valid() {
			t.Errorf("InitializeBoard(%d) produced invalid board:\n%s", size, b)
		}
	}
}

func TestDeterministicSpawn(t *testing.T) {
	b1 := InitializeBoard(4, rand.New(rand.NewSource(12345)))
	b2 := InitializeBoard(4, rand.New(rand.NewSource(12345)))
	if !Equal(b1, b2) {
		t.Errorf("same seed should produce same initial board:\n%s\nvs\n%s", b1, b2)
	}
}

func TestCloneIsDeep(t *testing.T) {
	board := Board{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}}
	clone := board.Clone()
	clone[1][1] = 1024

	if board[1][1] != 4 {
		t.Error("Clone shares rows with the original")
	}
	if Equal(board, clone) {
		t.Error("modified clone should not equal original")
	}
}

func TestEqual(t *testing.T) {
	a := Board{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}}
	b := Board{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}}
	c := Board{{2, 0, 0}, {0, 4, 0}, {0, 0, 16}}
	bigger := NewBoard(4)
	ragged := Board{{2, 0, 0}, {0, 4}, {0, 0, 8}}

	if !Equal(a, a) {
		t.Error("board should equal itself")
	}
	if !Equal(a, b) || !Equal(b, a) {
		t.Error("equal boards should compare equal in both directions")
	}
	if Equal(a, c) || Equal(c, a) {
		t.Error("different cells should not compare equal")
	}
	if Equal(a, bigger) || Equal(bigger, a) {
		t.Error("different dimensions should not compare equal")
	}
	if Equal(a, ragged) || Equal(ragged, a) {
		t.Error("different row lengths should not compare equal")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{"empty 4x4", NewBoard(4), true},
		{"powers of two", Board{{2, 4, 8}, {16, 0, 0}, {0, 0, 65536}}, true},
		{"too small", NewBoard(2), false},
		{"too large", NewBoard(9), false},
		{"not square", Board{{0, 0, 0}, {0, 0, 0}, {0, 0}}, false},
		{"odd value", Board{{3, 0, 0}, {0, 0, 0}, {0, 0, 0}}, false},
		{"one is not a tile", Board{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}}, false},
		{"negative", Board{{-2, 0, 0}, {0, 0, 0}, {0, 0, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoardString(t *testing.T) {
	board := Board{{2, 0, 0}, {0, 128, 0}, {0, 0, 8}}
	want := "  2   .   .\n  . 128   .\n  .   .   8\n"
	if got := board.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
