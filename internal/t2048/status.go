package t2048

// CheckWin reports whether any tile has reached threshold.
// A threshold of zero or less means the mode has no win condition.
func CheckWin(b Board, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	return HighestTile(b) >= threshold
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(b Board) bool {
	for _, row := range b {
		for _, v := range row {
			if v == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any horizontally or vertically adjacent tiles are equal.
func HasPossibleMerge(b Board) bool {
	n := len(b)
	for r := range n {
		for c := range n {
			val := b[r][c]
			if val == 0 {
				continue
			}
			if c < n-1 && b[r][c+1] == val {
				return true
			}
			if r < n-1 && b[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(b Board) bool {
	return HasEmptyCell(b) || HasPossibleMerge(b)
}

// CanMoveInDirection reports whether moving in dir would change the board.
func CanMoveInDirection(b Board, dir Direction) bool {
	return Move(b, dir).Moved
}

// CheckGameOver returns true if no moves are possible.
func CheckGameOver(b Board) bool {
	return !CanMove(b)
}

// HighestTile returns the maximum tile value on the board, 0 when empty.
func HighestTile(b Board) int {
	maxVal := 0
	for _, row := range b {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}
