package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-2048/internal/modes"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

// cellLayout is the size of one tile on screen.
type cellLayout struct {
	w, h int
}

// Layouts from roomiest to most compact.
var cellLayouts = []cellLayout{
	{w: 7, h: 3},
	{w: 5, h: 1},
}

// Lines taken by everything around the board: header, banner and help.
const chromeHeight = 9

// boardDims returns the on-screen size of an n*n board using layout c.
func boardDims(n int, c cellLayout) (int, int) {
	return n*c.w + n + 3, n*c.h + n + 1
}

// pickLayout returns the largest layout that fits the terminal. A zero
// terminal size means the size is not known yet and anything fits.
func pickLayout(n, width, height int) (cellLayout, bool) {
	for _, c := range cellLayouts {
		w, h := boardDims(n, c)
		if width == 0 || (w <= width && h+chromeHeight <= height) {
			return c, true
		}
	}
	return cellLayout{}, false
}

// tileLabel formats a tile value to fit within width columns.
func tileLabel(v, width int) string {
	if v == 0 {
		return ""
	}
	s := strconv.Itoa(v)
	if len(s) > width {
		s = strconv.Itoa(v/1024) + "k"
	}
	return s
}

// renderBoard draws the tile grid.
func renderBoard(th Theme, b t2048.Board, c cellLayout) string {
	n := b.Size()
	colGap := th.Gap.Width(1).Height(c.h).Render("")
	rowWidth := n*c.w + n + 1
	rowGap := th.Gap.Width(rowWidth).Render("")

	rows := make([]string, 0, 2*n+1)
	rows = append(rows, rowGap)
	for _, row := range b {
		cells := make([]string, 0, 2*n+1)
		cells = append(cells, colGap)
		for _, v := range row {
			cells = append(cells, th.Tile(v).Width(c.w).Height(c.h).Render(tileLabel(v, c.w)))
			cells = append(cells, colGap)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		rows = append(rows, rowGap)
	}
	return th.Board.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// scoreBox draws a labelled score counter.
func scoreBox(th Theme, label string, value int) string {
	return th.ScoreBox.Render(lipgloss.JoinVertical(lipgloss.Center,
		th.ScoreLabel.Render(label),
		th.ScoreValue.Render(humanize.Comma(int64(value))),
	))
}

// renderHeader draws the title, score counters and the clock line.
func renderHeader(th Theme, st session.GameState, best int, mode modes.Config, remaining time.Duration, timed, paused bool) string {
	title := lipgloss.JoinVertical(lipgloss.Left,
		th.Title.Render("2048"),
		th.Subtitle.Render(mode.Name),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Center,
		title, "   ",
		scoreBox(th, "SCORE", st.Score), " ",
		scoreBox(th, "BEST", best),
	)

	clock := "Time " + formatClock(st.TimeElapsed)
	if timed {
		clock = "Left " + formatClock(remaining)
	}
	info := fmt.Sprintf("Moves %d   %s", st.MoveCount, clock)
	if paused {
		info += "   (paused)"
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, th.Dim.Render(info))
}

// statusBanner describes the outcome of the game, or is empty mid-game.
func statusBanner(st session.GameState, mode modes.Config, winReached bool, remaining time.Duration) string {
	switch st.Status {
	case session.StatusOver:
		if mode.Timed() && remaining == 0 {
			return "Time's up! Press r to play again"
		}
		return "Game over! Press r to try again or u to undo"
	case session.StatusWon:
		if mode.WinBehavior == modes.WinContinue {
			return fmt.Sprintf("You made %d! Keep going", mode.WinThreshold)
		}
		return "You win! Press r for a new game"
	}
	if winReached && mode.HasWinCondition() {
		return fmt.Sprintf("%d reached!", mode.WinThreshold)
	}
	return ""
}

// formatClock formats d as m:ss, or h:mm:ss past the hour.
func formatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
