package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Name          string
	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	Board         lipgloss.Color
	TileEmpty     lipgloss.Color
	Accent        lipgloss.Color
	AccentText    lipgloss.Color
	Score         lipgloss.Color
	ScoreText     lipgloss.Color
}

var palettes = []Palette{
	{
		Name:          "default",
		Text:          "#776e65",
		TextSecondary: "#8f7a66",
		Board:         "#bbada0",
		TileEmpty:     "#cdc1b4",
		Accent:        "#8f7a66",
		AccentText:    "#f9f6f2",
		Score:         "#bbada0",
		ScoreText:     "#eee4da",
	},
	{
		Name:          "dark",
		Text:          "#e2e8f0",
		TextSecondary: "#a0aec0",
		Board:         "#4a5568",
		TileEmpty:     "#718096",
		Accent:        "#4299e1",
		AccentText:    "#ffffff",
		Score:         "#4a5568",
		ScoreText:     "#e2e8f0",
	},
	{
		Name:          "neon",
		Text:          "#00ff88",
		TextSecondary: "#00ccff",
		Board:         "#2d3748",
		TileEmpty:     "#4a5568",
		Accent:        "#ff0080",
		AccentText:    "#ffffff",
		Score:         "#2d3748",
		ScoreText:     "#00ff88",
	},
	{
		Name:          "minimal",
		Text:          "#333333",
		TextSecondary: "#666666",
		Board:         "#f0f0f0",
		TileEmpty:     "#e0e0e0",
		Accent:        "#333333",
		AccentText:    "#ffffff",
		Score:         "#f0f0f0",
		ScoreText:     "#333333",
	},
}

type tileColor struct {
	bg, fg lipgloss.Color
}

// Tile colors are shared by every theme.
var tileColors = map[int]tileColor{
	2:    {"#eee4da", "#776e65"},
	4:    {"#ede0c8", "#776e65"},
	8:    {"#f2b179", "#f9f6f2"},
	16:   {"#f59563", "#f9f6f2"},
	32:   {"#f67c5f", "#f9f6f2"},
	64:   {"#f65e3b", "#f9f6f2"},
	128:  {"#edcf72", "#f9f6f2"},
	256:  {"#edcc61", "#f9f6f2"},
	512:  {"#edc850", "#f9f6f2"},
	1024: {"#edc53f", "#f9f6f2"},
	2048: {"#edc22e", "#f9f6f2"},
}

var superTile = tileColor{"#3c3a32", "#f9f6f2"}

// ThemeNames returns the builtin theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// LookupPalette returns the palette with the given name.
func LookupPalette(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) string {
	for i, p := range palettes {
		if p.Name == name {
			return palettes[(i+1)%len(palettes)].Name
		}
	}
	return palettes[0].Name
}

// Theme contains the rendered styles of one palette.
type Theme struct {
	Name string

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	ScoreLabel lipgloss.Style
	ScoreValue lipgloss.Style
	ScoreBox   lipgloss.Style
	Board      lipgloss.Style
	Gap        lipgloss.Style
	Text       lipgloss.Style
	Dim        lipgloss.Style
	Banner     lipgloss.Style
	Help       lipgloss.Style

	tileBase  lipgloss.Style
	tileEmpty lipgloss.Style
	tiles     map[int]lipgloss.Style
	super     lipgloss.Style
}

// NewTheme builds the styles for the named theme. Unknown names fall back to
// the default palette. A nil renderer uses the process default.
func NewTheme(r *lipgloss.Renderer, name string) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p, ok := LookupPalette(name)
	if !ok {
		p = palettes[0]
	}

	base := r.NewStyle().Bold(true).Align(lipgloss.Center, lipgloss.Center)
	t := Theme{
		Name:       p.Name,
		Title:      r.NewStyle().Bold(true).Foreground(p.Text),
		Subtitle:   r.NewStyle().Foreground(p.TextSecondary),
		ScoreLabel: r.NewStyle().Foreground(p.ScoreText).Background(p.Score).Bold(true),
		ScoreValue: r.NewStyle().Foreground(p.ScoreText).Background(p.Score),
		ScoreBox:   r.NewStyle().Background(p.Score).Padding(0, 1).Align(lipgloss.Center),
		Board:      r.NewStyle().Background(p.Board).Padding(0, 1),
		Gap:        r.NewStyle().Background(p.Board),
		Text:       r.NewStyle().Foreground(p.Text),
		Dim:        r.NewStyle().Foreground(p.TextSecondary),
		Banner:     r.NewStyle().Bold(true).Foreground(p.AccentText).Background(p.Accent).Padding(0, 2),
		Help:       r.NewStyle().Foreground(lipgloss.Color("241")),
		tileBase:   base,
		tileEmpty:  base.Background(p.TileEmpty),
		tiles:      make(map[int]lipgloss.Style, len(tileColors)),
		super:      base.Background(superTile.bg).Foreground(superTile.fg),
	}
	for v, c := range tileColors {
		t.tiles[v] = base.Background(c.bg).Foreground(c.fg)
	}
	return t
}

// Tile returns the style for a tile value; 0 is an empty cell.
func (t Theme) Tile(value int) lipgloss.Style {
	if value == 0 {
		return t.tileEmpty
	}
	if s, ok := t.tiles[value]; ok {
		return s
	}
	return t.super
}
