package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// ParseColor accepts "white"/"black" and the single letters used in FEN.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return "", false
}

type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	IsEngine bool   `json:"isEngine"`
	TimeLeft int    `json:"timeLeft"`
}
