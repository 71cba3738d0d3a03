package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		HighlightTargets: true,
		Colors: ConfigColors{
			LightSquare: 187,
			DarkSquare:  108,
			King:        232,
			Knight:      232,
			Goal:        160,
			CursorBG:    4,
			SelectedBG:  3,
			TargetBG:    150,
			Coordinates: 245,
		},
		Symbols: ConfigSymbols{
			King:   '♚',
			Knight: '♞',
			Goal:   '◎',
			Target: '·',
		},
	}

	DefaultConfig = Config{
		BoardSize: 8,
		Theme:     DefaultTheme,
	}
}
