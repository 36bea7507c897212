package core

// Color is a foreground color for a screen cell. ColorDefault leaves the
// terminal's own foreground untouched.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	numColors
)

// ansiCodes holds the 256-color palette index of every color.
var ansiCodes = [numColors]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
}

// ANSI returns the terminal palette index of c, or "" for ColorDefault and
// unknown values.
func (c Color) ANSI() string {
	if c >= numColors {
		return ""
	}
	return ansiCodes[c]
}

// Colors returns every color that maps to a palette index.
func Colors() []Color {
	out := make([]Color, 0, numColors-1)
	for c := ColorDefault + 1; c < numColors; c++ {
		out = append(out, c)
	}
	return out
}
