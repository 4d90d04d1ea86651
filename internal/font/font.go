// Package font holds the block glyphs used for the big clock display.
package font

import "unicode/utf8"

// Glyph is one character drawn as rows of equal rune width.
type Glyph []string

// Width is the rune count of the glyph's first row.
func (g Glyph) Width() int {
	if len(g) == 0 {
		return 0
	}
	return utf8.RuneCountInString(g[0])
}

// Face is an immutable glyph table. Build it once with Default and share it.
type Face struct {
	glyphs map[rune]Glyph
	height int
	paused Glyph
}

// Glyph returns the glyph for r.
func (f *Face) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// Height is the row count shared by every digit glyph.
func (f *Face) Height() int {
	return f.height
}

// Paused is the banner shown while a session is paused.
func (f *Face) Paused() Glyph {
	return f.paused
}

// Runes lists the characters the face can draw, in display order.
func (f *Face) Runes() []rune {
	return []rune("0123456789:")
}

// Default returns the built-in face.
func Default() *Face {
	return defaultFace
}

var defaultFace = &Face{
	height: 6,
	glyphs: map[rune]Glyph{
		':': {
			"   ",
			"██╗",
			"╚═╝",
			"██╗",
			"╚═╝",
			"   ",
		},
		'0': {
			" ██████╗ ",
			"██╔═████╗",
			"██║██╔██║",
			"████╔╝██║",
			"╚██████╔╝",
			" ╚═════╝ ",
		},
		'1': {
			" ██╗",
			"███║",
			"╚██║",
			" ██║",
			" ██║",
			" ╚═╝",
		},
		'2': {
			"██████╗ ",
			"╚════██╗",
			" █████╔╝",
			"██╔═══╝ ",
			"███████╗",
			"╚══════╝",
		},
		'3': {
			"██████╗ ",
			"╚════██╗",
			" █████╔╝",
			" ╚═══██╗",
			"██████╔╝",
			"╚═════╝ ",
		},
		'4': {
			"██╗  ██╗",
			"██║  ██║",
			"███████║",
			"╚════██║",
			"     ██║",
			"     ╚═╝",
		},
		'5': {
			"███████╗",
			"██╔════╝",
			"███████╗",
			"╚════██║",
			"███████║",
			"╚══════╝",
		},
		'6': {
			" ██████╗ ",
			"██╔════╝ ",
			"███████╗ ",
			"██╔═══██╗",
			"╚██████╔╝",
			" ╚═════╝ ",
		},
		'7': {
			"███████╗",
			"╚════██║",
			"    ██╔╝",
			"   ██╔╝ ",
			"   ██║  ",
			"   ╚═╝  ",
		},
		'8': {
			" █████╗ ",
			"██╔══██╗",
			"╚█████╔╝",
			"██╔══██╗",
			"╚█████╔╝",
			" ╚════╝ ",
		},
		'9': {
			" █████╗ ",
			"██╔══██╗",
			"╚██████║",
			" ╚═══██║",
			" █████╔╝",
			" ╚════╝ ",
		},
	},
	paused: Glyph{
		"█▀▄ ▄▀▄ █ █ ▄▀▀ ██▀ █▀▄",
		"█▀  █▀█ ▀▄█ ▄██ █▄▄ █▄▀",
	},
}
