package app

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// uiFont returns the face used for all UI text.
func uiFont() font.Face {
	return basicfont.Face7x13
}

// lineHeight is the vertical advance for uiFont text blocks.
const lineHeight = 16
