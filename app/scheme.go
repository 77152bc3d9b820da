package app

import "image/color"

// ColorScheme is the palette the map screen renders with.
type ColorScheme struct {
	Name       string
	Background color.RGBA
	Grid       color.RGBA
	GridMajor  color.RGBA
	WorldEdge  color.RGBA
	Text       color.RGBA
	TextMuted  color.RGBA
	Marker     color.RGBA
	MarkerRing color.RGBA
	Fix        color.RGBA
	Panel      color.RGBA
	PanelEdge  color.RGBA
	Button     color.RGBA
	ButtonHot  color.RGBA
	Danger     color.RGBA
	DangerHot  color.RGBA
	Overlay    color.RGBA
}

// DefaultScheme is the light map styling.
func DefaultScheme() ColorScheme {
	return ColorScheme{
		Name:       "default",
		Background: color.RGBA{225, 232, 238, 255},
		Grid:       color.RGBA{195, 205, 214, 255},
		GridMajor:  color.RGBA{150, 165, 180, 255},
		WorldEdge:  color.RGBA{120, 135, 150, 255},
		Text:       color.RGBA{30, 35, 40, 255},
		TextMuted:  color.RGBA{95, 105, 115, 255},
		Marker:     color.RGBA{210, 60, 50, 255},
		MarkerRing: color.RGBA{255, 255, 255, 255},
		Fix:        color.RGBA{40, 110, 220, 255},
		Panel:      color.RGBA{245, 247, 250, 240},
		PanelEdge:  color.RGBA{160, 170, 185, 255},
		Button:     color.RGBA{60, 120, 180, 255},
		ButtonHot:  color.RGBA{80, 150, 210, 255},
		Danger:     color.RGBA{170, 60, 55, 255},
		DangerHot:  color.RGBA{200, 80, 70, 255},
		Overlay:    color.RGBA{0, 0, 0, 120},
	}
}

// DarkScheme is the dark map styling used by the side-menu variant.
func DarkScheme() ColorScheme {
	return ColorScheme{
		Name:       "dark",
		Background: color.RGBA{18, 22, 30, 255},
		Grid:       color.RGBA{40, 48, 60, 255},
		GridMajor:  color.RGBA{70, 82, 100, 255},
		WorldEdge:  color.RGBA{95, 108, 128, 255},
		Text:       color.RGBA{225, 230, 238, 255},
		TextMuted:  color.RGBA{140, 150, 165, 255},
		Marker:     color.RGBA{235, 85, 70, 255},
		MarkerRing: color.RGBA{20, 24, 32, 255},
		Fix:        color.RGBA{90, 160, 255, 255},
		Panel:      color.RGBA{30, 36, 48, 240},
		PanelEdge:  color.RGBA{80, 92, 112, 255},
		Button:     color.RGBA{55, 105, 165, 255},
		ButtonHot:  color.RGBA{75, 135, 200, 255},
		Danger:     color.RGBA{160, 55, 50, 255},
		DangerHot:  color.RGBA{195, 75, 65, 255},
		Overlay:    color.RGBA{0, 0, 0, 160},
	}
}

// SchemeByName maps the config value to a palette, defaulting to the light one.
func SchemeByName(name string) ColorScheme {
	if name == "dark" {
		return DarkScheme()
	}
	return DefaultScheme()
}
