package ui

import "image/color"

// Theme holds the colours of the split view chrome.
type Theme struct {
	Handle     color.Color
	Grip       color.Color
	GripIcon   color.Color
	Shadow     color.Color
	LabelBack  color.Color
	Background color.Color
}

var themes = map[string]Theme{
	"": {
		Handle:     color.White,
		Grip:       color.White,
		GripIcon:   color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		Shadow:     color.RGBA{A: 0x80},
		LabelBack:  color.RGBA{A: 0x99},
		Background: color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
	},
	"dark": {
		Handle:     color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		Grip:       color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		GripIcon:   color.White,
		Shadow:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40},
		LabelBack:  color.RGBA{A: 0xcc},
		Background: color.Black,
	},
	"accent": {
		Handle:     color.RGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff},
		Grip:       color.RGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff},
		GripIcon:   color.White,
		Shadow:     color.RGBA{A: 0x80},
		LabelBack:  color.RGBA{A: 0x99},
		Background: color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
	},
}

// ThemeFor returns the theme for a style class, falling back to the default
// for unknown classes.
func ThemeFor(class string) Theme {
	if t, ok := themes[class]; ok {
		return t
	}
	return themes[""]
}
