// Package export writes generation results to the supported output
// formats: CSV and XLSX particle tables, layered DXF drawings, PDF
// reports and QR-coded run cards.
package export

import "github.com/yofu/dxf/color"

// rgb is a display color for PDF rendering.
type rgb struct {
	R, G, B int
}

// layerColors maps the group layer color keys onto AutoCAD color indices.
var layerColors = map[string]color.ColorNumber{
	"red":     color.Red,
	"yellow":  color.Yellow,
	"green":   color.Green,
	"cyan":    color.Cyan,
	"blue":    color.Blue,
	"magenta": color.Magenta,
	"white":   color.White,
}

// displayColors maps the same keys onto RGB values for PDF drawing.
var displayColors = map[string]rgb{
	"red":     {R: 244, G: 67, B: 54},
	"yellow":  {R: 255, G: 235, B: 59},
	"green":   {R: 76, G: 175, B: 80},
	"cyan":    {R: 0, G: 188, B: 212},
	"blue":    {R: 33, G: 150, B: 243},
	"magenta": {R: 156, G: 39, B: 176},
	"white":   {R: 224, G: 224, B: 224},
}

// dxfColor resolves a layer color key, defaulting to white.
func dxfColor(key string) color.ColorNumber {
	if c, ok := layerColors[key]; ok {
		return c
	}
	return color.White
}

// displayColor resolves a layer color key to RGB, defaulting to grey.
func displayColor(key string) rgb {
	if c, ok := displayColors[key]; ok {
		return c
	}
	return rgb{R: 158, G: 158, B: 158}
}
