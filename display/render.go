package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const halfBlock = "▀"

// Size returns the cell grid a picture of the given bounds occupies at width
// columns. Each cell shows two vertically stacked pixels.
func Size(bounds image.Rectangle, width int) (cols, rows int) {
	if width <= 0 || bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return 0, 0
	}

	pixels := width * bounds.Dy() / bounds.Dx()
	rows = (pixels + 1) / 2
	if rows == 0 {
		rows = 1
	}
	return width, rows
}

// Render draws img as width columns of colored half blocks.
func Render(img image.Image, width int) string {
	if img == nil {
		return ""
	}

	cols, rows := Size(img.Bounds(), width)
	if cols == 0 {
		return ""
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := scaled.RGBAAt(x, y*2)
			bottom := scaled.RGBAAt(x, y*2+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render(halfBlock))
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
