package heatmap

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

// Color is a "#rrggbb" hex string.
type Color string

// ramp is a piecewise-linear interpolator over evenly spaced color stops.
type ramp []colorful.Color

var ramps = map[facility.Palette]ramp{
	facility.PaletteViridis: mustRamp("#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"),
	facility.PalettePlasma:  mustRamp("#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"),
	facility.PaletteRdYlBu:  mustRamp("#a50026", "#d73027", "#f46d43", "#fdae61", "#fee090", "#ffffbf", "#e0f3f8", "#abd9e9", "#74add1", "#4575b4", "#313695"),
	facility.PaletteRdYlGn:  mustRamp("#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837"),
}

func mustRamp(stops ...string) ramp {
	out := make(ramp, 0, len(stops))
	for _, hex := range stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(fmt.Sprintf("palette stop %q: %v", hex, err))
		}
		out = append(out, c)
	}
	return out
}

func rampFor(p facility.Palette) ramp {
	if r, ok := ramps[p]; ok {
		return r
	}
	return ramps[facility.PaletteViridis]
}

// at samples the ramp at t, clamped to [0,1]. NaN has no color.
func (r ramp) at(t float64) (Color, bool) {
	switch {
	case math.IsNaN(t):
		return "", false
	case t <= 0:
		return Color(r[0].Hex()), true
	case t >= 1:
		return Color(r[len(r)-1].Hex()), true
	}
	pos := t * float64(len(r)-1)
	i := int(pos)
	return Color(r[i].BlendRgb(r[i+1], pos-float64(i)).Clamped().Hex()), true
}
