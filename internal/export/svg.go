package export

import (
	"fmt"
	"html"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/sim"
)

// TrailsSVG draws a top-down (x, z) picture of the star, the bodies and
// their trails. The view is centred on the star and fits every body.
func TrailsSVG(s *sim.Simulator, size int) string {
	if size <= 0 {
		size = 800
	}
	all := append([]*body.Body{s.Star()}, s.Bodies()...)
	center := s.Star().Position()

	extent := s.Star().Radius()
	for _, b := range all {
		extent = max(extent, b.Position().Sub(center).Len()+b.Radius())
		b.Trail().Each(func(_ int, p mgl32.Vec3) {
			extent = max(extent, p.Sub(center).Len())
		})
	}
	extent *= 1.05
	scale := float32(size) / (2 * extent)
	half := float32(size) / 2
	project := func(p mgl32.Vec3) (float32, float32) {
		d := p.Sub(center)
		return half + d.X()*scale, half + d.Z()*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	for _, b := range all {
		trail := b.Trail().Points()
		if len(trail) < 2 {
			continue
		}
		var pts strings.Builder
		for i, p := range trail {
			x, y := project(p)
			if i > 0 {
				pts.WriteByte(' ')
			}
			pts.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="1"/>
`, pts.String(), hex(b.Color())))
	}

	for _, b := range all {
		x, y := project(b.Position())
		r := max(b.Radius()*scale, 1)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, x, y, r, hex(b.Color()), html.EscapeString(b.Name())))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func hex(c color.RGBA) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}
