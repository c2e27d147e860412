// Package svg renders circuit frames as standalone SVG documents for the
// web view and for file export.
package svg

import (
	"fmt"
	"strings"

	"github.com/flowlab/flowlab/internal/engine"
	"github.com/flowlab/flowlab/internal/flow"
)

const (
	outlineStep  = 5.0
	entityRadius = 4.0
	degPerRad    = 57.29577951308232
	background   = "#10141a"
	conduitColor = "#3a4450"
	entityColor  = "#ffd75f"
	readoutColor = "#9ad1ff"
)

// Render draws one frame of a circuit: the conduit outline at its current
// stroke width, every entity at its lane-offset position (rotated where the
// circuit supplies an angle), and the rate readout.
func Render(c flow.Circuit, f engine.Frame) string {
	w, h := c.ViewBox()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background))

	writeOutline(&sb, c)
	writeEntities(&sb, f.Points)

	if f.Measuring {
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="22" font-family="monospace" font-size="14" fill="%s" text-anchor="end">%s</text>
`, w-12, readoutColor, f.RateLabel))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeOutline(sb *strings.Builder, c flow.Circuit) {
	pts := c.Outline(outlineStep)
	if len(pts) < 2 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round" d="M`, conduitColor, c.StrokeWidth()))
	for i, p := range pts {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	sb.WriteString(` Z"/>
`)
}

func writeEntities(sb *strings.Builder, pts []flow.Point) {
	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, entityColor))
	for _, p := range pts {
		if p.Angle != 0 {
			// A rotated marker so the direction of travel reads on curves.
			sb.WriteString(fmt.Sprintf(`<g transform="translate(%.1f %.1f) rotate(%.1f)"><circle r="%.1f"/><line x1="0" y1="0" x2="%.1f" y2="0" stroke="%s" stroke-width="1.5"/></g>
`, p.X, p.Y, p.Angle*degPerRad, entityRadius, entityRadius*2, entityColor))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, p.X, p.Y, entityRadius))
		}
	}
	sb.WriteString(`</g>
`)
}
