package floorplan

import (
	"bytes"
	"fmt"
)

// Colors for the three block roles, chosen to keep the mirrored half
// distinguishable at a glance.
const (
	fillRepresentative = "#9ecae1"
	fillMate           = "#c6dbef"
	fillSelfSymmetric  = "#fdd0a2"
	strokeBlock        = "#333333"
	strokeAxis         = "#d62728"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      int
	margin     int
	showLabels bool
	showAxis   bool
}

// WithScale sets the pixels-per-unit scale factor.
func WithScale(scale int) SVGOption {
	return func(r *svgRenderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithoutLabels suppresses the per-block name labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// WithoutAxis suppresses the symmetry-axis line.
func WithoutAxis() SVGOption { return func(r *svgRenderer) { r.showAxis = false } }

// RenderSVG renders a layout as a standalone SVG document. The floorplan's
// y-axis points up, so blocks are flipped into SVG's top-down coordinates.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := &svgRenderer{scale: 10, margin: 20, showLabels: true, showAxis: true}
	for _, opt := range opts {
		opt(r)
	}

	// The mirrored half can extend past the representatives' bounding box;
	// include the axis so the frame never clips it.
	extent := l.Width
	if l.Symmetry == "vertical" && int(2*l.Axis) > extent {
		extent = int(2 * l.Axis)
	}
	vExtent := l.Height
	if l.Symmetry == "horizontal" && int(2*l.Axis) > vExtent {
		vExtent = int(2 * l.Axis)
	}

	frameW := extent*r.scale + 2*r.margin
	frameH := vExtent*r.scale + 2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		frameW, frameH, frameW, frameH)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="white"/>`+"\n", frameW, frameH)

	for _, b := range l.Blocks {
		x := r.margin + b.X*r.scale
		y := frameH - r.margin - b.Top()*r.scale
		w := b.Width * r.scale
		h := b.Height * r.scale

		fill := fillRepresentative
		switch b.Role {
		case RoleMate:
			fill = fillMate
		case RoleSelfSymmetric:
			fill = fillSelfSymmetric
		}

		fmt.Fprintf(&buf, `  <rect id="block-%s" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			b.ID, x, y, w, h, fill, strokeBlock)

		if r.showLabels {
			fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="monospace" font-size="%d" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
				x+w/2, y+h/2, r.scale, b.ID)
		}
	}

	if r.showAxis {
		if l.Symmetry == "vertical" {
			ax := float64(r.margin) + l.Axis*float64(r.scale)
			fmt.Fprintf(&buf, `  <line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s" stroke-width="1" stroke-dasharray="6,4"/>`+"\n",
				ax, ax, frameH, strokeAxis)
		} else {
			ay := float64(frameH) - float64(r.margin) - l.Axis*float64(r.scale)
			fmt.Fprintf(&buf, `  <line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="6,4"/>`+"\n",
				ay, frameW, ay, strokeAxis)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
