package svgutil

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// SVG canvas metadata
// ============================================================

// Canvas is the coordinate space of a floor plan. Vertices placed by
// the editor use these units.
type Canvas struct {
	Width  float64
	Height float64
}

// DefaultCanvas matches the floor plans the site ships with.
var DefaultCanvas = Canvas{Width: 1461.95, Height: 1149.136}

type svgRoot struct {
	XMLName xml.Name `xml:"svg"`
	ViewBox string   `xml:"viewBox,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
}

// ParseCanvas reads the root element of an uploaded SVG and extracts
// its drawing size, preferring the viewBox over width/height
// attributes.
func ParseCanvas(data []byte) (Canvas, error) {
	var root svgRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return Canvas{}, fmt.Errorf("parse svg: %w", err)
	}

	if root.ViewBox != "" {
		parts := strings.Fields(root.ViewBox)
		if len(parts) == 4 {
			w, errW := strconv.ParseFloat(parts[2], 64)
			h, errH := strconv.ParseFloat(parts[3], 64)
			if errW == nil && errH == nil && w > 0 && h > 0 {
				return Canvas{Width: w, Height: h}, nil
			}
		}
		return Canvas{}, fmt.Errorf("parse svg: bad viewBox %q", root.ViewBox)
	}

	w := parseLength(root.Width)
	h := parseLength(root.Height)
	if w > 0 && h > 0 {
		return Canvas{Width: w, Height: h}, nil
	}
	return Canvas{}, fmt.Errorf("parse svg: no usable dimensions")
}

// parseLength strips a px/pt unit suffix and parses the number.
func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(s), "px"), "pt")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
