package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLength is returned for lengths that are neither cell counts nor
// percentages.
var ErrInvalidLength = errors.New("invalid length")

// ResolveLength converts a length to cells. "40" is taken as-is, "50%" is
// resolved against total. An empty string resolves to zero.
func ResolveLength(s string, total int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
		}
		return int(v * float64(total) / 100), nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return v, nil
}

// Placement names where a window appears when it has not been dragged.
type Placement string

const (
	PlaceCenter      Placement = "center"
	PlaceTop         Placement = "top"
	PlaceBottom      Placement = "bottom"
	PlaceLeft        Placement = "left"
	PlaceRight       Placement = "right"
	PlaceTopLeft     Placement = "top-left"
	PlaceTopRight    Placement = "top-right"
	PlaceBottomLeft  Placement = "bottom-left"
	PlaceBottomRight Placement = "bottom-right"
)

// ParsePlacement accepts the placement names with or without the dash
// ("topleft" and "top-left" are the same). Unknown names fall back to center.
func ParsePlacement(s string) Placement {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "top":
		return PlaceTop
	case "bottom":
		return PlaceBottom
	case "left":
		return PlaceLeft
	case "right":
		return PlaceRight
	case "topleft":
		return PlaceTopLeft
	case "topright":
		return PlaceTopRight
	case "bottomleft":
		return PlaceBottomLeft
	case "bottomright":
		return PlaceBottomRight
	default:
		return PlaceCenter
	}
}

// Place returns the top-left corner of a width×height window at placement
// inside vp.
func Place(p Placement, width, height int, vp Viewport) Point {
	centerX := max((vp.Width-width)/2, 0)
	centerY := max((vp.Height-height)/2, 0)
	right := max(vp.Width-width, 0)
	bottom := max(vp.Height-height, 0)

	switch p {
	case PlaceTop:
		return Point{X: centerX, Y: 0}
	case PlaceBottom:
		return Point{X: centerX, Y: bottom}
	case PlaceLeft:
		return Point{X: 0, Y: centerY}
	case PlaceRight:
		return Point{X: right, Y: centerY}
	case PlaceTopLeft:
		return Point{X: 0, Y: 0}
	case PlaceTopRight:
		return Point{X: right, Y: 0}
	case PlaceBottomLeft:
		return Point{X: 0, Y: bottom}
	case PlaceBottomRight:
		return Point{X: right, Y: bottom}
	default:
		return Point{X: centerX, Y: centerY}
	}
}
