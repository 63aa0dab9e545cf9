package bounds

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var rectangleRe = regexp.MustCompile(`Rectangle\((-?[0-9.]+),\s*(-?[0-9.]+),\s*(-?[0-9.]+),\s*(-?[0-9.]+)\)`)

// Rectangle is the geometry of a graphic in integer pixel units.
type Rectangle struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

func New(x, y, w, h int) Rectangle {
	return Rectangle{X: x, Y: y, W: w, H: h}
}

func (r Rectangle) Bottom() int {
	return r.Y + r.H
}

func (r Rectangle) Right() int {
	return r.X + r.W
}

// CenterY returns the vertical middle, truncated.
func (r Rectangle) CenterY() int {
	return r.Y + r.H/2
}

// Contains reports whether the point lies inside r, edges included.
func (r Rectangle) Contains(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

func (r Rectangle) String() string {
	return Format(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
}

// Parse reads the host text form "Rectangle(x, y, w, h)". The second
// result is false when the text does not match, when a number is
// malformed or when the width or height is negative.
func Parse(text string) (Rectangle, bool) {
	match := rectangleRe.FindStringSubmatch(text)
	if match == nil {
		return Rectangle{}, false
	}

	var values [4]int
	for i := range values {
		d, err := decimal.NewFromString(match[i+1])
		if err != nil {
			return Rectangle{}, false
		}
		values[i] = int(d.IntPart())
	}

	r := Rectangle{X: values[0], Y: values[1], W: values[2], H: values[3]}
	if r.W < 0 || r.H < 0 {
		return Rectangle{}, false
	}
	return r, true
}

// Format renders a rectangle in the host text form.
func Format(x, y, w, h float64) string {
	return fmt.Sprintf("Rectangle(%s, %s, %s, %s)", formatNumber(x), formatNumber(y), formatNumber(w), formatNumber(h))
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
