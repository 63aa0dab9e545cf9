package bounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want Rectangle
		ok   bool
	}{
		{"Rectangle(10, 20.5, 30, 40)", Rectangle{X: 10, Y: 20, W: 30, H: 40}, true},
		{"Rectangle(10,20,30,40)", Rectangle{X: 10, Y: 20, W: 30, H: 40}, true},
		{"Rectangle(-12.9, -0.5, 120.99, 60.0)", Rectangle{X: -12, Y: 0, W: 120, H: 60}, true},
		{"bounds: Rectangle(1.0, 2.0, 3.0, 4.0) (visible)", Rectangle{X: 1, Y: 2, W: 3, H: 4}, true},
		{"garbage", Rectangle{}, false},
		{"", Rectangle{}, false},
		{"Rectangle(1, 2, 3)", Rectangle{}, false},
		{"Rectangle(1.2.3, 2, 3, 4)", Rectangle{}, false},
		{"Rectangle(1, 2, -3, 4)", Rectangle{}, false},
		{"Rectangle(1, 2, 3, -4)", Rectangle{}, false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Rectangle(10.0, 20.5, 30.0, 40.0)", Format(10, 20.5, 30, 40))
	assert.Equal(t, "Rectangle(-5.0, 0.0, 1.0, 1.0)", New(-5, 0, 1, 1).String())

	r := New(80, 100, 120, 60)
	got, ok := Parse(r.String())
	assert.True(t, ok)
	assert.Equal(t, r, got)
}

func TestRectangleHelpers(t *testing.T) {
	r := New(10, 100, 40, 50)
	assert.Equal(t, 150, r.Bottom())
	assert.Equal(t, 50, r.Right())
	assert.Equal(t, 125, r.CenterY())
	assert.True(t, r.Contains(10, 100))
	assert.True(t, r.Contains(50, 150))
	assert.False(t, r.Contains(51, 120))
}
