package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsFullCube(t *testing.T) {
	tests := []struct {
		name   string
		shapes []Shape
		want   bool
	}{
		{name: "full cube", shapes: []Shape{NewShape(0, 0, 0, 1, 1, 1)}, want: true},
		{name: "empty", shapes: nil},
		{name: "two full cubes", shapes: []Shape{FullCube, FullCube}},
		{name: "slab", shapes: []Shape{NewShape(0, 0, 0, 1, 0.5, 1)}},
		{name: "min x", shapes: []Shape{NewShape(0.1, 0, 0, 1, 1, 1)}},
		{name: "min y", shapes: []Shape{NewShape(0, 0.1, 0, 1, 1, 1)}},
		{name: "min z", shapes: []Shape{NewShape(0, 0, 0.1, 1, 1, 1)}},
		{name: "max x", shapes: []Shape{NewShape(0, 0, 0, 0.9, 1, 1)}},
		{name: "max z", shapes: []Shape{NewShape(0, 0, 0, 1, 1, 0.9)}},
		{name: "oversized", shapes: []Shape{NewShape(0, 0, 0, 1, 1.5, 1)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, IsFullCube(test.shapes))
		})
	}
}

func TestClassify(t *testing.T) {
	require.Equal(t, KindEmpty, Classify(nil).Kind)
	require.Equal(t, KindFullCube, Classify([]Shape{FullCube}).Kind)
	require.Nil(t, Classify([]Shape{FullCube}).Boxes)

	boxes := []Shape{NewShape(0, 0, 0, 1, 0.5, 1), NewShape(0, 0.5, 0.5, 1, 1, 1)}
	m := Classify(boxes)
	require.Equal(t, KindBoxes, m.Kind)
	require.Equal(t, boxes, m.Boxes)
	require.Equal(t, "boxes", m.Kind.String())
}
