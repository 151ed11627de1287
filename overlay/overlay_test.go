package overlay

import "testing"

func TestShapeString(t *testing.T) {
	if Rectangle.String() != "rectangle" || Circle.String() != "circle" {
		t.Errorf("unexpected shape names: %q, %q", Rectangle, Circle)
	}
}
