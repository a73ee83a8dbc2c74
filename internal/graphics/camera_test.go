package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraFront(t *testing.T) {
	c := NewCamera(800, 600)
	front := c.Front()
	if !front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Fatalf("expected default front (0,0,-1), got %v", front)
	}

	c.Yaw = 0
	if !c.Front().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Fatalf("expected yaw 0 to face +X, got %v", c.Front())
	}
}

func TestCameraMouseClampsPitch(t *testing.T) {
	c := NewCamera(800, 600)
	c.HandleMouseMovement(100, 100)
	if c.Pitch != 0 || c.Yaw != -90 {
		t.Fatalf("first movement should only record the cursor")
	}

	c.HandleMouseMovement(110, -5000)
	if c.Pitch != 89 {
		t.Fatalf("expected pitch clamped to 89, got %f", c.Pitch)
	}
	if c.Yaw != -89 {
		t.Fatalf("expected yaw -89, got %f", c.Yaw)
	}
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(800, 600)
	c.Pitch = 45

	c.Move(1, 0, 0, 0.5)
	want := mgl32.Vec3{0, 0, -10}
	if !c.Position.ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("expected %v, got %v", want, c.Position)
	}

	c.Move(0, 0, 1, 0.1)
	if c.Position.Y() < 1.99 || c.Position.Y() > 2.01 {
		t.Fatalf("expected to rise 2 blocks, got %v", c.Position)
	}

	before := c.Position
	c.Move(0, 0, 0, 1)
	if c.Position != before {
		t.Fatalf("zero input moved the camera")
	}
}

func TestCameraSetAspect(t *testing.T) {
	c := NewCamera(800, 600)
	c.SetAspect(0, 100)
	if c.AspectRatio != float32(800)/600 {
		t.Fatalf("zero width changed the aspect ratio")
	}
	c.SetAspect(200, 100)
	if c.AspectRatio != 2 {
		t.Fatalf("expected aspect 2, got %f", c.AspectRatio)
	}
}
