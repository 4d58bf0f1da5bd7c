package camera

// MouseButton identifies a pointer button in camera input events.
type MouseButton int

const (
	// MouseButtonPrimary is the button that starts and stops an orbit drag.
	MouseButtonPrimary MouseButton = iota

	// MouseButtonSecondary is reserved; the camera ignores it.
	MouseButtonSecondary

	// MouseButtonMiddle is reserved; the camera ignores it.
	MouseButtonMiddle
)

// Event is the closed set of pointer events a Camera understands.
// The windowing layer translates its native input into these variants and
// feeds them to Camera.HandleEvent. Variants outside this package cannot
// satisfy the interface, so the union stays closed.
type Event interface {
	isCameraEvent()
}

// ButtonDownEvent reports a pointer button press.
type ButtonDownEvent struct {
	// Button is the pressed button.
	Button MouseButton
}

// ButtonUpEvent reports a pointer button release.
type ButtonUpEvent struct {
	// Button is the released button.
	Button MouseButton
}

// MotionEvent reports pointer movement as a relative delta in pixels.
// Only affects the camera while a primary-button drag is active.
type MotionEvent struct {
	// DX is the horizontal pointer delta in pixels (positive = right).
	DX float32

	// DY is the vertical pointer delta in pixels (positive = down).
	DY float32
}

func (ButtonDownEvent) isCameraEvent() {}
func (ButtonUpEvent) isCameraEvent()   {}
func (MotionEvent) isCameraEvent()     {}
