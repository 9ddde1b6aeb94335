package window

import "github.com/veandco/go-sdl2/sdl"

// EventType classifies viewer input.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventDrag
	EventZoom
	// EventClick is a left button release without a drag in between.
	EventClick
)

// Event is one processed input event.
type Event struct {
	Type EventType
	Key  sdl.Keycode
	// Width and Height are set for EventResize.
	Width, Height int
	// DX and DY are the drag delta in pixels, or the wheel steps of EventZoom.
	DX, DY float32
	// Pan is set when the drag used the right button.
	Pan bool
	// X and Y are the cursor position of EventClick.
	X, Y int
}

// PollEvents drains the SDL queue. The returned slice is reused by the
// next call.
func (w *Window) PollEvents() []Event {
	w.events = w.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.events = append(w.events, Event{Type: EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.GetSize()
				w.events = append(w.events, Event{Type: EventResize, Width: width, Height: height})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				w.events = append(w.events, Event{Type: EventKeyDown, Key: e.Keysym.Sym})
			}

		case *sdl.MouseButtonEvent:
			pressed := e.State == sdl.PRESSED
			switch e.Button {
			case sdl.BUTTON_LEFT:
				if !pressed && w.dragLeft && !w.dragged {
					w.events = append(w.events, Event{Type: EventClick, X: int(e.X), Y: int(e.Y)})
				}
				w.dragLeft = pressed
				w.dragged = false
			case sdl.BUTTON_RIGHT:
				w.dragRight = pressed
			}

		case *sdl.MouseMotionEvent:
			if w.dragLeft || w.dragRight {
				w.dragged = true
				w.events = append(w.events, Event{
					Type: EventDrag,
					DX:   float32(e.XRel),
					DY:   float32(e.YRel),
					Pan:  w.dragRight,
				})
			}

		case *sdl.MouseWheelEvent:
			w.events = append(w.events, Event{Type: EventZoom, DY: float32(e.Y)})
		}
	}

	return w.events
}
