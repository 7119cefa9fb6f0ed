package platform

type Event interface{}

type KeyPress struct {
	Label string
}

// Resize reports the new drawing surface size in pixels.
type Resize struct {
	Width, Height int
}

type DestroyNotify struct{}
