package viewport

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// Event identifies what changed in the viewport.
type Event int

const (
	// EventResize fires when the viewport size or pixel ratio changes.
	EventResize Event = iota
	// EventScroll fires when the scroll offset changes.
	EventScroll
	// EventLayout fires when element positions may have moved without a scroll (content reflow).
	EventLayout
)

func (e Event) String() string {
	switch e {
	case EventResize:
		return "resize"
	case EventScroll:
		return "scroll"
	case EventLayout:
		return "layout"
	default:
		return "unknown"
	}
}

// Listener receives viewport events. It may be invoked on a platform goroutine.
type Listener func(Event)

// Element is a named region of the document that actors can anchor to.
type Element interface {
	// BoundingRect returns the element's rectangle relative to the visible viewport at call time.
	//
	// Returns:
	//   - common.Rect: the client rectangle; zero-sized when the element has been removed
	BoundingRect() common.Rect

	// OffsetTop returns the element's distance from the top of the document.
	//
	// Returns:
	//   - float32: document-space top edge
	OffsetTop() float32
}

// Viewport is the document context the engine reads from: scroll position, visible size and
// named anchor elements. The engine never queries a concrete document directly.
type Viewport interface {
	// ScrollOffset returns the vertical scroll position in CSS pixels.
	// The value may momentarily exceed ScrollableHeight during elastic overscroll.
	//
	// Returns:
	//   - float32: the scroll offset
	ScrollOffset() float32

	// Size returns the visible viewport size in CSS pixels.
	//
	// Returns:
	//   - width, height: the viewport dimensions
	Size() (width, height float32)

	// DevicePixelRatio returns the ratio of physical to CSS pixels.
	//
	// Returns:
	//   - float32: the device pixel ratio
	DevicePixelRatio() float32

	// ScrollableHeight returns the maximum scroll offset (document height minus viewport height).
	//
	// Returns:
	//   - float32: the scrollable distance, never negative
	ScrollableHeight() float32

	// Element looks up a named element.
	//
	// Parameters:
	//   - name: the element identifier
	//
	// Returns:
	//   - Element: the element, or nil if it does not exist
	Element(name string) Element

	// Subscribe registers a listener for viewport events.
	//
	// Parameters:
	//   - listener: the callback to register
	//
	// Returns:
	//   - func(): cancels the subscription; safe to call more than once
	Subscribe(listener Listener) (cancel func())
}

// Layout is a document description in document coordinates, used where no live document exists.
type Layout struct {
	// DocumentHeight is the total scrollable document height.
	DocumentHeight float32
	// ReferenceWidth is the viewport width the layout was authored at. When positive,
	// every coordinate scales by width / ReferenceWidth.
	ReferenceWidth float32
	// Elements maps element names to document-space rectangles.
	Elements map[string]common.Rect
}

// clone returns a deep copy so callers cannot mutate a published layout.
func (l Layout) clone() Layout {
	out := Layout{DocumentHeight: l.DocumentHeight, ReferenceWidth: l.ReferenceWidth, Elements: make(map[string]common.Rect, len(l.Elements))}
	for k, v := range l.Elements {
		out.Elements[k] = v
	}
	return out
}

// listenerSet is a concurrency-safe set of listeners that emits outside its lock.
type listenerSet struct {
	mu        sync.Mutex
	next      int
	listeners map[int]Listener
}

func (s *listenerSet) add(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.next
	s.next++
	s.listeners[id] = l
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

func (s *listenerSet) emit(e Event) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range ls {
		l(e)
	}
}
