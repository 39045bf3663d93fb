//go:build js && wasm

package viewport

import (
	"sync"
	"syscall/js"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// DOMViewport reads the live browser document through syscall/js.
type DOMViewport struct {
	mu    *sync.Mutex
	win   js.Value
	doc   js.Value
	funcs map[string]js.Func

	listeners listenerSet
}

var _ Viewport = &DOMViewport{}

// NewDOMViewport binds to the global window and document and forwards their scroll, resize
// and load events to subscribers. Release must be called to detach the handlers.
//
// Returns:
//   - *DOMViewport: the viewport
func NewDOMViewport() *DOMViewport {
	v := &DOMViewport{
		mu:    &sync.Mutex{},
		win:   js.Global(),
		doc:   js.Global().Get("document"),
		funcs: make(map[string]js.Func),
	}
	v.listen("scroll", EventScroll)
	v.listen("resize", EventResize)
	v.listen("load", EventLayout)
	return v
}

func (v *DOMViewport) listen(name string, e Event) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		v.listeners.emit(e)
		return nil
	})
	v.funcs[name] = fn
	v.win.Call("addEventListener", name, fn, map[string]any{"passive": true})
}

// InvalidateLayout fires EventLayout. Hosts call it after content reflows (fonts, images, expanding panels).
func (v *DOMViewport) InvalidateLayout() {
	v.listeners.emit(EventLayout)
}

// Release detaches every DOM listener.
func (v *DOMViewport) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for name, fn := range v.funcs {
		v.win.Call("removeEventListener", name, fn)
		fn.Release()
	}
	v.funcs = map[string]js.Func{}
}

func (v *DOMViewport) ScrollOffset() float32 {
	return float32(v.win.Get("scrollY").Float())
}

func (v *DOMViewport) Size() (width, height float32) {
	return float32(v.win.Get("innerWidth").Float()), float32(v.win.Get("innerHeight").Float())
}

func (v *DOMViewport) DevicePixelRatio() float32 {
	dpr := v.win.Get("devicePixelRatio")
	if dpr.IsUndefined() {
		return 1
	}
	return float32(dpr.Float())
}

func (v *DOMViewport) ScrollableHeight() float32 {
	docHeight := v.doc.Get("documentElement").Get("scrollHeight").Float()
	h := docHeight - v.win.Get("innerHeight").Float()
	if h < 0 {
		return 0
	}
	return float32(h)
}

func (v *DOMViewport) Element(name string) Element {
	el := v.doc.Call("getElementById", name)
	if el.IsNull() || el.IsUndefined() {
		return nil
	}
	return domElement{value: el}
}

func (v *DOMViewport) Subscribe(listener Listener) func() {
	return v.listeners.add(listener)
}

// domElement wraps a DOM node.
type domElement struct {
	value js.Value
}

func (e domElement) BoundingRect() common.Rect {
	if !e.value.Get("isConnected").Truthy() {
		return common.Rect{}
	}
	r := e.value.Call("getBoundingClientRect")
	return common.Rect{
		Left:   float32(r.Get("left").Float()),
		Top:    float32(r.Get("top").Float()),
		Width:  float32(r.Get("width").Float()),
		Height: float32(r.Get("height").Float()),
	}
}

func (e domElement) OffsetTop() float32 {
	return float32(e.value.Get("offsetTop").Float())
}
