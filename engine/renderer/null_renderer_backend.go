package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// nullRendererBackend records what a GPU backend would have been asked to do.
type nullRendererBackend struct {
	mu *sync.Mutex

	width, height int
	presentMode   PresentMode
	sampleCount   MSAASampleCount
	clear         common.Color

	inFrame   bool
	frames    int
	warmups   int
	configure int
	lights    []byte
	released  bool
}

var _ RendererBackend = &nullRendererBackend{}

func newNullRendererBackend(sampleCount MSAASampleCount) *nullRendererBackend {
	return &nullRendererBackend{
		mu:          &sync.Mutex{},
		sampleCount: sampleCount,
	}
}

func (b *nullRendererBackend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width <= 0 || height <= 0 {
		return nil
	}
	b.width, b.height = width, height
	b.configure++
	return nil
}

func (b *nullRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *nullRendererBackend) SetSampleCount(count MSAASampleCount) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sampleCount = count
}

func (b *nullRendererBackend) SetClearColor(c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear = c
}

func (b *nullRendererBackend) UploadLights(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lights = append(b.lights[:0], data...)
	return nil
}

func (b *nullRendererBackend) Warm() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.warmups++
	return nil
}

func (b *nullRendererBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFrame {
		return fmt.Errorf("previous frame not yet presented")
	}
	b.inFrame = true
	return nil
}

func (b *nullRendererBackend) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inFrame {
		return fmt.Errorf("no frame in progress")
	}
	b.frames++
	return nil
}

func (b *nullRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFrame = false
}

func (b *nullRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
}
