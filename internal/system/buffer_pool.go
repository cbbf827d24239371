package system

import (
	"image"
	"sync"
)

// ImagePool переиспользует кадры *image.RGBA одного размера, чтобы снизить
// нагрузку на GC при записи снимков. Пулы заводятся по размеру кадра.
type ImagePool struct {
	pools map[image.Point]*sync.Pool
	mu    sync.RWMutex
}

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Point]*sync.Pool)}
}

// Get возвращает очищенный кадр размером w x h
func (p *ImagePool) Get(w, h int) *image.RGBA {
	size := image.Pt(w, h)

	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[size]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					return image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
				},
			}
			p.pools[size] = pool
		}
		p.mu.Unlock()
	}

	img := pool.Get().(*image.RGBA)
	clear(img.Pix)
	return img
}

// Put возвращает кадр в пул. Кадры неизвестного размера отбрасываются.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	size := img.Rect.Size()

	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
