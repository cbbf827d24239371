package renderer

import (
	"context"
	"errors"

	"github.com/ivlev/deckplay/internal/navigator"
)

// Renderer draws one render directive
type Renderer interface {
	Render(ctx context.Context, rd navigator.RenderDirective) error
}

// Multi fans a directive out to several renderers. Every renderer is called
// even when an earlier one fails; the failures are joined.
type Multi []Renderer

func (m Multi) Render(ctx context.Context, rd navigator.RenderDirective) error {
	var errs []error
	for _, r := range m {
		if err := r.Render(ctx, rd); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Func adapts a function to the Renderer interface
type Func func(ctx context.Context, rd navigator.RenderDirective) error

func (f Func) Render(ctx context.Context, rd navigator.RenderDirective) error {
	return f(ctx, rd)
}
