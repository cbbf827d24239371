package renderer

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/ivlev/deckplay/internal/animation"
	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/navigator"
	"github.com/ivlev/deckplay/internal/system"
	"github.com/ivlev/deckplay/internal/viewport"
)

// Wireframe colors per element phase
var phaseColors = map[animation.Phase]gg.RGBA{
	animation.PhaseStatic:   gg.Hex("#9e9e9e"),
	animation.PhaseUpcoming: gg.Hex("#64b5f6"),
	animation.PhaseActive:   gg.Hex("#ff9800"),
	animation.PhasePlayed:   gg.Hex("#66bb6a"),
}

// previousAlpha dims the departing slide under the entering one
const previousAlpha = 0.35

// Snapshot writes PNG frames per directive: a wireframe of the logical
// canvas scaled into the viewport letterbox. With Samples above one, a step
// with running effects is written as that many frames spread from the start
// of the step until every effect settles.
type Snapshot struct {
	Dir     string
	Samples int

	mu     sync.Mutex
	pool   *system.ImagePool
	frames int
}

// NewSnapshot creates the output directory if needed
func NewSnapshot(dir string) (*Snapshot, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &Snapshot{Dir: dir, Samples: 1, pool: system.NewImagePool()}, nil
}

// Frames returns how many PNG files were written
func (s *Snapshot) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Snapshot) Render(ctx context.Context, rd navigator.RenderDirective) error {
	for _, at := range SampleTimes(rd, s.Samples) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.write(rd, at); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshot) write(rd navigator.RenderDirective, elapsedMs float64) error {
	frame, ok := s.Compose(rd, elapsedMs)
	if !ok {
		// zero-area viewport: nothing drawable
		return nil
	}
	defer s.Release(frame)

	s.mu.Lock()
	defer s.mu.Unlock()

	name := fmt.Sprintf("frame_%05d_slide_%03d.png", s.frames, rd.SlideNumber)
	if err := writePNG(filepath.Join(s.Dir, name), frame); err != nil {
		return fmt.Errorf("snapshot %s: %w", name, err)
	}
	s.frames++

	return nil
}

// SampleTimes spreads n sample points, in ms since the step began, over the
// running effects of the directive. The last point is always the settled
// state, so n <= 1 or a step with nothing running yields one settled frame.
func SampleTimes(rd navigator.RenderDirective, n int) []float64 {
	end := 0.0
	for _, ed := range rd.Current.Elements {
		if pb := ed.State.Playing; pb != nil && pb.End() > end {
			end = pb.End()
		}
	}

	if n <= 1 || end == 0 {
		return []float64{end}
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = end * float64(i) / float64(n-1)
	}
	return times
}

// Compose draws the directive at viewport size, elapsedMs into the step.
// The returned frame belongs to the pool; hand it back with Release when done.
func (s *Snapshot) Compose(rd navigator.RenderDirective, elapsedMs float64) (*image.RGBA, bool) {
	box := viewport.Letterbox(viewport.Logical, rd.Viewport)
	w, h := int(rd.Viewport.W), int(rd.Viewport.H)
	if box.W <= 0 || box.H <= 0 || w <= 0 || h <= 0 {
		return nil, false
	}

	canvas := DrawCanvas(rd, elapsedMs)

	frame := s.pool.Get(w, h)
	draw.Draw(frame, frame.Bounds(), image.Black, image.Point{}, draw.Src)

	target := image.Rect(
		int(math.Round(box.X)), int(math.Round(box.Y)),
		int(math.Round(box.X+box.W)), int(math.Round(box.Y+box.H)),
	)
	draw.ApproxBiLinear.Scale(frame, target, canvas, canvas.Bounds(), draw.Over, nil)

	return frame, true
}

// Release returns a composed frame to the pool
func (s *Snapshot) Release(frame *image.RGBA) {
	s.pool.Put(frame)
}

// DrawCanvas renders the directive as a wireframe on the logical canvas.
// Running effects are drawn as they stand elapsedMs into the step.
func DrawCanvas(rd navigator.RenderDirective, elapsedMs float64) image.Image {
	dc := gg.NewContext(deck.CanvasWidth, deck.CanvasHeight)
	defer dc.Close()

	bg := gg.White
	if c := rd.Current.Slide.BackgroundColor; c != "" {
		bg = gg.Hex(c)
	}
	dc.ClearWithColor(bg)

	if rd.Previous != nil {
		drawSlide(dc, *rd.Previous, previousAlpha, elapsedMs)
	}
	drawSlide(dc, rd.Current, 1, elapsedMs)
	drawProgress(dc, rd.SlideNumber, rd.SlideCount)

	return dc.Image()
}

func drawSlide(dc *gg.Context, view navigator.SlideView, alpha, elapsedMs float64) {
	for _, ed := range view.Elements {
		st := ed.State
		if !st.Visible {
			continue
		}

		g := ed.Element.Geometry
		x, y := g.X+st.Offset.DX, g.Y+st.Offset.DY
		// the trail starts where the element rests, before any motion
		tx, ty := x+g.Width/2, y+g.Height/2

		a := alpha
		if pb := st.Playing; pb != nil {
			a *= pb.OpacityAt(elapsedMs)
			off := pb.OffsetAt(elapsedMs)
			x, y = x+off.DX, y+off.DY
		}
		cx, cy := x+g.Width/2, y+g.Height/2
		col := phaseColors[st.Phase]

		if a > 0 {
			dc.Push()
			if g.Rotation != 0 {
				dc.RotateAbout(g.Rotation*math.Pi/180, cx, cy)
			}
			dc.SetRGBA(col.R, col.G, col.B, 0.25*a)
			dc.DrawRectangle(x, y, g.Width, g.Height)
			_ = dc.FillPreserve()
			dc.SetRGBA(col.R, col.G, col.B, a)
			dc.SetLineWidth(2)
			_ = dc.Stroke()
			dc.Pop()
		}

		if st.Playing != nil {
			drawTrail(dc, *st.Playing, tx, ty, alpha)
		}
	}
}

// drawTrail sketches the path a motion effect is about to travel
func drawTrail(dc *gg.Context, pb animation.Playback, cx, cy, alpha float64) {
	if pb.Target == (animation.Offset{}) {
		return
	}

	col := phaseColors[animation.PhaseActive]
	dc.SetRGBA(col.R, col.G, col.B, alpha)
	dc.SetLineWidth(1.5)
	dc.SetDash(6, 4)
	defer dc.ClearDash()

	path, err := animation.ParsePath(pb.Path)
	if pb.Path == "" || err != nil {
		dc.DrawLine(cx, cy, cx+pb.Target.DX, cy+pb.Target.DY)
		_ = dc.Stroke()
		return
	}

	dc.MoveTo(cx, cy)
	for _, seg := range path.Segments {
		p := seg.Points
		switch seg.Op {
		case animation.OpMove:
			dc.MoveTo(cx+p[0][0], cy+p[0][1])
		case animation.OpLine:
			dc.LineTo(cx+p[0][0], cy+p[0][1])
		case animation.OpQuad:
			dc.QuadraticTo(cx+p[0][0], cy+p[0][1], cx+p[1][0], cy+p[1][1])
		case animation.OpCubic:
			dc.CubicTo(cx+p[0][0], cy+p[0][1], cx+p[1][0], cy+p[1][1], cx+p[2][0], cy+p[2][1])
		case animation.OpClose:
			dc.ClosePath()
		}
	}
	_ = dc.Stroke()
}

// drawProgress draws the slide counter as a bar along the bottom edge
func drawProgress(dc *gg.Context, number, count int) {
	if count <= 0 {
		return
	}
	w := float64(deck.CanvasWidth) * float64(number) / float64(count)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, deck.CanvasHeight-6, w, 6)
	_ = dc.Fill()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
