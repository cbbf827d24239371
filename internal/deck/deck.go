package deck

import (
	"errors"
	"fmt"
)

// Logical canvas size. Element geometry is always expressed in these units.
const (
	CanvasWidth  = 1280
	CanvasHeight = 720
)

var (
	ErrEmptyDeck   = errors.New("deck has no slides")
	ErrInvalidDeck = errors.New("invalid deck")
)

// TransitionKind selects the compositing effect used when a slide is entered
type TransitionKind string

const (
	TransitionNone  TransitionKind = "NONE"
	TransitionFade  TransitionKind = "FADE"
	TransitionPush  TransitionKind = "PUSH"
	TransitionWipe  TransitionKind = "WIPE"
	TransitionZoom  TransitionKind = "ZOOM"
	TransitionMorph TransitionKind = "MORPH"
)

// Normalize maps unknown kinds to TransitionNone.
func (k TransitionKind) Normalize() TransitionKind {
	switch k {
	case TransitionFade, TransitionPush, TransitionWipe, TransitionZoom, TransitionMorph:
		return k
	default:
		return TransitionNone
	}
}

// AnimationCategory is the kind of per-element animation
type AnimationCategory string

const (
	CategoryEntrance AnimationCategory = "ENTRANCE"
	CategoryEmphasis AnimationCategory = "EMPHASIS"
	CategoryExit     AnimationCategory = "EXIT"
	CategoryMotion   AnimationCategory = "MOTION"
)

// Trigger decides whether an animation opens a new click group
type Trigger string

const (
	TriggerOnClick       Trigger = "ON_CLICK"
	TriggerWithPrevious  Trigger = "WITH_PREVIOUS"
	TriggerAfterPrevious Trigger = "AFTER_PREVIOUS"
)

// AnimationEffect identifies the visual effect played for an element
type AnimationEffect string

const (
	// Entrance
	EffectFadeIn AnimationEffect = "FADE_IN"
	EffectFlyIn  AnimationEffect = "FLY_IN"
	EffectZoomIn AnimationEffect = "ZOOM_IN"
	// Emphasis
	EffectPulse AnimationEffect = "PULSE"
	EffectSpin  AnimationEffect = "SPIN"
	EffectTada  AnimationEffect = "TADA"
	// Exit
	EffectFadeOut AnimationEffect = "FADE_OUT"
	EffectFlyOut  AnimationEffect = "FLY_OUT"
	EffectZoomOut AnimationEffect = "ZOOM_OUT"
	// Motion paths
	EffectMotionLineRight         AnimationEffect = "MOTION_LINE_RIGHT"
	EffectMotionLineDown          AnimationEffect = "MOTION_LINE_DOWN"
	EffectMotionDiagonalDownRight AnimationEffect = "MOTION_DIAGONAL_DOWN_RIGHT"
	EffectMotionCustomPath        AnimationEffect = "MOTION_CUSTOM_PATH"
)

// ElementType is informational; playback treats every element the same way.
type ElementType string

const (
	ElementTitle    ElementType = "TITLE"
	ElementSubtitle ElementType = "SUBTITLE"
	ElementContent  ElementType = "CONTENT"
	ElementImage    ElementType = "IMAGE"
	ElementShape    ElementType = "SHAPE"
	ElementVideo    ElementType = "VIDEO"
	ElementAudio    ElementType = "AUDIO"
	ElementIcon     ElementType = "ICON"
	ElementThreeD   ElementType = "THREED_MODEL"
	ElementTable    ElementType = "TABLE"
	ElementSmartArt ElementType = "SMART_ART"
	ElementChart    ElementType = "CHART"
	ElementGroup    ElementType = "GROUP"
)

// Deck is the ordered list of slides played by a session
type Deck struct {
	Version string  `yaml:"version"`
	Title   string  `yaml:"title,omitempty"`
	Slides  []Slide `yaml:"slides"`
}

// Slide holds elements in z-order; the same order drives animation sequencing
type Slide struct {
	ID              string          `yaml:"id"`
	Elements        []Element       `yaml:"elements"`
	Transition      *TransitionSpec `yaml:"transition,omitempty"`
	Notes           string          `yaml:"notes,omitempty"`
	BackgroundColor string          `yaml:"backgroundColor,omitempty"`
}

// Element is a visual element with at most one animation
type Element struct {
	ID        string         `yaml:"id"`
	Type      ElementType    `yaml:"type,omitempty"`
	Geometry  Geometry       `yaml:"geometry"`
	Animation *AnimationSpec `yaml:"animation,omitempty"`
}

// Geometry is a box on the logical canvas
type Geometry struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Rotation float64 `yaml:"rotation,omitempty"` // degrees
}

type AnimationSpec struct {
	Category   AnimationCategory `yaml:"category"`
	Effect     AnimationEffect   `yaml:"effect"`
	Trigger    Trigger           `yaml:"trigger"`
	DurationMs int               `yaml:"durationMs"`
	DelayMs    int               `yaml:"delayMs,omitempty"`
	Path       string            `yaml:"path,omitempty"` // SVG path data, MOTION_CUSTOM_PATH only
}

type TransitionSpec struct {
	Kind       TransitionKind `yaml:"kind"`
	DurationMs int            `yaml:"durationMs"`
}

// Len returns the number of slides
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Slides)
}

// TransitionInto returns the normalized transition configured on slide i.
// Absent, unknown or zero-length transitions are reported as TransitionNone.
func (d *Deck) TransitionInto(i int) TransitionSpec {
	if i < 0 || i >= d.Len() {
		return TransitionSpec{Kind: TransitionNone}
	}
	t := d.Slides[i].Transition
	if t == nil {
		return TransitionSpec{Kind: TransitionNone}
	}
	kind := t.Kind.Normalize()
	if kind == TransitionNone || t.DurationMs <= 0 {
		return TransitionSpec{Kind: TransitionNone}
	}
	return TransitionSpec{Kind: kind, DurationMs: t.DurationMs}
}

// Validate checks the constraints playback relies on.
func (d *Deck) Validate() error {
	if d.Len() == 0 {
		return ErrEmptyDeck
	}

	for si, s := range d.Slides {
		seen := make(map[string]bool, len(s.Elements))
		for ei, el := range s.Elements {
			if el.ID == "" {
				return fmt.Errorf("%w: slide %d element %d has no id", ErrInvalidDeck, si+1, ei)
			}
			if seen[el.ID] {
				return fmt.Errorf("%w: slide %d has duplicate element id %q", ErrInvalidDeck, si+1, el.ID)
			}
			seen[el.ID] = true

			if a := el.Animation; a != nil {
				if a.DurationMs < 0 || a.DelayMs < 0 {
					return fmt.Errorf("%w: element %q has negative timing", ErrInvalidDeck, el.ID)
				}
			}
		}
		if t := s.Transition; t != nil && t.DurationMs < 0 {
			return fmt.Errorf("%w: slide %d has negative transition duration", ErrInvalidDeck, si+1)
		}
	}

	return nil
}
