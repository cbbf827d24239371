package animation

import (
	"testing"

	"github.com/ivlev/deckplay/internal/deck"
)

func anim(cat deck.AnimationCategory, eff deck.AnimationEffect, trig deck.Trigger) *deck.AnimationSpec {
	return &deck.AnimationSpec{Category: cat, Effect: eff, Trigger: trig, DurationMs: 500}
}

func TestNewSequence(t *testing.T) {
	slide := deck.Slide{
		ID: "s1",
		Elements: []deck.Element{
			{ID: "bg"},
			{ID: "intro", Animation: anim(deck.CategoryEntrance, deck.EffectFadeIn, deck.TriggerWithPrevious)},
			{ID: "a", Animation: anim(deck.CategoryEntrance, deck.EffectFlyIn, deck.TriggerOnClick)},
			{ID: "a2", Animation: anim(deck.CategoryEmphasis, deck.EffectPulse, deck.TriggerWithPrevious)},
			{ID: "b", Animation: anim(deck.CategoryExit, deck.EffectFadeOut, deck.TriggerOnClick)},
			{ID: "b2", Animation: anim(deck.CategoryMotion, deck.EffectMotionLineDown, deck.TriggerAfterPrevious)},
			{ID: "caption"},
		},
	}

	seq := NewSequence(slide)

	if seq.TotalClicks != 2 {
		t.Fatalf("expected 2 clicks, got %d", seq.TotalClicks)
	}
	if len(seq.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(seq.Entries))
	}

	want := map[string]int{"intro": 0, "a": 1, "a2": 1, "b": 2, "b2": 2}
	for id, click := range want {
		e, ok := seq.Lookup(id)
		if !ok {
			t.Errorf("%s missing from sequence", id)
			continue
		}
		if e.ClickIndex != click {
			t.Errorf("%s: expected click %d, got %d", id, click, e.ClickIndex)
		}
	}

	if _, ok := seq.Lookup("bg"); ok {
		t.Error("unanimated element should not be sequenced")
	}

	if g := seq.Group(1); len(g) != 2 || g[0].ElementID != "a" || g[1].ElementID != "a2" {
		t.Errorf("unexpected group 1: %+v", g)
	}
}

func TestSequenceProperties(t *testing.T) {
	triggers := []deck.Trigger{deck.TriggerOnClick, deck.TriggerWithPrevious, deck.TriggerAfterPrevious}

	// deterministic pseudo-random slides
	seed := uint32(7)
	next := func() uint32 {
		seed = seed*1664525 + 1013904223
		return seed >> 16
	}

	for n := 0; n < 50; n++ {
		var slide deck.Slide
		onClick := 0
		count := int(next() % 12)
		for i := 0; i < count; i++ {
			el := deck.Element{ID: string(rune('a' + i))}
			if next()%4 != 0 {
				trig := triggers[next()%3]
				if trig == deck.TriggerOnClick {
					onClick++
				}
				el.Animation = anim(deck.CategoryEntrance, deck.EffectFadeIn, trig)
			}
			slide.Elements = append(slide.Elements, el)
		}

		seq := NewSequence(slide)
		if seq.TotalClicks != onClick {
			t.Errorf("case %d: totalClicks %d, want %d", n, seq.TotalClicks, onClick)
		}
		for i := 1; i < len(seq.Entries); i++ {
			if seq.Entries[i].ClickIndex < seq.Entries[i-1].ClickIndex {
				t.Errorf("case %d: click indices decrease at entry %d", n, i)
			}
		}
	}
}

func TestNewSequenceEmpty(t *testing.T) {
	seq := NewSequence(deck.Slide{Elements: []deck.Element{{ID: "x"}}})
	if seq.TotalClicks != 0 || len(seq.Entries) != 0 {
		t.Errorf("expected empty sequence, got %+v", seq)
	}
	if g := seq.Group(0); g != nil {
		t.Errorf("expected no group, got %+v", g)
	}
}
