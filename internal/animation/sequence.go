package animation

import "github.com/ivlev/deckplay/internal/deck"

// Entry assigns an animated element to a click group.
// ClickIndex 0 is the group played on slide entry.
type Entry struct {
	ElementID  string
	ClickIndex int
	Spec       deck.AnimationSpec
}

// Sequence is the click-group schedule of one slide. It is derived from the
// slide and never mutated after construction.
type Sequence struct {
	Entries     []Entry
	TotalClicks int

	index map[string]int
}

// NewSequence walks the slide elements in array order. ON_CLICK animations
// open a new click group; WITH_PREVIOUS and AFTER_PREVIOUS ride along with the
// most recent group. Elements without an animation are left out.
func NewSequence(slide deck.Slide) Sequence {
	seq := Sequence{index: make(map[string]int)}
	clicks := 0

	for _, el := range slide.Elements {
		if el.Animation == nil {
			continue
		}
		if el.Animation.Trigger == deck.TriggerOnClick {
			clicks++
		}
		seq.index[el.ID] = len(seq.Entries)
		seq.Entries = append(seq.Entries, Entry{
			ElementID:  el.ID,
			ClickIndex: clicks,
			Spec:       *el.Animation,
		})
	}

	seq.TotalClicks = clicks
	return seq
}

// Lookup returns the entry for an element, if it is animated
func (s Sequence) Lookup(id string) (Entry, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.Entries[i], true
}

// Group returns the entries revealed together at the given click index
func (s Sequence) Group(click int) []Entry {
	var group []Entry
	for _, e := range s.Entries {
		if e.ClickIndex == click {
			group = append(group, e)
		}
	}
	return group
}
