package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollTracker_Bidirectional(t *testing.T) {
	tr := NewScrollTracker(0)
	assert.False(t, tr.Scrolled())

	steps := []struct {
		offset   float64
		scrolled bool
		changed  bool
	}{
		{0, false, false},
		{50, false, false},
		{51, true, true},
		{400, true, false},
		{50, false, true},
		{10, false, false},
		{50.5, true, true},
	}
	for _, s := range steps {
		scrolled, changed := tr.Update(s.offset)
		assert.Equal(t, s.scrolled, scrolled, "offset %v", s.offset)
		assert.Equal(t, s.changed, changed, "offset %v", s.offset)
		assert.Equal(t, s.scrolled, tr.Scrolled())
		assert.Equal(t, s.offset, tr.Offset())
	}
}

func TestScrollTracker_CustomThreshold(t *testing.T) {
	tr := NewScrollTracker(200)
	scrolled, _ := tr.Update(150)
	assert.False(t, scrolled)
	scrolled, _ = tr.Update(201)
	assert.True(t, scrolled)
}

func TestPointerTracker_Glow(t *testing.T) {
	var tr PointerTracker
	assert.Equal(t, Position{}, tr.Glow())

	g := tr.Move(Position{X: 640, Y: 355})
	assert.Equal(t, Position{X: 64, Y: 35.5}, g)
	assert.Equal(t, Position{X: 640, Y: 355}, tr.Position())
	assert.Equal(t, g, tr.Glow())
}

func TestIntersections_ReportAndUnsubscribe(t *testing.T) {
	o := NewIntersections()
	var got []Entry
	sub := o.Observe("about", 0.1, func(e Entry) { got = append(got, e) })
	assert.True(t, o.Observed("about"))

	n := o.Report(Entry{Target: "about", Ratio: 0.2, Intersecting: true})
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, o.Report(Entry{Target: "skills", Intersecting: true}))
	assert.Equal(t, 0, o.Report(Entry{Target: "about", Ratio: 0.05, Intersecting: true}))
	assert.Equal(t, 1, o.Report(Entry{Target: "about", Intersecting: true}))
	assert.Equal(t, 1, o.Report(Entry{Target: "about", Ratio: 0}))

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.False(t, o.Observed("about"))
	assert.Equal(t, 0, o.Report(Entry{Target: "about", Intersecting: true}))
	assert.Len(t, got, 3)
}
