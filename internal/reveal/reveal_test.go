package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anuptiwari/portfolio/internal/lifecycle"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

func TestLatch_Monotonic(t *testing.T) {
	var l Latch
	assert.False(t, l.Revealed())
	assert.True(t, l.Trip())
	assert.True(t, l.Revealed())
	assert.False(t, l.Trip())
	assert.True(t, l.Revealed())
}

func TestSection_RevealsOnceOnFirstIntersection(t *testing.T) {
	scope := lifecycle.NewScope()
	obs := viewport.NewIntersections()
	var fired []string
	s := Mount(scope, obs, "about", func(id string) { fired = append(fired, id) })

	assert.False(t, s.Revealed())
	obs.Report(viewport.Entry{Target: "about", Ratio: 0})
	assert.False(t, s.Revealed())

	obs.Report(viewport.Entry{Target: "about", Ratio: 0.3, Intersecting: true})
	assert.True(t, s.Revealed())

	// Leaving and re-entering the viewport never resets or re-fires.
	obs.Report(viewport.Entry{Target: "about", Ratio: 0})
	assert.True(t, s.Revealed())
	obs.Report(viewport.Entry{Target: "about", Ratio: 1, Intersecting: true})

	assert.Equal(t, []string{"about"}, fired)
}

func TestSection_BelowThresholdDoesNotReveal(t *testing.T) {
	scope := lifecycle.NewScope()
	obs := viewport.NewIntersections()
	s := Mount(scope, obs, "skills", nil)

	obs.Report(viewport.Entry{Target: "skills", Ratio: 0.05, Intersecting: true})
	assert.False(t, s.Revealed())
	obs.Report(viewport.Entry{Target: "skills", Ratio: 0.1, Intersecting: true})
	assert.True(t, s.Revealed())
}

func TestSection_UnmountDetachesObserver(t *testing.T) {
	scope := lifecycle.NewScope()
	obs := viewport.NewIntersections()
	fired := 0
	s := Mount(scope, obs, "contact", func(string) { fired++ })
	assert.True(t, obs.Observed("contact"))

	scope.Close()
	assert.False(t, obs.Observed("contact"))

	obs.Report(viewport.Entry{Target: "contact", Ratio: 1, Intersecting: true})
	assert.False(t, s.Revealed())
	assert.Zero(t, fired)
}

func TestSection_NilObserverNeverReveals(t *testing.T) {
	scope := lifecycle.NewScope()
	s := Mount(scope, nil, "projects", func(string) { t.Fatal("unexpected reveal") })
	assert.False(t, s.Revealed())
	assert.NotPanics(t, func() {
		s.Unmount()
		scope.Close()
	})
	assert.False(t, s.Revealed())
}

func TestTransition_Classes(t *testing.T) {
	assert.Equal(t, "opacity-0 translate-y-10", FadeUp.Classes(false))
	assert.Equal(t, "opacity-100 translate-y-0", FadeUp.Classes(true))
	assert.Equal(t, "opacity-0 -translate-x-10", FromLeft.Classes(false))
	assert.Equal(t, "opacity-0 translate-x-10", FromRight.Classes(false))
}

func TestBarWidth(t *testing.T) {
	for _, level := range []int{95, 98, 85, 80, 0, 100} {
		assert.Equal(t, "0%", BarWidth(level, false))
	}
	assert.Equal(t, "95%", BarWidth(95, true))
	assert.Equal(t, "98%", BarWidth(98, true))
	assert.Equal(t, "85%", BarWidth(85, true))
	assert.Equal(t, "80%", BarWidth(80, true))
}
