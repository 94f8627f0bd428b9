package web

import (
	"html/template"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/content"
	"github.com/anuptiwari/portfolio/internal/live"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

const particleCount = 50

// particle is one twinkling dot in the hero background.
type particle struct {
	Left, Top       float64
	Delay, Duration float64
}

// pageView is everything the page templates read. It is a snapshot: the
// visit keeps changing after the view is built.
type pageView struct {
	P       *content.Portfolio
	VisitID string
	Live    bool

	Revealed  map[string]bool
	RoleIndex int
	Role      string
	Scrolled  bool
	Glow      viewport.Position
	Form      contact.Form
	State     contact.State
	Sent      bool

	// ContactAction is the form action used without JavaScript. Live pages
	// submit over htmx to the visit instead.
	ContactAction string
	// ResumeHref is empty when no resume is configured.
	ResumeHref    string

	Summary            template.HTML
	ProjectDescription template.HTML
	Particles          []particle
	Year               int
}

// sentinel drives the invisible element that reports a section's first
// intersection.
type sentinel struct {
	Section string
	Path    string
	Active  bool
}

func newView(p *content.Portfolio, now time.Time) pageView {
	i, role := 0, ""
	if len(p.Profile.Roles) > 0 {
		role = p.Profile.Roles[0]
	}
	return pageView{
		P:                  p,
		Revealed:           make(map[string]bool, len(live.Sections)),
		RoleIndex:          i,
		Role:               role,
		ContactAction:      "/contact",
		Summary:            markdown(p.Profile.Summary),
		ProjectDescription: markdown(p.Project.Description),
		Year:               now.Year(),
	}
}

// staticView renders the page without a live visit (hub full, static
// export). Nothing could ever report an intersection, so every section is
// shown revealed. This departs from the hidden-until-observed rule the live
// page follows, where a section without an observer stays hidden; served
// without a visit that rule would leave the page blank.
func staticView(p *content.Portfolio, now time.Time) pageView {
	v := newView(p, now)
	for _, s := range live.Sections {
		v.Revealed[s] = true
	}
	return v
}

func visitView(v *live.Visit, now time.Time) pageView {
	view := newView(v.Content, now)
	view.VisitID = v.ID
	view.Live = true
	for _, s := range live.Sections {
		view.Revealed[s] = v.Revealed(s)
	}
	view.RoleIndex, view.Role = v.Role()
	view.Scrolled = v.Scrolled()
	view.Glow = v.Glow()
	view.Form = v.Form()
	view.State = v.ContactState()
	return view
}

func (v pageView) withParticles() pageView {
	v.Particles = make([]particle, particleCount)
	for i := range v.Particles {
		v.Particles[i] = particle{
			Left:     rand.Float64() * 100,
			Top:      rand.Float64() * 100,
			Delay:    rand.Float64() * 5,
			Duration: 2 + rand.Float64()*3,
		}
	}
	return v
}

// Is reports whether section has revealed.
func (v pageView) Is(section string) bool {
	return v.Revealed[section]
}

// Submitting reports whether the contact form is mid-submission.
func (v pageView) Submitting() bool {
	return v.State == contact.Submitting
}

// LivePath is the URL of one of the visit's event endpoints.
func (v pageView) LivePath(name string) string {
	return "/live/" + v.VisitID + "/" + name
}

// Sentinel returns the intersection reporter for section. It is inactive
// once the section has revealed or when the page is not live.
func (v pageView) Sentinel(section string) sentinel {
	return sentinel{
		Section: section,
		Path:    v.LivePath("intersect"),
		Active:  v.Live && !v.Revealed[section],
	}
}

func markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	out, err := content.Markdown(src)
	if err != nil {
		log.Printf("Error rendering markdown: %v", err)
		return template.HTML(template.HTMLEscapeString(src)) //nolint:gosec // escaped above
	}
	return out
}
