// Package live keeps one component tree per page visit on the server. The
// browser forwards viewport and form events to a visit; the visit turns the
// resulting state changes into updates streamed back to the page.
package live

import (
	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

// Kind identifies which part of the page an update re-renders.
type Kind string

const (
	KindReveal  Kind = "reveal"
	KindRole    Kind = "role"
	KindHeader  Kind = "header"
	KindPointer Kind = "pointer"
	KindContact Kind = "contact-state"
)

// Update is a state change to push to the browser.
type Update struct {
	Kind Kind

	// Section is set for KindReveal.
	Section string
	// RoleIndex and Role are set for KindRole.
	RoleIndex int
	Role      string
	// Scrolled is set for KindHeader.
	Scrolled bool
	// Glow is set for KindPointer.
	Glow viewport.Position
	// State is set for KindContact.
	State contact.State
}

// Event is the SSE event name the page listens on.
func (u Update) Event() string {
	if u.Kind == KindReveal {
		return string(KindReveal) + "-" + u.Section
	}
	return string(u.Kind)
}
