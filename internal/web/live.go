package web

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/live"
	"github.com/anuptiwari/portfolio/internal/viewport"
)

const visitKey = "visit"

type intersectRequest struct {
	Target       string  `form:"target" binding:"required"`
	Ratio        float64 `form:"ratio"`
	Intersecting bool    `form:"intersecting"`
}

type scrollRequest struct {
	Offset float64 `form:"offset"`
}

// withVisit resolves the :id parameter to a mounted visit.
func (s *Server) withVisit() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := s.hub.Get(c.Param("id"))
		if !ok {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Set(visitKey, v)
		c.Next()
	}
}

func visitFrom(c *gin.Context) *live.Visit {
	return c.MustGet(visitKey).(*live.Visit)
}

// eventStatus maps a visit error to a response code.
func eventStatus(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, live.ErrUnmounted):
		c.Status(http.StatusGone)
	default:
		c.Status(http.StatusBadRequest)
	}
}

// Server-sent event stream for one visit. Closing it unmounts the visit.
func (s *Server) stream(c *gin.Context) {
	v := visitFrom(c)
	if !v.Attach() {
		c.AbortWithStatus(http.StatusConflict)
		return
	}
	defer s.hub.Unmount(v.ID)

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	c.SSEvent("ping", "connected")
	c.Writer.Flush()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-v.Done():
			return false
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		case u := <-v.Updates():
			frag, err := s.renderUpdate(v, u)
			if err != nil {
				log.Printf("Error rendering %s update: %v", u.Event(), err)
				return true
			}
			c.SSEvent(u.Event(), frag)
			return true
		}
	})
}

// renderUpdate renders the fragment replacing the element an update
// concerns. The fragment reflects the visit's state at render time, which
// is never older than the update.
func (s *Server) renderUpdate(v *live.Visit, u live.Update) (string, error) {
	var name string
	switch u.Kind {
	case live.KindReveal:
		name = "section-" + u.Section
	case live.KindRole:
		name = "role"
	case live.KindHeader:
		name = "header-backdrop"
	case live.KindPointer:
		name = "glow"
	case live.KindContact:
		name = "contact-submit"
	default:
		return "", errors.Errorf("unknown update kind %q", u.Kind)
	}
	return renderFragment(s.templates, name, visitView(v, s.now()))
}

// Section intersection report
func (s *Server) intersect(c *gin.Context) {
	var req intersectRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	_, err := visitFrom(c).Intersect(viewport.Entry{
		Target:       req.Target,
		Ratio:        req.Ratio,
		Intersecting: req.Intersecting,
	})
	eventStatus(c, err)
}

// Window scroll report
func (s *Server) scroll(c *gin.Context) {
	var req scrollRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	eventStatus(c, visitFrom(c).Scroll(req.Offset))
}

// Pointer position report
func (s *Server) pointer(c *gin.Context) {
	var pos viewport.Position
	if err := c.ShouldBind(&pos); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	eventStatus(c, visitFrom(c).Pointer(pos))
}

// Contact form submission for a live visit. The submit button's state is
// pushed over the stream while this request waits out the delay.
func (s *Server) contactLive(c *gin.Context) {
	v := visitFrom(c)
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "All fields are required.")
		return
	}

	_, err := v.Contact(c.Request.Context(), form)
	switch {
	case errors.Is(err, contact.ErrBusy):
		c.String(http.StatusConflict, "A message is already being sent.")
		return
	case errors.Is(err, live.ErrUnmounted):
		c.Status(http.StatusGone)
		return
	case err != nil:
		log.Printf("Contact submission aborted: %v", err)
		c.Status(http.StatusGone)
		return
	}

	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/?sent=1#contact")
		return
	}
	view := visitView(v, s.now())
	view.Sent = true
	c.HTML(http.StatusOK, "contact-form", view)
}
