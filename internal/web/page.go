package web

import (
	"context"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/content"
)

// Home page route. Each render mounts a fresh visit; when the hub refuses,
// the page is still served with every section revealed.
func (s *Server) index(c *gin.Context) {
	p := s.content.Current()

	var view pageView
	v, err := s.hub.Mount(p)
	if err != nil {
		log.Printf("Serving page without live updates: %v", err)
		view = staticView(p, s.now())
	} else {
		view = visitView(v, s.now())
	}
	if s.resumeAvailable(p) {
		view.ResumeHref = "/resume"
	}
	view.Sent = c.Query("sent") == "1"

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "index.html", view.withParticles())
}

// Resume download
func (s *Server) resume(c *gin.Context) {
	p := s.content.Current()
	switch {
	case s.cfg.ResumePath != "":
		c.FileAttachment(s.cfg.ResumePath, resumeFilename(p))
	case p.Profile.ResumeURL != "":
		c.Redirect(http.StatusFound, p.Profile.ResumeURL)
	default:
		// The button stays inert until a resume is configured.
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) resumeAvailable(p *content.Portfolio) bool {
	return s.cfg.ResumePath != "" || p.Profile.ResumeURL != ""
}

func resumeFilename(p *content.Portfolio) string {
	name := strings.ReplaceAll(p.Profile.FullName(), " ", "-")
	if name == "" {
		name = "resume"
	}
	return name + "-Resume.pdf"
}

// Privacy policy
func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":     "Privacy Policy",
		"retention": s.cfg.VisitorRetention,
		"name":      s.content.Current().Profile.FullName(),
	})
}

func (s *Server) healthz(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok", "visits": s.hub.Len()}
	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["error"] = err.Error()
		}
	}
	c.JSON(status, body)
}

// Contact form without a live visit: static exports and pages served while
// the hub was full post here.
func (s *Server) contactStateless(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "All fields are required.")
		return
	}

	sub := contact.NewSubmitter(contact.WithDelay(s.cfg.SubmitDelay), contact.WithSinks(s.sinks...))
	if err := sub.Fill(form); err != nil {
		c.String(http.StatusConflict, err.Error())
		return
	}
	// A visitor who navigates away mid-delay still gets their message through.
	if _, err := sub.Submit(context.WithoutCancel(c.Request.Context())); err != nil {
		log.Printf("Contact submission aborted: %v", err)
		return
	}

	if isHTMX(c) {
		view := staticView(s.content.Current(), s.now())
		view.Sent = true
		c.HTML(http.StatusOK, "contact-form", view)
		return
	}
	c.Redirect(http.StatusSeeOther, "/?sent=1#contact")
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// RenderStatic writes the page for p with every section revealed and no
// live wiring. The contact form falls back to contactAction.
func RenderStatic(w io.Writer, p *content.Portfolio, contactAction string) error {
	tmpl, err := parseTemplates()
	if err != nil {
		return errors.Wrap(err, "failed to parse templates")
	}
	view := staticView(p, time.Now())
	if contactAction != "" {
		view.ContactAction = contactAction
	}
	view.ResumeHref = p.Profile.ResumeURL
	return tmpl.ExecuteTemplate(w, "index.html", view.withParticles())
}

// Export writes index.html and the static assets into dir.
func Export(ctx context.Context, dir string, p *content.Portfolio, contactAction string) error {
	if err := os.MkdirAll(filepath.Join(dir, "static"), 0o755); err != nil {
		return errors.Wrap(err, "failed to create export directory")
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return errors.Wrap(err, "failed to create index.html")
	}
	if err := RenderStatic(f, p, contactAction); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to write index.html")
	}

	assets := Static()
	entries, err := fs.ReadDir(assets, ".")
	if err != nil {
		return errors.Wrap(err, "failed to list static assets")
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(assets, e.Name())
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", e.Name())
		}
		if err := os.WriteFile(filepath.Join(dir, "static", e.Name()), data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", e.Name())
		}
	}
	return nil
}
