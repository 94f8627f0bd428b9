package web

import (
	"net/http"
)

func (s *Server) routes() {
	r := s.engine
	r.StaticFS("/static", http.FS(Static()))

	r.GET("/healthz", s.healthz)

	site := r.Group("/")
	site.Use(s.visitorTracking())
	site.GET("/", s.index)
	site.GET("/resume", s.resume)
	site.GET("/privacy", s.privacy)
	site.POST("/contact", s.limiter.Middleware(), s.contactStateless)

	// Live visit event endpoints. The stream itself is not rate limited.
	lv := r.Group("/live/:id", s.withVisit())
	lv.GET("/stream", s.stream)
	events := lv.Group("", s.limiter.Middleware())
	events.POST("/intersect", s.intersect)
	events.POST("/scroll", s.scroll)
	events.POST("/pointer", s.pointer)
	events.POST("/contact", s.contactLive)

	s.adminRoutes()
}
