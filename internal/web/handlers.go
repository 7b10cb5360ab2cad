package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/controller"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/form"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/render"
)

type pageData struct {
	Input               form.Input
	NichePlaceholder    string
	LocationPlaceholder string
	Loading             bool
	RefreshSeconds      int
	ValidationError     string
	Error               string
	Sections            []render.Section
}

func (s *Server) session(c *gin.Context) *controller.Controller {
	id, _ := c.Cookie(sessionCookie)
	id, ctrl := s.sessions.Get(id)

	maxAge := int(s.opts.SessionTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, maxAge, "/", "", s.opts.SecureCookies, true)
	return ctrl
}

// page builds the view for a snapshot. Inputs shown are those of the last
// submission, or the example defaults before the first one.
func page(snap controller.Snapshot) pageData {
	data := pageData{
		Input:               form.Default(),
		NichePlaceholder:    form.NichePlaceholder,
		LocationPlaceholder: form.LocationPlaceholder,
	}
	if snap.State != controller.StateIdle {
		data.Input = form.Input{Niche: snap.Niche, Location: snap.Location}
	}

	switch snap.State {
	case controller.StateLoading:
		data.Loading = true
		data.RefreshSeconds = defaultRefreshSeconds
	case controller.StateLoaded:
		data.Sections = render.View(snap.Report)
	case controller.StateFailed:
		data.Error = snap.Error
	}
	return data
}

func (s *Server) handleIndex(c *gin.Context) {
	ctrl := s.session(c)
	c.HTML(http.StatusOK, "index.html", page(ctrl.Snapshot()))
}

func (s *Server) handleGenerate(c *gin.Context) {
	ctrl := s.session(c)

	// A body that does not bind leaves the fields empty, which Validate
	// reports like any other missing input.
	var in form.Input
	_ = c.ShouldBind(&in)

	if err := in.Validate(); err != nil {
		data := page(ctrl.Snapshot())
		data.Input = in
		data.ValidationError = err.Error()
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}

	in = in.Normalize()
	if err := ctrl.Start(c.Request.Context(), in.Niche, in.Location); err != nil {
		if errors.Is(err, controller.ErrBusy) {
			c.HTML(http.StatusConflict, "index.html", page(ctrl.Snapshot()))
			return
		}
		c.Error(err)
		c.HTML(http.StatusInternalServerError, "index.html", page(ctrl.Snapshot()))
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleState(c *gin.Context) {
	ctrl := s.session(c)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// handleReport generates a report synchronously for API clients, outside
// any browser session.
func (s *Server) handleReport(c *gin.Context) {
	var in form.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in = in.Normalize()
	report, err := s.gen.Generate(c.Request.Context(), in.Niche, in.Location)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		s.logger.Debug("api report failed", zap.Int("status", status), zap.Error(err))
		c.JSON(status, gin.H{
			"error": generator.UserMessage(err),
			"kind":  generator.KindOf(err).String(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
