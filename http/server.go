package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/asof"
	"github.com/fwojciec/asof/chat"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// SessionCookie holds the caller's session ID.
	SessionCookie = "asof_session"

	noticeCookie = "asof_notice"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type exchangeView struct {
	User      string
	Assistant template.HTML
}

type indexView struct {
	Search    bool
	Notice    string
	Exchanges []exchangeView
}

type errorView struct {
	Status  string
	Message string
}

type renderer struct{}

func (renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return templates.ExecuteTemplate(w, name, data)
}

// Server serves the chat web UI.
type Server struct {
	Controller *chat.Controller
	Renderer   asof.Renderer
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger

	echo *echo.Echo
}

// NewServer creates a Server and registers its routes.
func NewServer(controller *chat.Controller, renderer asof.Renderer, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	s := &Server{
		Controller: controller,
		Renderer:   renderer,
		Gatherer:   gatherer,
		Logger:     logger,
	}
	s.echo = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr and serves until Shutdown is called.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer{}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.Logger.Info("http request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"duration", v.Latency,
				"err", v.Error,
			)
			return nil
		},
	}))

	e.GET("/", s.handleIndex)
	e.POST("/ask", s.handleAsk)
	e.POST("/clear", s.handleClear)
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if s.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	}
	return e
}

func (s *Server) handleIndex(c echo.Context) error {
	transcript, err := s.currentTranscript(c)
	if err != nil {
		return err
	}

	view := indexView{
		Search: c.QueryParam("search") == "on",
		Notice: s.takeNotice(c),
	}
	for _, ex := range transcript.Exchanges() {
		html, err := s.Renderer.Render(ex.Assistant.Content)
		if err != nil {
			return err
		}
		view.Exchanges = append(view.Exchanges, exchangeView{
			User:      ex.User.Content,
			Assistant: template.HTML(html), // sanitized by Renderer
		})
	}

	return c.Render(http.StatusOK, "index.html", view)
}

func (s *Server) handleAsk(c echo.Context) error {
	searchEnabled := c.FormValue("search") == "on"
	message := c.FormValue("message")

	target := "/"
	if searchEnabled {
		target = "/?search=on"
	}
	if strings.TrimSpace(message) == "" {
		return c.Redirect(http.StatusSeeOther, target)
	}

	sessionID, err := s.session(c)
	if err != nil {
		return err
	}

	ans, err := s.Controller.Submit(c.Request().Context(), sessionID, message, searchEnabled)
	if err != nil {
		return err
	}
	if ans.Notice != "" {
		c.SetCookie(&http.Cookie{
			Name:     noticeCookie,
			Value:    url.QueryEscape(ans.Notice),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return c.Redirect(http.StatusSeeOther, target)
}

func (s *Server) handleClear(c echo.Context) error {
	sessionID, err := s.session(c)
	if err != nil {
		return err
	}
	if err := s.Controller.Clear(c.Request().Context(), sessionID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// currentTranscript returns the transcript for the session cookie without
// creating a session. A missing or unknown cookie yields an empty transcript.
func (s *Server) currentTranscript(c echo.Context) (asof.Transcript, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	transcript, err := s.Controller.Transcript(c.Request().Context(), cookie.Value)
	if asof.ErrorCode(err) == asof.ENOTFOUND {
		return nil, nil
	}
	return transcript, err
}

// session returns the caller's session ID, starting a new session when the
// cookie is missing or refers to a session that no longer exists.
func (s *Server) session(c echo.Context) (string, error) {
	ctx := c.Request().Context()
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		_, err := s.Controller.Transcript(ctx, cookie.Value)
		if err == nil {
			return cookie.Value, nil
		}
		if asof.ErrorCode(err) != asof.ENOTFOUND {
			return "", err
		}
	}

	session, err := s.Controller.Start(ctx)
	if err != nil {
		return "", err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return session.ID, nil
}

// takeNotice returns the pending one-shot notice and expires its cookie.
func (s *Server) takeNotice(c echo.Context) string {
	cookie, err := c.Cookie(noticeCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:   noticeCookie,
		Path:   "/",
		MaxAge: -1,
	})
	notice, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return notice
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
	} else {
		code = statusCode(asof.ErrorCode(err))
		if code != http.StatusInternalServerError {
			msg = asof.ErrorMessage(err)
		}
	}
	if code >= http.StatusInternalServerError {
		s.Logger.Error("http error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", code,
			"err", err,
		)
	}

	if err := c.Render(code, "error.html", errorView{Status: http.StatusText(code), Message: msg}); err != nil {
		s.Logger.Error("render error page", "err", err)
	}
}

func statusCode(code string) int {
	switch code {
	case asof.EINVALID:
		return http.StatusBadRequest
	case asof.ENOTFOUND:
		return http.StatusNotFound
	case asof.ECONFLICT:
		return http.StatusConflict
	case asof.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
