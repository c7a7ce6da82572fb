// Package devserver is a small in-process backend serving the notes and
// action-items API, for local development and end-to-end tests.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/notes/internal/model"
)

// Server wraps the echo instance and its store.
type Server struct {
	e     *echo.Echo
	store *Store
	log   *log.Logger
}

// New builds a Server with every route registered.
func New(store *Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	s := &Server{e: e, store: store, log: logger}
	s.register()
	return s
}

func (s *Server) register() {
	s.e.GET("/notes/", s.listNotes)
	s.e.POST("/notes/", s.createNote)
	s.e.GET("/notes/search/", s.searchNotes)
	s.e.GET("/notes/:id", s.getNote)

	s.e.GET("/action-items/", s.listActionItems)
	s.e.POST("/action-items/", s.createActionItem)
	s.e.PUT("/action-items/:id/complete", s.completeActionItem)
	s.e.GET("/action-items/:id", s.getActionItem)
	s.e.DELETE("/action-items/:id", s.deleteActionItem)

	s.e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.e }

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.log.WithField("addr", addr).Info("dev backend listening")
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			req, res := c.Request(), c.Response()
			logger.WithFields(log.Fields{
				"method":     req.Method,
				"uri":        req.RequestURI,
				"status":     res.Status,
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"duration":   time.Since(start).String(),
			}).Info("request")
			return nil
		}
	}
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

// ---- notes ----

func (s *Server) listNotes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListNotes())
}

func (s *Server) searchNotes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.SearchNotes(c.QueryParam("q")))
}

func (s *Server) getNote(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "id must be an integer")
	}
	n, err := s.store.GetNote(id)
	if errors.Is(err, ErrNotFound) {
		return detail(c, http.StatusNotFound, "Note not found")
	}
	return c.JSON(http.StatusOK, n)
}

func (s *Server) createNote(c echo.Context) error {
	var in model.NoteCreate
	if err := c.Bind(&in); err != nil {
		return detail(c, http.StatusBadRequest, "invalid JSON body")
	}
	var err error
	if in.Title, err = cleanField("title", in.Title, maxTitleLen); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	if in.Content, err = cleanField("content", in.Content, maxContentLen); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	n, err := s.store.CreateNote(in)
	if err != nil {
		s.log.WithError(err).Error("persist note")
		return detail(c, http.StatusInternalServerError, "Failed to create note")
	}
	return c.JSON(http.StatusCreated, n)
}

// ---- action items ----

func (s *Server) listActionItems(c echo.Context) error {
	var completed *bool
	if v := c.QueryParam("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return detail(c, http.StatusUnprocessableEntity, "completed must be a boolean")
		}
		completed = &b
	}
	return c.JSON(http.StatusOK, s.store.ListActionItems(completed))
}

func (s *Server) getActionItem(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "id must be an integer")
	}
	a, err := s.store.GetActionItem(id)
	if errors.Is(err, ErrNotFound) {
		return detail(c, http.StatusNotFound, "Action item not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) createActionItem(c echo.Context) error {
	var in model.ActionItemCreate
	if err := c.Bind(&in); err != nil {
		return detail(c, http.StatusBadRequest, "invalid JSON body")
	}
	var err error
	if in.Description, err = cleanField("description", in.Description, maxDescriptionLen); err != nil {
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	}
	a, err := s.store.CreateActionItem(in)
	if err != nil {
		s.log.WithError(err).Error("persist action item")
		return detail(c, http.StatusInternalServerError, "Failed to create action item")
	}
	return c.JSON(http.StatusCreated, a)
}

func (s *Server) completeActionItem(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "id must be an integer")
	}
	a, err := s.store.CompleteActionItem(id)
	switch {
	case errors.Is(err, ErrNotFound):
		return detail(c, http.StatusNotFound, "Action item not found")
	case err != nil:
		s.log.WithError(err).Error("persist action item")
		return detail(c, http.StatusInternalServerError, "Failed to update action item")
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) deleteActionItem(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "id must be an integer")
	}
	err := s.store.DeleteActionItem(id)
	switch {
	case errors.Is(err, ErrNotFound):
		return detail(c, http.StatusNotFound, "Action item not found")
	case err != nil:
		s.log.WithError(err).Error("persist action item")
		return detail(c, http.StatusInternalServerError, "Failed to delete action item")
	}
	return c.NoContent(http.StatusNoContent)
}
