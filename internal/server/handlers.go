package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kevinmichaelchen/repo-view/internal/github"
	"github.com/kevinmichaelchen/repo-view/internal/logging"
	"github.com/kevinmichaelchen/repo-view/internal/session"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

type createSessionRequest struct {
	Username string `json:"username"`
}

type sessionResponse struct {
	ID   string       `json:"id"`
	View view.Payload `json:"view"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) ctx(c *fiber.Ctx) context.Context {
	return logging.WithLogger(c.UserContext(), s.log)
}

func (s *Server) createSession(c *fiber.Ctx) error {
	var body createSessionRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{errorBody{"BAD_REQUEST", "invalid body"}})
	}

	ctrl, err := s.loader.Fetch(s.ctx(c), body.Username, s.opts...)
	if err != nil {
		s.log.Error("failed to load session", "user", body.Username, "err", err)
		return writeError(c, err)
	}

	id := s.newID()
	if err := s.store.Put(c.UserContext(), id, ctrl.Snapshot()); err != nil {
		s.log.Error("failed to store session", "id", id, "err", err)
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(sessionResponse{ID: id, View: ctrl.Payload()})
}

func (s *Server) getSession(c *fiber.Ctx) error {
	id := c.Params("id")
	ctrl, err := s.restore(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(sessionResponse{ID: id, View: ctrl.Payload()})
}

// postEvent applies one UI event. Rejected page and size input leaves the
// session unchanged and still answers 200 with the current view.
func (s *Server) postEvent(c *fiber.Ctx) error {
	var ev view.Event
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{errorBody{"BAD_REQUEST", "invalid body"}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Params("id")
	ctrl, err := s.restore(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}

	payload, err := ctrl.Dispatch(ev)
	switch {
	case err == nil:
	case view.IsRejected(err):
		s.log.Debug("event rejected", "id", id, "type", ev.Type, "err", err)
		return c.Status(http.StatusOK).JSON(sessionResponse{ID: id, View: payload})
	default:
		return writeError(c, err)
	}

	if err := s.store.Put(c.UserContext(), id, ctrl.Snapshot()); err != nil {
		s.log.Error("failed to store session", "id", id, "err", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(sessionResponse{ID: id, View: payload})
}

func (s *Server) deleteSession(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) restore(ctx context.Context, id string) (*view.Controller, error) {
	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ctrl := view.NewController(s.opts...)
	if err := ctrl.Restore(*snap); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := "INTERNAL"
	msg := err.Error()

	var upstream *github.UpstreamError
	switch {
	case errors.Is(err, session.ErrEmptyUsername):
		status, code, msg = http.StatusBadRequest, "EMPTY_USERNAME", session.ErrEmptyUsername.Error()
	case errors.Is(err, view.ErrUnknownEvent):
		status, code = http.StatusBadRequest, "UNKNOWN_EVENT"
	case errors.Is(err, session.ErrSessionNotFound):
		status, code, msg = http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, github.ErrNotFound):
		status, code, msg = http.StatusNotFound, "USER_NOT_FOUND", "GitHub user not found"
	case errors.As(err, &upstream):
		status, code, msg = http.StatusBadGateway, "UPSTREAM", upstream.Error()
	}

	return c.Status(status).JSON(errorResponse{errorBody{Code: code, Message: msg}})
}
