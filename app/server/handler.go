package server

import (
	"errors"

	"github.com/Ram19prakash/Public-Health-Chatbot/app/service/conversation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type departmentRequest struct {
	Department string `json:"department" validate:"required"`
}

type valueRequest struct {
	Value string `json:"value" validate:"required"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required"`
}

type createResponse struct {
	SessionID string            `json:"session_id"`
	View      conversation.View `json:"view"`
}

func (s *Service) createSession(c *fiber.Ctx) error {
	id, controller, err := s.sessionSvc.Create(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(createResponse{
		SessionID: id,
		View:      controller.Snapshot(),
	})
}

func (s *Service) getView(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	return c.JSON(controller.Snapshot())
}

func (s *Service) selectDepartment(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	var req departmentRequest
	if err = s.parse(c, &req); err != nil {
		return err
	}

	return s.respond(c, controller, controller.SelectDepartment(c.Context(), req.Department))
}

func (s *Service) selectOption(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	var req valueRequest
	if err = s.parse(c, &req); err != nil {
		return err
	}

	return s.respond(c, controller, controller.SelectOption(req.Value))
}

func (s *Service) toggleOption(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	var req valueRequest
	if err = s.parse(c, &req); err != nil {
		return err
	}

	return s.respond(c, controller, controller.ToggleOption(req.Value))
}

func (s *Service) advance(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	return s.respond(c, controller, controller.Advance(c.Context()))
}

func (s *Service) rewind(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	return s.respond(c, controller, controller.Rewind())
}

func (s *Service) restart(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	return s.respond(c, controller, controller.Restart(c.Context()))
}

func (s *Service) setLanguage(c *fiber.Ctx) error {
	controller, err := s.controller(c)
	if err != nil {
		return err
	}

	var req languageRequest
	if err = s.parse(c, &req); err != nil {
		return err
	}

	return s.respond(c, controller, controller.SetLanguage(c.Context(), req.Language))
}

func (s *Service) controller(c *fiber.Ctx) (*conversation.Controller, error) {
	controller, found := s.sessionSvc.Get(c.Params("id"))
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return controller, nil
}

func (s *Service) parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return nil
}

// respond maps a controller result to HTTP. Precondition violations are the
// caller's fault (4xx); an assessment-service failure already left a notice
// in the transcript and a consistent state, so the fresh view goes back with
// 200 and the user simply retries.
func (s *Service) respond(c *fiber.Ctx, controller *conversation.Controller, err error) error {
	switch {
	case err == nil:
	case errors.Is(err, conversation.ErrBusy):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, conversation.ErrNoQuestion),
		errors.Is(err, conversation.ErrNoSelection),
		errors.Is(err, conversation.ErrKindMismatch),
		errors.Is(err, conversation.ErrUnknownOption),
		errors.Is(err, conversation.ErrUnknownDepartment),
		errors.Is(err, conversation.ErrUnknownLanguage):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(controller.Snapshot())
}
