package handler

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tripmate/internal/domain"
	"tripmate/internal/middleware"
	"tripmate/internal/service/notification"
	"tripmate/internal/service/trip"
)

type TripHandler struct {
	tripService trip.Service
}

func NewTripHandler(tripService trip.Service) *TripHandler {
	return &TripHandler{tripService: tripService}
}

func tripError(err error) error {
	switch {
	case errors.Is(err, trip.ErrTripNotFound):
		return middleware.NotFound("Trip not found")
	case errors.Is(err, trip.ErrNotMember):
		return middleware.Forbidden("You are not a member of this trip")
	case errors.Is(err, trip.ErrNotAdmin):
		return middleware.Forbidden("Only trip admins can manage invites")
	case errors.Is(err, trip.ErrInviteExpired):
		return middleware.Gone("Invite code has expired")
	case errors.Is(err, trip.ErrInvalidExpiration):
		return middleware.BadRequest(trip.ErrInvalidExpiration.Error())
	case errors.Is(err, notification.ErrInvalidNotificationType):
		return middleware.BadRequest("Invalid notification type")
	}
	return err
}

func tripID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid trip ID")
	}
	return id, nil
}

func (h *TripHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := tripID(c)
	if err != nil {
		return err
	}

	result, err := h.tripService.Get(c.Context(), id, userID)
	if err != nil {
		return tripError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TripHandler) UpdateInviteExpiration(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := tripID(c)
	if err != nil {
		return err
	}

	var input domain.InviteExpirationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	expiresAt, err := h.tripService.UpdateInviteExpiration(c.Context(), id, userID, input.ExpirationMinutes)
	if err != nil {
		return tripError(err)
	}

	return c.Status(fiber.StatusOK).JSON(domain.InviteExpirationResponse{ExpiresAt: expiresAt})
}

func (h *TripHandler) RegenerateInvite(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := tripID(c)
	if err != nil {
		return err
	}

	var input domain.InviteExpirationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.tripService.RegenerateInvite(c.Context(), id, userID, input.ExpirationMinutes)
	if err != nil {
		return tripError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TripHandler) Join(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.JoinTripInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(input.InviteCode) == "" {
		return middleware.BadRequest("Invite code is required")
	}
	if input.UserName == "" {
		input.UserName = middleware.GetCurrentUserName(c)
	}

	result, err := h.tripService.JoinByCode(c.Context(), userID, input)
	if err != nil {
		return tripError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TripHandler) SendInviteEmail(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := tripID(c)
	if err != nil {
		return err
	}

	var input domain.InviteEmailInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return middleware.BadRequest("Invalid email address")
	}

	if err := h.tripService.SendInviteEmail(c.Context(), id, userID, input.Email); err != nil {
		return tripError(err)
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *TripHandler) Activity(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := tripID(c)
	if err != nil {
		return err
	}

	var input domain.ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.UserName == "" {
		input.UserName = middleware.GetCurrentUserName(c)
	}

	if err := h.tripService.Activity(c.Context(), id, userID, input); err != nil {
		return tripError(err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "queued"})
}
