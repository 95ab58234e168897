package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovira/internal/services"
)

type profilePayload struct {
	DisplayName        *string  `json:"display_name"`
	AgeRange           *string  `json:"age_range"`
	KnownConditions    []string `json:"known_conditions"`
	LastPeriodStart    *string  `json:"last_period_start"`
	AverageCycleLength *int     `json:"average_cycle_length"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.profiles.Get(c.UserContext(), userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.ProfileInput{
		DisplayName:        payload.DisplayName,
		AgeRange:           payload.AgeRange,
		KnownConditions:    payload.KnownConditions,
		AverageCycleLength: payload.AverageCycleLength,
	}
	if payload.LastPeriodStart != nil {
		if strings.TrimSpace(*payload.LastPeriodStart) == "" {
			input.ClearPeriodStart = true
		} else {
			start, err := parseDayParam(*payload.LastPeriodStart, handler.location)
			if err != nil {
				return apiError(c, fiber.StatusBadRequest, "invalid last period start")
			}
			input.LastPeriodStart = &start
		}
	}

	profile, err := handler.profiles.Update(c.UserContext(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProfileInput) {
			return apiError(c, fiber.StatusBadRequest, "invalid profile values")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) DeleteProfileData(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.profiles.DeleteAllData(c.UserContext(), userID); err != nil {
		handler.log.Error("clear data failed", "user_id", userID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to clear data")
	}
	return c.JSON(fiber.Map{"ok": true})
}
