package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovira/internal/models"
	"github.com/terraincognita07/ovira/internal/services"
)

const (
	maxLogsLimit       = 365
	defaultEnergyLevel = 5
)

type symptomLogPayload struct {
	Date        string   `json:"date"`
	FlowLevel   string   `json:"flow_level"`
	PainScale   *int     `json:"pain_scale"`
	Mood        string   `json:"mood"`
	EnergyLevel *int     `json:"energy_level"`
	SleepHours  *float64 `json:"sleep_hours"`
	Notes       string   `json:"notes"`
	PeriodStart bool     `json:"period_start"`
}

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	rawFrom, rawTo := c.Query("from"), c.Query("to")
	if rawFrom != "" || rawTo != "" {
		from, err := parseDayParam(rawFrom, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid from date")
		}
		to, err := parseDayParam(rawTo, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid to date")
		}
		if to.Before(from) {
			return apiError(c, fiber.StatusBadRequest, "invalid date range")
		}
		logs, err := handler.logs.Range(c.UserContext(), userID, from, to)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
		}
		return c.JSON(logs)
	}

	limit, ok := parseLimitQuery(c.Query("limit"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}
	logs, err := handler.logs.Recent(c.UserContext(), userID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) CreateLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, err := handler.parseLogPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := handler.logs.Create(c.UserContext(), userID, input)
	if err != nil && !handler.periodSyncOnly(userID, err) {
		return handler.logWriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.logs.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrLogNotFound) {
			return apiError(c, fiber.StatusNotFound, "log not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load log")
	}
	return c.JSON(entry)
}

func (handler *Handler) UpdateLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, err := handler.parseLogPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := handler.logs.Update(c.UserContext(), userID, c.Params("id"), input)
	if err != nil && !handler.periodSyncOnly(userID, err) {
		return handler.logWriteError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.logs.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrLogNotFound) {
			return apiError(c, fiber.StatusNotFound, "log not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete log")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) parseLogPayload(c *fiber.Ctx) (services.SymptomLogInput, error) {
	payload := symptomLogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return services.SymptomLogInput{}, errors.New("invalid payload")
	}

	input := services.SymptomLogInput{
		FlowLevel:   models.FlowLevel(payload.FlowLevel),
		Mood:        models.Mood(payload.Mood),
		EnergyLevel: defaultEnergyLevel,
		Notes:       payload.Notes,
		PeriodStart: payload.PeriodStart,
	}
	if payload.Date == "" {
		input.Date = services.DateAtLocation(handler.now(), handler.location)
	} else {
		day, err := parseDayParam(payload.Date, handler.location)
		if err != nil {
			return services.SymptomLogInput{}, errors.New("invalid date")
		}
		input.Date = day
	}
	if payload.PainScale != nil {
		input.PainScale = *payload.PainScale
	}
	if payload.EnergyLevel != nil {
		input.EnergyLevel = *payload.EnergyLevel
	}
	if payload.SleepHours != nil {
		input.SleepHours = *payload.SleepHours
	}
	return input, nil
}

func (handler *Handler) logWriteError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidLogInput):
		return apiError(c, fiber.StatusBadRequest, "invalid log values")
	case errors.Is(err, services.ErrLogNotFound):
		return apiError(c, fiber.StatusNotFound, "log not found")
	default:
		handler.log.Error("symptom log write failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save log")
	}
}

// periodSyncOnly logs and swallows errors where the log was saved and only the profile sync failed.
func (handler *Handler) periodSyncOnly(userID string, err error) bool {
	if !errors.Is(err, services.ErrPeriodSyncFailed) {
		return false
	}
	handler.log.Warn("period start sync failed", "user_id", userID, "error", err)
	return true
}
