package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	dashboard, err := handler.dashboard.Build(c.UserContext(), userID, handler.now())
	if err != nil {
		handler.log.Error("dashboard build failed", "user_id", userID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	return c.JSON(dashboard)
}

func (handler *Handler) Risk(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	risk, err := handler.dashboard.Risk(c.UserContext(), userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to analyze logs")
	}
	return c.JSON(risk)
}

func (handler *Handler) Cycle(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	prediction, err := handler.dashboard.Cycle(c.UserContext(), userID, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	return c.JSON(fiber.Map{"prediction": prediction})
}

func (handler *Handler) Streak(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	streak, err := handler.dashboard.Streak(c.UserContext(), userID, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
	}
	return c.JSON(fiber.Map{"streak": streak})
}
