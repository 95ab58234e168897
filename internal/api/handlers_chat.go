package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovira/internal/services"
)

type chatPayload struct {
	Message string `json:"message"`
}

func (handler *Handler) Chat(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	allowed, err := handler.chatLimiter.Allow(c.UserContext(), chatLimiterKey(c, userID), handler.now(), handler.chatRateLimit, handler.chatRateWindow)
	if err != nil {
		handler.log.Warn("chat limiter unavailable", "error", err)
		return apiError(c, fiber.StatusServiceUnavailable, "rate limiter unavailable")
	}
	if !allowed {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}

	payload := chatPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	reply, err := handler.chat.Reply(c.UserContext(), userID, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyChatMessage):
			return apiError(c, fiber.StatusBadRequest, "message is required")
		case errors.Is(err, services.ErrAssistantUnavailable):
			handler.log.Warn("assistant request failed", "user_id", userID, "error", err)
			return c.JSON(services.ChatReply{Response: services.ChatFallbackResponse(payload.Message), Fallback: true})
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to answer")
		}
	}
	return c.JSON(reply)
}
