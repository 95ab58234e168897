package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dayLayout = "2006-01-02"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(contextUserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayLayout, strings.TrimSpace(raw), location)
}

func parseLimitQuery(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 || value > maxLogsLimit {
		return 0, false
	}
	return value, true
}

func sendPDF(c *fiber.Ctx, filename string, document []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(document)
}
