package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.AuthRequired)

	api.Get("/logs", handler.ListLogs)
	api.Post("/logs", handler.CreateLog)
	api.Get("/logs/:id", handler.GetLog)
	api.Put("/logs/:id", handler.UpdateLog)
	api.Delete("/logs/:id", handler.DeleteLog)

	api.Get("/dashboard", handler.Dashboard)
	api.Get("/risk", handler.Risk)
	api.Get("/cycle", handler.Cycle)
	api.Get("/streak", handler.Streak)

	api.Post("/reports", handler.GenerateReport)
	api.Get("/reports", handler.ListReports)
	api.Get("/reports/:id", handler.GetReport)
	api.Get("/reports/:id/pdf", handler.ReportPDF)

	api.Get("/profile", handler.GetProfile)
	api.Put("/profile", handler.UpdateProfile)
	api.Delete("/profile/data", handler.DeleteProfileData)

	api.Post("/chat", handler.Chat)

	app.Use(handler.NotFound)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
