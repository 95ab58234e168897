package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovira/internal/render"
	"github.com/terraincognita07/ovira/internal/services"
)

func (handler *Handler) GenerateReport(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	generated, err := handler.reports.Generate(c.UserContext(), userID, handler.now())
	if err != nil {
		if errors.Is(err, services.ErrNoLogsToReport) {
			return apiError(c, fiber.StatusUnprocessableEntity, "no logs to report")
		}
		handler.log.Error("report generation failed", "user_id", userID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to generate report")
	}

	if strings.EqualFold(strings.TrimSpace(c.Query("format")), "pdf") {
		document, err := handler.reports.Render(generated)
		if err != nil {
			handler.log.Error("report render failed", "user_id", userID, "error", err)
			return apiError(c, fiber.StatusInternalServerError, "failed to render report")
		}
		return sendPDF(c, render.ReportFilename(generated.Report.GeneratedAt), document)
	}
	return c.Status(fiber.StatusCreated).JSON(generated.Report)
}

func (handler *Handler) ListReports(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	reports, err := handler.reports.List(c.UserContext(), userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load reports")
	}
	return c.JSON(reports)
}

func (handler *Handler) GetReport(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	report, err := handler.reports.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return apiError(c, fiber.StatusNotFound, "report not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load report")
	}
	return c.JSON(report)
}

func (handler *Handler) ReportPDF(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	report, document, err := handler.reports.Document(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return apiError(c, fiber.StatusNotFound, "report not found")
		}
		handler.log.Error("report render failed", "user_id", userID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to render report")
	}
	return sendPDF(c, render.ReportFilename(report.GeneratedAt), document)
}
