package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/weather-bot/internal/weather"
)

var validate = validator.New()

// Reporter produces a weather report for a free-text location.
type Reporter interface {
	Report(ctx context.Context, query string) (weather.Report, error)
}

// NewApp builds the Fiber app with middleware, health check and API routes.
func NewApp(service Reporter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-bot",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-bot",
		})
	})

	RegisterRoutes(app, service)
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Reporter) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/report", func(c *fiber.Ctx) error {
		q, err := parseReportQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Report(c.UserContext(), q.City)
		if err != nil {
			return reportError(err)
		}

		return c.JSON(reportResponse{
			City:    q.City,
			Entries: report,
			Text:    report.Render(),
		})
	})
}

type reportResponse struct {
	City    string         `json:"city"`
	Entries weather.Report `json:"entries"`
	Text    string         `json:"text"`
}

// reportQuery holds query parameters for the report endpoint.
type reportQuery struct {
	City string `validate:"required"`
}

func parseReportQuery(c *fiber.Ctx) (reportQuery, error) {
	// Fiber reuses the request buffer; the city outlives the handler in logs.
	q := reportQuery{City: utils.CopyString(c.Query("city"))}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func reportError(err error) error {
	switch {
	case errors.Is(err, weather.ErrTransport):
		return fiber.NewError(fiber.StatusBadGateway, "weather provider unreachable")
	case errors.Is(err, weather.ErrWrongEndpoint):
		return fiber.NewError(fiber.StatusBadGateway, "weather provider rejected the request")
	case errors.Is(err, weather.ErrDecode),
		errors.Is(err, weather.ErrMissingKey),
		errors.Is(err, weather.ErrInvalidValue):
		return fiber.NewError(fiber.StatusBadGateway, "unexpected weather provider response")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build weather report")
	}
}
