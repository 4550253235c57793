package httpx

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"creme-menu/internal/httpx/kit"
	"creme-menu/internal/logx"
	"creme-menu/internal/metric"
	"creme-menu/pkg"
)

var httpxLogger = logx.GetScope("httpx")

// RegisterCommonMiddlewares registers common middlewares and a structured
// access log. Requests are counted when m is set.
func RegisterCommonMiddlewares(app *fiber.App, m *metric.Metrics) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler set the final status before logging it.
			if herr := app.ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}
		status, latency := c.Response().StatusCode(), time.Since(start)
		httpxLogger.Info("access",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.String("latency", pkg.FormatDuration(latency)),
			zap.String("ip", c.IP()),
			zap.String("ua", c.Get("User-Agent")),
			zap.String("request_id", kit.RequestID(c)),
		)
		if m != nil {
			m.Requests.Increment(c.Method(), c.Route().Path, strconv.Itoa(status))
		}
		return err
	})
}
