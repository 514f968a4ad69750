package routes

import (
	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers groups the controllers the routes are bound to.
type Handlers struct {
	Auth        *controllers.AuthController
	Quiz        *controllers.QuizController
	Maintenance *controllers.MaintenanceController
}

func InitRoutes(app *fiber.App, h Handlers) {
	app.Get("/metrics", middleware.PrometheusHandler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	authRoutes(app, h.Auth)
	quizRoutes(app, h.Quiz)
	adminRoutes(app, h.Maintenance)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
