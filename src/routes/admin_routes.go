package routes

import (
	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/middleware"
	"Backend-Schoolhub/src/models"

	"github.com/gofiber/fiber/v2"
)

func adminRoutes(app *fiber.App, mc *controllers.MaintenanceController) {
	admin := app.Group("/admin", middleware.AuthJWT, middleware.RequireKinds(models.KindSuperadmin))
	admin.Post("/jobs/quiz-maintenance", mc.TriggerMaintenance)
	admin.Post("/jobs/quiz-maintenance/run", mc.RunMaintenanceNow)
}
