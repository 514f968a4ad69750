package routes

import (
	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(app *fiber.App, ac *controllers.AuthController) {
	auth := app.Group("/auth")

	auth.Post("/login", ac.Login)                       // 🔐 login
	auth.Post("/logout", middleware.AuthJWT, ac.Logout) // 🚪 logout
	auth.Get("/google/login", ac.GoogleLogin)
	auth.Get("/google/callback", ac.GoogleCallback)
}
