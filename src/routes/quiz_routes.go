package routes

import (
	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/middleware"
	"Backend-Schoolhub/src/models"

	"github.com/gofiber/fiber/v2"
)

func quizRoutes(app *fiber.App, qc *controllers.QuizController) {
	authors := middleware.RequireKinds(models.KindSchool, models.KindAdminOffice, models.KindTeacher)
	managers := middleware.RequireKinds(models.KindSchool, models.KindAdminOffice, models.KindTeacher, models.KindSuperadmin)
	students := middleware.RequireKinds(models.KindStudent)

	quiz := app.Group("/quiz", middleware.AuthJWT)
	quiz.Post("/", authors, qc.CreateQuiz)
	quiz.Get("/", qc.ListQuizzes)
	quiz.Get("/results/leaderboard", qc.Leaderboard)
	quiz.Get("/:id", qc.GetQuiz)
	quiz.Put("/:id", managers, qc.UpdateQuiz)
	quiz.Delete("/:id", managers, qc.DeleteQuiz)
	quiz.Get("/:id/qrcode", managers, qc.QuizQRCode)
	quiz.Post("/:id/submit", students, qc.SubmitQuiz)
	quiz.Get("/:id/my-submission", students, qc.MySubmission)
}
