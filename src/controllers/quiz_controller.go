package controllers

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"Backend-Schoolhub/src/middleware"
	"Backend-Schoolhub/src/qrcode"
	"Backend-Schoolhub/src/services/quizzes"
	"Backend-Schoolhub/src/utils"

	"github.com/gofiber/fiber/v2"
)

// QuizController exposes the quiz service over HTTP.
type QuizController struct {
	svc            *quizzes.Service
	maxUploadBytes int
	publicURL      string
}

func NewQuizController(svc *quizzes.Service, maxUploadBytes int) *QuizController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 4 << 20
	}
	return &QuizController{svc: svc, maxUploadBytes: maxUploadBytes}
}

// WithPublicURL sets the frontend base used in share links.
func (qc *QuizController) WithPublicURL(u string) *QuizController {
	qc.publicURL = u
	return qc
}

type submitRequest struct {
	Answers []quizzes.AnswerInput `json:"answers"`
}

// CreateQuiz godoc
// @Summary      Create a quiz group
// @Description  JSON body with inline questions, or multipart/form-data with a CSV/JSON "file"
// @Tags         quiz
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      quizzes.GroupInput  false  "Quiz group"
// @Param        file  formData  file                false  "CSV or JSON question file"
// @Success      201   {object}  quizzes.GroupSummary
// @Failure      400   {object}  models.ErrorResponse
// @Failure      403   {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz [post]
func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var (
		in   quizzes.GroupInput
		file *quizzes.UploadedFile
		err  error
	)
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		in, file, err = qc.parseMultipart(c)
	} else if err = c.BodyParser(&in); err != nil {
		err = utils.BadRequest("Invalid input: %v", err)
	}
	if err != nil {
		return utils.HandleAppError(c, err)
	}

	sum, err := qc.svc.Create(c.UserContext(), actor, in, file)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"data":    sum,
	})
}

func (qc *QuizController) parseMultipart(c *fiber.Ctx) (quizzes.GroupInput, *quizzes.UploadedFile, error) {
	var in quizzes.GroupInput
	in.Title = c.FormValue("title")
	in.Description = c.FormValue("description")
	in.Status = c.FormValue("status")
	in.ClassIDs = splitList(c.FormValue("classIds"))
	in.SectionIDs = splitList(c.FormValue("sectionIds"))

	var err error
	if in.StartTime, err = formTime(c, "startTime"); err != nil {
		return in, nil, err
	}
	if in.EndTime, err = formTime(c, "endTime"); err != nil {
		return in, nil, err
	}
	if raw := c.FormValue("questions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Questions); err != nil {
			return in, nil, utils.BadRequest("Invalid questions: %v", err)
		}
	}

	fh, err := c.FormFile("file")
	if err != nil {
		// multipart without a file still carries inline questions
		return in, nil, nil
	}
	if fh.Size > int64(qc.maxUploadBytes) {
		return in, nil, utils.BadRequest("File is too large (max %d bytes)", qc.maxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return in, nil, utils.BadRequest("Cannot read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(qc.maxUploadBytes)+1))
	if err != nil {
		return in, nil, utils.BadRequest("Cannot read uploaded file")
	}
	return in, &quizzes.UploadedFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		var ids []string
		if json.Unmarshal([]byte(raw), &ids) == nil {
			return ids
		}
	}
	return strings.Split(raw, ",")
}

func formTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, utils.BadRequest("Invalid %s: expected RFC3339 time", key)
	}
	return &t, nil
}

// UpdateQuiz godoc
// @Summary      Update a quiz group
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Quiz ID"
// @Param        body  body      quizzes.GroupUpdate  true  "Fields to change"
// @Success      200   {object}  quizzes.GroupSummary
// @Failure      400   {object}  models.ErrorResponse
// @Failure      403   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz/{id} [put]
func (qc *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	var in quizzes.GroupUpdate
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	sum, err := qc.svc.Update(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Quiz updated successfully", "data": sum})
}

// DeleteQuiz godoc
// @Summary      Delete a quiz group and its submissions
// @Tags         quiz
// @Produce      json
// @Param        id   path      string  true  "Quiz ID"
// @Success      200  {object}  quizzes.DeleteResult
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz/{id} [delete]
func (qc *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	res, err := qc.svc.Delete(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Quiz deleted successfully", "data": res})
}

// ListQuizzes godoc
// @Summary      List quiz groups
// @Tags         quiz
// @Produce      json
// @Param        page       query  int     false  "Page number" default(1)
// @Param        limit      query  int     false  "Items per page" default(10)
// @Param        status     query  string  false  "draft, published or archived"
// @Param        classId    query  string  false  "Filter by class"
// @Param        sectionId  query  string  false  "Filter by section"
// @Param        search     query  string  false  "Search title and description"
// @Param        schoolId   query  string  false  "Superadmin only"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      400  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz [get]
func (qc *QuizController) ListQuizzes(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	var f quizzes.ListFilter
	if err := c.QueryParser(&f); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	res, err := qc.svc.List(c.UserContext(), actor, f)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(res)
}

// GetQuiz godoc
// @Summary      Get a quiz for attempting (answer key removed)
// @Tags         quiz
// @Produce      json
// @Param        id   path      string  true  "Quiz ID"
// @Success      200  {object}  quizzes.AttemptView
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz/{id} [get]
func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	view, err := qc.svc.GetGroupForAttempt(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(view)
}

// SubmitQuiz godoc
// @Summary      Submit answers for a quiz
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Quiz ID"
// @Param        body  body      submitRequest  true  "Answers"
// @Success      201   {object}  quizzes.SubmitResult
// @Failure      400   {object}  models.ErrorResponse
// @Failure      403   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz/{id}/submit [post]
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	res, err := qc.svc.Submit(c.UserContext(), actor, c.Params("id"), req.Answers)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Quiz submitted successfully", "data": res})
}

// MySubmission godoc
// @Summary      Get the caller's own submission for a quiz
// @Tags         quiz
// @Produce      json
// @Param        id   path      string  true  "Quiz ID"
// @Success      200  {object}  quizzes.SubmitResult
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz/{id}/my-submission [get]
func (qc *QuizController) MySubmission(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	res, err := qc.svc.MySubmission(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(res)
}

// Leaderboard godoc
// @Summary      Ranked submissions of a quiz
// @Tags         quiz
// @Produce      json
// @Param        groupId    query  string  true   "Quiz ID"
// @Param        page       query  int     false  "Page number" default(1)
// @Param        limit      query  int     false  "Items per page" default(10)
// @Param        classId    query  string  false  "Only students of this class"
// @Param        sectionId  query  string  false  "Only students of this section"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz/results/leaderboard [get]
func (qc *QuizController) Leaderboard(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	var p quizzes.LeaderboardParams
	if err := c.QueryParser(&p); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	res, err := qc.svc.Leaderboard(c.UserContext(), actor, p)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(res)
}

// QuizQRCode godoc
// @Summary      QR code linking students to a quiz
// @Tags         quiz
// @Produce      png
// @Param        id    path   string  true   "Quiz ID"
// @Param        size  query  int     false  "Image size in pixels" default(256)
// @Success      200
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /quiz/{id}/qrcode [get]
func (qc *QuizController) QuizQRCode(c *fiber.Ctx) error {
	actor, _ := middleware.CurrentPrincipal(c)

	link, err := qc.svc.ShareLink(c.UserContext(), actor, c.Params("id"), qc.publicURL)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	png, err := qrcode.GeneratePNG(link, c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	c.Set("X-Quiz-Link", link)
	c.Type("png")
	return c.Send(png)
}
