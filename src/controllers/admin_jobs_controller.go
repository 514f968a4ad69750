package controllers

import (
	"strconv"
	"time"

	"Backend-Schoolhub/src/jobs"
	"Backend-Schoolhub/src/services/quizzes"
	"Backend-Schoolhub/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// MaintenanceController lets a superadmin trigger quiz maintenance outside the schedule.
type MaintenanceController struct {
	svc       *quizzes.Service
	client    *asynq.Client
	retention time.Duration
}

// NewMaintenanceController: client may be nil when Redis is not configured.
func NewMaintenanceController(svc *quizzes.Service, client *asynq.Client, retention time.Duration) *MaintenanceController {
	return &MaintenanceController{svc: svc, client: client, retention: retention}
}

// TriggerMaintenance godoc
// @Summary      Enqueue quiz maintenance
// @Description  Enqueue archive-ended and purge-archived tasks to run after delaySec seconds. Requires Asynq (Redis).
// @Tags         admin
// @Produce      json
// @Param        delaySec  query     int  false  "Delay in seconds"  default(5)
// @Success      200       {object}  map[string]interface{}
// @Failure      503       {object}  models.ErrorResponse
// @Failure      500       {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/jobs/quiz-maintenance [post]
func (mc *MaintenanceController) TriggerMaintenance(c *fiber.Ctx) error {
	if mc.client == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "asynq client not initialized")
	}

	delaySec := 5
	if q := c.Query("delaySec"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v >= 0 {
			delaySec = v
		}
	}

	ids, err := jobs.EnqueueMaintenance(mc.client, mc.retention, time.Duration(delaySec)*time.Second)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"status": "enqueued", "delaySec": delaySec, "tasks": ids})
}

// RunMaintenanceNow godoc
// @Summary      Run quiz maintenance in-process
// @Description  Archive ended quizzes and purge expired ones synchronously. Does not require Redis.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  quizzes.MaintenanceReport
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/jobs/quiz-maintenance/run [post]
func (mc *MaintenanceController) RunMaintenanceNow(c *fiber.Ctx) error {
	report, err := mc.svc.RunMaintenance(c.UserContext(), mc.retention)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{"status": "executed", "data": report})
}
