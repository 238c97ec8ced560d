package api

import (
	v1 "github.com/Reventlow/lectio-msg-via-playwright-api/internal/api/v1"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/", handler.Health)
	app.Post("/send-message", handler.SendMessage)
	app.Get("/tasks/:taskID", handler.GetTask)
	app.Get("/logs", handler.LogsPage)
	app.Get("/logs/by_task_id/:taskID", handler.LogsByTaskID)
	app.Get("/logs/by_receiver/:receiver", handler.LogsByReceiver)
	app.Get("/status", handler.QueueStatus)
	app.Get("/dashboard", handler.Dashboard)
}
