package v1

import (
	"bytes"
	"time"

	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/api/validator"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/constants"
	"github.com/Reventlow/lectio-msg-via-playwright-api/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger    *zap.Logger
	validator validator.Validator
	tasks     service.TaskService
	logs      service.LogService
	status    service.StatusService
}

func NewHandler(logger *zap.Logger, validator validator.Validator, tasks service.TaskService,
	logs service.LogService, status service.StatusService) *Handler {
	return &Handler{logger: logger, validator: validator, tasks: tasks, logs: logs, status: status}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) SendMessage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request SendMessageRequest

	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	if errs := h.validator.Validate(&request); len(errs) > 0 {
		message := validator.Message(constants.MessageErrorFormat, errs)
		h.logger.Warn("Invalid send-message request", zap.String("detail", message))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeValidation,
			"message": message,
		})
	}

	cmd := service.CreateTaskCommand{
		PortalID:   request.PortalID,
		Username:   request.Username,
		Password:   request.Password,
		Recipient:  request.Recipient,
		Subject:    request.Subject,
		Body:       request.Body,
		AllowReply: request.ReplyAllowed(),
	}

	resp, err := h.tasks.CreateTask(ctx, cmd)
	if err != nil {
		h.logger.Error("Failed to create task",
			zap.Error(err),
			zap.String("recipient", request.Recipient))
		return err
	}

	h.logger.Info("Task accepted",
		zap.String("taskID", resp.TaskID),
		zap.String("recipient", request.Recipient))

	return c.JSON(SendMessageResponse{TaskID: resp.TaskID, Status: "Task submitted"})
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	resp, err := h.tasks.GetTask(c.UserContext(), c.Params("taskID"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *Handler) LogsPage(c *fiber.Ctx) error {
	entries, err := h.logs.ListAll(c.UserContext())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := logsTemplate.Execute(&buf, entries); err != nil {
		h.logger.Error("Failed to render logs page", zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (h *Handler) LogsByTaskID(c *fiber.Ctx) error {
	entries, err := h.logs.ListByTaskID(c.UserContext(), c.Params("taskID"))
	if err != nil {
		return err
	}

	return c.JSON(entries)
}

func (h *Handler) LogsByReceiver(c *fiber.Ctx) error {
	entries, err := h.logs.ListByReceiver(c.UserContext(), c.Params("receiver"))
	if err != nil {
		return err
	}

	return c.JSON(entries)
}

func (h *Handler) QueueStatus(c *fiber.Ctx) error {
	resp, err := h.status.QueueStatus(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
