package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/notification"
)

// NotificationHandler maneja la bandeja de avisos y el token FCM del dispositivo.
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Avisos más recientes
// @Tags         fcm
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(100)
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/fcm/notificationList [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SaveToken godoc
// @Summary      Registrar el token FCM del dispositivo
// @Tags         fcm
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveTokenRequest  true  "Token"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fcm/saveToken [post]
func (h *NotificationHandler) SaveToken(c *fiber.Ctx) error {
	var in dto.SaveTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SaveToken(c.Context(), in); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "token registrado"})
}

// Token godoc
// @Summary      Token FCM registrado
// @Tags         fcm
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/fcm/token [get]
func (h *NotificationHandler) Token(c *fiber.Ctx) error {
	token, err := h.uc.Token(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// ReadNotification godoc
// @Summary      Marcar un aviso como leído
// @Tags         fcm
// @Produce      json
// @Param        id   path  string  true  "ID del aviso"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fcm/readNotification/{id} [put]
func (h *NotificationHandler) ReadNotification(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.MarkRead(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "aviso leído"})
}

// SendNotification godoc
// @Summary      Guardar un aviso y enviarlo por push
// @Tags         fcm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendNotificationRequest  true  "Aviso"
// @Success      201   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fcm/sendNotification [post]
func (h *NotificationHandler) SendNotification(c *fiber.Ctx) error {
	var in dto.SendNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Send(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
