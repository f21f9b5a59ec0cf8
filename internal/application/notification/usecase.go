package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// PushSender puerto del envío push. Una falla del proveedor no debe tumbar
// la operación que originó el aviso.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}

// UseCase persiste avisos y los reenvía por push al dispositivo registrado.
type UseCase struct {
	repo   repository.NotificationRepository
	sender PushSender
	log    zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository, sender PushSender, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, sender: sender, log: log}
}

// Send guarda el aviso y lo empuja al dispositivo. El push es de mejor
// esfuerzo: sin token registrado o con el proveedor caído el aviso queda
// igualmente en la bandeja.
func (uc *UseCase) Send(ctx context.Context, in dto.SendNotificationRequest) (*dto.NotificationResponse, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title es requerido", domain.ErrInvalidInput)
	}

	n := &entity.Notification{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Insert(n); err != nil {
		return nil, err
	}

	token, err := uc.repo.DeviceToken()
	if err != nil {
		return nil, err
	}
	if token == nil {
		uc.log.Debug().Msg("sin token de dispositivo, se omite el push")
	} else if err := uc.sender.Send(ctx, token.Token, in.Title, in.Body); err != nil {
		uc.log.Warn().Err(err).Str("notification_id", n.ID).Msg("push fallido, el aviso queda en bandeja")
	}

	return toResponse(n), nil
}

// List devuelve los avisos más recientes.
func (uc *UseCase) List(_ context.Context, limit int) ([]dto.NotificationResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := uc.repo.List(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, *toResponse(n))
	}
	return out, nil
}

// Token devuelve el token FCM registrado, cadena vacía si no hay.
func (uc *UseCase) Token(_ context.Context) (string, error) {
	token, err := uc.repo.DeviceToken()
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return token.Token, nil
}

// MarkRead marca el aviso como leído.
func (uc *UseCase) MarkRead(_ context.Context, id string) error {
	return uc.repo.MarkRead(id)
}

// SaveToken registra el token FCM del dispositivo.
func (uc *UseCase) SaveToken(_ context.Context, in dto.SaveTokenRequest) error {
	if in.Token == "" {
		return fmt.Errorf("%w: token es requerido", domain.ErrInvalidInput)
	}
	return uc.repo.SaveDeviceToken(in.Token)
}

func toResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
