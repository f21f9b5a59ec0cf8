package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// NotificationRepository puerto para notificaciones y el token del dispositivo.
type NotificationRepository interface {
	Insert(n *entity.Notification) error
	// List devuelve las más recientes primero, hasta limit filas.
	List(limit int) ([]*entity.Notification, error)
	MarkRead(id string) error
	// SaveDeviceToken upsert del token del único dispositivo registrado.
	SaveDeviceToken(token string) error
	// DeviceToken devuelve el token registrado, nil si no hay.
	DeviceToken() (*entity.DeviceToken, error)
}
