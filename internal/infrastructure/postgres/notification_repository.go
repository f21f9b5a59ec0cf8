package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Insert persiste una notificación nueva (no leída).
func (r *NotificationRepo) Insert(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, title, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, n.ID, n.Title, n.Body, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar notificación: %w", err)
	}
	return nil
}

// List devuelve las notificaciones más recientes primero, hasta limit filas.
func (r *NotificationRepo) List(limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, title, COALESCE(body, ''), is_read, created_at
		FROM notifications ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("listar notificaciones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notificación: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar notificaciones: %w", err)
	}
	return out, nil
}

// MarkRead marca la notificación como leída.
func (r *NotificationRepo) MarkRead(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marcar notificación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SaveDeviceToken upsert del token del único dispositivo registrado (fila id=1).
func (r *NotificationRepo) SaveDeviceToken(token string) error {
	query := `
		INSERT INTO device_tokens (id, token, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, token)
	if err != nil {
		return fmt.Errorf("guardar device token: %w", err)
	}
	return nil
}

// DeviceToken devuelve el token registrado, nil si no hay.
func (r *NotificationRepo) DeviceToken() (*entity.DeviceToken, error) {
	var t entity.DeviceToken
	err := r.q.QueryRow(context.Background(),
		`SELECT id, token, updated_at FROM device_tokens WHERE id = 1`).Scan(&t.ID, &t.Token, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device token: %w", err)
	}
	return &t, nil
}
