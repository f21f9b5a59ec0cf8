package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	// TouchLastLogin actualiza last_login_at al momento actual.
	TouchLastLogin(id string) error
}
