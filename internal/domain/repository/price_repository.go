package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// PriceRepository puerto para el historial de precios (append-only).
type PriceRepository interface {
	Insert(price *entity.Price) error
	// Latest devuelve el precio vigente del producto (fila más reciente), nil si no hay.
	Latest(productID string) (*entity.Price, error)
	// LatestByProducts devuelve el precio vigente de cada producto del slice.
	LatestByProducts(productIDs []string) (map[string]*entity.Price, error)
}
