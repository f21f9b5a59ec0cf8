package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implementación de PriceRepository sobre PostgreSQL (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador de precios. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// Insert agrega una fila de precio. Nunca actualiza filas anteriores.
func (r *PriceRepo) Insert(p *entity.Price) error {
	query := `
		INSERT INTO prices (id, product_id, purchase_price, selling_price,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ProductID, p.PurchasePrice, p.SellingPrice,
		p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insertar precio: %w", err)
	}
	return nil
}

// Latest devuelve el precio vigente del producto (updated_at más reciente), nil si no hay.
func (r *PriceRepo) Latest(productID string) (*entity.Price, error) {
	query := `
		SELECT id, product_id, purchase_price, selling_price,
			created_at, updated_at, created_by, updated_by
		FROM prices WHERE product_id = $1
		ORDER BY updated_at DESC LIMIT 1`
	var p entity.Price
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&p.ID, &p.ProductID, &p.PurchasePrice, &p.SellingPrice,
		&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("precio vigente: %w", err)
	}
	return &p, nil
}

// LatestByProducts devuelve el precio vigente de cada producto del slice.
func (r *PriceRepo) LatestByProducts(productIDs []string) (map[string]*entity.Price, error) {
	if len(productIDs) == 0 {
		return map[string]*entity.Price{}, nil
	}
	query := `
		SELECT DISTINCT ON (product_id)
			id, product_id, purchase_price, selling_price,
			created_at, updated_at, created_by, updated_by
		FROM prices WHERE product_id = ANY($1)
		ORDER BY product_id, updated_at DESC`
	rows, err := r.q.Query(context.Background(), query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("precios vigentes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.Price, len(productIDs))
	for rows.Next() {
		var p entity.Price
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.PurchasePrice, &p.SellingPrice,
			&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan precio: %w", err)
		}
		out[p.ProductID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("precios vigentes: %w", err)
	}
	return out, nil
}
