package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del libro de existencias sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Append agrega una fila con delta firmado al libro. Las filas nunca se
// actualizan ni se borran.
func (r *StockRepo) Append(e *entity.StockEntry) error {
	query := `
		INSERT INTO stocks (id, product_id, transaction_id, type, qty, unit_id,
			description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ProductID, e.TransactionID, e.Type, e.Qty, e.UnitID,
		e.Description, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("agregar al libro de existencias: %w", err)
	}
	return nil
}

// CurrentStock devuelve SUM(qty) del producto (0 si no tiene filas).
func (r *StockRepo) CurrentStock(productID string) (int64, error) {
	var qty int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(qty), 0) FROM stocks WHERE product_id = $1`, productID).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf("stock actual: %w", err)
	}
	return qty, nil
}

// CurrentStockForUpdate bloquea la fila del producto y luego suma el libro.
// FOR UPDATE no aplica sobre agregados, así que el lock va sobre products:
// cualquier otro escritor del mismo producto espera hasta el commit.
func (r *StockRepo) CurrentStockForUpdate(productID string) (int64, error) {
	ctx := context.Background()
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("bloquear producto: %w", err)
	}
	return r.CurrentStock(productID)
}

// HistoryByProduct devuelve las filas del libro del producto con su transacción,
// más recientes primero.
func (r *StockRepo) HistoryByProduct(productID string) ([]*repository.StockHistoryRow, error) {
	query := `
		SELECT s.id, s.product_id, s.transaction_id, s.type, s.qty, COALESCE(s.unit_id, ''),
			COALESCE(s.description, ''), s.created_at, s.created_by,
			t.no, to_char(t.date, 'YYYY-MM-DD')
		FROM stocks s
		JOIN transactions t ON t.id = s.transaction_id
		WHERE s.product_id = $1
		ORDER BY s.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("historial de existencias: %w", err)
	}
	defer rows.Close()

	var out []*repository.StockHistoryRow
	for rows.Next() {
		var row repository.StockHistoryRow
		e := &row.Entry
		if err := rows.Scan(
			&e.ID, &e.ProductID, &e.TransactionID, &e.Type, &e.Qty, &e.UnitID,
			&e.Description, &e.CreatedAt, &e.CreatedBy,
			&row.TransactionNo, &row.Date,
		); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("historial de existencias: %w", err)
	}
	return out, nil
}
