package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de transacciones. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la cabecera. El número legible debe venir ya asignado.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, no, type, date, description,
			total_amount, paid_amount, payment_type, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.No, t.Type, t.Date, t.Description,
		t.TotalAmount, t.PaidAmount, t.PaymentType, t.CreatedAt, t.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s", domain.ErrDuplicate, t.No)
		}
		return fmt.Errorf("crear transacción: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la transacción.
func (r *TransactionRepo) CreateItem(it *entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, unit_id, qty, description)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.TransactionID, it.ProductID, it.UnitID, it.Qty, it.Description,
	)
	if err != nil {
		return fmt.Errorf("crear línea de transacción: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID. Devuelve nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `
		SELECT id, no, type, date, COALESCE(description, ''),
			COALESCE(total_amount, 0), COALESCE(paid_amount, 0), COALESCE(payment_type, ''),
			created_at, created_by
		FROM transactions WHERE id = $1`
	var t entity.Transaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.No, &t.Type, &t.Date, &t.Description,
		&t.TotalAmount, &t.PaidAmount, &t.PaymentType, &t.CreatedAt, &t.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transacción: %w", err)
	}
	return &t, nil
}

// ItemsByTransaction devuelve las líneas de la transacción.
func (r *TransactionRepo) ItemsByTransaction(transactionID string) ([]*entity.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, product_id, COALESCE(unit_id, ''), qty, COALESCE(description, '')
		FROM transaction_items WHERE transaction_id = $1`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("líneas de transacción: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.UnitID, &it.Qty, &it.Description); err != nil {
			return nil, fmt.Errorf("scan línea: %w", err)
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("líneas de transacción: %w", err)
	}
	return out, nil
}

// List devuelve cabeceras con los nombres de producto agregados, con búsqueda,
// ordenamiento y paginación.
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*repository.TransactionListRow, int, error) {
	ctx := context.Background()

	where := `WHERE 1=1`
	args := []any{}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		where += fmt.Sprintf(` AND (t.no ILIKE $%d OR t.type ILIKE $%d OR EXISTS (
			SELECT 1 FROM transaction_items ti
			JOIN products p ON p.id = ti.product_id
			WHERE ti.transaction_id = t.id AND p.name ILIKE $%d))`, len(args), len(args), len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(` AND t.type = $%d`, len(args))
	}

	orderBy := "t.created_at"
	switch filter.SortBy {
	case "no":
		orderBy = "t.no"
	case "type":
		orderBy = "LOWER(t.type)"
	case "date":
		orderBy = "t.date"
	case "product_name":
		orderBy = "product_name"
	}
	order := fmt.Sprintf("ORDER BY %s %s", orderBy, sanitizeSortOrder(filter.SortOrder))

	countQuery := `SELECT COUNT(*) FROM transactions t ` + where
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar transacciones: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT t.id, t.no, t.type, t.date, COALESCE(t.description, ''),
			COALESCE(t.total_amount, 0), COALESCE(t.paid_amount, 0), COALESCE(t.payment_type, ''),
			t.created_at, t.created_by,
			COALESCE((
				SELECT string_agg(p.name, ', ' ORDER BY p.name)
				FROM transaction_items ti JOIN products p ON p.id = ti.product_id
				WHERE ti.transaction_id = t.id
			), '') AS product_name
		FROM transactions t
		` + where + ` ` + order + fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listar transacciones: %w", err)
	}
	defer rows.Close()

	var out []*repository.TransactionListRow
	for rows.Next() {
		var row repository.TransactionListRow
		t := &row.Transaction
		if err := rows.Scan(
			&t.ID, &t.No, &t.Type, &t.Date, &t.Description,
			&t.TotalAmount, &t.PaidAmount, &t.PaymentType, &t.CreatedAt, &t.CreatedBy,
			&row.ProductName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transacción: %w", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listar transacciones: %w", err)
	}
	return out, total, nil
}

// NextSequence asigna el siguiente consecutivo para (type, date) con un upsert
// atómico sobre transaction_counters. Bajo concurrencia, la fila del contador
// serializa a los escritores del mismo tipo y día sin huecos ni duplicados.
func (r *TransactionRepo) NextSequence(txType string, date time.Time) (int, error) {
	query := `
		INSERT INTO transaction_counters (type, date, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (type, date)
		DO UPDATE SET last_seq = transaction_counters.last_seq + 1
		RETURNING last_seq`
	var seq int
	err := r.q.QueryRow(context.Background(), query, txType, date.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("siguiente consecutivo: %w", err)
	}
	return seq, nil
}
