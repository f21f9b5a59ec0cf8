package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, barcode, image_url, category_id, unit_id, is_active,
			created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Barcode, p.ImageURL, p.CategoryID, p.UnitID, p.IsActive,
		p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("crear producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto activo por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, COALESCE(barcode, ''), COALESCE(image_url, ''),
			COALESCE(category_id, ''), COALESCE(unit_id, ''), is_active,
			created_at, updated_at, created_by, updated_by
		FROM products WHERE id = $1 AND is_active = true`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Barcode, &p.ImageURL, &p.CategoryID, &p.UnitID, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables del producto (solo si sigue activo).
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, barcode = $3, image_url = $4, category_id = $5, unit_id = $6,
			updated_at = $7, updated_by = $8
		WHERE id = $1 AND is_active = true`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Barcode, p.ImageURL, p.CategoryID, p.UnitID, p.UpdatedAt, p.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("actualizar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List devuelve productos activos con stock (SUM del libro) y precios vigentes,
// aplicando búsqueda, filtro por categoría, ordenamiento y paginación.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*repository.ProductWithStock, int, error) {
	ctx := context.Background()

	where := `WHERE p.is_active = true`
	args := []any{}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		where += fmt.Sprintf(` AND (p.name ILIKE $%d OR p.barcode ILIKE $%d)`, len(args), len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}

	// Whitelist de campos de orden: nunca interpolar entrada del usuario.
	orderBy := "LOWER(p.name)"
	if filter.SortBy == "barcode" {
		orderBy = "LOWER(p.barcode)"
	}
	order := fmt.Sprintf("ORDER BY %s %s", orderBy, sanitizeSortOrder(filter.SortOrder))

	countQuery := `SELECT COUNT(*) FROM products p ` + where
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar productos: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT p.id, p.name, COALESCE(p.barcode, ''), COALESCE(p.image_url, ''),
			COALESCE(p.category_id, ''), COALESCE(p.unit_id, ''), p.is_active,
			p.created_at, p.updated_at, p.created_by, p.updated_by,
			COALESCE((SELECT SUM(s.qty) FROM stocks s WHERE s.product_id = p.id), 0) AS stock_qty,
			COALESCE(pr.purchase_price, 0), COALESCE(pr.selling_price, 0)
		FROM products p
		LEFT JOIN LATERAL (
			SELECT purchase_price, selling_price
			FROM prices WHERE product_id = p.id
			ORDER BY updated_at DESC LIMIT 1
		) pr ON true
		` + where + ` ` + order + fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var out []*repository.ProductWithStock
	for rows.Next() {
		var row repository.ProductWithStock
		p := &row.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Barcode, &p.ImageURL, &p.CategoryID, &p.UnitID, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
			&row.StockQty, &row.PurchasePrice, &row.SellingPrice,
		); err != nil {
			return nil, 0, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listar productos: %w", err)
	}
	return out, total, nil
}

// SoftDelete marca el producto como inactivo.
func (r *ProductRepo) SoftDelete(id, userID string) error {
	query := `
		UPDATE products SET is_active = false, updated_at = now(), updated_by = $2
		WHERE id = $1 AND is_active = true`
	tag, err := r.q.Exec(context.Background(), query, id, userID)
	if err != nil {
		return fmt.Errorf("borrar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountLedgerEntries cuenta las filas del libro de existencias del producto.
func (r *ProductRepo) CountLedgerEntries(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stocks WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar movimientos del producto: %w", err)
	}
	return n, nil
}
