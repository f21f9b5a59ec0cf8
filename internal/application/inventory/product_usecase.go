package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Las altas y ediciones que mueven
// existencias generan su transacción de ajuste en el mismo alcance atómico.
type ProductUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	stockRepo   repository.StockRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	stockRepo repository.StockRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		priceRepo:   priceRepo,
		stockRepo:   stockRepo,
	}
}

// List devuelve el catálogo con búsqueda, filtro, orden y paginación.
func (uc *ProductUseCase) List(_ context.Context, search, categoryID, sortBy, sortOrder string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	rows, total, err := uc.productRepo.List(repository.ProductFilter{
		Search:     search,
		CategoryID: categoryID,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
		Limit:      page.Limit,
		Offset:     page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	out := &dto.ProductListResponse{
		Data:       make([]dto.ProductResponse, 0, len(rows)),
		Pagination: dto.NewPagination(total, page.Page, page.Limit),
	}
	for _, row := range rows {
		out.Data = append(out.Data, toProductResponse(row))
	}
	return out, nil
}

// Detail devuelve el producto con su historial de existencias.
func (uc *ProductUseCase) Detail(_ context.Context, id string) (*dto.ProductDetailResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.CurrentStock(id)
	if err != nil {
		return nil, err
	}
	price, err := uc.priceRepo.Latest(id)
	if err != nil {
		return nil, err
	}
	history, err := uc.stockRepo.HistoryByProduct(id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductDetailResponse{
		ProductResponse: toProductResponse(&repository.ProductWithStock{Product: *p, StockQty: stock}),
		StockHistory:    make([]dto.StockHistoryEntry, 0, len(history)),
	}
	if price != nil {
		resp.PurchasePrice = price.PurchasePrice
		resp.SellingPrice = price.SellingPrice
	}
	for _, h := range history {
		resp.StockHistory = append(resp.StockHistory, dto.StockHistoryEntry{
			TransactionNo: h.TransactionNo,
			Type:          h.Entry.Type,
			Qty:           h.Entry.Qty,
			Date:          h.Date,
			Description:   h.Entry.Description,
		})
	}
	return resp, nil
}

// Create da de alta el producto. Si trae stock inicial, la semilla entra al libro
// como una transacción de ajuste dentro del mismo alcance atómico: o queda el
// producto con su precio y su stock inicial, o no queda nada.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductDetailResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.StockQty != nil && *in.StockQty < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrInvalidInput)
	}
	if (in.PurchasePrice == nil) != (in.SellingPrice == nil) {
		return nil, fmt.Errorf("%w: purchase_price y selling_price van juntos", domain.ErrInvalidInput)
	}

	now := time.Now()
	productID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRepository,
	) error {
		p := &entity.Product{
			ID:         productID,
			Name:       in.Name,
			Barcode:    in.Barcode,
			ImageURL:   in.ImageURL,
			CategoryID: in.CategoryID,
			UnitID:     in.UnitID,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
			CreatedBy:  userID,
			UpdatedBy:  userID,
		}
		if err := productRepo.Create(p); err != nil {
			return err
		}

		if in.PurchasePrice != nil && in.SellingPrice != nil {
			if err := priceRepo.Insert(&entity.Price{
				ID:            uuid.New().String(),
				ProductID:     productID,
				PurchasePrice: *in.PurchasePrice,
				SellingPrice:  *in.SellingPrice,
				CreatedAt:     now,
				UpdatedAt:     now,
				CreatedBy:     userID,
				UpdatedBy:     userID,
			}); err != nil {
				return err
			}
		}

		if in.StockQty == nil || *in.StockQty == 0 {
			return nil
		}
		desc := "Stock inicial de " + in.Name
		return appendAdjustment(txRepo, stockRepo, userID, now, desc, []adjustmentEntry{
			{productID: productID, unitID: in.UnitID, itemQty: *in.StockQty, deltas: []int64{*in.StockQty}},
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.Detail(ctx, productID)
}

// Update edita el producto. Si trae stock_qty, el stock se fija en esa cantidad
// con un ajuste de dos filas: una anula el neto anterior y otra aplica el nuevo.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductDetailResponse, error) {
	current, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if in.StockQty != nil && *in.StockQty < 0 {
		return nil, fmt.Errorf("%w: el stock no puede quedar negativo", domain.ErrInvalidInput)
	}
	if (in.PurchasePrice == nil) != (in.SellingPrice == nil) {
		return nil, fmt.Errorf("%w: purchase_price y selling_price van juntos", domain.ErrInvalidInput)
	}

	now := time.Now()
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&current.Name, in.Name)
	apply(&current.Barcode, in.Barcode)
	apply(&current.ImageURL, in.ImageURL)
	apply(&current.CategoryID, in.CategoryID)
	apply(&current.UnitID, in.UnitID)
	current.UpdatedAt = now
	current.UpdatedBy = userID

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRepository,
	) error {
		if err := productRepo.Update(current); err != nil {
			return err
		}

		if in.PurchasePrice != nil && in.SellingPrice != nil {
			if err := priceRepo.Insert(&entity.Price{
				ID:            uuid.New().String(),
				ProductID:     id,
				PurchasePrice: *in.PurchasePrice,
				SellingPrice:  *in.SellingPrice,
				CreatedAt:     now,
				UpdatedAt:     now,
				CreatedBy:     userID,
				UpdatedBy:     userID,
			}); err != nil {
				return err
			}
		}

		if in.StockQty == nil {
			return nil
		}
		// El neto anterior se lee con bloqueo para que ninguna venta concurrente
		// se cuele entre la anulación y la nueva cantidad.
		prior, err := stockRepo.CurrentStockForUpdate(id)
		if err != nil {
			return err
		}
		desc := "Edición de stock de " + current.Name
		return appendAdjustment(txRepo, stockRepo, userID, now, desc, []adjustmentEntry{
			{productID: id, unitID: current.UnitID, itemQty: *in.StockQty, deltas: []int64{-prior, *in.StockQty}},
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.Detail(ctx, id)
}

// Delete borra lógicamente el producto. Se veta si el libro tiene más de una
// fila del producto (la semilla inicial no cuenta como uso real).
func (uc *ProductUseCase) Delete(_ context.Context, userID, id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	entries, err := uc.productRepo.CountLedgerEntries(id)
	if err != nil {
		return err
	}
	if entries > 1 {
		return fmt.Errorf("%w: %s", domain.ErrProductInUse, p.Name)
	}
	return uc.productRepo.SoftDelete(id, userID)
}

// DeleteMultiple borra lógicamente varios productos; falla en el primero vetado.
func (uc *ProductUseCase) DeleteMultiple(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids vacío", domain.ErrInvalidInput)
	}
	for _, id := range ids {
		if err := uc.Delete(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

func toProductResponse(row *repository.ProductWithStock) dto.ProductResponse {
	p := row.Product
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Barcode:       p.Barcode,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
		UnitID:        p.UnitID,
		IsActive:      p.IsActive,
		StockQty:      row.StockQty,
		PurchasePrice: row.PurchasePrice,
		SellingPrice:  row.SellingPrice,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
