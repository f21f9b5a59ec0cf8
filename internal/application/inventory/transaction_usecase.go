package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/ledger"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TransactionUseCase registra compras y ajustes de inventario y consulta el
// historial de transacciones. Todas las escrituras pasan por el libro.
type TransactionUseCase struct {
	txRunner    TxRunner
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:    txRunner,
		txRepo:      txRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

// Purchase registra una compra: cada línea suma existencias con una fila positiva.
func (uc *TransactionUseCase) Purchase(ctx context.Context, userID string, in dto.PurchaseTransactionRequest) (*dto.TransactionCreatedResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la compra no tiene líneas", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cada línea requiere producto y cantidad positiva", domain.ErrInvalidInput)
		}
	}

	products, err := uc.resolveProducts(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transactionID := uuid.New().String()
	var transactionNo string

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.PriceRepository,
	) error {
		seq, err := txRepo.NextSequence(entity.TransactionPurchase, now)
		if err != nil {
			return err
		}
		transactionNo, err = ledger.FormatNumber(entity.TransactionPurchase, now, seq)
		if err != nil {
			return err
		}

		if err := txRepo.Create(&entity.Transaction{
			ID:          transactionID,
			No:          transactionNo,
			Type:        entity.TransactionPurchase,
			Date:        now,
			Description: "Compra de inventario",
			TotalAmount: decimal.Zero,
			PaidAmount:  decimal.Zero,
			CreatedAt:   now,
			CreatedBy:   userID,
		}); err != nil {
			return err
		}

		for _, it := range in.Items {
			p := products[it.ProductID]
			if err := txRepo.CreateItem(&entity.TransactionItem{
				ID:            uuid.New().String(),
				TransactionID: transactionID,
				ProductID:     it.ProductID,
				UnitID:        p.UnitID,
				Qty:           it.Quantity,
				Description:   "Compra " + transactionNo,
			}); err != nil {
				return err
			}
			if err := stockRepo.Append(&entity.StockEntry{
				ID:            uuid.New().String(),
				ProductID:     it.ProductID,
				TransactionID: transactionID,
				Type:          entity.TransactionPurchase,
				Qty:           it.Quantity,
				UnitID:        p.UnitID,
				Description:   "Compra " + transactionNo,
				CreatedAt:     now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransactionCreatedResponse{
		TransactionID: transactionID,
		TransactionNo: transactionNo,
	}, nil
}

// Adjustment fija el stock de cada producto en la cantidad indicada. Por línea
// se escriben dos filas del libro: una anula el neto anterior y otra aplica la
// nueva cantidad; el neto anterior se lee con bloqueo.
func (uc *TransactionUseCase) Adjustment(ctx context.Context, userID string, in dto.AdjustmentTransactionRequest) (*dto.TransactionCreatedResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el ajuste no tiene líneas", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 0 {
			return nil, fmt.Errorf("%w: cada línea requiere producto y cantidad no negativa", domain.ErrInvalidInput)
		}
	}

	products, err := uc.resolveProducts(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var created *dto.TransactionCreatedResponse

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.PriceRepository,
	) error {
		entries := make([]adjustmentEntry, 0, len(in.Items))
		for _, it := range in.Items {
			prior, err := stockRepo.CurrentStockForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			entries = append(entries, adjustmentEntry{
				productID: it.ProductID,
				unitID:    products[it.ProductID].UnitID,
				itemQty:   it.Quantity,
				deltas:    []int64{-prior, it.Quantity},
			})
		}

		desc := in.Description
		if desc == "" {
			desc = "Ajuste de inventario"
		}
		txID, txNo, err := writeAdjustment(txRepo, stockRepo, userID, now, desc, entries)
		if err != nil {
			return err
		}
		created = &dto.TransactionCreatedResponse{
			TransactionID: txID,
			TransactionNo: txNo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// TransactionList devuelve el historial paginado con búsqueda y orden.
func (uc *TransactionUseCase) TransactionList(_ context.Context, search, txType, sortBy, sortOrder string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	page.DefaultPage()
	rows, total, err := uc.txRepo.List(repository.TransactionFilter{
		Search:    search,
		Type:      txType,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	out := &dto.TransactionListResponse{
		Data:       make([]dto.TransactionListItem, 0, len(rows)),
		Pagination: dto.NewPagination(total, page.Page, page.Limit),
	}
	for _, row := range rows {
		out.Data = append(out.Data, dto.TransactionListItem{
			ID:          row.Transaction.ID,
			No:          row.Transaction.No,
			ProductName: row.ProductName,
			Type:        row.Transaction.Type,
			Date:        row.Transaction.Date.Format("2006-01-02"),
			Description: row.Transaction.Description,
			TotalAmount: row.Transaction.TotalAmount,
			CreatedAt:   row.Transaction.CreatedAt.Format(time.RFC3339),
			CreatedBy:   row.Transaction.CreatedBy,
		})
	}
	return out, nil
}

// TransactionDetail devuelve la cabecera con sus líneas.
func (uc *TransactionUseCase) TransactionDetail(_ context.Context, id string) (*dto.TransactionDetailResponse, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.txRepo.ItemsByTransaction(id)
	if err != nil {
		return nil, err
	}

	resp := &dto.TransactionDetailResponse{
		ID:          tx.ID,
		No:          tx.No,
		Type:        tx.Type,
		Date:        tx.Date.Format("2006-01-02"),
		Description: tx.Description,
		TotalAmount: tx.TotalAmount,
		PaidAmount:  tx.PaidAmount,
		PaymentType: tx.PaymentType,
		Items:       make([]dto.TransactionItemDetail, 0, len(items)),
	}
	for _, it := range items {
		name := it.ProductID
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		resp.Items = append(resp.Items, dto.TransactionItemDetail{
			ProductID:   it.ProductID,
			ProductName: name,
			UnitID:      it.UnitID,
			Qty:         it.Qty,
			Description: it.Description,
		})
	}
	return resp, nil
}

func (uc *TransactionUseCase) resolveProducts(items []dto.TransactionItemRequest) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(items))
	for _, it := range items {
		if products[it.ProductID] != nil {
			return nil, fmt.Errorf("%w: producto repetido en las líneas", domain.ErrInvalidInput)
		}
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		products[it.ProductID] = p
	}
	return products, nil
}

// adjustmentEntry línea de ajuste lista para escribir: la cantidad declarada del
// ítem y los deltas que la materializan en el libro.
type adjustmentEntry struct {
	productID string
	unitID    string
	itemQty   int64
	deltas    []int64
}

// appendAdjustment escribe una transacción de ajuste dentro de la transacción
// de base de datos en curso, descartando el identificador generado.
func appendAdjustment(
	txRepo repository.TransactionRepository,
	stockRepo repository.StockRepository,
	userID string,
	now time.Time,
	description string,
	entries []adjustmentEntry,
) error {
	_, _, err := writeAdjustment(txRepo, stockRepo, userID, now, description, entries)
	return err
}

func writeAdjustment(
	txRepo repository.TransactionRepository,
	stockRepo repository.StockRepository,
	userID string,
	now time.Time,
	description string,
	entries []adjustmentEntry,
) (string, string, error) {
	seq, err := txRepo.NextSequence(entity.TransactionAdjustment, now)
	if err != nil {
		return "", "", err
	}
	transactionNo, err := ledger.FormatNumber(entity.TransactionAdjustment, now, seq)
	if err != nil {
		return "", "", err
	}

	transactionID := uuid.New().String()
	if err := txRepo.Create(&entity.Transaction{
		ID:          transactionID,
		No:          transactionNo,
		Type:        entity.TransactionAdjustment,
		Date:        now,
		Description: description,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
		CreatedAt:   now,
		CreatedBy:   userID,
	}); err != nil {
		return "", "", err
	}

	for _, e := range entries {
		if err := txRepo.CreateItem(&entity.TransactionItem{
			ID:            uuid.New().String(),
			TransactionID: transactionID,
			ProductID:     e.productID,
			UnitID:        e.unitID,
			Qty:           e.itemQty,
			Description:   "Ajuste " + transactionNo,
		}); err != nil {
			return "", "", err
		}
		for _, delta := range e.deltas {
			if delta == 0 {
				continue
			}
			if err := stockRepo.Append(&entity.StockEntry{
				ID:            uuid.New().String(),
				ProductID:     e.productID,
				TransactionID: transactionID,
				Type:          entity.TransactionAdjustment,
				Qty:           delta,
				UnitID:        e.unitID,
				Description:   "Ajuste " + transactionNo,
				CreatedAt:     now,
				CreatedBy:     userID,
			}); err != nil {
				return "", "", err
			}
		}
	}
	return transactionID, transactionNo, nil
}
