package cashier

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/ledger"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// priceTolerance diferencia máxima aceptada entre el total enviado y el recalculado.
var priceTolerance = decimal.NewFromFloat(0.01)

// qrisImagePath ruta estática de la imagen QRIS que muestra el frontend.
const qrisImagePath = "/pictures/qris/qris.png"

// CheckoutUseCase procesa ventas de caja: valida el carrito, verifica precios
// contra los vigentes, verifica existencias con bloqueo y persiste la venta
// completa (cabecera, líneas y descuentos del libro) en una sola transacción.
type CheckoutUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	txRepo      repository.TransactionRepository
	receipts    ReceiptGenerator
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	txRepo repository.TransactionRepository,
	receipts ReceiptGenerator,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		priceRepo:   priceRepo,
		txRepo:      txRepo,
		receipts:    receipts,
	}
}

// QrisPath devuelve la ruta de la imagen QRIS.
func (uc *CheckoutUseCase) QrisPath() string {
	return qrisImagePath
}

// loadCart valida el carrito y carga productos activos con su precio vigente.
func (uc *CheckoutUseCase) loadCart(items []dto.CheckoutItem) (map[string]*entity.Product, map[string]*entity.Price, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Qty <= 0 {
			return nil, nil, fmt.Errorf("%w: cada línea requiere producto y cantidad positiva", domain.ErrInvalidInput)
		}
		if seen[it.ProductID] {
			return nil, nil, fmt.Errorf("%w: producto repetido en el carrito", domain.ErrInvalidInput)
		}
		seen[it.ProductID] = true
		ids = append(ids, it.ProductID)
	}

	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := uc.productRepo.GetByID(id)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		products[id] = p
	}

	prices, err := uc.priceRepo.LatestByProducts(ids)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		if prices[id] == nil {
			return nil, nil, fmt.Errorf("%w: el producto %s no tiene precio vigente", domain.ErrInvalidInput, products[id].Name)
		}
	}
	return products, prices, nil
}

// ReviewOrder cotiza el carrito con los precios vigentes, sin tocar el libro.
func (uc *CheckoutUseCase) ReviewOrder(_ context.Context, in dto.ReviewOrderRequest) (*dto.ReviewOrderResponse, error) {
	products, prices, err := uc.loadCart(in.Products)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	lines := make([]dto.ReviewOrderLine, 0, len(in.Products))
	for _, it := range in.Products {
		p := products[it.ProductID]
		price := prices[it.ProductID].SellingPrice
		subtotal := price.Mul(decimal.NewFromInt(it.Qty))
		total = total.Add(subtotal)
		lines = append(lines, dto.ReviewOrderLine{
			ProductID: p.ID,
			Name:      p.Name,
			Barcode:   p.Barcode,
			Qty:       it.Qty,
			Price:     price,
			Subtotal:  subtotal,
		})
	}

	return &dto.ReviewOrderResponse{
		TotalPrice:     total,
		PaymentMethods: []string{entity.PaymentCash, entity.PaymentQRIS},
		Products:       lines,
	}, nil
}

// Checkout procesa la venta completa. El flujo avanza por validación,
// verificación de precios, verificación de existencias y persistencia; cualquier
// falla revierte todo (no quedan cabeceras sin líneas ni descuentos parciales).
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if in.PaymentMethod != entity.PaymentCash && in.PaymentMethod != entity.PaymentQRIS {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	products, prices, err := uc.loadCart(in.Products)
	if err != nil {
		return nil, err
	}

	// Verificación de precios: el total se recalcula del lado servidor con los
	// precios vigentes; el cliente nunca dicta el precio.
	calculated := decimal.Zero
	for _, it := range in.Products {
		calculated = calculated.Add(prices[it.ProductID].SellingPrice.Mul(decimal.NewFromInt(it.Qty)))
	}
	if calculated.Sub(in.TotalPrice).Abs().GreaterThan(priceTolerance) {
		return nil, fmt.Errorf("%w: calculado %s, enviado %s", domain.ErrPriceMismatch,
			calculated.StringFixed(2), in.TotalPrice.StringFixed(2))
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
		// Verificación de existencias con bloqueo por producto: ningún otro
		// checkout concurrente puede descontar el mismo producto hasta el commit.
		// Los bloqueos se toman en orden de ID, no en el orden del carrito, para
		// que dos checkouts con productos compartidos no se esperen en cruz.
		qtyByID := make(map[string]int64, len(in.Products))
		lockOrder := make([]string, 0, len(in.Products))
		for _, it := range in.Products {
			qtyByID[it.ProductID] = it.Qty
			lockOrder = append(lockOrder, it.ProductID)
		}
		sort.Strings(lockOrder)
		for _, id := range lockOrder {
			available, err := stockRepo.CurrentStockForUpdate(id)
			if err != nil {
				return err
			}
			if available < qtyByID[id] {
				return fmt.Errorf("%w: producto %s (disponible %d, pedido %d)",
					domain.ErrInsufficientStock, products[id].Name, available, qtyByID[id])
			}
		}

		seq, err := txRepo.NextSequence(entity.TransactionSale, now)
		if err != nil {
			return err
		}
		transactionNo, err = ledger.FormatNumber(entity.TransactionSale, now, seq)
		if err != nil {
			return err
		}

		header := &entity.Transaction{
			ID:          transactionID,
			No:          transactionNo,
			Type:        entity.TransactionSale,
			Date:        now,
			Description: "Venta de caja - " + in.PaymentMethod,
			TotalAmount: calculated,
			PaidAmount:  calculated,
			PaymentType: in.PaymentMethod,
			CreatedAt:   now,
			CreatedBy:   userID,
		}
		if err := txRepo.Create(header); err != nil {
			return err
		}

		for _, it := range in.Products {
			p := products[it.ProductID]
			if err := txRepo.CreateItem(&entity.TransactionItem{
				ID:            uuid.New().String(),
				TransactionID: transactionID,
				ProductID:     it.ProductID,
				UnitID:        p.UnitID,
				Qty:           it.Qty,
				Description:   "Venta " + transactionNo,
			}); err != nil {
				return err
			}
			if err := stockRepo.Append(&entity.StockEntry{
				ID:            uuid.New().String(),
				ProductID:     it.ProductID,
				TransactionID: transactionID,
				Type:          entity.TransactionSale,
				Qty:           -it.Qty, // las ventas descuentan
				UnitID:        p.UnitID,
				Description:   "Venta " + transactionNo,
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

	return &dto.CheckoutResponse{
		TransactionID: transactionID,
		TransactionNo: transactionNo,
		TotalPrice:    calculated,
		PaymentMethod: in.PaymentMethod,
		Message:       "Transacción completada",
	}, nil
}

// Receipt genera el recibo PDF de una venta confirmada.
func (uc *CheckoutUseCase) Receipt(_ context.Context, transactionID string) ([]byte, error) {
	tx, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.Type != entity.TransactionSale {
		return nil, domain.ErrNotFound
	}
	items, err := uc.txRepo.ItemsByTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	data := ReceiptData{
		TransactionNo: tx.No,
		Date:          tx.Date.Format("2006-01-02"),
		PaymentMethod: tx.PaymentType,
		Total:         tx.TotalAmount,
		Paid:          tx.PaidAmount,
	}
	for _, it := range items {
		name := it.ProductID
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		price := decimal.Zero
		if pr, err := uc.priceRepo.Latest(it.ProductID); err == nil && pr != nil {
			price = pr.SellingPrice
		}
		data.Lines = append(data.Lines, ReceiptLine{
			Name:     name,
			Qty:      it.Qty,
			Price:    price,
			Subtotal: price.Mul(decimal.NewFromInt(it.Qty)),
		})
	}
	return uc.receipts.Generate(data)
}
