package cashier

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un almacén compartido con semántica de rollback en TxRunner
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products map[string]*entity.Product
	prices   map[string][]*entity.Price
	stocks   []*entity.StockEntry
	txs      map[string]*entity.Transaction
	items    []*entity.TransactionItem
	counters map[string]int
	locked   []string // productos bloqueados, en orden de llamada
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		prices:   map[string][]*entity.Price{},
		txs:      map[string]*entity.Transaction{},
		counters: map[string]int{},
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.prices {
		cp.prices[k] = append([]*entity.Price(nil), v...)
	}
	cp.stocks = append([]*entity.StockEntry(nil), s.stocks...)
	for k, v := range s.txs {
		cp.txs[k] = v
	}
	cp.items = append([]*entity.TransactionItem(nil), s.items...)
	for k, v := range s.counters {
		cp.counters[k] = v
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.prices = from.prices
	s.stocks = from.stocks
	s.txs = from.txs
	s.items = from.items
	s.counters = from.counters
}

func (s *memStore) currentStock(productID string) int64 {
	var sum int64
	for _, e := range s.stocks {
		if e.ProductID == productID {
			sum += e.Qty
		}
	}
	return sum
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) List(repository.ProductFilter) ([]*repository.ProductWithStock, int, error) {
	return nil, 0, nil
}
func (r *memProductRepo) SoftDelete(id, _ string) error {
	if p := r.s.products[id]; p != nil {
		p.IsActive = false
	}
	return nil
}
func (r *memProductRepo) CountLedgerEntries(productID string) (int, error) {
	n := 0
	for _, e := range r.s.stocks {
		if e.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type memPriceRepo struct{ s *memStore }

func (r *memPriceRepo) Insert(p *entity.Price) error {
	r.s.prices[p.ProductID] = append(r.s.prices[p.ProductID], p)
	return nil
}
func (r *memPriceRepo) Latest(productID string) (*entity.Price, error) {
	rows := r.s.prices[productID]
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[len(rows)-1], nil
}
func (r *memPriceRepo) LatestByProducts(ids []string) (map[string]*entity.Price, error) {
	out := map[string]*entity.Price{}
	for _, id := range ids {
		p, _ := r.Latest(id)
		if p != nil {
			out[id] = p
		}
	}
	return out, nil
}

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Append(e *entity.StockEntry) error {
	r.s.stocks = append(r.s.stocks, e)
	return nil
}
func (r *memStockRepo) CurrentStock(productID string) (int64, error) {
	return r.s.currentStock(productID), nil
}
func (r *memStockRepo) CurrentStockForUpdate(productID string) (int64, error) {
	if r.s.products[productID] == nil {
		return 0, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	r.s.locked = append(r.s.locked, productID)
	return r.s.currentStock(productID), nil
}
func (r *memStockRepo) HistoryByProduct(string) ([]*repository.StockHistoryRow, error) {
	return nil, nil
}

type memTxRepo struct{ s *memStore }

func (r *memTxRepo) Create(t *entity.Transaction) error {
	for _, existing := range r.s.txs {
		if existing.No == t.No {
			return fmt.Errorf("%w: número %s", domain.ErrDuplicate, t.No)
		}
	}
	r.s.txs[t.ID] = t
	return nil
}
func (r *memTxRepo) CreateItem(it *entity.TransactionItem) error {
	r.s.items = append(r.s.items, it)
	return nil
}
func (r *memTxRepo) GetByID(id string) (*entity.Transaction, error) { return r.s.txs[id], nil }
func (r *memTxRepo) ItemsByTransaction(transactionID string) ([]*entity.TransactionItem, error) {
	var out []*entity.TransactionItem
	for _, it := range r.s.items {
		if it.TransactionID == transactionID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *memTxRepo) List(repository.TransactionFilter) ([]*repository.TransactionListRow, int, error) {
	return nil, 0, nil
}
func (r *memTxRepo) NextSequence(txType string, date time.Time) (int, error) {
	key := txType + "|" + date.Format("2006-01-02")
	r.s.counters[key]++
	return r.s.counters[key], nil
}

// memTxRunner toma una instantánea del almacén y la restaura si fn falla,
// imitando el rollback de una transacción real.
type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
) error) error {
	snap := tr.s.snapshot()
	err := fn(&memTxRepo{tr.s}, &memStockRepo{tr.s}, &memProductRepo{tr.s}, &memPriceRepo{tr.s})
	if err != nil {
		tr.s.restore(snap)
	}
	return err
}

type noopReceipts struct{}

func (noopReceipts) Generate(ReceiptData) ([]byte, error) { return []byte("%PDF"), nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newTestUseCase(s *memStore) *CheckoutUseCase {
	return NewCheckoutUseCase(
		&memTxRunner{s},
		&memProductRepo{s},
		&memPriceRepo{s},
		&memTxRepo{s},
		noopReceipts{},
	)
}

// seedProduct crea un producto con precio de venta y movimientos de stock.
func seedProduct(s *memStore, id, name string, sellingPrice string, deltas ...int64) {
	s.products[id] = &entity.Product{ID: id, Name: name, UnitID: "pcs", IsActive: true}
	s.prices[id] = []*entity.Price{{
		ID:            id + "-price",
		ProductID:     id,
		PurchasePrice: decimal.RequireFromString(sellingPrice).Div(decimal.NewFromInt(2)),
		SellingPrice:  decimal.RequireFromString(sellingPrice),
	}}
	for i, d := range deltas {
		s.stocks = append(s.stocks, &entity.StockEntry{
			ID:        fmt.Sprintf("%s-seed-%d", id, i),
			ProductID: id,
			Qty:       d,
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

// Escenario completo: [+50, -3] deja 47 disponibles; vender 48 falla sin tocar
// el libro; vender 47 descuenta todo y deja el stock en cero.
func TestCheckout_EscenarioStockExacto(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Café", "10.00", 50, -3)
	uc := newTestUseCase(s)

	require.Equal(t, int64(47), s.currentStock("p1"), "la suma del libro debe dar 47")
	ledgerBefore := len(s.stocks)

	// Pedir 48 con 47 disponibles debe fallar.
	_, err := uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
		Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 48}},
		TotalPrice:    decimal.RequireFromString("480.00"),
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, s.stocks, ledgerBefore, "el rechazo no debe dejar filas en el libro")
	assert.Empty(t, s.txs, "el rechazo no debe dejar cabeceras")
	assert.Equal(t, int64(47), s.currentStock("p1"), "el stock no debe cambiar tras el rechazo")

	// Pedir exactamente 47 debe pasar y agotar el stock.
	out, err := uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
		Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 47}},
		TotalPrice:    decimal.RequireFromString("470.00"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.currentStock("p1"), "vender todo debe dejar el stock en cero")
	assert.Len(t, s.stocks, ledgerBefore+1, "la venta agrega exactamente una fila por línea")
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("470.00")))
}

func TestCheckout_NumeroConFormatoYConsecutivo(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Café", "10.00", 100)
	uc := newTestUseCase(s)

	var nos []string
	for i := 0; i < 3; i++ {
		out, err := uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
			Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 1}},
			TotalPrice:    decimal.RequireFromString("10.00"),
			PaymentMethod: entity.PaymentQRIS,
		})
		require.NoError(t, err)
		nos = append(nos, out.TransactionNo)
	}

	today := time.Now().Format("20060102")
	assert.Equal(t, "SAL-"+today+"-0001", nos[0], "la primera venta del día arranca en 0001")
	assert.Equal(t, "SAL-"+today+"-0002", nos[1])
	assert.Equal(t, "SAL-"+today+"-0003", nos[2], "los consecutivos del día no deben saltar")
}

func TestCheckout_PrecioManipuladoRechazado(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Café", "10.00", 50)
	uc := newTestUseCase(s)
	ledgerBefore := len(s.stocks)

	// El cliente manda 5.00 por unidades que valen 10.00.
	_, err := uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
		Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 2}},
		TotalPrice:    decimal.RequireFromString("10.00"),
		PaymentMethod: entity.PaymentCash,
	})

	assert.ErrorIs(t, err, domain.ErrPriceMismatch, "el servidor debe recalcular y rechazar el total enviado")
	assert.Len(t, s.stocks, ledgerBefore, "el rechazo de precio no debe tocar el libro")
	assert.Empty(t, s.txs)
}

func TestCheckout_ToleranciaDeUnCentavo(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Café", "10.00", 50)
	uc := newTestUseCase(s)

	// Redondeo del frontend: un centavo de diferencia se acepta.
	_, err := uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
		Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 1}},
		TotalPrice:    decimal.RequireFromString("10.01"),
		PaymentMethod: entity.PaymentCash,
	})
	assert.NoError(t, err, "un centavo de diferencia entra en la tolerancia")

	// Dos centavos ya no.
	_, err = uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
		Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 1}},
		TotalPrice:    decimal.RequireFromString("10.02"),
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrPriceMismatch)
}

func TestCheckout_ValidacionesDeCarrito(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Café", "10.00", 50)
	uc := newTestUseCase(s)

	casos := []struct {
		nombre string
		in     dto.CheckoutRequest
		want   error
	}{
		{
			nombre: "carrito vacío",
			in: dto.CheckoutRequest{
				PaymentMethod: entity.PaymentCash,
			},
			want: domain.ErrInvalidInput,
		},
		{
			nombre: "cantidad cero",
			in: dto.CheckoutRequest{
				Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 0}},
				PaymentMethod: entity.PaymentCash,
			},
			want: domain.ErrInvalidInput,
		},
		{
			nombre: "producto repetido",
			in: dto.CheckoutRequest{
				Products: []dto.CheckoutItem{
					{ProductID: "p1", Qty: 1},
					{ProductID: "p1", Qty: 2},
				},
				PaymentMethod: entity.PaymentCash,
			},
			want: domain.ErrInvalidInput,
		},
		{
			nombre: "producto inexistente",
			in: dto.CheckoutRequest{
				Products:      []dto.CheckoutItem{{ProductID: "nope", Qty: 1}},
				PaymentMethod: entity.PaymentCash,
			},
			want: domain.ErrNotFound,
		},
		{
			nombre: "método de pago desconocido",
			in: dto.CheckoutRequest{
				Products:      []dto.CheckoutItem{{ProductID: "p1", Qty: 1}},
				PaymentMethod: "cheque",
			},
			want: domain.ErrInvalidInput,
		},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := uc.Checkout(context.Background(), "user1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCheckout_VentaMultilinea(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Café", "10.00", 20)
	seedProduct(s, "p2", "Pan", "2.50", 30)
	uc := newTestUseCase(s)

	out, err := uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
		Products: []dto.CheckoutItem{
			{ProductID: "p1", Qty: 2},
			{ProductID: "p2", Qty: 4},
		},
		TotalPrice:    decimal.RequireFromString("30.00"), // 2*10 + 4*2.50
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(18), s.currentStock("p1"))
	assert.Equal(t, int64(26), s.currentStock("p2"))
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("30.00")))

	// Todas las filas nuevas del libro son negativas y cuelgan de la venta.
	for _, e := range s.stocks[2:] {
		assert.Negative(t, e.Qty, "las ventas solo agregan descuentos")
		assert.Equal(t, out.TransactionID, e.TransactionID)
	}
}

// Dos checkouts concurrentes con los mismos productos en distinto orden pueden
// esperarse en cruz si los bloqueos siguen el orden del carrito; por eso se
// toman siempre en orden de ID.
func TestCheckout_BloqueaProductosEnOrdenDeID(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p3", "Pan", "10.00", 10)
	seedProduct(s, "p1", "Café", "10.00", 10)
	seedProduct(s, "p2", "Leche", "10.00", 10)
	uc := newTestUseCase(s)

	_, err := uc.Checkout(context.Background(), "user1", dto.CheckoutRequest{
		Products: []dto.CheckoutItem{
			{ProductID: "p3", Qty: 1},
			{ProductID: "p1", Qty: 1},
			{ProductID: "p2", Qty: 1},
		},
		TotalPrice:    decimal.RequireFromString("30.00"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2", "p3"}, s.locked,
		"los bloqueos siguen el orden de ID, no el del carrito")
}

// ──────────────────────────────────────────────────────────────────────────────
// ReviewOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestReviewOrder_CotizaSinTocarElLibro(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Café", "10.00", 5)
	uc := newTestUseCase(s)
	ledgerBefore := len(s.stocks)

	out, err := uc.ReviewOrder(context.Background(), dto.ReviewOrderRequest{
		Products: []dto.CheckoutItem{{ProductID: "p1", Qty: 3}},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, []string{entity.PaymentCash, entity.PaymentQRIS}, out.PaymentMethods)
	require.Len(t, out.Products, 1)
	assert.True(t, out.Products[0].Subtotal.Equal(decimal.RequireFromString("30.00")))
	assert.Len(t, s.stocks, ledgerBefore, "cotizar no escribe en el libro")
}

func TestReviewOrder_ProductoSinPrecioRechazado(t *testing.T) {
	s := newMemStore()
	s.products["p1"] = &entity.Product{ID: "p1", Name: "Nuevo", IsActive: true}
	uc := newTestUseCase(s)

	_, err := uc.ReviewOrder(context.Background(), dto.ReviewOrderRequest{
		Products: []dto.CheckoutItem{{ProductID: "p1", Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin precio vigente no se puede cotizar")
}
