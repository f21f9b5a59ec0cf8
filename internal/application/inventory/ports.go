package inventory

import (
	"context"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una transacción de base de datos.
// Si fn retorna error se revierte todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRepository,
	) error) error
}
