// Package ledger contiene reglas puras del libro de transacciones:
// numeración legible y prefijos por tipo.
package ledger

import (
	"fmt"
	"time"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// prefixByType mapea el tipo de transacción a su prefijo en el número legible.
var prefixByType = map[string]string{
	entity.TransactionSale:       "SAL",
	entity.TransactionPurchase:   "PUR",
	entity.TransactionAdjustment: "ADJ",
}

// Prefix devuelve el prefijo del tipo, o ErrUnknownTransactionType si no existe.
func Prefix(txType string) (string, error) {
	p, ok := prefixByType[txType]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTransactionType, txType)
	}
	return p, nil
}

// FormatNumber arma el número legible PRE-YYYYMMDD-NNNN a partir del tipo,
// la fecha y el consecutivo asignado para ese (tipo, fecha).
func FormatNumber(txType string, date time.Time, seq int) (string, error) {
	prefix, err := Prefix(txType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), seq), nil
}
