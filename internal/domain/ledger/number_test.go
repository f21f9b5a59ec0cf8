package ledger_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/ledger"
)

var testDate = time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// FormatNumber
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatNumber_PrefijosPorTipo(t *testing.T) {
	cases := []struct {
		txType string
		want   string
	}{
		{"sale", "SAL-20250309-0001"},
		{"purchase", "PUR-20250309-0001"},
		{"adjustment", "ADJ-20250309-0001"},
	}
	for _, tc := range cases {
		got, err := ledger.FormatNumber(tc.txType, testDate, 1)
		require.NoError(t, err, "tipo %s debe ser válido", tc.txType)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatNumber_ConsecutivoConCuatroDigitos(t *testing.T) {
	got, err := ledger.FormatNumber("sale", testDate, 37)
	require.NoError(t, err)
	assert.Equal(t, "SAL-20250309-0037", got, "el consecutivo se rellena a 4 dígitos")

	got, err = ledger.FormatNumber("sale", testDate, 12345)
	require.NoError(t, err)
	assert.Equal(t, "SAL-20250309-12345", got, "más de 4 dígitos no se trunca")
}

func TestFormatNumber_TipoDesconocido(t *testing.T) {
	_, err := ledger.FormatNumber("transfer", testDate, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTransactionType),
		"tipo desconocido debe envolver ErrUnknownTransactionType")
}

func TestFormatNumber_ConsecutivosCrecientesOrdenanLexicograficamente(t *testing.T) {
	// Los números del mismo día deben quedar en orden con un simple sort de strings.
	var prev string
	for seq := 1; seq <= 20; seq++ {
		got, err := ledger.FormatNumber("sale", testDate, seq)
		require.NoError(t, err)
		if prev != "" {
			assert.Greater(t, got, prev, fmt.Sprintf("seq %d debe ordenar después de seq %d", seq, seq-1))
		}
		prev = got
	}
}
