package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrPriceMismatch          = errors.New("el total enviado no coincide con los precios vigentes")
	ErrProductInUse           = errors.New("el producto tiene transacciones asociadas")
	ErrUnknownTransactionType = errors.New("tipo de transacción desconocido")
)
