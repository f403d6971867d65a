package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateCode     = errors.New("código duplicado en el inventario")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidMargin     = errors.New("porcentaje de utilidad inválido")
	ErrInvalidPayment    = errors.New("pago inválido")
	ErrConflict          = errors.New("conflicto con el estado actual")
)
