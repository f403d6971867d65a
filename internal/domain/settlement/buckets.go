// Package settlement define el mapeo de métodos de pago a las casillas fijas
// del resumen de venta diaria (cuadre de caja).
package settlement

import (
	"strings"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/pkg/textutil"
)

// methodBuckets mapea los métodos de pago que envía el punto de venta a su
// casilla. Las claves se comparan normalizadas (minúsculas, sin acentos ni
// espacios).
var methodBuckets = map[string]entity.Bucket{
	"efectivo_usd":    entity.BucketCashForeign,
	"efectivo_divisa": entity.BucketCashForeign,
	"divisas":         entity.BucketCashForeign,
	"zelle":           entity.BucketWireForeign,
	"zelle_usd":       entity.BucketWireForeign,
	"vales":           entity.BucketVoucherForeign,
	"vales_usd":       entity.BucketVoucherForeign,
	"efectivo":        entity.BucketCashLocal,
	"efectivo_bs":     entity.BucketCashLocal,
	"pago_movil":      entity.BucketMobileLocal,
	"pagomovil":       entity.BucketMobileLocal,
	"punto_debito":    entity.BucketCardDebit,
	"debito":          entity.BucketCardDebit,
	"punto_credito":   entity.BucketCardCredit,
	"credito":         entity.BucketCardCredit,
	"recarga":         entity.BucketTopup,
	"recarga_bs":      entity.BucketTopup,
	"devolucion":      entity.BucketReturns,
	"devoluciones":    entity.BucketReturns,
}

// BucketForMethod resuelve la casilla de un método de pago. Un método no
// reconocido no cae en ninguna casilla: el monto se descarta de los totales y
// el agregador lo registra como advertencia (comportamiento heredado del
// sistema original, preservado a propósito).
func BucketForMethod(method string) (entity.Bucket, bool) {
	key := textutil.Fold(strings.TrimSpace(method))
	key = strings.ReplaceAll(key, " ", "_")
	b, ok := methodBuckets[key]
	return b, ok
}
