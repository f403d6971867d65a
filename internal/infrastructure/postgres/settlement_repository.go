package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo implementación de SettlementRepository sobre PostgreSQL.
// Cada casilla del cuadre es una columna numérica; el upsert suma sobre el
// valor existente en una sola sentencia, así dos ventas concurrentes del
// mismo día nunca se pisan.
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository construye el adaptador del resumen de venta diaria. Pasar pool o tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

// AddTotals suma los montos por casilla y el costo de mercancía al día de la
// sucursal, creando la fila si no existe. Upsert aditivo en una sentencia.
func (r *SettlementRepo) AddTotals(branchID, date string, totals map[entity.Bucket]decimal.Decimal, costOfGoods decimal.Decimal) error {
	query := `
		INSERT INTO daily_settlements (branch_id, day, efectivo_usd, zelle_usd, vales_usd, efectivo_bs, pago_movil_bs, punto_debito_bs, punto_credito_bs, recarga_bs, devoluciones_bs, cost_of_goods, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		ON CONFLICT (branch_id, day) DO UPDATE SET
			efectivo_usd = daily_settlements.efectivo_usd + EXCLUDED.efectivo_usd,
			zelle_usd = daily_settlements.zelle_usd + EXCLUDED.zelle_usd,
			vales_usd = daily_settlements.vales_usd + EXCLUDED.vales_usd,
			efectivo_bs = daily_settlements.efectivo_bs + EXCLUDED.efectivo_bs,
			pago_movil_bs = daily_settlements.pago_movil_bs + EXCLUDED.pago_movil_bs,
			punto_debito_bs = daily_settlements.punto_debito_bs + EXCLUDED.punto_debito_bs,
			punto_credito_bs = daily_settlements.punto_credito_bs + EXCLUDED.punto_credito_bs,
			recarga_bs = daily_settlements.recarga_bs + EXCLUDED.recarga_bs,
			devoluciones_bs = daily_settlements.devoluciones_bs + EXCLUDED.devoluciones_bs,
			cost_of_goods = daily_settlements.cost_of_goods + EXCLUDED.cost_of_goods,
			updated_at = now()`
	args := make([]any, 0, 12)
	args = append(args, branchID, date)
	for _, b := range entity.AllBuckets {
		amount := decimal.Zero
		if v, ok := totals[b]; ok {
			amount = v
		}
		args = append(args, amount.Round(2))
	}
	args = append(args, costOfGoods.Round(2))
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("upsert daily settlement: %w", err)
	}
	return nil
}

// Get retorna el resumen del día, o uno en ceros si aún no hay movimiento.
func (r *SettlementRepo) Get(branchID, date string) (*entity.SettlementSummary, error) {
	query := `
		SELECT branch_id, to_char(day, 'YYYY-MM-DD'), efectivo_usd, zelle_usd, vales_usd, efectivo_bs, pago_movil_bs, punto_debito_bs, punto_credito_bs, recarga_bs, devoluciones_bs, cost_of_goods, updated_at
		FROM daily_settlements WHERE branch_id = $1 AND day = $2`
	summary, err := scanSettlement(r.q.QueryRow(context.Background(), query, branchID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewSettlementSummary(branchID, date), nil
		}
		return nil, fmt.Errorf("get daily settlement: %w", err)
	}
	return summary, nil
}

// GetRange retorna los resúmenes existentes entre dos fechas inclusive.
func (r *SettlementRepo) GetRange(branchID, from, to string) ([]*entity.SettlementSummary, error) {
	query := `
		SELECT branch_id, to_char(day, 'YYYY-MM-DD'), efectivo_usd, zelle_usd, vales_usd, efectivo_bs, pago_movil_bs, punto_debito_bs, punto_credito_bs, recarga_bs, devoluciones_bs, cost_of_goods, updated_at
		FROM daily_settlements WHERE branch_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day`
	rows, err := r.q.Query(context.Background(), query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily settlements: %w", err)
	}
	defer rows.Close()
	var list []*entity.SettlementSummary
	for rows.Next() {
		summary, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily settlement: %w", err)
		}
		list = append(list, summary)
	}
	return list, rows.Err()
}

func scanSettlement(row pgx.Row) (*entity.SettlementSummary, error) {
	var s entity.SettlementSummary
	amounts := make([]decimal.Decimal, len(entity.AllBuckets))
	dest := []any{&s.BranchID, &s.Date}
	for i := range amounts {
		dest = append(dest, &amounts[i])
	}
	dest = append(dest, &s.CostOfGoods, &s.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.Totals = make(map[entity.Bucket]decimal.Decimal, len(entity.AllBuckets))
	for i, b := range entity.AllBuckets {
		s.Totals[b] = amounts[i]
	}
	return &s, nil
}
