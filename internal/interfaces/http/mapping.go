package http

import (
	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/application/dto"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
)

func toRecordResponse(rec *entity.InventoryRecord) dto.InventoryRecordResponse {
	out := dto.InventoryRecordResponse{
		ID:            rec.ID,
		BranchID:      rec.BranchID,
		Code:          rec.Code,
		Name:          rec.Name,
		Description:   rec.Description,
		Brand:         rec.Brand,
		Quantity:      rec.Quantity,
		Cost:          rec.Cost,
		Price:         rec.Price,
		Profit:        rec.Profit,
		MarginPercent: rec.MarginPercent,
		Status:        rec.Status,
	}
	for _, lot := range rec.Lots {
		lr := dto.LotResponse{Quantity: lot.Quantity, UnitCost: lot.UnitCost}
		if lot.Expiry != nil {
			lr.Expiry = lot.Expiry.Format("2006-01-02")
		}
		out.Lots = append(out.Lots, lr)
	}
	return out
}

func toPurchaseResponse(p *entity.Purchase, utilities []decimal.Decimal) dto.PurchaseResponse {
	out := dto.PurchaseResponse{
		ID:            p.ID,
		BranchID:      p.BranchID,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		InvoiceNumber: p.InvoiceNumber,
		Date:          p.Date,
		Total:         p.Total,
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
	}
	for i, item := range p.Items {
		ir := dto.PurchaseItemResponse{
			ProductID: item.ProductID,
			Code:      item.Code,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			LineTotal: item.LineTotal,
		}
		if i < len(utilities) {
			ir.EstimatedUtility = utilities[i]
		}
		out.Items = append(out.Items, ir)
	}
	return out
}

func toSaleResponse(sale *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:          sale.ID,
		BranchID:    sale.BranchID,
		Date:        sale.Date,
		Total:       sale.Total,
		CostOfGoods: sale.CostOfGoods,
		Status:      sale.Status,
	}
	for _, item := range sale.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: item.ProductID,
			Code:      item.Code,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	for _, p := range sale.Payments {
		out.Payments = append(out.Payments, dto.PaymentRequest{Method: p.Method, Amount: p.Amount, BankRef: p.BankRef})
	}
	return out
}

func toSummaryResponse(s *entity.SettlementSummary) dto.SettlementSummaryResponse {
	out := dto.SettlementSummaryResponse{
		BranchID:    s.BranchID,
		Date:        s.Date,
		Totals:      make(map[string]decimal.Decimal, len(s.Totals)),
		CostOfGoods: s.CostOfGoods,
		NetSales:    s.NetSales(),
	}
	for b, v := range s.Totals {
		out.Totals[string(b)] = v
	}
	return out
}
