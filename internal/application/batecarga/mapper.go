package batecarga

import (
	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
)

func toSessionResponse(s *entity.Session) *dto.SessionResponse {
	groups := make([]dto.GroupResponse, 0, len(s.Groups))
	for i, g := range s.Groups {
		groups = append(groups, toGroupResponse(i, g))
	}
	return &dto.SessionResponse{
		ID:            s.ID,
		OperatorID:    s.OperatorID,
		InvoiceCount:  s.InvoiceCount(),
		ItemCount:     s.ItemCount(),
		TotalValue:    s.TotalValue(),
		XMLFiles:      append([]string{}, s.XMLFileNames...),
		PlateFile:     s.PlateFileName,
		MappedNumbers: len(s.PlateMapping),
		Notices:       append([]string{}, s.Notices...),
		Groups:        groups,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toGroupResponse(index int, g entity.ShipmentGroup) dto.GroupResponse {
	invoices := make([]dto.InvoiceResponse, 0, len(g.Invoices))
	for i, inv := range g.Invoices {
		invoices = append(invoices, toInvoiceResponse(i, inv))
	}
	return dto.GroupResponse{
		Index:           index,
		Key:             g.Key,
		IssuerTradeName: g.IssuerTradeName,
		IssuerName:      g.IssuerName,
		City:            g.City,
		State:           g.State,
		Open:            g.Open,
		Totals: dto.GroupTotalsResponse{
			GrossWeight:  g.Totals.GrossWeight,
			VolumeCount:  g.Totals.VolumeCount,
			Value:        g.Totals.Value,
			InvoiceCount: g.Totals.InvoiceCount,
			ItemCount:    g.Totals.ItemCount,
		},
		Invoices: invoices,
	}
}

func toInvoiceResponse(index int, inv entity.Invoice) dto.InvoiceResponse {
	items := make([]dto.ItemResponse, 0, len(inv.Items))
	for i, it := range inv.Items {
		items = append(items, dto.ItemResponse{
			Index:              i,
			ProductCode:        it.ProductCode,
			ProductDescription: it.ProductDescription,
			UnitOfMeasure:      it.UnitOfMeasure,
			ExpectedQuantity:   it.ExpectedQuantity,
			UnitPrice:          it.UnitPrice,
			TotalValue:         it.TotalValue,
			GrossWeight:        it.GrossWeightItem,
			NetWeight:          it.NetWeightItem,
			SupplementaryNote:  it.SupplementaryNote,
			CheckedQuantity:    it.CheckedQuantity,
			Status:             string(it.Status),
		})
	}
	return dto.InvoiceResponse{
		Index:            index,
		Number:           inv.Number,
		AccessKey:        inv.AccessKey,
		IssueDate:        inv.IssueDate,
		IssuerName:       inv.IssuerName,
		DestinationName:  inv.DestinationName,
		DestinationCity:  inv.DestinationCity,
		DestinationState: inv.DestinationState,
		CarrierName:      inv.CarrierName,
		VolumeCount:      inv.VolumeCount,
		GrossWeight:      inv.GrossWeight,
		NetWeight:        inv.NetWeight,
		TotalValue:       inv.TotalValue,
		Plate:            inv.Plate,
		Observation:      inv.Observation,
		Open:             inv.Open,
		SourceFile:       inv.SourceFile,
		Items:            items,
	}
}

func toSummaryResponse(s entity.SessionSummary) dto.SessionSummaryResponse {
	return dto.SessionSummaryResponse{
		ID:           s.ID,
		OperatorID:   s.OperatorID,
		InvoiceCount: s.InvoiceCount,
		ItemCount:    s.ItemCount,
		TotalValue:   s.TotalValue,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
