package shipment_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/shipment"
)

func invoice(number, trade, city string, items int, peso, vol, valor int64) entity.Invoice {
	inv := entity.Invoice{
		Number:          number,
		IssuerName:      trade + " LTDA",
		IssuerTradeName: trade,
		DestinationCity: city,
		GrossWeight:     decimal.NewFromInt(peso),
		VolumeCount:     decimal.NewFromInt(vol),
		TotalValue:      decimal.NewFromInt(valor),
	}
	for i := 0; i < items; i++ {
		inv.Items = append(inv.Items, entity.LineItem{ProductCode: "P"})
	}
	return inv
}

func TestGroup_MismoEmisorYCiudad(t *testing.T) {
	groups := shipment.Group([]entity.Invoice{
		invoice("1", "ACME", "São Paulo", 2, 10, 1, 100),
		invoice("2", "ACME", "São Paulo", 3, 5, 2, 50),
	})

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "ACME||São Paulo", g.Key)
	assert.True(t, g.Open, "un grupo nuevo nace expandido")
	assert.Equal(t, 2, g.Totals.InvoiceCount)
	assert.Equal(t, 5, g.Totals.ItemCount)
	assert.True(t, decimal.NewFromInt(15).Equal(g.Totals.GrossWeight))
	assert.True(t, decimal.NewFromInt(3).Equal(g.Totals.VolumeCount))
	assert.True(t, decimal.NewFromInt(150).Equal(g.Totals.Value))
	assert.False(t, g.Invoices[0].Open, "las notas nacen colapsadas")
}

func TestGroup_CiudadesDistintasSeparan(t *testing.T) {
	groups := shipment.Group([]entity.Invoice{
		invoice("1", "ACME", "Campinas", 1, 1, 1, 1),
		invoice("2", "ACME", "Santos", 1, 1, 1, 1),
		invoice("3", "ACME", "Campinas", 1, 1, 1, 1),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "ACME||Campinas", groups[0].Key)
	assert.Equal(t, []string{"1", "3"}, []string{groups[0].Invoices[0].Number, groups[0].Invoices[1].Number})
	assert.Equal(t, "ACME||Santos", groups[1].Key)
}

func TestGroup_ClaveSensibleAMayusculas(t *testing.T) {
	groups := shipment.Group([]entity.Invoice{
		invoice("1", "Acme", "Santos", 1, 1, 1, 1),
		invoice("2", "ACME", "Santos", 1, 1, 1, 1),
	})
	assert.Len(t, groups, 2)
}

func TestGroup_DescartaNotasSinItems(t *testing.T) {
	groups := shipment.Group([]entity.Invoice{
		invoice("1", "ACME", "Santos", 0, 1, 1, 1),
	})
	assert.Empty(t, groups)
}

func TestGroup_TotalesConsistentes(t *testing.T) {
	in := []entity.Invoice{
		invoice("1", "ACME", "Santos", 2, 7, 1, 10),
		invoice("2", "BETA", "Santos", 1, 3, 4, 20),
		invoice("3", "ACME", "Santos", 4, 9, 2, 30),
	}
	for _, g := range shipment.Group(in) {
		want := shipment.Recompute(g)
		assert.True(t, want.GrossWeight.Equal(g.Totals.GrossWeight), g.Key)
		assert.True(t, want.VolumeCount.Equal(g.Totals.VolumeCount), g.Key)
		assert.True(t, want.Value.Equal(g.Totals.Value), g.Key)
		assert.Equal(t, want.InvoiceCount, g.Totals.InvoiceCount)
		assert.Equal(t, want.ItemCount, g.Totals.ItemCount)
	}
}

func TestGroup_Deterministico(t *testing.T) {
	in := []entity.Invoice{
		invoice("1", "ACME", "Santos", 2, 7, 1, 10),
		invoice("2", "BETA", "Santos", 1, 3, 4, 20),
	}
	assert.Equal(t, shipment.Group(in), shipment.Group(in))
}
