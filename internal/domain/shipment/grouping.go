// Package shipment agrupa notas por emisor (nombre fantasía) y ciudad destino.
package shipment

import "github.com/jhoicas/BateCarga-api/internal/domain/entity"

// KeySeparator separa nombre fantasía y ciudad en la clave del grupo.
const KeySeparator = "||"

// Key construye la clave exacta (sensible a mayúsculas) del grupo.
func Key(tradeName, city string) string {
	return tradeName + KeySeparator + city
}

// Group recorre las notas en el orden recibido y las distribuye en grupos.
// Las notas sin ítems se descartan. El resultado conserva el orden de primera aparición de cada grupo.
func Group(invoices []entity.Invoice) []entity.ShipmentGroup {
	var groups []entity.ShipmentGroup
	index := make(map[string]int)
	for _, inv := range invoices {
		if len(inv.Items) == 0 {
			continue
		}
		key := Key(inv.IssuerTradeName, inv.DestinationCity)
		i, ok := index[key]
		if !ok {
			groups = append(groups, newGroup(key, inv))
			i = len(groups) - 1
			index[key] = i
		}
		Append(&groups[i], inv)
	}
	return groups
}

func newGroup(key string, inv entity.Invoice) entity.ShipmentGroup {
	return entity.ShipmentGroup{
		Key:             key,
		IssuerTradeName: inv.IssuerTradeName,
		IssuerName:      inv.IssuerName,
		City:            inv.DestinationCity,
		State:           inv.DestinationState,
		Open:            true,
	}
}

// Append agrega la nota al grupo y actualiza los totales de forma incremental.
func Append(g *entity.ShipmentGroup, inv entity.Invoice) {
	g.Invoices = append(g.Invoices, inv)
	g.Totals.GrossWeight = g.Totals.GrossWeight.Add(inv.GrossWeight)
	g.Totals.VolumeCount = g.Totals.VolumeCount.Add(inv.VolumeCount)
	g.Totals.Value = g.Totals.Value.Add(inv.TotalValue)
	g.Totals.InvoiceCount++
	g.Totals.ItemCount += len(inv.Items)
}

// Recompute recalcula los totales desde cero; sirve para verificar que los acumulados siguen consistentes.
func Recompute(g entity.ShipmentGroup) entity.GroupTotals {
	var t entity.GroupTotals
	for _, inv := range g.Invoices {
		t.GrossWeight = t.GrossWeight.Add(inv.GrossWeight)
		t.VolumeCount = t.VolumeCount.Add(inv.VolumeCount)
		t.Value = t.Value.Add(inv.TotalValue)
		t.InvoiceCount++
		t.ItemCount += len(inv.Items)
	}
	return t
}
