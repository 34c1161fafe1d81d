// Package nfe extrae notas fiscales (NF-e) desde el XML autorizado o el XML de la nota sola.
package nfe

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	pkgnfe "github.com/jhoicas/BateCarga-api/pkg/nfe"
	"github.com/jhoicas/BateCarga-api/pkg/xmltag"
)

// Extractor convierte el contenido de un archivo XML en una entity.Invoice.
// No guarda estado: se puede usar desde varias goroutines a la vez.
type Extractor struct{}

// NewExtractor construye el extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract interpreta el XML. Solo un XML mal formado es error; las etiquetas de negocio
// ausentes quedan vacías o en cero. El error devuelto es *domain.FileError con ErrMalformedDocument.
func (e *Extractor) Extract(name string, content []byte) (*entity.Invoice, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, &domain.FileError{Name: name, Err: fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)}
	}
	if doc.Root() == nil {
		return nil, &domain.FileError{Name: name, Err: fmt.Errorf("%w: documento vacío", domain.ErrMalformedDocument)}
	}

	top := &doc.Element
	root := xmltag.FindFirst(top, "infNFe")
	if root == nil {
		root = top
	}

	inv := &entity.Invoice{SourceFile: name}

	// ── 1. Cabecera ──
	ide := xmltag.FindFirst(root, "ide")
	inv.Number = text(ide, "nNF")
	if inv.Number == "" {
		inv.Number = text(top, "nNF")
	}
	issued := text(ide, "dhEmi")
	if issued == "" {
		issued = text(root, "dhEmi")
	}
	if issued == "" {
		// NF-e 3.10 y anteriores traen solo la fecha en dEmi.
		issued = text(ide, "dEmi")
	}
	inv.IssueDate = pkgnfe.FormatIssueDate(issued)

	emit := xmltag.FindFirst(root, "emit")
	inv.IssuerName = text(emit, "xNome")
	inv.IssuerTradeName = text(emit, "xFant")
	if inv.IssuerTradeName == "" {
		inv.IssuerTradeName = inv.IssuerName
	}

	dest := xmltag.FindFirst(root, "dest")
	inv.DestinationName = text(dest, "xNome")
	enderDest := xmltag.FindFirst(root, "enderDest")
	inv.DestinationCity = text(enderDest, "xMun")
	inv.DestinationState = text(enderDest, "UF")

	inv.CarrierName = text(xmltag.FindFirst(root, "transporta"), "xNome")

	// ── 2. Volúmenes y pesos de la nota ──
	vol := xmltag.FindFirst(root, "vol")
	if vol == nil {
		vol = xmltag.FindFirst(xmltag.FindFirst(root, "transp"), "vol")
	}
	if vol != nil {
		inv.VolumeCount = number(vol, "qVol")
		inv.GrossWeight = number(vol, "pesoB")
		inv.NetWeight = number(vol, "pesoL")
	}

	// ── 3. Total de la nota ──
	totals := xmltag.FindFirst(root, "ICMSTot")
	if totals == nil {
		totals = xmltag.FindFirst(root, "total")
	}
	if totals != nil {
		inv.TotalValue = number(totals, "vNF")
	} else {
		inv.TotalValue = number(root, "vNF")
	}

	// ── 4. Ítems ──
	for _, det := range xmltag.FindAll(root, "det") {
		inv.Items = append(inv.Items, extractItem(det))
	}

	// ── 5. Protocolo de autorización ──
	if prot := xmltag.FindFirst(top, "protNFe"); prot != nil {
		inv.AccessKey = text(prot, "chNFe")
	}

	return inv, nil
}

func extractItem(det *etree.Element) entity.LineItem {
	prod := xmltag.FindFirst(det, "prod")
	if prod == nil {
		prod = det
	}
	qty := text(prod, "qCom")
	if qty == "" {
		qty = text(prod, "qtd")
	}
	return entity.LineItem{
		ProductCode:          text(prod, "cProd"),
		ProductDescription:   text(prod, "xProd"),
		UnitOfMeasure:        text(prod, "uCom"),
		ExpectedQuantityText: qty,
		ExpectedQuantity:     pkgnfe.ParseDecimal(qty),
		UnitPrice:            number(prod, "vUnCom"),
		TotalValue:           number(prod, "vProd"),
		SupplementaryNote:    text(det, "infAdProd"),
		GrossWeightItem:      number(prod, "pesoB"),
		NetWeightItem:        number(prod, "pesoL"),
	}
}

func text(node *etree.Element, localName string) string {
	return strings.TrimSpace(xmltag.FindFirstText(node, localName))
}

func number(node *etree.Element, localName string) decimal.Decimal {
	return pkgnfe.ParseDecimal(xmltag.FindFirstText(node, localName))
}

// charsetReader acepta XML declarado en ISO-8859-1 o Windows-1252, frecuente en emisores antiguos.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "", "UTF-8", "UTF8":
		return input, nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", label)
	}
}
