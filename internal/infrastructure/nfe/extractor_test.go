package nfe_test

import (
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/nfe"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestExtract_NotaAutorizada(t *testing.T) {
	content, err := os.ReadFile("testdata/nfe_proc.xml")
	require.NoError(t, err)

	inv, err := nfe.NewExtractor().Extract("nfe_proc.xml", content)
	require.NoError(t, err)

	assert.Equal(t, "000123", inv.Number)
	assert.Equal(t, "07/10/2024", inv.IssueDate)
	assert.Equal(t, "ACME ALIMENTOS LTDA", inv.IssuerName)
	assert.Equal(t, "ACME", inv.IssuerTradeName)
	assert.Equal(t, "MERCADO BOM PRECO", inv.DestinationName)
	assert.Equal(t, "Campinas", inv.DestinationCity)
	assert.Equal(t, "SP", inv.DestinationState)
	assert.Equal(t, "TRANSPORTES RAPIDO", inv.CarrierName)
	assert.Equal(t, "35241012345678000199550010000001231000001234", inv.AccessKey)
	assert.Equal(t, "nfe_proc.xml", inv.SourceFile)
	assert.True(t, dec("3").Equal(inv.VolumeCount))
	assert.True(t, dec("15.25").Equal(inv.GrossWeight))
	assert.True(t, dec("14.5").Equal(inv.NetWeight))
	assert.True(t, dec("445").Equal(inv.TotalValue))
	assert.Empty(t, inv.Plate)
	assert.False(t, inv.Open)

	require.Len(t, inv.Items, 2)
	first := inv.Items[0]
	assert.Equal(t, "P-01", first.ProductCode)
	assert.Equal(t, "QUEIJO MUSSARELA", first.ProductDescription)
	assert.Equal(t, "KG", first.UnitOfMeasure)
	assert.Equal(t, "10.0000", first.ExpectedQuantityText)
	assert.True(t, dec("10").Equal(first.ExpectedQuantity))
	assert.True(t, dec("35.5").Equal(first.UnitPrice))
	assert.True(t, dec("355").Equal(first.TotalValue))
	assert.Equal(t, "12 CX", first.SupplementaryNote)
	assert.True(t, first.GrossWeightItem.IsZero(), "sin pesoB en el ítem queda en cero")

	second := inv.Items[1]
	assert.True(t, dec("4.5").Equal(second.ExpectedQuantity), "qCom con coma decimal")
	assert.True(t, dec("4.7").Equal(second.GrossWeightItem))
	assert.True(t, dec("4.5").Equal(second.NetWeightItem))
}

func TestExtract_NotaMinimaSinNamespace(t *testing.T) {
	xml := `<NFe><infNFe><ide><nNF>77</nNF></ide>
		<emit><xNome>BETA SA</xNome></emit>
		<det><prod><cProd>X</cProd><qtd>2</qtd></prod></det>
	</infNFe></NFe>`

	inv, err := nfe.NewExtractor().Extract("min.xml", []byte(xml))
	require.NoError(t, err)

	assert.Equal(t, "77", inv.Number)
	assert.Equal(t, "BETA SA", inv.IssuerTradeName, "sin xFant se usa xNome")
	assert.Empty(t, inv.IssueDate)
	assert.Empty(t, inv.AccessKey)
	assert.True(t, inv.VolumeCount.IsZero())
	assert.True(t, inv.GrossWeight.IsZero())
	assert.True(t, inv.TotalValue.IsZero())
	require.Len(t, inv.Items, 1)
	assert.True(t, dec("2").Equal(inv.Items[0].ExpectedQuantity), "qtd como alternativa a qCom")
}

func TestExtract_DetSinProdYvNFSuelto(t *testing.T) {
	xml := `<nfe:NFe xmlns:nfe="http://www.portalfiscal.inf.br/nfe"><nfe:infNFe>
		<nfe:dhEmi>2023-01-31</nfe:dhEmi>
		<nfe:det><nfe:cProd>SOLO</nfe:cProd><nfe:qCom>abc</nfe:qCom></nfe:det>
		<nfe:vNF>12.34</nfe:vNF>
	</nfe:infNFe></nfe:NFe>`

	inv, err := nfe.NewExtractor().Extract("pref.xml", []byte(xml))
	require.NoError(t, err)

	assert.Equal(t, "31/01/2023", inv.IssueDate)
	assert.True(t, dec("12.34").Equal(inv.TotalValue))
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "SOLO", inv.Items[0].ProductCode)
	assert.True(t, inv.Items[0].ExpectedQuantity.IsZero(), "cantidad no numérica es cero")
}

func TestExtract_ISO88591(t *testing.T) {
	content := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><NFe><infNFe><enderDest><xMun>S`), 0xE3)
	content = append(content, []byte(`o Paulo</xMun></enderDest></infNFe></NFe>`)...)

	inv, err := nfe.NewExtractor().Extract("latin1.xml", content)
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", inv.DestinationCity)
}

func TestExtract_XMLMalformado(t *testing.T) {
	_, err := nfe.NewExtractor().Extract("rota.xml", []byte(`<NFe><ide><nNF>1</nNF></ide`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)

	var fileErr *domain.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "rota.xml", fileErr.Name)
	assert.Contains(t, err.Error(), "Erro em rota.xml")
}

func TestExtract_SinElementoRaiz(t *testing.T) {
	_, err := nfe.NewExtractor().Extract("vacio.xml", []byte(``))
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}
