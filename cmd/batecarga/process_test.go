package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe"><NFe><infNFe>
<ide><nNF>321</nNF></ide>
<emit><xNome>ACME LTDA</xNome></emit>
<dest><enderDest><xMun>Santos</xMun></enderDest></dest>
<det nItem="1"><prod><cProd>P9</cProd><qCom>2</qCom></prod></det>
</infNFe></NFe></nfeProc>`

func TestProcess_GeneraReporteConPlacas(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "nota.xml")
	platesPath := filepath.Join(dir, "placas.csv")
	require.NoError(t, os.WriteFile(xmlPath, []byte(sampleXML), 0o644))
	require.NoError(t, os.WriteFile(platesPath, []byte("Placa;NF\nqwe4r56;321\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"process", "--xml", xmlPath, "--plates", platesPath, "--out", dir})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1 notas em 1 grupos (0 sem itens descartadas)", lines[0])
	assert.Equal(t, "1 placas lidas, 1 notas com placa", lines[1])

	report, err := os.ReadFile(lines[2])
	require.NoError(t, err)
	assert.Contains(t, string(report), `"QWE4R56"`)
	assert.Contains(t, string(report), `"ACME LTDA"`)
}

func TestProcess_SinXMLEsError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"process"})
	assert.Error(t, cmd.Execute())
}
