package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
// Los mensajes visibles al operador van en portugués: la herramienta se usa en expedición en Brasil.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	ErrMalformedDocument    = errors.New("XML malformado")
	ErrNoItemsFound         = errors.New("Nenhum item válido encontrado.")
	ErrPreconditionFailed   = errors.New("Carregue os XMLs antes de carregar a planilha de placas.")
	ErrColumnsNotFound      = errors.New("Não foi possível encontrar as colunas de NF e Placa")
	ErrEmptyMapping         = errors.New("Nenhuma linha de dados válida (NF e Placa) foi encontrada na planilha.")
	ErrUnsupportedExtension = errors.New("Formato de arquivo não suportado")
	ErrNothingToExport      = errors.New("Nenhum dado para exportar.")
)

// FileError asocia un error de lectura a un archivo del lote.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("Erro em %s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ColumnsNotFoundError conserva los encabezados tal como se leyeron de la planilla.
type ColumnsNotFoundError struct {
	Headers []string
}

func (e *ColumnsNotFoundError) Error() string {
	return fmt.Sprintf("%s. Cabeçalhos lidos: [%s]", ErrColumnsNotFound.Error(), strings.Join(e.Headers, ", "))
}

func (e *ColumnsNotFoundError) Is(target error) bool { return target == ErrColumnsNotFound }
