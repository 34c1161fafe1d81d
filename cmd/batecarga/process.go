package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/export"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/memory"
	infranfe "github.com/jhoicas/BateCarga-api/internal/infrastructure/nfe"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

type processOptions struct {
	xmlFiles  []string
	plates    string
	format    string
	outDir    string
	workers   int
	noteLabel string
}

func newProcessCmd(newLog func() *logger.Logger) *cobra.Command {
	opts := processOptions{}
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Processa XMLs (e planilha de placas) e grava o relatório",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Argumentos posicionales también cuentan como XML (útil con globs del shell).
			opts.xmlFiles = append(opts.xmlFiles, args...)
			return runProcess(cmd.Context(), cmd, opts, newLog())
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&opts.xmlFiles, "xml", nil, "arquivo XML de NF-e (repetível)")
	f.StringVar(&opts.plates, "plates", "", "planilha NF -> placa (.xlsx, .xls, .csv)")
	f.StringVar(&opts.format, "format", "csv", "formato do relatório: csv, xlsx ou pdf")
	f.StringVar(&opts.outDir, "out", ".", "diretório de saída")
	f.IntVar(&opts.workers, "workers", 4, "XMLs lidos em paralelo")
	f.StringVar(&opts.noteLabel, "note-label", export.DefaultNoteLabel, "cabeçalho da coluna de observação (ex.: Romaneio)")
	return cmd
}

func runProcess(ctx context.Context, cmd *cobra.Command, opts processOptions, log *logger.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(opts.xmlFiles) == 0 {
		return errors.New("informe ao menos um --xml")
	}

	svc := batecarga.NewServices(
		memory.NewSessionRepository(),
		infranfe.NewExtractor(),
		spreadsheet.NewReader(),
		batecarga.Options{Workers: opts.workers, NoteLabel: opts.noteLabel, Logger: log},
		export.NewCSVExporter(), export.NewXLSXExporter(), export.NewPDFExporter(),
	)

	sess, err := svc.Sessions.Create(ctx, "")
	if err != nil {
		return err
	}

	files := make([]dto.UploadedFile, 0, len(opts.xmlFiles))
	for _, path := range opts.xmlFiles {
		f, err := readFile(path)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	out := cmd.OutOrStdout()
	ingest, err := svc.Ingest.Ingest(ctx, sess.ID, "", files)
	if err != nil {
		return err
	}
	for _, msg := range ingest.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}
	fmt.Fprintf(out, "%d notas em %d grupos (%d sem itens descartadas)\n",
		ingest.Accepted, len(ingest.Session.Groups), ingest.Discarded)

	if opts.plates != "" {
		f, err := readFile(opts.plates)
		if err != nil {
			return err
		}
		plates, err := svc.Plates.Load(ctx, sess.ID, "", f)
		if err != nil {
			// La conferencia sigue sin placas, como en la pantalla.
			fmt.Fprintf(cmd.ErrOrStderr(), "Planilha de placas: %v\n", err)
		} else {
			fmt.Fprintf(out, "%d placas lidas, %d notas com placa\n", plates.Entries, plates.Applied)
		}
	}

	report, err := svc.Export.Export(ctx, sess.ID, "", opts.format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("criar %s: %w", opts.outDir, err)
	}
	dest := filepath.Join(opts.outDir, report.FileName)
	if err := os.WriteFile(dest, report.Content, 0o644); err != nil {
		return fmt.Errorf("gravar relatório: %w", err)
	}
	fmt.Fprintln(out, dest)
	return nil
}

func readFile(path string) (dto.UploadedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return dto.UploadedFile{}, fmt.Errorf("ler %s: %w", path, err)
	}
	return dto.UploadedFile{Name: filepath.Base(path), Content: content}, nil
}
