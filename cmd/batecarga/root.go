package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "batecarga",
		Short: "Conferência de carga a partir de NF-e (XML)",
		Long: `batecarga lê um lote de NF-e, agrupa por emitente e cidade, cruza a planilha
de placas e exporta o relatório de conferência (CSV, XLSX ou PDF).

Exemplos:
  batecarga process --xml a.xml --xml b.xml --plates placas.xlsx --format xlsx
  batecarga token --operator op-01 --role supervisor`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log em nível debug")

	newLog := func() *logger.Logger {
		level := "warn"
		if verbose {
			level = "debug"
		}
		return logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
	}

	root.AddCommand(newProcessCmd(newLog), newTokenCmd())
	return root
}
