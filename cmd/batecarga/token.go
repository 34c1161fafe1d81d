package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/BateCarga-api/pkg/config"
	"github.com/jhoicas/BateCarga-api/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var operator, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite um JWT de operador para a API (usa JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.JWT.Enabled() {
				return errors.New("JWT_SECRET não configurado: a API está sem autenticação")
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, operator, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "", "ID do operador")
	cmd.Flags().StringVar(&role, "role", "conferente", "conferente ou supervisor")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}
