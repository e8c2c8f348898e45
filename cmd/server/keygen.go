package main

import (
	"github.com/dom/qna-service/internal/auth"
	"github.com/spf13/cobra"
)

func NewKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a new random TOKEN_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(auth.GenerateKey())
			return nil
		},
	}
}
