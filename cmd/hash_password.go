package cmd

import "github.com/spf13/cobra"

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print an Argon2id hash for OPERATOR_PASSWORD_HASH",
	Run:   cmdHandler.Password.Hash,
}

func init() {
	RootCmd.AddCommand(hashPasswordCmd)
}
