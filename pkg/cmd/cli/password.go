package cli

import (
	"fmt"
	"os"

	"github.com/nsyszr/decoderfleet/pkg/auth"
	"github.com/spf13/cobra"
)

type PasswordHandler struct{}

func newPasswordHandler() *PasswordHandler {
	return &PasswordHandler{}
}

// Hash prints the Argon2id hash to put into OPERATOR_PASSWORD_HASH.
func (h *PasswordHandler) Hash(cmd *cobra.Command, args []string) {
	if len(args) != 1 || args[0] == "" {
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	}

	hash, err := auth.HashPassword(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
}
