package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mockapi/internal/mockgen"
)

// newTypesCmd builds "mockapi types".
func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the field types the generator recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range mockgen.Types() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
