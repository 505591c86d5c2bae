package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtm0/ccammeta/internal/annotate"
	"github.com/rtm0/ccammeta/internal/metadata"
)

func newNameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name INPUT",
		Short: "Print the output file name that would be derived for INPUT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			ds, err := annotate.Prepare(a.logger, args[0], opts)
			if err != nil {
				return err
			}
			name, err := metadata.OutputFileName(ds)
			if err != nil {
				return err
			}
			fmt.Fprintln(cc.OutOrStdout(), name)
			return nil
		},
	}
}
