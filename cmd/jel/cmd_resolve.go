package main

import (
	"fmt"

	"github.com/dhamidi/jel/format"
	"github.com/spf13/cobra"
)

func newResolveCmd(opts *envOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <type>...",
		Short: "Resolve type expressions and print their type arguments and supertypes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.load()
			if err != nil {
				return err
			}
			enc, err := opts.encoder(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, expr := range args {
				c, err := env.resolve(expr)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", expr, err)
				}
				if err := enc.Encode(format.Report{Class: c}); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			return nil
		},
	}
}
