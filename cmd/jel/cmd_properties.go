package main

import (
	"github.com/dhamidi/jel/element"
	"github.com/dhamidi/jel/format"
	"github.com/spf13/cobra"
)

func newPropertiesCmd(opts *envOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "properties <type>",
		Short: "List the bean properties of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.load()
			if err != nil {
				return err
			}
			c, err := env.resolve(args[0])
			if err != nil {
				return err
			}
			props, err := c.Properties()
			if err != nil {
				return err
			}
			elems := make([]element.Element, len(props))
			for i, p := range props {
				elems[i] = p
			}
			enc, err := opts.encoder(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return enc.Encode(format.Report{Class: c, Elements: elems})
		},
	}
}
