package main

import (
	"fmt"
	"net/url"

	"github.com/dhamidi/jel/element"
	"github.com/dhamidi/jel/format"
	"github.com/spf13/cobra"
)

func newMembersCmd(opts *envOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "members <type>",
		Short: "List the members of a type selected by a query",
		Long: `List the members of a type selected by a query.

The query is written as URL parameters, for example
  kind=method&modifier=public&pattern=^get
Recognised keys are kind, name, modifier, annotation, pattern,
onlyDeclared and excludeProperties.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := url.ParseQuery(query)
			if err != nil {
				return fmt.Errorf("parse query: %w", err)
			}
			q, err := element.DecodeQuery(values)
			if err != nil {
				return err
			}
			env, err := opts.load()
			if err != nil {
				return err
			}
			c, err := env.resolve(args[0])
			if err != nil {
				return err
			}
			elems, err := c.EnclosedElements(q)
			if err != nil {
				return err
			}
			log.Debugf("%s: %d %s elements", c.Name(), len(elems), q.Kind())
			enc, err := opts.encoder(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return enc.Encode(format.Report{Class: c, Elements: elems})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "kind=member", "member query")
	return cmd
}
