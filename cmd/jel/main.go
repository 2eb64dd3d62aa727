package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("jel.cli")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbosity int
		logFile   string
	)
	opts := &envOptions{}

	rootCmd := &cobra.Command{
		Use:          "jel",
		Short:        "Resolve Java types and inspect their members",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVarP(&opts.sources, "source", "s", nil, "Java source root (repeatable)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./jel.yaml)")
	flags.StringVarP(&opts.format, "format", "f", "line", "output format: line or json")
	flags.CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newResolveCmd(opts))
	rootCmd.AddCommand(newMembersCmd(opts))
	rootCmd.AddCommand(newPropertiesCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}
