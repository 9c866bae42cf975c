package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	logLevel string
}

var rootopts = rootOpts{}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "subnet-siphon <file>",
		Short: "subnet-siphon removes more specific duplicates from a list of IP subnets",
		Long: `The tool takes a list of IP subnets, one per line, and drops every subnet which is already covered by a broader
or identical subnet of the same list. The remaining subnets are written as CSV and as plain text.`,
		Example:       "  subnet-siphon input_subnets.txt --output-csv cleaned_subnets.csv --output-txt cleaned_subnets.txt",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(rootopts.logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return reduceopts.RunE(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&rootopts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	addReduceFlags(rootCmd)

	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
