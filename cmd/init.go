package main

import (
	"github.com/pronsSec/subnet-siphon/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type initOpts struct {
	out string
}

var initopts = initOpts{}

func NewInitCmd() *cobra.Command {

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with the default settings",
		Long:  `Create a YAML config file with the default settings which can be passed to --config or placed at ` + config.FileName + ` in the XDG config directory`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(initopts.out); err != nil {
				return err
			}
			logrus.Infof("Wrote %s.", initopts.out)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&initopts.out, "output", "o", "subnet-siphon.yaml", "where to write the config file")
	return initCmd
}
