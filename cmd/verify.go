package main

import (
	"errors"
	"fmt"

	"github.com/pronsSec/subnet-siphon/pkg/reducer"
	"github.com/pronsSec/subnet-siphon/pkg/subnet"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewVerifyCmd() *cobra.Command {

	verifyCmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "verify that a subnet list contains no contained or duplicate subnets",
		Long:  `verify reports every subnet of the list which is covered by another one. It fails if any subnet is redundant`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := reducer.NewFileLoader(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}
			results := subnet.ParseLines(lines, 0)
			for _, r := range results {
				if r.Skipped() && !errors.Is(r.Err, subnet.ErrEmptyLine) {
					log.Warnf("line %d: %v", r.Line, r.Err)
				}
			}
			subnets := subnet.Normalize(results)
			found := reducer.FindContained(subnets)
			for _, c := range found {
				log.Warn(c.String())
			}
			if len(found) > 0 {
				return fmt.Errorf("%d of %d subnets are redundant", len(found), len(subnets))
			}
			log.Infof("All %d subnets are needed.", len(subnets))
			return nil
		},
	}
	return verifyCmd
}
