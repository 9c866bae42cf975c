package main

import (
	"github.com/pronsSec/subnet-siphon/pkg/api/siphon"
	"github.com/pronsSec/subnet-siphon/pkg/config"
	"github.com/pronsSec/subnet-siphon/pkg/output"
	"github.com/pronsSec/subnet-siphon/pkg/reducer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type reduceOpts struct {
	configFile    string
	outputCSV     string
	outputText    string
	workers       int
	partitionSize int
	chunkSize     int
	broadestFirst bool
}

var reduceopts = reduceOpts{}

func addReduceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reduceopts.configFile, "config", "c", "", "YAML config file (defaults to "+config.FileName+" in the XDG config directories, if present)")
	cmd.Flags().StringVar(&reduceopts.outputCSV, "output-csv", config.DefaultOutputCSV, "CSV output file path, empty to skip, - for stdout")
	cmd.Flags().StringVar(&reduceopts.outputText, "output-txt", config.DefaultOutputText, "Text output file path, empty to skip, - for stdout")
	cmd.Flags().IntVarP(&reduceopts.workers, "workers", "w", 0, "number of parallel workers (defaults to the number of CPUs)")
	cmd.Flags().IntVarP(&reduceopts.partitionSize, "partition-size", "p", config.DefaultPartitionSize, "maximum number of subnets reduced by one worker, 0 for a single partition")
	cmd.Flags().IntVar(&reduceopts.chunkSize, "chunk-size", config.DefaultChunkSize, "number of input lines parsed by one worker, 0 for a single chunk")
	cmd.Flags().BoolVar(&reduceopts.broadestFirst, "broadest-first", false, "visit subnets by ascending prefix length instead of by address")
}

func (opts *reduceOpts) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := applyLogLevel(cmd, cfg); err != nil {
		return err
	}

	logrus.Info("Starting processing of subnets.")
	outcome, err := newPipeline(cfg).Process(cmd.Context(), reducer.NewFileLoader(args[0]))
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"lines":      outcome.Stats.Lines,
		"skipped":    outcome.Stats.Skipped,
		"parsed":     outcome.Stats.Parsed,
		"partitions": outcome.Stats.Partitions,
		"kept":       outcome.Stats.Kept,
	}).Info("Reduction done.")

	if cfg.OutputCSV != "" {
		logrus.Infof("Writing output to CSV file %s.", cfg.OutputCSV)
		if err := output.WriteCSVFile(cfg.OutputCSV, outcome.Subnets); err != nil {
			return err
		}
	}
	if cfg.OutputText != "" {
		logrus.Infof("Writing output to text file %s.", cfg.OutputText)
		if err := output.WriteTextFile(cfg.OutputText, outcome.Subnets); err != nil {
			return err
		}
	}
	logrus.Info("Processing completed.")
	return nil
}

func newPipeline(cfg *siphon.Config) *reducer.Pipeline {
	p := reducer.NewPipeline(logrus.StandardLogger())
	if cfg.Workers > 0 {
		p.Workers = cfg.Workers
	}
	p.PartitionSize = cfg.PartitionSize
	p.ChunkSize = cfg.ChunkSize
	p.BroadestFirst = cfg.BroadestFirst
	return p
}
