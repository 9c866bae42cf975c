package reducer

import (
	"context"
	"errors"
	"io"
	"runtime"

	"github.com/pronsSec/subnet-siphon/pkg/subnet"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Pipeline parses raw lines, reduces the normalized subnets per partition in parallel and finishes with a single
// global reduction over the concatenated partition results.
type Pipeline struct {
	// Workers limits how many chunks or partitions are processed at once. Defaults to the number of CPUs.
	Workers int
	// PartitionSize is the maximum number of subnets per partition. Zero means a single partition.
	PartitionSize int
	// ChunkSize is the number of raw lines parsed by one worker. Zero means a single chunk.
	ChunkSize int
	// BroadestFirst visits subnets by ascending prefix length instead of by address. Every broad subnet then wins
	// over the narrower ones it contains, regardless of where they appear in the input.
	BroadestFirst bool
	Log           logrus.FieldLogger
}

type Stats struct {
	Lines         int
	Blank         int
	Skipped       int
	Parsed        int
	Partitions    int
	PartitionKept int
	Kept          int
}

type Outcome struct {
	Subnets []subnet.Subnet
	Stats   Stats
}

func NewPipeline(log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		Workers: runtime.NumCPU(),
		Log:     log,
	}
}

// Process loads the input with the given loader and runs it through the pipeline.
func (p *Pipeline) Process(ctx context.Context, loader SubnetLoader) (*Outcome, error) {
	lines, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, lines)
}

func (p *Pipeline) Run(ctx context.Context, lines []string) (*Outcome, error) {
	log := p.logger()
	outcome := &Outcome{}
	outcome.Stats.Lines = len(lines)

	results, err := p.parse(ctx, lines)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		switch {
		case errors.Is(r.Err, subnet.ErrEmptyLine):
			outcome.Stats.Blank++
		case r.Skipped():
			outcome.Stats.Skipped++
			log.WithFields(logrus.Fields{"line": r.Line, "raw": r.Raw}).Debugf("skipping line: %v", r.Err)
		}
	}

	subnets := subnet.Normalize(results)
	if p.BroadestFirst {
		subnet.SortBroadest(subnets)
	}
	outcome.Stats.Parsed = len(subnets)

	partitions := Partition(subnets, p.PartitionSize)
	outcome.Stats.Partitions = len(partitions)
	reduced, err := p.reducePartitions(ctx, partitions)
	if err != nil {
		return nil, err
	}

	var concatenated []subnet.Subnet
	for _, r := range reduced {
		concatenated = append(concatenated, r...)
	}
	outcome.Stats.PartitionKept = len(concatenated)
	log.Debugf("%d of %d subnets left after reducing %d partitions", len(concatenated), len(subnets), len(partitions))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	outcome.Subnets = Reduce(concatenated)
	outcome.Stats.Kept = len(outcome.Subnets)
	return outcome, nil
}

func (p *Pipeline) parse(ctx context.Context, lines []string) ([]subnet.Result, error) {
	chunks := chunk(lines, p.ChunkSize)
	parsed := make([][]subnet.Result, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	offset := 0
	for i, c := range chunks {
		start := offset
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parsed[i] = subnet.ParseLines(c, start)
			return nil
		})
		offset += len(c)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]subnet.Result, 0, len(lines))
	for _, r := range parsed {
		results = append(results, r...)
	}
	return results, nil
}

func (p *Pipeline) reducePartitions(ctx context.Context, partitions [][]subnet.Subnet) ([][]subnet.Subnet, error) {
	reduced := make([][]subnet.Subnet, len(partitions))
	log := p.logger()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, part := range partitions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reduced[i] = Reduce(part)
			log.Debugf("partition %d: kept %d of %d subnets", i, len(reduced[i]), len(part))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reduced, nil
}

func (p *Pipeline) workers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return p.Log
}
