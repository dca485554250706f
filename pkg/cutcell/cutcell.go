// Package cutcell runs a BRep over the elements of a mesh. It classifies
// every element as in, out or cut, and recovers where the boundary crosses
// the edges of cut elements. Classification fans out over a bounded pool of
// goroutines; the BRep is only queried, never modified.
package cutcell

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/mesh"
)

// Classifier classifies mesh elements against a BRep.
type Classifier struct {
	// BRep is the boundary to classify against. Required.
	BRep brep.BRep
	// Configuration selects reference or current node positions.
	Configuration brep.Configuration
	// Sampling is the number of interior points added to each element's
	// corners. Zero classifies by corners only.
	Sampling int
	// Workers bounds the number of elements classified at once. Zero or
	// negative means GOMAXPROCS.
	Workers int
	// Logger receives progress records. Nil means slog.Default().
	Logger *slog.Logger
}

// Result is the status of one element.
type Result struct {
	ElementID int
	Status    brep.CutStatus
}

// Report holds one Result per classified element, in input order.
type Report struct {
	Results []Result
}

// Counts returns how many elements ended up in each status.
func (r *Report) Counts() map[brep.CutStatus]int {
	return lo.CountValuesBy(r.Results, func(res Result) brep.CutStatus { return res.Status })
}

// WithStatus returns the IDs of the elements classified as s.
func (r *Report) WithStatus(s brep.CutStatus) []int {
	return lo.FilterMap(r.Results, func(res Result, _ int) (int, bool) {
		return res.ElementID, res.Status == s
	})
}

func (c *Classifier) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Classifier) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Classify classifies every element. The first failure cancels the
// remaining work and is returned with the failing element's ID attached.
func (c *Classifier) Classify(ctx context.Context, elements []*mesh.Element) (*Report, error) {
	if c.BRep == nil {
		return nil, brep.Precondition("cutcell: classifier has no BRep")
	}
	if err := c.Configuration.Validate(); err != nil {
		return nil, err
	}
	if c.Sampling < 0 {
		return nil, brep.Precondition("cutcell: negative sampling count %d", c.Sampling)
	}

	log := c.logger()
	start := time.Now()
	results := make([]Result, len(elements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers())
	for i, e := range elements {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			status, err := c.classify(e)
			if err != nil {
				return errors.WithMessagef(err, "cutcell: element %d", e.ID)
			}
			results[i] = Result{ElementID: e.ID, Status: status}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("classification failed", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	counts := report.Counts()
	log.Info("classified elements",
		"brep", fmt.Sprint(c.BRep),
		"elements", len(elements),
		"cut", counts[brep.Cut],
		"in", counts[brep.In],
		"out", counts[brep.Out],
		"elapsed", time.Since(start),
	)
	return report, nil
}

func (c *Classifier) classify(e *mesh.Element) (brep.CutStatus, error) {
	if c.Sampling > 0 {
		return c.BRep.CutStatusBySampling(e, c.Sampling, c.Configuration)
	}
	return c.BRep.CutStatusOfGeometry(e, c.Configuration)
}
