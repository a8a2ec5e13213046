// Package worker loads and analyses batches of games in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/errors"
	"github.com/lgbarn/checkmate-go/internal/game"
	"github.com/lgbarn/checkmate-go/internal/parser"
)

// Job is one game to load: either already parsed PGN, or FEN or PGN text.
type Job struct {
	Index  int    // Position in the input, used to restore order
	Name   string // Label for messages, usually the input file
	Text   string
	Parsed *parser.Game // Takes precedence over Text
}

// Result is the outcome of one job.
type Result struct {
	Index    int
	Name     string
	Game     *game.Game
	Snapshot *game.Snapshot
	Err      error
}

// AnalyseFunc processes one job. It must be safe for concurrent use.
type AnalyseFunc func(ctx context.Context, job Job) Result

// Analyse returns an AnalyseFunc that loads each job into a fresh game
// sharing cfg.
func Analyse(cfg *config.Config) AnalyseFunc {
	return func(_ context.Context, job Job) Result {
		res := Result{Index: job.Index, Name: job.Name}
		g := game.New(cfg)

		var err error
		if job.Parsed != nil {
			res.Snapshot, err = g.LoadGame(job.Parsed)
		} else {
			res.Snapshot, err = g.LoadText(job.Text)
		}
		if err != nil {
			res.Err = errors.Wrapf(err, "%s game %d", job.Name, job.Index+1)
			return res
		}
		res.Game = g
		return res
	}
}

// Pool runs an AnalyseFunc on a fixed number of goroutines.
type Pool struct {
	ctx        context.Context
	workers    int
	bufferSize int
	jobs       chan Job
	results    chan Result
	analyse    AnalyseFunc
	wg         sync.WaitGroup
	stopped    atomic.Bool
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below one are
// ignored.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the job and result channel capacity.
func WithBufferSize(size int) Option {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool with one worker and a buffer of ten unless
// options say otherwise. Jobs taken after ctx ends are not analysed.
func NewPool(ctx context.Context, analyse AnalyseFunc, opts ...Option) *Pool {
	p := &Pool{
		ctx:        ctx,
		workers:    1,
		bufferSize: 10,
		analyse:    analyse,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan Job, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()

	for job := range p.jobs {
		if p.Stopped() {
			continue
		}
		if err := p.ctx.Err(); err != nil {
			p.results <- Result{Index: job.Index, Name: job.Name, Err: err}
			continue
		}
		p.results <- p.analyse(p.ctx, job)
	}
}

// Submit queues a job, blocking while the buffer is full. It gives up with
// the context's error once the context ends.
func (p *Pool) Submit(job Job) error {
	select {
	case p.jobs <- job:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// TrySubmit queues a job without blocking. It returns false if the buffer
// is full or the pool is stopped.
func (p *Pool) TrySubmit(job Job) bool {
	if p.Stopped() {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop makes workers drain the remaining jobs without analysing them.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (p *Pool) Stopped() bool {
	return p.stopped.Load()
}

// Close stops accepting jobs, waits for the workers and closes the result
// channel.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// Results returns the channel of finished jobs, in completion order.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Run analyses every job and returns the results in job order, together
// with the combined error of the jobs that failed.
func Run(ctx context.Context, analyse AnalyseFunc, jobs []Job, opts ...Option) ([]Result, error) {
	p := NewPool(ctx, analyse, opts...)
	p.Start()

	go func() {
		defer p.Close()
		for _, job := range jobs {
			if err := p.Submit(job); err != nil {
				return
			}
		}
	}()

	byIndex := make(map[int]Result, len(jobs))
	for res := range p.Results() {
		byIndex[res.Index] = res
	}

	results := make([]Result, len(jobs))
	var errs *multierror.Error
	for i, job := range jobs {
		res, ok := byIndex[job.Index]
		if !ok {
			res = Result{Index: job.Index, Name: job.Name, Err: ctx.Err()}
		}
		results[i] = res
		if res.Err != nil {
			errs = multierror.Append(errs, res.Err)
		}
	}
	return results, errs.ErrorOrNil()
}
