package pipeline

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/logger"
	"github.com/jostly/terragen/internal/mesh"
	"github.com/jostly/terragen/internal/planet"
	"github.com/jostly/terragen/internal/terrain"
)

// ErrWorkerClosed is returned for jobs submitted after Close.
var ErrWorkerClosed = errors.New("pipeline: worker closed")

// Job is a unit of work on a generator. Submitting a job hands the generator
// to the worker; the caller must not touch it until the Result returns it.
type Job struct {
	Generator *terrain.Generator
	// Apply mutates a clone of the generator before anything is derived. On
	// error the clone is dropped and the Result carries the original. May be nil.
	Apply func(*terrain.Generator) error
	// Plates derives the planet and grows plates on it; Merge also merges them.
	Plates bool
	Merge  bool
	// Dual emits the tile mesh instead of the triangle mesh. It implies a planet.
	Dual      bool
	Wireframe bool
}

// Result carries the generator back with whatever the job derived.
type Result struct {
	Generator *terrain.Generator
	Planet    *planet.Planet
	Mesh      *mesh.Mesh
	Err       error
	Elapsed   time.Duration
}

type request struct {
	job   Job
	reply chan Result
}

// Worker runs jobs one at a time on its own goroutine.
type Worker struct {
	jobs      chan request
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewWorker starts a worker.
func NewWorker() *Worker {
	w := &Worker{
		jobs: make(chan request),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.done)
	for {
		select {
		case req := <-w.jobs:
			req.reply <- runJob(req.job)
		case <-w.quit:
			return
		}
	}
}

// Submit queues a job and returns the channel its single Result arrives on.
// Jobs cannot be cancelled once accepted.
func (w *Worker) Submit(job Job) <-chan Result {
	reply := make(chan Result, 1)
	select {
	case w.jobs <- request{job: job, reply: reply}:
	case <-w.quit:
		reply <- Result{Generator: job.Generator, Err: ErrWorkerClosed}
	}
	return reply
}

// Close stops the worker after the running job, if any, completes.
func (w *Worker) Close() {
	w.closeOnce.Do(func() { close(w.quit) })
	<-w.done
}

func runJob(job Job) Result {
	start := time.Now()
	res := Result{Generator: job.Generator}

	if job.Generator == nil {
		res.Err = errors.New("pipeline: job has no generator")
		return res
	}
	g := job.Generator
	if job.Apply != nil {
		g = job.Generator.Clone()
		if err := job.Apply(g); err != nil {
			res.Err = err
			res.Elapsed = time.Since(start)
			return res
		}
		res.Generator = g
	}

	if job.Plates || job.Dual {
		res.Planet = g.ToPlanet()
		if job.Plates {
			res.Planet.GrowPlates()
			if job.Merge {
				res.Planet.MergePlates()
			}
		}
	}

	if job.Dual {
		res.Mesh = mesh.FromPlanet(res.Planet, job.Wireframe)
	} else {
		res.Mesh = mesh.FromGenerator(g, job.Wireframe)
	}

	res.Elapsed = time.Since(start)
	logger.Named("pipeline").Debug("job done",
		zap.Int("vertices", len(res.Mesh.Vertices)),
		zap.Int("triangles", res.Mesh.NumTriangles()),
		zap.Duration("elapsed", res.Elapsed))
	return res
}
