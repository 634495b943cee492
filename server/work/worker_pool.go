package work

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/Daskott/folio/server/models"
	"github.com/pkg/errors"
)

var DefaultSleepBackoffs = []time.Duration{time.Second, 10 * time.Second, 60 * time.Second, 120 * time.Second}

type WorkerPool struct {
	mu       sync.Mutex
	handlers map[string]Handler
	workers  []*worker
	requeuer *requeuer
	started  bool
}

func newWorkerPool(concurrency int, sleepBackoffs []time.Duration) (*WorkerPool, error) {
	if concurrency <= 0 {
		return nil, errors.Errorf("concurrency must be greater than 0, got %v", concurrency)
	}

	wp := WorkerPool{handlers: make(map[string]Handler)}
	for i := 0; i < concurrency; i++ {
		wp.workers = append(wp.workers, newWorker(wp.handlers, sleepBackoffs))
	}

	requeuer, err := newRequeuer(models.IN_PROGRESS_JOB)
	if err != nil {
		return nil, err
	}
	wp.requeuer = requeuer

	return &wp, nil
}

// registerHandler binds a name to a job handler for all workers in pool
func (wp *WorkerPool) registerHandler(name string, handler Handler) error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.started {
		return errors.New("cannot register a handler on a started worker pool")
	}

	if _, ok := wp.handlers[name]; ok {
		return ErrDuplicateHandler
	}

	wp.handlers[name] = handler
	return nil
}

// enqueue adds a job to the queue(to be executed) by creating a DB record based on 'JobParams' provided
func (wp *WorkerPool) enqueue(job JobParams) error {
	if strings.TrimSpace(job.Name) == "" || strings.TrimSpace(job.Handler) == "" {
		return errors.New("both a name & handler is required for a job")
	}

	argsAsJson, err := json.Marshal(job.Args)
	if err != nil {
		return errors.Wrap(err, "unable to encode job args")
	}

	return models.CreateJob(job.Name, job.Handler, string(argsAsJson), job.Unique)
}

// start starts all workers in pool i.e the workers can start processing jobs
func (wp *WorkerPool) start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.started {
		return
	}
	wp.started = true

	for _, worker := range wp.workers {
		worker.start()
	}
	wp.requeuer.start()
}

// stop stops all workers in pool i.e jobs will stop being processed
func (wp *WorkerPool) stop() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.started {
		return
	}

	wg := sync.WaitGroup{}
	for _, w := range wp.workers {
		wg.Add(1)
		go func(w *worker) {
			w.stop()
			wg.Done()
		}(w)
	}
	wg.Wait()
	wp.requeuer.stop()

	wp.started = false
}
