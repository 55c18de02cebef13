package resilience

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.ledgerline.dev/internal/common/metrics"
)

// WorkerPool runs executor tasks on a fixed set of workers with a bounded
// queue. One pool is constructed at process start and shared by every
// executor; call sites never create their own.
type WorkerPool struct {
	name    string
	workers int
	queue   chan func()

	running atomic.Bool
	active  atomic.Int32

	// Shutdown coordination
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	shutdownMu sync.Mutex

	// Gauge update scheduling
	gaugeCtx    context.Context
	gaugeCancel context.CancelFunc
	gaugeWg     sync.WaitGroup
}

// NewWorkerPool creates a pool with the given worker count and queue
// capacity. Non-positive values fall back to a single worker and a queue
// the size of the worker count.
func NewWorkerPool(name string, workers, queueCapacity int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueCapacity <= 0 {
		queueCapacity = workers
	}

	ctx, cancel := context.WithCancel(context.Background())
	gaugeCtx, gaugeCancel := context.WithCancel(context.Background())

	return &WorkerPool{
		name:        name,
		workers:     workers,
		queue:       make(chan func(), queueCapacity),
		ctx:         ctx,
		cancel:      cancel,
		gaugeCtx:    gaugeCtx,
		gaugeCancel: gaugeCancel,
	}
}

// Start launches the workers and the gauge updater.
func (p *WorkerPool) Start() {
	if p.running.CompareAndSwap(false, true) {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.runWorker()
		}

		p.gaugeWg.Add(1)
		go p.runGaugeUpdater()

		slog.Info("Starting executor pool",
			"pool", p.name,
			"workers", p.workers,
			"queueCapacity", cap(p.queue))
	}
}

// Submit enqueues a task for execution. It returns false when the pool is
// stopped or the queue is full; the task is not run in that case.
func (p *WorkerPool) Submit(task func()) bool {
	if !p.running.Load() {
		return false
	}

	select {
	case p.queue <- task:
		metrics.PoolTasksSubmitted.WithLabelValues(p.name, "accepted").Inc()
		return true
	default:
		metrics.PoolTasksSubmitted.WithLabelValues(p.name, "rejected").Inc()
		slog.Debug("Pool at capacity, rejecting task",
			"pool", p.name,
			"capacity", cap(p.queue))
		return false
	}
}

func (p *WorkerPool) runWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			// Drain remaining tasks so queued futures still settle
			for {
				select {
				case task := <-p.queue:
					if task != nil {
						p.runTask(task)
					}
				default:
					return
				}
			}
		case task := <-p.queue:
			if task == nil {
				continue
			}
			p.runTask(task)
		}
	}
}

func (p *WorkerPool) runTask(task func()) {
	p.active.Add(1)
	defer p.active.Add(-1)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic during task execution",
				"pool", p.name,
				"panic", r)
		}
	}()

	task()
}

// Shutdown stops accepting tasks and waits for in-flight and queued work
// to finish, up to a fixed timeout.
func (p *WorkerPool) Shutdown() {
	p.shutdownMu.Lock()
	defer p.shutdownMu.Unlock()

	if !p.running.Load() {
		return
	}
	p.running.Store(false)

	// Stop gauge updater first
	p.gaugeCancel()
	p.gaugeWg.Wait()

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("Pool shutdown complete", "pool", p.name)
	case <-time.After(10 * time.Second):
		slog.Warn("Pool shutdown timed out", "pool", p.name)
	}
}

// Name returns the pool name used in metrics labels.
func (p *WorkerPool) Name() string {
	return p.name
}

// Workers returns the configured worker count.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// QueueDepth returns the number of queued tasks.
func (p *WorkerPool) QueueDepth() int {
	return len(p.queue)
}

// QueueCapacity returns the queue capacity.
func (p *WorkerPool) QueueCapacity() int {
	return cap(p.queue)
}

// ActiveWorkers returns the number of workers currently running a task.
func (p *WorkerPool) ActiveWorkers() int {
	return int(p.active.Load())
}

// runGaugeUpdater publishes pool gauges every 500ms.
func (p *WorkerPool) runGaugeUpdater() {
	defer p.gaugeWg.Done()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	// Initial update
	p.updateGauges()

	for {
		select {
		case <-p.gaugeCtx.Done():
			return
		case <-ticker.C:
			p.updateGauges()
		}
	}
}

func (p *WorkerPool) updateGauges() {
	metrics.PoolActiveWorkers.WithLabelValues(p.name).Set(float64(p.ActiveWorkers()))
	metrics.PoolQueueDepth.WithLabelValues(p.name).Set(float64(p.QueueDepth()))
}
