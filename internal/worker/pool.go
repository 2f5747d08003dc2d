package worker

import (
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Pool is a fixed-size pool of goroutines draining a shared job queue.
// Completion side effects of matched auto-payments run here so the verifier
// loop never blocks on a slow database write.
type Pool struct {
	jobs  chan func()
	wg    sync.WaitGroup
	depth prometheus.Gauge
	once  sync.Once
}

// NewPool starts size workers. depth may be nil when metrics are disabled.
func NewPool(size int, depth prometheus.Gauge) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		jobs:  make(chan func(), size*4),
		depth: depth,
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("worker job panicked: %v", r)
				}
				if p.depth != nil {
					p.depth.Dec()
				}
			}()
			job()
		}()
	}
}

// Submit enqueues a job. Blocks if the queue is full.
func (p *Pool) Submit(job func()) {
	if p.depth != nil {
		p.depth.Inc()
	}
	p.jobs <- job
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	p.once.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
