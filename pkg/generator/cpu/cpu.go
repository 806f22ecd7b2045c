package cpu

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/scrutinously/chia-vanity-address/internal/logger"
	"github.com/scrutinously/chia-vanity-address/pkg/generator"
	"github.com/scrutinously/chia-vanity-address/pkg/generator/chia"
)

// CPUGenerator implements the Generator interface using one goroutine per core.
// Workers share exactly two values: the found flag and the key counter.
type CPUGenerator struct {
	found     atomic.Bool   // Set once, by the winning worker
	keys      atomic.Uint64 // Keys generated across all workers
	maxIndex  atomic.Uint32 // Addresses probed per key, for Stats
	startTime time.Time     // When generation started
	workers   int           // Number of concurrent workers
	log       *logger.Logger
}

// search is the read-only state every worker of one run shares.
type search struct {
	network  generator.Network
	entropy  string
	matcher  *chia.SuffixMatcher
	maxIndex uint32
	results  chan<- generator.Result
}

// NewCPUGenerator creates a new CPU-based generator.
// If workers is 0, it defaults to the number of CPU cores.
func NewCPUGenerator(workers int, log *logger.Logger) *CPUGenerator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &CPUGenerator{
		workers: workers,
		log:     log,
	}
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Workers returns the default number of workers.
func (g *CPUGenerator) Workers() int {
	return g.workers
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	keys := g.keys.Load()
	addresses := keys * uint64(g.maxIndex.Load())
	elapsed := time.Since(g.startTime).Seconds()

	var keyRate, addressRate float64
	if elapsed > 0 {
		keyRate = float64(keys) / elapsed
		addressRate = float64(addresses) / elapsed
	}

	return generator.Stats{
		Keys:        keys,
		Addresses:   addresses,
		KeyRate:     keyRate,
		AddressRate: addressRate,
		ElapsedSecs: elapsed,
	}
}

// Start begins the vanity address search with the given configuration.
func (g *CPUGenerator) Start(ctx context.Context, config *generator.Config) (<-chan generator.Result, error) {
	if len(config.Suffixes) == 0 {
		return nil, generator.ErrNoSuffix
	}

	workers := g.workers
	if config.Workers > 0 {
		workers = config.Workers
	}
	maxIndex := config.MaxIndex
	if maxIndex == 0 {
		maxIndex = generator.DefaultMaxIndex
	}
	interval := config.ReportInterval
	if interval <= 0 {
		interval = generator.DefaultReportInterval
	}

	resultChan := make(chan generator.Result, 1)
	job := &search{
		network:  config.Network,
		entropy:  config.Entropy,
		matcher:  chia.NewSuffixMatcher(config.Suffixes),
		maxIndex: maxIndex,
		results:  resultChan,
	}

	g.found.Store(false)
	g.keys.Store(0)
	g.maxIndex.Store(maxIndex)
	g.startTime = time.Now()

	g.log.Info("Search started", "workers", workers, "suffixes", job.matcher.Len(),
		"maxIndex", maxIndex, "network", config.Network)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go g.worker(ctx, &wg, i, job)
	}

	done := make(chan struct{})
	if config.OnProgress != nil {
		go g.monitor(ctx, interval, config.OnProgress, done)
	}

	go func() {
		wg.Wait()
		close(done)
		close(resultChan)
		g.log.Debug("All workers stopped", "keys", g.keys.Load(), "found", g.found.Load())
	}()

	return resultChan, nil
}

// worker generates keys until some worker claims a match or ctx is cancelled.
// The flag is polled once per key, so stopping takes at most one full
// VanityAddress call.
func (g *CPUGenerator) worker(ctx context.Context, wg *sync.WaitGroup, id int, job *search) {
	defer wg.Done()

	// Strings are immutable, so this is the worker's private copy.
	entropy := job.entropy
	prefix := job.network.Prefix()
	var iterations uint64

	g.log.Debug("Worker started", "id", id)
	for !g.found.Load() && ctx.Err() == nil {
		key, err := chia.GenerateKey(entropy)
		if err != nil {
			// Entropy is fixed at 32 bytes; failing here is a bug, not a runtime condition.
			panic(fmt.Sprintf("cpu: generate key: %v", err))
		}
		iterations++
		g.keys.Add(1)

		derived, ok := key.VanityAddress(job.matcher, job.maxIndex, prefix)
		if !ok {
			continue
		}

		if !g.found.CompareAndSwap(false, true) {
			g.log.Debug("Match discarded, search already won", "id", id, "address", derived.Address)
			return
		}

		g.log.Debug("Match claimed", "id", id, "index", derived.Index, "iterations", iterations)
		job.results <- generator.Result{
			Network:    job.network,
			Address:    derived.Address,
			Index:      derived.Index,
			Iterations: iterations,
			Elapsed:    time.Since(g.startTime),
			Key:        key,
		}
		return
	}
	g.log.Debug("Worker stopped", "id", id, "iterations", iterations)
}

// monitor reports progress every interval until the search is won or over.
func (g *CPUGenerator) monitor(ctx context.Context, interval time.Duration, report func(generator.Stats), done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if g.found.Load() {
				return
			}
			report(g.Stats())
		}
	}
}
