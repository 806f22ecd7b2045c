package cpu

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/scrutinously/chia-vanity-address/pkg/generator"
	"github.com/scrutinously/chia-vanity-address/pkg/generator/chia"
)

// collect drains the result channel, which also joins every worker.
func collect(t *testing.T, ch <-chan generator.Result) []generator.Result {
	t.Helper()
	var results []generator.Result
	timeout := time.After(2 * time.Minute)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return results
			}
			results = append(results, r)
		case <-timeout:
			t.Fatal("search did not finish")
		}
	}
}

func TestNewCPUGenerator(t *testing.T) {
	is := is.New(t)
	g := NewCPUGenerator(0, nil)
	is.True(g.workers > 0)
	is.True(g.log != nil)
	is.Equal(g.Name(), "CPU")
	is.Equal(NewCPUGenerator(3, nil).Workers(), 3)
}

func TestStartRequiresSuffix(t *testing.T) {
	is := is.New(t)
	g := NewCPUGenerator(1, nil)
	_, err := g.Start(context.Background(), &generator.Config{})
	is.True(errors.Is(err, generator.ErrNoSuffix))
}

func TestSingleWinner(t *testing.T) {
	is := is.New(t)
	g := NewCPUGenerator(8, nil)

	// Every key matches at index 0, so all workers race to claim the win.
	ch, err := g.Start(context.Background(), &generator.Config{
		Suffixes: []string{""},
		MaxIndex: 1,
	})
	is.NoErr(err)

	results := collect(t, ch)
	is.Equal(len(results), 1)
	is.True(g.found.Load())

	r := results[0]
	is.Equal(r.Index, uint32(0))
	is.True(r.Iterations >= 1)
	is.True(g.Stats().Keys >= r.Iterations)
}

func TestWinnerResultIsConsistent(t *testing.T) {
	is := is.New(t)
	g := NewCPUGenerator(1, nil)

	ch, err := g.Start(context.Background(), &generator.Config{
		Entropy:  "some user text",
		Suffixes: []string{""},
	})
	is.NoErr(err)

	results := collect(t, ch)
	is.Equal(len(results), 1)
	r := results[0]

	// One worker, first key matches.
	is.Equal(r.Iterations, uint64(1))
	is.Equal(g.Stats().Keys, uint64(1))
	is.Equal(g.Stats().Addresses, uint64(generator.DefaultMaxIndex))
	is.Equal(len(strings.Fields(r.Mnemonic())), 24)
	is.True(strings.HasPrefix(r.Address, "xch1"))

	recovered, err := chia.KeyFromMnemonic(r.Mnemonic())
	is.NoErr(err)
	is.Equal(chia.DeriveAddress(recovered.Wallet, r.Index, chia.MainnetPrefix).Address, r.Address)
}

func TestCounterMonotonic(t *testing.T) {
	is := is.New(t)
	g := NewCPUGenerator(1, nil)

	var mu sync.Mutex
	var samples []uint64

	// Roughly one address in 32 ends with "q".
	ch, err := g.Start(context.Background(), &generator.Config{
		Suffixes:       []string{"q"},
		MaxIndex:       1,
		ReportInterval: time.Millisecond,
		OnProgress: func(s generator.Stats) {
			mu.Lock()
			samples = append(samples, s.Keys)
			mu.Unlock()
		},
	})
	is.NoErr(err)

	results := collect(t, ch)
	is.Equal(len(results), 1)
	is.True(strings.HasSuffix(results[0].Address, "q"))

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(samples); i++ {
		if samples[i] < samples[i-1] {
			t.Fatalf("counter went backwards: %d then %d", samples[i-1], samples[i])
		}
	}

	// With a single worker the global count equals the worker's own count.
	final := g.Stats().Keys
	is.Equal(final, results[0].Iterations)
	if len(samples) > 0 {
		is.True(final >= samples[len(samples)-1])
	}
}

func TestCancel(t *testing.T) {
	is := is.New(t)
	g := NewCPUGenerator(2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := g.Start(ctx, &generator.Config{
		Suffixes: []string{strings.Repeat("q", 20)},
		MaxIndex: 1,
	})
	is.NoErr(err)

	time.Sleep(50 * time.Millisecond)
	cancel()

	results := collect(t, ch)
	is.Equal(len(results), 0)
	is.True(!g.found.Load())
}

func TestTestnetAddresses(t *testing.T) {
	is := is.New(t)
	g := NewCPUGenerator(1, nil)

	ch, err := g.Start(context.Background(), &generator.Config{
		Network:  generator.Testnet,
		Suffixes: []string{""},
		MaxIndex: 1,
	})
	is.NoErr(err)

	results := collect(t, ch)
	is.Equal(len(results), 1)
	is.True(strings.HasPrefix(results[0].Address, "txch1"))
	is.Equal(results[0].Network, generator.Testnet)
}

func TestFindsVanitySuffix(t *testing.T) {
	if testing.Short() {
		t.Skip("searches ~32k addresses")
	}
	is := is.New(t)
	g := NewCPUGenerator(0, nil)

	ch, err := g.Start(context.Background(), &generator.Config{
		Suffixes: []string{"xch"},
		MaxIndex: generator.DefaultMaxIndex,
	})
	is.NoErr(err)

	results := collect(t, ch)
	is.Equal(len(results), 1)
	is.True(strings.HasSuffix(results[0].Address, "xch"))
	is.True(results[0].Index < generator.DefaultMaxIndex)
}
