// Package generator defines the interface for vanity address generation.
// The search backend is swappable; the CPU implementation lives in the cpu
// subpackage and the chain-specific key and address code in chia.
package generator

import (
	"context"
	"errors"
	"time"

	"github.com/scrutinously/chia-vanity-address/pkg/generator/chia"
)

// Defaults for the tunable search bounds.
const (
	// DefaultMaxIndex is how many receiving addresses are probed per key.
	// Reference wallets scan this many addresses, so a hit beyond it would not show up.
	DefaultMaxIndex uint32 = 500

	// DefaultReportInterval is how often progress is reported.
	DefaultReportInterval = time.Second
)

// ErrNoSuffix is returned when a search is started without a match set.
var ErrNoSuffix = errors.New("no suffixes to search for")

// Network represents the Chia network an address is encoded for.
type Network int

const (
	Mainnet Network = iota // xch1...
	Testnet                // txch1...
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "Mainnet"
	case Testnet:
		return "Testnet"
	default:
		return "Unknown"
	}
}

// Prefix returns the bech32m human-readable prefix for the network.
func (n Network) Prefix() string {
	if n == Testnet {
		return chia.TestnetPrefix
	}
	return chia.MainnetPrefix
}

// Config holds the configuration for a vanity address search.
type Config struct {
	Network        Network       // Target network (address prefix)
	Entropy        string        // User text mixed into every generated key
	Suffixes       []string      // Accepted address endings
	MaxIndex       uint32        // Addresses probed per key (0 = DefaultMaxIndex)
	Workers        int           // Number of concurrent workers (0 = NumCPU)
	ReportInterval time.Duration // Progress interval (0 = DefaultReportInterval)
	OnProgress     func(Stats)   // Called from the monitor goroutine; may be nil
}

// Result contains the winning address and the key it belongs to.
type Result struct {
	Network    Network
	Address    string
	Index      uint32            // Derivation index of the address
	Iterations uint64            // Keys generated by the winning worker
	Elapsed    time.Duration     // Wall-clock time since the search started
	Key        *chia.KeyMaterial // Mnemonic and keys; hand to export
}

// Mnemonic returns the recovery phrase of the winning key.
func (r Result) Mnemonic() string {
	if r.Key == nil {
		return ""
	}
	return r.Key.Mnemonic
}

// Stats holds real-time performance statistics.
type Stats struct {
	Keys        uint64  // Total number of keys generated
	Addresses   uint64  // Keys × MaxIndex
	KeyRate     float64 // Keys per second
	AddressRate float64 // Addresses per second
	ElapsedSecs float64 // Time elapsed since start
}

// Generator defines the contract for address search backends.
type Generator interface {
	// Start begins the vanity address search with the given configuration.
	// The returned channel receives at most one Result and is closed once
	// every worker has stopped, so draining it joins the search.
	// The search can be cancelled via the context.
	Start(ctx context.Context, config *Config) (<-chan Result, error)

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name.
	Name() string
}
