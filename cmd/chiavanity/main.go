package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scrutinously/chia-vanity-address/internal/config"
	"github.com/scrutinously/chia-vanity-address/internal/logger"
	"github.com/scrutinously/chia-vanity-address/internal/ui"
	"github.com/scrutinously/chia-vanity-address/pkg/generator"
	"github.com/scrutinously/chia-vanity-address/pkg/generator/chia"
	"github.com/scrutinously/chia-vanity-address/pkg/generator/cpu"
)

const (
	version    = "1.0.0"
	updateRate = 100 * time.Millisecond

	// Above this many variants the selection list is skipped and all are used.
	maxListedVariants = 64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chiavanity",
		Short: "Chia vanity address generator",
		Long: `Searches for a Chia (XCH) wallet whose receiving address ends with chosen text.
Keys are random BIP-39 mnemonics; the first receiving addresses of each are checked
until one matches. Run without --suffix for interactive prompts.`,
		Version:      version,
		SilenceUsage: true,
		RunE:         run,
	}
	config.NewConfig().RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	network, _ := cfg.GetNetwork()

	raisePriority()

	log := logger.New(cfg.Verbose)
	console := ui.NewConsole(color.Output)
	console.ClearScreen()
	console.PrintBanner(version)

	var prompter *ui.Prompter
	var selected []string
	if cfg.Interactive() {
		prompter = ui.NewPrompter(color.Output)
		selected, err = promptSuffixes(prompter, console, cfg)
	} else {
		selected = flagSuffixes(cfg)
	}
	if err != nil {
		return err
	}

	suffixes, dropped, err := config.MatchSet(selected)
	for _, d := range dropped {
		console.PrintWarning("%q can never appear in an address, skipped", d)
	}
	if err != nil {
		return err
	}

	gen := cpu.NewCPUGenerator(cfg.Workers, log)
	difficulty := estimateDifficulty(suffixes)
	console.PrintSearchInfo(network, suffixes, gen.Workers(), cfg.MaxIndex, difficulty)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := gen.Start(ctx, &generator.Config{
		Network:        network,
		Entropy:        cfg.Entropy,
		Suffixes:       suffixes,
		MaxIndex:       cfg.MaxIndex,
		ReportInterval: cfg.ReportInterval,
		OnProgress: func(s generator.Stats) {
			log.Debug("Progress", "keys", s.Keys, "addresses", s.Addresses,
				"keyRate", ui.FormatHashRate(s.KeyRate), "elapsed", ui.FormatDuration(time.Duration(s.ElapsedSecs*float64(time.Second))))
		},
	})
	if err != nil {
		return err
	}

	result, found := wait(ctx, gen, results, console, difficulty)
	if !found {
		console.PrintCancelled(gen.Stats())
		return nil
	}
	console.PrintSuccess(result)
	log.Info("Match found", "address", result.Address, "index", result.Index,
		"fingerprint", result.Key.Fingerprint(), "iterations", result.Iterations)

	export := cfg.Export
	if !export && prompter != nil {
		if export, err = prompter.Confirm("Export public keys to a file?", false); err != nil {
			return err
		}
	}
	if export {
		path, err := chia.ExportKeys(cfg.ExportDir, result.Key, result.Address)
		if err != nil {
			return err
		}
		console.PrintExported(path)
	}
	return nil
}

// wait redraws progress until a result arrives or ctx is cancelled. It
// returns only once every worker has stopped.
func wait(ctx context.Context, gen generator.Generator, results <-chan generator.Result, console *ui.Console, difficulty uint64) (generator.Result, bool) {
	ticker := time.NewTicker(updateRate)
	defer ticker.Stop()

	for {
		select {
		case result, ok := <-results:
			console.ClearLine()
			if ok {
				for range results {
				}
			}
			return result, ok
		case <-ticker.C:
			console.PrintProgress(gen.Stats(), difficulty)
		case <-ctx.Done():
			console.ClearLine()
			result, ok := <-results
			for range results {
			}
			return result, ok
		}
	}
}

// promptSuffixes runs the interactive questions and returns the selected
// vanity texts.
func promptSuffixes(p *ui.Prompter, console *ui.Console, cfg *config.Config) ([]string, error) {
	if cfg.Entropy == "" {
		entropy, err := p.PromptEntropy()
		if err != nil {
			return nil, err
		}
		cfg.Entropy = entropy
	}

	text, err := p.PromptVanity()
	if err != nil {
		return nil, err
	}
	if generator.VariantCount(text) == 1 {
		return []string{text}, nil
	}

	accept, err := p.Confirm(fmt.Sprintf("Accept 1337 speak variants of %q?", text), false)
	if err != nil {
		return nil, err
	}
	if !accept {
		return []string{text}, nil
	}

	variants := generator.ExpandVariants(text)
	if len(variants) > maxListedVariants {
		console.PrintWarning("%d variants, searching all of them", len(variants))
		return variants, nil
	}
	return p.SelectVariants(variants)
}

func flagSuffixes(cfg *config.Config) []string {
	if cfg.Variants {
		return generator.ExpandVariants(cfg.Suffix)
	}
	return []string{cfg.Suffix}
}

// estimateDifficulty returns the expected number of addresses checked
// before one ends with any of suffixes.
func estimateDifficulty(suffixes []string) uint64 {
	var p float64
	for _, s := range suffixes {
		p += math.Pow(32, -float64(len(s)))
	}
	if p >= 1 || p == 0 {
		return 1
	}
	if d := math.Round(1 / p); d < math.MaxUint64 {
		return uint64(d)
	}
	return math.MaxUint64
}
