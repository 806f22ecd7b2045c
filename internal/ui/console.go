package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/scrutinously/chia-vanity-address/pkg/generator"
)

var (
	cyanBold   = color.New(color.FgCyan, color.Bold).SprintFunc()
	greenBold  = color.New(color.FgGreen, color.Bold).SprintFunc()
	purpleBold = color.New(color.FgMagenta, color.Bold).SprintFunc()
	yellow     = color.New(color.FgYellow).SprintFunc()
	yellowBold = color.New(color.FgYellow, color.Bold).SprintFunc()
	redBold    = color.New(color.FgRed, color.Bold).SprintFunc()
	cyan       = color.New(color.FgCyan).SprintFunc()
	green      = color.New(color.FgGreen).SprintFunc()
	dim        = color.New(color.Faint).SprintFunc()
)

const barWidth = 40

// Console renders search output. Color is decided globally by
// color.NoColor, which fatih/color sets when stdout is not a terminal.
type Console struct {
	out   io.Writer
	frame int
}

// NewConsole creates a console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// ClearScreen clears the terminal
func (c *Console) ClearScreen() {
	if color.NoColor {
		return
	}
	fmt.Fprint(c.out, "\033[H\033[2J")
}

// PrintBanner shows the welcome screen
func (c *Console) PrintBanner(version string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, cyanBold("  ╔══════════════════════════════════════════════╗"))
	fmt.Fprintln(c.out, cyanBold("  ║        CHIA VANITY ADDRESS GENERATOR         ║"))
	fmt.Fprintln(c.out, cyanBold("  ╚══════════════════════════════════════════════╝"))
	fmt.Fprintf(c.out, "    %s %s\n\n", yellow("xch / txch"), dim("v"+version))
}

// PrintSearchInfo displays the match set and the expected number of
// addresses to check.
func (c *Console) PrintSearchInfo(network generator.Network, suffixes []string, workers int, maxIndex uint32, difficulty uint64) {
	fmt.Fprintf(c.out, "\n    %s %s1...%s", greenBold("SEARCHING"), network.Prefix(), cyanBold(suffixes[0]))
	if len(suffixes) > 1 {
		fmt.Fprintf(c.out, " %s", dim(fmt.Sprintf("(+%d variants)", len(suffixes)-1)))
	}
	fmt.Fprintf(c.out, " %s\n", dim(fmt.Sprintf("(1/%s)", FormatNumber(difficulty))))
	fmt.Fprintf(c.out, "    %s\n\n", dim(fmt.Sprintf("%d workers, %d addresses per key", workers, maxIndex)))
}

// PrintProgress redraws the progress line in place.
func (c *Console) PrintProgress(stats generator.Stats, difficulty uint64) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[c.frame%len(spinners)]
	c.frame++

	fmt.Fprintf(c.out, "\r    %s %s %s │ %s │ %s keys │ %s",
		cyan(spinner),
		dim(progressBar(stats.Addresses, difficulty)),
		greenBold(FormatHashRate(stats.AddressRate)),
		yellow(FormatHashRate(stats.KeyRate)+" keys"),
		FormatNumber(stats.Keys),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// progressBar draws the probability that a match has turned up by now.
func progressBar(checked, difficulty uint64) string {
	diff := float64(difficulty)
	if diff == 0 {
		diff = 1
	}
	progress := 1.0 - math.Exp(-float64(checked)/diff)

	filled := int(progress * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)
}

// ClearLine clears the current line
func (c *Console) ClearLine() {
	fmt.Fprint(c.out, "\r"+strings.Repeat(" ", 100)+"\r")
}

// PrintSuccess shows the found address and the mnemonic that controls it.
func (c *Console) PrintSuccess(result generator.Result) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, greenBold("    ╔══════════════════════════════════════════════╗"))
	fmt.Fprintln(c.out, greenBold("    ║                ADDRESS FOUND!                ║"))
	fmt.Fprintln(c.out, greenBold("    ╚══════════════════════════════════════════════╝"))
	fmt.Fprintln(c.out)

	fmt.Fprintf(c.out, "    %s\n", cyanBold(strings.ToUpper(result.Network.String())+" ADDRESS"))
	fmt.Fprintf(c.out, "       %s\n\n", greenBold(result.Address))

	fmt.Fprintf(c.out, "    %s %d   │   %s %s   │   %s %s\n\n",
		cyan("index"), result.Index,
		purpleBold("keys"), FormatNumber(result.Iterations),
		yellow("time"), FormatDuration(result.Elapsed))

	fmt.Fprintf(c.out, "    %s\n", purpleBold("MNEMONIC"))
	words := strings.Fields(result.Mnemonic())
	for i := 0; i < len(words); i += 6 {
		end := min(i+6, len(words))
		fmt.Fprintf(c.out, "       %s\n", yellow(numberedWords(words[i:end], i+1)))
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "    %s\n", redBold("KEEP YOUR MNEMONIC SECRET!"))
}

func numberedWords(words []string, start int) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%2d.%-9s", start+i, w)
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

// PrintCancelled reports an interrupted search.
func (c *Console) PrintCancelled(stats generator.Stats) {
	fmt.Fprintf(c.out, "\n\n    %s │ %s keys │ %s\n",
		yellowBold("Cancelled"),
		FormatNumber(stats.Keys),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// PrintExported reports where the public keys were written.
func (c *Console) PrintExported(path string) {
	fmt.Fprintf(c.out, "    %s %s\n", green("✓ Public keys exported to"), path)
}

// PrintWarning prints a highlighted warning line.
func (c *Console) PrintWarning(format string, args ...any) {
	fmt.Fprintf(c.out, "    %s\n", yellowBold("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintError prints a highlighted error line.
func (c *Console) PrintError(err error) {
	fmt.Fprintf(c.out, "    %s\n", redBold("✗ Error: "+err.Error()))
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
