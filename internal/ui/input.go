package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/scrutinously/chia-vanity-address/pkg/generator/chia"
)

// ErrBadSelection is returned for variant selections that cannot be parsed.
var ErrBadSelection = errors.New("invalid selection")

// Prompter asks the user questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// readSecret reads one line without echo; nil reads from in.
	readSecret func() (string, error)
}

// NewPrompter creates a prompter on stdin. Entropy is read without echo
// when stdin is a terminal.
func NewPrompter(out io.Writer) *Prompter {
	p := NewPrompterFrom(os.Stdin, out)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		p.readSecret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			return string(b), err
		}
	}
	return p
}

// NewPrompterFrom creates a prompter reading plain lines from in.
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptEntropy asks for optional text mixed into key generation.
func (p *Prompter) PromptEntropy() (string, error) {
	fmt.Fprintf(p.out, "    %s\n", purpleBold("ENTROPY"))
	fmt.Fprintf(p.out, "    %s ", cyan("Type some random text (hidden, Enter to skip):"))
	if p.readSecret != nil {
		s, err := p.readSecret()
		return strings.TrimSpace(s), err
	}
	return p.readLine()
}

// PromptVanity asks for the vanity text until a non-empty answer is given.
// Characters that never appear in an address are reported but accepted,
// since a leetspeak variant may still replace them.
func (p *Prompter) PromptVanity() (string, error) {
	fmt.Fprintf(p.out, "\n    %s\n", purpleBold("TARGET SUFFIX"))
	for {
		fmt.Fprintf(p.out, "    %s (...xxx): ", cyan("Vanity text"))
		s, err := p.readLine()
		if err != nil {
			return "", err
		}
		if s == "" {
			fmt.Fprintf(p.out, "    %s\n", redBold("⚠ Vanity text must not be empty"))
			continue
		}
		if invalid := chia.InvalidBech32Chars(s); len(invalid) > 0 {
			fmt.Fprintf(p.out, "    %s\n", yellow(fmt.Sprintf("⚠ %q never appear in an address (not allowed: 1, b, i, o)", string(invalid))))
		}
		return strings.ToLower(s), nil
	}
}

// Confirm asks a yes/no question. An empty answer selects def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "    %s [%s]: ", question, hint)
	s, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// SelectVariants lists variants and returns the ones the user picks.
// Unparseable answers are asked again.
func (p *Prompter) SelectVariants(variants []string) ([]string, error) {
	fmt.Fprintf(p.out, "\n    %s\n", purpleBold("VARIANTS"))
	for i, v := range variants {
		label := v
		if !chia.IsReachableSuffix(v) {
			label += " " + dim("(unreachable)")
		}
		fmt.Fprintf(p.out, "    %s %s\n", cyan(fmt.Sprintf("[%d]", i+1)), label)
	}

	for {
		fmt.Fprintf(p.out, "\n    %s ", cyan("Select (e.g. 1,3,5-7 or all):"))
		s, err := p.readLine()
		if err != nil {
			return nil, err
		}
		picked, err := ParseSelection(s, len(variants))
		if err != nil {
			fmt.Fprintf(p.out, "    %s\n", redBold("⚠ "+err.Error()))
			continue
		}
		selected := make([]string, len(picked))
		for i, n := range picked {
			selected[i] = variants[n-1]
		}
		return selected, nil
	}
}

// ParseSelection parses a 1-based selection such as "1,3,5-7" or "all"
// against n options. The result is in input order without duplicates.
func ParseSelection(input string, n int) ([]int, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return nil, fmt.Errorf("%w: nothing selected", ErrBadSelection)
	}
	if input == "all" || input == "a" {
		all := make([]int, n)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var picked []int
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		lo, hi, err := parseRange(field)
		if err != nil {
			return nil, err
		}
		if lo < 1 || hi > n || lo > hi {
			return nil, fmt.Errorf("%w: %q out of range 1-%d", ErrBadSelection, field, n)
		}
		for i := lo; i <= hi; i++ {
			if !seen[i] {
				seen[i] = true
				picked = append(picked, i)
			}
		}
	}
	if len(picked) == 0 {
		return nil, fmt.Errorf("%w: nothing selected", ErrBadSelection)
	}
	return picked, nil
}

func parseRange(field string) (int, int, error) {
	before, after, isRange := strings.Cut(field, "-")
	lo, err := strconv.Atoi(strings.TrimSpace(before))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSelection, field)
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(strings.TrimSpace(after))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSelection, field)
	}
	return lo, hi, nil
}
