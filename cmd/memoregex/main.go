// Command memoregex runs the memoized backtracking engine from the
// command line, following the grammar in spec.md §6:
//
//	memoregex <memo-mode> <encoding> -f <file.json>
//	memoregex <memo-mode> <encoding> <regex> <input> singlerlek <k>
//	memoregex <memo-mode> <encoding> <regex> <input> multiplerlek <k1,k2,...>
//
// Grounded on main.c's argument handling and cobra's Command/Args
// pattern, as used by the example pack's own cobra-based CLI tools.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jdavis-research/memoregex"
	"github.com/jdavis-research/memoregex/inst"
	"github.com/jdavis-research/memoregex/query"
	"github.com/jdavis-research/memoregex/vm"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var fileFlag string

	cmd := &cobra.Command{
		Use:           "memoregex <memo-mode> <encoding> (-f file.json | <regex> <input> (singlerlek <k> | multiplerlek <k1,k2,...>))",
		Short:         "Run a pattern through the memoized backtracking regex engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, fileFlag)
		},
	}
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "load pattern/input/rleKValue from a JSON file")
	return cmd
}

func run(cmd *cobra.Command, args []string, fileFlag string) error {
	memoMode, err := parseMemoMode(args[0])
	if err != nil {
		return err
	}
	encoding, err := parseEncoding(args[1], memoMode)
	if err != nil {
		return err
	}

	opts := memoregex.DefaultOptions()
	opts.MemoMode = memoMode
	opts.MemoEncoding = encoding

	var pattern, input string

	if fileFlag != "" {
		f, err := os.Open(fileFlag)
		if err != nil {
			return fmt.Errorf("memoregex: %w", err)
		}
		defer f.Close()
		q, err := query.Load(f)
		if err != nil {
			return err
		}
		pattern, input = q.Pattern, q.Input
		if q.RLEKValue > 0 {
			opts.SingleRLEK = q.RLEKValue
		}
	} else {
		rest := args[2:]
		if len(rest) < 2 {
			return fmt.Errorf("memoregex: usage: %s", cmd.Use)
		}
		pattern = rest[0]
		input = unescape(rest[1])

		if len(rest) > 2 {
			switch rest[2] {
			case "singlerlek":
				if len(rest) < 4 {
					return fmt.Errorf("memoregex: singlerlek requires a value")
				}
				k, err := strconv.Atoi(rest[3])
				if err != nil {
					return fmt.Errorf("memoregex: invalid singlerlek value %q: %w", rest[3], err)
				}
				opts.SingleRLEK = k
			case "multiplerlek":
				if len(rest) < 4 {
					return fmt.Errorf("memoregex: multiplerlek requires a comma-separated list")
				}
				ks, err := parseIntList(rest[3])
				if err != nil {
					return err
				}
				opts.PerVertexRLEK = ks
			default:
				return fmt.Errorf("memoregex: unexpected argument %q, want singlerlek or multiplerlek", rest[2])
			}
		}
	}

	re, err := memoregex.CompileWithOptions(pattern, opts)
	if err != nil {
		return err
	}
	res, err := re.Run(input)
	if err != nil {
		return err
	}

	printResult(cmd, res)
	return nil
}

func printResult(cmd *cobra.Command, res *vm.Result) {
	out := cmd.OutOrStdout()
	if !res.Matched {
		fmt.Fprintln(out, "-no match-")
	} else {
		last := 0
		for i, g := range res.Groups {
			if g[0] != -1 || g[1] != -1 {
				last = i
			}
		}
		fmt.Fprint(out, "match")
		for i := 0; i <= last; i++ {
			g := res.Groups[i]
			fmt.Fprint(out, " (")
			if g[0] == -1 {
				fmt.Fprint(out, "?")
			} else {
				fmt.Fprint(out, g[0])
			}
			fmt.Fprint(out, ",")
			if g[1] == -1 {
				fmt.Fprint(out, "?")
			} else {
				fmt.Fprint(out, g[1])
			}
			fmt.Fprint(out, ")")
		}
		fmt.Fprintln(out)
	}

	res.Stats.Print(out)
	res.Stats.WriteJSON(os.Stderr)
}

func parseMemoMode(s string) (inst.MemoMode, error) {
	switch s {
	case "none":
		return inst.MemoNone, nil
	case "full":
		return inst.MemoFull, nil
	case "indeg":
		return inst.MemoInDegreeGT1, nil
	case "loop":
		return inst.MemoLoopDest, nil
	default:
		return 0, fmt.Errorf("memoregex: unknown memo-mode %q, want one of none,full,indeg,loop", s)
	}
}

func parseEncoding(s string, memoMode inst.MemoMode) (inst.MemoEncoding, error) {
	if memoMode == inst.MemoNone {
		return inst.EncodingNone, nil
	}
	switch s {
	case "none":
		return inst.EncodingNone, nil
	case "neg":
		return inst.EncodingNegative, nil
	case "rle":
		return inst.EncodingRLE, nil
	case "rle-tuned":
		return inst.EncodingRLETuned, nil
	default:
		return 0, fmt.Errorf("memoregex: unknown encoding %q, want one of none,neg,rle,rle-tuned", s)
	}
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ks := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("memoregex: invalid multiplerlek value %q: %w", p, err)
		}
		ks[i] = v
	}
	return ks, nil
}

// unescape processes the C-style escapes spec.md §6 specifies for
// inline-mode input: \n \t \\ \" \'. Any other backslash-letter pair
// passes through as the literal next character (the backslash is
// dropped), matching the original's processStringWithEscapes.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
