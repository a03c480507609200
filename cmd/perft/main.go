// Command perft runs the move generator's standard conformance benchmark:
// count leaf positions at a fixed depth from a given FEN, optionally
// broken down move by move (divide) or driven interactively off stdin.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"bitchess/chess"
)

func main() {
	fen := flag.String("fen", chess.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required unless -i)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	interactive := flag.Bool("i", false, "Interactive mode: read \"<fen> <depth>\" lines from a prompt")
	flag.Parse()

	if *interactive {
		runInteractive()
		return
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := chess.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		printDivide(board, *depth)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += chess.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func printDivide(board chess.Board, depth int) {
	div := chess.PerftDivide(board, depth)
	type kv struct {
		m chess.Move
		n uint64
	}
	arr := make([]kv, 0, len(div))
	var sum uint64
	for m, n := range div {
		arr = append(arr, kv{m, n})
		sum += n
	}
	slices.SortFunc(arr, func(a, b kv) int {
		switch {
		case a.m.String() < b.m.String():
			return -1
		case a.m.String() > b.m.String():
			return 1
		default:
			return 0
		}
	})
	for _, x := range arr {
		fmt.Printf("%s: %d\n", x.m.String(), x.n)
	}
	fmt.Printf("Total: %d\n", sum)
}

// runInteractive reads "<fen> <depth>" lines from a readline prompt and
// prints the divide output for each, letting someone bisect a suspected
// move generator bug against a reference engine without relaunching the
// binary per position.
func runInteractive() {
	rl, err := readline.New("perft> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init: %v\n", err)
		os.Exit(2)
	}
	defer rl.Close()

	fmt.Println("enter \"<fen> <depth>\", or \"startpos <depth>\"; Ctrl-D to quit")
	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			fmt.Println("expected a FEN (or \"startpos\") followed by a depth")
			continue
		}
		depthStr := fields[len(fields)-1]
		d, err := strconv.Atoi(depthStr)
		if err != nil || d <= 0 {
			fmt.Println("last token must be a positive depth")
			continue
		}
		fenPart := strings.Join(fields[:len(fields)-1], " ")
		if fenPart == "startpos" {
			fenPart = chess.StartFEN
		}
		board, err := chess.ParseFEN(fenPart)
		if err != nil {
			fmt.Printf("ParseFEN error: %v\n", err)
			continue
		}
		printDivide(board, d)
	}
}
