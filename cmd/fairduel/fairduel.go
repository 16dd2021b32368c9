package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/caarlos0/env/v11"
	"github.com/karasz/fairduel"
)

var moves = flag.String("moves", "",
	"comma-separated list of moves; must be an odd number (>= 3) of distinct labels")

type envConfig struct {
	Moves []string `env:"FAIRDUEL_MOVES" envSeparator:","`
}

func fail(str string, args ...any) {
	flag.Usage()
	fmt.Printf(str+"\n", args...)
	os.Exit(1)
}

// moveList resolves the configured move cycle: -moves flag first, then the
// FAIRDUEL_MOVES environment variable, then the classic default.
func moveList() []string {
	if *moves != "" {
		return strings.Split(*moves, ",")
	}

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		fail("parse environment: %v", err)
	}
	if len(cfg.Moves) > 0 {
		return cfg.Moves
	}

	return []string{"rock", "paper", "scissors"}
}

func printHelp(ms fairduel.MoveSet, rules fairduel.Rules) {
	m, err := rules.Matrix()
	if err != nil {
		fail("build help table: %v", err)
	}

	labels := ms.Labels()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "you \\ rival")
	for _, l := range labels {
		fmt.Fprintf(w, "\t%s", l)
	}
	fmt.Fprintln(w)
	for i, row := range m {
		fmt.Fprint(w, labels[i])
		for _, o := range row {
			fmt.Fprintf(w, "\t%s", o)
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
}

// playOne runs a single game. Returns false when the human asked to exit
// or stdin closed.
func playOne(in *bufio.Scanner, ms fairduel.MoveSet, rules fairduel.Rules) bool {
	sess, err := fairduel.NewSession(fairduel.Config{}, ms)
	if err != nil {
		fail("start session: %v", err)
	}
	if _, err := sess.Commit(); err != nil {
		fail("commit: %v", err)
	}
	tag, err := sess.Tag()
	if err != nil {
		fail("surface tag: %v", err)
	}

	fmt.Printf("HMAC: %s\n", strings.ToUpper(hex.EncodeToString(tag[:])))
	for {
		fmt.Println("Available moves:")
		for i, l := range ms.Labels() {
			fmt.Printf("%d - %s\n", i+1, l)
		}
		fmt.Println("0 - exit")
		fmt.Println("? - help")
		fmt.Print("Enter your move: ")

		if !in.Scan() {
			return false
		}
		choice := strings.TrimSpace(in.Text())
		switch choice {
		case "0":
			return false
		case "?":
			printHelp(ms, rules)
			continue
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > ms.Len() {
			fmt.Println("Unrecognized choice, try again.")
			continue
		}

		res, err := sess.Resolve(ms.Label(n - 1))
		if err != nil {
			fail("resolve: %v", err)
		}

		fmt.Printf("Your move: %s\n", res.HumanMove)
		fmt.Printf("Computer move: %s\n", res.OpponentMove)
		switch res.Outcome {
		case fairduel.HumanWins:
			fmt.Println("You win!")
		case fairduel.OpponentWins:
			fmt.Println("You lose!")
		default:
			fmt.Println("Draw!")
		}
		fmt.Printf("HMAC key: %s\n", strings.ToUpper(hex.EncodeToString(res.Key[:])))

		if fairduel.Verify(res.Key, res.OpponentMove, res.Tag) {
			fmt.Println("Fairness check: OK (tag matches revealed key and move)")
		} else {
			fmt.Println("Fairness check: FAILED (tag does not match revealed key and move)")
		}
		if err := fairduel.AuditTranscript(res.Transcript, res.ReplayKey); err != nil {
			fmt.Printf("Transcript audit: FAILED (%v)\n", err)
		} else {
			fmt.Println("Transcript audit: OK (commitment recorded before your move)")
		}
		fmt.Println()
		return true
	}
}

func main() {
	flag.Parse()

	ms, err := fairduel.NewMoveSet(moveList())
	if err != nil {
		fail("invalid move list: %v", err)
	}
	rules := fairduel.NewRules(ms)

	in := bufio.NewScanner(os.Stdin)
	for playOne(in, ms, rules) {
	}
}
