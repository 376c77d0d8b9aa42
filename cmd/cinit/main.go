package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/krocki/cinit"
)

func main() {
	var (
		scenario = flag.Int("scenario", 0, "Which worked example to lower (1-6); 0 runs all of them")
		trace    = flag.Bool("trace", false, "Emit a 'tracing enabled' line through glog, shown only when glog's -v is 1 or more")
	)
	flag.Parse()

	if *trace {
		cinit.Diag().Tracef("tracing enabled")
	}

	if *scenario != 0 {
		if *scenario < 1 || *scenario > len(scenarios) {
			log.Fatalf("No such scenario: %d", *scenario)
		}
		run(*scenario)
		return
	}
	for n := 1; n <= len(scenarios); n++ {
		run(n)
	}
}

func run(n int) {
	s := scenarios[n-1]
	sym, env, text := s.build()

	fmt.Printf("scenario %d: %s\n", n, s.source)

	def := cinit.NewDefinition(sym)
	ts := cinit.NewTokenStream(text)
	block := cinit.AcquireBlock()
	block = cinit.Initializer(def, ts, env, block, sym)

	for _, a := range block.Code {
		printAssign(a)
	}
	block.Code = nil
	cinit.ReleaseBlock(block)
	cinit.FinalizePool()
	fmt.Println()
}

func printAssign(a cinit.IRAssign) {
	loc := fmt.Sprintf("@%d", a.Target.Offset)
	if a.Target.FieldWidth > 0 {
		loc = fmt.Sprintf("@%d:%d+%d", a.Target.Offset, a.Target.FieldOffset, a.Target.FieldWidth)
	}
	switch a.Expr.Kind {
	case cinit.ExprImmediate:
		fmt.Printf("  %-16s %s = %d\n", a.Target.Type, loc, a.Expr.IntVal)
	default:
		fmt.Printf("  %-16s %s = <expr>\n", a.Target.Type, loc)
	}
}
