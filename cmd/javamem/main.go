// Package main provides the JavaMem command-line front end.
// It parses a source file in the supported statement grammar, runs the
// memory-model simulation, and prints the event trace and final model.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/engine"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/gc"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

var (
	configPath = flag.String("config", "", "Path to a javamem.yaml/.json timing configuration file")
	seed       = flag.Int64("seed", 1, "Seed for randomized GC sweep delays")
	trace      = flag.Bool("trace", false, "Print every model-change event")
	verbose    = flag.Bool("v", false, "Print the final model after the run")
)

// ANSI colors per event kind, used only when stdout is a terminal.
var eventColors = map[heap.EventKind]string{
	heap.ObjectCreated:    "\033[32m",
	heap.ObjectMutated:    "\033[36m",
	heap.ObjectEligible:   "\033[33m",
	heap.ObjectCollected:  "\033[31m",
	heap.PoolEntryCreated: "\033[35m",
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: javamem [options] <program.jm>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	sourcePath := flag.Arg(0)
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading program: %v\n", err)
		os.Exit(1)
	}

	config := gc.DefaultConfig()
	if *configPath != "" {
		config, err = gc.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	stmts, syntaxErrs := stmt.NewParser().Parse(string(source))
	for _, se := range syntaxErrs {
		fmt.Fprintf(os.Stderr, "syntax error: %v\n", se)
	}

	color := isatty.IsTerminal(os.Stdout.Fd())
	opts := []engine.Option{
		engine.WithGCConfig(config),
		engine.WithSeed(*seed),
	}
	if *trace {
		opts = append(opts, engine.WithEventSink(func(ev heap.Event) {
			printEvent(ev, color)
		}))
	}

	eng := engine.New(opts...)
	execErrs := eng.Run(stmts)
	for _, ee := range execErrs {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", ee)
	}

	if *verbose {
		printModel(eng)
		fmt.Printf("\nProgram: %s\n", sourcePath)
		fmt.Printf("Statements executed: %d\n", len(stmts)-len(execErrs))
		fmt.Printf("Errors: %d syntax, %d runtime\n", len(syntaxErrs), len(execErrs))
		fmt.Printf("Model events: %d\n", len(eng.Events()))
	}

	if len(syntaxErrs) > 0 || len(execErrs) > 0 {
		os.Exit(1)
	}
}

func printEvent(ev heap.Event, color bool) {
	if !color {
		fmt.Println(ev)
		return
	}
	c, ok := eventColors[ev.Kind]
	if !ok {
		fmt.Println(ev)
		return
	}
	fmt.Printf("%s%s\033[0m\n", c, ev)
}

// printModel dumps the final frames, heap, and pool.
func printModel(eng *engine.Engine) {
	model := eng.Model()

	fmt.Println("Stack:")
	for _, f := range model.Frames() {
		fmt.Printf("  frame %s\n", f.Name)
		for _, v := range f.Vars {
			fmt.Printf("    %s %s = %s\n", v.Type, v.Name, v.Value)
		}
	}

	fmt.Println("Heap:")
	for _, id := range model.ObjectIDs() {
		obj, err := model.Object(id)
		if err != nil {
			continue
		}
		if snap, err := eng.Describe(id); err == nil {
			fmt.Printf("  #%d %s (%s, size %d):", id, snap.Kind, obj.State, snap.Size)
			for _, it := range snap.Items {
				fmt.Printf(" %s", it.Value)
			}
			fmt.Println()
			continue
		}
		switch obj.Kind {
		case heap.KindNewString:
			fmt.Printf("  #%d String %q (%s)\n", id, obj.StrVal, obj.State)
		case heap.KindBoxedInteger:
			fmt.Printf("  #%d Integer %d (%s)\n", id, obj.IntVal, obj.State)
		case heap.KindListNode:
			fmt.Printf("  #%d node %s -> %d (%s)\n", id, obj.Elem, obj.Next, obj.State)
		case heap.KindBSTNode:
			fmt.Printf("  #%d tree node %s (%s)\n", id, obj.Key, obj.State)
		default:
			fmt.Printf("  #%d %s (%s)\n", id, obj.Kind, obj.State)
		}
	}

	fmt.Println("Pool:")
	for _, id := range model.PoolIDs() {
		entry, err := model.PoolEntry(id)
		if err != nil {
			continue
		}
		fmt.Printf("  #%d %s %s (refs %d, %s)\n",
			id, entry.Kind, entry.Canonical(), model.PoolRefCount(id), entry.State)
	}
}
