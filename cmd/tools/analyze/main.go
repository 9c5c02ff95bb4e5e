// Batch analyzer: reads a statement file, prints the derived table and
// liquidity metrics, and optionally requests AI commentary.
//
// Usage:
//
//	go run ./cmd/tools/analyze -file statement.xlsx [-commentary] [-strict]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/calc"
	"statement_insight/pkg/core/ingest"
	"statement_insight/pkg/core/insight"
	"statement_insight/pkg/core/report"

	"github.com/joho/godotenv"
)

func main() {
	filePath := flag.String("file", "", "statement file (.xlsx, .csv or .html)")
	withCommentary := flag.Bool("commentary", false, "request AI commentary after analysis")
	strict := flag.Bool("strict", false, "strict numeric mode: report undefined instead of epsilon math")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	godotenv.Load()

	f, err := os.Open(*filePath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := ingest.Parse(*filePath, f)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	opts := calc.Options{}
	if *strict {
		opts.Mode = calc.ModeStrict
	}

	table, err := calc.Analyze(rows, opts)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Anchor row: %s\n\n", table.AnchorLabel)
	fmt.Println(report.Table(table))

	metrics, warning := calc.CurrentRatios(table, opts.Matcher)
	if warning != nil {
		fmt.Printf("[WARNING] %v\n", warning)
	} else {
		fmt.Println(report.LiquiditySummary(metrics))
	}

	if !*withCommentary {
		return
	}

	mgr := agent.NewManager(agent.Config{})
	dataForAI := insight.BuildDataForAI(table, metrics, opts.Matcher)
	text, err := insight.Commentary(context.Background(), mgr, dataForAI)
	if err != nil {
		fmt.Printf("[ERROR] commentary unavailable: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\n--- AI Commentary ---")
	fmt.Println(text)
}
