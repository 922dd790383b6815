package main

import (
	"fmt"
	"os"

	"fjacquet/expense-categorizer/cmd/analyze"
	"fjacquet/expense-categorizer/cmd/batch"
	"fjacquet/expense-categorizer/cmd/categorize"
	"fjacquet/expense-categorizer/cmd/root"
	"fjacquet/expense-categorizer/cmd/rules"
)

func init() {
	// 1. Register persistent flags on the root command
	root.Init()

	// 2. Add all subcommands
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
