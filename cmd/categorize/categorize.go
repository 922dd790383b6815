// Package categorize handles single-description categorization commands
package categorize

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fjacquet/expense-categorizer/cmd/root"
	"fjacquet/expense-categorizer/internal/categorizer"
)

var descriptions []string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description...]",
	Short: "Categorize transaction descriptions",
	Long: `Categorize one or more transaction descriptions with the keyword rule table
and print the matching category.`,
	Example: `  expense-categorizer categorize "STARBUCKS COFFEE #123"
  expense-categorizer categorize -d "Uber trip" -d "Salary deposit"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.OutOrStdout(), c.GetCategorizer(), append(append([]string{}, descriptions...), args...))
	},
}

func init() {
	Cmd.Flags().StringArrayVarP(&descriptions, "description", "d", nil, "Description to categorize (repeatable)")
}

// Run prints the category of each description. A single description prints
// only its category; several print one aligned row each.
func Run(out io.Writer, cat *categorizer.Categorizer, inputs []string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("at least one description is required")
	}

	if len(inputs) == 1 {
		category := cat.CategorizeString(inputs[0])
		_, err := fmt.Fprintf(out, "%s %s\n", category.Style().Emoji, category)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, input := range inputs {
		category := cat.CategorizeString(input)
		fmt.Fprintf(tw, "%s\t%s %s\n", input, category.Style().Emoji, category)
	}
	return tw.Flush()
}
