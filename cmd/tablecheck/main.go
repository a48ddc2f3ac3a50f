// Command tablecheck reports the coverage of an experience table file.
//
// Usage:
//
//	tablecheck [path]
//
// With no path the embedded table is checked. The exit status is 1 when any
// category is missing a level, or 2 when the file does not match the
// table schema or cannot be loaded.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/neo84716/ro-data/internal/exptable"
	"github.com/neo84716/ro-data/internal/validation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tablecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := fs.Arg(0)
	if path != "" {
		if err := validation.NewSchemaValidator().ValidateFile(path, validation.SchemaExpTable); err != nil {
			fmt.Fprintf(stderr, "tablecheck: %v\n", err)
			return 2
		}
	}

	table, err := exptable.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "tablecheck: %v\n", err)
		return 2
	}

	return report(table.Summaries(), stdout)
}

func report(summaries []exptable.Summary, out io.Writer) int {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tMAX LEVEL\tTOTAL EXP\tMISSING")

	status := 0
	for _, s := range summaries {
		missing := "-"
		if len(s.Missing) > 0 {
			missing = fmt.Sprint(s.Missing)
			status = 1
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.Category, s.MaxLevel, p.Sprintf("%.0f", s.TotalExp), missing)
	}
	tw.Flush()
	return status
}
