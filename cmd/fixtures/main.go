package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	fixturesqlite "github.com/goliatone/go-fixtures/adapters/sqlite"
	"github.com/goliatone/go-fixtures/fixture"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fixtures error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	switch args[1] {
	case "convert":
		return runConvert(args[2:])
	case "inspect":
		return runInspect(args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	source := fs.String("source", "", "Path to the JSON fixture source")
	format := fs.String("format", "sqlite", "Output format: csv, sqlite or xlsx")
	out := fs.String("out", "", "Output file path")
	hardened := fs.Bool("hardened", false, "Use parameter binding for SQLite inserts")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" {
		return fmt.Errorf("missing required flag: --source")
	}
	if *out == "" {
		return fmt.Errorf("missing required flag: --out")
	}

	conv := fixture.NewConverter()
	conv.Logger = stderrLogger{}
	if err := conv.Writers.Register(fixture.FormatSQLite, fixturesqlite.Writer{}); err != nil {
		return err
	}

	_, err := conv.Convert(context.Background(), fixture.ConvertRequest{
		Source: *source,
		Format: fixture.Format(*format),
		Output: *out,
		Options: fixture.WriteOptions{
			SQLite: fixture.SQLiteOptions{Hardened: *hardened},
		},
	})
	return err
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	db := fs.String("db", "", "Path to the fixture database")
	table := fs.String("table", "", "Table to dump; lists all tables when omitted")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *db == "" {
		return fmt.Errorf("missing required flag: --db")
	}

	inspector, err := fixturesqlite.Open(*db)
	if err != nil {
		return err
	}
	defer func() {
		_ = inspector.Close()
	}()

	ctx := context.Background()

	if *table != "" {
		set, err := inspector.Table(ctx, *table)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(set.Columns, "\t"))
		for _, row := range set.Rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		return nil
	}

	tables, err := inspector.Tables(ctx)
	if err != nil {
		return err
	}
	for _, info := range tables {
		columns := make([]string, len(info.Columns))
		for i, col := range info.Columns {
			columns[i] = col.Name + " " + col.Type
		}
		fmt.Printf("%s (%s): %d rows\n", info.Name, strings.Join(columns, ", "), info.Rows)
	}
	return nil
}

func printUsage() {
	fmt.Println(`Usage: fixtures <command> [flags]

Commands:
  convert   Convert a JSON fixture source into a CSV, SQLite or XLSX file
  inspect   Show tables or rows of a generated SQLite fixture
  help      Show this message

Examples:
  fixtures convert --source v1.json --format sqlite --out v1.sqlite
  fixtures convert --source v1.json --format csv --out v1.csv
  fixtures inspect --db v1.sqlite --table People`)
}

type stderrLogger struct{}

func (stderrLogger) Debugf(string, ...any) {}

func (stderrLogger) Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (stderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
