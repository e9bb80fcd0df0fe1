package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nsxbet/sql-parser/pkg/config"
	"github.com/nsxbet/sql-parser/pkg/parser"
	"github.com/nsxbet/sql-parser/pkg/query"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
	"github.com/nsxbet/sql-parser/pkg/statements"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [sql-file|-]",
	Short: "Print the syntax tree of a SQL script",
	Long: `Parse a SQL script and print each statement with its syntax tree and
flags, followed by the diagnostics. The text output lists one statement
per line; use --output json or yaml for the full tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// parsedStatement pairs a statement with its keyword, which the tree
// itself does not carry.
type parsedStatement struct {
	Keyword   string               `json:"keyword" yaml:"keyword"`
	Flags     *query.Flags         `json:"flags" yaml:"flags"`
	Tables    []string             `json:"tables,omitempty" yaml:"tables,omitempty"`
	Statement statements.Statement `json:"statement" yaml:"statement"`
}

type parseOutput struct {
	Statements []*parsedStatement   `json:"statements" yaml:"statements"`
	Errors     []*sqlerr.ParseError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sql, err := readInput(args)
	if err != nil {
		return err
	}

	result, err := parseSQL(cfg, sql)
	if result == nil {
		return err
	}

	if cfg.Output != config.OutputText {
		out := &parseOutput{Errors: result.Errors}
		for _, stmt := range result.Statements {
			out.Statements = append(out.Statements, &parsedStatement{
				Keyword:   stmt.Keyword(),
				Flags:     query.GetFlags(stmt),
				Tables:    query.GetTables(stmt),
				Statement: stmt,
			})
		}
		if encodeErr := encode(cmd.OutOrStdout(), cfg.Output, out); encodeErr != nil {
			return encodeErr
		}
		return err
	}

	w := cmd.OutOrStdout()
	for i, stmt := range result.Statements {
		flags := query.GetFlags(stmt)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, flags.QueryType, stmt.Keyword(), query.Normalize(stmt.Build()))
	}
	printErrors(cmd.ErrOrStderr(), result.Errors)
	return err
}

// parseSQL parses sql with the parser settings of cfg. The result is nil
// only when sql cannot be tokenized.
func parseSQL(cfg *config.Config, sql string) (*parser.Result, error) {
	opts := append(cfg.ParserOptions(), parser.WithLogger(commandLogger()))
	return parser.New(opts...).Parse(sql)
}

func printErrors(w io.Writer, errs []*sqlerr.ParseError) {
	for _, e := range errs {
		fmt.Fprintf(w, "%s %d: %s\n", e.Severity, e.Code, e.Error())
	}
}
