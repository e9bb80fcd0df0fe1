package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/parser"
	"github.com/nsxbet/sql-parser/pkg/query"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] [sql-file|-]",
	Short: "Rebuild a SQL script in canonical form",
	Long: `Parse a SQL script and print every statement rebuilt from its syntax
tree: keywords upper-cased, clauses in canonical order, one statement
per line. Diagnostics go to standard error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().Bool("strip-comments", false, "remove comments before parsing")
	formatCmd.Flags().Bool("color", false, "highlight statements by type")
	formatCmd.Flags().String("output-delimiter", "", "delimiter written after each statement (default is the input delimiter)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sql, err := readInput(args)
	if err != nil {
		return err
	}

	if strip, _ := cmd.Flags().GetBool("strip-comments"); strip {
		if sql, err = query.StripComments(sql, lexer.WithDelimiter(cfg.Delimiter), lexer.WithMode(cfg.Mode())); err != nil {
			return err
		}
	}

	result, err := parseSQL(cfg, sql)
	if result == nil {
		return err
	}

	w := cmd.OutOrStdout()
	delimiter, _ := cmd.Flags().GetString("output-delimiter")
	color, _ := cmd.Flags().GetBool("color")
	switch {
	case color:
		for _, stmt := range result.Statements {
			fmt.Fprintln(w, query.Highlight(stmt)+cfg.Delimiter)
		}
	case delimiter != "":
		fmt.Fprintln(w, parser.Build(result.Statements, delimiter))
	default:
		fmt.Fprintln(w, result.Build())
	}
	printErrors(cmd.ErrOrStderr(), result.Errors)
	return err
}
