package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/sql-parser/pkg/analyzer"
	"github.com/nsxbet/sql-parser/pkg/catalog"
	"github.com/nsxbet/sql-parser/pkg/config"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [sql-file|-]",
	Short: "Check SQL statements for problems",
	Long: `Check the statements of a SQL script and report every diagnostic found.

Besides the parser diagnostics, --validate runs each rebuilt statement
through the ANTLR MySQL grammar and --schema replays the DDL against an
existing schema, reporting changes that cannot apply.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Flags for check command
	checkCmd.Flags().Bool("validate", false, "cross-check statements with the ANTLR MySQL grammar")
	checkCmd.Flags().String("schema", "", "path to a SQL file with the existing schema")
	checkCmd.Flags().String("database", "", "current database; qualified table names in the schema must match it")
	checkCmd.Flags().Bool("fail-on-error", false, "exit with non-zero code if errors are found")
	checkCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")

	// Bind flags to viper
	_ = viper.BindPFlag("validate", checkCmd.Flags().Lookup("validate"))
	_ = viper.BindPFlag("schema", checkCmd.Flags().Lookup("schema"))
	_ = viper.BindPFlag("database", checkCmd.Flags().Lookup("database"))
	_ = viper.BindPFlag("fail-on-error", checkCmd.Flags().Lookup("fail-on-error"))
	_ = viper.BindPFlag("fail-on-warning", checkCmd.Flags().Lookup("fail-on-warning"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	slog.Debug("Starting check command", "args", args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sql, err := readInput(args)
	if err != nil {
		return err
	}
	slog.Debug("SQL read successfully", "size", len(sql))

	// Strict mode would only hide the remaining diagnostics
	cfg.Strict = false
	opts := []analyzer.Option{
		analyzer.WithConfig(cfg),
		analyzer.WithLogger(commandLogger()),
	}

	if schemaPath := viper.GetString("schema"); schemaPath != "" {
		finder, err := loadSchema(cfg, schemaPath, viper.GetString("database"))
		if err != nil {
			return err
		}
		opts = append(opts, analyzer.WithCatalog(finder))
	}

	result, err := analyzer.New(opts...).Analyze(context.Background(), sql)
	if err != nil {
		return err
	}

	if err := outputResults(cmd.OutOrStdout(), result, cfg.Output); err != nil {
		return err
	}

	// Check exit codes
	if result.HasErrors() && viper.GetBool("fail-on-error") {
		os.Exit(1)
	}
	if result.HasWarnings() && viper.GetBool("fail-on-warning") {
		os.Exit(1)
	}
	return nil
}

// loadSchema seeds a catalog with the DDL of schemaPath.
func loadSchema(cfg *config.Config, schemaPath, database string) (*catalog.Finder, error) {
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema file: %s", schemaPath)
	}
	parsed, err := parseSQL(cfg, string(data))
	if parsed == nil {
		return nil, errors.Wrapf(err, "failed to parse schema file: %s", schemaPath)
	}
	if len(parsed.Errors) > 0 {
		return nil, errors.Wrapf(parsed.Errors[0], "failed to parse schema file: %s", schemaPath)
	}

	finder := catalog.NewFinder(database, &catalog.FinderContext{CheckIntegrity: true})
	if err := finder.Seed(parsed.Statements); err != nil {
		return nil, errors.Wrapf(err, "failed to load schema file: %s", schemaPath)
	}
	slog.Debug("Loaded schema", "file", schemaPath, "tables", len(finder.Origin.Tables()))
	return finder, nil
}

func outputResults(w io.Writer, result *analyzer.Result, format string) error {
	if format != config.OutputText {
		return encode(w, format, result)
	}

	if len(result.Diagnostics) == 0 {
		fmt.Fprintf(w, "No issues found in %d statement(s).\n", result.Summary.Statements)
		return nil
	}

	table := newTable(w, "Line", "Column", "Severity", "Source", "Code", "Message")
	for _, d := range result.Diagnostics {
		table.Append([]string{
			strconv.Itoa(d.Line),
			strconv.Itoa(d.Column),
			d.Severity.String(),
			string(d.Source),
			strconv.Itoa(d.Code),
			d.Message,
		})
	}
	table.Render()

	fmt.Fprintf(w, "Summary: %d statement(s), %d error(s), %d warning(s)\n",
		result.Summary.Statements, result.Summary.Errors, result.Summary.Warnings)
	return nil
}
