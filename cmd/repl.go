package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nsxbet/sql-parser/pkg/config"
	"github.com/nsxbet/sql-parser/pkg/query"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse statements interactively",
	Long: `Start an interactive shell. Each statement typed is parsed as soon as
its delimiter is entered; the shell prints the rebuilt statement, its
type and the diagnostics.

Commands:
  \q   quit
  \c   clear the current input
  \t   toggle printing the tables a statement uses`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().String("history", "", "history file (default is $HOME/.sql-parser_history)")
}

const (
	replPrompt         = "sql> "
	replContinuePrompt = "  -> "
)

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	history, _ := cmd.Flags().GetString("history")
	if history == "" {
		if home, err := os.UserHomeDir(); err == nil {
			history = filepath.Join(home, ".sql-parser_history")
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     history,
		InterruptPrompt: "^C",
		EOFPrompt:       `\q`,
	})
	if err != nil {
		return errors.Wrap(err, "failed to start the shell")
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "Statements end with %q. Type \\q to quit.\n", cfg.Delimiter)
	shell := &replShell{cfg: cfg, out: rl.Stdout(), errOut: rl.Stderr()}
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if shell.buffer.Len() == 0 {
				return nil
			}
			shell.buffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if !shell.handle(line) {
			return nil
		}
		if shell.buffer.Len() > 0 {
			rl.SetPrompt(replContinuePrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
}

// replShell holds the input typed so far.
type replShell struct {
	cfg        *config.Config
	out        io.Writer
	errOut     io.Writer
	buffer     strings.Builder
	showTables bool
}

// handle processes one input line and reports whether the shell goes on.
func (s *replShell) handle(line string) bool {
	switch strings.TrimSpace(line) {
	case `\q`, "exit", "quit":
		return false
	case `\c`:
		s.buffer.Reset()
		return true
	case `\t`:
		s.showTables = !s.showTables
		fmt.Fprintf(s.out, "tables: %v\n", s.showTables)
		return true
	}

	if s.buffer.Len() > 0 {
		s.buffer.WriteByte('\n')
	}
	s.buffer.WriteString(line)
	if !strings.HasSuffix(strings.TrimSpace(line), s.cfg.Delimiter) {
		return true
	}

	sql := s.buffer.String()
	s.buffer.Reset()
	s.run(sql)
	return true
}

func (s *replShell) run(sql string) {
	result, err := parseSQL(s.cfg, sql)
	if result == nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	for _, stmt := range result.Statements {
		flags := query.GetFlags(stmt)
		fmt.Fprintf(s.out, "%s%s\n", query.Highlight(stmt), s.cfg.Delimiter)
		fmt.Fprintf(s.out, "  type: %s\n", flags.QueryType)
		if tables := query.GetTables(stmt); s.showTables && len(tables) > 0 {
			fmt.Fprintf(s.out, "  tables: %s\n", strings.Join(tables, ", "))
		}
	}
	printErrors(s.errOut, result.Errors)
}
