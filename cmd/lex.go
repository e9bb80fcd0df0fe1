package cmd

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nsxbet/sql-parser/pkg/config"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/types"
)

var lexCmd = &cobra.Command{
	Use:   "lex [flags] [sql-file|-]",
	Short: "Print the tokens of a SQL script",
	Long: `Tokenize a SQL script and print every token with its type, flags and
position. Whitespace is hidden unless --all is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().Bool("all", false, "include whitespace tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sql, err := readInput(args)
	if err != nil {
		return err
	}

	lx := lexer.New(lexer.WithDelimiter(cfg.Delimiter), lexer.WithMode(cfg.Mode()))
	list, err := lx.Lex(sql)
	if err != nil {
		return err
	}
	slog.Debug("Lexed input", "tokens", list.Count, "diagnostics", len(lx.Diagnostics()))

	all, _ := cmd.Flags().GetBool("all")
	tokens := make([]*lexer.Token, 0, list.Count)
	for _, tok := range list.Tokens {
		if all || tok.Type != lexer.TypeWhitespace {
			tokens = append(tokens, tok)
		}
	}

	if cfg.Output != config.OutputText {
		return encode(cmd.OutOrStdout(), cfg.Output, tokens)
	}

	index := types.NewLineIndex(sql)
	table := newTable(cmd.OutOrStdout(), "#", "Type", "Value", "Raw", "Flags", "Position")
	for i, tok := range tokens {
		table.Append([]string{
			strconv.Itoa(i),
			tok.Type.String(),
			tok.Value,
			strconv.Quote(tok.Raw),
			strconv.FormatUint(uint64(tok.Flags), 2),
			index.Position(tok.Position).String(),
		})
	}
	table.Render()

	for _, d := range lx.Diagnostics() {
		cmd.PrintErrf("warning: %s at %s\n", d.Message, index.Position(d.Token.Position))
	}
	return nil
}
