package analyzer

import (
	"github.com/nsxbet/sql-parser/pkg/catalog"
	"github.com/nsxbet/sql-parser/pkg/config"
	"github.com/nsxbet/sql-parser/pkg/logger"
)

// Option is a functional option for customizing an Analyzer.
type Option func(*Analyzer)

// WithConfig sets the parser settings. The validate setting of cfg turns
// on the grammar cross-check as WithValidation does.
//
// Example:
//
//	cfg, err := config.LoadFromFile("sql-parser.yaml")
//	if err != nil {
//	    return err
//	}
//	a := analyzer.New(analyzer.WithConfig(cfg))
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		if cfg == nil {
			return
		}
		a.config = cfg
		if cfg.ValidateSQL {
			a.validate = true
		}
	}
}

// WithValidation runs every recognized statement through the ANTLR MySQL
// grammar after parsing. Statements the grammar rejects get an error
// diagnostic from the validation source.
func WithValidation(validate bool) Option {
	return func(a *Analyzer) {
		a.validate = validate
	}
}

// WithLogger sets the logger for the analyzer and the parser it drives.
func WithLogger(log logger.Interface) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// WithCatalog walks each statement through finder and reports the changes
// that cannot apply to its schema. Seed the finder with the existing schema
// first. The finder's final state is updated by every Analyze call.
//
// Example:
//
//	finder := catalog.NewFinder("app", &catalog.FinderContext{CheckIntegrity: true})
//	if err := finder.Seed(schema.Statements); err != nil {
//	    return err
//	}
//	a := analyzer.New(analyzer.WithCatalog(finder))
func WithCatalog(finder *catalog.Finder) Option {
	return func(a *Analyzer) {
		a.finder = finder
	}
}
