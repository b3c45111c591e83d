// Package commands contains the CLI command definitions.
package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"thrift-columnar/internal/config"
	"thrift-columnar/internal/convert"
	"thrift-columnar/internal/registry"
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd creates the root command of the CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "thrift-columnar",
		Short:         "Convert thrift struct descriptors to columnar schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at debug level")

	registerConvertCmd(root, a)
	registerReconcileCmd(root, a)
	registerCheckCmd(root, a)

	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	lvl, err := cfg.Level()
	if err != nil {
		return err
	}

	zc := zap.NewProductionConfig()
	if a.verbose {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := zc.Build()
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// registry loads the descriptors named on the command line, or those of the
// config when none are.
func (a *app) registry(paths []string) (*registry.Registry, error) {
	if len(paths) == 0 {
		paths = a.cfg.Descriptors
	}

	if len(paths) == 0 {
		return nil, errors.New("no descriptor files given")
	}

	var copts []convert.Option
	if a.cfg.MessageName != "" {
		copts = append(copts, convert.WithMessageName(a.cfg.MessageName))
	}

	copts = append(copts, convert.WithLogger(a.logger))

	return registry.Load(paths,
		registry.WithCacheSize(a.cfg.CacheSize),
		registry.WithConverter(convert.New(copts...)),
		registry.WithLogger(a.logger),
	)
}

// recordType returns flag when set, otherwise the configured record type.
func (a *app) recordType(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	if a.cfg.RecordType != "" {
		return a.cfg.RecordType, nil
	}

	return "", errors.New("no record type given, use --type")
}
