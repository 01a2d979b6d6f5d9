package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/frederic-klein/pip-mark-installed/internal/config"
	"github.com/frederic-klein/pip-mark-installed/internal/distinfo"
	"github.com/frederic-klein/pip-mark-installed/internal/pkgspec"
	"github.com/frederic-klein/pip-mark-installed/internal/sitepkgs"
)

const examples = `  pip-mark-installed some-package
  pip-mark-installed some-package==1.0.0 another-package==2.0.0
  pip-mark-installed opencv-python --site-packages ./venv/lib/python3.12/site-packages`

type options struct {
	sitePackages string
	python       string
	requirement  string
	configPath   string
	verbose      bool
}

// NewRootCmd builds the pip-mark-installed command.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pip-mark-installed PACKAGE_SPEC [PACKAGE_SPEC ...]",
		Short: "Mark packages as installed by creating metadata files",
		Long: `Mark packages as installed in pip without actually installing them.

Each PACKAGE_SPEC is either PACKAGE_NAME (marked as version ` + pkgspec.DefaultVersion + `)
or PACKAGE_NAME==VERSION. Useful e.g. for resolving conflicts between
different OpenCV variants that share the same namespace.`,
		Example:      examples,
		Version:      version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.sitePackages, "site-packages", "", "Path to the site-packages directory (optional)")
	cmd.Flags().StringVar(&opts.python, "python", sitepkgs.DefaultPython, "Python interpreter used to locate site-packages")
	cmd.Flags().StringVarP(&opts.requirement, "requirement", "r", "", "Read package specs from a requirements file")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/pip-mark-installed/config.yaml)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyConfig(cmd, opts, cfg)

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	defaultVersion := pkgspec.DefaultVersion
	if cfg.DefaultVersion != "" {
		defaultVersion = cfg.DefaultVersion
	}

	specs := make([]pkgspec.Spec, 0, len(args))
	for _, arg := range args {
		specs = append(specs, pkgspec.ParseWithDefault(arg, defaultVersion))
	}
	if opts.requirement != "" {
		fromFile, err := pkgspec.ParseFile(opts.requirement, defaultVersion)
		if err != nil {
			return err
		}
		logger.Debug("read requirements file", "path", opts.requirement, "specs", len(fromFile))
		specs = append(specs, fromFile...)
	}

	if len(specs) == 0 {
		return cmd.Help()
	}

	resolver := sitepkgs.NewResolver(opts.python, logger)
	if opts.sitePackages == "" {
		logger.Debug("locating site-packages", "python", resolver.Python())
	}
	root, err := resolver.Resolve(cmd.Context(), opts.sitePackages)
	if err != nil {
		return fmt.Errorf("locating site-packages: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Using Python environment at: %s\n", root)

	writer := distinfo.NewWriter(root, out, logger)
	for _, spec := range specs {
		logger.Debug("marking package", "spec", spec.String())

		err := writer.Mark(spec)
		var already *distinfo.AlreadyInstalledError
		switch {
		case err == nil:
		case errors.As(err, &already):
			fmt.Fprintf(out, "Error: %s\n", already.Error())
		default:
			return fmt.Errorf("marking %s: %w", spec.Name, err)
		}
	}

	return nil
}

// applyConfig fills options not set on the command line from cfg.
func applyConfig(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("site-packages") && cfg.SitePackages != "" {
		opts.sitePackages = cfg.SitePackages
	}
	if !flags.Changed("python") && cfg.Python != "" {
		opts.python = cfg.Python
	}
	if !flags.Changed("verbose") && cfg.Verbose {
		opts.verbose = true
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "pip-mark-installed",
		Level:  level,
	})
}
