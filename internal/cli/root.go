// Package cli wires the ccammeta commands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/rtm0/ccammeta/internal/annotate"
	"github.com/rtm0/ccammeta/internal/config"
	"github.com/rtm0/ccammeta/internal/log"
	"github.com/rtm0/ccammeta/internal/metadata"
)

// ErrMissingInput is returned when no input file is given.
var ErrMissingInput = errors.New("please specify an input file")

const longDesc = `Apply CF-compliant metadata to raw CCAM model output.

Coordinates (lon, lat, time), data variables (tas) and global attributes are
annotated following the CF conventions, and CMIP6/CORDEX where CF is silent.
The result is written to OUTPUT, or to a name derived from the variable,
domain, source, driving model and time span, e.g.

  tas_AUS-10i_CCAM_ACCESS-CM2_20150101T00-20150102T23.nc
`

type app struct {
	logger      *slog.Logger
	globalAttrs string
	trackingID  bool
}

// NewRootCmd creates the ccammeta command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.Default()}
	var dryRun bool

	cmd := &cobra.Command{
		Use:           "ccammeta INPUT [OUTPUT]",
		Short:         "Apply CF/CMIP6/CORDEX metadata to raw CCAM output",
		Long:          longDesc,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cc *cobra.Command, args []string) error {
			if len(args) < 1 {
				return ErrMissingInput
			}
			var output string
			if len(args) >= 2 {
				output = args[1]
			}
			if len(args) > 2 {
				a.logger.Warn("ignoring extra arguments", "args", args[2:])
			}

			opts, err := a.options()
			if err != nil {
				return err
			}
			opts.DryRun = dryRun
			status, err := annotate.File(a.logger, args[0], output, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cc.OutOrStdout(), status)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("log-level", "warn", "Set the log level (debug, info, warn, error)")
	pf.String("log-format", log.AutoFormat, "Set the log format (auto, text, json, pretty)")
	pf.StringVar(&a.globalAttrs, "global-attrs", "", "YAML or TOML file with global attribute overrides")
	pf.BoolVar(&a.trackingID, "tracking-id", false, "Add a generated CMIP6 tracking_id global attribute")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve the output file name without writing it")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error
		logLevel, err := flags.GetString("log-level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}
		logFormat, err := flags.GetString("log-format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}
		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		a.logger = slog.New(h)
		return nil
	}

	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newNameCmd(a))
	return cmd
}

// options builds the annotation options from the global flags and the
// optional override file.
func (a *app) options() (annotate.Options, error) {
	opts := annotate.Options{Metadata: metadata.Options{TrackingID: a.trackingID}}
	if a.globalAttrs == "" {
		return opts, nil
	}
	o, err := config.Load(a.globalAttrs)
	if err != nil {
		return opts, err
	}
	attrs, err := o.GlobalAttrs()
	if err != nil {
		return opts, fmt.Errorf("global attributes in %s: %w", a.globalAttrs, err)
	}
	opts.Metadata.Attrs = attrs
	opts.Metadata.TrackingID = opts.Metadata.TrackingID || o.TrackingID
	a.logger.Debug("loaded global attribute overrides", "path", a.globalAttrs, "replaceDefaults", o.ReplaceDefaults)
	return opts, nil
}
