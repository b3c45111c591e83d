package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thrift-columnar/internal/projection"
)

const (
	formatText  = "text"
	formatArrow = "arrow"
)

type convertOptions struct {
	descriptors []string
	recordType  string
	filter      string
	format      string
}

func registerConvertCmd(parent *cobra.Command, a *app) {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Print the columnar schema of a record type",
		Example: `  # Full schema
  thrift-columnar convert --descriptor types.yaml --type Person

  # Projected schema
  thrift-columnar convert -d types.yaml -t Person --filter "name;address.*"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, a, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.descriptors, "descriptor", "d", nil, "Descriptor file(s)")
	cmd.Flags().StringVarP(&opts.recordType, "type", "t", "", "Record type to convert")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Projection patterns separated by ';'")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Output format (text, arrow)")

	parent.AddCommand(cmd)
}

func runConvert(cmd *cobra.Command, a *app, opts *convertOptions) error {
	if opts.format != formatText && opts.format != formatArrow {
		return errors.Newf("unknown format %q", opts.format)
	}

	name, err := a.recordType(opts.recordType)
	if err != nil {
		return err
	}

	pattern := opts.filter
	if pattern == "" {
		pattern = a.cfg.ColumnFilter
	}

	filter, err := projection.Parse(pattern)
	if err != nil {
		return err
	}

	reg, err := a.registry(opts.descriptors)
	if err != nil {
		return err
	}

	msg, err := reg.Convert(name, filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.format == formatArrow {
		sc, err := msg.ToArrow()
		if err != nil {
			return err
		}

		for i := 0; i < sc.NumColumns(); i++ {
			fmt.Fprintln(out, sc.Column(i).Path())
		}

		return nil
	}

	fmt.Fprint(out, msg.String())

	return nil
}
