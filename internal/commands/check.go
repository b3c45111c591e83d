package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thrift-columnar/internal/descriptor"
)

type checkOptions struct {
	descriptors []string
}

func registerCheckCmd(parent *cobra.Command, a *app) {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate descriptor files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, a, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.descriptors, "descriptor", "d", nil, "Descriptor file(s)")

	parent.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, a *app, opts *checkOptions) error {
	paths := opts.descriptors
	if len(paths) == 0 {
		paths = a.cfg.Descriptors
	}

	if len(paths) == 0 {
		return errors.New("no descriptor files given")
	}

	files, err := descriptor.LoadFiles(paths...)
	if err != nil {
		return err
	}

	diags := descriptor.Validate(files...)
	out := cmd.OutOrStdout()

	for _, d := range diags.All() {
		fmt.Fprintln(out, d.String())
	}

	if diags.HasErrors() {
		return errors.Newf("%d error(s) found", len(diags.Errors))
	}

	fmt.Fprintf(out, "ok: %d file(s)\n", len(files))

	return nil
}
