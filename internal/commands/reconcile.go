package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thrift-columnar/internal/columnar"
	"thrift-columnar/internal/readsupport"
)

type reconcileOptions struct {
	descriptors []string
	recordType  string
	fileSchema  string
}

func registerReconcileCmd(parent *cobra.Command, a *app) {
	opts := &reconcileOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Show how a stored schema's collections map onto a record type",
		Example: `  thrift-columnar reconcile -d types.yaml -t Person --file-schema person.schema`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd, a, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.descriptors, "descriptor", "d", nil, "Descriptor file(s)")
	cmd.Flags().StringVarP(&opts.recordType, "type", "t", "", "Record type stored in the file")
	cmd.Flags().StringVarP(&opts.fileSchema, "file-schema", "s", "", "File holding the stored message schema")

	_ = cmd.MarkFlagRequired("file-schema")

	parent.AddCommand(cmd)
}

func runReconcile(cmd *cobra.Command, a *app, opts *reconcileOptions) error {
	name, err := a.recordType(opts.recordType)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(opts.fileSchema)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", opts.fileSchema)
	}

	stored, err := columnar.ParseMessage(string(text))
	if err != nil {
		return err
	}

	reg, err := a.registry(opts.descriptors)
	if err != nil {
		return err
	}

	rs := readsupport.New(reg, readsupport.WithLogger(a.logger))

	ropts := a.cfg.ReadOptions()
	ropts.RecordType = name

	rc, err := rs.Init(stored, map[string][]string{readsupport.RecordTypeKey: {name}}, ropts)
	if err != nil {
		return err
	}

	m, err := rs.PrepareForRead(rc.RequestedSchema, map[string]string{readsupport.RecordTypeKey: name}, ropts,
		readsupport.DefaultStrategies())
	if err != nil {
		return err
	}

	printPlan(cmd, m.Plan())

	return nil
}

func printPlan(cmd *cobra.Command, plan *readsupport.Plan) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tKIND\tENCODING\tSKIP")

	for _, p := range plan.Paths {
		if d, ok := plan.Lists[p]; ok {
			fmt.Fprintf(w, "%s\tlist\t%s\t%d\n", p, d.Encoding, d.SkipLevels)
			continue
		}

		fmt.Fprintf(w, "%s\tmap\t%s\t-\n", p, plan.Maps[p].Encoding)
	}

	for _, p := range plan.Unknown {
		fmt.Fprintf(w, "%s\tunknown\t-\t-\n", p)
	}

	_ = w.Flush()
}
