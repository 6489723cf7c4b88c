package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"punctuator/dataset"
	"punctuator/kvstore"
)

func newCreateDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createdb <dbfile>",
		Short: "Write a demo dataset of dummy instances and read one back",
		Long: `Write one dummy training instance, then --samples more, into the
key-value store at dbfile in batches of --batch-size, close it, reopen it
and print the record stored under key "1".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.createDB(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().String("backend", "", "store backend (leveldb, sqlite)")
	cmd.Flags().Int("batch-size", 0, "records per committed batch")
	cmd.Flags().Int("samples", 0, "dummy instances written after the first one")
	mustBind(a.v, "store.backend", cmd.Flags().Lookup("backend"))
	mustBind(a.v, "writer.batch_size", cmd.Flags().Lookup("batch-size"))
	mustBind(a.v, "writer.samples", cmd.Flags().Lookup("samples"))
	return cmd
}

func (a *app) createDB(ctx context.Context, out io.Writer, path string) error {
	log := a.log.WithField("store", path)

	w, err := a.openWriter(path)
	if err != nil {
		return err
	}

	if err := w.Write(ctx, dataset.DummyInstance{}); err != nil {
		w.Close(ctx)
		return fmt.Errorf("createdb: %w", err)
	}

	instances := make([]dataset.InstanceProvider, a.conf.Writer.Samples)
	for i := range instances {
		instances[i] = dataset.DummyInstance{}
	}
	if err := w.WriteMany(ctx, instances); err != nil {
		w.Close(ctx)
		return fmt.Errorf("createdb: %w", err)
	}

	written := w.Index()
	if err := w.Close(ctx); err != nil {
		return fmt.Errorf("createdb: %w", err)
	}
	log.WithField("records", written).Info("dataset written")

	// reading back for debug
	w, err = a.openWriter(path)
	if err != nil {
		return err
	}
	defer w.Close(ctx)

	raw, err := w.Read(ctx, "1")
	if err != nil {
		return fmt.Errorf("createdb: %w", err)
	}
	datum, err := dataset.UnmarshalDatum(raw)
	if err != nil {
		return fmt.Errorf("createdb: %w", err)
	}

	fmt.Fprint(out, datum)
	fmt.Fprintln(out, datum.Label)
	return nil
}

func (a *app) openWriter(path string) (*dataset.Writer, error) {
	store, err := kvstore.Open(a.conf.Store.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("createdb: %w", err)
	}
	w, err := dataset.NewWriter(store, a.conf.Writer.BatchSize, a.log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("createdb: %w", err)
	}
	return w, nil
}
