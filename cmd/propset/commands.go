package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/propset/config"
	"github.com/c360studio/propset/export"
	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/form"
	"github.com/c360studio/propset/publish"
	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/solr"
	"github.com/c360studio/propset/storage"
	"github.com/c360studio/propset/worktype"
)

func printSet(w io.Writer, set fields.Set) {
	for _, f := range set {
		fmt.Fprintln(w, f)
	}
}

func modelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the work types and whether they are selected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			selected := make(map[worktype.Type]bool)
			for _, t := range r.SelectedModels() {
				selected[t] = true
			}

			out := cmd.OutOrStdout()
			for _, t := range r.AvailableModels() {
				mark := " "
				if selected[t] {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %-24s %s\n", mark, t, t.Key())
			}
			return nil
		},
	}
}

func fieldsCmd(a *app) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "fields <type>",
		Short: "List the form and show fields of a work type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := worktype.Parse(args[0])
			if err != nil {
				return err
			}
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			set, err := r.FieldsFor(t)
			if err != nil {
				return err
			}
			if match != "" {
				if set, err = set.Match(match); err != nil {
					return err
				}
			}
			printSet(cmd.OutOrStdout(), set)
			return nil
		},
	}
	cmd.Flags().StringVar(&match, "match", "", "Only list fields matching a glob, e.g. 'date_*'")
	return cmd
}

func requiredCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "required <type>",
		Short: "List the required fields of a work type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := worktype.Parse(args[0])
			if err != nil {
				return err
			}
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			set, err := r.RequiredFieldsFor(t)
			if err != nil {
				return err
			}
			printSet(cmd.OutOrStdout(), set)
			return nil
		},
	}
}

func setsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "Show the cross-cutting field sets and toggles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, target := range resolver.CrossCutting() {
				set, err := r.Get(target)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", target, strings.Join(set.Strings(), ", "))
			}
			fmt.Fprintf(out, "%s: %t\n", resolver.DatePicker, r.DatePicker())
			fmt.Fprintf(out, "%s: %t\n", resolver.DateRange, r.DateRange())
			fmt.Fprintf(out, "%s: %t\n", resolver.RestrictedEnabled, r.RestrictedEnabled())
			fmt.Fprintf(out, "%s: %s\n", resolver.RestrictedRole, r.RestrictedRole())
			return nil
		},
	}
}

func allCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every field the installation uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			printSet(cmd.OutOrStdout(), r.AllProperties())
			return nil
		},
	}
}

func formCmd(a *app) *cobra.Command {
	var (
		roles  []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "form <type>",
		Short: "Show the deposit form layout of a work type for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := worktype.Parse(args[0])
			if err != nil {
				return err
			}
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			plan, err := form.Build(r, t, roles)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}

			fmt.Fprintln(out, "primary:")
			for _, f := range plan.Primary {
				fmt.Fprintf(out, "  %s%s\n", f.Name, flags(f))
			}
			fmt.Fprintln(out, "secondary:")
			for _, f := range plan.Secondary {
				fmt.Fprintf(out, "  %s%s\n", f.Name, flags(f))
			}
			if len(plan.Hidden) > 0 {
				fmt.Fprintf(out, "hidden: %s\n", strings.Join(plan.Hidden.Strings(), ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&roles, "role", nil, "Roles of the user (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")
	return cmd
}

func flags(f form.Field) string {
	var out []string
	if f.Required {
		out = append(out, "required")
	}
	if f.Singular {
		out = append(out, "singular")
	}
	if f.DatePicker {
		out = append(out, "date picker")
	}
	if len(out) == 0 {
		return ""
	}
	return " [" + strings.Join(out, ", ") + "]"
}

func solrCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solr",
		Short: "Show the search index fields of every configured field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			m := solr.NewMapper(r)

			out := cmd.OutOrStdout()
			for _, mapping := range m.Mappings() {
				fmt.Fprintf(out, "%s: %s\n", mapping.Field, strings.Join(mapping.Names(), " "))
			}
			fmt.Fprintf(out, "facets: %s\n", strings.Join(m.FacetFieldNames(), " "))
			fmt.Fprintf(out, "index: %s\n", strings.Join(m.IndexFieldNames(), " "))
			return nil
		},
	}
}

func checkCmd(a *app) *cobra.Command {
	var (
		watch       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration, optionally watching it for changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var metrics *resolver.Metrics
			reg := prometheus.NewRegistry()
			if metricsAddr != "" {
				var err error
				if metrics, err = resolver.NewMetrics(reg); err != nil {
					return err
				}
			}

			_, r, err := a.resolve(metrics)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "configuration OK: %d models, %d properties\n", len(r.SelectedModels()), len(r.AllProperties()))
			if !watch && metricsAddr == "" {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error("Metrics server failed", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				a.logger.Info("Serving metrics", "addr", metricsAddr)
			}

			if watch {
				w, err := config.NewWatcher(config.NewLoader(a.logger), a.configPath, r, metrics, func(r *resolver.Resolver) {
					fmt.Fprintf(out, "configuration reloaded: %d models, %d properties\n", len(r.SelectedModels()), len(r.AllProperties()))
				}, a.logger)
				if err != nil {
					return fmt.Errorf("watch config: %w", err)
				}
				defer func() { _ = w.Stop() }()
				w.Start(ctx)
			}

			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and re-check when the configuration changes")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var (
		format  string
		profile string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the work types and field properties as RDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			exporter, err := export.FromResolver(r, export.Profile(profile))
			if err != nil {
				return err
			}
			doc, err := exporter.Export(f)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			a.logger.Info("Export written", "path", output, "format", string(f))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatTurtle), "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&profile, "profile", string(export.ProfileMinimal), "Export profile (minimal, full)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func publishCmd(a *app) *cobra.Command {
	var (
		natsURL string
		subject string
		dryRun  bool
		store   bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the resolved configuration snapshot on NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			if natsURL == "" {
				natsURL = cfg.NATS.URL
			}
			if subject == "" {
				subject = cfg.NATS.Subject
			}

			snap, err := publish.NewSnapshot(r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dryRun {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}

			nc, err := connectNATS(natsURL)
			if err != nil {
				return err
			}
			defer nc.Close()

			ctx := cmd.Context()
			if store {
				s, err := openStore(ctx, nc)
				if err != nil {
					return err
				}
				if err := s.Put(ctx, snap); err != nil {
					return err
				}
			}
			if err := publish.Publish(ctx, nc, subject, snap); err != nil {
				return err
			}
			if err := nc.Flush(); err != nil {
				return fmt.Errorf("flush NATS connection: %w", err)
			}
			fmt.Fprintf(out, "published snapshot %s on %s\n", snap.ID, subject)
			return nil
		},
	}
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (default from config)")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject to publish on (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the snapshot instead of publishing it")
	cmd.Flags().BoolVar(&store, "store", false, "Also keep the snapshot in the "+storage.BucketSnapshots+" KV bucket")
	return cmd
}

func snapshotsCmd(a *app) *cobra.Command {
	var natsURL string

	cmd := &cobra.Command{
		Use:   "snapshots [id|latest]",
		Short: "List stored snapshots or print one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if natsURL == "" {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				natsURL = cfg.NATS.URL
			}
			nc, err := connectNATS(natsURL)
			if err != nil {
				return err
			}
			defer nc.Close()

			ctx := cmd.Context()
			s, err := openStore(ctx, nc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				snap, err := s.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("snapshot %s: %w", args[0], err)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}

			snaps, err := s.List(ctx)
			if err != nil {
				return err
			}
			for _, snap := range snaps {
				fmt.Fprintf(out, "%s  %s  %s\n", snap.ID, snap.CreatedAt.Format(time.RFC3339), strings.Join(snap.SelectedModels, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (default from config)")
	return cmd
}

func connectNATS(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name(appName), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

func openStore(ctx context.Context, nc *nats.Conn) (*storage.Store, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	return storage.NewStore(ctx, js)
}

func initCmd(a *app) *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an installation file spelling out the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			_, r, err := a.resolve(nil)
			if err != nil {
				return err
			}
			cfg, err := config.FromResolver(r)
			if err != nil {
				return err
			}
			if err := cfg.SaveToFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", config.ProjectConfigFile, "File to write")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
