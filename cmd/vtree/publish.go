package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

// storeFlags override the snapshot section of the project config.
type storeFlags struct {
	store  string
	dir    string
	bucket string
	prefix string
	region string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.store, "store", "", "Snapshot store: disk or s3 (default: snapshot.store)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Disk store directory")
	cmd.Flags().StringVar(&f.bucket, "bucket", "", "S3 bucket")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "S3 key prefix")
	cmd.Flags().StringVar(&f.region, "region", "", "AWS region")
}

func (f *storeFlags) apply(cfg *config.Config) error {
	if f.store != "" {
		cfg.Snapshot.Store = f.store
	}
	if f.dir != "" {
		cfg.Snapshot.Dir = f.dir
	}
	if f.bucket != "" {
		cfg.Snapshot.Bucket = f.bucket
	}
	if f.prefix != "" {
		cfg.Snapshot.Prefix = f.prefix
	}
	if f.region != "" {
		cfg.Snapshot.Region = f.region
	}
	return cfg.Validate()
}

func publishCmd(g *globals) *cobra.Command {
	var (
		flags storeFlags
		index int
		snap  bool
	)

	cmd := &cobra.Command{
		Use:   "publish FILE KEY",
		Short: "Publish a rendered tree to the snapshot store",
		Long: `Render one tree of a YAML tree file and store it under KEY.

By default the markup is stored. With --snapshot the tree is built into a
live container and stored as a binary snapshot that clients can restore
without parsing markup.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}
			tree, err := pickTree(args[0], index)
			if err != nil {
				return err
			}

			key := args[1]
			var obj *snapshot.Object
			if snap {
				root := reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML),
					reconcile.WithStrategy(cfg.Strategy()))
				if err := root.Render(tree); err != nil {
					return err
				}
				obj = snapshot.Container(key, root.Container(), 0)
			} else if obj, err = snapshot.Markup(key, tree); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, where, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			if err := store.Put(ctx, obj); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Published %s (%d bytes, %s) to %s", key, len(obj.Data), obj.ContentType, where)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Index of the tree in the file")
	cmd.Flags().BoolVar(&snap, "snapshot", false, "Store a binary snapshot instead of markup")
	return cmd
}

func fetchCmd(g *globals) *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "fetch KEY",
		Short: "Print the markup of a published tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			store, _, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			obj, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			nodes, err := snapshot.Restore(obj)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, n := range nodes {
				fmt.Fprint(out, dom.Serialize(n))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// openStore opens the configured snapshot store and describes its location.
func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, string, error) {
	if cfg.Snapshot.Store == config.StoreS3 {
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Snapshot.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Snapshot.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, "", errors.New(errors.CodeConfigInvalid).
				WithDetail("could not load AWS configuration").
				Wrap(err)
		}
		store := snapshot.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Snapshot.Bucket, cfg.Snapshot.Prefix, cfg.Snapshot.MaxSize)
		return store, fmt.Sprintf("s3://%s/%s", cfg.Snapshot.Bucket, cfg.Snapshot.Prefix), nil
	}

	dir := cfg.SnapshotDir()
	store, err := snapshot.NewDiskStore(dir, cfg.Snapshot.MaxSize)
	if err != nil {
		return nil, "", err
	}
	return store, dir, nil
}
