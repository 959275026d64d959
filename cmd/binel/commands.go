package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	arborio "github.com/rhelmot/arborio-sub001"
	"github.com/rhelmot/arborio-sub001/binel"
	"github.com/rhelmot/arborio-sub001/format"
	"github.com/rhelmot/arborio-sub001/mapfile"
	"github.com/rhelmot/arborio-sub001/snapshot"
)

func (a *app) codecOptions() []mapfile.Option {
	return []mapfile.Option{mapfile.WithLogger(a.logger)}
}

func (a *app) readMap(path string) (*binel.File, error) {
	return arborio.ReadFile(path, a.codecOptions()...)
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}

func (a *app) dump(args []string) error {
	var out string
	rest, err := a.subcommand("dump", args, 1, func(fs *pflag.FlagSet) {
		fs.StringVarP(&out, "output", "o", "", "write YAML to this file instead of stdout")
	})
	if err != nil {
		return err
	}

	file, err := a.readMap(rest[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("rendering YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return a.writeOutput(out, buf.Bytes())
}

func (a *app) build(args []string) error {
	var out string
	rest, err := a.subcommand("build", args, 1, func(fs *pflag.FlagSet) {
		fs.StringVarP(&out, "output", "o", "", "binary map to write (required)")
	})
	if err != nil {
		return err
	}
	if out == "" {
		return fmt.Errorf("build: --output is required")
	}

	data, err := os.ReadFile(rest[0])
	if err != nil {
		return err
	}
	var file binel.File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%s: %w", rest[0], err)
	}

	if err := arborio.WriteFile(out, &file, a.codecOptions()...); err != nil {
		return err
	}
	a.logger.Info("built map", "input", rest[0], "output", out, "package", file.Package)

	return nil
}

func (a *app) stats(args []string) error {
	rest, err := a.subcommand("stats", args, 1, nil)
	if err != nil {
		return err
	}

	info, err := os.Stat(rest[0])
	if err != nil {
		return err
	}
	file, err := a.readMap(rest[0])
	if err != nil {
		return err
	}
	st, err := mapfile.Analyze(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "package:        %s\n", file.Package)
	fmt.Fprintf(a.stdout, "bytes:          %d\n", info.Size())
	fmt.Fprint(a.stdout, st.String())

	return nil
}

func (a *app) verify(args []string) error {
	rest, err := a.subcommand("verify", args, 1, nil)
	if err != nil {
		return err
	}

	original, err := os.ReadFile(rest[0])
	if err != nil {
		return err
	}
	first, err := arborio.Decode(original, a.codecOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", rest[0], err)
	}
	encoded, err := arborio.Encode(first, a.codecOptions()...)
	if err != nil {
		return fmt.Errorf("re-encoding: %w", err)
	}
	second, err := arborio.Decode(encoded, a.codecOptions()...)
	if err != nil {
		return fmt.Errorf("decoding re-encoded map: %w", err)
	}

	if first.Package != second.Package {
		return fmt.Errorf("round trip changed package %q to %q", first.Package, second.Package)
	}
	if d := binel.Diff(first.Root, second.Root); d != "" {
		return fmt.Errorf("round trip changed the tree: %s", d)
	}

	identical := "no"
	if bytes.Equal(original, encoded) {
		identical = "yes"
	}
	fmt.Fprintf(a.stdout, "ok: %s round-trips (%d bytes, re-encoded %d bytes, byte-identical: %s)\n",
		rest[0], len(original), len(encoded), identical)

	return nil
}

func (a *app) openStore(dir string) (*snapshot.Store, error) {
	if dir == "" {
		dir = a.cfg.Snapshot.Dir
	}
	ct, ok := format.ParseCompression(a.cfg.Snapshot.Compression)
	if !ok {
		return nil, fmt.Errorf("unknown snapshot compression %q", a.cfg.Snapshot.Compression)
	}

	return snapshot.Open(dir,
		snapshot.WithCompression(ct),
		snapshot.WithKeep(a.cfg.Snapshot.Keep),
		snapshot.WithLogger(a.logger),
	)
}

func (a *app) snapshot(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("snapshot: expected save, list, restore or prune")
	}

	var dir string
	dirFlag := func(fs *pflag.FlagSet) {
		fs.StringVar(&dir, "dir", "", "snapshot directory (default from config)")
	}

	switch sub, subArgs := args[0], args[1:]; sub {
	case "save":
		rest, err := a.subcommand("snapshot save", subArgs, 1, dirFlag)
		if err != nil {
			return err
		}
		file, err := a.readMap(rest[0])
		if err != nil {
			return err
		}
		store, err := a.openStore(dir)
		if err != nil {
			return err
		}
		entry, err := store.Save(ctx, file)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, entry.ID)

		return nil

	case "list":
		if _, err := a.subcommand("snapshot list", subArgs, 0, dirFlag); err != nil {
			return err
		}
		store, err := a.openStore(dir)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tPACKAGE\tSIZE\tSTORED\tCODEC")
		for _, e := range store.List() {
			id := e.ID
			if len(id) > 12 {
				id = id[:12]
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
				id, e.Created.Format("2006-01-02 15:04:05"), e.Package, e.Size, e.StoredSize, e.Compression)
		}

		return tw.Flush()

	case "restore":
		var out string
		rest, err := a.subcommand("snapshot restore", subArgs, 1, func(fs *pflag.FlagSet) {
			dirFlag(fs)
			fs.StringVarP(&out, "output", "o", "", "binary map to write (required)")
		})
		if err != nil {
			return err
		}
		if out == "" {
			return fmt.Errorf("snapshot restore: --output is required")
		}
		store, err := a.openStore(dir)
		if err != nil {
			return err
		}
		file, err := store.Load(ctx, rest[0])
		if err != nil {
			return err
		}

		return arborio.WriteFile(out, file, a.codecOptions()...)

	case "prune":
		var keep int
		if _, err := a.subcommand("snapshot prune", subArgs, 0, func(fs *pflag.FlagSet) {
			dirFlag(fs)
			fs.IntVar(&keep, "keep", -1, "number of snapshots to keep (required)")
		}); err != nil {
			return err
		}
		if keep < 0 {
			return fmt.Errorf("snapshot prune: --keep is required")
		}
		store, err := a.openStore(dir)
		if err != nil {
			return err
		}
		removed, err := store.Prune(keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "removed %d snapshot(s)\n", removed)

		return nil

	default:
		return fmt.Errorf("snapshot: unknown subcommand %q", sub)
	}
}
