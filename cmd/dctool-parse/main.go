package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/godivecomputer/internal/driver"
	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/pkg/divecomputer"
)

var (
	rootCmd = &cobra.Command{
		Use:   "dctool-parse [file]",
		Short: "Decode dive computer logs",
		Long:  "dctool-parse decodes raw dive logs downloaded from a dive computer using the godivecomputer library.",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := divecomputer.ParseOptions{Model: model, Logger: logrus.StandardLogger()}
			ctx := cmd.Context()
			switch {
			case hexInput:
				if len(args) == 0 {
					return runInteractive(ctx, opts)
				}
				return runHex(ctx, opts, args[0])
			case len(args) == 1:
				return runFile(ctx, opts, args[0])
			default:
				return runFile(ctx, opts, "")
			}
		},
	}

	familiesCmd = &cobra.Command{
		Use:   "families",
		Short: "List known dive computer families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFamilies(cmd.OutOrStdout())
		},
	}

	backend  string
	model    uint32
	format   string
	output   string
	hexInput bool
	verbose  bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&backend, "family", "f", "excursion", "dive computer family name (see 'families')")
	rootCmd.Flags().Uint32VarP(&model, "model", "m", 0, "model number (defaults to the family's model)")
	rootCmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "write the decoded dive to a file instead of stdout")
	rootCmd.Flags().BoolVar(&hexInput, "hex", false, "treat the argument (or stdin lines) as hex dumps")
	rootCmd.AddCommand(familiesCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(ctx context.Context, opts divecomputer.ParseOptions) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	logrus.Info("dctool-parse hex mode. Paste a hex dive and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runHex(ctx, opts, line); err != nil {
			logrus.WithError(err).Error("failed to decode dive")
		}
	}
	return scanner.Err()
}

func runHex(ctx context.Context, opts divecomputer.ParseOptions, hex string) error {
	dive, err := divecomputer.ParseHex(ctx, backend, hex, opts)
	if err != nil {
		return err
	}
	return emit(dive)
}

func runFile(ctx context.Context, opts divecomputer.ParseOptions, path string) error {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read dive: %w", err)
	}
	b, ok := family.Lookup(backend)
	if !ok {
		return fmt.Errorf("unknown family %q: %w", backend, divecomputer.ErrInvalidArgs)
	}
	logrus.WithFields(logrus.Fields{"family": b.Name, "bytes": len(data)}).Debug("decoding dive")
	dive, err := divecomputer.ParseWithOptions(ctx, b.Family, data, opts)
	if err != nil {
		if path == "" || path == "-" {
			path = "stdin"
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return emit(dive)
}

func emit(dive divecomputer.Dive) error {
	var text string
	switch strings.ToLower(format) {
	case "json":
		text = dive.String() + "\n"
	case "yaml", "yml":
		y, err := dive.YAML()
		if err != nil {
			return err
		}
		text = y
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if output == "" {
		_, err := fmt.Print(text)
		return err
	}
	return os.WriteFile(output, []byte(text), 0o644)
}

func listFamilies(w io.Writer) error {
	supported := map[family.Family]bool{}
	for _, f := range driver.Families() {
		supported[f] = true
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODEL\tPARSER")
	for _, b := range family.Backends() {
		mark := "-"
		if supported[b.Family] {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%s\t0x%02X\t%s\n", b.Name, b.Model, mark)
	}
	return tw.Flush()
}
