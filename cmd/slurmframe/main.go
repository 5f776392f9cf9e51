package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/slurmframe/slurmframe/pkg/compression"
	"github.com/slurmframe/slurmframe/pkg/config"
	"github.com/slurmframe/slurmframe/pkg/fields"
	"github.com/slurmframe/slurmframe/pkg/logger"
	"github.com/slurmframe/slurmframe/pkg/progress"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "slurmframe",
		Short: "Clean workload-scheduler accounting logs into typed records",
		Long: `slurmframe parses sacct accounting dumps into typed tabular data:
SI-suffixed sizes, memory specifications, scheduler durations and
timestamps all become properly typed, nullable values.`,
		SilenceUsage: true,
	}

	root.AddCommand(newConvertCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "slurmframe %s\n", version)
		},
	}
}

func newConvertCmd() *cobra.Command {
	var (
		configPath string
		output     string
		policy     string
		delimiter  string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a sacct dump into JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.Input = args[0]
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("policy") {
				cfg.Policy = policy
			}
			if cmd.Flags().Changed("delimiter") {
				cfg.Delimiter = delimiter
			}
			if noProgress {
				cfg.Progress = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := logger.Init(logger.Config{
				Level:       cfg.LogLevel,
				Encoding:    "console",
				OutputPaths: []string{"stderr"},
			}); err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			return runConvert(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output path, - for stdout")
	cmd.Flags().StringVar(&policy, "policy", "warn", "NA-check policy: ignore, warn or error")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "|", "cell delimiter of the dump")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

func runConvert(cfg *config.Config) error {
	header, rows, err := readDump(cfg.Input, cfg.Delimiter)
	if err != nil {
		return err
	}
	logger.Info("loaded accounting dump",
		zap.String("input", cfg.Input),
		zap.Int("rows", len(rows)),
		zap.Int("fields", len(header)))

	frame, err := fields.Apply(header, rows, cfg.FieldRegistry(), cfg.CleanOptions())
	if err != nil {
		return err
	}

	out := os.Stdout
	if cfg.Output != "" && cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	var bar *progress.Bar
	if cfg.Progress && frame.Len() > 0 {
		bar = progress.NewBar(frame.Len(), &progress.Config{Writer: os.Stderr})
	}

	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for i := 0; i < frame.Len(); i++ {
		if err := enc.Encode(frame.Row(i)); err != nil {
			return err
		}
		if bar != nil {
			bar.Update(i + 1)
		}
	}
	return w.Flush()
}

// readDump reads a delimited sacct dump, first line is the header. The
// input may be compressed; the decoder is chosen from the extension.
func readDump(path, delimiter string) ([]string, [][]string, error) {
	r, err := compression.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header []string
	var rows [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if header == nil {
			header = strings.Split(line, delimiter)
			continue
		}
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, delimiter))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if header == nil {
		return nil, nil, fmt.Errorf("empty input %q", path)
	}
	return header, rows, nil
}
