package cmd

import (
	"io"

	"go-memmanage/config"
	"go-memmanage/pkg/heap"
	"go-memmanage/pkg/metrics"
	"go-memmanage/services"
	"go-memmanage/util/logger"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	metrics bool
}

// NewRootCmd builds the memmanage command tree. Flags default to the values
// of configs and write back into it.
func NewRootCmd(configs *config.AppConfig) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "memmanage",
		Short: "Simulate a heap allocator on a fixed byte arena",
		Long: `memmanage runs scripts against a simulated heap: a fixed size byte
arena managed by a directory of used and free blocks. It supports allocation,
freeing, reallocation and compaction, and dumps the arena as hex.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configs.HeapConfig.Capacity < 0 {
				return errors.Wrapf(heap.ErrInvalidCapacity, "--capacity %d", configs.HeapConfig.Capacity)
			}
			return logger.SetLevel(configs.LoggerConfig.Level)
		},
	}

	pf := root.PersistentFlags()
	pf.IntVarP(&configs.HeapConfig.Capacity, "capacity", "c", configs.HeapConfig.Capacity, "Arena size in bytes")
	pf.BoolVar(&configs.HeapConfig.AutoCompact, "auto-compact", configs.HeapConfig.AutoCompact,
		"Compact the heap when free space is too fragmented for a request")
	pf.StringVar(&configs.LoggerConfig.Level, "log-level", configs.LoggerConfig.Level, "Log level (debug, info, warn, error)")
	pf.BoolVar(&flags.metrics, "metrics", false, "Print heap metrics in prometheus text format after the run")

	root.AddCommand(newRunCmd(configs, flags), newDemoCmd(configs, flags))
	return root
}

// Execute runs the command tree with the default configuration.
func Execute() error {
	return NewRootCmd(config.New()).Execute()
}

// runScript executes script on a fresh heap and writes the results to out,
// followed by the metrics when requested.
func runScript(configs *config.AppConfig, flags *rootFlags, script []byte, out io.Writer) error {
	var (
		observer heap.Observer
		registry *prometheus.Registry
	)
	if flags.metrics {
		registry = prometheus.NewRegistry()
		c, err := metrics.New(registry)
		if err != nil {
			return err
		}
		observer = c
	}

	s, err := services.New(configs, out, observer)
	if err != nil {
		return err
	}

	if err := s.RunScript(script); err != nil {
		return err
	}

	if registry != nil {
		return metrics.WriteText(out, registry)
	}
	return nil
}
