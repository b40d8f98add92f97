package cmd

import (
	"io"
	"os"

	"go-memmanage/config"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRunCmd(configs *config.AppConfig, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [script|-]",
		Short: "Run a heap script",
		Long: `The run command executes a heap script read from a file, or from
standard input when the argument is "-" or missing.

Script commands:
  alloc <name> <size>      realloc <name> <size>     free <name>
  write <name> "<string>"  read <name>
  compact  dump  avail  blocks  save  restore

Example:
  memmanage run script.heap
  echo 'alloc a 4 dump' | memmanage run --capacity 16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return runScript(configs, flags, script, cmd.OutOrStdout())
		},
	}
}

func readScript(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "failed to read script from stdin")
	}

	data, err := os.ReadFile(args[0])
	return data, errors.Wrap(err, "failed to read script")
}
