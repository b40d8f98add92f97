package cmd

import (
	"go-memmanage/config"

	"github.com/spf13/cobra"
)

// demoScript stores number names as C strings, resizes and frees some of
// them, then compacts a saved copy of the heap.
const demoScript = `
alloc zero 5     write zero "zero\x00"
alloc one 4      write one "one\x00"
alloc two 4      write two "two\x00"
alloc three 6    write three "three\x00"
alloc four 5     write four "four\x00"
alloc five 5     write five "five\x00"
alloc six 4      write six "six\x00"
alloc seven 6    write seven "seven\x00"
alloc eight 6    write eight "eight\x00"
alloc nine 5     write nine "nine\x00"
alloc ten 4      write ten "ten\x00"
avail dump

realloc six 8    write six "sixteen\x00"
realloc eight 9  write eight "eighteen\x00"
avail dump

free one free three free five free seven free nine
avail dump

alloc null 4           write null "nil\x00"
alloc twenty 7         write twenty "twenty\x00"
alloc seventythree 14  write seventythree "seventy three\x00"
avail dump

realloc two 6    write two "three\x00"
realloc four 6   write four "seven\x00"
avail dump blocks

save
alloc big 50
compact
avail dump blocks

restore
dump
`

func newDemoCmd(configs *config.AppConfig, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in demonstration script",
		Long: `The demo command stores the names of numbers in a 100 byte heap,
resizes and frees some of them, and finally compacts the heap. The arena is
dumped after every step.

Example:
  memmanage demo
  memmanage demo --auto-compact --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(configs, flags, []byte(demoScript), cmd.OutOrStdout())
		},
	}
}
