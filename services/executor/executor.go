package executor

import (
	"fmt"
	"io"

	"go-memmanage/config"
	"go-memmanage/pkg/heap"
	"go-memmanage/services/parser/command"
	"go-memmanage/util/logger"
	"go-memmanage/util/stl"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrUndefinedName = errors.New("undefined name")
	ErrNothingSaved  = errors.New("nothing saved")
)

type Options struct {
	Heap     *config.HeapConfig
	Out      io.Writer
	Observer heap.Observer
	Logger   logrus.FieldLogger
}

// ExecutorService runs script commands against a single heap and keeps the
// offsets of named blocks up to date.
type ExecutorService struct {
	heap      *heap.Heap
	out       io.Writer
	log       logrus.FieldLogger
	names     map[string]int
	snapshots stl.Stack[*snapshot]
}

func New(opts *Options) (*ExecutorService, error) {
	es := &ExecutorService{
		out:       opts.Out,
		log:       opts.Logger,
		names:     map[string]int{},
		snapshots: stl.NewStack[*snapshot](),
	}
	if es.log == nil {
		es.log = logger.L
	}
	if es.out == nil {
		es.out = io.Discard
	}

	h, err := heap.New(opts.Heap.Capacity, &heap.Options{
		AutoCompact: opts.Heap.AutoCompact,
		OnMove:      es.relocate,
		Observer:    opts.Observer,
		Logger:      es.log,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create heap")
	}

	es.heap = h
	return es, nil
}

// Heap returns the heap commands are executed against.
func (es *ExecutorService) Heap() *heap.Heap {
	return es.heap
}

// Run executes cmds in order and stops at the first script error. Failed heap
// operations are reported to the output and don't stop the run.
func (es *ExecutorService) Run(cmds []*command.Command) error {
	for _, cmd := range cmds {
		if err := es.Exec(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (es *ExecutorService) Exec(cmd *command.Command) error {
	var err error
	switch cmd.Type {
	case command.ALLOC:
		err = es.alloc(cmd)
	case command.REALLOC:
		err = es.realloc(cmd)
	case command.FREE:
		err = es.free(cmd)
	case command.WRITE:
		err = es.write(cmd)
	case command.READ:
		err = es.read(cmd)
	case command.COMPACT:
		err = es.compact()
	case command.DUMP:
		err = es.dump()
	case command.AVAIL:
		err = es.avail()
	case command.BLOCKS:
		err = es.blocks()
	case command.SAVE:
		err = es.save()
	case command.RESTORE:
		err = es.restore()
	default:
		err = errors.Errorf("invalid command type: '%s'", cmd.Type)
	}
	return errors.Wrapf(err, "%s: %s", cmd.Pos, cmd)
}

// report prints a failed heap operation and lets the script continue.
func (es *ExecutorService) report(cmd *command.Command, err error) error {
	es.log.WithFields(logrus.Fields{
		"command":   cmd.String(),
		"available": es.heap.Available(),
	}).Warn(err)
	return es.printf("%s: error: %v\n", cmd.Name, err)
}

func (es *ExecutorService) lookup(name string) (int, error) {
	ptr, ok := es.names[name]
	if !ok {
		return 0, errors.Wrapf(ErrUndefinedName, "%q", name)
	}
	return ptr, nil
}

func (es *ExecutorService) relocate(from, to int) {
	for name, ptr := range es.names {
		if ptr == from {
			es.names[name] = to
		}
	}
}

func (es *ExecutorService) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(es.out, format, args...)
	return errors.Wrap(err, "failed to write output")
}
