package executor

import (
	"go-memmanage/services/parser/command"
)

func (es *ExecutorService) alloc(cmd *command.Command) error {
	if old, ok := es.names[cmd.Name]; ok {
		es.log.WithField("name", cmd.Name).Debugf("rebinding name, block at %d stays allocated", old)
	}

	ptr, err := es.heap.Allocate(cmd.Size)
	if err != nil {
		return es.report(cmd, err)
	}

	es.names[cmd.Name] = ptr
	return es.printf("%s: allocated %d bytes at %d, %d available\n", cmd.Name, cmd.Size, ptr, es.heap.Available())
}

func (es *ExecutorService) realloc(cmd *command.Command) error {
	ptr, err := es.lookup(cmd.Name)
	if err != nil {
		return err
	}

	newPtr, err := es.heap.Reallocate(ptr, cmd.Size)
	if err != nil {
		return es.report(cmd, err)
	}

	es.names[cmd.Name] = newPtr
	if newPtr != ptr {
		return es.printf("%s: reallocated to %d bytes, moved from %d to %d, %d available\n",
			cmd.Name, cmd.Size, ptr, newPtr, es.heap.Available())
	}
	return es.printf("%s: reallocated to %d bytes at %d, %d available\n", cmd.Name, cmd.Size, newPtr, es.heap.Available())
}

func (es *ExecutorService) free(cmd *command.Command) error {
	ptr, err := es.lookup(cmd.Name)
	if err != nil {
		return err
	}

	es.heap.Free(ptr)
	delete(es.names, cmd.Name)
	return es.printf("%s: freed, %d available\n", cmd.Name, es.heap.Available())
}

func (es *ExecutorService) write(cmd *command.Command) error {
	ptr, err := es.lookup(cmd.Name)
	if err != nil {
		return err
	}

	if err := es.heap.Write(ptr, cmd.Data); err != nil {
		return es.report(cmd, err)
	}
	return es.printf("%s: wrote %d bytes\n", cmd.Name, len(cmd.Data))
}

func (es *ExecutorService) read(cmd *command.Command) error {
	ptr, err := es.lookup(cmd.Name)
	if err != nil {
		return err
	}

	data, err := es.heap.Read(ptr)
	if err != nil {
		return es.report(cmd, err)
	}
	return es.printf("%s: %q\n", cmd.Name, data)
}
