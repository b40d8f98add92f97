package kwords

import "go-memmanage/services/parser/command"

// Arity lists every command with the operands it takes.
var Arity = map[command.CommandType][]Operand{
	command.ALLOC:   {Name, Size},
	command.REALLOC: {Name, Size},
	command.FREE:    {Name},
	command.WRITE:   {Name, String},
	command.READ:    {Name},
	command.COMPACT: {},
	command.DUMP:    {},
	command.AVAIL:   {},
	command.BLOCKS:  {},
	command.SAVE:    {},
	command.RESTORE: {},
}

type Operand int

const (
	Name Operand = iota
	Size
	String
)

func IsKeyword(word string) bool {
	_, ok := Arity[command.CommandType(word)]
	return ok
}
