package command

import (
	"fmt"
	"text/scanner"
)

type CommandType string

const (
	ALLOC   CommandType = "alloc"
	REALLOC CommandType = "realloc"
	FREE    CommandType = "free"
	WRITE   CommandType = "write"
	READ    CommandType = "read"
	COMPACT CommandType = "compact"
	DUMP    CommandType = "dump"
	AVAIL   CommandType = "avail"
	BLOCKS  CommandType = "blocks"
	SAVE    CommandType = "save"
	RESTORE CommandType = "restore"
)

// Command is a single parsed script statement. Name, Size and Data are set
// depending on Type.
type Command struct {
	Type CommandType
	Name string
	Size int
	Data []byte
	Pos  scanner.Position
}

func (c *Command) String() string {
	switch c.Type {
	case ALLOC, REALLOC:
		return fmt.Sprintf("%s %s %d", c.Type, c.Name, c.Size)
	case WRITE:
		return fmt.Sprintf("%s %s %q", c.Type, c.Name, c.Data)
	case FREE, READ:
		return fmt.Sprintf("%s %s", c.Type, c.Name)
	default:
		return string(c.Type)
	}
}
