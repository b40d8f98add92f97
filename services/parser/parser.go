package parser

import (
	"bytes"
	"strconv"
	"text/scanner"

	"go-memmanage/services/parser/command"
	perrors "go-memmanage/services/parser/errors"
	"go-memmanage/services/parser/kwords"
	"go-memmanage/util/helpers"

	"github.com/pkg/errors"
)

type ParserService interface {
	ParseScript(in []byte) ([]*command.Command, error)
}

type ParserServiceT struct{}

func New() *ParserServiceT {
	return &ParserServiceT{}
}

/*
ParseScript reads a heap script. Statements are separated by whitespace only,
every command has a fixed number of operands:

	alloc <name> <size>
	realloc <name> <size>
	free <name>
	write <name> "<string>"
	read <name>
	compact | dump | avail | blocks | save | restore

Go style comments are ignored.
*/
func (ps *ParserServiceT) ParseScript(data []byte) (cmds []*command.Command, err error) {
	defer helpers.RecoverOnError(&err)()

	s := &scanner.Scanner{}
	s.Init(bytes.NewReader(data))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings |
		scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	s.Error = func(s *scanner.Scanner, msg string) {
		panic(errors.Wrapf(perrors.ErrSyntax, "%s: %s", s.Pos(), msg))
	}

	cmds = []*command.Command{}
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		cmds = append(cmds, parseCommand(s, tok))
	}
	return cmds, nil
}

func parseCommand(s *scanner.Scanner, tok rune) *command.Command {
	word := s.TokenText()
	if tok != scanner.Ident {
		panic(errors.Wrapf(perrors.ErrSyntax, "%s: expected command, got %q", s.Position, word))
	}

	cmd := &command.Command{Type: command.CommandType(word), Pos: s.Position}
	operands, ok := kwords.Arity[cmd.Type]
	if !ok {
		panic(errors.Wrapf(perrors.ErrUnknownCommand, "%s: %q", s.Position, word))
	}

	for _, op := range operands {
		switch op {
		case kwords.Name:
			cmd.Name = parseName(s)
		case kwords.Size:
			cmd.Size = parseSize(s)
		case kwords.String:
			cmd.Data = parseString(s)
		}
	}
	return cmd
}

func parseName(s *scanner.Scanner) string {
	tok := s.Scan()
	word := s.TokenText()
	if tok != scanner.Ident {
		panic(errors.Wrapf(perrors.ErrSyntax, "%s: expected name, got %q", s.Position, word))
	} else if kwords.IsKeyword(word) {
		panic(errors.Wrapf(perrors.ErrSyntax, "%s: %q is a command and can't be a name", s.Position, word))
	}
	return word
}

func parseSize(s *scanner.Scanner) int {
	tok := s.Scan()
	word := s.TokenText()
	if tok != scanner.Int {
		panic(errors.Wrapf(perrors.ErrSyntax, "%s: expected size, got %q", s.Position, word))
	}

	size, err := strconv.ParseInt(word, 0, 64)
	if err != nil || size <= 0 {
		panic(errors.Wrapf(perrors.ErrInvalidSize, "%s: %s", s.Position, word))
	}
	return int(size)
}

func parseString(s *scanner.Scanner) []byte {
	tok := s.Scan()
	word := s.TokenText()
	if tok != scanner.String && tok != scanner.RawString {
		panic(errors.Wrapf(perrors.ErrSyntax, "%s: expected string, got %q", s.Position, word))
	}

	str, err := strconv.Unquote(word)
	if err != nil {
		panic(errors.Wrapf(perrors.ErrInvalidString, "%s: %s", s.Position, word))
	}
	return []byte(str)
}
