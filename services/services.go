package services

import (
	"io"

	"go-memmanage/config"
	"go-memmanage/pkg/heap"
	"go-memmanage/services/executor"
	"go-memmanage/services/parser"
	"go-memmanage/util/logger"
)

type Services struct {
	ParserService   parser.ParserService
	ExecutorService *executor.ExecutorService
}

// New wires a parser and an executor whose heap is configured by configs.
// observer may be nil.
func New(configs *config.AppConfig, out io.Writer, observer heap.Observer) (*Services, error) {
	es, err := executor.New(&executor.Options{
		Heap:     configs.HeapConfig,
		Out:      out,
		Observer: observer,
		Logger:   logger.L,
	})
	if err != nil {
		return nil, err
	}

	return &Services{
		ParserService:   parser.New(),
		ExecutorService: es,
	}, nil
}

// RunScript parses script and executes it.
func (s *Services) RunScript(script []byte) error {
	cmds, err := s.ParserService.ParseScript(script)
	if err != nil {
		return err
	}
	return s.ExecutorService.Run(cmds)
}
