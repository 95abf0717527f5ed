// Package textstore 将处理结果逐行写入文本文件
package textstore

import (
	"io"
	"os"
	"sync"

	"github.com/Nrich-sunny/honorcrawler/collector"
	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
}

var defaultOptions = options{
	logger: zap.NewNop(),
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// Store 每一行单独写入，不在用户态缓冲，进程中途退出时已写入的行都会保留
type Store struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	lines  int
	options
}

// New 创建（或清空）结果文件
func New(path string, opts ...Option) (*Store, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewWriter(f, opts...)
	s.closer = f
	s.logger.Debug("result file opened", zap.String("path", path))
	return s, nil
}

func NewWriter(w io.Writer, opts ...Option) *Store {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &Store{
		w:       w,
		options: options,
	}
}

func (s *Store) Save(outcomes ...*collector.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range outcomes {
		if _, err := io.WriteString(s.w, collector.FormatLine(o)+"\n"); err != nil {
			return err
		}
		s.lines++
	}
	return nil
}

// Lines 已写入的行数
func (s *Store) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
