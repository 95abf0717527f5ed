package pgstore

import (
	"time"

	"go.uber.org/zap"
)

type options struct {
	logger     *zap.Logger
	dsn        string
	MaxConns   int
	BatchCount int
	TableName  string
	RunID      string
	Timeout    time.Duration // 单次建表或批量写入的超时
	pool       Pool
}

var defaultOptions = options{
	logger:     zap.NewNop(),
	MaxConns:   2,
	BatchCount: 200,
	TableName:  "faculty_honor",
	Timeout:    30 * time.Second,
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func WithDSN(dsn string) Option {
	return func(opts *options) {
		opts.dsn = dsn
	}
}

func WithMaxConns(n int) Option {
	return func(opts *options) {
		opts.MaxConns = n
	}
}

func WithBatchCount(batchCount int) Option {
	return func(opts *options) {
		opts.BatchCount = batchCount
	}
}

func WithTableName(name string) Option {
	return func(opts *options) {
		opts.TableName = name
	}
}

func WithRunID(id string) Option {
	return func(opts *options) {
		opts.RunID = id
	}
}

func WithTimeout(d time.Duration) Option {
	return func(opts *options) {
		opts.Timeout = d
	}
}

// WithPool 使用已经建立好的连接池，不再通过 dsn 连接
func WithPool(pool Pool) Option {
	return func(opts *options) {
		opts.pool = pool
	}
}
