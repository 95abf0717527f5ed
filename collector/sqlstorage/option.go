package sqlstorage

import (
	"github.com/Nrich-sunny/honorcrawler/sqldb"
	"go.uber.org/zap"
)

type options struct {
	logger     *zap.Logger
	sqlUrl     string
	BatchCount int
	TableName  string
	RunID      string
	db         sqldb.DBer
}

var defaultOptions = options{
	logger:     zap.NewNop(),
	BatchCount: 50,
	TableName:  "faculty_honor",
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func WithSqlUrl(sqlUrl string) Option {
	return func(opts *options) {
		opts.sqlUrl = sqlUrl
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

// WithRunID 每一行都会记录本次运行的 ID，用于区分多次运行的结果
func WithRunID(id string) Option {
	return func(opts *options) {
		opts.RunID = id
	}
}

// WithDB 使用已经建立好的连接，不再通过 sqlUrl 连接
func WithDB(db sqldb.DBer) Option {
	return func(opts *options) {
		opts.db = db
	}
}
