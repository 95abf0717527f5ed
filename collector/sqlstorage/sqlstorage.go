package sqlstorage

import (
	"strings"

	"github.com/Nrich-sunny/honorcrawler/collector"
	"github.com/Nrich-sunny/honorcrawler/sqldb"
	"go.uber.org/zap"
)

var columnNames = []sqldb.Field{
	{Title: "run_id", Type: "VARCHAR(32)"},
	{Title: "site", Type: "VARCHAR(255)"},
	{Title: "name", Type: "VARCHAR(255)"},
	{Title: "url", Type: "VARCHAR(1024)"},
	{Title: "honors", Type: "VARCHAR(255)"},
	{Title: "status", Type: "VARCHAR(16)"},
}

// SqlStore 攒够 BatchCount 条结果后批量写入 MySQL
type SqlStore struct {
	dataDocker []*collector.Outcome // 分批输出结果缓存
	db         sqldb.DBer
	options
}

func New(opts ...Option) (*SqlStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.BatchCount <= 0 {
		options.BatchCount = defaultOptions.BatchCount
	}
	s := &SqlStore{}
	s.options = options

	s.db = options.db
	if s.db == nil {
		d, err := sqldb.New(
			sqldb.WithConnUrl(s.sqlUrl),
			sqldb.WithLogger(s.logger),
		)
		if err != nil {
			return nil, err
		}
		s.db = d
	}

	if err := s.db.CreateTable(sqldb.TableMetaData{
		TableName:   s.TableName,
		ColumnNames: columnNames,
		AutoKey:     true,
	}); err != nil {
		s.logger.Error("create table failed", zap.Error(err))
		s.db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) Save(outcomes ...*collector.Outcome) error {
	for _, o := range outcomes {
		if len(s.dataDocker) >= s.BatchCount {
			if err := s.Flush(); err != nil {
				return err
			}
		}
		s.dataDocker = append(s.dataDocker, o)
	}
	return nil
}

// Flush 写入缓存中的全部结果，无论成功与否都会清空缓存
func (s *SqlStore) Flush() error {
	if len(s.dataDocker) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(s.dataDocker)*len(columnNames))
	for _, o := range s.dataDocker {
		args = append(args,
			s.RunID,
			o.Site,
			o.Name,
			o.URL,
			strings.Join(o.Honors, collector.HonorSep),
			o.Status(),
		)
	}
	count := len(s.dataDocker)
	s.dataDocker = s.dataDocker[:0]

	err := s.db.Insert(sqldb.TableMetaData{
		TableName:   s.TableName,
		ColumnNames: columnNames,
		Args:        args,
		DataCount:   count,
	})
	if err != nil {
		s.logger.Error("insert data failed", zap.Int("count", count), zap.Error(err))
	}
	return err
}

func (s *SqlStore) Close() error {
	err := s.Flush()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}
