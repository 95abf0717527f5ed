// Package pgstore 将处理结果批量写入 PostgreSQL
package pgstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nrich-sunny/honorcrawler/collector"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pool 是 *pgxpool.Pool 中用到的部分
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Close()
}

type PgStore struct {
	dataDocker []*collector.Outcome
	pool       Pool
	options
}

func New(opts ...Option) (*PgStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.BatchCount <= 0 {
		options.BatchCount = defaultOptions.BatchCount
	}
	s := &PgStore{}
	s.options = options

	s.pool = options.pool
	if s.pool == nil {
		p, err := openPool(s.dsn, s.MaxConns, s.Timeout)
		if err != nil {
			return nil, err
		}
		s.pool = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()
	if _, err := s.pool.Exec(ctx, CreateTableSQL(s.TableName)); err != nil {
		s.logger.Error("create table failed", zap.String("table", s.TableName), zap.Error(err))
		s.pool.Close()
		return nil, err
	}
	return s, nil
}

func openPool(dsn string, maxConns int, timeout time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pg dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return pool, nil
}

func CreateTableSQL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + pgx.Identifier{table}.Sanitize() + ` (
	id BIGSERIAL PRIMARY KEY,
	run_id TEXT NOT NULL,
	site TEXT NOT NULL,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	honors TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
}

func InsertSQL(table string) string {
	return `INSERT INTO ` + pgx.Identifier{table}.Sanitize() +
		` (run_id, site, name, url, honors, status) VALUES ($1,$2,$3,$4,$5,$6)`
}

func (s *PgStore) Save(outcomes ...*collector.Outcome) error {
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

// Flush 在一个 pgx.Batch 中写入缓存的全部结果，无论成功与否都会清空缓存
func (s *PgStore) Flush() error {
	if len(s.dataDocker) == 0 {
		return nil
	}
	insert := InsertSQL(s.TableName)
	b := &pgx.Batch{}
	for _, o := range s.dataDocker {
		b.Queue(insert,
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

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()
	br := s.pool.SendBatch(ctx, b)
	for i := 0; i < count; i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			s.logger.Error("insert data failed", zap.Int("count", count), zap.Error(err))
			return err
		}
	}
	return br.Close()
}

func (s *PgStore) Close() error {
	err := s.Flush()
	s.pool.Close()
	return err
}
