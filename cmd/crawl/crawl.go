package crawl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Nrich-sunny/honorcrawler/collect"
	"github.com/Nrich-sunny/honorcrawler/collector"
	"github.com/Nrich-sunny/honorcrawler/collector/pgstore"
	"github.com/Nrich-sunny/honorcrawler/collector/sqlstorage"
	"github.com/Nrich-sunny/honorcrawler/collector/textstore"
	"github.com/Nrich-sunny/honorcrawler/config"
	"github.com/Nrich-sunny/honorcrawler/engine"
	"github.com/Nrich-sunny/honorcrawler/log"
	"github.com/Nrich-sunny/honorcrawler/parse"
	"github.com/Nrich-sunny/honorcrawler/proxy"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Flags 命令行参数，非零值覆盖配置文件
type Flags struct {
	ConfigPath string
	Workers    int
	Sites      []string
	Output     string
	Log        string
	Diag       string
	Stable     bool
}

func (f Flags) apply(cfg *config.Config) error {
	if f.Workers > 0 {
		cfg.Crawler.Workers = f.Workers
	}
	if len(f.Sites) > 0 {
		cfg.Crawler.Sites = f.Sites
	}
	if f.Stable {
		cfg.Crawler.StableOrder = true
	}
	// 命令行给出的相对路径以当前目录为准
	if f.Output != "" {
		p, err := filepath.Abs(f.Output)
		if err != nil {
			return err
		}
		cfg.Output.ResultFile = p
	}
	if f.Log != "" {
		p, err := filepath.Abs(f.Log)
		if err != nil {
			return err
		}
		cfg.Output.LogFile = p
	}
	if f.Diag != "" {
		p, err := filepath.Abs(f.Diag)
		if err != nil {
			return err
		}
		cfg.Output.DiagFile = p
	}
	return cfg.Validate()
}

func Run(f Flags) (err error) {
	// load config
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return err
	}
	if err := f.apply(cfg); err != nil {
		return err
	}

	// log
	logLevel, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	var run log.Plugin
	if logPath := cfg.LogPath(); logPath != "" {
		var c io.Closer
		run, c = log.NewRunFilePlugin(logPath, logLevel)
		defer c.Close()
	} else {
		run = log.NewRunPlugin(zapcore.AddSync(os.Stdout), logLevel)
	}
	// 运行日志只有时间和消息，结构化字段写入 json 诊断日志
	plugins := []log.Plugin{run, log.NewStderrPlugin(zapcore.ErrorLevel)}
	if diagPath := cfg.DiagPath(); diagPath != "" {
		diag, c := log.NewFilePlugin(diagPath, zapcore.DebugLevel)
		defer c.Close()
		plugins = append(plugins, diag)
	}
	logger := log.NewLogger(plugins...)
	defer logger.Sync()

	// set zap global logger
	zap.ReplaceGlobals(logger)
	logger.Info("程序开始执行")

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}
	runID := node.Generate().String()
	logger.Sugar().Debugf("run id: %s", runID)

	// registry
	all, err := parse.NewRegistry(cfg.Sites)
	if err != nil {
		return err
	}
	registry, err := all.Select(cfg.Crawler.Sites...)
	if err != nil {
		return err
	}

	// fetcher
	charset, err := collect.ParseCharset(cfg.Fetcher.Charset)
	if err != nil {
		return err
	}
	fetcher := &collect.BrowserFetch{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.Fetcher.UserAgent,
		Charset:   charset,
		Logger:    logger.Named("fetcher"),
	}
	if len(cfg.Fetcher.Proxy) > 0 {
		logger.Sugar().Debugf("proxy list: %v", cfg.Fetcher.Proxy)
		p, err := proxy.RoundRobinProxySwitcher(cfg.Fetcher.Proxy...)
		if err != nil {
			return fmt.Errorf("proxy: %w", err)
		}
		fetcher.Proxy = p
	}

	// storage
	store, text, err := openStores(cfg, logger, runID)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close result store: %w", cerr))
		}
	}()

	crawler := engine.NewEngine(
		engine.WithFetcher(fetcher),
		engine.WithLogger(logger),
		engine.WithWorkCount(cfg.Crawler.Workers),
		engine.WithRegistry(registry),
		engine.WithStore(store),
		engine.WithStableOrder(cfg.Crawler.StableOrder),
	)
	stats, err := crawler.Run()
	logger.Debug("crawl stats",
		zap.Int("sites", stats.Sites),
		zap.Int("items", stats.Items),
		zap.Int("written", stats.Written),
		zap.Int("failed", stats.Failed),
		zap.Int("matched", stats.Matched),
	)
	if err != nil {
		return err
	}

	logger.Debug("result file written", zap.String("path", cfg.ResultPath()), zap.Int("lines", text.Lines()))
	logger.Sugar().Infof("程序执行完成。输出文件：%s", cfg.ResultPath())
	if logPath := cfg.LogPath(); logPath != "" {
		logger.Sugar().Infof("日志文件：%s", logPath)
	}
	return nil
}

// openStores 返回合并后的 Store 以及其中的结果文件
func openStores(cfg *config.Config, logger *zap.Logger, runID string) (collector.Store, *textstore.Store, error) {
	text, err := textstore.New(cfg.ResultPath(), textstore.WithLogger(logger.Named("textstore")))
	if err != nil {
		return nil, nil, fmt.Errorf("open result file: %w", err)
	}
	stores := []collector.Store{text}
	closeAll := func() {
		for _, s := range stores {
			s.Close()
		}
	}

	if cfg.Storage.SqlUrl != "" {
		sql, err := sqlstorage.New(
			sqlstorage.WithSqlUrl(cfg.Storage.SqlUrl),
			sqlstorage.WithLogger(logger.Named("sqlDB")),
			sqlstorage.WithBatchCount(cfg.Storage.BatchCount),
			sqlstorage.WithRunID(runID),
		)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("create sqlstorage: %w", err)
		}
		stores = append(stores, sql)
	}

	if cfg.Storage.PgUrl != "" {
		pg, err := pgstore.New(
			pgstore.WithDSN(cfg.Storage.PgUrl),
			pgstore.WithMaxConns(cfg.Storage.PgMaxConns),
			pgstore.WithLogger(logger.Named("pgDB")),
			pgstore.WithBatchCount(cfg.Storage.BatchCount),
			pgstore.WithRunID(runID),
		)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("create pgstore: %w", err)
		}
		stores = append(stores, pg)
	}
	return collector.Multi(stores...), text, nil
}

// ListSites 输出所有已注册站点及其列表页
func ListSites(configPath string, w io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	registry, err := parse.NewRegistry(cfg.Sites)
	if err != nil {
		return err
	}
	for _, s := range registry.Sites() {
		fmt.Fprintf(w, "%s\t%s\n", s.Name, s.BaseURL)
		for _, u := range s.ListURLs {
			fmt.Fprintf(w, "\t%s\n", u)
		}
	}
	return nil
}
