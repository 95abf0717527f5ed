// Package config 读取 config.toml，文件中缺省的字段使用默认值
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nrich-sunny/honorcrawler/collect"
	"github.com/go-micro/plugins/v4/config/encoder/toml"
	microcfg "go-micro.dev/v4/config"
	"go-micro.dev/v4/config/reader"
	"go-micro.dev/v4/config/reader/json"
	"go-micro.dev/v4/config/source"
	"go-micro.dev/v4/config/source/file"
)

const (
	DefaultPath       = "config.toml"
	DefaultResultFile = "teacher_honors.txt"
	DefaultLogFile    = "teacher_honors_log.txt"
)

type Config struct {
	LogLevel string
	Crawler  CrawlerConfig
	Output   OutputConfig
	Fetcher  FetcherConfig
	Storage  StorageConfig
	Sites    []collect.SiteConfig
}

type CrawlerConfig struct {
	Workers     int
	StableOrder bool
	Sites       []string // 为空时爬取全部站点
}

// OutputConfig 相对路径都以 Dir 为基准
type OutputConfig struct {
	Dir        string
	ResultFile string
	LogFile    string
	DiagFile   string // json 诊断日志，为空时不输出
}

type FetcherConfig struct {
	Timeout   int // 毫秒
	UserAgent string
	Charset   string
	Proxy     []string
}

type StorageConfig struct {
	SqlUrl     string // 为空时不写 MySQL
	BatchCount int
	PgUrl      string // 为空时不写 PostgreSQL
	PgMaxConns int
}

func Default() *Config {
	return &Config{
		LogLevel: "INFO",
		Crawler: CrawlerConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir:        DefaultOutputDir(),
			ResultFile: DefaultResultFile,
			LogFile:    DefaultLogFile,
		},
		Fetcher: FetcherConfig{
			Timeout:   int(collect.DefaultTimeout / time.Millisecond),
			UserAgent: collect.DefaultUserAgent,
			Charset:   string(collect.CharsetAuto),
		},
		Storage: StorageConfig{
			BatchCount: 50,
			PgMaxConns: 2,
		},
	}
}

// DefaultOutputDir 用户桌面目录存在时返回桌面，否则返回当前目录
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err == nil {
		desktop := filepath.Join(home, "Desktop")
		if fi, err := os.Stat(desktop); err == nil && fi.IsDir() {
			return desktop
		}
	}
	return "."
}

// Load 读取 path 指定的配置文件，文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return c, nil
	}

	enc := toml.NewEncoder()
	cfg, err := microcfg.NewConfig(microcfg.WithReader(json.NewReader(reader.WithEncoder(enc))))
	if err != nil {
		return nil, err
	}
	defer cfg.Close()

	err = cfg.Load(file.NewSource(
		file.WithPath(path),
		source.WithEncoder(enc),
	))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	c.LogLevel = cfg.Get("logLevel").String(c.LogLevel)

	c.Crawler.Workers = cfg.Get("crawler", "workers").Int(c.Crawler.Workers)
	c.Crawler.StableOrder = cfg.Get("crawler", "stableOrder").Bool(c.Crawler.StableOrder)
	c.Crawler.Sites = cfg.Get("crawler", "sites").StringSlice([]string{})

	if dir := cfg.Get("output", "dir").String(""); dir != "" {
		c.Output.Dir = dir
	}
	c.Output.ResultFile = cfg.Get("output", "resultFile").String(c.Output.ResultFile)
	c.Output.LogFile = cfg.Get("output", "logFile").String(c.Output.LogFile)
	c.Output.DiagFile = cfg.Get("output", "diagFile").String("")

	c.Fetcher.Timeout = cfg.Get("fetcher", "timeout").Int(c.Fetcher.Timeout)
	c.Fetcher.UserAgent = cfg.Get("fetcher", "userAgent").String(c.Fetcher.UserAgent)
	c.Fetcher.Charset = cfg.Get("fetcher", "charset").String(c.Fetcher.Charset)
	c.Fetcher.Proxy = cfg.Get("fetcher", "proxy").StringSlice([]string{})

	c.Storage.SqlUrl = cfg.Get("storage", "sqlUrl").String("")
	c.Storage.BatchCount = cfg.Get("storage", "batchCount").Int(c.Storage.BatchCount)
	c.Storage.PgUrl = cfg.Get("storage", "pgUrl").String("")
	c.Storage.PgMaxConns = cfg.Get("storage", "pgMaxConns").Int(c.Storage.PgMaxConns)

	if err := cfg.Get("Sites").Scan(&c.Sites); err != nil {
		return nil, fmt.Errorf("parse sites: %w", err)
	}

	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.Crawler.Workers < 1 {
		return fmt.Errorf("crawler.workers must be positive, got %d", c.Crawler.Workers)
	}
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be positive, got %d", c.Fetcher.Timeout)
	}
	if _, err := collect.ParseCharset(c.Fetcher.Charset); err != nil {
		return err
	}
	if c.Output.ResultFile == "" {
		return errors.New("output.resultFile is empty")
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetcher.Timeout) * time.Millisecond
}

func (c *Config) ResultPath() string {
	return c.resolve(c.Output.ResultFile)
}

// LogPath 未配置日志文件时返回空串
func (c *Config) LogPath() string {
	if c.Output.LogFile == "" {
		return ""
	}
	return c.resolve(c.Output.LogFile)
}

func (c *Config) DiagPath() string {
	if c.Output.DiagFile == "" {
		return ""
	}
	return c.resolve(c.Output.DiagFile)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.Output.Dir == "" {
		return name
	}
	return filepath.Join(c.Output.Dir, name)
}
