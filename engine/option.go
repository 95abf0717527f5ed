package engine

import (
	"github.com/Nrich-sunny/honorcrawler/collect"
	"github.com/Nrich-sunny/honorcrawler/collector"
	"github.com/Nrich-sunny/honorcrawler/honor"
	"go.uber.org/zap"
)

type Option func(opts *options)

type options struct {
	WorkCount   int
	Fetcher     collect.Fetcher
	Logger      *zap.Logger
	Registry    *collect.Registry
	Scheduler   Scheduler
	Classifier  *honor.Classifier
	Store       collector.Store
	StableOrder bool
}

var defaultOptions = options{
	WorkCount: 4,
	Logger:    zap.NewNop(),
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.Logger = logger
	}
}

func WithFetcher(fetcher collect.Fetcher) Option {
	return func(opts *options) {
		opts.Fetcher = fetcher
	}
}

func WithWorkCount(workCount int) Option {
	return func(opts *options) {
		opts.WorkCount = workCount
	}
}

func WithRegistry(registry *collect.Registry) Option {
	return func(opts *options) {
		opts.Registry = registry
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(opts *options) {
		opts.Scheduler = scheduler
	}
}

func WithClassifier(classifier *honor.Classifier) Option {
	return func(opts *options) {
		opts.Classifier = classifier
	}
}

func WithStore(store collector.Store) Option {
	return func(opts *options) {
		opts.Store = store
	}
}

// WithStableOrder 结果按任务入队顺序写出，默认按完成顺序写出
func WithStableOrder(stable bool) Option {
	return func(opts *options) {
		opts.StableOrder = stable
	}
}
