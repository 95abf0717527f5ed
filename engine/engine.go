package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Nrich-sunny/honorcrawler/collect"
	"github.com/Nrich-sunny/honorcrawler/collector"
	"github.com/Nrich-sunny/honorcrawler/honor"
	"go.uber.org/zap"
)

var ErrMissingDependency = errors.New("missing crawler dependency")

// Stats 一次运行的统计
type Stats struct {
	Sites     int
	Items     int // 入队的任务数
	Written   int // 已写入结果的任务数
	Succeeded int
	Failed    int
	Matched   int // 至少命中一个称号的教师数
}

type Crawler struct {
	out   chan *collector.Outcome // 负责处理获取判断后的结果
	total int
	options
}

func NewEngine(opts ...Option) *Crawler {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.Scheduler == nil {
		options.Scheduler = NewSchedule()
	}
	if options.Classifier == nil {
		options.Classifier = honor.Default()
	}
	if options.WorkCount <= 0 {
		options.WorkCount = defaultOptions.WorkCount
	}
	crawler := &Crawler{}
	crawler.out = make(chan *collector.Outcome)
	crawler.options = options
	return crawler
}

func (crawler *Crawler) check() error {
	switch {
	case crawler.Fetcher == nil:
		return fmt.Errorf("%w: fetcher", ErrMissingDependency)
	case crawler.Registry == nil:
		return fmt.Errorf("%w: registry", ErrMissingDependency)
	case crawler.Store == nil:
		return fmt.Errorf("%w: store", ErrMissingDependency)
	}
	return nil
}

// Run 先获取所有站点的教师列表并全部入队，再启动 WorkCount 个 worker 处理，
// 所有 worker 退出且结果全部写出后返回。
// 只有结果写入失败才会返回错误，此时不再分配新的任务。
func (crawler *Crawler) Run() (Stats, error) {
	if err := crawler.check(); err != nil {
		return Stats{}, err
	}

	items := crawler.Enumerate()
	crawler.total = len(items)
	stats := Stats{
		Sites: crawler.Registry.Len(),
		Items: len(items),
	}
	crawler.Logger.Sugar().Infof("开始处理每位教师信息，共 %d 位", len(items))
	tags := make([]string, 0)
	for _, c := range crawler.Classifier.Categories() {
		tags = append(tags, c.Tag)
	}
	crawler.Logger.Debug("honor categories", zap.Strings("tags", tags))

	go crawler.Scheduler.Schedule()
	crawler.Scheduler.Push(items...)
	crawler.Scheduler.Close()

	abort := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < crawler.WorkCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			crawler.CreateWork(id, abort)
		}(i)
	}
	go func() {
		wg.Wait()
		// 中途放弃时排空队列，让调度协程退出
		for {
			if _, ok := crawler.Scheduler.Pull(); !ok {
				break
			}
		}
		close(crawler.out)
	}()

	err := crawler.HandleResult(&stats, abort)
	if err == nil {
		crawler.Logger.Info("所有教师信息处理完成")
	}
	return stats, err
}

// Enumerate 依次获取每个站点的所有列表页，解析出的教师按站点、列表页、页内顺序编号
func (crawler *Crawler) Enumerate() []*WorkItem {
	var items []*WorkItem
	for _, site := range crawler.Registry.Sites() {
		crawler.Logger.Sugar().Infof("开始获取教师列表页面: %s", site.Name)
		var entries []collect.Entry
		for _, u := range site.ListURLs {
			page, err := crawler.fetch(site.Name, u)
			if err != nil {
				crawler.Logger.Sugar().Infof("获取教师列表失败: %s", u)
				continue
			}
			crawler.Logger.Info("开始提取教师信息...")
			found := site.Rule.Extract(page.Body)
			crawler.Logger.Sugar().Infof("找到 %d 位教师", len(found))
			entries = append(entries, found...)
		}
		for _, e := range entries {
			items = append(items, &WorkItem{
				Seq:      len(items),
				Site:     site,
				Fragment: e.Fragment,
				Name:     e.Name,
			})
		}
	}
	return items
}

func (crawler *Crawler) fetch(site, url string) (*collect.Page, error) {
	crawler.Logger.Sugar().Infof("正在访问URL: %s", url)
	page, err := crawler.Fetcher.Get(collect.NewRequest(site, url))
	if err == nil && len(page.Body) == 0 {
		// 空页面与获取失败同等处理
		err = fmt.Errorf("%w: %s: empty body", collect.ErrFetch, url)
	}
	if err != nil {
		crawler.Logger.Sugar().Infof("错误：获取URL %s 失败: %v", url, err)
		return nil, err
	}
	crawler.Logger.Sugar().Infof("成功获取页面内容，状态码: %d", page.StatusCode)
	return page, nil
}

// CreateWork 不断从调度器取任务执行，队列关闭且排空后退出
func (crawler *Crawler) CreateWork(id int, abort <-chan struct{}) {
	for {
		select {
		case <-abort:
			return
		default:
		}
		item, ok := crawler.Scheduler.Pull()
		if !ok {
			return
		}
		crawler.out <- crawler.Process(item)
	}
}

// Process 获取教师个人主页并判断称号，总是返回一个结果
func (crawler *Crawler) Process(item *WorkItem) *collector.Outcome {
	o := &collector.Outcome{
		Seq:  item.Seq,
		Site: item.Site.Name,
		Name: item.Name,
	}
	crawler.Logger.Sugar().Infof("正在处理第 %d/%d 位教师: %s - %s", item.Seq+1, crawler.total, item.Site.Name, item.Name)

	u, err := item.Site.ProfileURL(item.Fragment)
	if err != nil {
		crawler.Logger.Sugar().Infof("警告：无法生成 %s 的个人主页地址: %v", item.Name, err)
		o.Failed = true
		return o
	}
	o.URL = u
	crawler.Logger.Sugar().Infof("教师主页URL: %s", u)

	page, err := crawler.fetch(item.Site.Name, u)
	if err != nil {
		crawler.Logger.Sugar().Infof("警告：无法获取 %s 的个人页面", item.Name)
		o.Failed = true
		return o
	}

	crawler.Logger.Sugar().Infof("正在检查 %s 的荣誉称号...", item.Name)
	o.Honors = make([]string, 0)
	for _, m := range crawler.Classifier.Match(string(page.Body)) {
		crawler.Logger.Sugar().Infof("找到荣誉: %s - %s", item.Name, m.Tag)
		crawler.Logger.Debug("honor keyword", zap.String("name", item.Name), zap.String("keyword", m.Keyword))
		o.Honors = append(o.Honors, m.Tag)
	}
	if len(o.Honors) == 0 {
		crawler.Logger.Sugar().Infof("%s 未找到荣誉称号", item.Name)
	}
	crawler.Logger.Sugar().Infof("完成处理：%s", item.Name)
	return o
}

// HandleResult 唯一的结果写出者。写入失败后关闭 abort，继续接收在途结果但不再写出
func (crawler *Crawler) HandleResult(stats *Stats, abort chan struct{}) error {
	var saveErr error
	save := func(o *collector.Outcome) {
		if saveErr != nil {
			return
		}
		if err := crawler.Store.Save(o); err != nil {
			saveErr = fmt.Errorf("save result of %s - %s: %w", o.Site, o.Name, err)
			crawler.Logger.Sugar().Infof("错误：写入结果失败，停止处理: %v", err)
			close(abort)
			return
		}
		stats.Written++
	}

	pending := make(map[int]*collector.Outcome)
	next := 0
	for o := range crawler.out {
		switch {
		case o.Failed:
			stats.Failed++
		case len(o.Honors) > 0:
			stats.Succeeded++
			stats.Matched++
		default:
			stats.Succeeded++
		}

		if !crawler.StableOrder {
			save(o)
			continue
		}
		pending[o.Seq] = o
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			save(p)
			next++
		}
	}
	return saveErr
}
