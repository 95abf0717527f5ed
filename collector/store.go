package collector

import (
	"errors"
	"strings"
)

const (
	FailedText = "获取信息失败"
	NoneText   = "无"
	HonorSep   = "、"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Outcome 一位教师的处理结果，每个任务恰好产生一个
type Outcome struct {
	Seq    int // 任务在列表中的顺序
	Site   string
	Name   string
	URL    string
	Honors []string
	Failed bool // 个人主页获取失败，此时 Honors 为空
}

func (o *Outcome) Status() string {
	if o.Failed {
		return StatusFailed
	}
	return StatusOK
}

// HonorText 输出文件中冒号之后的部分
func (o *Outcome) HonorText() string {
	switch {
	case o.Failed:
		return FailedText
	case len(o.Honors) == 0:
		return NoneText
	}
	return strings.Join(o.Honors, HonorSep)
}

// FormatLine 结果文件中的一行，不含换行符
func FormatLine(o *Outcome) string {
	return o.Site + " - " + o.Name + "：" + o.HonorText()
}

type Store interface {
	Save(outcomes ...*Outcome) error
	Close() error
}

type multiStore []Store

// Multi 将结果同时写入多个 Store，任意一个失败都会返回错误
func Multi(stores ...Store) Store {
	if len(stores) == 1 {
		return stores[0]
	}
	return multiStore(stores)
}

func (m multiStore) Save(outcomes ...*Outcome) error {
	for _, s := range m {
		if err := s.Save(outcomes...); err != nil {
			return err
		}
	}
	return nil
}

func (m multiStore) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
