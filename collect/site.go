package collect

import (
	"errors"
	"fmt"
)

var ErrInvalidSite = errors.New("invalid site")

// Entry 列表页中解析出的一位教师：个人主页链接片段与姓名
type Entry struct {
	Fragment string
	Name     string
}

// Rule 列表页解析规则
type Rule interface {
	// Extract 按文档顺序返回所有匹配，保留重复项；没有匹配时返回空切片
	Extract(body []byte) []Entry
}

// NormalizeFunc 将链接片段转换为完整的个人主页地址
type NormalizeFunc func(fragment string) (string, error)

// Site 一个院系站点的爬取配置，注册后只读
type Site struct {
	Name      string
	BaseURL   string
	ListURLs  []string // 教师列表页，可以有多个
	Rule      Rule
	Normalize NormalizeFunc
}

type validator interface {
	Validate() error
}

func (s *Site) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSite)
	}
	if len(s.ListURLs) == 0 {
		return fmt.Errorf("%w: %s: no list url", ErrInvalidSite, s.Name)
	}
	for _, u := range s.ListURLs {
		if u == "" {
			return fmt.Errorf("%w: %s: empty list url", ErrInvalidSite, s.Name)
		}
	}
	if s.Rule == nil {
		return fmt.Errorf("%w: %s: no extract rule", ErrInvalidSite, s.Name)
	}
	if v, ok := s.Rule.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSite, s.Name, err)
		}
	}
	if s.Normalize == nil {
		return fmt.Errorf("%w: %s: no normalize func", ErrInvalidSite, s.Name)
	}
	return nil
}

// ProfileURL 教师个人主页地址
func (s *Site) ProfileURL(fragment string) (string, error) {
	return s.Normalize(fragment)
}

func (s *Site) clone() *Site {
	c := *s
	c.ListURLs = append([]string(nil), s.ListURLs...)
	return &c
}
