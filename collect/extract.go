package collect

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// RegexRule 用正则表达式解析列表页，正则必须恰好包含两个分组：链接片段、姓名
type RegexRule struct {
	re *regexp.Regexp
}

func NewRegexRule(pattern string) (*RegexRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	r := &RegexRule{re: re}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func MustRegexRule(pattern string) *RegexRule {
	r, err := NewRegexRule(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *RegexRule) Validate() error {
	if r.re == nil {
		return errors.New("nil regexp")
	}
	if n := r.re.NumSubexp(); n != 2 {
		return fmt.Errorf("pattern %q has %d capture groups, want 2", r.re.String(), n)
	}
	return nil
}

func (r *RegexRule) String() string {
	return r.re.String()
}

func (r *RegexRule) Extract(body []byte) []Entry {
	matches := r.re.FindAllSubmatch(body, -1)
	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		if len(m) != 3 {
			continue
		}
		entries = append(entries, Entry{
			Fragment: string(m[1]),
			Name:     string(m[2]),
		})
	}
	return entries
}

// SelectorRule 解析 HTML 文档树，用 CSS 选择器定位教师链接
type SelectorRule struct {
	Selector string
	LinkAttr string // 默认 href
	NameAttr string // 为空时取元素文本
}

func (r *SelectorRule) Validate() error {
	if strings.TrimSpace(r.Selector) == "" {
		return errors.New("empty selector")
	}
	if _, err := cascadia.Compile(r.Selector); err != nil {
		return fmt.Errorf("selector %q: %w", r.Selector, err)
	}
	return nil
}

func (r *SelectorRule) String() string {
	return r.Selector
}

func (r *SelectorRule) Extract(body []byte) []Entry {
	entries := make([]Entry, 0)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return entries
	}

	linkAttr := r.LinkAttr
	if linkAttr == "" {
		linkAttr = "href"
	}
	doc.Find(r.Selector).Each(func(_ int, s *goquery.Selection) {
		link, ok := s.Attr(linkAttr)
		link = strings.TrimSpace(link)
		if !ok || link == "" {
			return
		}
		var name string
		if r.NameAttr != "" {
			name, _ = s.Attr(r.NameAttr)
		} else {
			name = s.Text()
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		entries = append(entries, Entry{Fragment: link, Name: name})
	})
	return entries
}
