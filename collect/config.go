package collect

import (
	"fmt"
	"strings"
)

const (
	NormalizeStripDots = "strip-dots"
	NormalizeResolve   = "resolve"
	NormalizeScript    = "script"
)

// SiteConfig 配置文件中的站点声明
type SiteConfig struct {
	Name            string   `json:"name"`
	BaseURL         string   `json:"baseUrl"`
	ListURLs        []string `json:"listUrls"`
	Pattern         string   `json:"pattern"`  // 正则规则
	Selector        string   `json:"selector"` // CSS 选择器规则，与 Pattern 二选一
	LinkAttr        string   `json:"linkAttr"`
	NameAttr        string   `json:"nameAttr"`
	Normalize       string   `json:"normalize"`
	NormalizeScript string   `json:"normalizeScript"`
}

func NewSiteFromConfig(cfg SiteConfig) (*Site, error) {
	s := &Site{
		Name:     cfg.Name,
		BaseURL:  cfg.BaseURL,
		ListURLs: cfg.ListURLs,
	}

	switch {
	case cfg.Pattern != "" && cfg.Selector != "":
		return nil, fmt.Errorf("%w: %s: pattern and selector are exclusive", ErrInvalidSite, cfg.Name)
	case cfg.Pattern != "":
		rule, err := NewRegexRule(cfg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSite, cfg.Name, err)
		}
		s.Rule = rule
	case cfg.Selector != "":
		s.Rule = &SelectorRule{
			Selector: cfg.Selector,
			LinkAttr: cfg.LinkAttr,
			NameAttr: cfg.NameAttr,
		}
	default:
		return nil, fmt.Errorf("%w: %s: no pattern or selector", ErrInvalidSite, cfg.Name)
	}

	switch strings.ToLower(cfg.Normalize) {
	case "", NormalizeStripDots:
		s.Normalize = StripDots(cfg.BaseURL)
	case NormalizeResolve:
		f, err := ResolveReference(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSite, cfg.Name, err)
		}
		s.Normalize = f
	case NormalizeScript:
		f, err := ScriptNormalizer(cfg.BaseURL, cfg.NormalizeScript)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSite, cfg.Name, err)
		}
		s.Normalize = f
	default:
		return nil, fmt.Errorf("%w: %s: unknown normalize %q", ErrInvalidSite, cfg.Name, cfg.Normalize)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
