// Package parse 汇总内置的院系站点配置
package parse

import (
	"github.com/Nrich-sunny/honorcrawler/collect"
	"github.com/Nrich-sunny/honorcrawler/parse/sdu"
)

// Builtin 返回所有内置站点，按注册顺序排列
func Builtin() []*collect.Site {
	return []*collect.Site{
		sdu.EESite(),
	}
}

// NewRegistry 内置站点加上配置文件中声明的站点
func NewRegistry(cfgs []collect.SiteConfig) (*collect.Registry, error) {
	sites := Builtin()
	for _, cfg := range cfgs {
		s, err := collect.NewSiteFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return collect.NewRegistry(sites...)
}
