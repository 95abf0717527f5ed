package collect

import (
	"net/http"
)

// Request 单个页面请求
type Request struct {
	Url    string
	Method string // 为空时按 GET 处理
	Site   string // 请求所属的站点名称
}

func NewRequest(site, url string) *Request {
	return &Request{
		Url:    url,
		Method: http.MethodGet,
		Site:   site,
	}
}
