package proxy

import (
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"
)

// ProxyFunc 与 http.Transport.Proxy 的签名一致
type ProxyFunc func(*http.Request) (*url.URL, error)

var ErrEmptyProxyList = errors.New("proxy URL list is empty")

type roundRobinSwitcher struct {
	proxyURLs []*url.URL
	index     uint32
}

// GetProxy 依次轮询代理地址，可以被多个 worker 并发调用
func (r *roundRobinSwitcher) GetProxy(pr *http.Request) (*url.URL, error) {
	index := atomic.AddUint32(&r.index, 1) - 1
	u := r.proxyURLs[index%uint32(len(r.proxyURLs))]
	return u, nil
}

// RoundRobinProxySwitcher 创建一个轮询代理的 ProxyFunc
func RoundRobinProxySwitcher(proxyURLs ...string) (ProxyFunc, error) {
	if len(proxyURLs) < 1 {
		return nil, ErrEmptyProxyList
	}
	urls := make([]*url.URL, len(proxyURLs))
	for i, u := range proxyURLs {
		parsedU, err := url.Parse(u)
		if err != nil {
			return nil, err
		}
		urls[i] = parsedU
	}
	return (&roundRobinSwitcher{proxyURLs: urls}).GetProxy, nil
}
