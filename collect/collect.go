package collect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Nrich-sunny/honorcrawler/proxy"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// ErrFetch 超时、连接失败、响应体读取失败都归为这一类，不区分是否可重试
var ErrFetch = errors.New("fetch failed")

// Page 获取到的页面，Body 已经转换为 UTF-8
type Page struct {
	Body       []byte
	StatusCode int
}

type Fetcher interface {
	Get(req *Request) (*Page, error)
}

// Charset 页面解码方式
type Charset string

const (
	CharsetAuto Charset = "auto"  // 根据 Content-Type 和页面 meta 判断编码
	CharsetUTF8 Charset = "utf-8" // 无论页面声明什么编码，一律按 UTF-8 解码
)

func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(CharsetAuto):
		return CharsetAuto, nil
	case string(CharsetUTF8), "utf8":
		return CharsetUTF8, nil
	}
	return "", fmt.Errorf("unknown charset mode %q", s)
}

// BrowserFetch 模拟浏览器访问
type BrowserFetch struct {
	Timeout   time.Duration
	UserAgent string
	Charset   Charset
	Proxy     proxy.ProxyFunc // 是 Transport 结构体中的函数
	Logger    *zap.Logger

	once   sync.Once
	client *http.Client
}

func (b *BrowserFetch) httpClient() *http.Client {
	b.once.Do(func() {
		timeout := b.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client := &http.Client{
			Timeout: timeout,
		}
		if b.Proxy != nil {
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.Proxy = b.Proxy // 将其替换为自定义的代理函数
			client.Transport = transport
		}
		b.client = client
	})
	return b.client
}

func (b *BrowserFetch) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *BrowserFetch) Get(request *Request) (*Page, error) {
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequest(method, request.Url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, request.Url, err)
	}

	ua := b.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := b.httpClient().Do(req)
	if err != nil {
		b.logger().Debug("fetch failed",
			zap.String("site", request.Site),
			zap.String("url", request.Url),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, request.Url, err)
	}
	defer resp.Body.Close()

	bodyReader := bufio.NewReader(resp.Body)
	var e encoding.Encoding = unicode.UTF8
	if b.Charset != CharsetUTF8 {
		e = DetermineEncoding(bodyReader, resp.Header.Get("Content-Type"))
	}
	utf8Reader := transform.NewReader(bodyReader, e.NewDecoder())
	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrFetch, request.Url, err)
	}
	b.logger().Debug("fetched",
		zap.String("site", request.Site),
		zap.String("url", request.Url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	return &Page{Body: body, StatusCode: resp.StatusCode}, nil
}

// DetermineEncoding 根据 Content-Type 与页面前 1024 字节判断编码，判断不出时按 UTF-8 处理
func DetermineEncoding(r *bufio.Reader, contentType string) encoding.Encoding {
	bytes, err := r.Peek(1024)
	if err != nil && !errors.Is(err, io.EOF) {
		return unicode.UTF8
	}

	e, name, certain := charset.DetermineEncoding(bytes, contentType)
	// 页面没有声明编码时 charset 默认给出 windows-1252，国内站点按 UTF-8 处理
	if !certain && name == "windows-1252" {
		return unicode.UTF8
	}
	return e
}
