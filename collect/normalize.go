package collect

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/robertkrimen/otto"
)

// StripDots 去掉链接片段中的 ".." 后拼接在 base 之后
func StripDots(base string) NormalizeFunc {
	return func(fragment string) (string, error) {
		return base + strings.ReplaceAll(fragment, "..", ""), nil
	}
}

// ResolveReference 按 RFC 3986 将链接片段解析为相对 base 的绝对地址
func ResolveReference(base string) (NormalizeFunc, error) {
	b, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return func(fragment string) (string, error) {
		ref, err := url.Parse(fragment)
		if err != nil {
			return "", err
		}
		return b.ResolveReference(ref).String(), nil
	}, nil
}

// ScriptNormalizer 执行一段 JS 表达式得到个人主页地址，脚本中可以使用 base 与 fragment 两个变量
func ScriptNormalizer(base, src string) (NormalizeFunc, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.New("empty normalize script")
	}
	// 先编译一次，语法错误在启动时就暴露
	if _, err := otto.New().Compile("", src); err != nil {
		return nil, fmt.Errorf("compile normalize script: %w", err)
	}

	return func(fragment string) (string, error) {
		// otto 的虚拟机不是并发安全的，每次调用都新建一个
		vm := otto.New()
		if err := vm.Set("base", base); err != nil {
			return "", err
		}
		if err := vm.Set("fragment", fragment); err != nil {
			return "", err
		}
		v, err := vm.Run(src)
		if err != nil {
			return "", fmt.Errorf("run normalize script: %w", err)
		}
		if !v.IsString() {
			return "", fmt.Errorf("normalize script returned %v, want string", v)
		}
		return v.ToString()
	}, nil
}
