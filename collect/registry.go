package collect

import "fmt"

// Registry 站点注册表，构造完成后不再修改，可以在多个 worker 之间共享
type Registry struct {
	list []*Site
	hash map[string]*Site
}

func NewRegistry(sites ...*Site) (*Registry, error) {
	r := &Registry{
		list: make([]*Site, 0, len(sites)),
		hash: make(map[string]*Site, len(sites)),
	}
	for _, s := range sites {
		if s == nil {
			return nil, fmt.Errorf("%w: nil site", ErrInvalidSite)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.hash[s.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate site name %q", ErrInvalidSite, s.Name)
		}
		c := s.clone()
		r.hash[c.Name] = c
		r.list = append(r.list, c)
	}
	return r, nil
}

// Sites 按注册顺序返回所有站点
func (r *Registry) Sites() []*Site {
	return append([]*Site(nil), r.list...)
}

func (r *Registry) Len() int {
	return len(r.list)
}

func (r *Registry) Get(name string) (*Site, bool) {
	s, ok := r.hash[name]
	return s, ok
}

// Select 返回只包含指定站点的注册表，names 为空时返回自身
func (r *Registry) Select(names ...string) (*Registry, error) {
	if len(names) == 0 {
		return r, nil
	}
	sites := make([]*Site, 0, len(names))
	for _, name := range names {
		s, ok := r.hash[name]
		if !ok {
			return nil, fmt.Errorf("unknown site %q", name)
		}
		sites = append(sites, s)
	}
	return NewRegistry(sites...)
}
