// Package honor 根据关键词判断教师主页中出现的人才称号
package honor

import "strings"

// Category 一类人才称号及其所有写法
type Category struct {
	Tag      string
	Keywords []string
}

// DefaultCategories 按声明顺序匹配，不同称号之间的关键词允许重叠（如 长江 与 青年长江），重叠时两者都会命中
var DefaultCategories = []Category{
	{
		Tag: "杰青",
		Keywords: []string{
			"国家杰出青年科学基金",
			"杰出青年科学基金",
			"杰青",
			"国家杰青",
			"获得杰出青年",
			"获国家杰出青年",
			"获杰青",
			"入选杰青",
			"国家杰出青年基金",
			"杰出青年基金获得者",
		},
	},
	{
		Tag: "长江",
		Keywords: []string{
			"长江学者",
			"长江特聘教授",
			"长江学者特聘教授",
			"特聘教授（长江学者）",
			"教育部长江学者",
			"入选长江学者",
			"获聘长江学者",
			"长江特聘",
			"长江讲座教授",
			"长江青年学者",
		},
	},
	{
		Tag: "千人",
		Keywords: []string{
			"千人计划",
			"国家千人",
			"新世纪千人",
			"青年千人",
			"国家特聘专家",
			"入选千人计划",
			"入选国家千人",
			"国家特聘千人计划",
			"国家特聘专家（千人计划）",
			"千人计划特聘专家",
			"青年千人计划入选者",
		},
	},
	{
		Tag: "万人",
		Keywords: []string{
			"万人计划",
			"国家万人",
			"国家高层次人才特殊支持计划",
			"万人计划领军人才",
			`国家"万人计划"`,
			`"万人计划"科技创新领军人才`,
			"科技创新领军人才",
			"国家高层次人才",
			"入选万人计划",
			"入选国家万人计划",
			"万人计划青年拔尖人才",
		},
	},
	{
		Tag: "优青",
		Keywords: []string{
			"国家优秀青年科学基金",
			"优秀青年科学基金",
			"优青",
			"国家优青",
			"获得优秀青年",
			"获国家优秀青年",
			"获优青",
			"入选优青",
			"优秀青年基金获得者",
		},
	},
	{
		Tag: "泰山学者",
		Keywords: []string{
			"泰山学者",
			"泰山学者特聘专家",
			"泰山产业领军人才",
			"泰山学者青年专家",
			"入选泰山学者",
		},
	},
	{
		Tag: "青年长江",
		Keywords: []string{
			"青年长江学者",
			"长江学者青年项目",
			"教育部青年长江学者",
			"入选青年长江",
		},
	},
	{
		Tag: "百人计划",
		Keywords: []string{
			"中科院百人计划",
			"百人计划",
			"引进百人计划",
			"科学院百人计划",
		},
	},
}

// Match 某个称号的命中结果，Keyword 为第一个命中的写法
type Match struct {
	Tag     string
	Keyword string
}

// Classifier 只读，可以在多个 worker 之间共享
type Classifier struct {
	categories []Category
}

func NewClassifier(categories []Category) *Classifier {
	c := make([]Category, len(categories))
	for i, cat := range categories {
		c[i] = Category{
			Tag:      cat.Tag,
			Keywords: append([]string(nil), cat.Keywords...),
		}
	}
	return &Classifier{categories: c}
}

// Default 使用 DefaultCategories 构造的分类器
func Default() *Classifier {
	return NewClassifier(DefaultCategories)
}

// Classify 返回页面文本命中的称号，顺序与表中声明顺序一致；没有命中时返回空切片
func (c *Classifier) Classify(text string) []string {
	matches := c.Match(text)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m.Tag)
	}
	return tags
}

func (c *Classifier) Match(text string) []Match {
	var matches []Match
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				matches = append(matches, Match{Tag: cat.Tag, Keyword: kw})
				break
			}
		}
	}
	return matches
}

func (c *Classifier) Categories() []Category {
	return NewClassifier(c.categories).categories
}
