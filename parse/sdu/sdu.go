package sdu

import (
	"github.com/Nrich-sunny/honorcrawler/collect"
)

const EEBaseURL = "https://www.ee.sdu.edu.cn"

// TeacherListRe 专任教师列表中的教师链接：分组一为个人主页相对地址，分组二为姓名
const TeacherListRe = `<li><a href="(../info/\d+/\d+\.htm)" target="_blank" title="([^"]+)">`

const EESiteName = "山东大学电气工程学院"

// EESite 山东大学电气工程学院，每次调用返回新的实例
func EESite() *collect.Site {
	return &collect.Site{
		Name:    EESiteName,
		BaseURL: EEBaseURL,
		ListURLs: []string{
			"https://www.ee.sdu.edu.cn/szdw1/zrjs.htm",
		},
		Rule:      collect.MustRegexRule(TeacherListRe),
		Normalize: collect.StripDots(EEBaseURL),
	}
}
