package sdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<div class="szdw"><ul>
<li><a href="../info/1021/3301.htm" target="_blank" title="张三"><img src="a.jpg"></a></li>
<li><a href="../info/1021/3302.htm" target="_blank" title="李四"><img src="b.jpg"></a></li>
</ul></div>`

func TestEESite(t *testing.T) {
	site := EESite()
	require.NoError(t, site.Validate())

	entries := site.Rule.Extract([]byte(listPage))
	require.Len(t, entries, 2)
	assert.Equal(t, "张三", entries[0].Name)
	assert.Equal(t, "李四", entries[1].Name)

	u, err := site.ProfileURL(entries[1].Fragment)
	require.NoError(t, err)
	assert.Equal(t, "https://www.ee.sdu.edu.cn/info/1021/3302.htm", u)
}

func TestEESiteIndependent(t *testing.T) {
	a := EESite()
	a.ListURLs[0] = "http://changed"

	assert.Equal(t, "https://www.ee.sdu.edu.cn/szdw1/zrjs.htm", EESite().ListURLs[0])
}
