package collect

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripDots(t *testing.T) {
	f := StripDots("https://www.ee.sdu.edu.cn")

	u, err := f("../info/1021/3301.htm")

	require.NoError(t, err)
	assert.Equal(t, "https://www.ee.sdu.edu.cn/info/1021/3301.htm", u)
}

func TestResolveReference(t *testing.T) {
	f, err := ResolveReference("https://www.ee.sdu.edu.cn/szdw1/zrjs.htm")
	require.NoError(t, err)

	u, err := f("../info/1021/3301.htm")
	require.NoError(t, err)
	assert.Equal(t, "https://www.ee.sdu.edu.cn/info/1021/3301.htm", u)

	u, err = f("https://other.edu.cn/a.htm")
	require.NoError(t, err)
	assert.Equal(t, "https://other.edu.cn/a.htm", u)

	_, err = f("%zz")
	assert.Error(t, err)
}

func TestScriptNormalizer(t *testing.T) {
	f, err := ScriptNormalizer("https://www.ee.sdu.edu.cn", `base + fragment.replace("..", "")`)
	require.NoError(t, err)

	u, err := f("../info/1021/3301.htm")

	require.NoError(t, err)
	assert.Equal(t, "https://www.ee.sdu.edu.cn/info/1021/3301.htm", u)
}

func TestScriptNormalizerConcurrent(t *testing.T) {
	f, err := ScriptNormalizer("https://a.edu.cn/", `base + fragment`)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := f("x.htm")
			assert.NoError(t, err)
			assert.Equal(t, "https://a.edu.cn/x.htm", u)
		}()
	}
	wg.Wait()
}

func TestScriptNormalizerErrors(t *testing.T) {
	_, err := ScriptNormalizer("b", "")
	assert.Error(t, err)

	_, err = ScriptNormalizer("b", "base + (")
	assert.Error(t, err)

	f, err := ScriptNormalizer("b", "fragment.length")
	require.NoError(t, err)
	_, err = f("abc")
	assert.Error(t, err)

	f, err = ScriptNormalizer("b", "undefinedFunc(fragment)")
	require.NoError(t, err)
	_, err = f("abc")
	assert.Error(t, err)
}
