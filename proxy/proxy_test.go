package proxy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinProxySwitcher(t *testing.T) {
	p, err := RoundRobinProxySwitcher("http://127.0.0.1:7890", "http://127.0.0.1:7891")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "https://www.ee.sdu.edu.cn", nil)
	var hosts []string
	for i := 0; i < 4; i++ {
		u, err := p(req)
		require.NoError(t, err)
		hosts = append(hosts, u.Host)
	}
	assert.Equal(t, []string{"127.0.0.1:7890", "127.0.0.1:7891", "127.0.0.1:7890", "127.0.0.1:7891"}, hosts)
}

func TestRoundRobinProxySwitcherErrors(t *testing.T) {
	_, err := RoundRobinProxySwitcher()
	assert.ErrorIs(t, err, ErrEmptyProxyList)

	_, err = RoundRobinProxySwitcher("http://[::1")
	assert.Error(t, err)
}
