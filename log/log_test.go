package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestPluginKeepsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(NewPlugin(zapcore.AddSync(&buf), zapcore.DebugLevel)).Named("fetcher")

	logger.Debug("fetch failed", zap.String("url", "http://t/p/1.htm"), zap.Error(errors.New("timeout")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "fetcher", entry["logger"])
	assert.Equal(t, "fetch failed", entry["msg"])
	assert.Equal(t, "http://t/p/1.htm", entry["url"])
	assert.Equal(t, "timeout", entry["error"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["caller"], "log_test.go")
}

// 运行日志与诊断日志合并时，两者各自按自己的级别和格式输出
func TestTeeRunAndDiagnostic(t *testing.T) {
	var run, diag bytes.Buffer
	logger := NewLogger(
		NewRunPlugin(zapcore.AddSync(&run), zapcore.InfoLevel),
		NewPlugin(zapcore.AddSync(&diag), zapcore.DebugLevel),
	)

	logger.Info("程序开始执行")
	logger.Debug("run id", zap.String("id", "42"))

	assert.Regexp(t, `^\[[0-9: -]+\] 程序开始执行\n$`, run.String())
	lines := strings.Split(strings.TrimSpace(diag.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"id":"42"`)
}

func TestNewFilePluginAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.json")

	for i := 0; i < 2; i++ {
		plugin, closer := NewFilePlugin(path, zapcore.InfoLevel)
		NewLogger(plugin).Info("round", zap.Int("i", i))
		require.NoError(t, closer.Close())
	}

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), `"msg":"round"`))
}
