package mermaid

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommandNotFound(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(Options{Command: "thesisdocx-no-such-command"})

	img, err := r.Render(context.Background(), "graph TD\nA-->B\n", dir)
	require.Error(t, err)
	assert.Empty(t, img)

	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)

	// 失败后不能留下临时文件
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderCommandFails(t *testing.T) {
	dir := t.TempDir()
	// false 接受任何参数并以非零退出
	r := NewRenderer(Options{Command: "false", Timeout: 5 * time.Second})

	_, err := r.Render(context.Background(), "graph TD\nA-->B\n", dir)
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "失败路径上临时文件必须清理干净")
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(Options{})
	assert.Equal(t, "mmdc", r.command)
	assert.Equal(t, 30*time.Second, r.timeout)
	assert.Equal(t, 1200, r.width)
	assert.Equal(t, 800, r.height)
	assert.Equal(t, 1.5, r.scale)
}
