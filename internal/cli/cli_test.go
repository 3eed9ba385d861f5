package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLIHelp 测试帮助信息
func TestCLIHelp(t *testing.T) {
	cmd := NewRootCommand("dev", "none", "unknown")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	outputStr := out.String()
	assert.Contains(t, outputStr, "把 Markdown 书稿转换为学位论文格式的 Word 文档")
	assert.Contains(t, outputStr, "Usage:")
	assert.Contains(t, outputStr, "thesisdocx [flags] input.md output.docx")
	assert.Contains(t, outputStr, "--header")
	assert.Contains(t, outputStr, "--image-width")
	assert.Contains(t, outputStr, "--mermaid-cmd")
}

// TestCLIMissingArgs 测试缺少参数的情况
func TestCLIMissingArgs(t *testing.T) {
	cmd := NewRootCommand("dev", "none", "unknown")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}
