package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinRuns(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func TestSplitPureLatin(t *testing.T) {
	runs := Split("Hello, World! 123", RoleBody)
	require.Len(t, runs, 1)
	assert.Equal(t, "Hello, World! 123", runs[0].Text)
	assert.False(t, runs[0].Script)
	assert.False(t, runs[0].Superscript)
}

func TestSplitPureScript(t *testing.T) {
	runs := Split("虚拟化环境检测", RoleBody)
	require.Len(t, runs, 1)
	assert.Equal(t, "虚拟化环境检测", runs[0].Text)
	assert.True(t, runs[0].Script)
}

func TestSplitRoundTrip(t *testing.T) {
	// 不含 [^N] 标记的任意混排文本，拼接结果必须与输入一致
	cases := []string{
		"本文基于 KVM 的虚拟化平台，提出了一种检测方法。",
		"性能提升了 15.3%（见表2.1）。",
		"mixed 中英 text 混排 with symbols：,.!?",
		"   leading and trailing   ",
		"全角符号，。；：与半角,.;:混用",
		"引用文献[3]与[4,5]以及[6-8]的结论",
	}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			assert.Equal(t, c, joinRuns(Split(c, RoleBody)))
		})
	}
}

func TestSplitScriptFontFlag(t *testing.T) {
	runs := Split("基于KVM的检测", RoleBody)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].Script)
	assert.Equal(t, "KVM", runs[1].Text)
	assert.False(t, runs[1].Script)
	assert.True(t, runs[2].Script)
}

func TestHatCitation(t *testing.T) {
	runs := Split("如文献[^7]所述", RoleBody)
	var cite *Run
	for i := range runs {
		if runs[i].Text == "[7]" {
			cite = &runs[i]
		}
	}
	require.NotNil(t, cite, "应当出现渲染为 [7] 的子串")
	assert.True(t, cite.Superscript)
}

func TestHatCitationInHeading(t *testing.T) {
	// 标题中的编号不是引文，任何数字标记都不上标
	runs := Split("2.3 相关工作[^7]", RoleHeading)
	for _, r := range runs {
		assert.False(t, r.Superscript, "标题角色下不应出现上标: %q", r.Text)
	}
	assert.Equal(t, "2.3 相关工作[7]", joinRuns(runs))
}

func TestPlainCitationNotSuperscript(t *testing.T) {
	runs := Split("结论见[1,2-5]。", RoleBody)
	var found bool
	for _, r := range runs {
		if r.Text == "[1,2-5]" {
			found = true
			assert.False(t, r.Superscript)
		}
	}
	assert.True(t, found)
}

func TestReferenceRoleVerbatim(t *testing.T) {
	text := "[1] Smith J. Virtual machine detection[J]. 计算机学报, 2020."
	runs := Split(text, RoleReference)
	require.Len(t, runs, 1)
	assert.Equal(t, text, runs[0].Text)
	assert.False(t, runs[0].Superscript)
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split("", RoleBody))
	assert.Nil(t, Split("   ", RoleBody))
	assert.Nil(t, Split("", RoleReference))
}
