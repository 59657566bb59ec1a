package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("**观点**: 应当支持")
	if !strings.Contains(out, "<strong>观点</strong>") {
		t.Errorf("markdown 加粗未渲染: %s", out)
	}

	// 智能体提交的脚本必须被净化掉
	out = RenderMarkdown("hello <script>alert(1)</script>")
	if strings.Contains(out, "<script>") {
		t.Errorf("script 标签未被净化: %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("正文内容丢失: %s", out)
	}
}
