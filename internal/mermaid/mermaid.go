package mermaid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mermaid 图表渲染。每幅图同步调用一次外部命令（默认 mmdc），
// 带固定超时；失败只影响这一幅图，由调用方降级为占位段落。
// 源文件在本函数内清理，输出图片由调用方嵌入后删除。

// RenderError 渲染失败的原因与底层错误
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mermaid 渲染失败: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("mermaid 渲染失败: %s", e.Reason)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer 外部 Mermaid CLI 的封装
type Renderer struct {
	command string
	timeout time.Duration
	width   int
	height  int
	scale   float64
}

// Options 渲染参数，零值字段取默认
type Options struct {
	Command string
	Timeout time.Duration
	Width   int
	Height  int
	Scale   float64
}

// NewRenderer 创建渲染器
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		command: opts.Command,
		timeout: opts.Timeout,
		width:   opts.Width,
		height:  opts.Height,
		scale:   opts.Scale,
	}
	if r.command == "" {
		r.command = "mmdc"
	}
	if r.timeout <= 0 {
		r.timeout = 30 * time.Second
	}
	if r.width <= 0 {
		r.width = 1200
	}
	if r.height <= 0 {
		r.height = 800
	}
	if r.scale <= 0 {
		r.scale = 1.5
	}
	return r
}

// Render 把 Mermaid 源码渲染为 PNG，返回图片路径。
// 超时、命令缺失、非零退出都返回 *RenderError，且不留下临时文件。
func (r *Renderer) Render(ctx context.Context, source, dir string) (string, error) {
	id := uuid.NewString()
	srcPath := filepath.Join(dir, id+".mmd")
	imgPath := filepath.Join(dir, id+".png")

	if err := os.WriteFile(srcPath, []byte(source), 0o644); err != nil {
		return "", &RenderError{Reason: "写入临时源文件失败", Err: err}
	}
	defer os.Remove(srcPath)

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, r.command,
		"-i", srcPath,
		"-o", imgPath,
		"-w", strconv.Itoa(r.width),
		"-H", strconv.Itoa(r.height),
		"--scale", strconv.FormatFloat(r.scale, 'f', -1, 64),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(imgPath)
		switch {
		case cctx.Err() == context.DeadlineExceeded:
			return "", &RenderError{Reason: "命令超时", Err: cctx.Err()}
		case errors.Is(err, exec.ErrNotFound):
			return "", &RenderError{Reason: fmt.Sprintf("未找到命令 %s，请安装 Mermaid CLI", r.command), Err: err}
		default:
			reason := strings.TrimSpace(stderr.String())
			if reason == "" {
				reason = "命令退出异常"
			}
			return "", &RenderError{Reason: reason, Err: err}
		}
	}

	if _, err := os.Stat(imgPath); err != nil {
		return "", &RenderError{Reason: "命令未生成输出图片", Err: err}
	}
	return imgPath, nil
}
