package render

import "strings"

// Markdown renders markdown content for terminal display.
// Renderers are pooled per option set.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownOrPlain renders content and falls back to the raw text when
// rendering fails. Error replies are never markdown-rendered.
func MarkdownOrPlain(content string, opts Options) string {
	if strings.HasPrefix(content, "❌") {
		return content
	}
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
