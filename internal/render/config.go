package render

import (
	"github.com/diogo/funkychat/internal/config"
)

// OptionsFromConfig builds render options from the markdown section of the
// user configuration. An empty style keeps the default theme.
func OptionsFromConfig(md config.MarkdownConfig, width int) Options {
	opts := DefaultOptions()

	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if width > 0 {
		opts.Width = width
	}
	return opts
}
