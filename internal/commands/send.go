package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/funkychat/internal/chat"
	apierrors "github.com/diogo/funkychat/internal/errors"
	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/render"
	"github.com/diogo/funkychat/internal/session"
)

var (
	rawFlag    bool
	fileFlag   string
	outputFlag string
)

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send a single message and print the reply",
	Long: `Send one message to the selected backend and print its reply.

The message comes from the argument, from --file, or from stdin.
Replies are rendered as markdown on a terminal and printed raw otherwise.

Examples:
  funkychat send "Explain vector stores"
  funkychat send -b llamaindex -f question.md
  echo "hello" | funkychat send --raw`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stat, _ := os.Stdin.Stat()
		piped := stat != nil && (stat.Mode()&os.ModeCharDevice) == 0

		text, err := readInput(args, fileFlag, os.Stdin, piped)
		if err != nil {
			return err
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		backend, err := app.Backend()
		if err != nil {
			return err
		}

		width := getTerminalWidth() - 8
		opts := sendOptions{
			Raw:    rawFlag || !isStdoutTTY(),
			Output: outputFlag,
			Render: render.OptionsFromConfig(app.Config.Markdown, width),
		}
		return runSend(cmd.Context(), app.Runner, backend, text, opts, os.Stdout, os.Stderr)
	},
}

func init() {
	sendCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the reply without formatting")
	sendCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the message from a file")
	sendCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the reply to a file")
}

// readInput picks the message from --file, the argument or piped stdin,
// in that order
func readInput(args []string, file string, stdin io.Reader, piped bool) (string, error) {
	var text string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		text = string(data)
	case len(args) > 0:
		text = args[0]
	case piped:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", apierrors.ErrEmptyMessage
	}
	return text, nil
}

type sendOptions struct {
	Raw    bool
	Output string
	Render render.Options
}

// runSend sends text through a one-message session and prints the reply
func runSend(ctx context.Context, runner *chat.Runner, backend models.BackendID, text string, opts sendOptions, stdout, stderr io.Writer) error {
	store := session.NewStore(backend)

	effect := store.Apply(session.Submitted{Text: text, At: runner.Now()})
	if effect == nil {
		return apierrors.ErrEmptyMessage
	}

	var spin *spinner
	if !opts.Raw {
		spin = newSpinner(fmt.Sprintf("🤖 %s is thinking...", backend))
		spin.out = stderr
		spin.start()
	}

	ev := runner.Execute(ctx, effect)
	received, ok := ev.(session.ReplyReceived)
	if !ok {
		if spin != nil {
			spin.stopWithError()
		}
		return fmt.Errorf("no reply from %s", backend)
	}
	store.Apply(received)
	reply := received.Reply

	if !reply.OK() {
		if spin != nil {
			spin.stopWithError()
		}
		fmt.Fprintln(stderr, formatReplyError(reply))
		return fmt.Errorf("%s request failed (%s error)", backend, reply.Kind())
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(reply.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !opts.Raw {
			fmt.Fprintln(stderr, onlineStyle.Render(fmt.Sprintf("✓ Reply saved to %s", opts.Output)))
		}
		return nil
	}

	if opts.Raw {
		fmt.Fprint(stdout, reply.Text)
		if !strings.HasSuffix(reply.Text, "\n") {
			fmt.Fprintln(stdout)
		}
		return nil
	}

	bubbleWidth := opts.Render.Width + 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	fmt.Fprintln(stdout, assistantLabelStyle.Render(fmt.Sprintf("🤖 %s:", backend)))
	rendered := render.MarkdownOrPlain(reply.Text, opts.Render.WithWidth(bubbleWidth-4))
	fmt.Fprintln(stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))

	return nil
}
