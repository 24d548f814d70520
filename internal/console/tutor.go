package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/certlab/internal/tutor"
	"github.com/abhisek/certlab/internal/ui/markdown"
	"github.com/abhisek/certlab/internal/ui/theme"
)

// RequestTimeout bounds one tutor round trip.
const RequestTimeout = 90 * time.Second

const replyWidth = 80

// RunTutor chats with t until exit or end of input. Sandbox commands are
// run and reviewed, a number picks one of the last suggested commands, and
// "new" starts a fresh conversation.
func RunTutor(ctx context.Context, t *tutor.Tutor, in io.Reader, out io.Writer) error {
	r := newLineReader(in, out)
	defer r.close()
	var suggestions []string

	fmt.Fprintln(out, theme.Hint.Render(`Ask a question or type an openssl command. "new" starts over, "exit" leaves.`))
	for {
		line, ok := r.read(theme.PromptSign.Render(">") + " ")
		if !ok || isExit(line) {
			return ctx.Err()
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "new":
			t.Reset()
			suggestions = nil
			fmt.Fprintln(out, theme.Hint.Render("Started a new conversation."))
			continue
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(suggestions) {
			line = suggestions[n-1]
			fmt.Fprintln(out, theme.PromptSign.Render("$")+" "+line)
		}

		reply, err := exchange(ctx, t, line, out)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(out, theme.Incorrect.Render("The tutor is unavailable: "+err.Error()))
			suggestions = nil
			continue
		}
		suggestions = reply.Commands
		printReply(out, reply)
	}
}

func exchange(ctx context.Context, t *tutor.Tutor, line string, out io.Writer) (tutor.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if !tutor.IsSandboxCommand(line) {
		return t.Ask(ctx, line)
	}
	output, reply, err := t.Run(ctx, line)
	printOutput(out, output, false)
	return reply, err
}

func printReply(out io.Writer, reply tutor.Reply) {
	if reply.Text != "" {
		fmt.Fprintln(out, theme.Hint.Render("tutor:"))
		fmt.Fprintln(out, markdown.Render(reply.Text, replyWidth, MarkdownStyle(out)))
	}
	for i, c := range reply.Commands {
		fmt.Fprintf(out, "  %d) %s\n", i+1, c)
	}
}
