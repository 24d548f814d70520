package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/certlab/internal/csr"
	"github.com/abhisek/certlab/internal/terminal"
	"github.com/abhisek/certlab/internal/ui/theme"
)

// RunLab drives sess from in until the learner types exit or input ends.
// The interactive CSR prompt is answered field by field; ending input while
// it is open cancels the command.
func RunLab(ctx context.Context, sess *terminal.Session, in io.Reader, out io.Writer) error {
	r := newLineReader(in, out)
	defer r.close()
	shown := printEntries(out, sess.Transcript(), 0)

	fmt.Fprintln(out, theme.Hint.Render("Type exit to leave the lab."))
	for {
		line, ok := r.read(theme.PromptSign.Render("$") + " ")
		if !ok || isExit(line) {
			break
		}

		res := sess.Submit(ctx, line)
		if res.Kind == terminal.KindInteractive {
			values, ok := answerPrompt(r, out)
			if !ok {
				sess.CancelInteractive()
				shown = printEntries(out, sess.Transcript(), shown)
				break
			}
			sess.FinishInteractive(ctx, values)
		}
		shown = printEntries(out, sess.Transcript(), shown)
	}

	done, total := sess.Progress()
	fmt.Fprintf(out, "%s: %d/%d required commands", sess.Module().Title, done, total)
	if sess.Completed() {
		fmt.Fprint(out, " "+theme.Badge.Render("COMPLETED"))
	}
	fmt.Fprintln(out)
	return ctx.Err()
}

// answerPrompt collects every CSR field. ok is false when input ends first.
func answerPrompt(r lineReader, out io.Writer) (csr.Values, bool) {
	fmt.Fprintln(out, csr.Banner)
	p := csr.NewPrompt()
	for !p.Done() {
		f, _ := p.Current()
		line, ok := r.read(theme.FieldPrompt.Render(f.PromptLine()) + " ")
		if !ok {
			return nil, false
		}
		p.Commit(line)
	}
	return p.Values(), true
}

// printEntries writes the transcript entries from index from on and returns
// the new length. Echoed input is skipped since the learner just typed it,
// and so are the field prompts replayed in front of a generated request.
func printEntries(out io.Writer, entries []terminal.Entry, from int) int {
	for _, e := range entries[from:] {
		if e.Kind == terminal.EntryInput {
			continue
		}
		text := e.Text
		if i := strings.Index(text, "\nGenerating certificate request"); i >= 0 {
			text = text[i+1:]
		}
		printOutput(out, text, terminal.IsFailure(text))
	}
	return len(entries)
}
