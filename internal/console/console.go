// Package console runs labs, quizzes and the tutor as plain line-oriented
// sessions on a reader and writer, for use outside the full-screen UI.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/ui/markdown"
	"github.com/abhisek/certlab/internal/ui/theme"
)

// exitWords end a console session.
var exitWords = map[string]bool{"exit": true, "quit": true}

// lineReader prints a prompt and reads one line. ok is false once input is
// exhausted or the learner interrupts.
type lineReader interface {
	read(prompt string) (line string, ok bool)
	close()
}

// newLineReader edits lines with readline when in is a terminal and falls
// back to plain scanning otherwise.
func newLineReader(in io.Reader, out io.Writer) lineReader {
	if f, ok := in.(*os.File); ok && readline.IsTerminal(int(f.Fd())) {
		rl, err := readline.NewEx(&readline.Config{
			Stdin:           f,
			Stdout:          out,
			HistoryLimit:    200,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err == nil {
			return &editReader{rl: rl}
		}
		logger.Logger.Debug("line editing unavailable", "err", err)
	}
	return &scanReader{scanner: bufio.NewScanner(in), out: out}
}

type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scanReader) read(prompt string) (string, bool) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out)
		return "", false
	}
	return r.scanner.Text(), true
}

func (r *scanReader) close() {}

type editReader struct {
	rl *readline.Instance
}

func (r *editReader) read(prompt string) (string, bool) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, readline.ErrInterrupt) {
			logger.Logger.Warn("read line", "err", err)
		}
		return "", false
	}
	return line, true
}

func (r *editReader) close() {
	_ = r.rl.Close()
}

func isExit(line string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(line))]
}

// MarkdownStyle picks colored rendering for terminals and plain text for
// pipes and files.
func MarkdownStyle(out io.Writer) markdown.Style {
	if f, ok := out.(*os.File); ok && readline.IsTerminal(int(f.Fd())) {
		return markdown.Dark
	}
	return markdown.Plain
}

func printOutput(out io.Writer, text string, failed bool) {
	if text == "" {
		return
	}
	style := theme.Output
	if failed {
		style = theme.FailedOutput
	}
	fmt.Fprintln(out, style.Render(text))
}
