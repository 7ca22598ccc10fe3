package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// prompter reads typed answers from a line-oriented input. Every reader
// returns io.EOF once the input is exhausted and ctx.Err() once the
// context is cancelled, even while a read is still pending.
type prompter struct {
	in  io.Reader
	out io.Writer

	// ctx is set by Console.Run for the duration of one session.
	ctx context.Context

	start sync.Once
	lines chan string
	err   error // set before lines is closed
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out, ctx: context.Background(), lines: make(chan string)}
}

// scan feeds lines until the input ends. It blocks in Scan, so it runs on
// its own goroutine and is abandoned if the session is cancelled.
func (p *prompter) scan() {
	s := bufio.NewScanner(p.in)
	for s.Scan() {
		p.lines <- strings.TrimRight(s.Text(), "\r")
	}
	p.err = io.EOF
	if err := s.Err(); err != nil {
		p.err = fmt.Errorf("reading input: %w", err)
	}
	close(p.lines)
}

func (p *prompter) readLine(prompt string) (string, error) {
	if err := p.ctx.Err(); err != nil {
		return "", err
	}
	p.start.Do(func() { go p.scan() })

	fmt.Fprint(p.out, prompt)
	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", p.err
		}
		return line, nil
	}
}

// readInt re-prompts until the answer parses as an integer.
func (p *prompter) readInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "\tEnter a number please.")
	}
}

// readChar re-prompts until a non-empty answer is given and returns its first rune.
func (p *prompter) readChar(prompt string) (rune, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if line != "" {
			return []rune(line)[0], nil
		}
		fmt.Fprintln(p.out, "\tEnter a character please.")
	}
}

// readBool treats only "true" (any case) as true.
func (p *prompter) readBool(prompt string) (bool, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "true"), nil
}

// readFloat falls back to 0 when the answer is not a number.
func (p *prompter) readFloat(prompt string) (float64, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, nil
	}
	return f, nil
}

func isYes(c rune) bool { return c == 'Y' || c == 'y' }
func isNo(c rune) bool  { return c == 'N' || c == 'n' }
