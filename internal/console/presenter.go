package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/frahmantamala/epic-events-crm/internal/workflow"
)

// Presenter talks to the operator over line-oriented text streams.
type Presenter struct {
	ctx      context.Context
	in       *bufio.Reader
	out      io.Writer
	terminal *os.File

	// pending carries the line of a read still blocked on in. At most one
	// read is outstanding.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

var _ workflow.Presenter = (*Presenter)(nil)

// New reads answers from in. Secrets are read without echo when in is a terminal.
// A prompt waiting for an answer gives up with ctx.Err() once ctx is done.
func New(ctx context.Context, in io.Reader, out io.Writer) *Presenter {
	p := &Presenter{ctx: ctx, in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		p.terminal = f
	}
	return p
}

func (p *Presenter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// receive waits for the next raw line. A read abandoned on cancellation is
// picked up again by the next call, so no line is lost.
func (p *Presenter) receive() (string, error) {
	if p.pending == nil {
		p.pending = make(chan lineResult, 1)
		go func(ch chan<- lineResult) {
			line, err := p.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}(p.pending)
	}

	select {
	case r := <-p.pending:
		p.pending = nil
		return r.line, r.err
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	}
}

// readLine returns io.EOF only when nothing was typed before input ended.
func (p *Presenter) readLine() (string, error) {
	line, err := p.receive()
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Presenter) ask(prompt string) (string, error) {
	p.printf("%s", prompt)
	return p.readLine()
}

func (p *Presenter) askSecret(prompt string) (string, error) {
	p.printf("%s", prompt)
	secret, err := withoutEcho(p.terminal, func() (string, error) {
		line, err := p.receive()
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	})
	if p.terminal != nil {
		p.printf("\n")
	}
	return secret, err
}

func (p *Presenter) Menu(title string, options []string) (int, error) {
	p.printf("\n=== %s ===\n", title)
	for i, option := range options {
		p.printf("%2d. %s\n", i+1, option)
	}

	for {
		answer, err := p.ask("Choose an option: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		p.ShowMessage(workflow.MessageError, fmt.Sprintf("Please enter a number between 1 and %d.", len(options)))
	}
}

func (p *Presenter) ChooseFromList(title string, rows []workflow.Row) (int64, bool, error) {
	p.printf("\n%s\n", title)
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "  [%d]\t%s\n", row.ID, row.Label)
	}
	_ = w.Flush()

	for {
		answer, err := p.ask("Enter the ID (blank to cancel): ")
		if err != nil {
			return 0, false, err
		}
		if answer == "" {
			return 0, false, nil
		}
		id, err := strconv.ParseInt(answer, 10, 64)
		if err == nil {
			return id, true, nil
		}
		p.ShowMessage(workflow.MessageError, "Please enter one of the IDs shown above.")
	}
}

func (p *Presenter) Confirm(prompt string) (bool, error) {
	answer, err := p.ask(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (p *Presenter) CollectFields(title string, schema []workflow.Field) (workflow.FieldValues, error) {
	p.printf("\n--- %s ---\n", title)
	values := workflow.FieldValues{}
	for _, field := range schema {
		value, err := p.collect(field)
		if err != nil {
			return nil, err
		}
		if value != "" {
			values[field.Name] = value
		}
	}
	return values, nil
}

func (p *Presenter) collect(field workflow.Field) (string, error) {
	prompt := fieldPrompt(field)
	for {
		var (
			value string
			err   error
		)
		if field.Type == workflow.FieldPassword {
			value, err = p.askSecret(prompt)
		} else {
			value, err = p.ask(prompt)
		}
		if err != nil {
			return "", err
		}

		if value == "" {
			if field.Optional {
				return "", nil
			}
			p.ShowMessage(workflow.MessageError, fmt.Sprintf("%s is required.", field.Label))
			continue
		}
		if field.Type == workflow.FieldChoice {
			if choice, ok := matchChoice(value, field.Choices); ok {
				return choice, nil
			}
			p.ShowMessage(workflow.MessageError, fmt.Sprintf("Please choose from (%s).", strings.Join(field.Choices, ", ")))
			continue
		}
		return value, nil
	}
}

func fieldPrompt(field workflow.Field) string {
	var hints []string
	if field.Type == workflow.FieldChoice {
		hints = append(hints, strings.Join(field.Choices, "/"))
	}
	if field.MaxLength > 0 {
		hints = append(hints, fmt.Sprintf("max %d", field.MaxLength))
	}
	if field.Optional {
		hints = append(hints, "optional")
	}
	if len(hints) == 0 {
		return field.Label + ": "
	}
	return fmt.Sprintf("%s (%s): ", field.Label, strings.Join(hints, ", "))
}

func matchChoice(value string, choices []string) (string, bool) {
	for _, choice := range choices {
		if strings.EqualFold(value, choice) {
			return choice, true
		}
	}
	return "", false
}

func (p *Presenter) ShowRecord(title string, record []workflow.Pair) {
	p.printf("\n%s\n", title)
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	for _, pair := range record {
		fmt.Fprintf(w, "  %s:\t%s\n", pair.Label, pair.Value)
	}
	_ = w.Flush()
}

func (p *Presenter) ShowList(title string, table workflow.Table) {
	p.printf("\n%s\n", title)
	if len(table.Rows) == 0 {
		p.printf("  (no entries)\n")
		return
	}

	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\n", strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintf(w, "%s\n", strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func (p *Presenter) ShowMessage(kind workflow.MessageKind, text string) {
	p.printf("[%s] %s\n", kind, text)
}
