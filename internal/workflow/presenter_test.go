package workflow_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/epic-events-crm/internal/workflow"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type shownMessage struct {
	kind workflow.MessageKind
	text string
}

// scriptedPresenter answers prompts from queues and records what it showed.
// Running out of answers behaves like a closed terminal.
type scriptedPresenter struct {
	menus    []string
	choices  []string
	forms    []workflow.FieldValues
	confirms []bool

	messages []shownMessage
	lists    map[string]workflow.Table
	records  map[string][]workflow.Pair
	schemas  [][]workflow.Field
}

func newScriptedPresenter() *scriptedPresenter {
	return &scriptedPresenter{
		lists:   map[string]workflow.Table{},
		records: map[string][]workflow.Pair{},
	}
}

func (p *scriptedPresenter) Menu(title string, options []string) (int, error) {
	if len(p.menus) == 0 {
		return 0, io.EOF
	}
	label := p.menus[0]
	p.menus = p.menus[1:]
	for i, option := range options {
		if option == label {
			return i, nil
		}
	}
	Fail(fmt.Sprintf("menu %q has no option %q (options: %v)", title, label, options))
	return 0, io.EOF
}

// ChooseFromList picks the first row whose label contains the scripted
// text, or answers an id nobody listed when the text starts with "#missing".
func (p *scriptedPresenter) ChooseFromList(title string, rows []workflow.Row) (int64, bool, error) {
	if len(p.choices) == 0 {
		return 0, false, io.EOF
	}
	want := p.choices[0]
	p.choices = p.choices[1:]
	if want == "" {
		return 0, false, nil
	}
	if want == "#missing" {
		return 987654, true, nil
	}
	for _, row := range rows {
		if strings.Contains(row.Label, want) {
			return row.ID, true, nil
		}
	}
	Fail(fmt.Sprintf("list %q has no row matching %q", title, want))
	return 0, false, io.EOF
}

func (p *scriptedPresenter) Confirm(string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, io.EOF
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPresenter) CollectFields(_ string, schema []workflow.Field) (workflow.FieldValues, error) {
	p.schemas = append(p.schemas, schema)
	if len(p.forms) == 0 {
		return nil, io.EOF
	}
	values := p.forms[0]
	p.forms = p.forms[1:]
	return values, nil
}

func (p *scriptedPresenter) ShowRecord(title string, record []workflow.Pair) {
	p.records[title] = record
}

func (p *scriptedPresenter) ShowList(title string, table workflow.Table) {
	p.lists[title] = table
}

func (p *scriptedPresenter) ShowMessage(kind workflow.MessageKind, text string) {
	p.messages = append(p.messages, shownMessage{kind: kind, text: text})
}

func (p *scriptedPresenter) messagesOf(kind workflow.MessageKind) []string {
	var out []string
	for _, m := range p.messages {
		if m.kind == kind {
			out = append(out, m.text)
		}
	}
	return out
}

func (p *scriptedPresenter) expectNoErrors() {
	ExpectWithOffset(1, p.messagesOf(workflow.MessageError)).To(BeEmpty())
}
