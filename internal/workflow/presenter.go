package workflow

// MessageKind selects how ShowMessage styles its text.
type MessageKind string

const (
	MessageInfo    MessageKind = "info"
	MessageWarning MessageKind = "warning"
	MessageError   MessageKind = "error"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldEmail       FieldType = "email"
	FieldPassword    FieldType = "password"
	FieldDecimal     FieldType = "decimal"
	FieldChoice      FieldType = "choice"
	FieldDate        FieldType = "date"
	FieldPositiveInt FieldType = "positive_int"
)

// DateLayout is how operators type dates.
const DateLayout = "2006-01-02"

// Field describes one input of a form.
type Field struct {
	Name      string
	Label     string
	Type      FieldType
	MaxLength int
	Optional  bool
	Choices   []string
}

// FieldValues holds the raw text typed for each field, keyed by Field.Name.
// Blank optional fields may be missing.
type FieldValues map[string]string

// Row is one selectable entry of a list.
type Row struct {
	ID    int64
	Label string
}

type Table struct {
	Headers []string
	Rows    [][]string
}

// Pair is a labelled value of a displayed record.
type Pair struct {
	Label string
	Value string
}

// Presenter is everything the session needs from the operator's terminal.
// Implementations return io.EOF once input is exhausted.
type Presenter interface {
	Menu(title string, options []string) (int, error)
	// ChooseFromList returns ok=false when the operator backs out.
	ChooseFromList(title string, rows []Row) (id int64, ok bool, err error)
	Confirm(prompt string) (bool, error)
	CollectFields(title string, schema []Field) (FieldValues, error)
	ShowRecord(title string, record []Pair)
	ShowList(title string, table Table)
	ShowMessage(kind MessageKind, text string)
}
