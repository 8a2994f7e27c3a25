package engine

// Opcode tags a journal record with the lifecycle edge that produced
// it.
type Opcode string

const (
	OpBegin   Opcode = "B"
	OpCommit  Opcode = "C"
	OpDestroy Opcode = "D"
)

func (o Opcode) String() string {
	switch o {
	case OpBegin:
		return "begin"
	case OpCommit:
		return "commit"
	case OpDestroy:
		return "destroy"
	}
	return string(o)
}

// Journal is the crash-recovery/audit sink consumed by the engine.
// Writes are fire-and-forget: the engine never inspects a result from
// WriteRecord.
type Journal interface {
	OpenLog() error
	WriteRecord(t *Transaction, op Opcode)
}

// NopJournal discards every record. It is the default sink for books
// built without a journal.
type NopJournal struct{}

func (NopJournal) OpenLog() error                    { return nil }
func (NopJournal) WriteRecord(*Transaction, Opcode) {}
