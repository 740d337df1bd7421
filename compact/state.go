package compact

import (
	"github.com/gostdlib/base/context"

	"github.com/aleloi/thrift/errs"
)

// state is one position in the per-instance protocol state machine shared by
// Reader and Writer. The two additional entries (container/struct "restore"
// targets) are represented implicitly by the stacks rather than as distinct
// states, since what "restore" means is "whatever was pushed".
type state uint8

const (
	stateClear state = iota
	stateField
	stateValue
	stateContainer
	stateBool
)

func (s state) String() string {
	switch s {
	case stateClear:
		return "CLEAR"
	case stateField:
		return "FIELD"
	case stateValue:
		return "VALUE"
	case stateContainer:
		return "CONTAINER"
	case stateBool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

// DefaultMaxDepth bounds both the struct-nesting and list-nesting stacks.
// Pathological deep nesting is a common fuzzed-input attack surface for
// Thrift-family decoders, so both stacks are length-checked against this
// bound and a push past it is a StackDepth error rather than further growth.
const DefaultMaxDepth = 64

// DefaultMaxCollectionSize bounds the size field read from a list/set header
// and the length prefix of a BINARY/STRING value, defending against a corrupt
// or hostile count that would otherwise drive an enormous allocation.
const DefaultMaxCollectionSize = 1 << 20

// machine is the state machine shared by Reader and Writer. Both enforce the
// same transition table; only the direction the bytes flow differs, which
// lives in reader.go/writer.go.
type machine struct {
	maxDepth          int
	maxCollectionSize uint64

	state state

	// structStack holds, per enclosing struct, the last_fid in effect before
	// that struct was entered and the state to restore on StructEnd.
	structStack []structFrame
	lastFID     int16

	// containerStack holds the state to restore on ListEnd.
	containerStack []state

	// bool latch: armed between FieldBegin(BOOL) and the paired Bool call,
	// or (reader only) between reading a bool field header and readBool().
	boolArmed bool
	boolFID   int16 // writer: latched field id awaiting a value
	boolValue bool  // reader: value already extracted from the header byte
}

type structFrame struct {
	savedLastFID int16
	savedState   state
}

func newMachine(maxDepth int, maxCollectionSize uint64) machine {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxCollectionSize == 0 {
		maxCollectionSize = DefaultMaxCollectionSize
	}
	return machine{
		maxDepth:          maxDepth,
		maxCollectionSize: maxCollectionSize,
		state:             stateClear,
	}
}

func (m *machine) invalidState(ctx context.Context, op string) error {
	return errs.Newf(ctx, errs.CatUser, errs.KindInvalidState,
		"compact: %s not legal in state %s", op, m.state)
}

func (m *machine) enterStruct(ctx context.Context) error {
	switch m.state {
	case stateClear, stateContainer, stateValue:
	default:
		return m.invalidState(ctx, "StructBegin")
	}
	if len(m.structStack) >= m.maxDepth {
		return errs.Newf(ctx, errs.CatUser, errs.KindStackDepth,
			"compact: struct nesting exceeds max depth %d", m.maxDepth)
	}
	m.structStack = append(m.structStack, structFrame{savedLastFID: m.lastFID, savedState: m.state})
	m.lastFID = 0
	m.state = stateField
	return nil
}

func (m *machine) exitStruct(ctx context.Context) error {
	if m.state != stateField {
		return m.invalidState(ctx, "StructEnd")
	}
	if len(m.structStack) == 0 {
		return m.invalidState(ctx, "StructEnd (no open struct)")
	}
	top := m.structStack[len(m.structStack)-1]
	m.structStack = m.structStack[:len(m.structStack)-1]
	m.lastFID = top.savedLastFID
	m.state = top.savedState
	return nil
}

func (m *machine) beginField(ctx context.Context, isBool bool) error {
	if m.state != stateField {
		return m.invalidState(ctx, "FieldBegin")
	}
	if isBool {
		m.state = stateBool
	} else {
		m.state = stateValue
	}
	return nil
}

func (m *machine) endField(ctx context.Context) error {
	switch m.state {
	case stateValue, stateBool:
	default:
		return m.invalidState(ctx, "FieldEnd")
	}
	m.state = stateField
	m.boolArmed = false
	return nil
}

func (m *machine) requireField(ctx context.Context, op string) error {
	if m.state != stateField {
		return m.invalidState(ctx, op)
	}
	return nil
}

func (m *machine) fieldStop(ctx context.Context) error {
	return m.requireField(ctx, "FieldStop")
}

func (m *machine) enterContainer(ctx context.Context) error {
	switch m.state {
	case stateValue, stateContainer:
	default:
		return m.invalidState(ctx, "ListBegin")
	}
	if len(m.containerStack) >= m.maxDepth {
		return errs.Newf(ctx, errs.CatUser, errs.KindStackDepth,
			"compact: list nesting exceeds max depth %d", m.maxDepth)
	}
	m.containerStack = append(m.containerStack, m.state)
	m.state = stateContainer
	return nil
}

func (m *machine) exitContainer(ctx context.Context) error {
	if m.state != stateContainer {
		return m.invalidState(ctx, "ListEnd")
	}
	if len(m.containerStack) == 0 {
		return m.invalidState(ctx, "ListEnd (no open list)")
	}
	top := m.containerStack[len(m.containerStack)-1]
	m.containerStack = m.containerStack[:len(m.containerStack)-1]
	m.state = top
	return nil
}

// scalarOK reports whether a scalar value may be written/read in the current
// state: either directly inside a field (VALUE) or as a list element
// (CONTAINER).
func (m *machine) scalarOK(ctx context.Context, op string) error {
	switch m.state {
	case stateValue, stateContainer:
		return nil
	default:
		return m.invalidState(ctx, op)
	}
}
