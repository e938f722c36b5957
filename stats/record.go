package stats

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// MinRecordLength is the shortest line treated as a record. Anything
// shorter is blank or noise and is skipped.
const MinRecordLength = 3

var ErrMissingSeparator = errors.New("missing ';' separator")

// RecordError reports a line that could not be turned into a record.
type RecordError struct {
	Line string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record %q: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ParseRecord splits line at the first ';' and parses the remainder as a
// decimal number. ok is false for lines too short to be a record.
func ParseRecord(line []byte) (key []byte, value float64, ok bool, err error) {
	if len(line) < MinRecordLength {
		return nil, 0, false, nil
	}

	key, valueText, found := bytes.Cut(line, []byte{';'})
	if !found {
		return nil, 0, false, &RecordError{Line: string(line), Err: ErrMissingSeparator}
	}

	value, err = strconv.ParseFloat(string(valueText), 64)
	if err != nil {
		return nil, 0, false, &RecordError{Line: string(line), Err: err}
	}
	return key, value, true, nil
}

// Accept parses one line and folds it into m.
func (m Map) Accept(line []byte) error {
	key, v, ok, err := ParseRecord(line)
	if err != nil || !ok {
		return err
	}

	// The string conversion in the index expression does not allocate.
	if a, found := m[string(key)]; found {
		a.Add(v)
		return nil
	}
	m[string(key)] = newAggregate(v)
	return nil
}
