package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultNumberPrefix prefixes generated invoice numbers
const DefaultNumberPrefix = "INV"

// Sequence is the invoice number counter. The zero value means no counter
// has been stored yet, which corresponds to the default invoice INV-001.
type Sequence struct {
	Value   int
	Present bool
}

// ParseSequence reads a stored counter. Anything that is not a decimal integer is an error.
func ParseSequence(s string) (Sequence, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Sequence{}, fmt.Errorf("invalid invoice sequence %q: %w", s, err)
	}
	return Sequence{Value: n, Present: true}, nil
}

// Next advances the counter. An absent counter advances to 2.
func (s Sequence) Next() Sequence {
	if !s.Present {
		return Sequence{Value: 2, Present: true}
	}
	return Sequence{Value: s.Value + 1, Present: true}
}

// String encodes the counter for storage
func (s Sequence) String() string {
	return strconv.Itoa(s.Value)
}

// InvoiceNumber formats the counter as PREFIX-NNN. Padding never truncates.
func (s Sequence) InvoiceNumber(prefix string) string {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return fmt.Sprintf("%s-%03d", prefix, s.Value)
}
