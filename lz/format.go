package lz

import "fmt"

// maxField is the largest value a field can hold before another digit is
// appended without overflowing an int.
const maxField = (int(^uint(0)>>1) - 9) / 10

// A parser reads tuples from a text stream, one field at a time.
type parser struct {
	buf []byte
	pos int
}

// Parse reads a whole text tuple stream. The literal of each tuple is the
// single byte after the second '|', whatever its value, so delimiters can
// appear as literals without any escaping: "[0|0||]" is a lone '|'.
func Parse(src []byte) ([]Tuple, error) {
	p := parser{buf: src}
	var tuples []Tuple
	for !p.done() {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, t)
	}
	return tuples, nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.buf)
}

func (p *parser) next() (Tuple, error) {
	start := p.pos
	var t Tuple
	var err error

	if err = p.expect('['); err != nil {
		return t, err
	}
	if t.Distance, err = p.number(); err != nil {
		return t, err
	}
	if err = p.expect('|'); err != nil {
		return t, err
	}
	if t.Length, err = p.number(); err != nil {
		return t, err
	}
	if err = p.expect('|'); err != nil {
		return t, err
	}
	if p.done() {
		return t, p.errorf("missing literal")
	}
	t.Literal = p.buf[p.pos]
	p.pos++
	if err = p.expect(']'); err != nil {
		return t, err
	}

	if !t.Valid() {
		return t, fmt.Errorf("%w: tuple at offset %d has distance %d and length %d", ErrFormat, start, t.Distance, t.Length)
	}
	return t, nil
}

func (p *parser) expect(c byte) error {
	if p.done() {
		return p.errorf("truncated tuple, expected %q", c)
	}
	if p.buf[p.pos] != c {
		return p.errorf("expected %q, found %q", c, p.buf[p.pos])
	}
	p.pos++
	return nil
}

// number reads a decimal field: "0", or a nonzero digit followed by digits.
func (p *parser) number() (int, error) {
	start := p.pos
	n := 0
	for !p.done() && '0' <= p.buf[p.pos] && p.buf[p.pos] <= '9' {
		if n > maxField {
			return 0, p.errorf("number too large")
		}
		n = n*10 + int(p.buf[p.pos]-'0')
		p.pos++
	}

	switch {
	case p.pos == start:
		return 0, p.errorf("expected a number")
	case p.buf[start] == '0' && p.pos-start > 1:
		return 0, fmt.Errorf("%w: leading zero in number at offset %d", ErrFormat, start)
	}
	return n, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: offset %d: %s", ErrFormat, p.pos, fmt.Sprintf(format, args...))
}
