package scheme

// Parser consumes tokens from a Tokenizer and builds a Value graph,
// allocating every node through a Heap.
type Parser struct {
	tok  *Tokenizer
	heap *Heap
}

// NewParser builds a Parser reading from tok and allocating through heap.
func NewParser(tok *Tokenizer, heap *Heap) *Parser {
	return &Parser{tok: tok, heap: heap}
}

// Read reads one datum: a number, boolean, symbol, quoted form, or list.
func (p *Parser) Read() (Value, error) {
	if p.tok.Eof() {
		return nil, newSyntaxError("unexpected end of input")
	}
	tok := p.tok.Current()
	switch tok.Kind {
	case TokInteger:
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		return p.heap.NewNumber(tok.Int), nil
	case TokBoolean:
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		return p.heap.NewBoolean(tok.Bool), nil
	case TokSymbol:
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		return p.heap.NewSymbol(tok.Text), nil
	case TokDot:
		// A bare dot reads as the symbol ".": the evaluator rejects it
		// in operator position; readList consumes Dot itself when it
		// appears in dotted-pair syntax, so this path is only reached
		// for a dot that is not part of a pair.
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		return p.heap.NewSymbol("."), nil
	case TokQuote:
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		datum, err := p.Read()
		if err != nil {
			return nil, err
		}
		// The quote Cell's Rest is the datum itself, not a one-element
		// list wrapping it: (quote . datum), not (quote datum . ()).
		// The "quote" builtin returns this datum unevaluated; the one
		// exception is a one-element list whose element is neither nil
		// nor a Number, which it unwraps to that element (see biQuote).
		return p.heap.NewCell(p.heap.NewSymbol("quote"), datum), nil
	case TokOpenParen:
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		return p.readList()
	case TokCloseParen:
		return nil, newSyntaxError("unexpected ')'")
	default:
		return nil, newSyntaxError("unrecognized token")
	}
}

// readList reads the remainder of a list after its opening paren has
// already been consumed.
func (p *Parser) readList() (Value, error) {
	if p.tok.Eof() {
		return nil, newSyntaxError("unterminated list")
	}
	if p.tok.Current().Kind == TokCloseParen {
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	head, err := p.Read()
	if err != nil {
		return nil, err
	}

	if p.tok.Eof() {
		return nil, newSyntaxError("unterminated list")
	}
	if p.tok.Current().Kind == TokDot {
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		tail, err := p.Read()
		if err != nil {
			return nil, err
		}
		if p.tok.Eof() || p.tok.Current().Kind != TokCloseParen {
			return nil, newSyntaxError("expected ')' to close dotted pair")
		}
		if err := p.tok.Next(); err != nil {
			return nil, err
		}
		return p.heap.NewCell(head, tail), nil
	}

	rest, err := p.readList()
	if err != nil {
		return nil, err
	}
	return p.heap.NewCell(head, rest), nil
}

// ReadDatum tokenizes src and reads exactly one top-level datum,
// rejecting empty input and any trailing tokens after the datum.
func ReadDatum(src string, heap *Heap) (Value, error) {
	tok, err := NewTokenizer(src)
	if err != nil {
		return nil, err
	}
	if tok.Eof() {
		return nil, newSyntaxError("empty input")
	}
	p := NewParser(tok, heap)
	v, err := p.Read()
	if err != nil {
		return nil, err
	}
	if !tok.Eof() {
		return nil, newSyntaxError("trailing input after top-level datum")
	}
	return v, nil
}
