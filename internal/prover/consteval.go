package prover

import (
	"strconv"
	"strings"
	"unicode"
)

// ConstEvaluator reports whether an expression is a compile-time boolean
// constant and, if so, its value. The surrounding compile context
// normally supplies this; LiteralEvaluator is the standalone default.
type ConstEvaluator interface {
	Eval(expr string) (value bool, ok bool)
}

// LiteralEvaluator evaluates goals built only from literals: booleans,
// integer arithmetic (+ - * / %), comparisons, && || !, and parentheses.
// Anything mentioning a variable is not a constant.
type LiteralEvaluator struct{}

func (LiteralEvaluator) Eval(expr string) (bool, bool) {
	toks, ok := tokenize(expr)
	if !ok || len(toks) == 0 {
		return false, false
	}
	p := &evalParser{toks: toks}
	v, ok := p.parseOr()
	if !ok || p.pos != len(p.toks) || !v.isBool {
		return false, false
	}
	return v.b, true
}

type evalValue struct {
	isBool bool
	b      bool
	n      int64
}

func boolValue(b bool) evalValue { return evalValue{isBool: true, b: b} }
func numValue(n int64) evalValue { return evalValue{n: n} }

type evalToken struct {
	op  string // operator, paren, "num", "true" or "false"
	num int64
}

func tokenize(expr string) ([]evalToken, bool) {
	var toks []evalToken
	runes := []rune(strings.TrimSpace(expr))
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			n, err := strconv.ParseInt(string(runes[i:j]), 10, 64)
			if err != nil {
				return nil, false
			}
			toks = append(toks, evalToken{op: "num", num: n})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			word := string(runes[i:j])
			if word != "true" && word != "false" {
				return nil, false // a variable, not a constant
			}
			toks = append(toks, evalToken{op: word})
			i = j
		default:
			if i+1 < len(runes) {
				two := string(runes[i : i+2])
				switch two {
				case "&&", "||", "==", "!=", "<=", ">=":
					toks = append(toks, evalToken{op: two})
					i += 2
					continue
				}
			}
			switch r {
			case '<', '>', '!', '+', '-', '*', '/', '%', '(', ')':
				toks = append(toks, evalToken{op: string(r)})
				i++
			default:
				return nil, false
			}
		}
	}
	return toks, true
}

// evalParser is a recursive-descent evaluator with the usual precedence:
// || < && < comparisons < additive < multiplicative < unary.
type evalParser struct {
	toks []evalToken
	pos  int
}

func (p *evalParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos].op
}

func (p *evalParser) parseOr() (evalValue, bool) {
	v, ok := p.parseAnd()
	if !ok {
		return v, false
	}
	for p.peek() == "||" {
		p.pos++
		rhs, ok := p.parseAnd()
		if !ok || !v.isBool || !rhs.isBool {
			return evalValue{}, false
		}
		v = boolValue(v.b || rhs.b)
	}
	return v, true
}

func (p *evalParser) parseAnd() (evalValue, bool) {
	v, ok := p.parseCmp()
	if !ok {
		return v, false
	}
	for p.peek() == "&&" {
		p.pos++
		rhs, ok := p.parseCmp()
		if !ok || !v.isBool || !rhs.isBool {
			return evalValue{}, false
		}
		v = boolValue(v.b && rhs.b)
	}
	return v, true
}

func (p *evalParser) parseCmp() (evalValue, bool) {
	left, ok := p.parseAdd()
	if !ok {
		return left, false
	}
	op := p.peek()
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
	default:
		return left, true
	}
	p.pos++
	right, ok := p.parseAdd()
	if !ok {
		return evalValue{}, false
	}
	if left.isBool != right.isBool {
		return evalValue{}, false
	}
	if left.isBool {
		switch op {
		case "==":
			return boolValue(left.b == right.b), true
		case "!=":
			return boolValue(left.b != right.b), true
		}
		return evalValue{}, false // ordering booleans makes no sense
	}
	switch op {
	case "==":
		return boolValue(left.n == right.n), true
	case "!=":
		return boolValue(left.n != right.n), true
	case "<":
		return boolValue(left.n < right.n), true
	case "<=":
		return boolValue(left.n <= right.n), true
	case ">":
		return boolValue(left.n > right.n), true
	case ">=":
		return boolValue(left.n >= right.n), true
	}
	return evalValue{}, false
}

func (p *evalParser) parseAdd() (evalValue, bool) {
	v, ok := p.parseMul()
	if !ok {
		return v, false
	}
	for {
		op := p.peek()
		if op != "+" && op != "-" {
			return v, true
		}
		p.pos++
		rhs, ok := p.parseMul()
		if !ok || v.isBool || rhs.isBool {
			return evalValue{}, false
		}
		if op == "+" {
			v = numValue(v.n + rhs.n)
		} else {
			v = numValue(v.n - rhs.n)
		}
	}
}

func (p *evalParser) parseMul() (evalValue, bool) {
	v, ok := p.parseUnary()
	if !ok {
		return v, false
	}
	for {
		op := p.peek()
		if op != "*" && op != "/" && op != "%" {
			return v, true
		}
		p.pos++
		rhs, ok := p.parseUnary()
		if !ok || v.isBool || rhs.isBool {
			return evalValue{}, false
		}
		if (op == "/" || op == "%") && rhs.n == 0 {
			return evalValue{}, false
		}
		switch op {
		case "*":
			v = numValue(v.n * rhs.n)
		case "/":
			v = numValue(v.n / rhs.n)
		case "%":
			v = numValue(v.n % rhs.n)
		}
	}
}

func (p *evalParser) parseUnary() (evalValue, bool) {
	switch p.peek() {
	case "!":
		p.pos++
		v, ok := p.parseUnary()
		if !ok || !v.isBool {
			return evalValue{}, false
		}
		return boolValue(!v.b), true
	case "-":
		p.pos++
		v, ok := p.parseUnary()
		if !ok || v.isBool {
			return evalValue{}, false
		}
		return numValue(-v.n), true
	}
	return p.parsePrimary()
}

func (p *evalParser) parsePrimary() (evalValue, bool) {
	switch p.peek() {
	case "num":
		n := p.toks[p.pos].num
		p.pos++
		return numValue(n), true
	case "true":
		p.pos++
		return boolValue(true), true
	case "false":
		p.pos++
		return boolValue(false), true
	case "(":
		p.pos++
		v, ok := p.parseOr()
		if !ok || p.peek() != ")" {
			return evalValue{}, false
		}
		p.pos++
		return v, true
	}
	return evalValue{}, false
}
