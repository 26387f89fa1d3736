package native

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokIdent
	tokDot
	tokComma
	tokLess
	tokGreater
	tokQuestion
	tokLBracket
	tokRBracket
)

func (k tokKind) String() string {
	switch k {
	case tokEOF:
		return "end of signature"
	case tokIdent:
		return "identifier"
	case tokDot:
		return "'.'"
	case tokComma:
		return "','"
	case tokLess:
		return "'<'"
	case tokGreater:
		return "'>'"
	case tokQuestion:
		return "'?'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	default:
		return "token"
	}
}

type sigToken struct {
	kind tokKind
	text string
	pos  int
}

func scanSignature(src string) ([]sigToken, error) {
	var toks []sigToken
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
			continue
		case isIdentStart(r):
			start := i
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if !isIdentPart(r) {
					break
				}
				i += size
			}
			toks = append(toks, sigToken{kind: tokIdent, text: src[start:i], pos: start})
			continue
		}
		kind := tokEOF
		switch r {
		case '.':
			kind = tokDot
		case ',':
			kind = tokComma
		case '<':
			kind = tokLess
		case '>':
			kind = tokGreater
		case '?':
			kind = tokQuestion
		case '[':
			kind = tokLBracket
		case ']':
			kind = tokRBracket
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, r, i)
		}
		toks = append(toks, sigToken{kind: kind, text: string(r), pos: i})
		i += size
	}
	toks = append(toks, sigToken{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

type sigParser struct {
	u    *Universe
	toks []sigToken
	pos  int
	vars map[string]*Var
}

// Parse reads a single type signature. Names listed in vars are type variables;
// every other name must be a class of the universe.
func (u *Universe) Parse(sig string, vars ...string) (Type, error) {
	p, err := u.newParser(sig, "", vars)
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseList reads a comma-separated list of signatures. An empty source yields an
// empty list.
func (u *Universe) ParseList(src string, vars ...string) ([]Type, error) {
	p, err := u.newParser(src, "", vars)
	if err != nil {
		return nil, err
	}
	return p.parseList()
}

// ParseDecl reads a signature list optionally prefixed by a type variable
// declaration, as in "<K, V> Map<K, Sequence<V>>". Declared variables belong to
// declarer.
func (u *Universe) ParseDecl(src, declarer string) ([]Type, error) {
	p, err := u.newParser(src, declarer, nil)
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokLess {
		p.next()
		for {
			name := p.next()
			if name.kind != tokIdent {
				return nil, p.unexpected(name, tokIdent)
			}
			if _, dup := p.vars[name.text]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, name.text)
			}
			p.vars[name.text] = NewVar(name.text, declarer)
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			if err := p.expect(tokGreater); err != nil {
				return nil, err
			}
			break
		}
	}
	return p.parseList()
}

func (u *Universe) newParser(src, declarer string, vars []string) (*sigParser, error) {
	toks, err := scanSignature(src)
	if err != nil {
		return nil, err
	}
	p := &sigParser{u: u, toks: toks, vars: make(map[string]*Var, len(vars))}
	for _, v := range vars {
		p.vars[normalizeName(v)] = NewVar(v, declarer)
	}
	return p, nil
}

func (p *sigParser) peek() sigToken { return p.toks[p.pos] }

func (p *sigParser) peekAt(n int) sigToken {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *sigParser) next() sigToken {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *sigParser) expect(kind tokKind) error {
	if t := p.next(); t.kind != kind {
		return p.unexpected(t, kind)
	}
	return nil
}

func (p *sigParser) unexpected(t sigToken, want tokKind) error {
	got := t.kind.String()
	if t.kind == tokIdent {
		got = fmt.Sprintf("%q", t.text)
	}
	return fmt.Errorf("%w: expected %s, found %s at offset %d", ErrSyntax, want, got, t.pos)
}

func (p *sigParser) parseList() ([]Type, error) {
	if p.peek().kind == tokEOF {
		return nil, nil
	}
	var out []Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *sigParser) parseType() (Type, error) {
	if p.peek().kind == tokQuestion {
		return p.parseWildcard()
	}
	t, err := p.parseRef()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokLBracket {
		p.next()
		if err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		if c, ok := t.(*Class); ok {
			if t, err = p.u.ArrayOf(c); err != nil {
				return nil, err
			}
			continue
		}
		t = ArrayOfType(t)
	}
	return t, nil
}

func (p *sigParser) parseWildcard() (Type, error) {
	p.next()
	if t := p.peek(); t.kind == tokIdent && (t.text == "extends" || t.text == "super") {
		p.next()
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if t.text == "super" {
			return Super(bound), nil
		}
		return Extends(bound), nil
	}
	return Unbounded(), nil
}

func (p *sigParser) parseRef() (Type, error) {
	first := p.next()
	if first.kind != tokIdent {
		return nil, p.unexpected(first, tokIdent)
	}
	if v, ok := p.vars[normalizeName(first.text)]; ok && p.peek().kind != tokDot {
		return v, nil
	}
	segs := []string{first.text}
	for p.peek().kind == tokDot && p.peekAt(1).kind == tokIdent {
		p.next()
		segs = append(segs, p.next().text)
	}
	class, err := p.resolve(segs)
	if err != nil {
		return nil, err
	}
	var cur Type = class
	if p.peek().kind == tokLess {
		if cur, err = p.parameterize(class, nil); err != nil {
			return nil, err
		}
	}
	// Member types of a parameterized owner: Outer<A>.Inner<B>.
	for p.peek().kind == tokDot {
		p.next()
		name := p.next()
		if name.kind != tokIdent {
			return nil, p.unexpected(name, tokIdent)
		}
		owner := cur
		ownerRaw := rawOf(owner)
		nested, ok := p.u.Lookup(ownerRaw.Name() + "$" + name.text)
		if !ok {
			return nil, fmt.Errorf("%w: %s$%s", ErrUnknownClass, ownerRaw.Name(), name.text)
		}
		_, ownerIsParam := owner.(ParameterizedType)
		switch {
		case p.peek().kind == tokLess:
			if !ownerIsParam {
				owner = nil
			}
			if cur, err = p.parameterize(nested, owner); err != nil {
				return nil, err
			}
		case ownerIsParam:
			if cur, err = p.check(nested, nil, owner); err != nil {
				return nil, err
			}
		default:
			cur = nested
		}
	}
	return cur, nil
}

// resolve finds the longest dotted prefix naming a class; the remaining segments
// name nested classes.
func (p *sigParser) resolve(segs []string) (*Class, error) {
	for n := len(segs); n > 0; n-- {
		class, ok := p.u.Lookup(strings.Join(segs[:n], "."))
		if !ok {
			continue
		}
		for _, seg := range segs[n:] {
			nested, ok := p.u.Lookup(class.Name() + "$" + seg)
			if !ok {
				return nil, fmt.Errorf("%w: %s$%s", ErrUnknownClass, class.Name(), seg)
			}
			class = nested
		}
		return class, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownClass, strings.Join(segs, "."))
}

func (p *sigParser) parameterize(raw *Class, owner Type) (Type, error) {
	if err := p.expect(tokLess); err != nil {
		return nil, err
	}
	var args []Type
	if p.peek().kind != tokGreater {
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if err := p.expect(tokGreater); err != nil {
		return nil, err
	}
	return p.check(raw, args, owner)
}

func (p *sigParser) check(raw *Class, args []Type, owner Type) (Type, error) {
	if len(args) != raw.Arity() {
		return nil, fmt.Errorf("%w: %s declares %d, got %d", ErrArity, raw.Name(), raw.Arity(), len(args))
	}
	return Parameterize(raw, args, owner), nil
}

func rawOf(t Type) *Class {
	switch x := t.(type) {
	case *Class:
		return x
	case ParameterizedType:
		return x.RawType()
	}
	return nil
}
