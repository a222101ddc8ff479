package jsontree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidDocument  = errors.New("invalid document")
	ErrUnsupportedKey   = errors.New("unsupported key")
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrDuplicateKey     = errors.New("duplicate key")
)

// reservedKeyChars cannot appear in keys: the separator plus the characters
// that have meaning in JSON path syntax.
const reservedKeyChars = `.|#@*?\`

// ValidKey reports whether k can be used as a tree key.
func ValidKey(k string) bool {
	return k != "" && !strings.ContainsAny(k, reservedKeyChars)
}

// Parse detects the rendering of text and parses it. Valid JSON is parsed as
// the indented form, anything else as the compact form.
func Parse(text string) (*Branch, Mode, error) {
	if gjson.Valid(text) {
		b, err := ParseIndented(text)
		return b, ModeIndented, err
	}
	b, err := ParseCompact(text)
	return b, ModeCompact, err
}

// ParseIndented parses a JSON object whose values are strings or objects.
// Whitespace is not significant, so any JSON formatting is accepted.
func ParseIndented(text string) (*Branch, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	res := gjson.Parse(text)
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidDocument)
	}
	return branchFromJSON(res, "")
}

func branchFromJSON(res gjson.Result, prefix string) (*Branch, error) {
	b := NewBranch()
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		path := joinPath(prefix, k)
		if !ValidKey(k) {
			err = fmt.Errorf("%w: %q", ErrUnsupportedKey, path)
			return false
		}
		if _, dup := b.Get(k); dup {
			err = fmt.Errorf("%w: %q", ErrDuplicateKey, path)
			return false
		}
		switch {
		case value.IsObject():
			var child *Branch
			child, err = branchFromJSON(value, path)
			if err != nil {
				return false
			}
			b.Set(k, child)
		case value.Type == gjson.String:
			b.Set(k, &Leaf{Value: value.String()})
		default:
			err = fmt.Errorf("%w: %q is %s, want string or object", ErrUnsupportedValue, path, value.Type)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ParseCompact parses the compact rendering produced by RenderBranch.
func ParseCompact(text string) (*Branch, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	p := &compactParser{lines: lines}
	b, err := p.branch("")
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.lines) {
		return nil, p.errorf("trailing content %q", p.lines[p.pos])
	}
	return b, nil
}

type compactParser struct {
	lines []string
	pos   int
}

func (p *compactParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidDocument, p.pos+1, fmt.Sprintf(format, args...))
}

func (p *compactParser) branch(prefix string) (*Branch, error) {
	if p.pos >= len(p.lines) || p.lines[p.pos] != "{" {
		return nil, p.errorf("expected {")
	}
	p.pos++

	b := NewBranch()
	for {
		if p.pos >= len(p.lines) {
			return nil, p.errorf("unexpected end of document")
		}
		line := p.lines[p.pos]
		if line == "}" {
			p.pos++
			return b, nil
		}

		key, rest, err := p.key(line)
		if err != nil {
			return nil, err
		}
		path := joinPath(prefix, key)
		if _, dup := b.Get(key); dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, path)
		}

		if rest == "" {
			p.pos++
			child, err := p.branch(path)
			if err != nil {
				return nil, err
			}
			b.Set(key, child)
			continue
		}

		value, err := strconv.Unquote(rest)
		if err != nil {
			return nil, p.errorf("value of %q is not a quoted string", path)
		}
		b.Set(key, &Leaf{Value: value})
		p.pos++
	}
}

// key splits `"key": rest` and validates the key.
func (p *compactParser) key(line string) (string, string, error) {
	if !strings.HasPrefix(line, `"`) {
		return "", "", p.errorf("expected quoted key, got %q", line)
	}
	quoted, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", "", p.errorf("bad key in %q", line)
	}
	rest, ok := strings.CutPrefix(line[len(quoted):], ":")
	if !ok {
		return "", "", p.errorf("expected \"key\":, got %q", line)
	}
	key, err := strconv.Unquote(quoted)
	if err != nil {
		return "", "", p.errorf("bad key %s", quoted)
	}
	if !ValidKey(key) {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedKey, key)
	}
	return key, strings.TrimSpace(rest), nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + PathSeparator + key
}
