// Package args builds ordered command-line argument lists for tool invocations.
package args

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidFlagValue is returned when a flag value has an unsupported type.
var ErrInvalidFlagValue = errors.New("invalid flag value type")

const redacted = "[REDACTED]"

type token struct {
	value  string
	quoted bool
	secret bool
}

// Builder is an ordered argument list. The zero value is ready to use.
type Builder struct {
	tokens []token
}

// New returns a Builder holding the given tokens.
func New(tokens ...string) *Builder {
	return (&Builder{}).Append(tokens...)
}

// Append adds plain tokens.
func (b *Builder) Append(tokens ...string) *Builder {
	for _, t := range tokens {
		b.tokens = append(b.tokens, token{value: t})
	}
	return b
}

// AppendQuoted adds a token rendered in double quotes.
func (b *Builder) AppendQuoted(value string) *Builder {
	b.tokens = append(b.tokens, token{value: value, quoted: true})
	return b
}

// AppendSecret adds a token masked in RenderSafe.
func (b *Builder) AppendSecret(value string) *Builder {
	b.tokens = append(b.tokens, token{value: value, secret: true})
	return b
}

// AppendQuotedSecret adds a quoted token masked in RenderSafe.
func (b *Builder) AppendQuotedSecret(value string) *Builder {
	b.tokens = append(b.tokens, token{value: value, quoted: true, secret: true})
	return b
}

// AppendSwitch adds name and value as one token joined by sep, or as two
// tokens when sep is a single space.
func (b *Builder) AppendSwitch(name, sep, value string) *Builder {
	if sep == " " {
		return b.Append(name, value)
	}
	return b.Append(name + sep + value)
}

// Prepend inserts plain tokens before the existing ones.
func (b *Builder) Prepend(tokens ...string) *Builder {
	head := make([]token, 0, len(tokens)+len(b.tokens))
	for _, t := range tokens {
		head = append(head, token{value: t})
	}
	b.tokens = append(head, b.tokens...)
	return b
}

// AppendFlags renders a key/value map as --key style tokens, sorted by key.
//
// Conversion rules:
//   - string: "--key=value"
//   - bool true: "--key"
//   - bool false: omitted
//   - []string or []any of strings: "--key=v" per element
func (b *Builder) AppendFlags(flags map[string]any) error {
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		switch v := flags[k].(type) {
		case string:
			out = append(out, fmt.Sprintf("--%s=%s", k, v))
		case bool:
			if v {
				out = append(out, "--"+k)
			}
		case []string:
			for _, s := range v {
				out = append(out, fmt.Sprintf("--%s=%s", k, s))
			}
		case []any:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("%w: %s contains %T", ErrInvalidFlagValue, k, item)
				}
				out = append(out, fmt.Sprintf("--%s=%s", k, s))
			}
		default:
			return fmt.Errorf("%w: %s has type %T", ErrInvalidFlagValue, k, v)
		}
	}
	b.Append(out...)
	return nil
}

// Len returns the number of tokens.
func (b *Builder) Len() int {
	if b == nil {
		return 0
	}
	return len(b.tokens)
}

// Tokens returns the raw argv values in order.
func (b *Builder) Tokens() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.tokens))
	for i, t := range b.tokens {
		out[i] = t.value
	}
	return out
}

// Clone returns an independent copy.
func (b *Builder) Clone() *Builder {
	if b == nil {
		return &Builder{}
	}
	return &Builder{tokens: append([]token(nil), b.tokens...)}
}

// Render joins the tokens with quoting applied.
func (b *Builder) Render() string {
	return b.render(false)
}

// RenderSafe is Render with secret tokens masked. Use it for log output.
func (b *Builder) RenderSafe() string {
	return b.render(true)
}

// String implements fmt.Stringer using RenderSafe.
func (b *Builder) String() string {
	return b.RenderSafe()
}

func (b *Builder) render(safe bool) string {
	if b == nil {
		return ""
	}
	parts := make([]string, len(b.tokens))
	for i, t := range b.tokens {
		v := t.value
		if safe && t.secret {
			v = redacted
		}
		if t.quoted {
			v = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
		}
		parts[i] = v
	}
	return strings.Join(parts, " ")
}
