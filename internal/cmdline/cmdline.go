// Package cmdline turns named and positional parameters into the argument
// list of a knowledge_repo invocation.
//
// Named flags are dropped when absent or switched off, emitted bare when
// switched on, and emitted as "--name value" otherwise. Positional values
// always follow the named flags. When rendered as a string every value is
// single-quoted so the line survives a trip through sh -c.
package cmdline

import (
	"strconv"
	"strings"
)

type kind int

const (
	absent kind = iota
	boolean
	text
)

// Value is the state of a single flag: absent, a switch, or a text value.
type Value struct {
	kind kind
	on   bool
	text string
}

// Absent returns a value that is never emitted.
func Absent() Value {
	return Value{}
}

// Switch returns a boolean flag value. A false switch is never emitted.
func Switch(on bool) Value {
	return Value{kind: boolean, on: on}
}

// String returns a text value. The empty string is emitted as ''.
func String(s string) Value {
	return Value{kind: text, text: s}
}

// Int returns a text value holding the decimal form of n.
func Int(n int) Value {
	return String(strconv.Itoa(n))
}

// IsSet reports whether the value would produce a flag.
func (v Value) IsSet() bool {
	switch v.kind {
	case boolean:
		return v.on
	case text:
		return true
	}
	return false
}

// Text returns the text value and whether v holds one.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == text
}

// On reports whether v is a switch that is turned on.
func (v Value) On() bool {
	return v.kind == boolean && v.on
}

type named struct {
	name  string
	value Value
}

// Args is an ordered set of named flags followed by positional values.
type Args struct {
	flags      []named
	positional []string
}

// Set appends a named flag. Flags are emitted in the order they were set.
func (a *Args) Set(name string, v Value) *Args {
	a.flags = append(a.flags, named{name: name, value: v})
	return a
}

// Add appends positional values.
func (a *Args) Add(values ...string) *Args {
	a.positional = append(a.positional, values...)
	return a
}

// Tokens returns the unquoted argument vector.
func (a Args) Tokens() []string {
	return a.render(func(s string) string { return s })
}

// String returns the arguments as a single shell-quoted line.
func (a Args) String() string {
	return strings.Join(a.render(Quote), " ")
}

func (a Args) render(quote func(string) string) []string {
	var out []string
	for _, f := range a.flags {
		if !f.value.IsSet() {
			continue
		}
		out = append(out, FlagName(f.name))
		if f.value.kind == text {
			out = append(out, quote(f.value.text))
		}
	}
	for _, p := range a.positional {
		out = append(out, quote(p))
	}
	return out
}

// FlagName converts a parameter name to its long flag form: tooling_embed
// becomes --tooling-embed.
func FlagName(name string) string {
	return "--" + strings.ReplaceAll(name, "_", "-")
}

// Quote wraps s in single quotes, escaping embedded single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Invocation is one call of the external tool.
type Invocation struct {
	Tool       string
	Globals    Args
	Subcommand string
	Args       Args
}

// Argv returns the argument vector, tool name first.
func (inv Invocation) Argv() []string {
	argv := []string{inv.Tool}
	argv = append(argv, inv.Globals.Tokens()...)
	if inv.Subcommand != "" {
		argv = append(argv, inv.Subcommand)
	}
	return append(argv, inv.Args.Tokens()...)
}

// String returns the command line with every value shell-quoted.
func (inv Invocation) String() string {
	parts := []string{inv.Tool}
	if g := inv.Globals.String(); g != "" {
		parts = append(parts, g)
	}
	if inv.Subcommand != "" {
		parts = append(parts, inv.Subcommand)
	}
	if a := inv.Args.String(); a != "" {
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
