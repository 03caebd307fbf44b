package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// separate rewrites args so that every argument of the subcommand that is not
// one of its flags follows a "--". Expressions such as -x^2 and numbers such
// as -2 are then arguments rather than unknown shorthand flags. Flags keep
// their positions, and arguments keep their order.
func separate(root *cobra.Command, args []string) []string {
	cmd, _, err := root.Find(args)
	if err != nil || cmd == root {
		return args
	}
	cmd.InitDefaultHelpFlag()
	i := 0
	for ; i < len(args) && args[i] != cmd.Name(); i++ {
		if _, next := flagArg(root, args[i]); next {
			i++
		}
	}
	if i >= len(args) {
		return args
	}

	out := append([]string(nil), args[:i+1]...)
	var pos []string
	rest := args[i+1:]
	for j := 0; j < len(rest); j++ {
		s := rest[j]
		if s == "--" {
			pos = append(pos, rest[j+1:]...)
			break
		}
		ok, next := flagArg(cmd, s)
		if !ok {
			pos = append(pos, s)
			continue
		}
		out = append(out, s)
		if next && j+1 < len(rest) {
			j++
			out = append(out, rest[j])
		}
	}
	if len(pos) == 0 {
		return out
	}
	out = append(out, "--")
	return append(out, pos...)
}

// flagArg reports whether s is a flag of cmd and whether the flag's value is
// the next argument. A bare shorthand like -x is always a flag. A longer
// argument starting with a shorthand is a flag only if it is not an
// expression, so -n6 is a flag but -x^2 is not.
func flagArg(cmd *cobra.Command, s string) (ok, next bool) {
	if len(s) < 2 || s[0] != '-' {
		return false, false
	}
	if strings.HasPrefix(s, "--") {
		name, _, eq := strings.Cut(s[2:], "=")
		f := lookup(cmd, name, (*pflag.FlagSet).Lookup)
		if f == nil {
			return false, false
		}
		return true, !eq && f.NoOptDefVal == ""
	}
	f := lookup(cmd, s[1:2], (*pflag.FlagSet).ShorthandLookup)
	switch {
	case f == nil:
		return false, false
	case len(s) == 2:
		return true, f.NoOptDefVal == ""
	}
	if _, err := compile(s); err == nil {
		return false, false
	}
	return true, false
}

func lookup(cmd *cobra.Command, name string, by func(*pflag.FlagSet, string) *pflag.Flag) *pflag.Flag {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags(), cmd.InheritedFlags()} {
		if f := by(fs, name); f != nil {
			return f
		}
	}
	return nil
}
