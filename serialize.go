package scheme

import "strings"

// Serialize renders v as Scheme source text: the inverse of ReadDatum
// for any value that can legally appear as a result.
func Serialize(v Value) string {
	switch val := v.(type) {
	case nil:
		return "()"
	case Number:
		return val.String()
	case Boolean:
		return val.String()
	case Symbol:
		return val.String()
	case *Cell:
		return serializeCell(val)
	case *Builtin:
		return "#<builtin:" + val.Name + ">"
	case *Lambda:
		return "#<lambda>"
	case *Scope:
		return "#<scope>"
	default:
		return "#<unknown>"
	}
}

func serializeCell(c *Cell) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(Serialize(c.First))
	rest := c.Rest
	for {
		switch r := rest.(type) {
		case nil:
			sb.WriteByte(')')
			return sb.String()
		case *Cell:
			sb.WriteByte(' ')
			sb.WriteString(Serialize(r.First))
			rest = r.Rest
		default:
			sb.WriteString(" . ")
			sb.WriteString(Serialize(rest))
			sb.WriteByte(')')
			return sb.String()
		}
	}
}
