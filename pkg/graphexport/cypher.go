package graphexport

import (
	"fmt"
	"strconv"
	"strings"
)

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quote renders s as a single-quoted Cypher string literal.
func quote(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}

// literal renders a parameter value as Cypher source.
func literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case *string:
		if v == nil {
			return "null"
		}
		return quote(*v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return quote(fmt.Sprint(v))
}

// render substitutes every $name in query with the literal form of
// params[name].
func render(query string, params map[string]any) string {
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			b.WriteByte(query[i])
			continue
		}
		j := i + 1
		for j < len(query) && isIdentByte(query[j]) {
			j++
		}
		name := query[i+1 : j]
		v, ok := params[name]
		if !ok {
			b.WriteString(query[i:j])
		} else {
			b.WriteString(literal(v))
		}
		i = j - 1
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
