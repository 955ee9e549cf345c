package rich

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`^([ \t]*)(#+)[ \t]*`)
	bulletRe  = regexp.MustCompile(`^([ \t]*)- `)
	fenceRe   = regexp.MustCompile("(?s)```(.*?)```")
	linkRe    = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
)

// RewriteDialect translates the Markdown constructs the authoring model
// produces (headings, bullets, fenced code, links) into textile. It is not
// idempotent and must run once per fragment.
func RewriteDialect(s string) string {
	lines := strings.Split(s, "\n")

	var fenced bool
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "```") {
			if strings.Count(line, "```")%2 == 1 {
				fenced = !fenced
			}
			continue
		}
		if !fenced {
			lines[i] = rewriteLine(line)
		}
	}

	s = strings.Join(lines, "\n")
	s = fenceRe.ReplaceAllString(s, "<pre>$1</pre>")
	return linkRe.ReplaceAllString(s, `"$1":$2`)
}

func rewriteLine(line string) string {
	if m := headingRe.FindStringSubmatchIndex(line); m != nil {
		level := m[5] - m[4]
		return line[m[2]:m[3]] + "h" + strconv.Itoa(level) + ". " + line[m[1]:]
	}

	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return strings.Repeat("*", 1+depth(m[1])) + " " + line[len(m[0]):]
	}
	return line
}

// depth counts nesting levels in an indent: a tab or two spaces each.
func depth(indent string) int {
	tabs := strings.Count(indent, "\t")
	return tabs + (len(indent)-tabs)/2
}
