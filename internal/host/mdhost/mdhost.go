// Package mdhost is a host producing CommonMark text.
//
// Nodes are plain strings. Block-level output always ends in a newline, inline
// output never does; containers use that to decide on line breaks.
package mdhost

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/blockrender/internal/host"
)

// Host implements host.Host[string].
type Host struct{}

var _ host.Host[string] = Host{}

// New returns a Markdown host.
func New() Host { return Host{} }

var escaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

// Text escapes Markdown punctuation, including characters that would start a
// block construct at the beginning of a line.
func (Host) Text(s string) string {
	out := escaper.Replace(s)
	if out != "" && strings.ContainsRune("#-+", rune(out[0])) {
		out = `\` + out
	}
	return escapeOrderedMarker(out)
}

// escapeOrderedMarker escapes the delimiter of a leading "1." or "1)" so the
// text does not open an ordered list.
func escapeOrderedMarker(s string) string {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits == len(s) || (s[digits] != '.' && s[digits] != ')') {
		return s
	}
	return s[:digits] + `\` + s[digits:]
}

// Fragment joins children, separating block-level children by blank lines.
func (Host) Fragment(children ...string) string {
	return joinBlocks(children)
}

func (Host) Element(tag string, attrs host.Attrs, children ...string) string {
	switch tag {
	case "p", "figure":
		return inline(children) + "\n"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(tag[1:])
		return strings.Repeat("#", level) + " " + inline(children) + "\n"
	case "blockquote":
		return prefixLines(strings.TrimRight(joinBlocks(children), "\n"), "> ", "> ") + "\n"
	case "strong":
		return "**" + inline(children) + "**"
	case "em":
		return "_" + inline(children) + "_"
	case "code":
		return "`" + inline(children) + "`"
	case "del", "s":
		return "~~" + inline(children) + "~~"
	case "u":
		return "<u>" + inline(children) + "</u>"
	case "span":
		if strings.Contains(attrs["style"], "underline") {
			return "<u>" + inline(children) + "</u>"
		}
		return inline(children)
	case "a":
		return "[" + inline(children) + "](" + attrs["href"] + ")"
	case "img":
		return "![" + attrs["alt"] + "](" + attrs["src"] + ")"
	case "br":
		return "\\\n"
	case "ul", "ol":
		return list(tag == "ol", children)
	case "li":
		return joinTight(children)
	case "div":
		return joinBlocks(children)
	default:
		return strings.Join(children, "")
	}
}

func isBlock(s string) bool {
	return strings.HasSuffix(s, "\n") && !strings.HasSuffix(s, "\\\n")
}

func inline(children []string) string {
	return strings.TrimRight(strings.Join(children, ""), "\n")
}

func joinBlocks(children []string) string {
	var sb strings.Builder
	prevBlock := false
	for _, c := range children {
		if c == "" {
			continue
		}
		if isBlock(c) && sb.Len() > 0 {
			if prevBlock {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(c)
		prevBlock = isBlock(c)
	}
	return sb.String()
}

func joinTight(children []string) string {
	var sb strings.Builder
	for _, c := range children {
		if c == "" {
			continue
		}
		if isBlock(c) && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(c)
	}
	return sb.String()
}

func list(ordered bool, items []string) string {
	var sb strings.Builder
	for i, item := range items {
		marker := "- "
		if ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		sb.WriteString(prefixLines(strings.TrimRight(item, "\n"), marker, strings.Repeat(" ", len(marker))))
		sb.WriteString("\n")
	}
	return sb.String()
}

func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		switch {
		case i == 0:
			lines[i] = first + l
		case l == "" && strings.TrimSpace(rest) == "":
		default:
			lines[i] = rest + l
		}
	}
	return strings.Join(lines, "\n")
}
