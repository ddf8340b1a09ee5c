package extract

import (
	"strings"

	"github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"
)

// StripComments removes block and line comments before any pattern is
// applied, per spec §4.2 ("applies a fixed set of patterns against file
// contents after stripping block and line comments"). Block comment bodies
// are replaced with spaces (newlines kept) and line comments are cut from
// the end of their line, so every remaining token keeps its original line
// and column; byte offsets after a stripped line comment do shift.
func StripComments(flavor hdl.Flavor, src string) string {
	switch flavor {
	case hdl.FlavorVHDL:
		return stripLineComments(src, "--")
	default:
		return stripLineComments(stripBlockComments(src), "//")
	}
}

func stripBlockComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	inBlock := false
	for i := 0; i < len(src); i++ {
		if inBlock {
			if i+1 < len(src) && src[i] == '*' && src[i+1] == '/' {
				b.WriteByte(' ')
				b.WriteByte(' ')
				i++
				inBlock = false
				continue
			}
			if src[i] == '\n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
			continue
		}
		if i+1 < len(src) && src[i] == '/' && src[i+1] == '*' {
			b.WriteByte(' ')
			b.WriteByte(' ')
			i++
			inBlock = true
			continue
		}
		b.WriteByte(src[i])
	}
	return b.String()
}

func stripLineComments(src, marker string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, marker); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}
