package po

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSyntax is returned for lines that are not valid gettext syntax.
var ErrSyntax = errors.New("po syntax error")

type field int

const (
	fieldNone field = iota
	fieldContext
	fieldID
	fieldPlural
	fieldStr
	fieldStrOther
)

type reader struct {
	file     *File
	cur      *Entry
	comments []string
	field    field
	seenID   bool
	seenStr  bool
	sawEntry bool
}

// Parse reads a template or catalog.
//
// Besides standard gettext it accepts templates whose multi-line msgid block
// is followed by a blank line before msgstr.
func Parse(r io.Reader) (*File, error) {
	p := &reader{file: &File{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := p.line(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan po file: %w", err)
	}

	p.flush()
	if !p.sawEntry && len(p.comments) > 0 && p.file.Comment == "" {
		p.file.Comment = strings.Join(p.comments, "\n")
	}
	return p.file, nil
}

func (p *reader) line(line string) error {
	switch {
	case line == "":
		p.blank()
		return nil

	case strings.HasPrefix(line, "#~"), strings.HasPrefix(line, "#|"), strings.HasPrefix(line, "#."):
		return nil

	case strings.HasPrefix(line, "#:"):
		p.entry().References = append(p.entry().References, strings.Fields(line[2:])...)
		return nil

	case strings.HasPrefix(line, "#,"):
		for _, flag := range strings.Split(line[2:], ",") {
			if flag = strings.TrimSpace(flag); flag != "" {
				p.entry().Flags = append(p.entry().Flags, flag)
			}
		}
		return nil

	case strings.HasPrefix(line, "#"):
		p.comments = append(p.comments, strings.TrimSpace(line[1:]))
		return nil

	case strings.HasPrefix(line, "msgctxt "):
		if p.seenID {
			p.flush()
		}
		return p.start(fieldContext, line[len("msgctxt "):])

	case strings.HasPrefix(line, "msgid_plural "):
		p.field = fieldPlural
		return nil

	case strings.HasPrefix(line, "msgid "):
		if p.seenID {
			p.flush()
		}
		p.seenID = true
		return p.start(fieldID, line[len("msgid "):])

	case strings.HasPrefix(line, "msgstr[0] "):
		p.seenStr = true
		return p.start(fieldStr, line[len("msgstr[0] "):])

	case strings.HasPrefix(line, "msgstr["):
		p.field = fieldStrOther
		return nil

	case strings.HasPrefix(line, "msgstr "):
		if !p.seenID {
			return fmt.Errorf("msgstr without msgid")
		}
		p.seenStr = true
		return p.start(fieldStr, line[len("msgstr "):])

	case strings.HasPrefix(line, `"`):
		s, err := unquote(line)
		if err != nil {
			return err
		}
		p.appendTo(s)
		return nil
	}

	return fmt.Errorf("unexpected %q", line)
}

func (p *reader) entry() *Entry {
	if p.cur == nil {
		p.cur = &Entry{}
	}
	return p.cur
}

func (p *reader) start(f field, quoted string) error {
	s, err := unquote(quoted)
	if err != nil {
		return err
	}
	p.field = f
	p.appendTo(s)
	return nil
}

func (p *reader) appendTo(s string) {
	e := p.entry()
	switch p.field {
	case fieldContext:
		e.Context += s
	case fieldID:
		e.ID += s
	case fieldStr:
		e.Str += s
	}
}

// blank ends the current entry, unless its msgid is still waiting for msgstr.
func (p *reader) blank() {
	p.field = fieldNone
	if p.seenID && !p.seenStr {
		return
	}
	if p.cur == nil && len(p.comments) > 0 && !p.sawEntry && p.file.Comment == "" {
		p.file.Comment = strings.Join(p.comments, "\n")
		p.comments = nil
		return
	}
	p.flush()
}

func (p *reader) flush() {
	defer func() {
		p.cur = nil
		p.field = fieldNone
		p.seenID = false
		p.seenStr = false
	}()

	if !p.seenID {
		return
	}

	e := p.entry()
	e.Comments = append(e.Comments, p.comments...)
	p.comments = nil

	if e.ID == "" && e.Context == "" && !p.sawEntry && p.file.Metadata == nil {
		p.file.Metadata = splitMetadata(e.Str)
		if p.file.Comment == "" && len(e.Comments) > 0 {
			p.file.Comment = strings.Join(e.Comments, "\n")
		}
		return
	}

	p.sawEntry = true
	p.file.Entries = append(p.file.Entries, e)
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("unquoted string %q", s)
	}
	s = s[1 : len(s)-1]

	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), nil
}
