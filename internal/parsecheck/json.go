package parsecheck

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"synscan/internal/source"
)

// parseJSON decodes src as exactly one JSON value. Comments, trailing commas,
// single quotes and bare keys are all rejected.
func parseJSON(src string) *Finding {
	if strings.TrimSpace(src) == "" {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(src))
	var v any
	err := dec.Decode(&v)
	if err == nil {
		off := int(dec.InputOffset())
		rest := src[off:]
		if skip := len(rest) - len(strings.TrimLeft(rest, " \t\r\n")); skip < len(rest) {
			return jsonFinding(src, off+skip, "unexpected data after the top-level value")
		}
		return nil
	}

	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		// Offset counts the offending byte too.
		off := int(syntaxErr.Offset) - 1
		if off < 0 {
			off = 0
		}
		return jsonFinding(src, off, syntaxErr.Error())
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		end := len(strings.TrimRight(src, " \t\r\n"))
		return jsonFinding(src, end, "unexpected end of JSON input")
	default:
		return jsonFinding(src, 0, err.Error())
	}
}

// jsonFinding positions a decoder error given as a byte offset into src.
func jsonFinding(src string, off int, detail string) *Finding {
	if off > len(src) {
		off = len(src)
	}
	fs := source.NewFileSet()
	id := fs.Add("<json>", []byte(src), source.FileVirtual)
	pos := fs.Resolve(id, uint32(off)) // #nosec G115 -- off is bounded by len(src)

	line := fs.Get(id).GetLine(int(pos.Line))
	byteCol := int(pos.Col) - 1
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return &Finding{
		Line:   int(pos.Line),
		Column: utf8.RuneCountInString(line[:byteCol]) + 1,
		Detail: detail,
	}
}
