package sources

import (
	"encoding/csv"
	"fmt"
	"io"

	"fediblock-sync/feature/blocklist/models"
)

// ParseError reports a malformed record in a blocklist source. Processing
// of the source stops at the offending record.
type ParseError struct {
	Source string
	Line   int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse %s line %d field %s: %v", e.Source, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("parse %s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadCSV parses one blocklist from r. The first row is the header; only
// the "domain" column is mandatory. Tri-state boolean columns left empty
// stay unspecified on the entry.
func ReadCSV(r io.Reader, name string) (models.SourceList, error) {
	list := models.SourceList{Name: name}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return list, &ParseError{Source: name, Line: 1, Err: fmt.Errorf("empty source")}
	}
	if err != nil {
		return list, &ParseError{Source: name, Line: 1, Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		columns[col] = i
	}
	if _, ok := columns["domain"]; !ok {
		return list, &ParseError{Source: name, Line: 1, Field: "domain", Err: fmt.Errorf("required column missing")}
	}

	field := func(record []string, col string) string {
		idx, ok := columns[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return list, &ParseError{Source: name, Line: line, Err: err}
		}

		entry := models.BlockEntry{
			Domain:         field(record, "domain"),
			PublicComment:  field(record, "public_comment"),
			PrivateComment: field(record, "private_comment"),
		}
		if entry.Domain == "" {
			return list, &ParseError{Source: name, Line: line, Field: "domain", Err: fmt.Errorf("required field missing")}
		}

		if raw := field(record, "severity"); raw != "" {
			entry.Severity, err = models.ParseSeverity(raw)
			if err != nil {
				return list, &ParseError{Source: name, Line: line, Field: "severity", Err: err}
			}
		}

		for _, col := range []string{"reject_media", "reject_reports", "obfuscate"} {
			raw := field(record, col)
			if raw == "" {
				continue
			}
			v, err := models.ParseBool(raw)
			if err != nil {
				return list, &ParseError{Source: name, Line: line, Field: col, Err: err}
			}
			switch col {
			case "reject_media":
				entry.RejectMedia = models.Bool(v)
			case "reject_reports":
				entry.RejectReports = models.Bool(v)
			case "obfuscate":
				entry.Obfuscate = models.Bool(v)
			}
		}

		list.Entries = append(list.Entries, entry)
	}

	return list, nil
}
