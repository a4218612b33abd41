package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	FileColumn  = "File"
	ErrorColumn = "Error"
)

// UploadedDocument is one PDF handed over by an upload surface.
type UploadedDocument struct {
	Name     string
	Data     []byte
	Password string
}

// FieldValue is one extracted challan column.
type FieldValue struct {
	Name  string
	Value string
}

// ExtractionRecord is the per-document outcome. Either Fields is populated
// (one entry per declared field) or Error is set and Fields is nil.
type ExtractionRecord struct {
	File   string
	Fields []FieldValue
	Error  string
}

func NewFieldRecord(file string, fields []FieldValue) ExtractionRecord {
	return ExtractionRecord{File: file, Fields: fields}
}

func NewErrorRecord(file string, err error) ExtractionRecord {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ExtractionRecord{File: file, Error: msg}
}

// Failed reports whether the document could not be processed.
func (r ExtractionRecord) Failed() bool {
	return r.Error != ""
}

// Value looks up an extracted field by column name.
func (r ExtractionRecord) Value(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Notice is the human readable message shown for a failed document.
func (r ExtractionRecord) Notice() string {
	if !r.Failed() {
		return ""
	}
	return fmt.Sprintf("Error processing %s: %s", r.File, r.Error)
}

// MarshalJSON keeps columns in declaration order.
func (r ExtractionRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeJSONPair(&buf, FileColumn, r.File); err != nil {
		return nil, err
	}
	for _, f := range r.Fields {
		buf.WriteByte(',')
		if err := writeJSONPair(&buf, f.Name, f.Value); err != nil {
			return nil, err
		}
	}
	if r.Failed() {
		buf.WriteByte(',')
		if err := writeJSONPair(&buf, ErrorColumn, r.Error); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONPair(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// ResultTable holds one record per uploaded document, in upload order.
type ResultTable struct {
	RunID   string
	Columns []string
	Records []ExtractionRecord
}

// NewResultTable derives the column list: File, every field, then Error
// only when at least one document failed.
func NewResultTable(fieldNames []string, records []ExtractionRecord) *ResultTable {
	columns := make([]string, 0, len(fieldNames)+2)
	columns = append(columns, FileColumn)
	columns = append(columns, fieldNames...)
	for _, r := range records {
		if r.Failed() {
			columns = append(columns, ErrorColumn)
			break
		}
	}
	return &ResultTable{Columns: columns, Records: records}
}

// Rows renders every record as cells aligned with Columns.
func (t *ResultTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Records))
	for _, r := range t.Records {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			switch col {
			case FileColumn:
				row[i] = r.File
			case ErrorColumn:
				row[i] = r.Error
			default:
				row[i], _ = r.Value(col)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Failures counts error records.
func (t *ResultTable) Failures() int {
	n := 0
	for _, r := range t.Records {
		if r.Failed() {
			n++
		}
	}
	return n
}

// Notices collects the failure messages in upload order.
func (t *ResultTable) Notices() []string {
	notices := []string{}
	for _, r := range t.Records {
		if r.Failed() {
			notices = append(notices, r.Notice())
		}
	}
	return notices
}
