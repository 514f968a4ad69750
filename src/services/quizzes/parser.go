package quizzes

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"Backend-Schoolhub/src/utils"
)

// QuestionInput is a question as authored, before normalisation.
type QuestionInput struct {
	Type               string     `json:"type"`
	Title              string     `json:"title"`
	Options            []string   `json:"options"`
	CorrectOptionIndex *flexInt   `json:"correctOptionIndex"`
	CorrectAnswer      string     `json:"correctAnswer"`
	Marks              *flexFloat `json:"marks"`
	Order              *flexInt   `json:"order"`
}

func (in QuestionInput) blank() bool {
	return strings.TrimSpace(in.Type) == "" && strings.TrimSpace(in.Title) == ""
}

// flexFloat accepts 2, 2.5 or "2". "" and "null" leave it unset.
type flexFloat struct {
	value float64
	set   bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	v, ok, err := parseFlexNumber(b)
	if err != nil {
		return err
	}
	*f = flexFloat{value: v, set: ok}
	return nil
}

func (f *flexFloat) get() (float64, bool) {
	if f == nil || !f.set {
		return 0, false
	}
	return f.value, true
}

// flexInt accepts 1 or "1". "" and "null" leave it unset. A fractional value is kept
// as sent so callers can refuse it rather than truncate it.
type flexInt struct {
	value float64
	set   bool
}

func (i *flexInt) UnmarshalJSON(b []byte) error {
	v, ok, err := parseFlexNumber(b)
	if err != nil {
		return err
	}
	*i = flexInt{value: v, set: ok}
	return nil
}

func (i *flexInt) given() bool { return i != nil && i.set }

// whole returns the value when it is set and an integer.
func (i *flexInt) whole() (int, bool) {
	if !i.given() || i.value != math.Trunc(i.value) || math.Abs(i.value) > math.MaxInt32 {
		return 0, false
	}
	return int(i.value), true
}

func parseFlexNumber(b []byte) (float64, bool, error) {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if s == "" || s == "null" {
		return 0, false, nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// parseFinite rejects NaN and the infinities that strconv.ParseFloat accepts.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func intPtr(v int) *flexInt {
	return &flexInt{value: float64(v), set: true}
}

func floatPtr(v float64) *flexFloat {
	return &flexFloat{value: v, set: true}
}

// Supported upload formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// DetectFormat picks the parser from the file extension, falling back to the content type.
func DetectFormat(filename, contentType string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "csv"):
		return FormatCSV, nil
	case strings.Contains(ct, "json"):
		return FormatJSON, nil
	}
	return "", utils.BadRequest("Unsupported file format. Upload a CSV or JSON file")
}

// ParseQuestionFile turns an uploaded CSV or JSON file into question inputs.
func ParseQuestionFile(filename, contentType string, data []byte) ([]QuestionInput, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return nil, err
	}

	var questions []QuestionInput
	switch format {
	case FormatCSV:
		questions, err = parseCSV(data)
	default:
		questions, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, utils.BadRequest("No valid questions found in file")
	}
	return questions, nil
}

func parseJSON(data []byte) ([]QuestionInput, error) {
	var raw []QuestionInput
	if err := json.Unmarshal(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), &raw); err != nil {
		return nil, utils.BadRequest("Invalid JSON file: %v", err)
	}
	out := make([]QuestionInput, 0, len(raw))
	for _, q := range raw {
		if q.blank() {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// CSV columns: type, title, marks, order, options (comma-joined), correctOptionIndex, correctAnswer.
func parseCSV(data []byte) ([]QuestionInput, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, utils.BadRequest("Invalid CSV file: %v", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(rec []string, name string) string {
		i, ok := cols[strings.ToLower(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []QuestionInput
	for row := 2; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, utils.BadRequest("Invalid CSV file at row %d: %v", row, err)
		}

		q := QuestionInput{
			Type:          field(rec, "type"),
			Title:         field(rec, "title"),
			CorrectAnswer: field(rec, "correctAnswer"),
		}
		if q.blank() {
			continue
		}
		if opts := field(rec, "options"); opts != "" {
			for _, o := range strings.Split(opts, ",") {
				q.Options = append(q.Options, strings.TrimSpace(o))
			}
		}
		if v := field(rec, "marks"); v != "" {
			m, err := parseFinite(v)
			if err != nil {
				return nil, utils.BadRequest("Invalid marks %q at row %d", v, row)
			}
			q.Marks = floatPtr(m)
		}
		if v := field(rec, "order"); v != "" {
			o, err := strconv.Atoi(v)
			if err != nil {
				return nil, utils.BadRequest("Invalid order %q at row %d", v, row)
			}
			q.Order = intPtr(o)
		}
		if v := field(rec, "correctOptionIndex"); v != "" {
			idx, err := strconv.Atoi(v)
			if err != nil {
				return nil, utils.BadRequest("Invalid correctOptionIndex %q at row %d", v, row)
			}
			q.CorrectOptionIndex = intPtr(idx)
		}
		out = append(out, q)
	}
	return out, nil
}
