package quizzes

import (
	"encoding/json"
	"testing"

	"Backend-Schoolhub/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("questions.CSV", "")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = DetectFormat("upload", "application/json; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = DetectFormat("questions.xlsx", "application/vnd.ms-excel")
	assert.Equal(t, utils.KindBadRequest, utils.KindOf(err))
}

func TestParseCSV(t *testing.T) {
	data := []byte("\xef\xbb\xbfType,Title,Marks,Order,Options,CorrectOptionIndex,CorrectAnswer\n" +
		"mcq,Largest planet?,2,1,\"Mars, Jupiter, Venus\",1,\n" +
		",,,,,,\n" +
		"fill,Capital of France?,,0,,,Paris\n")

	qs, err := ParseQuestionFile("q.csv", "text/csv", data)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "mcq", qs[0].Type)
	assert.Equal(t, []string{"Mars", "Jupiter", "Venus"}, qs[0].Options)
	idx, ok := qs[0].CorrectOptionIndex.whole()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	marks, ok := qs[0].Marks.get()
	require.True(t, ok)
	assert.Equal(t, 2.0, marks)

	assert.Equal(t, "fill", qs[1].Type)
	assert.Equal(t, "Paris", qs[1].CorrectAnswer)
	_, ok = qs[1].Marks.get()
	assert.False(t, ok)

	built, err := BuildQuestions(qs)
	require.NoError(t, err)
	assert.Equal(t, 1.0, built[1].Marks)
	assert.Equal(t, 0, built[1].Order)
}

func TestParseCSVRejectsBadNumbers(t *testing.T) {
	data := []byte("type,title,marks\nfill,Capital of France?,two\n")
	_, err := ParseQuestionFile("q.csv", "", data)
	require.Error(t, err)
	assert.Equal(t, utils.KindBadRequest, utils.KindOf(err))
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseJSONAcceptsStringNumbers(t *testing.T) {
	data := []byte(`[
		{"type":"mcq","title":"Largest planet?","options":["Mars","Jupiter"],"correctOptionIndex":"1","marks":"2.5"},
		{},
		{"type":"fill","title":"Capital of France?","correctAnswer":"Paris","order":4}
	]`)
	qs, err := ParseQuestionFile("q.json", "", data)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	marks, _ := qs[0].Marks.get()
	assert.Equal(t, 2.5, marks)
	idx, _ := qs[0].CorrectOptionIndex.whole()
	assert.Equal(t, 1, idx)
	order, _ := qs[1].Order.whole()
	assert.Equal(t, 4, order)
}

func TestFlexNumbers(t *testing.T) {
	cases := []struct {
		raw   string
		set   bool
		whole bool
		value int
	}{
		{`1`, true, true, 1},
		{`"2"`, true, true, 2},
		{`"3.0"`, true, true, 3},
		{`1.9`, true, false, 0},
		{`"0.5"`, true, false, 0},
		{`""`, false, false, 0},
		{`"null"`, false, false, 0},
		{`" "`, false, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var v struct {
				N *flexInt `json:"n"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"n":`+tc.raw+`}`), &v))
			assert.Equal(t, tc.set, v.N.given())
			n, ok := v.N.whole()
			assert.Equal(t, tc.whole, ok)
			assert.Equal(t, tc.value, n)
		})
	}

	var absent struct {
		N *flexInt `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"n":null}`), &absent))
	assert.False(t, absent.N.given())
}

func TestFlexNumbersRejectNonFinite(t *testing.T) {
	for _, raw := range []string{`"Inf"`, `"-Inf"`, `"+Inf"`, `"NaN"`, `"infinity"`} {
		t.Run(raw, func(t *testing.T) {
			var f flexFloat
			assert.Error(t, json.Unmarshal([]byte(raw), &f))
			var i flexInt
			assert.Error(t, json.Unmarshal([]byte(raw), &i))
		})
	}

	_, err := ParseQuestionFile("q.json", "", []byte(`[{"type":"fill","title":"abc","correctAnswer":"x","marks":"Inf"}]`))
	assert.Equal(t, utils.KindBadRequest, utils.KindOf(err))

	_, err = ParseQuestionFile("q.csv", "", []byte("type,title,marks,correctAnswer\nfill,Capital of France?,NaN,Paris\n"))
	assert.Equal(t, utils.KindBadRequest, utils.KindOf(err))
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseQuestionFileErrors(t *testing.T) {
	cases := map[string]struct {
		name string
		data string
	}{
		"object instead of array": {"q.json", `{"type":"fill"}`},
		"empty array":             {"q.json", `[]`},
		"header only":             {"q.csv", "type,title\n"},
		"unsupported":             {"q.txt", "hello"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuestionFile(tc.name, "", []byte(tc.data))
			require.Error(t, err)
			assert.Equal(t, utils.KindBadRequest, utils.KindOf(err))
		})
	}
}
