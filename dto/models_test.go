package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = []string{"Challan No", "Amount"}

func TestNewResultTableColumns(t *testing.T) {
	ok := NewFieldRecord("a.pdf", []FieldValue{{"Challan No", "1"}, {"Amount", "100"}})

	table := NewResultTable(testFields, []ExtractionRecord{ok})
	assert.Equal(t, []string{"File", "Challan No", "Amount"}, table.Columns)

	bad := NewErrorRecord("bad.pdf", errors.New("not a PDF file"))
	table = NewResultTable(testFields, []ExtractionRecord{bad, ok})
	assert.Equal(t, []string{"File", "Challan No", "Amount", "Error"}, table.Columns)
}

func TestResultTableRows(t *testing.T) {
	ok := NewFieldRecord("a.pdf", []FieldValue{{"Challan No", "1"}, {"Amount", ""}})
	bad := NewErrorRecord("bad.pdf", errors.New("boom"))

	table := NewResultTable(testFields, []ExtractionRecord{ok, bad})
	assert.Equal(t, [][]string{
		{"a.pdf", "1", "", ""},
		{"bad.pdf", "", "", "boom"},
	}, table.Rows())
	assert.Equal(t, 1, table.Failures())
	assert.Equal(t, []string{"Error processing bad.pdf: boom"}, table.Notices())
}

func TestExtractionRecordMarshalJSONOrder(t *testing.T) {
	ok := NewFieldRecord("a.pdf", []FieldValue{{"Challan No", "1"}, {"Amount", "100"}})
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.Equal(t, `{"File":"a.pdf","Challan No":"1","Amount":"100"}`, string(data))

	bad := NewErrorRecord("bad.pdf", errors.New(`unexpected "token"`))
	data, err = json.Marshal(bad)
	require.NoError(t, err)
	assert.Equal(t, `{"File":"bad.pdf","Error":"unexpected \"token\""}`, string(data))
}

func TestErrorRecordHasNoFields(t *testing.T) {
	bad := NewErrorRecord("bad.pdf", nil)
	assert.True(t, bad.Failed())
	assert.Nil(t, bad.Fields)
	assert.Equal(t, "unknown error", bad.Error)

	_, found := bad.Value("Challan No")
	assert.False(t, found)
}

func TestUploadRequestValidate(t *testing.T) {
	req := &ChallanUploadRequest{}
	assert.ErrorIs(t, req.Validate(), ErrNoDocuments)
}
