package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/tds-challan-extractor/dto"
	"github.com/Aashish23092/tds-challan-extractor/internal/testpdf"
)

// fakeProcessor returns the document bytes as text after an optional delay.
type fakeProcessor struct {
	delay func(name string) time.Duration
}

func (f *fakeProcessor) ExtractText(ctx context.Context, doc dto.UploadedDocument) (string, error) {
	if f.delay != nil {
		select {
		case <-time.After(f.delay(doc.Name)):
		case <-ctx.Done():
			return "", &DocumentProcessingError{Name: doc.Name, Err: ctx.Err()}
		}
	}
	return string(doc.Data), nil
}

func TestExtractBatchNoDocuments(t *testing.T) {
	svc := NewChallanService(&fakeProcessor{}, ChallanServiceConfig{}, nil)

	table, err := svc.ExtractBatch(context.Background(), nil)
	assert.ErrorIs(t, err, dto.ErrNoDocuments)
	assert.Nil(t, table)
}

func TestExtractBatchGoodAndBadFile(t *testing.T) {
	svc := NewChallanService(NewPDFProcessor(false), ChallanServiceConfig{}, nil)

	good := testpdf.BuildText(
		"Challan No : 123456",
		"Date of Deposit : 05-Apr-2024",
		"BSR Code : 1234567",
		"TAN : ABCD12345E",
		"Assessment Year : 2023-24",
	)
	docs := []dto.UploadedDocument{
		{Name: "good.pdf", Data: good},
		{Name: "bad.pdf", Data: []byte("PK\x03\x04 this is a zip archive pretending to be a challan pdf file......")},
	}

	table, err := svc.ExtractBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.NotEmpty(t, table.RunID)

	ok := table.Records[0]
	assert.Equal(t, "good.pdf", ok.File)
	assert.False(t, ok.Failed())
	assert.Len(t, ok.Fields, 14)
	for name, want := range map[string]string{
		"Challan No":      "123456",
		"Date of Deposit": "05-Apr-2024",
		"BSR Code":        "1234567",
		"TAN":             "ABCD12345E",
		"Assessment Year": "2023-24",
		"Amount":          "",
	} {
		got, found := ok.Value(name)
		assert.True(t, found, name)
		assert.Equal(t, want, got, name)
	}

	bad := table.Records[1]
	assert.Equal(t, "bad.pdf", bad.File)
	assert.True(t, bad.Failed())
	assert.Nil(t, bad.Fields)
	assert.NotEmpty(t, bad.Error)
	assert.NotContains(t, bad.Error, "bad.pdf")
	assert.Equal(t, 1, strings.Count(bad.Notice(), "bad.pdf"))
	assert.True(t, strings.HasPrefix(bad.Notice(), "Error processing bad.pdf: "))

	assert.Equal(t, "Error", table.Columns[len(table.Columns)-1])
	assert.Equal(t, 1, table.Failures())
}

func TestExtractBatchDocumentWithoutFields(t *testing.T) {
	svc := NewChallanService(&fakeProcessor{}, ChallanServiceConfig{}, nil)

	table, err := svc.ExtractBatch(context.Background(), []dto.UploadedDocument{
		{Name: "blank.pdf", Data: []byte("Government of India")},
	})
	require.NoError(t, err)

	rec := table.Records[0]
	assert.False(t, rec.Failed())
	require.Len(t, rec.Fields, 14)
	for _, f := range rec.Fields {
		assert.Empty(t, f.Value, f.Name)
	}
	assert.NotContains(t, table.Columns, "Error")
}

func TestExtractBatchKeepsUploadOrderWithWorkers(t *testing.T) {
	// Earlier documents finish last.
	proc := &fakeProcessor{delay: func(name string) time.Duration {
		var i int
		fmt.Sscanf(name, "doc-%d.pdf", &i)
		return time.Duration(10-i) * 5 * time.Millisecond
	}}
	svc := NewChallanService(proc, ChallanServiceConfig{Workers: 4}, nil)

	var docs []dto.UploadedDocument
	for i := 0; i < 10; i++ {
		docs = append(docs, dto.UploadedDocument{
			Name: fmt.Sprintf("doc-%d.pdf", i),
			Data: []byte(fmt.Sprintf("Challan No : %d", 1000+i)),
		})
	}

	table, err := svc.ExtractBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, table.Records, 10)
	for i, rec := range table.Records {
		assert.Equal(t, fmt.Sprintf("doc-%d.pdf", i), rec.File)
		v, _ := rec.Value("Challan No")
		assert.Equal(t, fmt.Sprintf("%d", 1000+i), v)
	}
}

func TestProcessDocumentTimeout(t *testing.T) {
	proc := &fakeProcessor{delay: func(string) time.Duration { return time.Second }}
	svc := NewChallanService(proc, ChallanServiceConfig{DocumentTimeout: 20 * time.Millisecond}, nil)

	table, err := svc.ExtractBatch(context.Background(), []dto.UploadedDocument{
		{Name: "slow.pdf", Data: []byte("Challan No : 1")},
		{Name: "also-slow.pdf", Data: []byte("Challan No : 2")},
	})
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	for _, rec := range table.Records {
		assert.True(t, rec.Failed())
		assert.Contains(t, rec.Error, "deadline exceeded")
	}
}
