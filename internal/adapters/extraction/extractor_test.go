package extraction

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.txt")
	content := "\n00012345\n123456789\n1/3/2024\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	text, err := NewFileExtractor().ExtractText(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestExtractText_MissingFile(t *testing.T) {
	_, err := NewFileExtractor().ExtractText(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtractText_Directory(t *testing.T) {
	_, err := NewFileExtractor().ExtractText(context.Background(), t.TempDir())

	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtractText_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := NewFileExtractor().ExtractText(context.Background(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtractText_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileExtractor().ExtractText(ctx, "statement.txt")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitCells(t *testing.T) {
	testCases := []struct {
		name string
		runs []textRun
		want []string
	}{
		{
			name: "empty row",
			runs: nil,
			want: nil,
		},
		{
			name: "glyphs of one word",
			runs: []textRun{
				{X: 10, W: 5, FontSize: 10, S: "AC"},
				{X: 15, W: 5, FontSize: 10, S: "ME"},
			},
			want: []string{"ACME"},
		},
		{
			name: "small gap becomes a space",
			runs: []textRun{
				{X: 10, W: 20, FontSize: 10, S: "SMITH"},
				{X: 33, W: 20, FontSize: 10, S: "JOHN"},
			},
			want: []string{"SMITH JOHN"},
		},
		{
			name: "large gap splits cells",
			runs: []textRun{
				{X: 10, W: 40, FontSize: 10, S: "00012345"},
				{X: 80, W: 45, FontSize: 10, S: "123456789"},
				{X: 150, W: 30, FontSize: 10, S: "1/3/2024"},
			},
			want: []string{"00012345", "123456789", "1/3/2024"},
		},
		{
			name: "out of order runs are sorted by position",
			runs: []textRun{
				{X: 80, W: 45, FontSize: 10, S: "123456789"},
				{X: 10, W: 40, FontSize: 10, S: "00012345"},
			},
			want: []string{"00012345", "123456789"},
		},
		{
			name: "blank runs are dropped",
			runs: []textRun{
				{X: 10, W: 40, FontSize: 10, S: "ACME"},
				{X: 100, W: 5, FontSize: 10, S: " "},
				{X: 200, W: 40, FontSize: 10, S: "450,000.00"},
			},
			want: []string{"ACME", "450,000.00"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitCells(tc.runs))
		})
	}
}
