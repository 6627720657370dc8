package extraction

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

func TestNewGeminiExtractor(t *testing.T) {
	_, err := NewGeminiExtractor("", "")
	assert.Error(t, err)

	e, err := NewGeminiExtractor("test-key", "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", e.modelName)

	e, err = NewGeminiExtractor("test-key", "gemini-1.5-pro")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", e.modelName)
}

func TestExtract_EmptyInputRejectedBeforeAnyCall(t *testing.T) {
	e, err := NewGeminiExtractor("test-key", "")
	require.NoError(t, err)

	_, err = e.Extract(context.Background(), Request{Text: "   \n\t "})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildPrompt_CorrectionHint(t *testing.T) {
	declared := &model.MonetaryValue{Amount: decimal.RequireFromString("99.00"), Currency: "USD"}

	plain := buildPrompt(Request{Text: "doc"})
	assert.NotContains(t, plain, "previous extraction")

	corrected := buildPrompt(Request{Text: "doc", NeedsCorrection: true, InvoiceValue: declared})
	assert.Contains(t, corrected, "USD 99.00")
	assert.Contains(t, corrected, "Re-read the line items")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"anonymous fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}
