package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// GeminiExtractor extracts checklist records from document text using
// Google Gemini.
type GeminiExtractor struct {
	apiKey    string
	modelName string
}

// NewGeminiExtractor creates a Gemini-backed extractor.
func NewGeminiExtractor(apiKey, modelName string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiExtractor{apiKey: apiKey, modelName: modelName}, nil
}

// Extract sends the document text to Gemini and decodes the structured
// checklist record from its JSON response.
func (g *GeminiExtractor) Extract(ctx context.Context, req Request) (*model.ChecklistRecord, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyInput
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	genModel := client.GenerativeModel(g.modelName)
	genModel.SetTemperature(0)
	genModel.ResponseMIMEType = "application/json"

	resp, err := genModel.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from gemini")
	}
	text, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from gemini")
	}

	var record model.ChecklistRecord
	if err := json.Unmarshal([]byte(stripCodeFence(string(text))), &record); err != nil {
		return nil, fmt.Errorf("failed to decode extracted record: %w", err)
	}
	return &record, nil
}

const promptPreamble = `You are a customs documentation assistant. Extract the Bill of Entry checklist below into JSON with this shape:
{
  "awbNumber": string, "importerName": string, "adCode": string,
  "iecNumber": string, "gstin": string, "incoterm": string,
  "grossWeightKg": number,
  "freight": {"amount": string, "currency": string},
  "miscCharges": {"amount": string, "currency": string},
  "invoiceValue": {"amount": string, "currency": string},
  "invoiceNumbersAndDates": string, "supplierDetails": string,
  "dutyAmount": {"words": string, "numerical": {"amount": string, "currency": string}},
  "items": [{"itemNumber": number, "description": string, "hsCode": string,
             "quantity": number, "unit": string,
             "unitPrice": {"amount": string, "currency": string},
             "totalPrice": {"amount": string, "currency": string},
             "dutyRatePercent": number, "notificationRef": string,
             "exchangeRate": number}]
}
Amounts are decimal strings. Omit optional fields that are absent. Respond with JSON only.`

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	if req.NeedsCorrection && req.InvoiceValue != nil {
		fmt.Fprintf(&b, "\n\nA previous extraction produced an invoice value of %s, but the sum of quantity x unit price over the items disagreed with it. Re-read the line items carefully and correct any misread quantity or unit price.", req.InvoiceValue.Display())
	}
	b.WriteString("\n\nDocument text:\n")
	b.WriteString(req.Text)
	return b.String()
}

// stripCodeFence removes a surrounding markdown code fence, which some
// model versions emit despite the JSON response type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
