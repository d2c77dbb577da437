package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/iho/finsight/internal/domain"
)

const extractionPrompt = "You are a financial statement parser for bank and credit-card PDF statements.\n\n" +
	"Task:\n" +
	"- Parse ALL transactions in the attached statement.\n" +
	"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
	"- Output a JSON array of objects.\n\n" +
	"Each object must have these fields:\n" +
	"- \"date\": string, ISO format \"YYYY-MM-DD\"\n" +
	"- \"description\": string\n" +
	"- \"amount\": number (positive for money IN, negative for money OUT)\n" +
	"- \"category\": string or null\n" +
	"- \"payment_method\": string or null\n\n" +
	"Rules:\n" +
	"- If the statement has separate \"paid out\" / \"paid in\" columns, convert to a single signed \"amount\".\n" +
	"- If the category cannot be determined, set it to null.\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Output must begin with \"[\" and end with \"]\".\n"

// GenAIExtractor extracts transactions from PDF statements with a Gemini
// model. It implements usecase.StatementExtractor.
type GenAIExtractor struct {
	model  string
	logger zerolog.Logger
}

// NewGenAIExtractor creates a new GenAIExtractor for the given model name.
func NewGenAIExtractor(model string, logger zerolog.Logger) *GenAIExtractor {
	return &GenAIExtractor{model: model, logger: logger}
}

type extractedRow struct {
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"payment_method"`
}

// Extract sends the PDF to the model and decodes the returned transaction
// array.
func (e *GenAIExtractor) Extract(ctx context.Context, document []byte) ([]domain.Transaction, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     document,
					},
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("%w: empty model response", domain.ErrUnparsableStatement)
	}

	e.logger.Debug().Int("chars", len(raw)).Msg("received statement extraction response")

	return decodeExtraction(cleanModelJSON(raw))
}

func decodeExtraction(clean string) ([]domain.Transaction, error) {
	var rows []extractedRow
	if err := json.Unmarshal([]byte(clean), &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableStatement, err)
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := rowToTransaction(statementRow{
			Date:          row.Date,
			Description:   row.Description,
			Amount:        fmt.Sprintf("%v", row.Amount),
			Category:      row.Category,
			PaymentMethod: row.PaymentMethod,
		})
		if err != nil {
			return nil, fmt.Errorf("extracted row %d: %w", i, err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// cleanModelJSON strips markdown fences and surrounding junk when the model
// ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
