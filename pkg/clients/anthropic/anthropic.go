package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024

	dateFormat = "2006-01-02"
)

// Client defines the AI text-processing capabilities used by the request
// pipeline. The core never depends on a specific provider; this interface
// is what gets injected into the orchestrator and quoting services.
type Client interface {
	ParseItems(ctx context.Context, request string, date time.Time) ([]models.ItemRequest, error)
	ExplainQuote(ctx context.Context, quote models.Quote, customerContext string, references []models.HistoricalQuote) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
	catalog    []string
}

// NewClient creates a configured Anthropic client. The catalog item names
// are embedded in the parsing prompt so the model maps loose customer
// wording onto real items.
func NewClient(apiKey string, catalogItems []string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client, catalog: catalogItems}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// ParseItems extracts item names and quantities from a free-form customer
// request. Unmatched or garbage item names are passed through as-is; the
// caller surfaces them as not found instead of crashing.
func (c *anthropicClient) ParseItems(ctx context.Context, request string, date time.Time) ([]models.ItemRequest, error) {
	systemPrompt := fmt.Sprintf(`You are an expert at parsing customer orders for paper supplies.
Your task is to extract item names and quantities from customer requests.

Available items (match as closely as possible to these names):
%s

Return ONLY a JSON array of objects with 'item_name' and 'quantity' fields.
Example: [{"item_name": "A4 paper", "quantity": 200}, {"item_name": "Cardstock", "quantity": 100}]`,
		"- "+strings.Join(c.catalog, "\n- "))

	userMessage := fmt.Sprintf("Parse this order request (date of request: %s):\n%s", date.Format(dateFormat), request)

	// Prefill the assistant response to force a JSON array
	text, err := c.complete(ctx, systemPrompt, userMessage, "[")
	if err != nil {
		return nil, err
	}

	var items []models.ItemRequest
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parsed items: %w. Response was: %s", err, text)
	}
	return items, nil
}

// ExplainQuote asks the model for a short customer-facing explanation of a
// priced quote. Similar past quotes, when provided, anchor the tone and the
// discount language to what customers were told before.
func (c *anthropicClient) ExplainQuote(ctx context.Context, quote models.Quote, customerContext string, references []models.HistoricalQuote) (string, error) {
	systemPrompt := `You are a friendly sales representative for a paper supply company.
Generate a professional quote explanation that:
1. Lists each item with quantity and pricing
2. Explains any bulk discounts applied
3. Provides the total amount
Keep it concise, warm and customer-focused. Output plain text only.`

	var details strings.Builder
	for _, line := range quote.LineItems {
		fmt.Fprintf(&details, "- %s: %d units @ $%s each = $%s\n",
			line.ItemName, line.Quantity, line.UnitPrice.StringFixed(2), line.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&details, "Total: $%s", quote.TotalAmount.StringFixed(2))

	if len(references) > 0 {
		details.WriteString("\n\nSimilar past quotes for reference:\n")
		for _, ref := range references {
			fmt.Fprintf(&details, "- Request: %s | Total: $%s | Explanation given: %s\n",
				ref.OriginalRequest, ref.TotalAmount.StringFixed(2), ref.Explanation)
		}
	}

	userMessage := fmt.Sprintf("Customer context: %s\n\nQuote details:\n%s\n\nGenerate a professional quote explanation.",
		customerContext, details.String())

	return c.complete(ctx, systemPrompt, userMessage, "")
}

func (c *anthropicClient) complete(ctx context.Context, system, user, prefill string) (string, error) {
	messages := []Message{{Role: "user", Content: user}}
	if prefill != "" {
		messages = append(messages, Message{Role: "assistant", Content: prefill})
	}

	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	// Reconstruct the full text when we prefilled the opening token
	return cleanResponse(prefill + respBody.Content[0].Text), nil
}

// cleanResponse strips the markdown code fences Claude occasionally wraps
// JSON output in.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
