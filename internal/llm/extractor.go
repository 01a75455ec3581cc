package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/logger"
)

// extractorModel handles the structured-extraction calls.
const extractorModel = "meta-llama/llama-3-8b-instruct"

// articleContentLimit caps how much article text goes into a prompt.
const articleContentLimit = 4000

// logSnippetLen truncates inputs echoed into diagnostic logs.
const logSnippetLen = 100

// articlePromptFormat extracts deal data from a full single-deal
// article for a VC deal-flow report.
const articlePromptFormat = `You are a data analyst for an early-stage climate tech VC firm. Your task is to extract specific data points from the article text for a deal flow report. Be precise.
**Primary Data Points Required:**
- ` + "`startup_name`" + `: The name of the company that received funding.
- ` + "`funding_stage`" + `: The stage of funding (e.g., "Seed," "Series A," "pre-seed"). If not specified, use ` + "`null`" + `.
- ` + "`amount_raised`" + `: The total amount of money raised (e.g., "$15 million," "€20M").
- ` + "`lead_investor`" + `: The ONE firm or individual explicitly mentioned as "leading" or "co-leading" the round. If no lead is mentioned, use ` + "`null`" + `.
- ` + "`other_investors`" + `: A list of any other participating investors mentioned. If none, use ` + "`null`" + `.
**Example:**
Article Text: "Grid-X, a smart thermostat startup, has closed a $12 million Series A financing round. The investment was led by Climate Capital, with contributions from Powerhouse Ventures and Tina's Angel Fund."
JSON Output: {"startup_name": "Grid-X", "funding_stage": "Series A", "amount_raised": "$12 million", "lead_investor": "Climate Capital", "other_investors": ["Powerhouse Ventures", "Tina's Angel Fund"]}
---
**Actual Article to Process:**
Article Text: --- %s ---
JSON Output:`

// dealPromptFormat extracts deal data from one segmented bulletin item.
const dealPromptFormat = `From the single, complete deal announcement text provided, extract: startup_name, amount_raised, funding_stage, and a list of all investors.

**Instructions:**
- The startup name is the first bolded name.
- The amount is the bolded dollar/euro value.
- If a single investor is mentioned, they are the ` + "`lead_investor`" + `.
- If multiple investors are listed after "from", the first is the ` + "`lead_investor`" + ` and the rest are ` + "`other_investors`" + `.
- If no value is present, use ` + "`null`" + `.

**Example:**
Text: "✈️ AIR, a Haifa, Israel-based eVTOL developer, raised $23m in Series A funding from Entrée Capital."
JSON Output: {
  "startup_name": "AIR",
  "amount_raised": "$23m",
  "funding_stage": "Series A",
  "lead_investor": "Entrée Capital",
  "other_investors": []
}

---
**Actual Text to Process:**
Text: %q
JSON Output:`

// Extractor turns free text into loosely-structured funding data via
// the completion service.
type Extractor struct {
	client *Client
	logger logger.Interface
}

// NewExtractor creates an extractor on top of the given client.
func NewExtractor(client *Client, log logger.Interface) *Extractor {
	return &Extractor{client: client, logger: log.WithComponent("extractor")}
}

// ExtractArticle extracts funding data from a full single-deal article
// body. Returns nil when the service fails or its output is not a JSON
// object; the caller skips that unit of work.
func (e *Extractor) ExtractArticle(ctx context.Context, content string) domain.RawExtraction {
	return e.extract(ctx, fmt.Sprintf(articlePromptFormat, truncate(content, articleContentLimit)))
}

// ExtractDeal extracts funding data from one segmented bulletin deal
// line. Returns nil on failure, as ExtractArticle does.
func (e *Extractor) ExtractDeal(ctx context.Context, dealLine string) domain.RawExtraction {
	return e.extract(ctx, fmt.Sprintf(dealPromptFormat, dealLine))
}

func (e *Extractor) extract(ctx context.Context, prompt string) domain.RawExtraction {
	raw, err := e.client.Complete(ctx, extractorModel,
		[]Message{{Role: "user", Content: prompt}},
		WithJSONResponse())
	if err != nil {
		e.logger.Error("Extraction failed", "input", truncate(prompt, logSnippetLen), "error", err)
		return nil
	}

	var extraction domain.RawExtraction
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		e.logger.Error("Extraction output is not JSON",
			"output", truncate(raw, logSnippetLen), "error", err)
		return nil
	}

	return extraction
}

// truncate clips s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
