package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/petem573/dealflow/internal/logger"
)

// Label is the classification of an article title.
type Label string

// The fixed label set. Anything the service returns outside this set
// collapses to LabelGeneralNews.
const (
	LabelFundingRound     Label = "STARTUP_FUNDING_ROUND"
	LabelFundAnnouncement Label = "FUND_ANNOUNCEMENT"
	LabelGeneralNews      Label = "GENERAL_NEWS"
)

// classifierModel is a small instruct model; classification needs speed
// over depth.
const classifierModel = "mistralai/mistral-7b-instruct"

const classifierMaxTokens = 20

// classifyPromptFormat primes the model with the financial keywords
// that distinguish funding rounds from general coverage.
const classifyPromptFormat = `You are an expert financial news analyst. Your SOLE task is to classify an article's purpose based on its title. Pay close attention to financial keywords.
**Keywords for STARTUP_FUNDING_ROUND:** raises, funding, secures, investment, round, closes, backed by, financing.
**Categories:** STARTUP_FUNDING_ROUND, FUND_ANNOUNCEMENT, GENERAL_NEWS
Analyze the title below and respond with ONLY the category name.
**Title:** %q
**Category:**`

// Classifier labels article titles through the completion service.
type Classifier struct {
	client *Client
	logger logger.Interface
}

// NewClassifier creates a classifier on top of the given client.
func NewClassifier(client *Client, log logger.Interface) *Classifier {
	return &Classifier{client: client, logger: log.WithComponent("classifier")}
}

// Classify returns the label for an article title. Service errors and
// unrecognized output both default to LabelGeneralNews so a flaky
// service can only under-collect, never abort the run.
func (c *Classifier) Classify(ctx context.Context, title string) Label {
	prompt := fmt.Sprintf(classifyPromptFormat, title)
	raw, err := c.client.Complete(ctx, classifierModel,
		[]Message{{Role: "user", Content: prompt}},
		WithTemperature(0), WithMaxTokens(classifierMaxTokens))
	if err != nil {
		c.logger.Error("Classification failed", "title", truncate(title, logSnippetLen), "error", err)
		return LabelGeneralNews
	}

	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "`", "")
	for _, label := range []Label{LabelFundingRound, LabelFundAnnouncement, LabelGeneralNews} {
		if strings.Contains(cleaned, string(label)) {
			c.logger.Debug("Classified title", "label", label)
			return label
		}
	}

	c.logger.Warn("Unrecognized classification output", "raw", truncate(cleaned, logSnippetLen))
	return LabelGeneralNews
}
