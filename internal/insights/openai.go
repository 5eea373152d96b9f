package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"seocompetitor/internal/logger"
	"seocompetitor/internal/model"
)

const systemPrompt = "You are an SEO analyst. Given a competitor page's title, meta description " +
	"and matched keywords, describe in one short paragraph what search intent the page targets " +
	"and which keywords it is positioned for."

var errEmptyCompletion = errors.New("empty completion")

// Summarizer writes a short SEO summary for each analysed competitor.
type Summarizer struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

func NewSummarizer(client *openai.Client, model string, log logger.Logger) *Summarizer {
	return &Summarizer{client: client, model: model, log: log}
}

// Summarize asks the model about one successful report.
func (s *Summarizer) Summarize(ctx context.Context, r model.CompetitorReport) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt(r)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to summarize %s: %w", r.URL, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("failed to summarize %s: %w", r.URL, errEmptyCompletion)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Annotate fills Insights on every successful report. Failures are logged
// and leave the report untouched.
func (s *Summarizer) Annotate(ctx context.Context, reports []model.CompetitorReport) {
	for i := range reports {
		if reports[i].Failed() {
			continue
		}
		text, err := s.Summarize(ctx, reports[i])
		if err != nil {
			s.log.Warn("insights skipped", logger.String("url", reports[i].URL), logger.Error(err))
			continue
		}
		reports[i].Insights = text
	}
}

func prompt(r model.CompetitorReport) string {
	var sb strings.Builder
	sb.WriteString("URL: " + r.URL + "\n")
	sb.WriteString("Title: " + r.Title + "\n")
	sb.WriteString("Description: " + r.Description + "\n")
	sb.WriteString("Keywords: " + strings.Join(r.Keywords, ", ") + "\n")
	return sb.String()
}
