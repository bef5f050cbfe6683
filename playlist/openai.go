package playlist

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAISuggester struct {
	client *openai.Client
}

func NewOpenAISuggester(apiKey string) *OpenAISuggester {
	return &OpenAISuggester{
		client: openai.NewClient(apiKey),
	}
}

func (o *OpenAISuggester) Suggest(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT3Dot5Turbo,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   50,
			Temperature: 0.7,
		})
	if err != nil {
		return "", fmt.Errorf("failed to fetch title suggestion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("failed to fetch title suggestion: response contains no choices")
	}

	return resp.Choices[len(resp.Choices)-1].Message.Content, nil
}
