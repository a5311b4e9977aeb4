package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
)

type OpenAIClient struct {
	cfg    OpenAIConfig
	client openai.Client
}

func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config,
		openai.NewClient(option.WithAPIKey(config.apiKey)),
	}
}

// Answer replies to a customer support message. The knowledge entries become
// the system prompt so the assistant stays on marketplace topics.
func (c *OpenAIClient) Answer(ctx context.Context, message, topic string, knowledge []string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Role: "system",
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: param.Opt[string]{Value: systemPrompt(topic, knowledge)},
			},
		},
	})
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Role: "user",
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: param.Opt[string]{Value: message},
			},
		},
	})

	chatCompletion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               c.cfg.model,
		Messages:            messages,
		MaxCompletionTokens: param.Opt[int64]{Value: c.cfg.maxTokens},
		N:                   param.Opt[int64]{Value: 1},
		Temperature:         param.Opt[float64]{Value: 0.4},
	})
	if err != nil {
		return "", fmt.Errorf("err calling completion api, %v", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return chatCompletion.Choices[0].Message.Content, nil
}

func systemPrompt(topic string, knowledge []string) string {
	var b strings.Builder
	b.WriteString("You are the support assistant of a website template marketplace. ")
	b.WriteString("Answer briefly and only from the knowledge base below. ")
	b.WriteString("If the answer is not covered, say a human will follow up.\n")
	if topic != "" {
		b.WriteString("Topic: " + topic + "\n")
	}
	for _, entry := range knowledge {
		b.WriteString("- " + entry + "\n")
	}
	return b.String()
}
