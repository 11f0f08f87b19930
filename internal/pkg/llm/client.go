package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const defaultMaxTokens = 2048

// Mission LLM 返回的单条成长任务
type Mission struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Client OpenAI 客户端封装，用于任务生成阶段
type Client struct {
	*openai.Client
	Model     string
	MaxTokens int
}

func NewClient(apiKey, model string, maxTokens int) *Client {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{Client: openai.NewClient(apiKey), Model: model, MaxTokens: maxTokens}
}

const systemPrompt = `You are a developer growth coach. Given a summary of a developer's ` +
	`recent commit activity, produce 3-5 concrete improvement missions. Respond with a JSON ` +
	`object {"missions":[{"title","description","category"}]}. Categories: testing, ` +
	`refactoring, documentation, architecture, security, performance.`

// GenerateMissions 根据提交活动摘要生成成长任务
func (c *Client) GenerateMissions(ctx context.Context, activitySummary string) ([]Mission, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: activitySummary},
		},
	}
	// 推理类模型（o1/o3/o4/gpt-5*）使用 MaxCompletionTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") ||
		strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = c.MaxTokens
	} else {
		req.MaxTokens = c.MaxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	var payload struct {
		Missions []Mission `json:"missions"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse missions: %w", err)
	}

	return payload.Missions, nil
}
