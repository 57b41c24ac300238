package proposal

import (
	"context"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey string) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// Propose asks the generation service for a compromise covering the
// given party positions. The response is unstructured text used
// verbatim by the caller.
func (c *Client) Propose(ctx context.Context, positions map[string]string, medianLeverage float64) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a syndicated-loan negotiation advisor. Propose a single concrete compromise on the disputed covenant, in two or three sentences, without preamble.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(positions, medianLeverage),
			},
		},
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt embeds each party's stated position plus the market median
// reference. Parties are sorted so the prompt is deterministic.
func buildPrompt(positions map[string]string, medianLeverage float64) string {
	names := make([]string, 0, len(positions))
	for name := range positions {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("The parties hold the following positions:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "- %s: %s\n", name, positions[name])
	}
	fmt.Fprintf(&sb, "The median leverage across comparable transactions is %.2fx.\n", medianLeverage)
	sb.WriteString("Propose a compromise all parties could accept.")
	return sb.String()
}
