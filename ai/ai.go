package ai

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// AgentAddress is the demo trading agent's on-chain address referenced
// in the persona prompt.
const AgentAddress = "0x325d33Eae79AA885b369604184cAe1B3De824859"

// LLMConfig holds configuration for LLM interactions.
type LLMConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultLLMConfig returns the chat endpoint's standard configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       openai.GPT4,
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

// Responder produces an agent reply to a user message. The OpenAI
// implementation is the production one; tests inject mocks.
type Responder interface {
	Respond(ctx context.Context, systemPrompt, message string) (string, error)
}

// OpenAIResponder talks to OpenAI's chat completion API.
type OpenAIResponder struct {
	client *openai.Client
	config LLMConfig
}

// NewOpenAIResponder builds a responder from the environment's API key.
// A nil client is tolerated until Respond is called, so the server can
// boot without a key (the chat surface then fails per-request).
func NewOpenAIResponder() *OpenAIResponder {
	apiKey := os.Getenv("OPENAI_API_KEY")
	r := &OpenAIResponder{config: DefaultLLMConfig()}
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, chat requests will fail")
		return r
	}
	r.client = openai.NewClient(apiKey)
	return r
}

// NewOpenAIResponderWithKey builds a responder with an explicit key and
// config.
func NewOpenAIResponderWithKey(apiKey string, config LLMConfig) *OpenAIResponder {
	return &OpenAIResponder{
		client: openai.NewClient(apiKey),
		config: config,
	}
}

// Respond sends one completion request. Exactly one attempt, no retry.
func (r *OpenAIResponder) Respond(ctx context.Context, systemPrompt, message string) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   r.config.MaxTokens,
		Temperature: r.config.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "No response generated", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// AgentContext describes the agent a chat message is addressed to.
type AgentContext struct {
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
	Behavior     string   `json:"behavior"`
	SystemPrompt string   `json:"systemPrompt"`
}

// PersonaPrompt is the fixed trading-agent persona used when the caller
// supplies no system prompt of its own.
func PersonaPrompt(explorerURL string) string {
	return fmt.Sprintf(`You are an autonomous AI trading agent operating on the Base Sepolia network at address %s. Your capabilities include:

1. Executing smart contract transactions
2. Analyzing market data
3. Performing token swaps
4. Managing liquidity positions
5. Interacting with DeFi protocols

You can reference blockchain transactions and integrate with Base Sepolia. When discussing transactions:
- Reference the block explorer URL: %s
- Include transaction hashes when mentioning operations
- Explain gas costs and network fees
- Describe transaction status and confirmations

Format your responses to include transaction details when relevant, and always maintain a professional yet approachable trading agent persona.`, AgentAddress, explorerURL)
}

// BuildSystemPrompt composes the persona prompt with the selected
// agent's name, capabilities and behavior.
func BuildSystemPrompt(agent AgentContext, explorerURL string) string {
	base := agent.SystemPrompt
	if base == "" {
		base = PersonaPrompt(explorerURL)
	}
	return base + fmt.Sprintf(`

Additional Context:
- Agent Name: %s
- Capabilities: %s
- Behavior: %s
- Network: Base Sepolia
- Status: Active and ready to execute transactions`,
		agent.Name, strings.Join(agent.Capabilities, ", "), agent.Behavior)
}
