package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role        string // "user" or "assistant"
	Content     string
	ToolCalls   []ToolCall   // tool invocations requested by the assistant
	ToolResults []ToolResult // tool outputs carried on a user turn
}

// ToolCall is a single tool invocation requested by the model
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// ToolResult is the outcome of a tool invocation, fed back to the model
type ToolResult struct {
	ID      string
	Content string
}

// ToolSpec describes a tool the model is allowed to call
type ToolSpec struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
}

// Reply is one model turn: text, tool requests, or both
type Reply struct {
	Text      string
	ToolCalls []ToolCall
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	System      string
	Tools       []ToolSpec
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystem(prompt string) Option {
	return func(o *Options) {
		o.System = prompt
	}
}

func WithTools(tools []ToolSpec) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the next turn.
	// The reply may carry tool calls the caller is expected to execute.
	Chat(ctx context.Context, history []Message, options ...Option) (*Reply, error)
}
