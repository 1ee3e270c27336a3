package agent

import (
	"context"

	"study-buddy-be/internal/constant"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/pkg/knowledge"
	"study-buddy-be/pkg/llm"
	"study-buddy-be/pkg/session"
)

// Invoker is one ready-to-run agent instance.
type Invoker interface {
	Invoke(ctx context.Context, sessionID, message string) (*StructuredResponse, error)
}

// Factory builds one Socratic tutor agent per request, bound to the
// invocation's source accumulator. Sessions may be nil (no persistence).
type Factory struct {
	provider  llm.LLMProvider
	retriever *knowledge.Retriever
	sessions  session.Store
	log       logger.ILogger
}

func NewFactory(provider llm.LLMProvider, retriever *knowledge.Retriever, sessions session.Store, log logger.ILogger) *Factory {
	return &Factory{
		provider:  provider,
		retriever: retriever,
		sessions:  sessions,
		log:       log,
	}
}

func (f *Factory) NewAgent(acc *knowledge.SourceAccumulator) Invoker {
	return New(Config{
		Provider:     f.provider,
		SystemPrompt: constant.SocraticSystemPrompt + constant.StructuredOutputInstruction,
		Tools:        []Tool{f.retriever.Tool(acc)},
		Sessions:     f.sessions,
		Window:       constant.ConversationWindow,
		Temperature:  constant.AgentTemperature,
		Logger:       f.log,
	})
}
