package agent

import (
	"context"
	"fmt"

	"study-buddy-be/internal/constant"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/pkg/llm"
	"study-buddy-be/pkg/session"
)

// maxToolRounds bounds the tool loop so a misbehaving model cannot keep
// the handler spinning.
const maxToolRounds = 5

// Tool is anything the agent may call while producing an answer. Tools
// fail soft: every failure mode is reported as a readable result string.
type Tool interface {
	Spec() llm.ToolSpec
	Execute(ctx context.Context, input map[string]interface{}) string
}

// Config assembles one agent. Sessions may be nil, in which case history
// does not persist across requests.
type Config struct {
	Provider     llm.LLMProvider
	SystemPrompt string
	Tools        []Tool
	Sessions     session.Store
	Window       int
	Temperature  float64
	Logger       logger.ILogger
}

// Agent runs one conversation turn: hydrate history, loop through tool
// calls, parse the structured reply, persist the new turns. Agents are
// built per request and never reused; continuity comes entirely from the
// session store re-hydrating history.
type Agent struct {
	provider     llm.LLMProvider
	systemPrompt string
	tools        []Tool
	sessions     session.Store
	window       int
	temperature  float64
	log          logger.ILogger
}

func New(cfg Config) *Agent {
	window := cfg.Window
	if window <= 0 {
		window = constant.ConversationWindow
	}
	return &Agent{
		provider:     cfg.Provider,
		systemPrompt: cfg.SystemPrompt,
		tools:        cfg.Tools,
		sessions:     cfg.Sessions,
		window:       window,
		temperature:  cfg.Temperature,
		log:          cfg.Logger,
	}
}

func (a *Agent) Invoke(ctx context.Context, sessionID, message string) (*StructuredResponse, error) {
	history, err := a.loadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	msgs := append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: message,
	})

	specs := make([]llm.ToolSpec, 0, len(a.tools))
	for _, tool := range a.tools {
		specs = append(specs, tool.Spec())
	}

	var finalText string
	for round := 0; ; round++ {
		reply, err := a.provider.Chat(ctx, msgs,
			llm.WithSystem(a.systemPrompt),
			llm.WithTemperature(a.temperature),
			llm.WithTools(specs),
		)
		if err != nil {
			return nil, fmt.Errorf("model invocation: %w", err)
		}

		if len(reply.ToolCalls) == 0 || round >= maxToolRounds {
			finalText = reply.Text
			break
		}

		msgs = append(msgs, llm.Message{
			Role:      constant.ChatMessageRoleAssistant,
			Content:   reply.Text,
			ToolCalls: reply.ToolCalls,
		})

		results := make([]llm.ToolResult, 0, len(reply.ToolCalls))
		for _, call := range reply.ToolCalls {
			results = append(results, llm.ToolResult{
				ID:      call.ID,
				Content: a.executeTool(ctx, call),
			})
		}
		msgs = append(msgs, llm.Message{
			Role:        constant.ChatMessageRoleUser,
			ToolResults: results,
		})
	}

	if a.sessions != nil {
		err := a.sessions.Append(ctx, sessionID,
			session.NewMessage(constant.ChatMessageRoleUser, message),
			session.NewMessage(constant.ChatMessageRoleAssistant, finalText),
		)
		if err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
	}

	return ParseStructuredResponse(finalText), nil
}

func (a *Agent) loadHistory(ctx context.Context, sessionID string) ([]llm.Message, error) {
	if a.sessions == nil {
		return nil, nil
	}

	transcript, err := a.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	transcript = session.Window(transcript, a.window)

	history := make([]llm.Message, 0, len(transcript))
	for _, m := range transcript {
		history = append(history, llm.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return history, nil
}

func (a *Agent) executeTool(ctx context.Context, call llm.ToolCall) string {
	for _, tool := range a.tools {
		if tool.Spec().Name == call.Name {
			result := tool.Execute(ctx, call.Input)
			a.log.Debug("agent", "tool executed", map[string]interface{}{
				"tool":         call.Name,
				"result_bytes": len(result),
			})
			return result
		}
	}
	a.log.Warn("agent", "model requested unknown tool", map[string]interface{}{
		"tool": call.Name,
	})
	return fmt.Sprintf("Error: unknown tool %q.", call.Name)
}
