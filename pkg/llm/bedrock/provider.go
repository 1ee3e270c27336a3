package bedrock

import (
	"context"
	"fmt"

	"study-buddy-be/pkg/llm"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// ConverseAPI is the slice of the Bedrock Runtime client this provider uses.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type BedrockProvider struct {
	client  ConverseAPI
	modelID string
}

// Ensure BedrockProvider implements LLMProvider
var _ llm.LLMProvider = &BedrockProvider{}

func NewBedrockProvider(client ConverseAPI, modelID string) *BedrockProvider {
	return &BedrockProvider{
		client:  client,
		modelID: modelID,
	}
}

func (p *BedrockProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Reply, error) {
	// 1. Process Options
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	model := p.modelID
	if options.Model != "" {
		model = options.Model
	}

	// 2. Map generic messages to Converse messages
	messages, err := toConverseMessages(history)
	if err != nil {
		return nil, fmt.Errorf("map history: %w", err)
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(model),
		Messages: messages,
		InferenceConfig: &types.InferenceConfiguration{
			Temperature: aws.Float32(float32(options.Temperature)),
		},
	}
	if options.MaxTokens > 0 {
		input.InferenceConfig.MaxTokens = aws.Int32(int32(options.MaxTokens))
	}
	if options.System != "" {
		input.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: options.System},
		}
	}
	if len(options.Tools) > 0 {
		input.ToolConfig = toToolConfig(options.Tools)
	}

	// 3. Send Request
	out, err := p.client.Converse(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("bedrock converse failed: %w", err)
	}

	// 4. Map the response back to the generic reply
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("unexpected converse output type %T", out.Output)
	}

	return fromConverseMessage(msg.Value)
}

func toConverseMessages(history []llm.Message) ([]types.Message, error) {
	messages := make([]types.Message, 0, len(history))
	for _, m := range history {
		role := types.ConversationRoleUser
		if m.Role == "assistant" || m.Role == "model" {
			role = types.ConversationRoleAssistant
		}

		var content []types.ContentBlock
		for _, tr := range m.ToolResults {
			content = append(content, &types.ContentBlockMemberToolResult{
				Value: types.ToolResultBlock{
					ToolUseId: aws.String(tr.ID),
					Content: []types.ToolResultContentBlock{
						&types.ToolResultContentBlockMemberText{Value: tr.Content},
					},
				},
			})
		}
		if m.Content != "" {
			content = append(content, &types.ContentBlockMemberText{Value: m.Content})
		}
		for _, tc := range m.ToolCalls {
			content = append(content, &types.ContentBlockMemberToolUse{
				Value: types.ToolUseBlock{
					ToolUseId: aws.String(tc.ID),
					Name:      aws.String(tc.Name),
					Input:     document.NewLazyDocument(tc.Input),
				},
			})
		}
		if len(content) == 0 {
			return nil, fmt.Errorf("message with role %q has no content", m.Role)
		}

		messages = append(messages, types.Message{
			Role:    role,
			Content: content,
		})
	}
	return messages, nil
}

func toToolConfig(specs []llm.ToolSpec) *types.ToolConfiguration {
	tools := make([]types.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, &types.ToolMemberToolSpec{
			Value: types.ToolSpecification{
				Name:        aws.String(spec.Name),
				Description: aws.String(spec.Description),
				InputSchema: &types.ToolInputSchemaMemberJson{
					Value: document.NewLazyDocument(spec.InputSchema),
				},
			},
		})
	}
	return &types.ToolConfiguration{Tools: tools}
}

func fromConverseMessage(msg types.Message) (*llm.Reply, error) {
	reply := &llm.Reply{}
	for _, block := range msg.Content {
		switch b := block.(type) {
		case *types.ContentBlockMemberText:
			reply.Text += b.Value
		case *types.ContentBlockMemberToolUse:
			call := llm.ToolCall{
				ID:   aws.ToString(b.Value.ToolUseId),
				Name: aws.ToString(b.Value.Name),
			}
			if b.Value.Input != nil {
				if err := b.Value.Input.UnmarshalSmithyDocument(&call.Input); err != nil {
					return nil, fmt.Errorf("decode tool input: %w", err)
				}
			}
			reply.ToolCalls = append(reply.ToolCalls, call)
		}
	}
	return reply, nil
}
