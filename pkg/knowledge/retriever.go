package knowledge

import (
	"context"
	"fmt"
	"strings"

	"study-buddy-be/internal/constant"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/pkg/llm"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
)

const maxResults = 5

// RetrieveAPI is the slice of the Bedrock Agent Runtime client the
// retriever uses.
type RetrieveAPI interface {
	Retrieve(ctx context.Context, params *bedrockagentruntime.RetrieveInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveOutput, error)
}

// Retriever searches the study-materials knowledge base. It fails soft:
// every failure mode is reported to the agent as a readable tool result,
// never as an error, so the conversation can continue ungrounded.
type Retriever struct {
	client          RetrieveAPI
	knowledgeBaseID string
	log             logger.ILogger
}

func NewRetriever(client RetrieveAPI, knowledgeBaseID string, log logger.ILogger) *Retriever {
	return &Retriever{
		client:          client,
		knowledgeBaseID: knowledgeBaseID,
		log:             log,
	}
}

// Retrieve runs one vector search and records the ranked passages in acc.
// The accumulator is reset per call, so it always holds the passages of
// the most recent retrieval only.
func (r *Retriever) Retrieve(ctx context.Context, query string, acc *SourceAccumulator) string {
	if r.knowledgeBaseID == "" {
		return constant.RetrieveUnconfiguredMessage
	}

	out, err := r.client.Retrieve(ctx, &bedrockagentruntime.RetrieveInput{
		KnowledgeBaseId: aws.String(r.knowledgeBaseID),
		RetrievalQuery: &types.KnowledgeBaseQuery{
			Text: aws.String(query),
		},
		RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
			VectorSearchConfiguration: &types.KnowledgeBaseVectorSearchConfiguration{
				NumberOfResults: aws.Int32(maxResults),
			},
		},
	})
	if err != nil {
		r.log.Error("knowledge", "knowledge base retrieve failed", map[string]interface{}{
			"error": err.Error(),
		})
		acc.Reset()
		return fmt.Sprintf("Error retrieving from knowledge base: %s", err.Error())
	}

	acc.Reset()

	results := out.RetrievalResults
	if len(results) == 0 {
		return constant.RetrieveNoResultsMessage
	}

	sections := make([]string, 0, len(results))
	for idx, result := range results {
		var content string
		if result.Content != nil {
			content = aws.ToString(result.Content.Text)
		}

		var score float64
		if result.Score != nil {
			score = *result.Score
		}

		sourceURI := "Unknown source"
		if result.Location != nil && result.Location.S3Location != nil {
			sourceURI = aws.ToString(result.Location.S3Location.Uri)
		}
		documentName := DocumentName(sourceURI)

		acc.Add(Source{
			Content:      content,
			Score:        score,
			SourceURI:    sourceURI,
			DocumentName: documentName,
		})

		sections = append(sections, fmt.Sprintf("[Source %d] (Relevance: %.2f)\n%s\nFrom: %s\n",
			idx+1, score, content, documentName))
	}

	return strings.Join(sections, constant.RetrieveResultDivider)
}

// RetrieverTool binds the retriever to one invocation's accumulator so the
// agent can call it as a tool.
type RetrieverTool struct {
	retriever *Retriever
	acc       *SourceAccumulator
}

func (r *Retriever) Tool(acc *SourceAccumulator) *RetrieverTool {
	return &RetrieverTool{retriever: r, acc: acc}
}

func (t *RetrieverTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        constant.RetrieveToolName,
		Description: constant.RetrieveToolDescription,
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The question or topic to search for in the materials",
				},
			},
			"required": []interface{}{"query"},
		},
	}
}

func (t *RetrieverTool) Execute(ctx context.Context, input map[string]interface{}) string {
	query, _ := input["query"].(string)
	if query == "" {
		return "Error: tool call is missing the 'query' argument."
	}
	return t.retriever.Retrieve(ctx, query, t.acc)
}
