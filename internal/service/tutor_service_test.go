package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"study-buddy-be/internal/dto"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/pkg/agent"
	"study-buddy-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	acc        *knowledge.SourceAccumulator
	sources    []knowledge.Source
	structured *agent.StructuredResponse
	err        error
	gotSession string
	gotMessage string
}

func (f *fakeInvoker) Invoke(ctx context.Context, sessionID, message string) (*agent.StructuredResponse, error) {
	f.gotSession = sessionID
	f.gotMessage = message
	for _, s := range f.sources {
		f.acc.Add(s)
	}
	return f.structured, f.err
}

type fakeFactory struct {
	invoker *fakeInvoker
	gotAcc  *knowledge.SourceAccumulator
}

func (f *fakeFactory) NewAgent(acc *knowledge.SourceAccumulator) agent.Invoker {
	f.gotAcc = acc
	f.invoker.acc = acc
	return f.invoker
}

func strPtr(s string) *string { return &s }

func newService(invoker *fakeInvoker) (ITutorService, *fakeFactory) {
	factory := &fakeFactory{invoker: invoker}
	return NewTutorService(factory, "materials.json", logger.NewNopLogger()), factory
}

func TestSendChatDefaultsSessionID(t *testing.T) {
	invoker := &fakeInvoker{structured: &agent.StructuredResponse{Response: "Hi there!"}}
	svc, _ := newService(invoker)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{Message: "What is photosynthesis?"})
	require.NoError(t, err)

	assert.Equal(t, "default-session", res.SessionID)
	assert.Equal(t, "default-session", invoker.gotSession)
	assert.Equal(t, "What is photosynthesis?", invoker.gotMessage)
	assert.NotEmpty(t, res.Response)
}

func TestSendChatValidMaterialIDPassesThrough(t *testing.T) {
	invoker := &fakeInvoker{structured: &agent.StructuredResponse{
		Response:           "Let's quiz!",
		RelevantMaterialID: strPtr("mitosis"),
	}}
	svc, _ := newService(invoker)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{Message: "Quiz me on mitosis", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "s1", res.SessionID)
	require.NotNil(t, res.RelevantMaterialID)
	assert.Equal(t, "mitosis", *res.RelevantMaterialID)
}

func TestSendChatInvalidMaterialIDDroppedToNull(t *testing.T) {
	tests := []string{"meiosis", "MITOSIS", "photosynthesis ", ""}
	for _, candidate := range tests {
		t.Run(candidate, func(t *testing.T) {
			invoker := &fakeInvoker{structured: &agent.StructuredResponse{
				Response:           "answer",
				RelevantMaterialID: strPtr(candidate),
			}}
			svc, _ := newService(invoker)

			res, err := svc.SendChat(context.Background(), &dto.ChatRequest{Message: "hello", SessionID: "s1"})
			require.NoError(t, err)
			assert.Nil(t, res.RelevantMaterialID)
		})
	}
}

func TestSendChatFiltersCatalogSources(t *testing.T) {
	invoker := &fakeInvoker{
		structured: &agent.StructuredResponse{Response: "answer"},
		sources: []knowledge.Source{
			{Content: "passage", Score: 0.9, SourceURI: "s3://kb/photosynthesis.txt", DocumentName: "photosynthesis.txt"},
			{Content: "catalog", Score: 0.8, SourceURI: "s3://kb/materials.json", DocumentName: "materials.json"},
		},
	}
	svc, factory := newService(invoker)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{Message: "hello", SessionID: "s1"})
	require.NoError(t, err)

	// Fresh accumulator built for this invocation
	assert.NotNil(t, factory.gotAcc)

	require.Len(t, res.Sources, 1)
	assert.Equal(t, "photosynthesis.txt", res.Sources[0].DocumentName)
	assert.Equal(t, 0.9, res.Sources[0].Score)
	assert.Equal(t, "s3://kb/photosynthesis.txt", res.Sources[0].Source)
}

func TestSendChatOmitsEmptySources(t *testing.T) {
	invoker := &fakeInvoker{structured: &agent.StructuredResponse{Response: "answer"}}
	svc, _ := newService(invoker)

	res, err := svc.SendChat(context.Background(), &dto.ChatRequest{Message: "hello", SessionID: "s1"})
	require.NoError(t, err)
	assert.Nil(t, res.Sources)
}

func TestSendChatAgentErrorPropagates(t *testing.T) {
	invoker := &fakeInvoker{err: errors.New("model unavailable")}
	svc, _ := newService(invoker)

	_, err := svc.SendChat(context.Background(), &dto.ChatRequest{Message: "hello"})
	require.Error(t, err)
}

func TestGetMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.json")
	catalog := []byte(`{"materials": [{"id": "mitosis"}]}`)
	require.NoError(t, os.WriteFile(path, catalog, 0644))

	svc := NewTutorService(&fakeFactory{invoker: &fakeInvoker{}}, path, logger.NewNopLogger())

	got, err := svc.GetMaterials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog, got)
}

func TestGetMaterialsNotFound(t *testing.T) {
	svc := NewTutorService(&fakeFactory{invoker: &fakeInvoker{}},
		filepath.Join(t.TempDir(), "missing.json"), logger.NewNopLogger())

	_, err := svc.GetMaterials(context.Background())
	assert.ErrorIs(t, err, ErrMaterialsNotFound)
}

func TestGetMaterialsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	svc := NewTutorService(&fakeFactory{invoker: &fakeInvoker{}}, path, logger.NewNopLogger())

	_, err := svc.GetMaterials(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMaterialsNotFound)
}
