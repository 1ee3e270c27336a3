package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"study-buddy-be/internal/constant"
	"study-buddy-be/internal/dto"
	"study-buddy-be/internal/mapper"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/pkg/agent"
	"study-buddy-be/pkg/knowledge"
)

// ErrMaterialsNotFound signals that the bundled catalog file is absent.
var ErrMaterialsNotFound = errors.New("materials file not found")

// AgentFactory builds one agent per chat invocation, bound to that
// invocation's source accumulator.
type AgentFactory interface {
	NewAgent(acc *knowledge.SourceAccumulator) agent.Invoker
}

type ITutorService interface {
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetMaterials(ctx context.Context) ([]byte, error)
}

type tutorService struct {
	agentFactory  AgentFactory
	materialsPath string
	log           logger.ILogger
}

func NewTutorService(agentFactory AgentFactory, materialsPath string, log logger.ILogger) ITutorService {
	return &tutorService{
		agentFactory:  agentFactory,
		materialsPath: materialsPath,
		log:           log,
	}
}

// SendChat runs one tutoring turn: a fresh source accumulator, a fresh
// agent for the session, then shaping of the structured reply and the
// retrieved sources.
func (s *tutorService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = constant.DefaultSessionID
	}

	acc := knowledge.NewSourceAccumulator()
	tutor := s.agentFactory.NewAgent(acc)

	structured, err := tutor.Invoke(ctx, sessionID, request.Message)
	if err != nil {
		return nil, err
	}

	sources := knowledge.FilterCatalogSources(acc.Sources())

	return &dto.ChatResponse{
		Response:           structured.Response,
		SessionID:          sessionID,
		RelevantMaterialID: s.validateMaterialID(structured.RelevantMaterialID),
		Sources:            mapper.ToSourceDTOs(sources),
	}, nil
}

// validateMaterialID enforces the material-id allow-list. Anything the
// model invents is dropped to null rather than propagated.
func (s *tutorService) validateMaterialID(candidate *string) *string {
	if candidate == nil {
		return nil
	}
	if _, ok := constant.ValidMaterialIDs[*candidate]; ok {
		return candidate
	}
	s.log.Warn("tutor", "unexpected material id, setting to null", map[string]interface{}{
		"material_id": *candidate,
	})
	return nil
}

// GetMaterials reads the bundled catalog fresh from disk on every call.
func (s *tutorService) GetMaterials(ctx context.Context) ([]byte, error) {
	raw, err := os.ReadFile(s.materialsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMaterialsNotFound
		}
		return nil, fmt.Errorf("read materials: %w", err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("materials file is not valid JSON")
	}
	return raw, nil
}
