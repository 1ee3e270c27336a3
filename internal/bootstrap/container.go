package bootstrap

import (
	"context"
	"log"

	"study-buddy-be/internal/config"
	"study-buddy-be/internal/constant"
	"study-buddy-be/internal/controller"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/internal/service"
	"study-buddy-be/pkg/agent"
	"study-buddy-be/pkg/knowledge"
	"study-buddy-be/pkg/llm/bedrock"
	"study-buddy-be/pkg/session"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	MaterialsController controller.IMaterialsController

	// Shared facades
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Aws.Region),
	)
	if err != nil {
		log.Panicf("Unable to load AWS configuration: %v", err)
	}

	// 2. External collaborators
	provider := bedrock.NewBedrockProvider(bedrockruntime.NewFromConfig(awsCfg), cfg.Agent.ModelID)
	retriever := knowledge.NewRetriever(bedrockagentruntime.NewFromConfig(awsCfg), cfg.Agent.KnowledgeBaseID, sysLogger)

	// No session bucket means no persistence: history lives and dies with
	// each request.
	var sessions session.Store
	if cfg.Session.Bucket != "" {
		sessions = session.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Session.Bucket,
			constant.SessionKeyPrefix, constant.ConversationWindow)
	} else {
		sysLogger.Warn("bootstrap", "SESSION_BUCKET not set, conversation persistence disabled", nil)
	}

	// 3. Services
	agentFactory := agent.NewFactory(provider, retriever, sessions, sysLogger)
	tutorService := service.NewTutorService(agentFactory, cfg.App.MaterialsPath, sysLogger)

	// 4. Controllers
	return &Container{
		ChatController:      controller.NewChatController(tutorService, sysLogger),
		MaterialsController: controller.NewMaterialsController(tutorService, sysLogger),
		Logger:              sysLogger,
	}
}
