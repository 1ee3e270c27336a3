package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Aws     AwsConfig
	Agent   AgentConfig
	Session SessionConfig
}

type AppConfig struct {
	Port          string
	Environment   string
	LogFilePath   string
	MaterialsPath string
}

type AwsConfig struct {
	Region string
}

type AgentConfig struct {
	ModelID         string
	KnowledgeBaseID string
}

type SessionConfig struct {
	Bucket string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:          getEnv("APP_PORT", "3000"),
			Environment:   getEnv("GO_ENV", "development"),
			LogFilePath:   getEnv("LOG_FILE_PATH", "app.log"),
			MaterialsPath: getEnv("MATERIALS_PATH", "materials.json"),
		},
		Aws: AwsConfig{
			Region: getEnv("AWS_REGION", "us-east-1"),
		},
		Agent: AgentConfig{
			ModelID:         getEnv("BEDROCK_MODEL_ID", "us.anthropic.claude-3-5-haiku-20241022-v1:0"),
			KnowledgeBaseID: getEnv("KNOWLEDGE_BASE_ID", ""),
		},
		Session: SessionConfig{
			// Leaving the bucket empty disables conversation persistence.
			Bucket: getEnv("SESSION_BUCKET", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
