package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"learnhub_backend/internal/config"
	"net/http"
	"strings"
	"time"
)

type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat 单轮对话调用，外部服务不保证延迟与确定性
func (s *AIService) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// CourseOutline AI 生成的结构化课程大纲
type CourseOutline struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Level         string          `json:"level"`
	Objectives    []string        `json:"objectives"`
	Prerequisites []string        `json:"prerequisites"`
	Modules       []OutlineModule `json:"modules"`
}

type OutlineModule struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Lessons     []OutlineLesson `json:"lessons"`
}

type OutlineLesson struct {
	Title   string `json:"title"`
	Type    string `json:"type"` // video / text / quiz / assignment
	Content string `json:"content"`
}

const outlineSystemPrompt = "你是一个在线课程设计专家。根据用户提供的素材生成课程大纲，" +
	"只输出一个JSON对象，不要输出任何解释文字。JSON结构：" +
	`{"title":"","description":"","category":"","level":"beginner|intermediate|advanced",` +
	`"objectives":[""],"prerequisites":[""],` +
	`"modules":[{"title":"","description":"","lessons":[{"title":"","type":"video|text|quiz|assignment","content":""}]}]}`

// GenerateOutline 把内容素材与指令交给模型，解析返回的结构化大纲
func (s *AIService) GenerateOutline(ctx context.Context, content, instructions string) (*CourseOutline, error) {
	userPrompt := fmt.Sprintf("素材：\n%s", content)
	if strings.TrimSpace(instructions) != "" {
		userPrompt = fmt.Sprintf("%s\n\n额外要求：%s", userPrompt, instructions)
	}

	raw, err := s.Chat(ctx, outlineSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var outline CourseOutline
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &outline); err != nil {
		return nil, fmt.Errorf("AI returned malformed outline: %w", err)
	}

	if strings.TrimSpace(outline.Title) == "" || len(outline.Modules) == 0 {
		return nil, fmt.Errorf("AI returned incomplete outline")
	}

	return &outline, nil
}

// stripCodeFence 模型偶尔会把JSON包在```代码块里
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
