package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medibook/models"

	"go.uber.org/zap"
)

// SystemPrompt scopes the assistant to general guidance and specialty triage.
var SystemPrompt = "You are the MediBook health assistant. Give general, non-urgent health information " +
	"and suggest which medical specialty the user could consult, choosing from: " +
	strings.Join(models.Specialties, ", ") + ". " +
	"Never diagnose, never prescribe medication or doses, and never claim to be a doctor. " +
	"If the user describes an emergency such as chest pain, trouble breathing or thoughts of self-harm, " +
	"tell them to contact local emergency services immediately. Keep answers under 150 words."

const (
	roleUser  = "user"
	roleModel = "model"
)

var ErrEmptyMessage = errors.New("message is empty")

type AssistantService interface {
	Chat(ctx context.Context, userID, message string) (*models.AIResponse, error)
	Reset(ctx context.Context, userID string) error
}

type DefaultAssistantService struct {
	Store    ContextStore
	Model    ChatModel
	MaxTurns int // exchanges kept, each one a user and a model turn
	Logger   *zap.Logger
}

func (s *DefaultAssistantService) Chat(ctx context.Context, userID, message string) (*models.AIResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	aiCtx, err := s.Store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	reply, err := s.Model.Reply(ctx, aiCtx.Turns, message)
	if err != nil {
		return nil, fmt.Errorf("assistant reply: %w", err)
	}

	aiCtx.Turns = append(aiCtx.Turns,
		models.AITurn{Role: roleUser, Text: message},
		models.AITurn{Role: roleModel, Text: reply},
	)
	if limit := s.MaxTurns * 2; limit > 0 && len(aiCtx.Turns) > limit {
		aiCtx.Turns = aiCtx.Turns[len(aiCtx.Turns)-limit:]
	}
	if err := s.Store.Set(ctx, userID, aiCtx); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("failed to save assistant context", zap.String("userId", userID), zap.Error(err))
		}
	}

	return &models.AIResponse{
		Reply:                reply,
		SuggestedSpecialties: mentionedSpecialties(reply),
	}, nil
}

func (s *DefaultAssistantService) Reset(ctx context.Context, userID string) error {
	if err := s.Store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear context: %w", err)
	}
	return nil
}

// mentionedSpecialties returns the listed specialties named in text, in list order.
func mentionedSpecialties(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, s := range models.Specialties {
		if s == "Other" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(s)) {
			found = append(found, s)
		}
	}
	return found
}
