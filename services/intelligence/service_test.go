package ai

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"medibook/models"
)

type memoryStore struct {
	data   map[string]*models.AIContext
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]*models.AIContext{}}
}

func (m *memoryStore) Get(_ context.Context, userID string) (*models.AIContext, error) {
	if c, ok := m.data[userID]; ok {
		cp := *c
		cp.Turns = append([]models.AITurn(nil), c.Turns...)
		return &cp, nil
	}
	return &models.AIContext{}, nil
}

func (m *memoryStore) Set(_ context.Context, userID string, c *models.AIContext) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[userID] = c
	return nil
}

func (m *memoryStore) Clear(_ context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

type scriptedModel struct {
	histories [][]models.AITurn
	err       error
}

func (s *scriptedModel) Reply(_ context.Context, history []models.AITurn, message string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.histories = append(s.histories, history)
	return fmt.Sprintf("reply %d to %s; consider Cardiology or dermatology", len(s.histories), message), nil
}

func TestChatKeepsContext(t *testing.T) {
	store := newMemoryStore()
	model := &scriptedModel{}
	svc := &DefaultAssistantService{Store: store, Model: model, MaxTurns: 2}
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		resp, err := svc.Chat(ctx, "u1", fmt.Sprintf("message %d", i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(resp.Reply, fmt.Sprintf("reply %d", i)) {
			t.Errorf("unexpected reply %q", resp.Reply)
		}
	}

	if got := len(model.histories[1]); got != 2 {
		t.Errorf("second call should see one exchange, got %d turns", got)
	}
	turns := store.data["u1"].Turns
	if len(turns) != 4 {
		t.Fatalf("expected context trimmed to 4 turns, got %d", len(turns))
	}
	if turns[0].Text != "message 2" || turns[0].Role != roleUser || turns[1].Role != roleModel {
		t.Errorf("expected the oldest exchange to be dropped, got %+v", turns[0])
	}
}

func TestChatSuggestsSpecialties(t *testing.T) {
	svc := &DefaultAssistantService{Store: newMemoryStore(), Model: &scriptedModel{}}
	resp, err := svc.Chat(context.Background(), "u1", "itchy rash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Cardiology", "Dermatology"}
	if !reflect.DeepEqual(resp.SuggestedSpecialties, want) {
		t.Errorf("expected %v, got %v", want, resp.SuggestedSpecialties)
	}
}

func TestChatErrors(t *testing.T) {
	ctx := context.Background()

	svcStore := newMemoryStore()
	svc := &DefaultAssistantService{Store: svcStore, Model: &scriptedModel{}}
	if _, err := svc.Chat(ctx, "u1", "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}

	store := newMemoryStore()
	failing := &DefaultAssistantService{Store: store, Model: &scriptedModel{err: errors.New("quota")}}
	if _, err := failing.Chat(ctx, "u1", "hello"); err == nil {
		t.Errorf("expected model error")
	}
	if _, ok := store.data["u1"]; ok {
		t.Errorf("context must not be saved when the model fails")
	}

	svcStore.setErr = errors.New("redis down")
	if _, err := svc.Chat(ctx, "u1", "hello"); err != nil {
		t.Errorf("a failed context save must not fail the chat, got %v", err)
	}
}

func TestReset(t *testing.T) {
	store := newMemoryStore()
	svc := &DefaultAssistantService{Store: store, Model: &scriptedModel{}}
	ctx := context.Background()

	if _, err := svc.Chat(ctx, "u1", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Reset(ctx, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.data["u1"]; ok {
		t.Errorf("expected context to be cleared")
	}
}

func TestSystemPromptForbidsDiagnosis(t *testing.T) {
	if !strings.Contains(SystemPrompt, "Never diagnose") {
		t.Errorf("system prompt must forbid diagnosis")
	}
}
