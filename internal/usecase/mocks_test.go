package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/sirupsen/logrus"
)

var errMockProvider = errors.New("provider unavailable")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type mockChatClient struct {
	CompleteFunc func(ctx context.Context, systemPrompt, message string) (string, error)
	calls        int
}

func (m *mockChatClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	m.calls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, message)
	}
	return "", errMockProvider
}

type mockPaymentClient struct {
	CreatePreferenceFunc func(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error)
	WhoAmIFunc           func(ctx context.Context) (*domain.AccountInfo, error)
	calls                int
	lastPreference       domain.Preference
}

func (m *mockPaymentClient) CreatePreference(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error) {
	m.calls++
	m.lastPreference = pref
	if m.CreatePreferenceFunc != nil {
		return m.CreatePreferenceFunc(ctx, pref)
	}
	return &domain.CreatedPreference{ID: "pref-1", InitPoint: "https://mp.example/init"}, nil
}

func (m *mockPaymentClient) WhoAmI(ctx context.Context) (*domain.AccountInfo, error) {
	m.calls++
	if m.WhoAmIFunc != nil {
		return m.WhoAmIFunc(ctx)
	}
	return &domain.AccountInfo{Nickname: "TESTSHOP"}, nil
}
