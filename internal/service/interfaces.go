// Package service defines the contracts between the UI layers and the
// remote API client, so components can be tested against mocks.
package service

import (
	"context"
	"io"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
)

// TransactionService covers the transaction CRUD surface plus the two
// NLP-backed entry points and receipt OCR.
type TransactionService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListTransactions(ctx context.Context, page int) (*api.TransactionPage, error)
	CreateTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id int, draft model.TransactionDraft) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int) error
	ParseNLP(ctx context.Context, text string) (*model.Transaction, error)
	QueryNLP(ctx context.Context, text string) (string, error)
	UploadReceipt(ctx context.Context, filename string, content io.Reader) (*model.OCRResult, error)
}

// PreferencesService covers the remote preference object.
type PreferencesService interface {
	GetPreferences(ctx context.Context) (*model.Preferences, error)
	UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) (*model.Preferences, error)
}

// NotificationService covers the polled notification surface.
type NotificationService interface {
	ListNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id int) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// InsightsService covers the read-only AI and statistics surface. Failures
// here degrade to empty displays, never block a view.
type InsightsService interface {
	Statistics(ctx context.Context, start, end model.Date) (*model.Statistics, error)
	Trends(ctx context.Context) (*model.TrendReport, error)
	Predictions(ctx context.Context) (*model.Prediction, error)
	Anomalies(ctx context.Context) (*model.AnomalyReport, error)
	SavingsSuggestions(ctx context.Context) (*model.SavingsReport, error)
	Chat(ctx context.Context, message string) (string, error)
}

// AuthService covers login, registration, and profile retrieval.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.AuthResponse, error)
	Register(ctx context.Context, reg model.Registration) (*model.AuthResponse, error)
	Profile(ctx context.Context) (*model.User, error)
}
