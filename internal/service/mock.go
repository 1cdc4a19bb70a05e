package service

import (
	"context"
	"io"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
)

// MockTransactionService is a function-field mock for tests.
type MockTransactionService struct {
	ListCategoriesFn    func(ctx context.Context) ([]model.Category, error)
	ListTransactionsFn  func(ctx context.Context, page int) (*api.TransactionPage, error)
	CreateTransactionFn func(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error)
	UpdateTransactionFn func(ctx context.Context, id int, draft model.TransactionDraft) (*model.Transaction, error)
	DeleteTransactionFn func(ctx context.Context, id int) error
	ParseNLPFn          func(ctx context.Context, text string) (*model.Transaction, error)
	QueryNLPFn          func(ctx context.Context, text string) (string, error)
	UploadReceiptFn     func(ctx context.Context, filename string, content io.Reader) (*model.OCRResult, error)

	// Call tracking.
	ListTransactionsCalls []int
	CreateCalls           []model.TransactionDraft
	UpdateCalls           []int
	DeleteCalls           []int
	ParseNLPCalls         []string
	UploadReceiptCalls    []string
}

// ListCategories implements TransactionService.
func (m *MockTransactionService) ListCategories(ctx context.Context) ([]model.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return []model.Category{}, nil
}

// ListTransactions implements TransactionService.
func (m *MockTransactionService) ListTransactions(ctx context.Context, page int) (*api.TransactionPage, error) {
	m.ListTransactionsCalls = append(m.ListTransactionsCalls, page)
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, page)
	}
	return &api.TransactionPage{}, nil
}

// CreateTransaction implements TransactionService.
func (m *MockTransactionService) CreateTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error) {
	m.CreateCalls = append(m.CreateCalls, draft)
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, draft)
	}
	return &model.Transaction{}, nil
}

// UpdateTransaction implements TransactionService.
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, id int, draft model.TransactionDraft) (*model.Transaction, error) {
	m.UpdateCalls = append(m.UpdateCalls, id)
	if m.UpdateTransactionFn != nil {
		return m.UpdateTransactionFn(ctx, id, draft)
	}
	return &model.Transaction{}, nil
}

// DeleteTransaction implements TransactionService.
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, id int) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteTransactionFn != nil {
		return m.DeleteTransactionFn(ctx, id)
	}
	return nil
}

// ParseNLP implements TransactionService.
func (m *MockTransactionService) ParseNLP(ctx context.Context, text string) (*model.Transaction, error) {
	m.ParseNLPCalls = append(m.ParseNLPCalls, text)
	if m.ParseNLPFn != nil {
		return m.ParseNLPFn(ctx, text)
	}
	return &model.Transaction{}, nil
}

// QueryNLP implements TransactionService.
func (m *MockTransactionService) QueryNLP(ctx context.Context, text string) (string, error) {
	if m.QueryNLPFn != nil {
		return m.QueryNLPFn(ctx, text)
	}
	return "", nil
}

// UploadReceipt implements TransactionService.
func (m *MockTransactionService) UploadReceipt(ctx context.Context, filename string, content io.Reader) (*model.OCRResult, error) {
	m.UploadReceiptCalls = append(m.UploadReceiptCalls, filename)
	if m.UploadReceiptFn != nil {
		return m.UploadReceiptFn(ctx, filename, content)
	}
	return &model.OCRResult{}, nil
}

var _ TransactionService = (*MockTransactionService)(nil)

// MockPreferencesService is a function-field mock for tests.
type MockPreferencesService struct {
	GetPreferencesFn    func(ctx context.Context) (*model.Preferences, error)
	UpdatePreferencesFn func(ctx context.Context, patch model.PreferencesPatch) (*model.Preferences, error)

	UpdateCalls []model.PreferencesPatch
}

// GetPreferences implements PreferencesService.
func (m *MockPreferencesService) GetPreferences(ctx context.Context) (*model.Preferences, error) {
	if m.GetPreferencesFn != nil {
		return m.GetPreferencesFn(ctx)
	}
	prefs := model.DefaultPreferences()
	return &prefs, nil
}

// UpdatePreferences implements PreferencesService.
func (m *MockPreferencesService) UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) (*model.Preferences, error) {
	m.UpdateCalls = append(m.UpdateCalls, patch)
	if m.UpdatePreferencesFn != nil {
		return m.UpdatePreferencesFn(ctx, patch)
	}
	prefs := model.DefaultPreferences()
	return &prefs, nil
}

var _ PreferencesService = (*MockPreferencesService)(nil)

// MockNotificationService is a function-field mock for tests.
type MockNotificationService struct {
	ListNotificationsFn        func(ctx context.Context, limit int) ([]model.Notification, error)
	UnreadCountFn              func(ctx context.Context) (int, error)
	MarkNotificationReadFn     func(ctx context.Context, id int) error
	MarkAllNotificationsReadFn func(ctx context.Context) error

	ListCalls   int
	UnreadCalls int
}

// ListNotifications implements NotificationService.
func (m *MockNotificationService) ListNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	m.ListCalls++
	if m.ListNotificationsFn != nil {
		return m.ListNotificationsFn(ctx, limit)
	}
	return []model.Notification{}, nil
}

// UnreadCount implements NotificationService.
func (m *MockNotificationService) UnreadCount(ctx context.Context) (int, error) {
	m.UnreadCalls++
	if m.UnreadCountFn != nil {
		return m.UnreadCountFn(ctx)
	}
	return 0, nil
}

// MarkNotificationRead implements NotificationService.
func (m *MockNotificationService) MarkNotificationRead(ctx context.Context, id int) error {
	if m.MarkNotificationReadFn != nil {
		return m.MarkNotificationReadFn(ctx, id)
	}
	return nil
}

// MarkAllNotificationsRead implements NotificationService.
func (m *MockNotificationService) MarkAllNotificationsRead(ctx context.Context) error {
	if m.MarkAllNotificationsReadFn != nil {
		return m.MarkAllNotificationsReadFn(ctx)
	}
	return nil
}

var _ NotificationService = (*MockNotificationService)(nil)
