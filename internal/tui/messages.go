package tui

import (
	"github.com/nhatminh/vifin/internal/model"
)

// pageLoadedMsg carries a freshly loaded page of transactions.
type pageLoadedMsg struct {
	items       []model.Transaction
	currentPage int
	totalPages  int
	count       int
	window      []int
	err         error
}

// categoriesLoadedMsg carries the category catalog.
type categoriesLoadedMsg struct {
	categories []model.Category
	err        error
}

// nlpSubmittedMsg is the outcome of a free-text submission.
type nlpSubmittedMsg struct {
	created *model.Transaction
	err     error
}

// deletedMsg is the outcome of a delete plus reconciliation.
type deletedMsg struct {
	id  int
	err error
}

// notificationsMsg carries a poller update into the UI loop.
type notificationsMsg struct {
	unread int
}

// statusClearMsg clears the transient status line.
type statusClearMsg struct{}
