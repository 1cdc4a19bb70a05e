// Package ingest funnels every transaction input modality (structured form,
// free-text NLP, speech dictation, receipt OCR, and OFX import) into one
// outcome contract: create the transaction(s), then trigger exactly one
// refresh of the paginated list.
package ingest

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

// Modality identifies one of the input paths that can create a transaction.
type Modality string

// Input modalities.
const (
	ModalityForm      Modality = "form"
	ModalityNLP       Modality = "nlp"
	ModalityDictation Modality = "dictation"
	ModalityReceipt   Modality = "receipt"
	ModalityImport    Modality = "import"
)

// ParseFailureHint is shown when the NLP endpoint fails without a message
// of its own.
const ParseFailureHint = `Could not understand that sentence. Try something like "Chi 50000 ăn sáng" or "Thu 2000000 tiền lương".`

// Refresher is the data-refresh contract shared by all modalities. The
// pager controller satisfies it.
type Refresher interface {
	RefreshFirst(ctx context.Context) error
	RefreshCurrent(ctx context.Context) error
}

// DraftStore persists in-progress input so a failed submission survives the
// process. Optional.
type DraftStore interface {
	SaveDraft(ctx context.Context, modality, payload string) error
	ClearDraft(ctx context.Context, modality string) error
	LoadDraft(ctx context.Context, modality string) (string, error)
}

// Workflow coordinates the ingestion modalities.
type Workflow struct {
	svc       service.TransactionService
	list      Refresher
	drafts    DraftStore
	dictation DictationProvider

	guardMu  sync.Mutex
	inFlight map[Modality]bool

	bufMu   sync.Mutex
	nlpText string
}

// NewWorkflow creates a workflow. drafts and dictation may be nil; a nil
// dictation provider means the capability is absent.
func NewWorkflow(svc service.TransactionService, list Refresher, drafts DraftStore, dictation DictationProvider) *Workflow {
	return &Workflow{
		svc:       svc,
		list:      list,
		drafts:    drafts,
		dictation: dictation,
		inFlight:  make(map[Modality]bool),
	}
}

// acquire marks a modality busy, rejecting concurrent duplicate submissions
// from the same trigger. Different modalities are not mutually exclusive.
func (w *Workflow) acquire(m Modality) error {
	w.guardMu.Lock()
	defer w.guardMu.Unlock()
	if w.inFlight[m] {
		return ErrBusy
	}
	w.inFlight[m] = true
	return nil
}

func (w *Workflow) release(m Modality) {
	w.guardMu.Lock()
	delete(w.inFlight, m)
	w.guardMu.Unlock()
}

// InFlight reports whether a submission from the modality is outstanding.
func (w *Workflow) InFlight(m Modality) bool {
	w.guardMu.Lock()
	defer w.guardMu.Unlock()
	return w.inFlight[m]
}

// SubmitForm creates a transaction from the structured form. Client-side
// validation is required-field presence only; everything else is the
// server's call. Success refreshes to page 1.
func (w *Workflow) SubmitForm(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, &InputRejectedError{Rule: RuleMissingField, Message: err.Error()}
	}
	if err := w.acquire(ModalityForm); err != nil {
		return nil, err
	}
	defer w.release(ModalityForm)

	tx, err := w.svc.CreateTransaction(ctx, draft)
	if err != nil {
		return nil, err
	}

	slog.Debug("transaction created", "id", tx.ID, "modality", ModalityForm)
	w.refreshFirst(ctx)
	return tx, nil
}

// SubmitEdit updates an existing transaction via the structured form. The
// one modality whose refresh targets the current page, not page 1.
func (w *Workflow) SubmitEdit(ctx context.Context, id int, draft model.TransactionDraft) (*model.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, &InputRejectedError{Rule: RuleMissingField, Message: err.Error()}
	}
	if err := w.acquire(ModalityForm); err != nil {
		return nil, err
	}
	defer w.release(ModalityForm)

	tx, err := w.svc.UpdateTransaction(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	if w.list != nil {
		if err := w.list.RefreshCurrent(ctx); err != nil {
			slog.Warn("list refresh failed after edit", "error", err)
		}
	}
	return tx, nil
}

// ImportOutcome summarizes a batch submission.
type ImportOutcome struct {
	Created int
	Failed  int
}

// SubmitImport creates one transaction per draft. Per-line failures are
// counted, not fatal: the rest of the batch still goes through. progress,
// when non-nil, is called after each attempt. The whole batch counts as one
// submission: a single refresh to page 1, issued once at the end when at
// least one create succeeded.
func (w *Workflow) SubmitImport(ctx context.Context, drafts []model.TransactionDraft, progress func()) (*ImportOutcome, error) {
	if err := w.acquire(ModalityImport); err != nil {
		return nil, err
	}
	defer w.release(ModalityImport)

	out := &ImportOutcome{}
	for _, draft := range drafts {
		if _, err := w.svc.CreateTransaction(ctx, draft); err != nil {
			slog.Warn("import line failed", "description", draft.Description, "error", err)
			out.Failed++
		} else {
			out.Created++
		}
		if progress != nil {
			progress()
		}
	}

	if out.Created > 0 {
		slog.Debug("transactions imported", "created", out.Created, "failed", out.Failed, "modality", ModalityImport)
		w.refreshFirst(ctx)
	}
	return out, nil
}

// SetText replaces the shared free-text buffer.
func (w *Workflow) SetText(text string) {
	w.bufMu.Lock()
	w.nlpText = text
	w.bufMu.Unlock()
}

// AppendText appends to the shared free-text buffer, separating utterances
// with a space. Dictation feeds recognized speech through here.
func (w *Workflow) AppendText(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	w.bufMu.Lock()
	if w.nlpText != "" {
		w.nlpText += " "
	}
	w.nlpText += text
	w.bufMu.Unlock()
}

// Text returns the current free-text buffer.
func (w *Workflow) Text() string {
	w.bufMu.Lock()
	defer w.bufMu.Unlock()
	return w.nlpText
}

// SubmitText sends the free-text buffer to the NLP parsing endpoint.
// Empty or whitespace-only input is rejected locally without a network
// call. On failure the buffer is preserved (and drafted, when a store is
// configured) so the user can retry without retyping; on success it is
// cleared and the list refreshes to page 1.
func (w *Workflow) SubmitText(ctx context.Context) (*model.Transaction, error) {
	text := strings.TrimSpace(w.Text())
	if text == "" {
		return nil, &InputRejectedError{Rule: RuleEmptyText, Message: "enter a sentence describing the transaction first"}
	}
	if err := w.acquire(ModalityNLP); err != nil {
		return nil, err
	}
	defer w.release(ModalityNLP)

	tx, err := w.svc.ParseNLP(ctx, text)
	if err != nil {
		w.saveDraft(ctx, ModalityNLP, text)
		return nil, parseFailure(err)
	}

	w.SetText("")
	w.clearDraft(ctx, ModalityNLP)
	slog.Debug("transaction created", "id", tx.ID, "modality", ModalityNLP)
	w.refreshFirst(ctx)
	return tx, nil
}

// Dictate listens for one utterance and appends it to the text buffer.
// Submission still goes through SubmitText.
func (w *Workflow) Dictate(ctx context.Context) (string, error) {
	if w.dictation == nil {
		return "", &CapabilityError{Capability: "speech recognition", Reason: "no recognizer is configured on this system"}
	}
	if err := w.dictation.Available(); err != nil {
		return "", err
	}
	if err := w.acquire(ModalityDictation); err != nil {
		return "", err
	}
	defer w.release(ModalityDictation)

	utterance, err := w.dictation.Listen(ctx)
	if err != nil {
		return "", err
	}

	w.AppendText(utterance)
	return utterance, nil
}

// DictationAvailable reports whether the dictation affordance should be
// enabled, with the reason when it should not.
func (w *Workflow) DictationAvailable() error {
	if w.dictation == nil {
		return &CapabilityError{Capability: "speech recognition", Reason: "no recognizer is configured on this system"}
	}
	return w.dictation.Available()
}

// refreshFirst performs the shared success contract: exactly one refresh,
// to page 1. A refresh failure is logged, not surfaced; the creation
// already succeeded.
func (w *Workflow) refreshFirst(ctx context.Context) {
	if w.list == nil {
		return
	}
	if err := w.list.RefreshFirst(ctx); err != nil {
		slog.Warn("list refresh failed after create", "error", err)
	}
}

func (w *Workflow) saveDraft(ctx context.Context, m Modality, payload string) {
	if w.drafts == nil {
		return
	}
	if err := w.drafts.SaveDraft(ctx, string(m), payload); err != nil {
		slog.Warn("failed to save draft", "modality", m, "error", err)
	}
}

func (w *Workflow) clearDraft(ctx context.Context, m Modality) {
	if w.drafts == nil {
		return
	}
	if err := w.drafts.ClearDraft(ctx, string(m)); err != nil {
		slog.Warn("failed to clear draft", "modality", m, "error", err)
	}
}

// RestoreDraft loads a previously saved draft for the modality into the
// text buffer, if any.
func (w *Workflow) RestoreDraft(ctx context.Context, m Modality) {
	if w.drafts == nil {
		return
	}
	payload, err := w.drafts.LoadDraft(ctx, string(m))
	if err != nil || payload == "" {
		return
	}
	w.SetText(payload)
}
