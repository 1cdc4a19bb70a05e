package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhatminh/vifin/internal/model"
)

// MaxReceiptSize is the upload ceiling for receipt images.
const MaxReceiptSize = 10 << 20 // 10 MB

// ValidateReceipt checks the file locally before any network traffic:
// the content must sniff as an image and the size must not exceed
// MaxReceiptSize. Each failing rule yields its own message.
func ValidateReceipt(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat receipt file: %w", err)
	}
	if info.Size() > MaxReceiptSize {
		return &InputRejectedError{
			Rule:    RuleFileSize,
			Message: fmt.Sprintf("receipt image is %.1f MB; the limit is 10 MB", float64(info.Size())/(1<<20)),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open receipt file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	// Sniff the content rather than trusting the extension.
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read receipt file: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return &InputRejectedError{
			Rule:    RuleFileType,
			Message: fmt.Sprintf("%s is not an image (detected %s); upload a photo of the receipt", filepath.Base(path), contentType),
		}
	}
	return nil
}

// SubmitReceipt validates and uploads a receipt image. Success yields the
// created transaction plus the extracted-field summary and refreshes the
// list to page 1; failure may still carry raw recognized text for
// inspection.
func (w *Workflow) SubmitReceipt(ctx context.Context, path string) (*model.OCRResult, error) {
	if err := ValidateReceipt(path); err != nil {
		return nil, err
	}
	if err := w.acquire(ModalityReceipt); err != nil {
		return nil, err
	}
	defer w.release(ModalityReceipt)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt file: %w", err)
	}

	result, err := w.svc.UploadReceipt(ctx, filepath.Base(path), bytes.NewReader(content))
	if err != nil {
		return result, err
	}
	if result.Error != "" || result.Transaction == nil {
		return result, &ParseError{Message: ocrFailureMessage(result), Err: nil}
	}

	slog.Debug("transaction created", "id", result.Transaction.ID, "modality", ModalityReceipt)
	w.refreshFirst(ctx)
	return result, nil
}

func ocrFailureMessage(result *model.OCRResult) string {
	if result != nil && result.Error != "" {
		return result.Error
	}
	return "could not extract a transaction from the receipt"
}
