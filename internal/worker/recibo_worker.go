package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibo: fetches the venta, renders the PDF
// recibo and, when the client has an email on file, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BryanFuM/saas-gyh-sub000/internal/infra"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	VentaID      string  `json:"venta_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

type ReciboWorker struct {
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewReciboWorker(ventaRepo repository.VentaRepository, dispatcher *Dispatcher, pdfStoragePath string) *ReciboWorker {
	return &ReciboWorker{
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process renders the PDF for one venta and optionally enqueues the email.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("recibo_worker: invalid venta_id")
		return nil
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return fmt.Errorf("recibo_worker: venta %s: %w", payload.VentaID, err)
	}

	pdfPath, err := infra.GenerateReciboPDF(venta, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("recibo_worker: generate pdf: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("venta_id", payload.VentaID).Msg("recibo_worker: PDF generated")

	// Resolve destination: explicit payload email wins over the client record.
	toEmail := ""
	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		toEmail = *payload.ClienteEmail
	} else if venta.Client != nil && venta.Client.Email != nil {
		toEmail = *venta.Client.Email
	}
	if toEmail == "" {
		return nil
	}

	emailJob := EmailJobPayload{
		ToEmail: toEmail,
		Subject: "Recibo Agroinversiones Beto — Venta " + venta.Type,
		Body:    fmt.Sprintf("Adjunto encontrarás tu recibo de compra.\nTotal: S/ %s", venta.TotalAmount.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", toEmail).Msg("recibo_worker: failed to enqueue email")
	}
	return nil
}
