package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"
	"tg-miniapp-be/pkg/events"
	"tg-miniapp-be/pkg/nats"
	"tg-miniapp-be/pkg/provider"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	EventGenerationCompleted = "GENERATION_COMPLETED"
	EventGenerationFailed    = "GENERATION_FAILED"
)

type IGenerationWorker interface {
	Consume(ctx context.Context) error
}

// generationWorker drains the generation-tasks topic. Each accepted message is
// acked immediately and run in its own goroutine with its own unit of work and
// deadline, so one slow video job never delays anyone else's generation. A run
// never leaves a generation stuck in a non-terminal state with tokens locked.
type generationWorker struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	modelService IAIModelService
	providers    *provider.Registry
	eventBus     *nats.Publisher
	cfg          config.WorkerConfig
	uploadDir    string
	baseURL      string
	httpClient   *http.Client
	logger       logger.ILogger
}

func NewGenerationWorker(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	modelService IAIModelService,
	providers *provider.Registry,
	eventBus *nats.Publisher,
	cfg config.WorkerConfig,
	uploadDir string,
	baseURL string,
	log logger.ILogger,
) IGenerationWorker {
	downloadTimeout := cfg.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = 2 * time.Minute
	}
	return &generationWorker{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		modelService: modelService,
		providers:    providers,
		eventBus:     eventBus,
		cfg:          cfg,
		uploadDir:    uploadDir,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: downloadTimeout},
		logger:       log,
	}
}

func (w *generationWorker) Consume(ctx context.Context) error {
	messages, err := w.pubSub.Subscribe(ctx, w.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			gen, ok := w.acceptMessage(ctx, msg)
			if !ok {
				continue
			}
			// Ack before the provider round-trip: the channel delivers the next
			// message only after the ack, and a video job can run for minutes.
			msg.Ack()
			go w.runGeneration(ctx, gen)
		}
	}()

	return nil
}

// acceptMessage validates a delivery and loads its generation. It owns the
// ack/nack decision for everything that can be decided without talking to a
// provider.
func (w *generationWorker) acceptMessage(ctx context.Context, msg *message.Message) (*entity.Generation, bool) {
	var payload dto.PublishGenerationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		w.logger.Error("GenerationWorker", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return nil, false
	}

	uow := w.uowFactory.NewUnitOfWork(ctx)
	gen, err := uow.GenerationRepository().FindOne(ctx, specification.ByID{ID: payload.GenerationId})
	if err != nil {
		w.logger.Error("GenerationWorker", "Failed to load generation", map[string]interface{}{
			"generation_id": payload.GenerationId, "error": err.Error(),
		})
		msg.Nack()
		return nil, false
	}
	if gen == nil {
		w.logger.Warn("GenerationWorker", "Generation not found", map[string]interface{}{"generation_id": payload.GenerationId})
		msg.Ack()
		return nil, false
	}
	if gen.Status.IsTerminal() {
		// Redelivery after a completed run.
		msg.Ack()
		return nil, false
	}

	return gen, true
}

// runGeneration drives one generation from pending to a terminal state:
// submit, poll, finalize. It runs detached from the consume loop.
func (w *generationWorker) runGeneration(ctx context.Context, gen *entity.Generation) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("GenerationWorker", "Panic while processing generation", map[string]interface{}{
				"generation_id": gen.Id, "panic": fmt.Sprint(r),
			})
			w.failGeneration(context.Background(), gen.Id, "internal processing error")
		}
	}()

	model, err := w.modelService.GetByCode(ctx, gen.ModelCode)
	if err != nil {
		w.failGeneration(ctx, gen.Id, "model no longer available")
		return
	}

	vendor, err := w.providers.Get(string(model.Provider))
	if err != nil {
		w.failGeneration(ctx, gen.Id, err.Error())
		return
	}

	timeout := w.cfg.ImageTimeout
	if gen.Type == entity.GenerationTypeVideo {
		timeout = w.cfg.VideoTimeout
	}
	runCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	taskID, err := vendor.Submit(runCtx, buildJob(gen, model))
	if err != nil {
		w.logger.Error("GenerationWorker", "Provider submit failed", map[string]interface{}{
			"generation_id": gen.Id, "provider": model.Provider, "error": err.Error(),
		})
		w.failGeneration(ctx, gen.Id, "provider rejected the job")
		return
	}

	uow := w.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GenerationRepository().SetProviderTask(ctx, gen.Id, taskID); err != nil {
		w.logger.Error("GenerationWorker", "Failed to persist provider task id", map[string]interface{}{
			"generation_id": gen.Id, "task_id": taskID, "error": err.Error(),
		})
	}

	moved, err := uow.GenerationRepository().TransitionStatus(ctx, gen.Id, entity.GenerationStatusPending, entity.GenerationStatusProcessing, nil)
	if err != nil {
		w.logger.Error("GenerationWorker", "Processing transition errored", map[string]interface{}{
			"generation_id": gen.Id, "error": err.Error(),
		})
		w.failGeneration(ctx, gen.Id, "internal processing error")
		return
	}
	if !moved {
		w.logger.Warn("GenerationWorker", "Generation left pending state concurrently", map[string]interface{}{"generation_id": gen.Id})
		return
	}

	w.pollUntilDone(runCtx, vendor, gen.Id, taskID)
}

// pollUntilDone drives one submitted job to a terminal state. Transport
// errors from Poll are retried until the deadline; a vendor-reported failure
// is terminal immediately.
func (w *generationWorker) pollUntilDone(runCtx context.Context, vendor provider.Provider, genID uuid.UUID, taskID string) {
	for {
		select {
		case <-runCtx.Done():
			w.logger.Warn("GenerationWorker", "Generation deadline exceeded", map[string]interface{}{
				"generation_id": genID, "task_id": taskID,
			})
			w.failGeneration(context.Background(), genID, "generation timed out")
			return
		case <-time.After(w.cfg.PollInterval):
		}

		status, err := vendor.Poll(runCtx, taskID)
		if err != nil {
			w.logger.Warn("GenerationWorker", "Poll failed, will retry", map[string]interface{}{
				"generation_id": genID, "task_id": taskID, "error": err.Error(),
			})
			continue
		}

		switch status.State {
		case provider.StateDone:
			w.succeedGeneration(context.Background(), genID, status.ResultURLs)
			return
		case provider.StateFailed:
			w.failGeneration(context.Background(), genID, status.FailReason)
			return
		}
	}
}

// succeedGeneration finalizes a done job: the artifact is copied into local
// storage, then status flip, result urls and the gallery row land in one
// transaction. Losing the status CAS means another writer already resolved
// the row, so nothing is persisted twice.
func (w *generationWorker) succeedGeneration(ctx context.Context, genID uuid.UUID, resultURLs []string) {
	if len(resultURLs) == 0 {
		w.failGeneration(ctx, genID, "provider returned no result")
		return
	}
	resultURL := resultURLs[0]

	uow := w.uowFactory.NewUnitOfWork(ctx)
	gen, err := uow.GenerationRepository().FindOne(ctx, specification.ByID{ID: genID})
	if err != nil || gen == nil {
		w.logger.Error("GenerationWorker", "Failed to reload generation for success", map[string]interface{}{"generation_id": genID})
		return
	}

	// Vendor-hosted results expire; keep our own copy. A failed download is
	// not fatal, the vendor url still resolves for a while.
	fileURL, err := w.downloadResult(ctx, gen, resultURL)
	if err != nil {
		w.logger.Warn("GenerationWorker", "Could not download result, keeping vendor url", map[string]interface{}{
			"generation_id": genID, "url": resultURL, "error": err.Error(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		w.logger.Error("GenerationWorker", "Failed to open success transaction", map[string]interface{}{
			"generation_id": genID, "error": err.Error(),
		})
		return
	}
	defer uow.Rollback()

	now := time.Now()
	updates := map[string]interface{}{"result_url": resultURL, "completed_at": now}
	galleryURL := resultURL
	if fileURL != "" {
		updates["result_file_url"] = fileURL
		galleryURL = fileURL
	}

	won, err := uow.GenerationRepository().TransitionStatus(ctx, genID,
		entity.GenerationStatusProcessing, entity.GenerationStatusSuccess, updates)
	if err != nil {
		w.logger.Error("GenerationWorker", "Success transition failed", map[string]interface{}{
			"generation_id": genID, "error": err.Error(),
		})
		return
	}
	if !won {
		w.logger.Warn("GenerationWorker", "Generation already resolved, skipping success", map[string]interface{}{"generation_id": genID})
		return
	}

	item := &entity.GalleryItem{
		Id:           uuid.New(),
		UserId:       gen.UserId,
		GenerationId: genID,
		FileURL:      galleryURL,
		FileType:     entity.FileType(gen.Type),
		CreatedAt:    now,
	}
	if err := uow.GalleryRepository().Create(ctx, item); err != nil {
		w.logger.Error("GenerationWorker", "Failed to create gallery item", map[string]interface{}{
			"generation_id": genID, "error": err.Error(),
		})
		return
	}

	if err := uow.Commit(); err != nil {
		w.logger.Error("GenerationWorker", "Failed to commit success", map[string]interface{}{
			"generation_id": genID, "error": err.Error(),
		})
		return
	}

	w.logger.Info("GenerationWorker", "Generation succeeded", map[string]interface{}{
		"generation_id": genID, "result_url": resultURL, "result_file_url": fileURL,
	})
	w.emitEvent(ctx, EventGenerationCompleted, map[string]interface{}{
		"generation_id":   genID.String(),
		"user_id":         gen.UserId.String(),
		"status":          string(entity.GenerationStatusSuccess),
		"result_url":      resultURL,
		"result_file_url": fileURL,
	})
}

// downloadResult copies the vendor artifact under the upload dir and returns
// its serving url.
func (w *generationWorker) downloadResult(ctx context.Context, gen *entity.Generation, resultURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: status=%d", resp.StatusCode)
	}

	if err := os.MkdirAll(w.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := gen.Id.String() + resultExt(gen, resultURL)
	dst := filepath.Join(w.uploadDir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", err
	}

	return w.baseURL + "/uploads/" + name, nil
}

func resultExt(gen *entity.Generation, resultURL string) string {
	if u, err := url.Parse(resultURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	if gen.Type == entity.GenerationTypeVideo {
		return ".mp4"
	}
	return ".png"
}

// failGeneration resolves a generation terminally and refunds the locked
// tokens. The refund rides the same transaction as the status CAS, so losing
// the CAS means no refund either: at most one refund per generation.
func (w *generationWorker) failGeneration(ctx context.Context, genID uuid.UUID, reason string) {
	uow := w.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		w.logger.Error("GenerationWorker", "Failed to open failure transaction", map[string]interface{}{
			"generation_id": genID, "error": err.Error(),
		})
		return
	}
	defer uow.Rollback()

	gen, err := uow.GenerationRepository().FindOne(ctx, specification.ByID{ID: genID})
	if err != nil || gen == nil {
		w.logger.Error("GenerationWorker", "Failed to reload generation for failure", map[string]interface{}{"generation_id": genID})
		return
	}

	updates := map[string]interface{}{"error_message": reason, "completed_at": time.Now()}
	won, err := uow.GenerationRepository().TransitionStatus(ctx, genID,
		entity.GenerationStatusProcessing, entity.GenerationStatusFailed, updates)
	if err == nil && !won {
		// Submit-path failures resolve straight from pending.
		won, err = uow.GenerationRepository().TransitionStatus(ctx, genID,
			entity.GenerationStatusPending, entity.GenerationStatusFailed, updates)
	}
	if err != nil {
		w.logger.Error("GenerationWorker", "Failure transition errored", map[string]interface{}{
			"generation_id": genID, "error": err.Error(),
		})
		return
	}
	if !won {
		w.logger.Warn("GenerationWorker", "Generation already resolved, skipping refund", map[string]interface{}{"generation_id": genID})
		return
	}

	if gen.TokensSpent > 0 {
		ref := genID.String()
		desc := fmt.Sprintf("Refund for failed generation (%s)", gen.ModelCode)
		if _, err := applyCredit(ctx, uow, gen.UserId, gen.TokensSpent, entity.OperationRefund, desc, &ref); err != nil {
			w.logger.Error("GenerationWorker", "Refund failed", map[string]interface{}{
				"generation_id": genID, "error": err.Error(),
			})
			return
		}
	}

	if err := uow.Commit(); err != nil {
		w.logger.Error("GenerationWorker", "Failed to commit failure", map[string]interface{}{
			"generation_id": genID, "error": err.Error(),
		})
		return
	}

	w.logger.Info("GenerationWorker", "Generation failed and refunded", map[string]interface{}{
		"generation_id": genID, "reason": reason, "refunded": gen.TokensSpent,
	})
	w.emitEvent(ctx, EventGenerationFailed, map[string]interface{}{
		"generation_id": genID.String(),
		"user_id":       gen.UserId.String(),
		"status":        string(entity.GenerationStatusFailed),
		"error_message": reason,
		"refunded":      gen.TokensSpent,
	})
}

func (w *generationWorker) emitEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if w.eventBus == nil {
		return
	}
	evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	if err := w.eventBus.Publish(ctx, evt); err != nil {
		w.logger.Warn("GenerationWorker", "Failed to publish event", map[string]interface{}{
			"event": eventType, "error": err.Error(),
		})
	}
}

func buildJob(gen *entity.Generation, model *entity.AIModel) provider.Job {
	job := provider.Job{
		Model:        model.ProviderModel,
		AspectRatio:  gen.AspectRatio,
		DurationSecs: gen.DurationSecs,
	}
	if gen.Prompt != nil {
		job.Prompt = *gen.Prompt
	}
	if gen.ImageURL != nil {
		job.ImageURLs = []string{*gen.ImageURL}
	}
	if gen.VideoURL != nil {
		job.VideoURLs = []string{*gen.VideoURL}
	}
	if model.Mode == entity.ModeMotionControl {
		job.Mode = string(entity.ModeMotionControl)
	}
	return job
}
