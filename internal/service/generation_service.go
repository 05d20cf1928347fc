package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IGenerationService interface {
	// Create debits the user and persists a pending generation in one
	// transaction, then hands the work to the background worker. On any error
	// nothing is charged.
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGenerationRequest) (*entity.Generation, error)
	GetById(ctx context.Context, userId, id uuid.UUID) (*entity.Generation, error)
	List(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Generation, int64, error)
}

type generationService struct {
	uowFactory   unitofwork.RepositoryFactory
	modelService IAIModelService
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	modelService IAIModelService,
	publisher IPublisherService,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:   uowFactory,
		modelService: modelService,
		publisher:    publisher,
		logger:       log,
	}
}

func (s *generationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGenerationRequest) (*entity.Generation, error) {
	model, err := s.modelService.GetByCode(ctx, req.ModelCode)
	if err != nil {
		return nil, err
	}
	if !model.IsEnabled {
		return nil, entity.ErrModelDisabled
	}

	gen, err := s.buildGeneration(ctx, userId, model, req)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	ref := gen.Id.String()
	desc := fmt.Sprintf("Generation %s (%s)", model.Name, model.Code)
	if _, err := applyDebit(ctx, uow, userId, gen.TokensSpent, entity.OperationGeneration, desc, &ref); err != nil {
		return nil, err
	}

	if err := uow.GenerationRepository().Create(ctx, gen); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("Generation", "Generation created", map[string]interface{}{
		"generation_id": gen.Id, "user_id": userId, "model": model.Code, "tokens": gen.TokensSpent,
	})

	payload, err := json.Marshal(dto.PublishGenerationMessage{GenerationId: gen.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		// The row is committed and charged but no worker will ever see it.
		// Resolve it here so the tokens are not locked behind a dead row.
		s.logger.Error("Generation", "Failed to enqueue generation task", map[string]interface{}{
			"generation_id": gen.Id, "error": err.Error(),
		})
		s.abortUnqueued(ctx, gen, model)
		return nil, err
	}

	return gen, nil
}

// abortUnqueued fails a committed generation that never reached the queue and
// refunds its debit. The pending-to-failed CAS and the refund share one
// transaction, so a worker that somehow raced us wins cleanly and we refund
// nothing twice.
func (s *generationService) abortUnqueued(ctx context.Context, gen *entity.Generation, model *entity.AIModel) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.logger.Error("Generation", "Failed to open abort transaction", map[string]interface{}{
			"generation_id": gen.Id, "error": err.Error(),
		})
		return
	}
	defer uow.Rollback()

	won, err := uow.GenerationRepository().TransitionStatus(ctx, gen.Id,
		entity.GenerationStatusPending, entity.GenerationStatusFailed,
		map[string]interface{}{"error_message": "failed to queue for processing", "completed_at": time.Now()},
	)
	if err != nil {
		s.logger.Error("Generation", "Abort transition errored", map[string]interface{}{
			"generation_id": gen.Id, "error": err.Error(),
		})
		return
	}
	if !won {
		return
	}

	if gen.TokensSpent > 0 {
		ref := gen.Id.String()
		desc := fmt.Sprintf("Refund for failed generation (%s)", model.Code)
		if _, err := applyCredit(ctx, uow, gen.UserId, gen.TokensSpent, entity.OperationRefund, desc, &ref); err != nil {
			s.logger.Error("Generation", "Abort refund failed", map[string]interface{}{
				"generation_id": gen.Id, "error": err.Error(),
			})
			return
		}
	}

	if err := uow.Commit(); err != nil {
		s.logger.Error("Generation", "Failed to commit abort", map[string]interface{}{
			"generation_id": gen.Id, "error": err.Error(),
		})
	}
}

// buildGeneration validates the request against the model's capability flags
// and locks in the price. Validation dispatches on the model mode.
func (s *generationService) buildGeneration(ctx context.Context, userId uuid.UUID, model *entity.AIModel, req *dto.CreateGenerationRequest) (*entity.Generation, error) {
	prompt := strings.TrimSpace(req.Prompt)
	imageURL := strings.TrimSpace(req.ImageURL)
	videoURL := strings.TrimSpace(req.VideoURL)

	gen := &entity.Generation{
		Id:        uuid.New(),
		UserId:    userId,
		ModelCode: model.Code,
		Type:      model.Type,
		Status:    entity.GenerationStatusPending,
		CreatedAt: time.Now(),
	}
	if prompt != "" {
		gen.Prompt = &prompt
	}
	if imageURL != "" {
		gen.ImageURL = &imageURL
	}
	if videoURL != "" {
		gen.VideoURL = &videoURL
	}

	switch model.Mode {
	case entity.ModeTextToImage, entity.ModeTextToVideo:
		if prompt == "" {
			return nil, fmt.Errorf("%w: prompt", entity.ErrMissingInput)
		}
	case entity.ModeImageToImage, entity.ModeImageToVideo:
		if prompt == "" {
			return nil, fmt.Errorf("%w: prompt", entity.ErrMissingInput)
		}
		if imageURL == "" {
			return nil, fmt.Errorf("%w: image_url", entity.ErrMissingInput)
		}
	case entity.ModeMotionControl:
		if imageURL == "" {
			return nil, fmt.Errorf("%w: image_url", entity.ErrMissingInput)
		}
		if videoURL == "" {
			return nil, fmt.Errorf("%w: video_url", entity.ErrMissingInput)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported mode %q", entity.ErrInvalidInput, model.Mode)
	}

	if len(model.AspectRatios) > 0 {
		ratio := req.AspectRatio
		if ratio == "" {
			ratio = model.DefaultAspectRatio()
		}
		if !model.SupportsAspectRatio(ratio) {
			return nil, fmt.Errorf("%w: aspect ratio %q", entity.ErrInvalidInput, ratio)
		}
		gen.AspectRatio = ratio
	}

	if model.Mode == entity.ModeMotionControl {
		// The reference video drives the price: the caller-supplied duration is
		// ignored and the measured duration from the upload record is billed.
		upload, err := s.uowFactory.NewUnitOfWork(ctx).UploadedFileRepository().FindByURL(ctx, videoURL)
		if err != nil {
			return nil, err
		}
		if upload == nil || upload.DurationSecs <= 0 {
			return nil, fmt.Errorf("%w: reference video has no measured duration", entity.ErrInvalidInput)
		}
		gen.DurationSecs = BilledSeconds(upload.DurationSecs)
		if gen.DurationSecs < 1 {
			gen.DurationSecs = 1
		}
	} else if model.Type == entity.GenerationTypeVideo {
		duration := req.Duration
		if duration == 0 && len(model.Durations) > 0 {
			duration = model.Durations[0]
		}
		if !model.SupportsDuration(duration) {
			return nil, fmt.Errorf("%w: duration %ds", entity.ErrInvalidInput, duration)
		}
		gen.DurationSecs = duration
	}

	gen.TokensSpent = Cost(model, gen.DurationSecs)
	return gen, nil
}

func (s *generationService) GetById(ctx context.Context, userId, id uuid.UUID) (*entity.Generation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gen, err := uow.GenerationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, entity.ErrNotFound
	}
	return gen, nil
}

func (s *generationService) List(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Generation, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.GenerationRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, 0, err
	}

	rows, err := uow.GenerationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
