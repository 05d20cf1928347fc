package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"
	"tg-miniapp-be/pkg/provider"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider answers Submit immediately and serves a scripted Poll result.
type stubProvider struct {
	mu        sync.Mutex
	name      string
	submitErr error
	status    provider.Status
	pollErr   error
	submitted []provider.Job
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Submit(ctx context.Context, job provider.Job) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.submitErr != nil {
		return "", p.submitErr
	}
	p.submitted = append(p.submitted, job)
	return "task-" + uuid.New().String(), nil
}

func (p *stubProvider) Poll(ctx context.Context, taskID string) (provider.Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pollErr != nil {
		return provider.Status{}, p.pollErr
	}
	return p.status, nil
}

type workerFixture struct {
	factory   unitofwork.RepositoryFactory
	svc       IGenerationService
	models    IAIModelService
	worker    *generationWorker
	uploadDir string
	poyoStub  *stubProvider
	kieStub   *stubProvider
}

func newWorkerFixture(t *testing.T, workerCfg config.WorkerConfig) *workerFixture {
	t.Helper()

	factory := newTestFactory(t)
	modelService := seedCatalog(t, factory)
	log := testLogger(t)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	const topic = "generation-tasks-test"

	poyoStub := &stubProvider{name: string(entity.ProviderPoyo)}
	kieStub := &stubProvider{name: string(entity.ProviderKie)}
	registry := provider.NewRegistry(poyoStub, kieStub)

	uploadDir := t.TempDir()
	worker := NewGenerationWorker(pubSub, topic, factory, modelService, registry, nil, workerCfg, uploadDir, "http://localhost:3000", log)
	require.NoError(t, worker.Consume(context.Background()))

	svc := NewGenerationService(factory, modelService, NewPublisherService(pubSub, topic), log)

	return &workerFixture{
		factory:   factory,
		svc:       svc,
		models:    modelService,
		worker:    worker.(*generationWorker),
		uploadDir: uploadDir,
		poyoStub:  poyoStub,
		kieStub:   kieStub,
	}
}

func fastWorkerConfig() config.WorkerConfig {
	return config.WorkerConfig{
		PollInterval:    10 * time.Millisecond,
		ImageTimeout:    2 * time.Second,
		VideoTimeout:    2 * time.Second,
		DownloadTimeout: 500 * time.Millisecond,
	}
}

func (f *workerFixture) waitForTerminal(t *testing.T, userId, genId uuid.UUID) *entity.Generation {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		gen, err := f.svc.GetById(context.Background(), userId, genId)
		require.NoError(t, err)
		if gen.Status.IsTerminal() {
			return gen
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("generation never reached a terminal state")
	return nil
}

func TestWorkerSuccessPath(t *testing.T) {
	f := newWorkerFixture(t, fastWorkerConfig())
	f.poyoStub.status = provider.Status{
		State:      provider.StateDone,
		ResultURLs: []string{"https://cdn.vendor/result.png"},
	}

	user := createTestUser(t, f.factory, 50)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)

	final := f.waitForTerminal(t, user.Id, gen.Id)
	assert.Equal(t, entity.GenerationStatusSuccess, final.Status)
	require.NotNil(t, final.ResultURL)
	assert.Equal(t, "https://cdn.vendor/result.png", *final.ResultURL)
	assert.NotNil(t, final.CompletedAt)
	// The vendor host is unreachable here, so no local copy was stored and
	// the gallery falls back to the vendor url.
	assert.Nil(t, final.ResultFileURL)

	// The result landed in the gallery and the debit stands.
	uow := f.factory.NewUnitOfWork(ctx)
	items, err := uow.GalleryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, gen.Id, items[0].GenerationId)
	assert.Equal(t, entity.FileTypeImage, items[0].FileType)
	assert.Equal(t, "https://cdn.vendor/result.png", items[0].FileURL)

	reloaded, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 46, reloaded.Balance)
}

func TestWorkerVendorFailureRefundsOnce(t *testing.T) {
	f := newWorkerFixture(t, fastWorkerConfig())
	f.poyoStub.status = provider.Status{
		State:      provider.StateFailed,
		FailReason: "content policy violation",
	}

	user := createTestUser(t, f.factory, 50)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)

	final := f.waitForTerminal(t, user.Id, gen.Id)
	assert.Equal(t, entity.GenerationStatusFailed, final.Status)
	require.NotNil(t, final.ErrorMessage)
	assert.Equal(t, "content policy violation", *final.ErrorMessage)

	uow := f.factory.NewUnitOfWork(ctx)
	reloaded, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Balance)

	// Exactly one debit and one refund, both referencing the generation.
	rows, err := uow.BalanceHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.OperationGeneration, rows[0].OperationType)
	assert.Equal(t, entity.OperationRefund, rows[1].OperationType)
	assert.Equal(t, 4, rows[1].Amount)
	assert.Equal(t, 50, rows[1].BalanceAfter)

	// No gallery item for a failed generation.
	items, err := uow.GalleryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWorkerSubmitFailureRefunds(t *testing.T) {
	f := newWorkerFixture(t, fastWorkerConfig())
	f.poyoStub.submitErr = context.DeadlineExceeded

	user := createTestUser(t, f.factory, 50)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)

	final := f.waitForTerminal(t, user.Id, gen.Id)
	assert.Equal(t, entity.GenerationStatusFailed, final.Status)

	uow := f.factory.NewUnitOfWork(ctx)
	reloaded, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Balance)
}

func TestWorkerTimeoutRefunds(t *testing.T) {
	cfg := fastWorkerConfig()
	cfg.ImageTimeout = 100 * time.Millisecond

	f := newWorkerFixture(t, cfg)
	// Vendor never finishes.
	f.poyoStub.status = provider.Status{State: provider.StateRunning}

	user := createTestUser(t, f.factory, 50)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)

	final := f.waitForTerminal(t, user.Id, gen.Id)
	assert.Equal(t, entity.GenerationStatusFailed, final.Status)
	require.NotNil(t, final.ErrorMessage)
	assert.Equal(t, "generation timed out", *final.ErrorMessage)

	uow := f.factory.NewUnitOfWork(ctx)
	reloaded, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Balance)
}

func TestWorkerStoresLocalArtifact(t *testing.T) {
	artifact := []byte("rendered image bytes")
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/out/result.png", r.URL.Path)
		w.Write(artifact)
	}))
	defer cdn.Close()

	f := newWorkerFixture(t, fastWorkerConfig())
	f.poyoStub.status = provider.Status{
		State:      provider.StateDone,
		ResultURLs: []string{cdn.URL + "/out/result.png"},
	}

	user := createTestUser(t, f.factory, 50)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)

	final := f.waitForTerminal(t, user.Id, gen.Id)
	assert.Equal(t, entity.GenerationStatusSuccess, final.Status)
	require.NotNil(t, final.ResultURL)
	assert.Equal(t, cdn.URL+"/out/result.png", *final.ResultURL)

	require.NotNil(t, final.ResultFileURL)
	assert.True(t, strings.HasPrefix(*final.ResultFileURL, "http://localhost:3000/uploads/"), *final.ResultFileURL)

	stored, err := os.ReadFile(filepath.Join(f.uploadDir, gen.Id.String()+".png"))
	require.NoError(t, err)
	assert.Equal(t, artifact, stored)

	// The gallery points at our copy, not the expiring vendor url.
	uow := f.factory.NewUnitOfWork(ctx)
	items, err := uow.GalleryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, *final.ResultFileURL, items[0].FileURL)
}

func TestWorkerProcessesConcurrently(t *testing.T) {
	cfg := fastWorkerConfig()
	cfg.ImageTimeout = 10 * time.Second

	f := newWorkerFixture(t, cfg)
	// The image job never finishes; the video job completes immediately.
	f.poyoStub.status = provider.Status{State: provider.StateRunning}
	f.kieStub.status = provider.Status{
		State:      provider.StateDone,
		ResultURLs: []string{"https://cdn.vendor/clip.mp4"},
	}

	user := createTestUser(t, f.factory, 500)
	ctx := context.Background()

	slow, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)

	fast, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "veo3-fast",
		Prompt:    "waves crashing",
	})
	require.NoError(t, err)

	// The second generation finishes while the first is still polling.
	final := f.waitForTerminal(t, user.Id, fast.Id)
	assert.Equal(t, entity.GenerationStatusSuccess, final.Status)

	stuck, err := f.svc.GetById(ctx, user.Id, slow.Id)
	require.NoError(t, err)
	assert.False(t, stuck.Status.IsTerminal())
}

func TestWorkerIgnoresLateSuccessAfterTimeout(t *testing.T) {
	cfg := fastWorkerConfig()
	cfg.ImageTimeout = 100 * time.Millisecond

	f := newWorkerFixture(t, cfg)
	f.poyoStub.status = provider.Status{State: provider.StateRunning}

	user := createTestUser(t, f.factory, 50)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)

	final := f.waitForTerminal(t, user.Id, gen.Id)
	require.Equal(t, entity.GenerationStatusFailed, final.Status)

	// The vendor finishes after the refund already happened. The terminal CAS
	// makes this a no-op: no status change, no gallery row, no extra ledger row.
	f.worker.succeedGeneration(ctx, gen.Id, []string{"https://cdn.vendor/late.png"})

	reloaded, err := f.svc.GetById(ctx, user.Id, gen.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.GenerationStatusFailed, reloaded.Status)
	assert.Nil(t, reloaded.ResultURL)

	uow := f.factory.NewUnitOfWork(ctx)
	rows, err := uow.BalanceHistoryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	items, err := uow.GalleryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	assert.Empty(t, items)

	reloadedUser, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 50, reloadedUser.Balance)
}

func TestTerminalGenerationIsImmutable(t *testing.T) {
	f := newWorkerFixture(t, fastWorkerConfig())
	user := createTestUser(t, f.factory, 0)
	ctx := context.Background()

	resultURL := "https://cdn.vendor/done.png"
	gen := &entity.Generation{
		Id:        uuid.New(),
		UserId:    user.Id,
		ModelCode: "nano-banana",
		Type:      entity.GenerationTypeImage,
		Status:    entity.GenerationStatusSuccess,
		ResultURL: &resultURL,
	}
	uow := f.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.GenerationRepository().Create(ctx, gen))

	for _, from := range []entity.GenerationStatus{
		entity.GenerationStatusPending,
		entity.GenerationStatusProcessing,
	} {
		moved, err := uow.GenerationRepository().TransitionStatus(ctx, gen.Id, from, entity.GenerationStatusFailed,
			map[string]interface{}{"error_message": "should never land"})
		require.NoError(t, err)
		assert.False(t, moved)
	}

	reloaded, err := uow.GenerationRepository().FindOne(ctx, specification.ByID{ID: gen.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.GenerationStatusSuccess, reloaded.Status)
	require.NotNil(t, reloaded.ResultURL)
	assert.Equal(t, resultURL, *reloaded.ResultURL)
	assert.Nil(t, reloaded.ErrorMessage)
}

func TestWorkerRefundsPriceLockedAtCreation(t *testing.T) {
	f := newWorkerFixture(t, fastWorkerConfig())
	f.poyoStub.status = provider.Status{
		State:      provider.StateFailed,
		FailReason: "capacity exceeded",
	}

	user := createTestUser(t, f.factory, 50)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode: "nano-banana",
		Prompt:    "a lighthouse in fog",
	})
	require.NoError(t, err)
	require.Equal(t, 4, gen.TokensSpent)

	// A price hike between creation and failure must not change the refund.
	require.NoError(t, f.models.UpdatePrice(ctx, "nano-banana", 99))

	final := f.waitForTerminal(t, user.Id, gen.Id)
	assert.Equal(t, entity.GenerationStatusFailed, final.Status)
	assert.Equal(t, 4, final.TokensSpent)

	uow := f.factory.NewUnitOfWork(ctx)
	reloaded, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Balance)

	rows, err := uow.BalanceHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.OperationRefund, rows[0].OperationType)
	assert.Equal(t, 4, rows[0].Amount)
}

func TestWorkerPassesJobFields(t *testing.T) {
	f := newWorkerFixture(t, fastWorkerConfig())
	f.kieStub.status = provider.Status{
		State:      provider.StateDone,
		ResultURLs: []string{"https://cdn.vendor/clip.mp4"},
	}

	user := createTestUser(t, f.factory, 500)
	ctx := context.Background()

	gen, err := f.svc.Create(ctx, user.Id, &dto.CreateGenerationRequest{
		ModelCode:   "veo3-fast",
		Prompt:      "waves crashing",
		AspectRatio: "9:16",
	})
	require.NoError(t, err)

	f.waitForTerminal(t, user.Id, gen.Id)

	f.kieStub.mu.Lock()
	defer f.kieStub.mu.Unlock()
	require.Len(t, f.kieStub.submitted, 1)
	job := f.kieStub.submitted[0]
	assert.Equal(t, "veo3_fast", job.Model)
	assert.Equal(t, "waves crashing", job.Prompt)
	assert.Equal(t, "9:16", job.AspectRatio)
	assert.Equal(t, 8, job.DurationSecs)
}
