package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marroking/internal/events"
	"marroking/internal/logger"
	"marroking/internal/models"
	"marroking/internal/services/meli"
	"marroking/internal/store"
)

var (
	// ErrNotLinked mirrors store.ErrNotLinked at the engine boundary.
	ErrNotLinked = store.ErrNotLinked

	// ErrUpstream means the remote catalog could not be listed; nothing
	// was written.
	ErrUpstream = errors.New("mercadolibre unavailable")

	// ErrSyncFailed means the write transaction was rolled back.
	ErrSyncFailed = errors.New("sync transaction failed")

	// ErrInProgress rejects a second reconciliation while one is running.
	ErrInProgress = errors.New("sync already in progress")
)

// Report summarizes one reconciliation run. Items counts remote items
// discovered; Saved counts normalized rows written, which is larger when
// variations exist.
type Report struct {
	RunID   string `json:"run_id"`
	Items   int    `json:"items_en_meli"`
	Saved   int    `json:"variaciones_guardadas"`
	Skipped int    `json:"skipped"`
}

// Engine reconciles the local product catalog against the remote one. At
// most one run is in flight at a time.
type Engine struct {
	db          *gorm.DB
	client      *meli.Client
	transformer *meli.Transformer
	credentials *store.CredentialStore
	publisher   *events.Publisher
	logger      *logger.Logger
	mu          sync.Mutex
}

func NewEngine(db *gorm.DB, client *meli.Client, credentials *store.CredentialStore, publisher *events.Publisher, logger *logger.Logger) *Engine {
	return &Engine{
		db:          db,
		client:      client,
		transformer: meli.NewTransformer(),
		credentials: credentials,
		publisher:   publisher,
		logger:      logger,
	}
}

// Run lists the whole remote catalog, fetches each item, normalizes it
// into product rows, and upserts them all in a single transaction. Listing
// failures abort before anything is written; per-item fetch failures are
// skipped so one bad item cannot sink the run.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	if !e.mu.TryLock() {
		return nil, ErrInProgress
	}
	defer e.mu.Unlock()

	accessToken, userID, err := e.credentials.Link()
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	e.logger.Info("Sync %s: listing items for user %s", runID, userID)

	itemIDs, err := e.client.ListItemIDs(ctx, accessToken, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	report := &Report{RunID: runID, Items: len(itemIDs)}

	var records []models.Product
	for _, itemID := range itemIDs {
		item, err := e.client.GetItem(ctx, accessToken, itemID)
		if err != nil {
			e.logger.Warn("Sync %s: skipping item %s: %v", runID, itemID, err)
			report.Skipped++
			continue
		}
		records = append(records, e.transformer.Normalize(item)...)
	}

	if err := e.upsertAll(records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	report.Saved = len(records)

	e.logger.Info("Sync %s: %d items, %d rows saved, %d skipped",
		runID, report.Items, report.Saved, report.Skipped)

	e.publisher.PublishSyncCompleted(ctx, events.SyncCompleted{
		RunID:   runID,
		Items:   report.Items,
		Saved:   report.Saved,
		Skipped: report.Skipped,
	})

	return report, nil
}

// upsertAll writes every record in one transaction, keyed on meli_id.
// Existing rows get name/price/stock/status overwritten; brand, size,
// color and created_at are manual-entry fields sync never touches.
func (e *Engine) upsertAll(records []models.Product) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "meli_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "price", "stock", "status"}),
			}).Create(&records[i]).Error
			if err != nil {
				return fmt.Errorf("failed to upsert %s: %w", *records[i].MeliID, err)
			}
		}
		return nil
	})
}
