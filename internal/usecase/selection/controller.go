package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"catalog-selection/internal/observability/metrics"
	"catalog-selection/internal/observability/tracing"
	"catalog-selection/internal/repository"
)

// MaxFetchLimit is the largest page size SelectFirstN ever asks the provider for.
const MaxFetchLimit = 100

// Outcome reports whether an operation changed anything.
type Outcome int

const (
	OutcomeNotPerformed Outcome = iota
	OutcomePerformed
)

func (o Outcome) String() string {
	if o == OutcomePerformed {
		return "performed"
	}
	return "not_performed"
}

// Result is the outcome of SelectFirstN.
type Result struct {
	Outcome Outcome
	// Fetched is the number of records the provider returned.
	Fetched int
	// Marked is the number of previously unselected records now selected.
	Marked int
}

// Controller implements the selection operations on top of a Store, a Cursor
// and a RecordProvider. It is safe for concurrent use; concurrent SelectFirstN
// calls and navigations are not serialized against each other.
type Controller struct {
	store    *Store
	cursor   *Cursor
	provider repository.RecordProvider
	logger   *slog.Logger
}

// NewController wires a controller. A nil logger uses slog.Default().
func NewController(store *Store, cursor *Cursor, provider repository.RecordProvider, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	metrics.UpdateSelectedRecords(store.SelectedCount())
	return &Controller{
		store:    store,
		cursor:   cursor,
		provider: provider,
		logger:   logger,
	}
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id int64) bool {
	return c.store.IsSelected(id)
}

// SelectedCount returns the number of selected records across all pages.
func (c *Controller) SelectedCount() int {
	return c.store.SelectedCount()
}

// SelectedIDs returns every selected id in ascending order.
func (c *Controller) SelectedIDs() []int64 {
	return c.store.SelectedIDs()
}

// VisibleIDs returns the ids on the cursor's visible page.
func (c *Controller) VisibleIDs() []int64 {
	return c.cursor.VisibleIDs()
}

// ToggleRow sets the selected state of a single record.
func (c *Controller) ToggleRow(ctx context.Context, id int64, checked bool) Outcome {
	err := c.store.SetSelected(ctx, id, checked)
	c.afterMutation(ctx, "toggle_row", err)
	return OutcomePerformed
}

// SelectAllVisible sets every id in visibleIDs to checked as one batch.
// An empty page is a no-op.
func (c *Controller) SelectAllVisible(ctx context.Context, checked bool, visibleIDs []int64) Outcome {
	if len(visibleIDs) == 0 {
		metrics.RecordSelectionMutation("select_all_visible", false)
		return OutcomeNotPerformed
	}
	err := c.store.SetManySelected(ctx, visibleIDs, checked)
	c.afterMutation(ctx, "select_all_visible", err)
	return OutcomePerformed
}

// AllVisibleSelected is the derived select-all state: true if and only if
// visibleIDs is non-empty and every id in it is selected.
func (c *Controller) AllVisibleSelected(visibleIDs []int64) bool {
	flags, _ := c.store.lookup(visibleIDs)
	return allTrue(flags)
}

// ApplyVisibleSelection applies a table widget's selection-change event: the
// widget reports the full set of checked rows, so every visible id becomes
// selected if it is in checkedIDs and unselected otherwise. Ids that are not
// on the visible page are ignored. One batch.
func (c *Controller) ApplyVisibleSelection(ctx context.Context, checkedIDs []int64) Outcome {
	visible := c.cursor.VisibleIDs()
	if len(visible) == 0 {
		metrics.RecordSelectionMutation("apply_visible_selection", false)
		return OutcomeNotPerformed
	}

	checked := make(map[int64]struct{}, len(checkedIDs))
	for _, id := range checkedIDs {
		checked[id] = struct{}{}
	}

	err := c.store.Update(ctx, func(b *Batch) {
		for _, id := range visible {
			_, ok := checked[id]
			b.Set(id, ok)
		}
	})
	c.afterMutation(ctx, "apply_visible_selection", err)
	return OutcomePerformed
}

// SelectFirstN marks the first n unselected records of the catalog.
//
// Only one page is fetched: page 1 with limit min(n, MaxFetchLimit). The
// records are scanned in catalog order and unselected ones are marked until
// n have been marked or the fetched list runs out. The scan never looks past
// the fetched window, so n above MaxFetchLimit marks at most MaxFetchLimit
// records, and already-selected records inside the window reduce the number
// newly marked.
//
// The fetch happens without holding any lock; the scan and the marks are
// applied against the store's current state as one batch.
func (c *Controller) SelectFirstN(ctx context.Context, n int) (Result, error) {
	if n <= 0 {
		metrics.RecordSelectionMutation("select_first_n", false)
		return Result{Outcome: OutcomeNotPerformed}, nil
	}

	ctx, span := tracing.GetTracer().Start(ctx, "selection.SelectFirstN",
		trace.WithAttributes(attribute.Int("selection.n", n)))
	defer span.End()

	limit := min(n, MaxFetchLimit)
	page, err := c.provider.FetchPage(ctx, 1, limit)
	if err != nil {
		metrics.RecordProviderError("select_first_n")
		metrics.RecordSelectionMutation("select_first_n", false)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WarnContext(ctx, "select first n: fetch failed",
			slog.Int("n", n),
			slog.Int("limit", limit),
			slog.Any("error", err))
		return Result{Outcome: OutcomeNotPerformed}, fmt.Errorf("select first %d: %w", n, err)
	}

	marked := 0
	err = c.store.Update(ctx, func(b *Batch) {
		for _, rec := range page.Records {
			if marked >= n {
				return
			}
			if !b.IsSelected(rec.ID) {
				b.Set(rec.ID, true)
				marked++
			}
		}
	})
	c.afterMutation(ctx, "select_first_n", err)
	metrics.RecordBulkMarked(marked)

	span.SetAttributes(
		attribute.Int("selection.fetched", len(page.Records)),
		attribute.Int("selection.marked", marked),
	)
	c.logger.InfoContext(ctx, "select first n applied",
		slog.Int("n", n),
		slog.Int("fetched", len(page.Records)),
		slog.Int("marked", marked))

	return Result{Outcome: OutcomePerformed, Fetched: len(page.Records), Marked: marked}, nil
}

// Navigate moves the cursor to page and fetches it. A provider failure
// degrades to an empty page with a zero total and is not returned; only an
// invalid page number is an error.
//
// The returned view is built from this call's own response. The cursor is
// only updated if no later navigation has started meanwhile.
func (c *Controller) Navigate(ctx context.Context, page int) (View, error) {
	seq, err := c.cursor.GoToPage(page)
	if err != nil {
		return View{}, err
	}

	result, err := c.provider.FetchPage(ctx, page, c.cursor.PageSize())
	if err != nil {
		metrics.RecordProviderError("navigate")
		c.logger.WarnContext(ctx, "page fetch failed, showing empty page",
			slog.Int("page", page),
			slog.Any("error", err))
		result = repository.Page{}
	}

	if !c.cursor.RecordFetchResult(seq, result) {
		metrics.RecordStaleResponse()
		c.logger.DebugContext(ctx, "discarding stale page response",
			slog.Int("page", page),
			slog.Uint64("seq", seq))
	}

	return buildView(CursorState{
		Page:     page,
		PageSize: c.cursor.PageSize(),
		Total:    max(result.Total, 0),
		Records:  result.Records,
	}, c.store), nil
}

// Current returns the view of the cursor's current page without fetching.
func (c *Controller) Current() View {
	return buildView(c.cursor.State(), c.store)
}

// afterMutation records metrics and logs a failed write-through. The store
// keeps the in-memory change either way, so persistence failures are not
// surfaced to the caller.
func (c *Controller) afterMutation(ctx context.Context, operation string, err error) {
	metrics.RecordSelectionMutation(operation, true)
	metrics.UpdateSelectedRecords(c.store.SelectedCount())
	if err == nil {
		return
	}
	metrics.RecordPersistError()
	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	c.logger.Log(ctx, level, "selection write-through failed",
		slog.String("operation", operation),
		slog.Any("error", err))
}
