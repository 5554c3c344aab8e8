package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db"
	"github.com/Builder-Lawyers/site-builder/internal/infra/metrics"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/Builder-Lawyers/site-builder/pkg/env"
	"github.com/Builder-Lawyers/site-builder/pkg/interfaces"
	"github.com/jackc/pgx/v5"
)

type OutboxPoller struct {
	processors *application.Processors
	uowFactory *dbs.UOWFactory
	cfg        *OutboxConfig
	stop       chan struct{}
	done       chan struct{}
}

type OutboxConfig struct {
	Limit    int
	Interval time.Duration
}

func NewOutboxConfig() *OutboxConfig {
	return &OutboxConfig{
		Limit:    env.GetEnvInt("SCHEDULER_LIMIT", 5),
		Interval: env.GetEnvDuration("SCHEDULER_INTERVAL", 5*time.Second),
	}
}

func NewOutboxPoller(processors *application.Processors, uowFactory *dbs.UOWFactory, cfg *OutboxConfig) *OutboxPoller {
	return &OutboxPoller{
		processors: processors,
		uowFactory: uowFactory,
		cfg:        cfg,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start polls until Stop is called. A poll in progress is cancelled on stop.
func (o *OutboxPoller) Start() {
	slog.Info("Starting outbox poller...", "interval", o.cfg.Interval, "limit", o.cfg.Limit)
	ticker := time.NewTicker(o.cfg.Interval)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		ticker.Stop()
		cancel()
		close(o.done)
	}()

	polled := make(chan struct{}, 1)
	polled <- struct{}{}
	for {
		select {
		case <-ticker.C:
			select {
			case <-polled:
				go func() {
					defer func() { polled <- struct{}{} }()
					o.Poll(ctx)
				}()
			default:
				slog.Debug("previous poll still running")
			}
		case <-o.stop:
			slog.Info("Cancelling current execution")
			cancel()
			<-polled
			return
		}
	}
}

// Poll claims one batch of events and handles it. Events of the same site run
// in order; different sites run in parallel.
func (o *OutboxPoller) Poll(ctx context.Context) int {
	batch, err := o.claim(ctx)
	if err != nil {
		slog.Error("error in poller", "err", err)
		return 0
	}
	if len(batch) == 0 {
		slog.Debug("no events to process")
		return 0
	}

	groups := map[string][]db.Outbox{}
	var order []string
	for _, ev := range batch {
		key := siteKey(ev)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], ev)
	}

	var wg sync.WaitGroup
	for _, key := range order {
		wg.Add(1)
		go func(evs []db.Outbox) {
			defer wg.Done()
			for _, ev := range evs {
				if err := o.handleEvent(ctx, ev); err != nil {
					slog.Error("handler error", "event", ev.ID, "err", err)
				}
			}
		}(groups[key])
	}
	wg.Wait()

	slog.Debug("Finished poller thread processing", "events", len(batch))
	return len(batch)
}

func (o *OutboxPoller) claim(ctx context.Context) (_ []db.Outbox, err error) {
	uow := o.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	query := "SELECT id, event, status, payload, created_at FROM builder.outbox WHERE status = $1 ORDER BY created_at, id LIMIT $2 FOR NO KEY UPDATE SKIP LOCKED"
	rows, err := tx.Query(ctx, query, consts.NotProcessed, o.cfg.Limit)
	if err != nil {
		return nil, err
	}
	batch, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Outbox, error) {
		var ev db.Outbox
		err := row.Scan(&ev.ID, &ev.Event, &ev.Status, &ev.Payload, &ev.CreatedAt)
		return ev, err
	})
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(batch))
	for _, ev := range batch {
		ids = append(ids, int64(ev.ID))
	}
	if _, err = tx.Exec(ctx, "UPDATE builder.outbox SET status = $1 WHERE id = ANY($2)", consts.Processing, ids); err != nil {
		return nil, err
	}
	return batch, nil
}

func siteKey(ev db.Outbox) string {
	var p struct {
		SiteID string `json:"siteID"`
	}
	if err := json.Unmarshal(ev.Payload, &p); err != nil || p.SiteID == "" {
		return "event-" + strconv.FormatUint(ev.ID, 10)
	}
	return p.SiteID
}

func (o *OutboxPoller) handleEvent(ctx context.Context, outbox db.Outbox) error {
	var (
		uow interfaces.UoW
		tx  pgx.Tx
		err error
	)

	slog.Info("Handling event", "event", outbox.Event, "id", outbox.ID)

	switch outbox.Event {
	case events.SitePublished{}.GetType():
		var event events.SitePublished
		if event, err = db.MapOutboxModelToSitePublished(outbox); err == nil {
			uow, err = o.processors.PublishSnapshot.Handle(ctx, event)
		}
	case events.SiteUnpublished{}.GetType():
		var event events.SiteUnpublished
		if event, err = db.MapOutboxModelToSiteUnpublished(outbox); err == nil {
			uow, err = o.processors.RemoveSnapshot.Handle(ctx, event)
		}
	case events.SiteDeleted{}.GetType():
		var event events.SiteDeleted
		if event, err = db.MapOutboxModelToSiteDeleted(outbox); err == nil {
			uow, err = o.processors.PurgeSite.Handle(ctx, event)
		}
	default:
		err = errors.New("unknown event type " + outbox.Event)
	}

	status := statusFor(err)
	if err != nil {
		slog.Error("error in handler", "event", outbox.Event, "id", outbox.ID, "status", status, "err", err)
	}
	metrics.OutboxEventsTotal.WithLabelValues(outbox.Event, statusLabel(status)).Inc()

	if uow == nil {
		var errTx error
		// open new transaction if there was none in event handler
		uow = o.uowFactory.GetUoW()
		tx, errTx = uow.Begin(context.WithoutCancel(ctx))
		if errTx != nil {
			return errors.Join(err, errTx)
		}
	} else {
		tx = uow.GetTx()
	}

	_, errUpd := tx.Exec(context.WithoutCancel(ctx), "UPDATE builder.outbox SET status = $1 WHERE id = $2", status, outbox.ID)
	if errUpd != nil {
		return errors.Join(err, errUpd, uow.Rollback())
	}
	if errCommit := uow.Commit(); errCommit != nil {
		return errors.Join(err, errCommit)
	}

	slog.Info("processed event", "id", outbox.ID, "status", statusLabel(status))
	return nil
}

// statusFor leaves retryable failures and cancelled runs for the next poll.
func statusFor(err error) consts.OutboxStatus {
	var r errs.RetryableError
	switch {
	case err == nil:
		return consts.Processed
	case errors.As(err, &r), errors.Is(err, context.Canceled):
		return consts.NotProcessed
	}
	return consts.InError
}

func statusLabel(s consts.OutboxStatus) string {
	switch s {
	case consts.Processed:
		return "processed"
	case consts.NotProcessed:
		return "retry"
	case consts.InError:
		return "error"
	}
	return "processing"
}

func (o *OutboxPoller) Stop() {
	slog.Info("Stopping poller")
	close(o.stop)
	<-o.done
}
