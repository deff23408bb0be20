// Package monitor runs the periodic alert re-evaluation loop and feeds
// the websocket alert board. Each tick resolves the severity of every
// non-terminal sample on a worker pool, dedupes against the last known
// severity and broadcasts only the changes. Concurrent writers are not
// arbitrated; the last write wins.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/panjf2000/ants/v2"

	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/constant"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/alert"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/core/notify/events"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/factory"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

type Service interface {
	// Run blocks on the tick loop until the context is cancelled.
	Run(ctx context.Context) error
	// Connect upgrades the request to a websocket alert feed session.
	Connect(ctx context.Context)
	// Close drains the pool and the websocket sessions.
	Close(ctx context.Context) error
}

// AlertEvent is the payload pushed to websocket clients and over the
// notify channel when a sample's severity changes.
type AlertEvent struct {
	SampleUUID string     `json:"sample_uuid"`
	Number     string     `json:"number"`
	Severity   string     `json:"severity"`
	Previous   string     `json:"previous"`
	EnteroDue  *time.Time `json:"entero_due,omitempty"`
	YeastDue   *time.Time `json:"yeast_due,omitempty"`
}

var (
	once sync.Once
	mon  *monitorImpl
)

type monitorImpl struct {
	wsClient    *melody.Melody
	sampleStore repo.SampleRepo
	msgCenter   notify.MsgCenter
	severities  *haxmap.Map[int64, alert.Severity]
	pools       *ants.Pool
	tick        time.Duration
	now         func() time.Time
}

func New(ctx context.Context) Service {
	once.Do(func() {
		conf := config.Global().Monitor
		wsClient := melody.New()
		wsClient.Config.MaxMessageSize = constant.MaxMessageSize
		wsClient.Config.PingPeriod = 10 * time.Second

		mon = &monitorImpl{
			wsClient:    wsClient,
			sampleStore: factory.SampleRepo(),
			msgCenter:   events.NewEvents(),
			severities:  haxmap.New[int64, alert.Severity](),
			tick:        time.Duration(conf.TickSeconds) * time.Second,
			now:         time.Now,
		}
		mon.pools, _ = ants.NewPool(conf.PoolSize)
		if mon.pools == nil {
			logger.Errorf(ctx, "failed to create ants pool, using default")
			mon.pools, _ = ants.NewPool(ants.DefaultAntsPoolSize)
		}

		wsClient.HandleError(func(s *melody.Session, err error) {
			if errors.Is(err, melody.ErrMessageBufferFull) {
				return
			}
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseGoingAway {
					return
				}
			}
			if sessCtx, ok := s.Get("ctx"); ok {
				logger.Infof(sessCtx.(context.Context), "alert ws HandleError err: %+v", err)
			}
		})

		// forward broadcasts from other processes to local ws sessions
		if err := mon.msgCenter.Registry(ctx, notify.AlertUpdate, mon.onAlertMsg); err != nil {
			logger.Errorf(ctx, "registry alert-update fail err: %+v", err)
		}
	})
	return mon
}

// newWith builds an unshared instance for tests.
func newWith(store repo.SampleRepo, msgCenter notify.MsgCenter,
	tick time.Duration, now func() time.Time) *monitorImpl {
	m := &monitorImpl{
		sampleStore: store,
		msgCenter:   msgCenter,
		severities:  haxmap.New[int64, alert.Severity](),
		tick:        tick,
		now:         now,
	}
	m.pools, _ = ants.NewPool(4)
	return m
}

func (m *monitorImpl) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	logger.Infof(ctx, "alert monitor started tick: %s", m.tick)
	for {
		select {
		case <-ctx.Done():
			logger.Infof(ctx, "alert monitor stopped")
			return nil
		case <-ticker.C:
			m.evaluate(ctx)
		}
	}
}

func (m *monitorImpl) Connect(ctx context.Context) {
	ginCtx, ok := ctx.(*gin.Context)
	if !ok {
		return
	}
	if err := m.wsClient.HandleRequestWithKeys(ginCtx.Writer, ginCtx.Request, map[string]any{
		"ctx": ctx,
	}); err != nil {
		logger.Errorf(ctx, "alert ws HandleRequestWithKeys fail err: %+v", err)
	}
}

func (m *monitorImpl) Close(ctx context.Context) error {
	if m.wsClient != nil {
		if err := m.wsClient.Close(); err != nil {
			logger.Errorf(ctx, "close alert ws fail err: %+v", err)
		}
	}
	if m.pools != nil {
		m.pools.Release()
	}
	return nil
}

// evaluate resolves every active sample once and emits events for the
// severity changes. One tick waits for all its workers before returning
// so ticks never overlap evaluations.
func (m *monitorImpl) evaluate(ctx context.Context) {
	samples, err := m.sampleStore.ListActive(ctx)
	if err != nil {
		logger.Errorf(ctx, "monitor list active samples fail err: %+v", err)
		return
	}

	now := m.now()
	var wg sync.WaitGroup
	for _, s := range samples {
		s := s
		wg.Add(1)
		submit := func() {
			defer wg.Done()
			m.evaluateOne(ctx, now, s)
		}
		if err := m.pools.Submit(submit); err != nil {
			wg.Done()
			logger.Errorf(ctx, "monitor submit fail sample: %d err: %+v", s.ID, err)
		}
	}
	wg.Wait()
}

func (m *monitorImpl) evaluateOne(ctx context.Context, now time.Time, s *model.Sample) {
	severity := alert.Resolve(now, s)
	previous, loaded := m.severities.Get(s.ID)
	if loaded && previous == severity {
		return
	}
	m.severities.Set(s.ID, severity)

	// first sight of a quiet sample is not an event
	if !loaded && severity == alert.None {
		return
	}

	event := &AlertEvent{
		SampleUUID: s.UUID.String(),
		Number:     s.Number,
		Severity:   severity.String(),
		Previous:   previous.String(),
		EnteroDue:  s.EnteroReadingDue,
		YeastDue:   s.YeastReadingDue,
	}
	if err := m.msgCenter.Broadcast(ctx, &notify.SendMsg{
		Channel:    notify.AlertUpdate,
		SampleUUID: s.UUID,
		Data:       event,
	}); err != nil {
		logger.Errorf(ctx, "monitor broadcast fail sample: %s err: %+v", s.UUID, err)
	}
}

// onAlertMsg relays a pub/sub alert message to the local ws sessions.
func (m *monitorImpl) onAlertMsg(ctx context.Context, msg string) error {
	if m.wsClient == nil {
		return nil
	}
	if err := m.wsClient.Broadcast([]byte(msg)); err != nil {
		logger.Errorf(ctx, "alert ws broadcast fail err: %+v", err)
	}
	return nil
}
