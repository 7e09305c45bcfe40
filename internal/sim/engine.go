// Package sim generates mock live values for stored PLC variables and pushes
// them to dashboard clients. No real OPC UA traffic is involved.
package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plc-dashboard/backend/internal/models"
)

// Broadcaster delivers value frames to connected clients.
type Broadcaster interface {
	BroadcastValues(plcID string, updates []models.ValueUpdate)
}

// PLCSource supplies the PLCs to simulate and records their liveness.
type PLCSource interface {
	List(ctx context.Context) ([]models.NormalizedPLC, error)
	UpdateStatus(ctx context.Context, id string, status models.PLCStatus, connected bool, lastChecked time.Time) error
}

// Engine periodically samples mock values for every stored PLC.
type Engine struct {
	store    PLCSource
	hub      Broadcaster
	interval time.Duration
	rng      *rand.Rand
}

// NewEngine creates a simulation engine. A zero interval defaults to 2s.
func NewEngine(store PLCSource, hub Broadcaster, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Engine{
		store:    store,
		hub:      hub,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks until the context is cancelled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	logrus.WithField("interval", e.interval).Info("value simulator started")
	for {
		select {
		case <-ctx.Done():
			logrus.Info("value simulator stopped")
			return
		case <-ticker.C:
			e.tick(ctx)
		}
	}
}

func (e *Engine) tick(ctx context.Context) {
	plcs, err := e.store.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("simulator failed to list PLCs")
		return
	}

	now := time.Now()
	for _, plc := range plcs {
		updates := GenerateValues(plc, e.rng, now)
		e.hub.BroadcastValues(plc.ID, updates)

		if err := e.store.UpdateStatus(ctx, plc.ID, models.PLCStatusActive, true, now); err != nil {
			logrus.WithError(err).WithField("plc", plc.ID).Warn("simulator failed to update status")
		}
	}
}

// GenerateValues produces one mock sample per variable. Channel parents get
// a random word; their bit children read the matching bit of that word so a
// frame stays internally consistent. Bools flip randomly and unrecognized
// kinds get a small random integer.
func GenerateValues(plc models.NormalizedPLC, rng *rand.Rand, now time.Time) []models.ValueUpdate {
	ts := now.UnixMilli()
	words := make(map[string]uint16)

	updates := make([]models.ValueUpdate, 0, len(plc.Variables))
	for _, v := range plc.Variables {
		var value interface{}
		switch {
		case v.ParentID != "" && v.BitPosition != nil:
			word, ok := words[v.ParentID]
			if !ok {
				word = uint16(rng.Intn(1 << 16))
				words[v.ParentID] = word
			}
			value = word&(1<<uint(*v.BitPosition)) != 0
		case v.Type == models.KindChannel:
			word, ok := words[v.ID]
			if !ok {
				word = uint16(rng.Intn(1 << 16))
				words[v.ID] = word
			}
			value = word
		case v.Type == models.KindBool:
			value = rng.Intn(2) == 1
		default:
			value = rng.Intn(100)
		}

		updates = append(updates, models.ValueUpdate{
			VariableID:  v.ID,
			OPCUARegAdd: v.OPCUARegAdd,
			Kind:        v.Type,
			Value:       value,
			TimestampMs: ts,
		})
	}
	return updates
}
