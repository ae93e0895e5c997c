package scanner

import (
	"log"
	"runtime/debug"
	"sync"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils"

	"github.com/jmoiron/sqlx"
)

const workerLimit = 5 // per-phase concurrent entity fan-out

// Engine walks persisted state and reconciles it against live guild state.
// All collaborators are injected at startup; the engine holds no globals.
type Engine struct {
	db     *sqlx.DB
	client GuildClient
	cfg    model.ConfigProvider
	audit  *utils.AuditLogger
}

func New(db *sqlx.DB, client GuildClient, cfg model.ConfigProvider, audit *utils.AuditLogger) *Engine {
	return &Engine{db: db, client: client, cfg: cfg, audit: audit}
}

// RunTimedChain executes the slow chain: tickets, then temporary roles, then
// strike decay. Each phase fully settles before the next one starts.
func (e *Engine) RunTimedChain() {
	e.runPhase("tickets", e.reconcileTickets)
	e.runPhase("temp_roles", e.reconcileTempRoles)
	e.runPhase("strikes", e.decayStrikes)
}

// RunRegularChain executes the fast chain: verification links, expired
// sanctions, then point decay.
func (e *Engine) RunRegularChain() {
	e.runPhase("verification", e.reconcileVerification)
	e.runPhase("sanctions", e.expireSanctions)
	e.runPhase("points", e.decayPoints)
}

// runPhase contains a phase failure so it never blocks the next phase or the
// next cycle. One bad row, one panic, one remote outage stays local.
func (e *Engine) runPhase(name string, fn func() error) {
	start := time.Now()
	defer func() {
		utils.Metrics().PhaseDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			utils.Metrics().PhasePanics.WithLabelValues(name).Inc()
			log.Printf("Recovered panic in %s phase: %v\n%s", name, r, debug.Stack())
		}
	}()
	if err := fn(); err != nil {
		log.Printf("Error in %s phase: %v", name, err)
	}
}

// forEach dispatches per-entity work with a bounded worker pool and waits for
// all of it to settle.
func (e *Engine) forEach(n int, fn func(i int)) {
	var wg sync.WaitGroup
	guard := make(chan struct{}, workerLimit)

	for i := 0; i < n; i++ {
		wg.Add(1)
		guard <- struct{}{}

		go func(i int) {
			defer func() {
				<-guard
				wg.Done()
			}()
			fn(i)
		}(i)
	}

	wg.Wait()
}

func (e *Engine) countAction(phase, result string) {
	utils.Metrics().Actions.WithLabelValues(phase, result).Inc()
}
