package bot

import (
	"log"
	"sync"
	"time"

	"guardian-bot/tasks"

	"github.com/robfig/cron/v3"
)

const defaultSampleInterval = 30 * time.Second

// Scheduler drives the two reconciliation chains and the ping sampler.
type Scheduler struct {
	bot     *Bot
	cron    *cron.Cron
	done    chan struct{}
	wg      sync.WaitGroup
	offsets []*time.Timer
}

func NewScheduler(bot *Bot) *Scheduler {
	return &Scheduler{bot: bot, done: make(chan struct{})}
}

// Start wires the periodic chains. Phases within a chain run strictly in
// sequence; the two chains are independent of each other, and no cross-cycle
// lock is taken, so a cycle overrunning its period may overlap the next one.
func (s *Scheduler) Start() {
	cfg := s.bot.GetConfig().Reconcile

	timed := cfg.TimedInterval
	if timed <= 0 {
		timed = 10 * time.Minute
	}
	regular := cfg.RegularInterval
	if regular <= 0 {
		regular = 3 * time.Minute
	}

	s.cron = cron.New()
	s.cron.Schedule(cron.Every(timed), cron.FuncJob(s.bot.Engine.RunTimedChain))
	s.cron.Schedule(cron.Every(regular), cron.FuncJob(s.bot.Engine.RunRegularChain))
	s.cron.Start()

	// Staggered first runs so both chains do not hit the API together at startup.
	timedOffset := cfg.TimedOffset
	if timedOffset <= 0 {
		timedOffset = 90 * time.Second
	}
	regularOffset := cfg.RegularOffset
	if regularOffset <= 0 {
		regularOffset = 30 * time.Second
	}
	s.offsets = append(s.offsets,
		time.AfterFunc(timedOffset, s.bot.Engine.RunTimedChain),
		time.AfterFunc(regularOffset, s.bot.Engine.RunRegularChain),
	)

	s.wg.Add(1)
	go s.startPingSampler()
}

func (s *Scheduler) startPingSampler() {
	defer s.wg.Done()

	interval := s.bot.GetConfig().Reconcile.SampleInterval
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tasks.SamplePing(s.bot.Session, s.bot.Pings)
		case <-s.done:
			return
		}
	}
}

// Stop terminates all scheduled tasks gracefully, waiting for any running
// chain to finish.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	for _, t := range s.offsets {
		t.Stop()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}
