package crossguild

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"guardian-bot/model"
	"guardian-bot/scanner"
	"guardian-bot/utils"
	"guardian-bot/utils/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Action is a moderation action propagated across a guild group.
type Action string

const (
	ActionBan   Action = "ban"
	ActionUnban Action = "unban"
	ActionKick  Action = "kick"
)

// Status tracks a single sync invocation.
type Status string

const (
	StatusPending    Status = "pending"
	StatusFannedOut  Status = "fanned_out"
	StatusAggregated Status = "aggregated"
)

// Request describes one cross-guild moderation action. All fields are required.
type Request struct {
	GroupID       string
	TargetUserID  string
	Reason        string
	ModeratorName string
}

// Result aggregates per-guild outcomes of one invocation.
type Result struct {
	InvocationID string
	Status       Status
	Guilds       []string
	Attempted    int
	Succeeded    int
}

// Service propagates a single moderation action from one guild to a fan-out
// set of linked guilds and aggregates the per-guild outcomes into one event.
type Service struct {
	db     *sqlx.DB
	client scanner.GuildClient
	audit  *utils.AuditLogger
	locks  *utils.KeyedMutex
}

func New(db *sqlx.DB, client scanner.GuildClient, audit *utils.AuditLogger) *Service {
	return &Service{db: db, client: client, audit: audit, locks: utils.NewKeyedMutex()}
}

// Apply issues the action to every guild in the group's fan-out set
// concurrently and waits for all of them. Per-guild failures are counted,
// never propagated; no partial result is retried automatically.
func (s *Service) Apply(action Action, req Request) (*Result, error) {
	guilds, err := s.ResolveFanout(req.GroupID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		InvocationID: uuid.NewString(),
		Status:       StatusPending,
		Guilds:       guilds,
	}
	if len(guilds) == 0 {
		result.Status = StatusAggregated
		return result, nil
	}

	reason := fmt.Sprintf("[group %s] %s (by %s)", req.GroupID, req.Reason, req.ModeratorName)
	result.Status = StatusFannedOut

	var attempted, succeeded int64
	var wg sync.WaitGroup
	for _, guildID := range guilds {
		wg.Add(1)
		go func(guildID string) {
			defer wg.Done()

			if _, err := s.client.Guild(guildID); err != nil {
				// Unreachable guilds are skipped, not counted as attempts.
				if !scanner.IsNotFound(err) {
					log.Printf("Failed to resolve guild %s for %s sync: %v", guildID, action, err)
				}
				return
			}

			// Serialize concurrent invocations touching the same target.
			lockKey := guildID + "/" + req.TargetUserID
			s.locks.Lock(lockKey)
			defer s.locks.Unlock(lockKey)

			if action == ActionBan || action == ActionUnban {
				// Retire any local ban case up front so the sanction expiry
				// phase cannot double-process this user mid-flight.
				if err := database.SetCasesInactiveByUser(s.db, guildID, req.TargetUserID, model.CaseBan); err != nil {
					log.Printf("Failed to pre-retire ban cases for user %s in guild %s: %v", req.TargetUserID, guildID, err)
				}
			}

			atomic.AddInt64(&attempted, 1)
			var callErr error
			switch action {
			case ActionBan:
				callErr = s.client.GuildBanCreate(guildID, req.TargetUserID, reason)
			case ActionUnban:
				callErr = s.client.GuildBanDelete(guildID, req.TargetUserID)
			case ActionKick:
				callErr = s.client.GuildMemberKick(guildID, req.TargetUserID, reason)
			default:
				callErr = fmt.Errorf("unknown action %q", action)
			}
			if callErr != nil {
				log.Printf("Cross-guild %s failed for user %s in guild %s: %v", action, req.TargetUserID, guildID, callErr)
				utils.Metrics().Fanout.WithLabelValues(string(action), "failure").Inc()
				return
			}
			atomic.AddInt64(&succeeded, 1)
			utils.Metrics().Fanout.WithLabelValues(string(action), "success").Inc()
		}(guildID)
	}
	wg.Wait()

	result.Attempted = int(attempted)
	result.Succeeded = int(succeeded)
	result.Status = StatusAggregated

	s.audit.Info("crossguild", string(action),
		fmt.Sprintf("Group %s: %s user %s by %s — %d/%d guilds succeeded (invocation %s)",
			req.GroupID, action, req.TargetUserID, req.ModeratorName,
			result.Succeeded, result.Attempted, result.InvocationID))
	return result, nil
}

// ResolveFanout returns the deduplicated guild set for a group: its direct
// members, its manager guilds, and the members of any group a manager guild
// itself owns. Nesting resolves exactly one level deep.
func (s *Service) ResolveFanout(groupID string) ([]string, error) {
	members, err := database.GetGroupMembers(s.db, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fan-out for group %s: %w", groupID, err)
	}

	set := make(map[string]struct{})
	for _, m := range members {
		set[m.GuildID] = struct{}{}
		if !m.Manager {
			continue
		}
		owned, err := database.GetGroupsOwnedBy(s.db, m.GuildID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve sub-groups of guild %s: %w", m.GuildID, err)
		}
		for _, sub := range owned {
			subMembers, err := database.GetGroupMembers(s.db, sub.GroupID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve members of sub-group %s: %w", sub.GroupID, err)
			}
			for _, sm := range subMembers {
				set[sm.GuildID] = struct{}{}
			}
		}
	}

	guilds := make([]string, 0, len(set))
	for guildID := range set {
		guilds = append(guilds, guildID)
	}
	sort.Strings(guilds)
	return guilds, nil
}
