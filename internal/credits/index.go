// Package credits maintains the many-to-many relation between works and the participants
// credited in them.
//
// The Index keeps two views of the same relation: a forward map from each work to its
// participants and a reverse map from each participant to its works. Every mutation updates
// both under one lock, and every query copies its answer out, so callers never hold the
// index's own sets.
//
// RELEASE MODES:
//   - ReleaseModeCompatible (default): Release replaces a work's participants wholesale but
//     does not unlink the participants it dropped. Those participants keep pointing back at
//     the work until the work is removed. StaleCredits lists these entries.
//   - ReleaseModeStrict: Release also unlinks the dropped participants, so the forward and
//     reverse maps always mirror each other.
//
// THREAD SAFETY:
// All public methods use a RWMutex, mutations take the write lock for their whole duration.
package credits

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/stellar/credits-index/internal/entities"
	"github.com/stellar/credits-index/internal/metrics"
)

var (
	ErrWorkNotFound       = errors.New("work not found")
	ErrInvalidReleaseMode = errors.New("invalid release mode")
)

type ReleaseMode string

const (
	ReleaseModeCompatible ReleaseMode = "compatible"
	ReleaseModeStrict     ReleaseMode = "strict"
)

func (m ReleaseMode) IsValid() bool {
	return m == ReleaseModeCompatible || m == ReleaseModeStrict
}

// ParseReleaseMode parses a release mode, ignoring case and surrounding spaces.
func ParseReleaseMode(s string) (ReleaseMode, error) {
	mode := ReleaseMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("%w %q, expected one of: %s, %s", ErrInvalidReleaseMode, s, ReleaseModeCompatible, ReleaseModeStrict)
	}
	return mode, nil
}

// Operation labels reported to the metrics service.
const (
	OperationRelease              = "release"
	OperationRemove               = "remove"
	OperationTag                  = "tag"
	OperationParticipantsFor      = "participants_for"
	OperationWorksFor             = "works_for"
	OperationAllKnownParticipants = "all_known_participants"
	OperationKnownWorks           = "known_works"
	OperationTotalCreditCount     = "total_credit_count"
)

// Credit is one (work, participant) association.
type Credit struct {
	Work        entities.Work
	Participant entities.Participant
}

func (c Credit) String() string {
	return fmt.Sprintf("%s -> %s", c.Work.Name(), c.Participant.Name())
}

type IndexOptions struct {
	Mode           ReleaseMode
	MetricsService metrics.MetricsService
}

func (o *IndexOptions) Validate() error {
	if !o.Mode.IsValid() {
		return fmt.Errorf("%w %q", ErrInvalidReleaseMode, o.Mode)
	}

	if o.MetricsService == nil {
		return fmt.Errorf("metrics service cannot be nil")
	}

	return nil
}

type Index struct {
	mu             sync.RWMutex
	mode           ReleaseMode
	metricsService metrics.MetricsService
	// canonical entities by key, the first one seen for a key wins
	works        map[string]entities.Work
	participants map[string]entities.Participant
	// work key -> participant keys
	credits *BiMap[string, string]
}

// NewIndex creates an empty index. An empty Mode defaults to ReleaseModeCompatible.
func NewIndex(opts IndexOptions) (*Index, error) {
	if opts.Mode == "" {
		opts.Mode = ReleaseModeCompatible
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating index options: %w", err)
	}

	idx := &Index{
		mode:           opts.Mode,
		metricsService: opts.MetricsService,
		works:          make(map[string]entities.Work),
		participants:   make(map[string]entities.Participant),
		credits:        NewBiMap[string, string](),
	}
	idx.reportSizes()
	return idx, nil
}

func (idx *Index) Mode() ReleaseMode {
	return idx.mode
}

// Release credits exactly the given participants in work, replacing whatever the work was
// credited with before. Duplicated participants collapse; an empty list leaves the work
// released with no participants. Each participant gets work added to its reverse set.
//
// In ReleaseModeCompatible the participants that were credited before and are not anymore
// keep work in their reverse set. In ReleaseModeStrict they are unlinked.
func (idx *Index) Release(work entities.Work, participants []entities.Participant) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.metricsService.IncIndexOperation(OperationRelease)

	idx.storeWork(work)
	participantKeys := make([]string, 0, len(participants))
	for _, participant := range participants {
		idx.storeParticipant(participant)
		participantKeys = append(participantKeys, participant.Key())
	}

	previous := idx.credits.Replace(work.Key(), participantKeys)
	if idx.mode == ReleaseModeStrict && previous != nil {
		previous.Each(func(participantKey string) bool {
			if !idx.credits.HasLink(work.Key(), participantKey) {
				idx.credits.Unlink(work.Key(), participantKey)
			}
			return false
		})
	}

	idx.reportSizes()
}

// Remove deletes work and unlinks it from every participant. Participants left without
// works stay known. It returns false, changing nothing, when work is not in the index.
func (idx *Index) Remove(work entities.Work) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.metricsService.IncIndexOperation(OperationRemove)

	if !idx.credits.RemoveKey(work.Key()) {
		idx.metricsService.IncLookupMiss(OperationRemove)
		return false
	}
	delete(idx.works, work.Key())

	idx.reportSizes()
	return true
}

// Tag credits participant in work, creating either side when new. Tagging an existing
// credit is a no-op.
func (idx *Index) Tag(work entities.Work, participant entities.Participant) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.metricsService.IncIndexOperation(OperationTag)

	idx.storeWork(work)
	idx.storeParticipant(participant)
	idx.credits.Add(work.Key(), participant.Key())

	idx.reportSizes()
}

// ParticipantsFor returns the participants credited in work. It fails with ErrWorkNotFound
// when work was never released or tagged, or has been removed.
func (idx *Index) ParticipantsFor(work entities.Work) (Set[entities.Participant], error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.metricsService.IncIndexOperation(OperationParticipantsFor)

	participantKeys, ok := idx.credits.LookupForward(work.Key())
	if !ok {
		idx.metricsService.IncLookupMiss(OperationParticipantsFor)
		return NewSet[entities.Participant](), fmt.Errorf("getting participants for work %q: %w", work.Name(), ErrWorkNotFound)
	}

	return snapshot(participantKeys.ToSlice(), idx.participants), nil
}

// WorksFor returns the works participant appears in. Unknown participants get an empty set.
func (idx *Index) WorksFor(participant entities.Participant) Set[entities.Work] {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.metricsService.IncIndexOperation(OperationWorksFor)

	workKeys, ok := idx.credits.LookupBackward(participant.Key())
	if !ok {
		idx.metricsService.IncLookupMiss(OperationWorksFor)
	}

	return snapshot(workKeys.ToSlice(), idx.works)
}

// AllKnownParticipants returns every participant ever credited, including those whose works
// have all been removed.
func (idx *Index) AllKnownParticipants() Set[entities.Participant] {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.metricsService.IncIndexOperation(OperationAllKnownParticipants)

	return snapshot(idx.credits.BackwardKeys(), idx.participants)
}

// KnownWorks returns every work currently in the forward map.
func (idx *Index) KnownWorks() Set[entities.Work] {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.metricsService.IncIndexOperation(OperationKnownWorks)

	return snapshot(idx.credits.ForwardKeys(), idx.works)
}

// TotalCreditCount is the number of credits counted from the works side: a participant
// appearing in two works counts twice.
func (idx *Index) TotalCreditCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.metricsService.IncIndexOperation(OperationTotalCreditCount)

	return idx.credits.ForwardLinks()
}

// ReverseCreditCount is the number of credits counted from the participants side. It
// exceeds TotalCreditCount by the number of stale credits.
func (idx *Index) ReverseCreditCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.credits.BackwardLinks()
}

// StaleCredits returns the credits that only exist in the reverse map, ordered by work then
// participant name. It is always empty in ReleaseModeStrict.
func (idx *Index) StaleCredits() []Credit {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	orphans := idx.credits.Orphans()
	stale := make([]Credit, 0, len(orphans))
	for _, orphan := range orphans {
		stale = append(stale, Credit{
			Work:        idx.works[orphan.Key],
			Participant: idx.participants[orphan.Value],
		})
	}

	sort.Slice(stale, func(i, j int) bool {
		if stale[i].Work.Name() != stale[j].Work.Name() {
			return stale[i].Work.Name() < stale[j].Work.Name()
		}
		return stale[i].Participant.Name() < stale[j].Participant.Name()
	})
	return stale
}

// storeWork keeps the first work seen for a key. Caller must hold write lock.
func (idx *Index) storeWork(work entities.Work) {
	if _, exists := idx.works[work.Key()]; !exists {
		idx.works[work.Key()] = work
	}
}

// storeParticipant keeps the first participant seen for a key. Caller must hold write lock.
func (idx *Index) storeParticipant(participant entities.Participant) {
	if _, exists := idx.participants[participant.Key()]; !exists {
		idx.participants[participant.Key()] = participant
	}
}

// reportSizes publishes the index size gauges. Caller must hold write lock.
func (idx *Index) reportSizes() {
	forwardLinks := idx.credits.ForwardLinks()
	idx.metricsService.SetIndexedWorks(idx.credits.ForwardLen())
	idx.metricsService.SetIndexedParticipants(idx.credits.BackwardLen())
	idx.metricsService.SetIndexedCredits(forwardLinks)
	idx.metricsService.SetStaleCredits(idx.credits.BackwardLinks() - forwardLinks)
}
