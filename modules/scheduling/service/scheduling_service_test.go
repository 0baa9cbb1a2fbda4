package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-interview-crm/core/clock"
	coreerrors "go-interview-crm/core/errors"
	"go-interview-crm/modules/scheduling/dto"
	"go-interview-crm/modules/scheduling/entity"
	"go-interview-crm/modules/scheduling/repository"
	settingsentity "go-interview-crm/modules/settings/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===================== in-memory fakes =====================

// fakeReservationStore mimics the reservation table including the two partial
// unique indexes over rows whose active_key is set. Transactions snapshot the
// rows and roll back on error so a failed booking leaves no trace.
type fakeReservationStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Reservation
	now  time.Time
}

func newFakeReservationStore(now time.Time) *fakeReservationStore {
	return &fakeReservationStore{rows: make(map[uuid.UUID]*entity.Reservation), now: now}
}

func (s *fakeReservationStore) WithinTransaction(_ context.Context, fn func(ops repository.ReservationTxOps) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[uuid.UUID]*entity.Reservation, len(s.rows))
	for id, r := range s.rows {
		copied := *r
		snapshot[id] = &copied
	}

	if err := fn(&fakeTxOps{store: s}); err != nil {
		s.rows = snapshot
		return err
	}
	return nil
}

func (s *fakeReservationStore) FindActiveByConversation(_ context.Context, conversationID string) (*entity.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findActive(conversationID), nil
}

func (s *fakeReservationStore) FindByInstants(_ context.Context, instants []time.Time, locationKey string) ([]entity.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Reservation
	for _, r := range s.rows {
		if r.ActiveKey == nil || r.LocationKey != locationKey {
			continue
		}
		for _, t := range instants {
			if r.StartAt.Equal(t) {
				out = append(out, *r)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeReservationStore) Confirm(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rows[id]; ok {
		r.Status = entity.ReservationStatusConfirmed
	}
	return nil
}

func (s *fakeReservationStore) Release(_ context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rows[id]; ok {
		r.Status = status
		r.ActiveKey = nil
	}
	return nil
}

func (s *fakeReservationStore) findActive(conversationID string) *entity.Reservation {
	for _, r := range s.rows {
		if r.ConversationID == conversationID && r.ActiveKey != nil {
			copied := *r
			return &copied
		}
	}
	return nil
}

func (s *fakeReservationStore) get(id uuid.UUID) *entity.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rows[id]; ok {
		copied := *r
		return &copied
	}
	return nil
}

func (s *fakeReservationStore) activeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if r.ActiveKey != nil {
			n++
		}
	}
	return n
}

// fakeTxOps operates on the parent store under the lock WithinTransaction
// already holds.
type fakeTxOps struct {
	store *fakeReservationStore
}

func (o *fakeTxOps) FindActiveByConversation(_ context.Context, conversationID string) (*entity.Reservation, error) {
	return o.store.findActive(conversationID), nil
}

func (o *fakeTxOps) Create(_ context.Context, res *entity.Reservation) error {
	if res.ActiveKey != nil {
		for _, r := range o.store.rows {
			if r.ActiveKey == nil {
				continue
			}
			if r.ConversationID == res.ConversationID {
				return &pq.Error{Code: "23505", Constraint: "uq_reservations_active_conversation"}
			}
			if r.LocationKey == res.LocationKey && r.StartAt.Equal(res.StartAt) {
				return &pq.Error{Code: "23505", Constraint: "uq_reservations_active_slot"}
			}
		}
	}

	res.ID = uuid.New()
	res.CreatedAt = o.store.now
	res.UpdatedAt = o.store.now
	copied := *res
	o.store.rows[res.ID] = &copied
	return nil
}

func (o *fakeTxOps) RefreshSlot(_ context.Context, id uuid.UUID, endAt time.Time, timezone string) error {
	if r, ok := o.store.rows[id]; ok {
		r.Status = entity.ReservationStatusPending
		r.EndAt = endAt
		r.Timezone = timezone
	}
	return nil
}

func (o *fakeTxOps) Demote(_ context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	if r, ok := o.store.rows[id]; ok {
		r.Status = status
		r.ActiveKey = nil
	}
	return nil
}

// fakeBlockStore mimics slot_blocks and its unique (start_at, location_key).
type fakeBlockStore struct {
	mu   sync.Mutex
	rows []entity.SlotBlock
}

func (s *fakeBlockStore) FindByStartAndLocation(_ context.Context, startAt time.Time, locationKey string) (*entity.SlotBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].StartAt.Equal(startAt) && s.rows[i].LocationKey == locationKey {
			copied := s.rows[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeBlockStore) FindByInstants(_ context.Context, instants []time.Time, locationKey string) ([]entity.SlotBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.SlotBlock
	for i := range s.rows {
		if s.rows[i].LocationKey != locationKey {
			continue
		}
		for _, t := range instants {
			if s.rows[i].StartAt.Equal(t) {
				out = append(out, s.rows[i])
				break
			}
		}
	}
	return out, nil
}

func (s *fakeBlockStore) Create(_ context.Context, block *entity.SlotBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].StartAt.Equal(block.StartAt) && s.rows[i].LocationKey == block.LocationKey {
			return &pq.Error{Code: "23505", Constraint: "slot_blocks_start_at_location_key_key"}
		}
	}
	block.ID = uuid.New()
	block.CreatedAt = time.Now()
	s.rows = append(s.rows, *block)
	return nil
}

func (s *fakeBlockStore) ListUpcoming(_ context.Context, from time.Time) ([]entity.SlotBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.SlotBlock
	for i := range s.rows {
		if !s.rows[i].StartAt.Before(from) {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

func (s *fakeBlockStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeSettingsService struct {
	raw map[string]string
}

func (f *fakeSettingsService) RawScheduleConfig(context.Context) map[string]string {
	if f.raw == nil {
		return map[string]string{}
	}
	return f.raw
}

func (f *fakeSettingsService) List(context.Context) ([]settingsentity.Setting, *coreerrors.AppError) {
	return nil, nil
}

func (f *fakeSettingsService) Update(context.Context, string, string) *coreerrors.AppError {
	return nil
}

func (f *fakeSettingsService) Delete(context.Context, string) *coreerrors.AppError {
	return nil
}

// ===================== harness =====================

type serviceFixture struct {
	svc          SchedulingServiceInterface
	reservations *fakeReservationStore
	blocks       *fakeBlockStore
	now          time.Time
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	now := mondayMorning(t)
	reservations := newFakeReservationStore(now)
	blocks := &fakeBlockStore{}
	svc := NewSchedulingService(reservations, blocks, &fakeSettingsService{}, nil, clock.Fixed(now))
	return &serviceFixture{svc: svc, reservations: reservations, blocks: blocks, now: now}
}

func scheduleReq(conversationID, day, timeStr string) *dto.ScheduleRequest {
	return &dto.ScheduleRequest{
		ConversationID: conversationID,
		ContactID:      "contact-" + conversationID,
		Day:            day,
		Time:           timeStr,
	}
}

// ===================== AttemptSchedule =====================

func TestAttemptSchedule_Scheduled(t *testing.T) {
	f := newFixture(t)
	sp := saoPaulo(t)

	result, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)
	require.True(t, result.OK)

	assert.Equal(t, dto.KindScheduled, result.Kind)
	require.NotNil(t, result.Slot)
	assert.Equal(t, "Terça-feira", result.Slot.Day)
	assert.Equal(t, "13:00", result.Slot.Time)
	assert.Equal(t, "Escritório", result.Slot.Location)
	assert.True(t, result.Slot.StartAt.Equal(time.Date(2026, 3, 3, 13, 0, 0, 0, sp)))
	require.NotNil(t, result.ReservationID)
	assert.Nil(t, result.PreviousReservationID)
	assert.Equal(t, "Terça-feira 13:00, Escritório", result.Message)

	id := uuid.MustParse(*result.ReservationID)
	stored := f.reservations.get(id)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ReservationStatusPending, stored.Status)
	assert.True(t, stored.IsActive())
	assert.NotEmpty(t, stored.PublicCode)
	assert.Equal(t, "escritorio", stored.LocationKey)
}

func TestAttemptSchedule_RepeatIsUnchanged(t *testing.T) {
	f := newFixture(t)

	first, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)
	require.True(t, first.OK)

	second, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)
	require.True(t, second.OK)

	assert.Equal(t, dto.KindUnchanged, second.Kind)
	require.NotNil(t, second.ReservationID)
	assert.Equal(t, *first.ReservationID, *second.ReservationID)
	require.NotNil(t, second.PreviousReservationID)
	assert.Equal(t, *first.ReservationID, *second.PreviousReservationID)

	assert.Equal(t, 1, f.reservations.activeCount())
}

func TestAttemptSchedule_MissingDayOrTime(t *testing.T) {
	f := newFixture(t)

	for _, req := range []*dto.ScheduleRequest{
		scheduleReq("c1", "", "13:00"),
		scheduleReq("c1", "terça", ""),
		scheduleReq("c1", "  ", "  "),
	} {
		result, appErr := f.svc.AttemptSchedule(context.Background(), req)
		require.Nil(t, appErr)
		require.False(t, result.OK)
		assert.Equal(t, dto.ReasonMissing, result.Reason)
		assert.NotEmpty(t, result.Alternatives)
		assert.LessOrEqual(t, len(result.Alternatives), 5)
	}

	assert.Equal(t, 0, f.reservations.activeCount())
}

func TestAttemptSchedule_BadInput(t *testing.T) {
	f := newFixture(t)

	result, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "someday", "13:00"))
	require.Nil(t, appErr)
	require.False(t, result.OK)
	assert.Equal(t, dto.ReasonBadInput, result.Reason)

	result, appErr = f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "25:99"))
	require.Nil(t, appErr)
	require.False(t, result.OK)
	assert.Equal(t, dto.ReasonBadInput, result.Reason)
	assert.NotEmpty(t, result.Alternatives)
}

func TestAttemptSchedule_OutsideAvailability(t *testing.T) {
	f := newFixture(t)

	// Sunday has no intervals in the default template.
	result, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "domingo", "10:00"))
	require.Nil(t, appErr)
	require.False(t, result.OK)

	assert.Equal(t, dto.ReasonOutsideAvailability, result.Reason)
	require.Len(t, result.Alternatives, 5)
	for i, alt := range result.Alternatives {
		assert.True(t, alt.StartAt.After(f.now), "alternative %d not in the future", i)
		if i > 0 {
			assert.True(t, alt.StartAt.After(result.Alternatives[i-1].StartAt))
		}
	}
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, 0, f.reservations.activeCount())
}

func TestAttemptSchedule_SlotTakenByOtherConversation(t *testing.T) {
	f := newFixture(t)
	sp := saoPaulo(t)

	first, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)
	require.True(t, first.OK)

	second, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c2", "terça", "13:00"))
	require.Nil(t, appErr)
	require.False(t, second.OK)
	assert.Equal(t, dto.ReasonConflict, second.Reason)

	// The contested instant must not resurface as an alternative.
	taken := time.Date(2026, 3, 3, 13, 0, 0, 0, sp)
	for _, alt := range second.Alternatives {
		assert.False(t, alt.StartAt.Equal(taken))
	}

	assert.Equal(t, 1, f.reservations.activeCount())
}

func TestAttemptSchedule_ConcurrentRaceOneWinner(t *testing.T) {
	f := newFixture(t)

	results := make([]*dto.ScheduleAttemptResult, 2)
	var wg sync.WaitGroup
	for i, conv := range []string{"race-a", "race-b"} {
		wg.Add(1)
		go func(i int, conv string) {
			defer wg.Done()
			result, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq(conv, "quarta", "10:00"))
			assert.Nil(t, appErr)
			results[i] = result
		}(i, conv)
	}
	wg.Wait()

	wins := 0
	for _, r := range results {
		require.NotNil(t, r)
		if r.OK {
			wins++
			assert.Equal(t, dto.KindScheduled, r.Kind)
		} else {
			assert.Equal(t, dto.ReasonConflict, r.Reason)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, f.reservations.activeCount())
}

func TestAttemptSchedule_BlockedSlotConflicts(t *testing.T) {
	f := newFixture(t)
	sp := saoPaulo(t)

	_, appErr := f.svc.CreateBlock(context.Background(), &dto.CreateBlockRequest{
		StartAt: time.Date(2026, 3, 3, 13, 0, 0, 0, sp),
		Reason:  "manutenção",
	})
	require.Nil(t, appErr)

	result, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)
	require.False(t, result.OK)
	assert.Equal(t, dto.ReasonConflict, result.Reason)
	assert.Equal(t, 0, f.reservations.activeCount())
}

func TestAttemptSchedule_RescheduleAfterConfirm(t *testing.T) {
	f := newFixture(t)
	sp := saoPaulo(t)

	first, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)
	require.True(t, first.OK)

	confirmed, appErr := f.svc.ConfirmActiveReservation(context.Background(), "c1")
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.ReservationStatusConfirmed), confirmed.Status)
	assert.True(t, confirmed.Active)

	second, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "quarta", "14:00"))
	require.Nil(t, appErr)
	require.True(t, second.OK)

	assert.Equal(t, dto.KindRescheduled, second.Kind)
	require.NotNil(t, second.PreviousReservationID)
	assert.Equal(t, *first.ReservationID, *second.PreviousReservationID)
	assert.NotEqual(t, *first.ReservationID, *second.ReservationID)
	assert.True(t, second.Slot.StartAt.Equal(time.Date(2026, 3, 4, 14, 0, 0, 0, sp)))

	old := f.reservations.get(uuid.MustParse(*first.ReservationID))
	require.NotNil(t, old)
	assert.Equal(t, entity.ReservationStatusRescheduled, old.Status)
	assert.False(t, old.IsActive())

	assert.Equal(t, 1, f.reservations.activeCount())
}

func TestAttemptSchedule_RebookAfterRelease(t *testing.T) {
	f := newFixture(t)

	first, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)
	require.True(t, first.OK)

	released, appErr := f.svc.ReleaseActiveReservation(context.Background(), "c1", "cancelled")
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.ReservationStatusCancelled), released.Status)
	assert.False(t, released.Active)

	// The slot is free again, for anyone.
	second, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c2", "terça", "13:00"))
	require.Nil(t, appErr)
	require.True(t, second.OK)
	assert.Equal(t, dto.KindScheduled, second.Kind)
}

// ===================== confirm / release / lookup =====================

func TestConfirmActiveReservation_NotFound(t *testing.T) {
	f := newFixture(t)

	_, appErr := f.svc.ConfirmActiveReservation(context.Background(), "ghost")
	require.NotNil(t, appErr)
	assert.Equal(t, coreerrors.ErrNotFound, appErr.Code)
}

func TestReleaseActiveReservation_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, appErr := f.svc.ReleaseActiveReservation(context.Background(), "c1", "deleted")
	require.NotNil(t, appErr)
	assert.Equal(t, coreerrors.ErrInvalidInput, appErr.Code)
}

func TestReleaseActiveReservation_OnHold(t *testing.T) {
	f := newFixture(t)

	_, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)

	released, appErr := f.svc.ReleaseActiveReservation(context.Background(), "c1", "on_hold")
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.ReservationStatusOnHold), released.Status)

	_, appErr = f.svc.GetActiveReservation(context.Background(), "c1")
	require.NotNil(t, appErr)
	assert.Equal(t, coreerrors.ErrNotFound, appErr.Code)
}

func TestGetActiveReservation(t *testing.T) {
	f := newFixture(t)

	result, appErr := f.svc.AttemptSchedule(context.Background(), scheduleReq("c1", "terça", "13:00"))
	require.Nil(t, appErr)

	got, appErr := f.svc.GetActiveReservation(context.Background(), "c1")
	require.Nil(t, appErr)
	assert.Equal(t, *result.ReservationID, got.ID)
	assert.Equal(t, "c1", got.ConversationID)
	assert.True(t, got.Active)
	assert.Equal(t, string(entity.ReservationStatusPending), got.Status)
}

// ===================== alternatives and blocks =====================

func TestGetAlternatives(t *testing.T) {
	f := newFixture(t)

	resp, appErr := f.svc.GetAlternatives(context.Background(), "", 3)
	require.Nil(t, appErr)

	require.Len(t, resp.Alternatives, 3)
	assert.NotEmpty(t, resp.Message)
	for _, alt := range resp.Alternatives {
		assert.True(t, alt.StartAt.After(f.now))
	}
}

func TestCreateBlock_DuplicateConflicts(t *testing.T) {
	f := newFixture(t)
	start := f.now.Add(24 * time.Hour)

	created, appErr := f.svc.CreateBlock(context.Background(), &dto.CreateBlockRequest{StartAt: start, Reason: "feriado"})
	require.Nil(t, appErr)
	assert.Equal(t, "Escritório", created.Location)

	_, appErr = f.svc.CreateBlock(context.Background(), &dto.CreateBlockRequest{StartAt: start})
	require.NotNil(t, appErr)
	assert.Equal(t, coreerrors.ErrAlreadyExists, appErr.Code)
}

func TestListAndDeleteBlocks(t *testing.T) {
	f := newFixture(t)

	created, appErr := f.svc.CreateBlock(context.Background(), &dto.CreateBlockRequest{StartAt: f.now.Add(48 * time.Hour)})
	require.Nil(t, appErr)

	blocks, appErr := f.svc.ListBlocks(context.Background())
	require.Nil(t, appErr)
	require.Len(t, blocks, 1)
	assert.Equal(t, created.ID, blocks[0].ID)

	require.Nil(t, f.svc.DeleteBlock(context.Background(), uuid.MustParse(created.ID)))

	blocks, appErr = f.svc.ListBlocks(context.Background())
	require.Nil(t, appErr)
	assert.Empty(t, blocks)
}
