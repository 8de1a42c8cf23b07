package adjust_capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeRules struct {
	set     domain.RuleSet
	rule    *domain.CapacityRule
	created []*domain.CapacityRule
	updated map[int64]int
}

func (f *fakeRules) GetRuleSet(ctx context.Context, stylistID int64, from, to *time.Time) (*domain.RuleSet, error) {
	set := f.set
	return &set, nil
}

func (f *fakeRules) GetCapacityRule(ctx context.Context, stylistID int64, date time.Time, slot *domain.Slot) (*domain.CapacityRule, error) {
	if f.rule == nil {
		return nil, rulesRepo.ErrRuleNotFound
	}
	return f.rule, nil
}

func (f *fakeRules) CreateCapacityRule(ctx context.Context, rule *domain.CapacityRule) (*domain.CapacityRule, error) {
	rule.ID = 100
	f.created = append(f.created, rule)
	return rule, nil
}

func (f *fakeRules) UpdateCapacityLimit(ctx context.Context, id int64, maxReservations int) error {
	if f.updated == nil {
		f.updated = make(map[int64]int)
	}
	f.updated[id] = maxReservations
	return nil
}

type noTx struct{}

func (noTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var day = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

func request(direction Direction) *Request {
	return &Request{StylistID: 1, ActorID: 1, Date: day, Slot: domain.MustSlot("10:00"), Direction: direction}
}

func newUseCase(rules *fakeRules) *UseCase {
	return NewUseCase(rules, nil, noTx{}, schedule.DefaultOptions(), logger.Nop())
}

func TestUseCase_Execute_CreatesFromResolvedLimit(t *testing.T) {
	rules := &fakeRules{set: domain.RuleSet{Capacities: []domain.CapacityRule{{MaxReservations: 2}}}}

	resp, err := newUseCase(rules).Execute(context.Background(), request(DirectionDown))
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.Equal(t, 2, resp.Previous)
	assert.Equal(t, 1, resp.Limit)
	require.Len(t, rules.created, 1)
	require.NotNil(t, rules.created[0].Slot)
	assert.Equal(t, domain.Slot(20), *rules.created[0].Slot)
	assert.Equal(t, 1, rules.created[0].MaxReservations)
}

func TestUseCase_Execute_UpdatesExistingRule(t *testing.T) {
	rules := &fakeRules{rule: &domain.CapacityRule{ID: 5, MaxReservations: 1}}

	resp, err := newUseCase(rules).Execute(context.Background(), request(DirectionUp))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, map[int64]int{5: 2}, rules.updated)
	assert.Empty(t, rules.created)
}

func TestUseCase_Execute_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		direction Direction
	}{
		{name: "down на нуле", limit: 0, direction: DirectionDown},
		{name: "up на максимуме", limit: domain.DefaultMaxCapacity, direction: DirectionUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := &fakeRules{rule: &domain.CapacityRule{ID: 5, MaxReservations: tt.limit}}

			resp, err := newUseCase(rules).Execute(context.Background(), request(tt.direction))
			require.NoError(t, err)
			assert.False(t, resp.Changed)
			assert.Equal(t, tt.limit, resp.Limit)
			assert.Empty(t, rules.updated)
			assert.Empty(t, rules.created)
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(&fakeRules{})

	req := request(DirectionUp)
	req.ActorID = 2
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req = request("sideways")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request(DirectionUp)
	req.Slot = 48
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
