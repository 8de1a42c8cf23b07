package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func TestToSlot(t *testing.T) {
	tests := []struct {
		name string
		time string
		want Slot
	}{
		{name: "полночь", time: "00:00", want: 0},
		{name: "ровно час", time: "10:00", want: 20},
		{name: "полчаса", time: "10:30", want: 21},
		{name: "середина слота", time: "11:15", want: 22},
		{name: "конец слота", time: "11:59", want: 23},
		{name: "последний слот", time: "23:45", want: 47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSlot(types.MustTimeString(tt.time)))
		})
	}
}

func TestToSlot_FloorsToHalfHour(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		ts, err := types.NewTimeStringFromMinutes(m)
		require.NoError(t, err)

		start := ToSlot(ts).Start()
		assert.False(t, start.IsAfter(ts), "slot start %s after %s", start, ts)
		assert.Less(t, ts.Minutes()-start.Minutes(), SlotMinutes)
		assert.Equal(t, 0, start.Minutes()%SlotMinutes)
	}
}

func TestToSlot_PanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { ToSlot(types.TimeString{}) })
	assert.Panics(t, func() { ToSlot(types.MustTimeString("24:00")) })
	assert.Panics(t, func() { MustSlot("25:00") })
	assert.Panics(t, func() { MustSlot("10-00") })
}

func TestSlot_String(t *testing.T) {
	assert.Equal(t, "00:00", Slot(0).String())
	assert.Equal(t, "10:00", Slot(20).String())
	assert.Equal(t, "10:30", Slot(21).String())
	assert.Equal(t, "23:30", Slot(47).String())
	assert.Equal(t, "24:00", Slot(47).End().String())
	assert.Panics(t, func() { _ = Slot(48).String() })
}

func TestSlotRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []Slot
	}{
		{name: "один час", start: "10:00", end: "11:00", want: []Slot{20, 21}},
		{name: "полтора часа", start: "16:00", end: "17:30", want: []Slot{32, 33, 34}},
		{name: "конец не на границе", start: "10:00", end: "10:45", want: []Slot{20, 21}},
		{name: "начало не на границе", start: "10:15", end: "10:30", want: []Slot{20}},
		{name: "до конца суток", start: "23:30", end: "24:00", want: []Slot{47}},
		{name: "пустой интервал", start: "10:00", end: "10:00", want: nil},
		{name: "обратный интервал", start: "11:00", end: "10:00", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotRange(types.MustTimeString(tt.start), types.MustTimeString(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotsWithin(t *testing.T) {
	got := SlotsWithin(types.MustTimeString("09:00"), types.MustTimeString("11:00"))
	assert.Equal(t, []Slot{18, 19, 20, 21}, got)

	got = SlotsWithin(types.MustTimeString("09:15"), types.MustTimeString("10:45"))
	assert.Equal(t, []Slot{19, 20}, got)

	got = SlotsWithin(types.MustTimeString("00:00"), types.MustTimeString("00:00"))
	assert.Empty(t, got)
}

func TestSlotCount(t *testing.T) {
	assert.Equal(t, 0, SlotCount(0))
	assert.Equal(t, 1, SlotCount(1))
	assert.Equal(t, 1, SlotCount(30))
	assert.Equal(t, 2, SlotCount(31))
	assert.Equal(t, 2, SlotCount(60))
	assert.Equal(t, 3, SlotCount(90))
}
