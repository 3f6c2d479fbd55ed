package plan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func weekPlan() models.WeeklyPlan {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	p := models.WeeklyPlan{ID: "w1"}
	for _, d := range days {
		p.Days = append(p.Days, models.DailyPlan{Day: d, Focus: d + " work", Category: models.CategoryStrength, IsRestDay: d == "Sunday"})
	}
	return p
}

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.NewStore(storage.NewMemory(), testLogger())
}

// TestMarkDayCompleteOnlyTouchesMatchingDay covers the Monday finish scenario:
// Monday flips to completed and every other day is unchanged.
func TestMarkDayCompleteOnlyTouchesMatchingDay(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	if err := store.SavePlan(ctx, weekPlan()); err != nil {
		t.Fatal(err)
	}
	sync := NewSynchronizer(store, testLogger())

	got, err := sync.MarkDayComplete(ctx, "Monday")
	if err != nil {
		t.Fatalf("MarkDayComplete: %v", err)
	}
	for _, d := range got.Days {
		if want := d.Day == "Monday"; d.Completed != want {
			t.Errorf("%s completed = %v, want %v", d.Day, d.Completed, want)
		}
	}
	if !reflect.DeepEqual(store.GetPlan(ctx), got) {
		t.Error("returned plan differs from stored plan")
	}
}

// TestMarkDayCompleteIsIdempotent verifies two calls equal one call.
func TestMarkDayCompleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	store.SavePlan(ctx, weekPlan())
	sync := NewSynchronizer(store, testLogger())

	once, _ := sync.MarkDayComplete(ctx, "Monday")
	twice, _ := sync.MarkDayComplete(ctx, "Monday")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second call changed the plan:\n%+v\n%+v", once, twice)
	}
	if len(twice.Days) != 7 {
		t.Errorf("days = %d, want 7", len(twice.Days))
	}
}

func TestMarkDayCompleteMatchingRules(t *testing.T) {
	tests := []struct {
		name    string
		weekday string
		want    string // day expected to be completed, "" for none
	}{
		{"exact", "Wednesday", "Wednesday"},
		{"case sensitive", "wednesday", ""},
		{"rest day allowed", "Sunday", "Sunday"},
		{"unknown", "Someday", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			store.SavePlan(ctx, weekPlan())
			got, err := NewSynchronizer(store, testLogger()).MarkDayComplete(ctx, tt.weekday)
			if err != nil {
				t.Fatal(err)
			}
			for _, d := range got.Days {
				if want := d.Day == tt.want; d.Completed != want {
					t.Errorf("%s completed = %v, want %v", d.Day, d.Completed, want)
				}
			}
		})
	}
}

func TestMarkDayCompleteWithoutPlanIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	got, err := NewSynchronizer(store, testLogger()).MarkDayComplete(ctx, "Monday")
	if err != nil || got != nil {
		t.Errorf("got %+v, %v; want nil, nil", got, err)
	}
	if store.GetPlan(ctx) != nil {
		t.Error("no plan should have been written")
	}
}

// TestMarkDayCompleteStoredNullIsNoop verifies a plan record holding JSON null
// counts as no plan and is left untouched.
func TestMarkDayCompleteStoredNullIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	kv.Set(ctx, storage.KeyWeeklyPlan, []byte("null"))
	store := storage.NewStore(kv, testLogger())

	got, err := NewSynchronizer(store, testLogger()).MarkDayComplete(ctx, "Monday")
	if err != nil || got != nil {
		t.Errorf("got %+v, %v; want nil, nil", got, err)
	}
	raw, _, _ := kv.Get(ctx, storage.KeyWeeklyPlan)
	if string(raw) != "null" {
		t.Errorf("stored plan = %s, want null", raw)
	}
}

type brokenPlanStore struct{ plan models.WeeklyPlan }

func (b brokenPlanStore) GetPlan(context.Context) *models.WeeklyPlan { p := b.plan; return &p }
func (b brokenPlanStore) SavePlan(context.Context, models.WeeklyPlan) error {
	return errors.New("read-only")
}

func TestMarkDayCompleteSurfacesWriteError(t *testing.T) {
	_, err := NewSynchronizer(brokenPlanStore{weekPlan()}, testLogger()).MarkDayComplete(context.Background(), "Monday")
	if err == nil {
		t.Error("expected write error")
	}
}

func TestWeekdayName(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	// Sunday 23:30 UTC is already Monday in CET.
	ts := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	if got := WeekdayName(ts, nil); got != "Sunday" {
		t.Errorf("WeekdayName(UTC) = %s, want Sunday", got)
	}
	if got := WeekdayName(ts, berlin); got != "Monday" {
		t.Errorf("WeekdayName(CET) = %s, want Monday", got)
	}
}

// TestNormalizeForcesIncomplete verifies a generated plan with a day already
// marked completed is stored with completed=false.
func TestNormalizeForcesIncomplete(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC) // Wednesday
	in := &models.WeeklyPlan{Days: []models.DailyPlan{
		{Day: "Monday", Completed: true},
		{Day: "Tuesday", Completed: true, Category: models.CategoryMobility},
	}}

	got := Normalize(in, now)
	if got == nil {
		t.Fatal("Normalize returned nil")
	}
	for _, d := range got.Days {
		if d.Completed {
			t.Errorf("%s completed = true, want false", d.Day)
		}
	}
	if got.Days[0].Category != models.CategoryCustom || got.Days[1].Category != models.CategoryMobility {
		t.Errorf("categories = %s, %s", got.Days[0].Category, got.Days[1].Category)
	}
	if got.ID == "" {
		t.Error("ID not assigned")
	}
	if !got.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, now)
	}
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !got.WeekStartDate.Equal(want) {
		t.Errorf("WeekStartDate = %v, want %v", got.WeekStartDate, want)
	}
	if !in.Days[0].Completed {
		t.Error("input plan was mutated")
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if Normalize(nil, time.Now()) != nil {
		t.Error("nil plan should stay nil")
	}
	if Normalize(&models.WeeklyPlan{ID: "x"}, time.Now()) != nil {
		t.Error("plan without days should normalize to nil")
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},  // Monday
		{time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},  // Sunday
		{time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)}, // Sunday across month
	}
	for _, tt := range tests {
		if got := WeekStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProgressAndDay(t *testing.T) {
	p := weekPlan()
	p.Days[0].Completed = true
	p.Days[2].Completed = true

	done, scheduled := Progress(&p)
	if done != 2 || scheduled != 6 {
		t.Errorf("Progress = %d/%d, want 2/6", done, scheduled)
	}
	if d, ok := Day(&p, "Friday"); !ok || d.Focus != "Friday work" {
		t.Errorf("Day(Friday) = %+v, %v", d, ok)
	}
	if _, ok := Day(nil, "Friday"); ok {
		t.Error("Day(nil) should not be found")
	}
}
