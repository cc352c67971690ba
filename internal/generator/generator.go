// Package generator produces plausible mock values for appointments, doctor
// profiles, and clinic schedules. Every call is independent; the only state is
// the random source, which is guarded so a Generator can be shared by all
// request goroutines.
package generator

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/tbourn/his-mockup-api/internal/domain"
)

// Fixtures is the read-only data the generator draws names and locations from.
type Fixtures interface {
	Doctors() []string
	Specialties() []string
	Locations() []domain.Location
}

// SlotTemplate is a fixed clinic session window.
type SlotTemplate struct {
	Start string
	End   string
}

// Slots are the session windows a schedule block may use. They do not overlap.
var Slots = []SlotTemplate{
	{Start: "08:00:00", End: "12:00:00"},
	{Start: "13:00:00", End: "16:00:00"},
	{Start: "16:00:00", End: "20:00:00"},
}

// WeekDays are the clinic days schedule blocks are drawn from.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Genders for generated doctors.
var Genders = []string{"male", "female"}

const (
	// ScheduleSpan is the validity window shared by every schedule block.
	ScheduleSpan = 30 * 24 * time.Hour

	minAppointmentHour = 8
	maxAppointmentHour = 15
)

// Option customizes a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for "today" in schedules.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator builds random mock values. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time

	doctors     []string
	specialties []string
	locations   []domain.Location
}

// New returns a Generator drawing from fx. A zero seed seeds the random
// source from the clock; any other seed makes the output reproducible.
func New(fx Fixtures, seed int64, opts ...Option) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		rnd:         rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		now:         time.Now,
		doctors:     fx.Doctors(),
		specialties: fx.Specialties(),
		locations:   fx.Locations(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Appointment builds one booked appointment for hn on date. The time of day is
// a whole hour between 08:00 and 15:00; the doctor fields are filled on a coin
// flip.
func (g *Generator) Appointment(hn string, date time.Time) domain.Appointment {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Wall-clock hour; adding a duration to midnight drifts on DST days.
	hour := g.between(minAppointmentHour, maxAppointmentHour)
	at := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
	loc := g.locations[g.rnd.IntN(len(g.locations))]

	a := domain.Appointment{
		HN:                  hn,
		EncounterNumber:     g.encounterNumber(),
		AppointmentDatetime: at.Format(domain.DateTimeLayout),
		Comment:             "",
		Status:              domain.StatusBook,
		Location:            []domain.Location{loc},
	}
	if g.rnd.IntN(2) == 1 {
		a.DoctorID = g.doctorID()
		a.DoctorName = g.doctors[g.rnd.IntN(len(g.doctors))]
	}
	return a
}

// DoctorProfile builds a random doctor working at 1..N distinct locations,
// with a schedule for each of them.
func (g *Generator) DoctorProfile() domain.DoctorProfile {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.doctorID()
	locs := g.sampleLocations(g.between(1, len(g.locations)))

	schedule := make([]domain.ScheduleBlock, 0, len(locs)*4)
	today := g.now()
	for _, l := range locs {
		schedule = append(schedule, g.schedules(l, today)...)
	}

	return domain.DoctorProfile{
		DoctorID:   id,
		DoctorName: g.doctors[g.rnd.IntN(len(g.doctors))],
		Gender:     Genders[g.rnd.IntN(len(Genders))],
		LicenseNo:  fmt.Sprintf("ว.%d", g.between(10000, 99999)),
		Specialty:  g.specialties[g.rnd.IntN(len(g.specialties))],
		Photo:      "https://xxxxxx.com/" + id,
		Location:   locs,
		Schedule:   schedule,
	}
}

// Schedules builds the weekly blocks for one location: 3 to 5 distinct week
// days, each with 1 to 3 distinct session windows, all valid from today for
// thirty days.
func (g *Generator) Schedules(loc domain.Location) []domain.ScheduleBlock {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.schedules(loc, g.now())
}

func (g *Generator) schedules(loc domain.Location, today time.Time) []domain.ScheduleBlock {
	start := today.Format(domain.DateLayout)
	end := today.Add(ScheduleSpan).Format(domain.DateLayout)

	days := g.pick(len(WeekDays), g.between(3, 5))
	out := make([]domain.ScheduleBlock, 0, len(days)*2)
	for _, d := range days {
		for _, s := range g.pick(len(Slots), g.between(1, len(Slots))) {
			out = append(out, domain.ScheduleBlock{
				StartDate:    start,
				EndDate:      end,
				StartTime:    Slots[s].Start,
				EndTime:      Slots[s].End,
				WeekDay:      WeekDays[d],
				LocationID:   loc.LocationID,
				LocationName: loc.LocationName,
			})
		}
	}
	return out
}

// sampleLocations draws k distinct locations without replacement.
func (g *Generator) sampleLocations(k int) []domain.Location {
	perm := g.rnd.Perm(len(g.locations))[:k]
	out := make([]domain.Location, 0, k)
	for _, i := range perm {
		out = append(out, g.locations[i])
	}
	return out
}

// pick returns k distinct indexes of [0,n) in ascending order.
func (g *Generator) pick(n, k int) []int {
	if k > n {
		k = n
	}
	idx := g.rnd.Perm(n)[:k]
	sort.Ints(idx)
	return idx
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

func (g *Generator) encounterNumber() string {
	return fmt.Sprintf("O%02d-%02d-%06d", g.between(10, 99), g.between(10, 99), g.between(100000, 999999))
}

func (g *Generator) doctorID() string {
	return fmt.Sprintf("%07d", g.between(1000000, 9999999))
}
