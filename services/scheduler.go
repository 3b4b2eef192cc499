package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// schedulerTimezone anchors the daily batch to UK wall-clock time.
const schedulerTimezone = "Europe/London"

// dailyUpdateHour is when the nightly accrual batch runs.
const dailyUpdateHour = 3

// ChallengeTime is one drawn wall-clock time at which a challenge fires
// daily.
type ChallengeTime struct {
	Hour   int
	Minute int
}

// drawChallengeTimes picks 2 or 3 uniform clock times. Times are drawn once
// per process; a restart re-draws, which is fine — there is no guarantee of
// a fixed challenge count per calendar day across restarts.
func drawChallengeTimes(rng *rand.Rand) []ChallengeTime {
	numTimes := rng.Intn(2) + 2 // 2 or 3 times a day
	times := make([]ChallengeTime, 0, numTimes)
	for i := 0; i < numTimes; i++ {
		times = append(times, ChallengeTime{
			Hour:   rng.Intn(24),
			Minute: rng.Intn(60),
		})
	}
	return times
}

// Scheduler owns the process-wide timers: the 03:00 daily points batch and
// the randomized daily challenge jobs. It is a value with an explicit
// Start/Stop lifecycle so tests can build isolated instances.
type Scheduler struct {
	sched      gocron.Scheduler
	points     *PointsService
	challenges *ChallengeService
	times      []ChallengeTime
}

// NewScheduler builds a stopped scheduler and draws the challenge times.
// A nil rng gets a time-seeded source.
func NewScheduler(points *PointsService, challenges *ChallengeService, rng *rand.Rand) (*Scheduler, error) {
	loc, err := time.LoadLocation(schedulerTimezone)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone: %w", err)
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{
		sched:      sched,
		points:     points,
		challenges: challenges,
		times:      drawChallengeTimes(rng),
	}, nil
}

// ChallengeTimes exposes the drawn clock times for logging and tests.
func (s *Scheduler) ChallengeTimes() []ChallengeTime {
	return s.times
}

// Start registers the daily batch and one recurring job per drawn challenge
// time, then starts the timer loop.
func (s *Scheduler) Start() error {
	_, err := s.sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(dailyUpdateHour, 0, 0))),
		gocron.NewTask(func() {
			log.Printf("[Scheduler] running daily points update at %d AM UK time", dailyUpdateHour)
			s.points.RunDailyUpdate(context.Background())
		}),
	)
	if err != nil {
		return fmt.Errorf("register daily update job: %w", err)
	}

	for _, t := range s.times {
		t := t
		_, err := s.sched.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(t.Hour), uint(t.Minute), 0))),
			gocron.NewTask(func() {
				log.Printf("[Scheduler] scheduled challenge firing at %02d:%02d", t.Hour, t.Minute)
				if _, err := s.challenges.CreateScheduledChallenge(context.Background()); err != nil {
					log.Printf("[Scheduler] failed to create scheduled challenge: %v", err)
				}
			}),
		)
		if err != nil {
			return fmt.Errorf("register challenge job at %02d:%02d: %w", t.Hour, t.Minute, err)
		}
		log.Printf("[Scheduler] challenge scheduled daily at %02d:%02d", t.Hour, t.Minute)
	}

	s.sched.Start()
	return nil
}

// Stop shuts the timer loop down and drops all jobs.
func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}
