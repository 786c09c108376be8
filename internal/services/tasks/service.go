package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/model"
)

var ErrTaskNotFound = errors.New("task not found")

type pusher interface {
	Push(ctx context.Context, title, body string) error
}

// DefaultSchedule is the daily checklist every session starts with.
func DefaultSchedule() []model.Task {
	return []model.Task{
		{ID: 1, Time: "07:00", Label: "Morning Yoga & Stretching", Calories: 120, Done: true},
		{ID: 2, Time: "08:30", Label: "Healthy Breakfast (High Protein)", Calories: 0, Done: true},
		{ID: 3, Time: "12:30", Label: "Nutritious Lunch (Salad & Chicken)", Calories: 0},
		{ID: 4, Time: "15:00", Label: "2L Water Intake Check", Calories: 0},
		{ID: 5, Time: "18:00", Label: "Cardio: 30m Running/Cycling", Calories: 350},
		{ID: 6, Time: "21:00", Label: "Evening Meditation", Calories: 30},
	}
}

// DefaultWeightTrend is the seed series shown until real weigh-ins are
// recorded.
func DefaultWeightTrend() []model.WeightRecord {
	return []model.WeightRecord{
		{Day: "Mon", WeightKG: 70.2},
		{Day: "Tue", WeightKG: 70.0},
		{Day: "Wed", WeightKG: 69.8},
		{Day: "Thu", WeightKG: 69.9},
		{Day: "Fri", WeightKG: 69.6},
		{Day: "Sat", WeightKG: 69.4},
		{Day: "Sun", WeightKG: 69.2},
	}
}

// Service keeps the daily checklist in memory and pushes a cheer the
// first time a task is ticked off.
type Service struct {
	notif pusher
	log   *zap.Logger

	mu    sync.Mutex
	tasks []model.Task
}

func NewService(notif pusher, log *zap.Logger) *Service {
	return &Service{
		notif: notif,
		log:   log,
		tasks: DefaultSchedule(),
	}
}

// Reset restores the default checklist. Used on logout.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = DefaultSchedule()
}

// List returns a copy of the checklist.
func (s *Service) List() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Toggle flips a task's done state. Completing a task (false to true)
// fires one congratulation push; unticking is silent.
func (s *Service) Toggle(ctx context.Context, id int) (model.Task, error) {
	s.mu.Lock()
	var toggled *model.Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Done = !s.tasks[i].Done
			toggled = &s.tasks[i]
			break
		}
	}
	if toggled == nil {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("toggle task %d: %w", id, ErrTaskNotFound)
	}
	task := *toggled
	s.mu.Unlock()

	if task.Done {
		if err := s.notif.Push(ctx, "Task Completed!", fmt.Sprintf("Great job finishing: %s", task.Label)); err != nil {
			s.log.Warn("task completion push failed", zap.Error(err))
		}
	}
	return task, nil
}

// Progress reports the completion percentage and the calories of the
// completed activity tasks.
func (s *Service) Progress() (percent int, activeCalories int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return 0, 0
	}
	done := 0
	for _, task := range s.tasks {
		if task.Done {
			done++
			activeCalories += task.Calories
		}
	}
	return int(math.Round(float64(done) * 100 / float64(len(s.tasks)))), activeCalories
}
