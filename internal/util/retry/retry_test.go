package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPoll_DoneFirstAttempt(t *testing.T) {
	t.Parallel()
	attempts := 0
	condition := func(context.Context) (bool, error) {
		attempts++
		return true, nil
	}

	err := Poll(context.Background(), condition, WithInterval(time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestPoll_DoneAfterSeveralAttempts(t *testing.T) {
	t.Parallel()
	attempts := 0
	condition := func(context.Context) (bool, error) {
		attempts++
		return attempts == 3, nil
	}

	err := Poll(context.Background(), condition, WithInterval(time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestPoll_ConditionErrorStops(t *testing.T) {
	t.Parallel()
	attempts := 0
	sentinel := errors.New("lookup failed")
	condition := func(context.Context) (bool, error) {
		attempts++
		return false, sentinel
	}

	err := Poll(context.Background(), condition, WithInterval(time.Millisecond))

	if !errors.Is(err, sentinel) {
		t.Errorf("Expected sentinel error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestPoll_DeadlineInPastSkipsCondition(t *testing.T) {
	t.Parallel()
	attempts := 0
	condition := func(context.Context) (bool, error) {
		attempts++
		return true, nil
	}

	err := Poll(context.Background(), condition, WithDeadline(time.Now().Add(-time.Second)))

	if !errors.Is(err, ErrDeadlineExceeded) {
		t.Errorf("Expected ErrDeadlineExceeded, got: %v", err)
	}
	if attempts != 0 {
		t.Errorf("Expected no attempts, got: %d", attempts)
	}
}

func TestPoll_DeadlineWithFakeClock(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	clock := func() time.Time { return now }

	attempts := 0
	condition := func(context.Context) (bool, error) {
		attempts++
		now = now.Add(10 * time.Second)
		return false, nil
	}

	err := Poll(context.Background(), condition,
		WithInterval(time.Millisecond),
		WithClock(clock),
		WithDeadline(start.Add(30*time.Second)))

	if !errors.Is(err, ErrDeadlineExceeded) {
		t.Errorf("Expected ErrDeadlineExceeded, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts before the deadline, got: %d", attempts)
	}
}

func TestPoll_MaxAttempts(t *testing.T) {
	t.Parallel()
	attempts := 0
	condition := func(context.Context) (bool, error) {
		attempts++
		return false, nil
	}

	err := Poll(context.Background(), condition,
		WithInterval(time.Millisecond),
		WithMaxAttempts(4))

	if !errors.Is(err, ErrMaxAttempts) {
		t.Errorf("Expected ErrMaxAttempts, got: %v", err)
	}
	if attempts != 4 {
		t.Errorf("Expected 4 attempts, got: %d", attempts)
	}
}

func TestPoll_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	condition := func(context.Context) (bool, error) {
		attempts++
		return false, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poll(ctx, condition, WithInterval(50*time.Millisecond))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestPoll_FixedInterval(t *testing.T) {
	t.Parallel()
	var stamps []time.Time
	condition := func(context.Context) (bool, error) {
		stamps = append(stamps, time.Now())
		return len(stamps) == 3, nil
	}

	interval := 30 * time.Millisecond
	if err := Poll(context.Background(), condition, WithInterval(interval)); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < interval {
			t.Errorf("Gap %d shorter than the interval: %v < %v", i, gap, interval)
		}
	}
}
