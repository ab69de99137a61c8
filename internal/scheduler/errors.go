package scheduler

import "codeberg.org/mutker/devstatd/internal/errors"

const (
	ErrInvalidInterval = errors.ErrInvalidInterval

	// Timer Errors
	ErrTimerCreate = errors.ErrorCode("scheduler_timer_create_failed")
	ErrTimerArm    = errors.ErrorCode("scheduler_timer_arm_failed")
	ErrTimerWait   = errors.ErrorCode("scheduler_timer_wait_failed")
)
