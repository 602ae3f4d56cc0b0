package model

import "time"

type ReminderState string

const (
	ReminderNone      ReminderState = "none"
	ReminderArmed     ReminderState = "armed"
	ReminderDue       ReminderState = "due"
	ReminderFired     ReminderState = "fired"
	ReminderCancelled ReminderState = "cancelled"
)

// ReminderState reports where the task's reminder sits at now. A due
// reminder is armed and past its trigger time but not yet notified.
func (t Task) ReminderState(now time.Time) ReminderState {
	switch {
	case t.ReminderTime == nil:
		return ReminderNone
	case t.ReminderFiredAt != nil:
		return ReminderFired
	case t.Completed:
		return ReminderCancelled
	case t.ReminderTime.After(now):
		return ReminderArmed
	default:
		return ReminderDue
	}
}
