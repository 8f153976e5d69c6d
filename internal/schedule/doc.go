// Package schedule provides cron expression handling for recurring
// maintenance work, such as the Twitch token-refresh cadence.
package schedule
