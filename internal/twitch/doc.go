// Package twitch implements the live-stream watcher: a Helix API client,
// per-streamer session tracking that emits one notification per new
// broadcast, and the runner that drives the poll and token-refresh cadences.
package twitch
