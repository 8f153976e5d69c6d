// Package opus turns a remote audio stream into Opus frames for Discord
// voice playback.
//
// Transcode runs FFmpeg against a stream URL and produces length-prefixed
// Opus frames ([uint16 LE length][opus bytes]). FrameReader reads them back.
// Stream sends decoded frames to a Discord voice connection with
// pause/resume/stop control.
package opus
