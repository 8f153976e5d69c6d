package opus

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os/exec"

	"github.com/jonas747/ogg"
)

// Transcode runs FFmpeg against an audio source (typically a remote stream
// URL) and returns an io.ReadCloser producing length-prefixed Opus frames.
// The caller should read until EOF and must Close to clean up the FFmpeg
// process. The reconnect flags keep long-lived remote streams alive across
// transient network drops.
func Transcode(ctx context.Context, ffmpegPath, input string) (io.ReadCloser, error) {
	ffmpeg := exec.CommandContext(ctx, ffmpegPath,
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", input,
		"-vn",
		"-map", "0:a",
		"-acodec", "libopus",
		"-f", "ogg",
		"-vbr", "on",
		"-compression_level", "10",
		"-ar", "48000",
		"-ac", "2",
		"-b:a", "96000",
		"-application", "audio",
		"-frame_duration", "20",
		"-packet_loss", "1",
		"-threads", "0",
		"pipe:1",
	)

	stdout, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := ffmpeg.Start(); err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()

	go func() {
		defer pw.Close()
		defer ffmpeg.Wait()

		decoder := ogg.NewPacketDecoder(ogg.NewDecoder(stdout))

		// Skip the first 2 OGG metadata packets.
		skip := 2
		for {
			packet, _, err := decoder.Decode()
			if skip > 0 {
				skip--
				continue
			}
			if err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
					pw.CloseWithError(err)
				}
				return
			}

			var lenBuf [2]byte
			binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(packet)))
			if _, err := pw.Write(lenBuf[:]); err != nil {
				return
			}
			if _, err := pw.Write(packet); err != nil {
				return
			}
		}
	}()

	return &transcodeCloser{ReadCloser: pr, cmd: ffmpeg}, nil
}

// transcodeCloser wraps the pipe reader and ensures the FFmpeg process is
// cleaned up.
type transcodeCloser struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (t *transcodeCloser) Close() error {
	err := t.ReadCloser.Close()
	// Kill FFmpeg if still running (e.g. pipe closed early).
	if t.cmd.Process != nil {
		t.cmd.Process.Kill()
	}
	t.cmd.Wait()
	return err
}
