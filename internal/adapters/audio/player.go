// Package audio plays looping background noise through the sox play command.
package audio

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"

	"github.com/xvierd/pomodoro-timer/internal/config"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// Player owns at most one running noise generator process.
type Player struct {
	binary string
	volume float64
	logger *slog.Logger

	lookPath func(file string) (string, error)
	command  func(name string, args ...string) *exec.Cmd

	mu       sync.Mutex
	current  *playback
	disabled bool
	closed   bool
}

type playback struct {
	mode domain.BGMMode
	cmd  *exec.Cmd
	done chan struct{}
}

// Ensure Player implements ports.BackgroundAudio.
var _ ports.BackgroundAudio = (*Player)(nil)

// New creates a player for the configured binary and volume.
func New(cfg config.AudioConfig, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	binary := cfg.Player
	if binary == "" {
		binary = "play"
	}
	volume := cfg.Volume
	if volume <= 0 || volume > 1 {
		volume = 0.05
	}
	return &Player{
		binary:   binary,
		volume:   volume,
		logger:   logger,
		lookPath: exec.LookPath,
		command:  exec.Command,
	}
}

// Args returns the play arguments for a noise mode.
func Args(mode domain.BGMMode, volume float64) ([]string, error) {
	var noise string
	switch mode {
	case domain.BGMWhite:
		noise = "whitenoise"
	case domain.BGMPink:
		noise = "pinknoise"
	case domain.BGMBrown:
		noise = "brownnoise"
	default:
		return nil, fmt.Errorf("%w %q: no noise to play", domain.ErrInvalidBGMMode, mode)
	}
	return []string{"-q", "-n", "synth", noise, "vol", strconv.FormatFloat(volume, 'f', -1, 64)}, nil
}

// Play starts looping noise for mode, replacing any other noise.
// Playing the mode that is already playing does nothing.
func (p *Player) Play(mode domain.BGMMode) error {
	if mode == domain.BGMOff {
		return p.Stop()
	}
	args, err := Args(mode, p.volume)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed || p.disabled {
		p.mu.Unlock()
		return nil
	}
	if p.current != nil && p.current.mode == mode {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	if err := p.Stop(); err != nil {
		return err
	}

	path, err := p.lookPath(p.binary)
	if err != nil {
		p.mu.Lock()
		p.disabled = true
		p.mu.Unlock()
		p.logger.Info("background audio disabled", "player", p.binary, "error", err)
		return nil
	}

	cmd := p.command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.binary, err)
	}

	pb := &playback{mode: mode, cmd: cmd, done: make(chan struct{})}
	// current must be set before the waiter can observe an early exit.
	p.mu.Lock()
	p.current = pb
	p.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		close(pb.done)
		p.mu.Lock()
		if p.current == pb {
			p.current = nil
		}
		p.mu.Unlock()
	}()
	p.logger.Debug("background audio started", "mode", mode)
	return nil
}

// Stop ends playback and waits for the process to exit. It is safe to call
// when nothing is playing.
func (p *Player) Stop() error {
	p.mu.Lock()
	pb := p.current
	p.current = nil
	p.mu.Unlock()
	if pb == nil {
		return nil
	}

	if err := pb.cmd.Process.Kill(); err != nil {
		select {
		case <-pb.done:
			return nil
		default:
		}
		return fmt.Errorf("failed to stop background audio: %w", err)
	}
	<-pb.done
	p.logger.Debug("background audio stopped", "mode", pb.mode)
	return nil
}

// Playing returns the mode currently playing, or BGMOff.
func (p *Player) Playing() domain.BGMMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.BGMOff
	}
	return p.current.mode
}

// Close stops playback. Later calls to Play do nothing.
func (p *Player) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.Stop()
}
