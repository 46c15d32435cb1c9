package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xvierd/pomodoro-timer/internal/config"
	"github.com/xvierd/pomodoro-timer/internal/domain"
)

// TestHelperProcess stands in for the play binary. It blocks until killed,
// or exits at once when GO_HELPER_EXIT_NOW is set.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv("GO_HELPER_EXIT_NOW") == "1" {
		os.Exit(1)
	}
	time.Sleep(time.Minute)
	os.Exit(0)
}

type launches struct {
	mu   sync.Mutex
	args [][]string
}

func (l *launches) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.args)
}

func newTestPlayer(l *launches) *Player {
	p := New(config.AudioConfig{Player: "play", Volume: 0.05}, nil)
	p.lookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	p.command = func(name string, args ...string) *exec.Cmd {
		l.mu.Lock()
		l.args = append(l.args, append([]string{name}, args...))
		l.mu.Unlock()
		cmd := exec.Command(os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
	return p
}

func TestArgs(t *testing.T) {
	tests := []struct {
		mode domain.BGMMode
		want string
	}{
		{domain.BGMWhite, "-q -n synth whitenoise vol 0.05"},
		{domain.BGMPink, "-q -n synth pinknoise vol 0.05"},
		{domain.BGMBrown, "-q -n synth brownnoise vol 0.05"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			args, err := Args(tt.mode, 0.05)
			if err != nil {
				t.Fatalf("Args() error = %v", err)
			}
			if got := strings.Join(args, " "); got != tt.want {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Args(domain.BGMOff, 0.05); !errors.Is(err, domain.ErrInvalidBGMMode) {
		t.Errorf("Args(off) error = %v, want ErrInvalidBGMMode", err)
	}
}

func TestPlayer_PlayIsIdempotent(t *testing.T) {
	l := &launches{}
	p := newTestPlayer(l)
	defer func() { _ = p.Close() }()

	if err := p.Play(domain.BGMPink); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := p.Play(domain.BGMPink); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if l.count() != 1 {
		t.Errorf("launches = %d, want 1", l.count())
	}
	if p.Playing() != domain.BGMPink {
		t.Errorf("Playing() = %v, want pink", p.Playing())
	}
	if got := strings.Join(l.args[0], " "); got != "/usr/bin/play -q -n synth pinknoise vol 0.05" {
		t.Errorf("command = %q", got)
	}
}

func TestPlayer_SwitchMode(t *testing.T) {
	l := &launches{}
	p := newTestPlayer(l)
	defer func() { _ = p.Close() }()

	_ = p.Play(domain.BGMWhite)
	_ = p.Play(domain.BGMBrown)

	if l.count() != 2 {
		t.Errorf("launches = %d, want 2", l.count())
	}
	if p.Playing() != domain.BGMBrown {
		t.Errorf("Playing() = %v, want brown", p.Playing())
	}
}

func TestPlayer_StopAndPlayOff(t *testing.T) {
	l := &launches{}
	p := newTestPlayer(l)
	defer func() { _ = p.Close() }()

	if err := p.Stop(); err != nil {
		t.Errorf("Stop() with nothing playing error = %v", err)
	}

	_ = p.Play(domain.BGMWhite)
	if err := p.Play(domain.BGMOff); err != nil {
		t.Fatalf("Play(off) error = %v", err)
	}
	if p.Playing() != domain.BGMOff {
		t.Errorf("Playing() = %v, want off", p.Playing())
	}
	if err := p.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestPlayer_MissingBinary(t *testing.T) {
	l := &launches{}
	p := newTestPlayer(l)
	lookups := 0
	p.lookPath = func(file string) (string, error) {
		lookups++
		return "", fmt.Errorf("%s: %w", file, exec.ErrNotFound)
	}

	for i := 0; i < 3; i++ {
		if err := p.Play(domain.BGMWhite); err != nil {
			t.Fatalf("Play() error = %v, missing player must be silent", err)
		}
	}
	if lookups != 1 {
		t.Errorf("lookups = %d, want 1", lookups)
	}
	if l.count() != 0 {
		t.Errorf("launches = %d, want 0", l.count())
	}
}

func TestPlayer_CloseDisablesPlayback(t *testing.T) {
	l := &launches{}
	p := newTestPlayer(l)

	_ = p.Play(domain.BGMWhite)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	_ = p.Play(domain.BGMPink)

	if p.Playing() != domain.BGMOff {
		t.Errorf("Playing() after Close = %v, want off", p.Playing())
	}
	if l.count() != 1 {
		t.Errorf("launches = %d, want 1", l.count())
	}
}

func TestPlayer_RestartsAfterPlayerExits(t *testing.T) {
	l := &launches{}
	p := newTestPlayer(l)
	defer func() { _ = p.Close() }()
	launch := p.command
	p.command = func(name string, args ...string) *exec.Cmd {
		cmd := launch(name, args...)
		cmd.Env = append(cmd.Env, "GO_HELPER_EXIT_NOW=1")
		return cmd
	}

	if err := p.Play(domain.BGMPink); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for p.Playing() != domain.BGMOff {
		if time.Now().After(deadline) {
			t.Fatal("Playing() still reports pink after the player exited")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := p.Play(domain.BGMPink); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if l.count() != 2 {
		t.Errorf("launches = %d, want 2", l.count())
	}
}
