package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xvierd/pomodoro-timer/internal/config"
	"github.com/xvierd/pomodoro-timer/internal/domain"
)

type recorder struct {
	mu      sync.Mutex
	beeps   int
	titles  []string
	failing bool
}

func (r *recorder) beep() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beeps++
	if r.failing {
		return errors.New("no audio device")
	}
	return nil
}

func (r *recorder) notify(title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
	if r.failing {
		return errors.New("no notification daemon")
	}
	return nil
}

func newTestNotifier(enabled bool, rec *recorder) *Notifier {
	n := New(&config.NotificationConfig{Enabled: enabled}, nil)
	n.beep = rec.beep
	n.notify = rec.notify
	return n
}

func TestNotifier_Sound(t *testing.T) {
	rec := &recorder{}
	n := newTestNotifier(true, rec)

	if !n.RequestPermission(context.Background()) {
		t.Fatal("RequestPermission() = false, want true")
	}
	if err := n.Notify(domain.NotificationSound, domain.ModeBreak); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	n.Wait()

	if rec.beeps != 1 {
		t.Errorf("beeps = %d, want 1", rec.beeps)
	}
	if len(rec.titles) != 0 {
		t.Errorf("desktop notifications = %v, want none", rec.titles)
	}
}

func TestNotifier_DesktopTitles(t *testing.T) {
	rec := &recorder{}
	n := newTestNotifier(true, rec)
	n.RequestPermission(context.Background())

	for _, mode := range []domain.Mode{domain.ModeWork, domain.ModeBreak, domain.ModeDone} {
		if err := n.Notify(domain.NotificationDesktop, mode); err != nil {
			t.Fatalf("Notify(%s) error = %v", mode, err)
		}
		n.Wait()
	}

	want := []string{"Break is over", "Pomodoro complete", "Goal reached"}
	if len(rec.titles) != len(want) {
		t.Fatalf("titles = %v, want %v", rec.titles, want)
	}
	for i := range want {
		if rec.titles[i] != want[i] {
			t.Errorf("titles[%d] = %q, want %q", i, rec.titles[i], want[i])
		}
	}
}

func TestNotifier_Disabled(t *testing.T) {
	rec := &recorder{}
	n := newTestNotifier(false, rec)

	if n.RequestPermission(context.Background()) {
		t.Error("RequestPermission() = true with notifications disabled")
	}
	_ = n.Notify(domain.NotificationSound, domain.ModeWork)
	_ = n.Notify(domain.NotificationDesktop, domain.ModeWork)
	n.Wait()

	if rec.beeps != 0 || len(rec.titles) != 0 {
		t.Errorf("disabled notifier delivered: beeps=%d titles=%v", rec.beeps, rec.titles)
	}
}

func TestNotifier_DeniedAfterFailure(t *testing.T) {
	rec := &recorder{failing: true}
	n := newTestNotifier(true, rec)
	n.RequestPermission(context.Background())

	for i := 0; i < 3; i++ {
		if err := n.Notify(domain.NotificationDesktop, domain.ModeBreak); err != nil {
			t.Fatalf("Notify() error = %v, failures must be suppressed", err)
		}
		n.Wait()
	}
	if len(rec.titles) != 1 {
		t.Errorf("desktop attempts = %d, want 1", len(rec.titles))
	}

	rec.failing = false
	if err := n.Notify(domain.NotificationSound, domain.ModeBreak); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	n.Wait()
	if rec.beeps != 1 {
		t.Errorf("sound should still work after desktop was denied, beeps = %d", rec.beeps)
	}
}

func TestNotifier_InvalidMode(t *testing.T) {
	n := newTestNotifier(true, &recorder{})
	if err := n.Notify("pigeon", domain.ModeWork); !errors.Is(err, domain.ErrInvalidNotificationMode) {
		t.Errorf("Notify() error = %v, want ErrInvalidNotificationMode", err)
	}
}
