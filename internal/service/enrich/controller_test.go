package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tagebuch/internal/service/ai"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs every timer that is still armed and returns how many ran.
func (c *manualClock) fire() int {
	c.mu.Lock()
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
	return len(due)
}

func (c *manualClock) armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type call struct {
	text  string
	reply chan result
}

type result struct {
	answer string
	err    error
}

// scriptedCorrector hands each request to the test, which answers it.
type scriptedCorrector struct {
	calls chan call
}

func newScripted() *scriptedCorrector {
	return &scriptedCorrector{calls: make(chan call, 8)}
}

func (s *scriptedCorrector) Correct(ctx context.Context, text string) (string, error) {
	c := call{text: text, reply: make(chan result, 1)}
	s.calls <- c
	select {
	case r := <-c.reply:
		return r.answer, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *scriptedCorrector) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-s.calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("no correction request")
		return call{}
	}
}

func newTestController(c Corrector) (*Controller, *manualClock) {
	clock := &manualClock{}
	return NewController(c, Options{Delay: time.Second, Clock: clock}), clock
}

func TestController_EditsWithinIntervalDispatchOnce(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	ctrl.Edit("Ich bin")
	ctrl.Edit("Ich bin glücklich")
	ctrl.Edit("Ich bin glücklich heute")
	require.Equal(t, 1, clock.armed())
	require.Equal(t, StatusPending, ctrl.Snapshot().Status)
	require.Equal(t, time.Second, clock.timers[2].d)

	require.Equal(t, 1, clock.fire())
	c := sc.next(t)
	require.Equal(t, "Ich bin glücklich heute", c.text)
	require.Equal(t, StatusThinking, ctrl.Snapshot().Status)
	require.Equal(t, "KI denkt …", ctrl.Snapshot().Message)

	c.reply <- result{answer: "  Ich bin heute glücklich.\n"}
	ctrl.Wait()

	snap := ctrl.Snapshot()
	require.Equal(t, "Ich bin heute glücklich.", snap.Correction)
	require.Equal(t, StatusCorrected, snap.Status)
	require.Equal(t, "Korrigiert ✔", snap.Message)
	require.Len(t, sc.calls, 0)
}

func TestController_StaleAnswerDiscarded(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	ctrl.Edit("Ich habe Fehler")
	clock.fire()
	c := sc.next(t)

	ctrl.Edit("Ich habe keine Fehler")
	c.reply <- result{answer: "Ich habe Fehler."}
	ctrl.Wait()

	snap := ctrl.Snapshot()
	require.Empty(t, snap.Correction)
	require.Equal(t, StatusPending, snap.Status)
	require.Equal(t, "Ich habe Fehler", snap.LastDispatched)

	clock.fire()
	c = sc.next(t)
	require.Equal(t, "Ich habe keine Fehler", c.text)
	c.reply <- result{answer: "Ich habe keine Fehler."}
	ctrl.Wait()
	require.Equal(t, "Ich habe keine Fehler.", ctrl.Snapshot().Correction)
}

func TestController_OlderAnswerAfterNewerDispatchDiscarded(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	ctrl.Edit("eins")
	clock.fire()
	first := sc.next(t)

	ctrl.Edit("zwei")
	clock.fire()
	second := sc.next(t)

	second.reply <- result{answer: "Zwei."}
	first.reply <- result{answer: "Eins."}
	ctrl.Wait()

	snap := ctrl.Snapshot()
	require.Equal(t, "Zwei.", snap.Correction)
	require.Equal(t, StatusCorrected, snap.Status)
}

func TestController_EmptyTextClearsImmediately(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	ctrl.Reset("Hallo", "Hallo!")
	require.Equal(t, "Hallo!", ctrl.Snapshot().Correction)

	ctrl.Edit("Hallo Welt")
	require.Equal(t, 1, clock.armed())

	ctrl.Edit("   \n")
	snap := ctrl.Snapshot()
	require.Empty(t, snap.Correction)
	require.Equal(t, StatusIdle, snap.Status)
	require.Empty(t, snap.Message)
	require.False(t, snap.Pending)
	require.Equal(t, 0, clock.armed())
	require.Equal(t, 0, clock.fire())
	require.Len(t, sc.calls, 0)
}

func TestController_EmptyAnswerKeepsCorrection(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	ctrl.Reset("Hallo", "Hallo!")
	ctrl.Edit("Hallo")
	clock.fire()
	sc.next(t).reply <- result{answer: "  "}
	ctrl.Wait()

	snap := ctrl.Snapshot()
	require.Equal(t, StatusEmpty, snap.Status)
	require.Equal(t, "Keine Antwort von der KI erhalten.", snap.Message)
	require.Equal(t, "Hallo!", snap.Correction)
}

func TestController_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Status
	}{
		{"provider error", errors.New("502 bad gateway"), StatusFailed},
		{"still loading", ai.ErrNotReady, StatusNotReady},
		{"load failed", ai.ErrProviderFailed, StatusNotReady},
		{"no key", ai.ErrMissingAPIKey, StatusNotReady},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc := newScripted()
			ctrl, clock := newTestController(sc)
			defer ctrl.Close()

			ctrl.Edit("Guten Tag")
			clock.fire()
			sc.next(t).reply <- result{err: tc.err}
			ctrl.Wait()

			snap := ctrl.Snapshot()
			require.Equal(t, tc.want, snap.Status)
			require.Empty(t, snap.Correction)
			require.Equal(t, 0, clock.armed(), "no retry")
			require.Len(t, sc.calls, 0)
		})
	}
}

func TestController_CorrectNow(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	require.False(t, ctrl.CorrectNow())

	ctrl.Edit("Wie geht es dir")
	require.True(t, ctrl.CorrectNow())
	require.Equal(t, 0, clock.armed())

	sc.next(t).reply <- result{answer: "Wie geht es dir?"}
	ctrl.Wait()
	require.Equal(t, "Wie geht es dir?", ctrl.Snapshot().Correction)

	require.Equal(t, 0, clock.fire(), "the cancelled timer must not dispatch again")
}

func TestController_FiredCallbackAfterEditIsIgnored(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	ctrl.Edit("alt")
	stale := clock.timers[0].f
	ctrl.Edit("neu")

	stale()
	require.Len(t, sc.calls, 0)
	require.Equal(t, StatusPending, ctrl.Snapshot().Status)
}

func TestController_TimeoutIsFailure(t *testing.T) {
	block := CorrectorFunc(func(ctx context.Context, text string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	clock := &manualClock{}
	ctrl := NewController(block, Options{Delay: time.Second, Timeout: 10 * time.Millisecond, Clock: clock})
	defer ctrl.Close()

	ctrl.Edit("Langsam")
	clock.fire()
	ctrl.Wait()
	require.Equal(t, StatusFailed, ctrl.Snapshot().Status)
}

func TestController_CloseCancelsInFlight(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)

	ctrl.Edit("Tschüss")
	clock.fire()
	sc.next(t)
	require.Equal(t, 1, ctrl.Snapshot().InFlight)

	ctrl.Close()
	snap := ctrl.Snapshot()
	require.Equal(t, StatusThinking, snap.Status)
	require.Equal(t, 0, snap.InFlight)

	ctrl.Edit("nach dem Schließen")
	require.Equal(t, "Tschüss", ctrl.Snapshot().Text)
	require.False(t, ctrl.CorrectNow())
	ctrl.Close()
}

func TestController_RealClock(t *testing.T) {
	done := make(chan string, 1)
	corr := CorrectorFunc(func(ctx context.Context, text string) (string, error) {
		done <- text
		return text + ".", nil
	})
	ctrl := NewController(corr, Options{Delay: 20 * time.Millisecond})
	defer ctrl.Close()

	ctrl.Edit("Hallo")
	select {
	case text := <-done:
		require.Equal(t, "Hallo", text)
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	require.Eventually(t, func() bool {
		return ctrl.Snapshot().Status == StatusCorrected
	}, time.Second, 5*time.Millisecond)
}

func TestStatusMessages(t *testing.T) {
	require.Equal(t, "", StatusIdle.Message())
	require.Equal(t, "Warte auf Tipp-Pause …", StatusPending.Message())
	require.Equal(t, "KI konnte nicht geladen werden.", StatusNotReady.Message())
	require.Equal(t, "Fehler bei der KI-Korrektur.", StatusFailed.Message())
}

func TestController_ReturningToInFlightTextWaitsForIt(t *testing.T) {
	sc := newScripted()
	ctrl, clock := newTestController(sc)
	defer ctrl.Close()

	ctrl.Edit("Ich habe Fehler")
	clock.fire()
	c := sc.next(t)

	ctrl.Edit("Ich habe Fehler!")
	require.Equal(t, 1, clock.armed())
	ctrl.Edit("Ich habe Fehler ")
	require.Zero(t, clock.armed(), "no second request for the text in flight")
	snap := ctrl.Snapshot()
	require.Equal(t, StatusThinking, snap.Status)
	require.False(t, snap.Pending)

	c.reply <- result{answer: "Ich habe Fehler."}
	ctrl.Wait()

	snap = ctrl.Snapshot()
	require.Equal(t, StatusCorrected, snap.Status)
	require.Equal(t, "Ich habe Fehler.", snap.Correction)
	require.False(t, snap.Pending)
	require.Zero(t, clock.fire())
	require.Empty(t, sc.calls)
}
