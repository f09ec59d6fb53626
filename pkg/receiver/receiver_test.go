package receiver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/aisparser/pkg/decoder"
	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/receiver"
)

const feed = "!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0F\n" +
	"!AIVDM,2,1,1,A,55?MbV02;H;s<HtKR20EHE:0@T4@Dn2222222216L961O5Gf0NSQEp6ClRp8,0*1C\n" +
	"!AIVDM,2,2,1,A,88888888880,2*25\n" +
	"!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0E\n" +
	"!AIVDM,1,1,,A,15MgK45P3@G?fl0E`JbR0OwT0@MS,0*4E\n"

// trackingPlugin records initialization and shutdown order.
type trackingPlugin struct {
	name      string
	mu        *sync.Mutex
	order     *[]string
	initErr   error
	stopErr   error
	gotConfig receiver.PluginConfig
}

func (p *trackingPlugin) Name() string { return p.name }

func (p *trackingPlugin) Initialize(ctx context.Context, cfg receiver.PluginConfig) error {
	if p.initErr != nil {
		return p.initErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gotConfig = cfg
	*p.order = append(*p.order, "init "+p.name)
	return nil
}

func (p *trackingPlugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.order = append(*p.order, "stop "+p.name)
	return p.stopErr
}

// eventTracker collects events.
type eventTracker struct {
	receiver.BaseEventHandler
	mu      sync.Mutex
	states  []receiver.State
	records []receiver.Record
	errors  []error
}

func (e *eventTracker) OnStateChange(ev receiver.StateChangeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states = append(e.states, ev.Current)
}

func (e *eventTracker) OnRecord(ev receiver.RecordEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = append(e.records, ev.Record)
}

func (e *eventTracker) OnDecodeError(ev receiver.DecodeErrorEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errors = append(e.errors, ev.Error)
}

func writeFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.nmea")
	if err := os.WriteFile(path, []byte(feed), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func waitDone(t *testing.T, r *receiver.Receiver) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("receiver did not finish")
	}
}

func TestReceiver_DrainsFile(t *testing.T) {
	events := &eventTracker{}
	stateDir := t.TempDir()
	r, err := receiver.New(receiver.Config{Input: writeFeed(t), StateDir: stateDir},
		receiver.WithEventHandler(events))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitDone(t, r)

	if r.Status() != receiver.StateStopped {
		t.Errorf("Status = %v, want Stopped", r.Status())
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
	if err := r.Stop(); !errors.Is(err, receiver.ErrNotRunning) {
		t.Errorf("Stop() after drain = %v, want ErrNotRunning", err)
	}

	events.mu.Lock()
	defer events.mu.Unlock()
	if len(events.records) != 3 {
		t.Fatalf("got %d records, want 3", len(events.records))
	}
	for _, rec := range events.records {
		if rec.Session != r.SessionID() {
			t.Errorf("record session %q, want %q", rec.Session, r.SessionID())
		}
	}
	if len(events.errors) != 1 || !errors.Is(events.errors[0], decoder.ErrChecksumMismatch) {
		t.Errorf("unexpected decode errors %v", events.errors)
	}
	want := []receiver.State{receiver.StateStarting, receiver.StateRunning, receiver.StateStopping, receiver.StateStopped}
	if len(events.states) != len(want) {
		t.Fatalf("state changes %v, want %v", events.states, want)
	}
	for i := range want {
		if events.states[i] != want[i] {
			t.Errorf("state change %d = %v, want %v", i, events.states[i], want[i])
		}
	}

	if r.Cache().Len() != 3 {
		t.Errorf("cache holds %d vessels, want 3", r.Cache().Len())
	}
	if st := r.Stats(); st.Messages != 3 || st.Checksum != 1 || st.Lines != 5 {
		t.Errorf("unexpected stats %+v", st)
	}
	if _, err := os.Stat(filepath.Join(stateDir, "aisparser.state.json")); err != nil {
		t.Errorf("expected state file: %v", err)
	}
}

func TestReceiver_ResumesFromState(t *testing.T) {
	input := writeFeed(t)
	stateDir := t.TempDir()

	first, err := receiver.New(receiver.Config{Input: input, StateDir: stateDir})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitDone(t, first)

	f, err := os.OpenFile(input, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("!AIVDM,1,1,,A,15MgK45P3@G?fl0E`JbR0OwT0@MS,0*4E\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	second, err := receiver.New(receiver.Config{Input: input, StateDir: stateDir})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitDone(t, second)

	if second.Lines() != 1 || second.Records() != 1 {
		t.Fatalf("second run read %d lines, %d records; want 1 and 1", second.Lines(), second.Records())
	}
}

func TestReceiver_PluginOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	p1 := &trackingPlugin{name: "p1", mu: &mu, order: &order}
	p2 := &trackingPlugin{name: "p2", mu: &mu, order: &order}

	r, err := receiver.New(receiver.Config{Input: writeFeed(t), Follow: true, PollInterval: 10 * time.Millisecond},
		receiver.WithPlugin(p1), receiver.WithPlugin(p2), receiver.WithLogger(log.NewNoopLogger()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if r.Status() != receiver.StateRunning {
		t.Fatalf("Status = %v, want Running", r.Status())
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"init p1", "init p2", "stop p2", "stop p1"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if p1.gotConfig.Cache != r.Cache() || p1.gotConfig.SessionID != r.SessionID() {
		t.Error("plugin config does not carry the receiver cache and session")
	}
	if r.Status() != receiver.StateStopped {
		t.Errorf("Status = %v, want Stopped", r.Status())
	}
}

func TestReceiver_PluginInitFailure(t *testing.T) {
	var mu sync.Mutex
	var order []string
	p1 := &trackingPlugin{name: "p1", mu: &mu, order: &order}
	p2 := &trackingPlugin{name: "p2", mu: &mu, order: &order, initErr: errors.New("boom")}
	p3 := &trackingPlugin{name: "p3", mu: &mu, order: &order}

	r, err := receiver.New(receiver.Config{Input: writeFeed(t)},
		receiver.WithPlugin(p1), receiver.WithPlugin(p2), receiver.WithPlugin(p3))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("Start() should fail when a plugin fails to initialize")
	}
	if r.Status() != receiver.StateCrashed {
		t.Errorf("Status = %v, want Crashed", r.Status())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "init p1" || order[1] != "stop p1" {
		t.Errorf("order = %v, want p1 initialized then shut down", order)
	}
}

func TestReceiver_ShutdownErrorsCombined(t *testing.T) {
	var mu sync.Mutex
	var order []string
	p1 := &trackingPlugin{name: "p1", mu: &mu, order: &order, stopErr: errors.New("first")}
	p2 := &trackingPlugin{name: "p2", mu: &mu, order: &order, stopErr: errors.New("second")}

	r, err := receiver.New(receiver.Config{Input: writeFeed(t), Follow: true, PollInterval: 10 * time.Millisecond},
		receiver.WithPlugin(p1), receiver.WithPlugin(p2))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	err = r.Stop()
	if err == nil {
		t.Fatal("Stop() should report plugin shutdown errors")
	}
	if got := err.Error(); got != "plugin p2: second; plugin p1: first" {
		t.Errorf("Stop() = %q", got)
	}
}

func TestReceiver_StartTwice(t *testing.T) {
	r, err := receiver.New(receiver.Config{Input: writeFeed(t), Follow: true, PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer r.Stop()

	if err := r.Start(context.Background()); !errors.Is(err, receiver.ErrAlreadyRunning) {
		t.Errorf("second Start() = %v, want ErrAlreadyRunning", err)
	}
}

func TestReceiver_ParentContextCanceled(t *testing.T) {
	r, err := receiver.New(receiver.Config{Input: writeFeed(t), Follow: true, PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	cancel()
	waitDone(t, r)

	if r.Status() != receiver.StateStopped {
		t.Errorf("Status = %v, want Stopped", r.Status())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     receiver.Config
		wantErr bool
	}{
		{"file", receiver.Config{Input: "feed.nmea"}, false},
		{"serial", receiver.Config{Serial: "/dev/ttyUSB0", Baud: 38400}, false},
		{"no input", receiver.Config{}, true},
		{"both inputs", receiver.Config{Input: "a", Serial: "/dev/ttyUSB0"}, true},
		{"follow stdin", receiver.Config{Input: "-", Follow: true}, true},
		{"negative age", receiver.Config{Input: "a", VesselMaxAge: -time.Second}, true},
		{"bad policy", receiver.Config{Input: "a", Checksum: decoder.ChecksumPolicy(7)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, receiver.ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not match ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_ValidateReportsAll(t *testing.T) {
	cfg := receiver.Config{Input: "-", Follow: true, PollInterval: -1, FragmentMaxAge: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "aisparser: invalid configuration: stdin cannot be followed; poll interval must not be negative; fragment max age must not be negative"
	if err.Error() != want {
		t.Errorf("Validate() = %q\nwant %q", err.Error(), want)
	}
}
