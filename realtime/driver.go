package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ludokit/statetree"
)

// ErrLoopRunning is returned by Step while the ticker loop owns the machine.
var ErrLoopRunning = errors.New("driver loop is running")

// Config configures a Driver.
type Config struct {
	// TickRate is the fixed frame interval (default 16.67ms, 60 FPS).
	TickRate time.Duration

	// PhysicsStep is the fixed physics interval fed to PhysicsTick via an
	// accumulator (default: TickRate).
	PhysicsStep time.Duration

	// MaxQueuedRequests bounds the per-tick request queue (default 256).
	MaxQueuedRequests int

	// Logger receives recovered tick panics and failed queued transitions.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Driver owns the cross-goroutine boundary around a single machine: requests
// go in from anywhere, the machine itself is touched only under the machine
// lock, one tick at a time.
type Driver struct {
	cfg     Config
	logger  *zap.Logger
	machine *statetree.Machine

	// machineMu serializes machine access between the loop and accessors.
	machineMu   sync.Mutex
	accumulator time.Duration

	batchMu     sync.Mutex
	batch       []request
	sequenceNum uint64
	tickNum     uint64

	ticker     *time.Ticker
	loopCancel context.CancelFunc
	stopped    chan struct{}
	running    bool
}

// NewDriver creates a driver around m. The machine must not be driven by
// anything else once handed to a driver.
func NewDriver(m *statetree.Machine, cfg Config) *Driver {
	if cfg.TickRate == 0 {
		cfg.TickRate = 16667 * time.Microsecond
	}
	if cfg.PhysicsStep == 0 {
		cfg.PhysicsStep = cfg.TickRate
	}
	if cfg.MaxQueuedRequests == 0 {
		cfg.MaxQueuedRequests = 256
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Driver{
		cfg:     cfg,
		logger:  logger,
		machine: m,
		batch:   make([]request, 0, cfg.MaxQueuedRequests),
		stopped: make(chan struct{}),
	}
}

// Start enters the machine's initial state and launches the tick loop.
func (d *Driver) Start(ctx context.Context) error {
	if err := d.StartManual(); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	d.loopCancel = cancel
	d.ticker = time.NewTicker(d.cfg.TickRate)
	d.running = true

	go d.loop(loopCtx)

	return nil
}

// StartManual enters the machine's initial state without launching a loop;
// the host drives frames through Step. Used by engine-owned update loops,
// replay harnesses and tests.
func (d *Driver) StartManual() error {
	d.machineMu.Lock()
	defer d.machineMu.Unlock()
	return d.machine.Start()
}

// Stop halts the tick loop. Safe to call only after Start.
func (d *Driver) Stop() {
	if d.loopCancel != nil {
		d.loopCancel()
	}
	if d.ticker != nil {
		d.ticker.Stop()
	}
	<-d.stopped
	d.running = false
}

// Step advances one frame with the given delta: drain queued requests, tick,
// accumulate physics steps. Only valid in manual mode.
func (d *Driver) Step(delta time.Duration) error {
	if d.running {
		return ErrLoopRunning
	}
	d.processTick(delta)
	return nil
}

// TickNumber returns the number of completed ticks.
func (d *Driver) TickNumber() uint64 {
	d.batchMu.Lock()
	defer d.batchMu.Unlock()
	return d.tickNum
}

// CurrentPath returns the machine's current state path. Thread-safe.
func (d *Driver) CurrentPath() string {
	d.machineMu.Lock()
	defer d.machineMu.Unlock()
	return d.machine.CurrentPath()
}

// CurrentName returns the machine's current state name. Thread-safe.
func (d *Driver) CurrentName() string {
	d.machineMu.Lock()
	defer d.machineMu.Unlock()
	return d.machine.CurrentName()
}

// Machine returns the wrapped machine. Callers must not drive it while the
// loop is running.
func (d *Driver) Machine() *statetree.Machine { return d.machine }

// loop is the fixed-rate tick goroutine.
func (d *Driver) loop(ctx context.Context) {
	defer close(d.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.ticker.C:
			d.safeTick(d.cfg.TickRate)
		}
	}
}

// safeTick runs one tick with panic recovery so a misbehaving hook cannot
// kill the loop mid-frame.
func (d *Driver) safeTick(delta time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("recovered panic in tick",
				zap.Uint64("tick", d.TickNumber()),
				zap.Any("panic", r))
		}
	}()
	d.processTick(delta)
}

// processTick runs the phases of one complete frame.
func (d *Driver) processTick(delta time.Duration) {
	batch := d.collect()
	sortRequests(batch)

	d.machineMu.Lock()
	defer d.machineMu.Unlock()

	for _, r := range batch {
		switch r.kind {
		case kindTransition:
			if err := d.machine.TransitionTo(r.path, r.msg); err != nil {
				d.logger.Error("queued transition failed",
					zap.String("target", r.path),
					zap.Error(err))
			}
		case kindInput:
			d.machine.HandleInput(r.event)
		}
	}

	d.machine.Tick(delta.Seconds())

	d.accumulator += delta
	for d.accumulator >= d.cfg.PhysicsStep {
		d.machine.PhysicsTick(d.cfg.PhysicsStep.Seconds())
		d.accumulator -= d.cfg.PhysicsStep
	}

	d.batchMu.Lock()
	d.tickNum++
	d.batchMu.Unlock()
}
