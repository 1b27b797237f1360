package synth

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cwbudde/algo-soundscape/dsp/osc"
)

const testRate = 16000

type fakeStream struct {
	played atomic.Bool
	closed atomic.Bool
}

func (s *fakeStream) Play()        { s.played.Store(true) }
func (s *fakeStream) Close() error { s.closed.Store(true); return nil }

type fakeDevice struct {
	mu      sync.Mutex
	opens   int
	err     error
	entered chan struct{} // closed when Open is entered, if set
	release chan struct{} // Open blocks until closed, if set
	src     io.Reader
	stream  *fakeStream
}

func (d *fakeDevice) Open(ctx context.Context, sampleRate, channels int, src io.Reader) (Stream, error) {
	if d.entered != nil {
		close(d.entered)
	}

	if d.release != nil {
		select {
		case <-d.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.opens++
	if d.err != nil {
		return nil, d.err
	}

	if sampleRate != testRate || channels != 2 {
		return nil, errors.New("unexpected stream format")
	}

	d.src = src
	d.stream = &fakeStream{}

	return d.stream, nil
}

func (d *fakeDevice) openCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.opens
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeDevice) {
	t.Helper()

	dev := &fakeDevice{}
	opts = append([]Option{WithSampleRate(testRate), WithSeed(1)}, opts...)

	return New(dev, opts...), dev
}

func mustInit(t *testing.T, e *Engine) {
	t.Helper()

	if err := e.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
}

// renderFor renders d worth of audio and returns it.
func renderFor(e *Engine, d time.Duration) []float32 {
	frames := int(d.Seconds() * testRate)
	buf := make([]float32, 2*frames)
	e.Render(buf)

	return buf
}

func TestNewIsUninitialized(t *testing.T) {
	e, _ := newTestEngine(t)

	if e.State() != Uninitialized {
		t.Fatalf("state = %v", e.State())
	}

	if e.Level() != 0 {
		t.Fatalf("level = %v, want 0", e.Level())
	}

	if e.Waveform() != osc.Sine {
		t.Fatalf("waveform = %v", e.Waveform())
	}

	if e.SampleRate() != testRate {
		t.Fatalf("sample rate = %v", e.SampleRate())
	}

	for _, spec := range ParamSpecs() {
		if v, ok := e.Parameter(spec.Name); !ok || v != spec.Default {
			t.Fatalf("%s = %v (%v), want default %v", spec.Name, v, ok, spec.Default)
		}
	}

	buf := []float32{1, 1, 1, 1, 1}
	e.Render(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v before initialization", i, v)
		}
	}
}

func TestSettersBeforeInitializeAreNoOps(t *testing.T) {
	e, dev := newTestEngine(t)

	e.SetParameter(ParamFilterFrequency, 1000)
	e.SetFrequencyFromNormalized(1)
	e.Start()
	e.Stop()

	if v, _ := e.Target(ParamFilterFrequency); v != 2000 {
		t.Fatalf("filterFrequency target = %v, want 2000", v)
	}

	if v, _ := e.Target(ParamFrequency); v != 440 {
		t.Fatalf("frequency target = %v, want 440", v)
	}

	if e.State() != Uninitialized || dev.openCount() != 0 {
		t.Fatalf("state = %v, opens = %d", e.State(), dev.openCount())
	}

	// The waveform preference is remembered for later.
	e.SetWaveformSource(osc.Triangle)
	if e.Waveform() != osc.Triangle {
		t.Fatalf("waveform = %v, want triangle", e.Waveform())
	}

	mustInit(t, e)

	if got := e.rt.osc.osc.Waveform(); got != osc.Triangle {
		t.Fatalf("oscillator built as %v, want triangle", got)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	e, dev := newTestEngine(t)

	mustInit(t, e)
	rt := e.rt
	mustInit(t, e)

	if dev.openCount() != 1 {
		t.Fatalf("device opened %d times", dev.openCount())
	}

	if e.rt != rt {
		t.Fatal("graph rebuilt by second Initialize")
	}

	if e.State() != Stopped {
		t.Fatalf("state = %v, want stopped", e.State())
	}

	if !dev.stream.played.Load() {
		t.Fatal("stream not started")
	}

	if !e.rt.osc.osc.Running() {
		t.Fatal("oscillator not started")
	}

	if v := e.env.Value(); v != EnvelopeOff {
		t.Fatalf("envelope = %v, want closed", v)
	}
}

func TestInitializeFailureLeavesUninitialized(t *testing.T) {
	e, dev := newTestEngine(t)

	deviceErr := errors.New("no audio hardware")
	dev.err = deviceErr

	err := e.Initialize(context.Background())
	if !errors.Is(err, ErrDeviceUnavailable) || !errors.Is(err, deviceErr) {
		t.Fatalf("err = %v, want ErrDeviceUnavailable wrapping device error", err)
	}

	if e.State() != Uninitialized {
		t.Fatalf("state = %v after failure", e.State())
	}

	if err := e.Toggle(context.Background()); !errors.Is(err, deviceErr) {
		t.Fatalf("Toggle err = %v", err)
	}

	dev.mu.Lock()
	dev.err = nil
	dev.mu.Unlock()

	mustInit(t, e)

	if dev.openCount() != 3 {
		t.Fatalf("opens = %d, want 3", dev.openCount())
	}
}

func TestInitializeCanceledContext(t *testing.T) {
	e, dev := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := e.Initialize(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	if dev.openCount() != 0 || e.State() != Uninitialized {
		t.Fatalf("opens = %d, state = %v", dev.openCount(), e.State())
	}
}

func TestConcurrentInitializeIsGuarded(t *testing.T) {
	e, dev := newTestEngine(t)
	dev.entered = make(chan struct{})
	dev.release = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- e.Initialize(context.Background()) }()

	<-dev.entered

	if err := e.Initialize(context.Background()); !errors.Is(err, ErrInitializing) {
		t.Fatalf("concurrent Initialize err = %v, want ErrInitializing", err)
	}

	// Control calls during initialization are still no-ops.
	e.SetParameter(ParamReverbMix, 1)
	e.Start()

	close(dev.release)

	if err := <-done; err != nil {
		t.Fatalf("first Initialize: %v", err)
	}

	if e.State() != Stopped {
		t.Fatalf("state = %v", e.State())
	}

	if v, _ := e.Parameter(ParamReverbMix); v != 0.3 {
		t.Fatalf("reverbMix = %v, want default", v)
	}
}

func TestToggle(t *testing.T) {
	e, dev := newTestEngine(t)
	ctx := context.Background()

	if err := e.Toggle(ctx); err != nil {
		t.Fatal(err)
	}

	if e.State() != Playing || dev.openCount() != 1 {
		t.Fatalf("after first toggle: state = %v, opens = %d", e.State(), dev.openCount())
	}

	if err := e.Toggle(ctx); err != nil {
		t.Fatal(err)
	}

	if e.State() != Stopped {
		t.Fatalf("after second toggle: state = %v", e.State())
	}

	if err := e.Toggle(ctx); err != nil {
		t.Fatal(err)
	}

	if e.State() != Playing || dev.openCount() != 1 {
		t.Fatalf("after third toggle: state = %v, opens = %d", e.State(), dev.openCount())
	}
}

func TestEnvelopeRamps(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e)

	e.Start()

	if e.env.Target() != EnvelopeOn {
		t.Fatalf("envelope target = %v", e.env.Target())
	}

	renderFor(e, 50*time.Millisecond)

	if v := e.env.Value(); v <= 0.1 || v >= EnvelopeOn {
		t.Fatalf("envelope halfway = %v, want mid-ramp", v)
	}

	renderFor(e, 60*time.Millisecond)

	if v := e.env.Value(); v != EnvelopeOn {
		t.Fatalf("envelope = %v, want %v", v, EnvelopeOn)
	}

	e.Stop()
	renderFor(e, 110*time.Millisecond)

	if v := e.env.Value(); v != EnvelopeOff {
		t.Fatalf("envelope = %v, want 0", v)
	}
}

func TestSetParameterClampsAndRamps(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e)

	e.SetParameter(ParamFilterFrequency, 99999)
	e.SetParameter(ParamDelayTime, -3)
	e.SetParameter("bogus", 1)

	if v, _ := e.Target(ParamFilterFrequency); v != 5000 {
		t.Fatalf("filterFrequency target = %v, want 5000", v)
	}

	if v, _ := e.Parameter(ParamFilterFrequency); v != 2000 {
		t.Fatalf("filterFrequency jumped to %v before rendering", v)
	}

	renderFor(e, 60*time.Millisecond)

	if v, _ := e.Parameter(ParamFilterFrequency); v != 5000 {
		t.Fatalf("filterFrequency = %v after ramp, want 5000", v)
	}

	if v, _ := e.Parameter(ParamDelayTime); v != 0 {
		t.Fatalf("delayTime = %v, want 0", v)
	}

	if _, ok := e.Parameter("bogus"); ok {
		t.Fatal("unknown parameter reported as present")
	}
}

func TestSetFrequencyFromNormalized(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e)

	tests := []struct {
		v, want float64
	}{
		{0, 110},
		{1, 1760},
		{0.2, 110 * math.Pow(16, 0.2)},
		{0.5, 440},
		{-1, 110},
		{2, 1760},
	}

	for _, tc := range tests {
		e.SetFrequencyFromNormalized(tc.v)

		got, _ := e.Target(ParamFrequency)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("v=%v: frequency = %v, want %v", tc.v, got, tc.want)
		}
	}

	prev := 0.0
	for i := range 101 {
		f := FrequencyFromNormalized(float64(i) / 100)
		if f <= prev {
			t.Fatalf("not increasing at %d: %v <= %v", i, f, prev)
		}

		prev = f
	}
}

func TestWaveformSwapKeepsFrequency(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e)

	e.SetParameter(ParamFrequency, 880)
	renderFor(e, 60*time.Millisecond)

	first := e.rt.osc.osc

	for _, w := range []osc.Waveform{osc.Square, osc.Sawtooth, osc.Triangle, osc.Sine} {
		e.SetWaveformSource(w)

		o := e.rt.osc.osc
		if o.Waveform() != w || e.Waveform() != w {
			t.Fatalf("waveform = %v/%v, want %v", o.Waveform(), e.Waveform(), w)
		}

		if math.Abs(o.Frequency()-880) > 1e-9 {
			t.Fatalf("%v: frequency = %v, want 880", w, o.Frequency())
		}

		if !o.Running() {
			t.Fatalf("%v: replacement oscillator not running", w)
		}

		if v, _ := e.Parameter(ParamFrequency); v != 880 {
			t.Fatalf("frequency parameter = %v", v)
		}
	}

	if e.rt.osc.osc == first {
		t.Fatal("oscillator was not replaced")
	}

	e.SetWaveformSource(osc.Waveform(99))
	if e.Waveform() != osc.Sine {
		t.Fatalf("invalid waveform accepted: %v", e.Waveform())
	}
}

func TestLevel(t *testing.T) {
	e, _ := newTestEngine(t)

	if e.Level() != 0 {
		t.Fatal("level before initialization must be 0")
	}

	if err := e.Toggle(context.Background()); err != nil {
		t.Fatal(err)
	}

	renderFor(e, 300*time.Millisecond)

	level := e.Level()
	if level <= 0 || level > 1 {
		t.Fatalf("level = %v, want in (0, 1]", level)
	}
}

func TestRenderProducesFiniteStereo(t *testing.T) {
	e, _ := newTestEngine(t)

	if err := e.Toggle(context.Background()); err != nil {
		t.Fatal(err)
	}

	e.SetParameter(ParamReverbMix, 1)
	buf := renderFor(e, 500*time.Millisecond)

	var energy float64
	differ := false

	for i := 0; i < len(buf); i += 2 {
		l, r := buf[i], buf[i+1]
		if math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
			t.Fatalf("frame %d not finite", i/2)
		}

		energy += float64(l * l)
		if l != r {
			differ = true
		}
	}

	if energy == 0 {
		t.Fatal("no output while playing")
	}

	if !differ {
		t.Fatal("reverb produced identical channels")
	}
}

func TestRenderIsDeterministicWithSeed(t *testing.T) {
	play := func() []float32 {
		e, _ := newTestEngine(t, WithSeed(7))
		if err := e.Toggle(context.Background()); err != nil {
			t.Fatal(err)
		}

		e.SetParameter(ParamDelayTime, 0.05)

		out := renderFor(e, 100*time.Millisecond)
		e.SetWaveformSource(osc.Square)

		return append(out, renderFor(e, 100*time.Millisecond)...)
	}

	a, b := play(), play()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRenderOddChunks(t *testing.T) {
	ref, _ := newTestEngine(t)
	chunked, _ := newTestEngine(t)

	for _, e := range []*Engine{ref, chunked} {
		if err := e.Toggle(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	want := make([]float32, 2*1000)
	ref.Render(want)

	got := make([]float32, 0, len(want))
	for _, n := range []int{1, 37, 128, 200, 634} {
		buf := make([]float32, 2*n)
		chunked.Render(buf)
		got = append(got, buf...)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: %v vs %v", i, got[i], want[i])
		}
	}
}

func TestReaderDeliversFloat32Frames(t *testing.T) {
	e, dev := newTestEngine(t)

	if err := e.Toggle(context.Background()); err != nil {
		t.Fatal(err)
	}

	p := make([]byte, 8*300+5)

	n, err := dev.src.Read(p)
	if err != nil {
		t.Fatal(err)
	}

	if n != 8*300 {
		t.Fatalf("n = %d, want whole frames", n)
	}

	for i := 0; i < n; i += 4 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(p[i:]))
		if math.IsNaN(float64(v)) || math.Abs(float64(v)) > 4 {
			t.Fatalf("sample %d = %v", i/4, v)
		}
	}

	if n, _ := dev.src.Read(make([]byte, 7)); n != 0 {
		t.Fatalf("partial frame read = %d bytes", n)
	}
}

func TestClose(t *testing.T) {
	e, dev := newTestEngine(t)
	mustInit(t, e)

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	if !dev.stream.closed.Load() {
		t.Fatal("stream not closed")
	}

	if err := e.Toggle(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("Toggle after Close err = %v", err)
	}

	buf := []float32{1, 1}
	e.Render(buf)

	if buf[0] != 0 || buf[1] != 0 {
		t.Fatal("render after Close is not silent")
	}

	if e.Level() != 0 {
		t.Fatal("level after Close must be 0")
	}

	if err := e.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestControlWhileRendering(t *testing.T) {
	e, _ := newTestEngine(t)
	mustInit(t, e)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		buf := make([]float32, 512)
		for {
			select {
			case <-stop:
				return
			default:
				e.Render(buf)
			}
		}
	}()

	for i := range 200 {
		x := float64(i) / 200
		e.SetParameter(ParamFilterFrequency, 200+x*4800)
		e.SetParameter(ParamFilterQ, 1+x*19)
		e.SetWaveformSource(osc.Waveforms()[i%4])
		_ = e.Level()

		if i%50 == 0 {
			if err := e.Toggle(context.Background()); err != nil {
				t.Error(err)
			}
		}
	}

	close(stop)
	wg.Wait()
}

func TestTopology(t *testing.T) {
	c, err := Topology()
	if err != nil {
		t.Fatal(err)
	}

	if len(c.Order) != 15 {
		t.Fatalf("nodes = %d, want 15", len(c.Order))
	}

	if !c.HasFeedback || c.Feedback.From != "feedback" || c.Feedback.To != "delay" {
		t.Fatalf("feedback edge = %+v", c.Feedback)
	}

	if c.Nodes["feedback"].Num["gain"] != 0.4 || c.Nodes["master"].Num["gain"] != 0.8 {
		t.Fatal("fixed gains not parsed")
	}

	if c.Order[len(c.Order)-1] != "output" {
		t.Fatalf("output is not last: %v", c.Order)
	}
}
