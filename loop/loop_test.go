package loop

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosprite/animation"
	"github.com/richinsley/gosprite/graphics"
	"github.com/richinsley/gosprite/input"
	"github.com/richinsley/gosprite/transform"
)

// recorder collects backend calls from both fakes in the order they happen.
type recorder struct {
	calls []string
}

func (r *recorder) add(name string) { r.calls = append(r.calls, name) }

type fakeWindow struct {
	rec        *recorder
	batches    [][]graphics.Event
	polls      int
	now        float64
	tick       float64
	presentErr error
}

func (w *fakeWindow) MakeCurrent() {}
func (w *fakeWindow) Shutdown()    {}

func (w *fakeWindow) PollEvents() []graphics.Event {
	w.polls++
	if len(w.batches) == 0 {
		return nil
	}
	b := w.batches[0]
	w.batches = w.batches[1:]
	return b
}

func (w *fakeWindow) Present() error {
	w.rec.add("present")
	return w.presentErr
}

func (w *fakeWindow) GetFramebufferSize() (int, int) { return 640, 480 }

func (w *fakeWindow) Time() float64 {
	t := w.now
	w.now += w.tick
	return t
}

type fakeDevice struct {
	rec      *recorder
	blocks   []transform.UniformBlock
	clears   [][4]float32
	flushErr error
}

func (d *fakeDevice) UploadUniform(_ graphics.Handle, b *transform.UniformBlock) error {
	d.rec.add("upload")
	d.blocks = append(d.blocks, *b)
	return nil
}

func (d *fakeDevice) Clear(_ graphics.Handle, rgba [4]float32) {
	d.rec.add("clear")
	d.clears = append(d.clears, rgba)
}

func (d *fakeDevice) Draw(graphics.Slice, graphics.Handle, graphics.Resources) { d.rec.add("draw") }

func (d *fakeDevice) Flush() error {
	d.rec.add("flush")
	return d.flushErr
}

func (d *fakeDevice) Cleanup() { d.rec.add("cleanup") }

var testConfig = Config{
	WindowWidth:  640,
	WindowHeight: 480,
	SpriteWidth:  266,
	SpriteHeight: 266,
	Near:         -1,
	Far:          10,
	ClearColor:   [4]float32{0.59, 0.93, 0.59, 1},
}

func newTestLoop(policy animation.Policy, batches ...[]graphics.Event) (*Loop, *fakeWindow, *fakeDevice) {
	rec := &recorder{}
	w := &fakeWindow{rec: rec, batches: batches}
	d := &fakeDevice{rec: rec}
	return New(testConfig, w, d, graphics.Bindings{}, policy), w, d
}

var frameCalls = []string{"upload", "clear", "draw", "flush", "present", "cleanup"}

func TestStepIssuesCommandsInOrder(t *testing.T) {
	l, w, _ := newTestLoop(animation.Static{})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(w.rec.calls, frameCalls) {
		t.Fatalf("calls = %v, want %v", w.rec.calls, frameCalls)
	}
	if l.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", l.Frames())
	}
}

func TestStepUploadsModelAndProjection(t *testing.T) {
	l, _, d := newTestLoop(animation.Static{})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	got := d.blocks[0]
	if l.Uniforms() != got {
		t.Errorf("Uniforms() = %v, want the uploaded block %v", l.Uniforms(), got)
	}
	want := transform.Model(mgl32.Vec2{320, 240}, 266, 266)
	if got.Model != want {
		t.Errorf("model = %v, want %v", got.Model, want)
	}
	if got.Projection != transform.NewProjection(640, 480, -1, 10).Matrix() {
		t.Errorf("projection = %v", got.Projection)
	}
	if got.Tint != transform.White {
		t.Errorf("tint = %v, want white", got.Tint)
	}
	if d.clears[0] != testConfig.ClearColor {
		t.Errorf("clear color = %v, want %v", d.clears[0], testConfig.ClearColor)
	}
}

func TestKeyboardScenarios(t *testing.T) {
	tests := []struct {
		name   string
		events []graphics.Event
		want   mgl32.Vec2
	}{
		{"left press", []graphics.Event{graphics.KeyPress(input.KeyLeft)}, mgl32.Vec2{314, 240}},
		{"left and right cancel", []graphics.Event{graphics.KeyPress(input.KeyLeft), graphics.KeyPress(input.KeyRight)}, mgl32.Vec2{320, 240}},
		{"press then release", []graphics.Event{graphics.KeyPress(input.KeyLeft), graphics.KeyRelease(input.KeyLeft)}, mgl32.Vec2{320, 240}},
		{"other events ignored", []graphics.Event{graphics.OtherEvent(), graphics.KeyPress(input.KeyOther), graphics.KeyPress(input.KeyUp)}, mgl32.Vec2{320, 246}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, _ := newTestLoop(animation.Keyboard{Speed: 6}, tt.events)
			if err := l.Step(); err != nil {
				t.Fatal(err)
			}
			if got := l.Position(); got != tt.want {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReleaseClearsFlag(t *testing.T) {
	l, _, _ := newTestLoop(animation.Keyboard{Speed: 6},
		[]graphics.Event{graphics.KeyPress(input.KeyLeft), graphics.KeyRelease(input.KeyLeft)})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if l.Input().Left {
		t.Fatal("left still pressed after release")
	}
}

func TestHeldKeyKeepsMoving(t *testing.T) {
	l, _, _ := newTestLoop(animation.Keyboard{Speed: 6},
		[]graphics.Event{graphics.KeyPress(input.KeyRight)}, nil, nil)
	for i := 0; i < 3; i++ {
		if err := l.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.Position(); got != (mgl32.Vec2{338, 240}) {
		t.Fatalf("position = %v, want (338, 240)", got)
	}
}

func TestQuitEvents(t *testing.T) {
	tests := []struct {
		name  string
		batch []graphics.Event
	}{
		{"close", []graphics.Event{graphics.CloseEvent()}},
		{"escape press", []graphics.Event{graphics.KeyPress(input.KeyEscape)}},
		{"close after key", []graphics.Event{graphics.KeyPress(input.KeyLeft), graphics.CloseEvent()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, w, _ := newTestLoop(animation.Keyboard{Speed: 6}, nil, tt.batch)
			if err := l.Step(); err != nil {
				t.Fatal(err)
			}
			before := len(w.rec.calls)

			if err := l.Step(); err != nil {
				t.Fatal(err)
			}
			if l.State() != Terminated {
				t.Fatalf("state = %v, want terminated", l.State())
			}
			if len(w.rec.calls) != before {
				t.Errorf("GPU calls after quit: %v", w.rec.calls[before:])
			}
			if l.Frames() != 1 {
				t.Errorf("Frames = %d, want 1", l.Frames())
			}

			polls := w.polls
			if err := l.Step(); err != nil {
				t.Fatal(err)
			}
			if w.polls != polls || len(w.rec.calls) != before {
				t.Error("terminated loop kept working")
			}
		})
	}
}

func TestEscapeReleaseDoesNotQuit(t *testing.T) {
	l, _, _ := newTestLoop(animation.Static{}, []graphics.Event{graphics.KeyRelease(input.KeyEscape)})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if l.State() != Running {
		t.Fatalf("state = %v, want running", l.State())
	}
}

func TestRunStopsOnClose(t *testing.T) {
	l, _, d := newTestLoop(animation.Static{}, nil, nil, nil, []graphics.Event{graphics.CloseEvent()})
	if err := l.Run(); err != nil {
		t.Fatal(err)
	}
	if l.Frames() != 3 || len(d.blocks) != 3 {
		t.Fatalf("frames = %d uploads = %d, want 3", l.Frames(), len(d.blocks))
	}
}

func TestProjectionComputedOnce(t *testing.T) {
	l, _, d := newTestLoop(animation.Keyboard{Speed: 6}, []graphics.Event{graphics.KeyPress(input.KeyUp)})
	p := l.Projection()
	want := p.Matrix()
	for i := 0; i < 5; i++ {
		if err := l.Step(); err != nil {
			t.Fatal(err)
		}
		if l.Projection() != p {
			t.Fatal("projection object replaced")
		}
	}
	for i, b := range d.blocks {
		if b.Projection != want {
			t.Fatalf("frame %d projection = %v, want %v", i, b.Projection, want)
		}
	}
}

func TestBounceUsesClock(t *testing.T) {
	l, w, d := newTestLoop(animation.Bounce{WindowWidth: 640, WindowHeight: 480, SpriteHeight: 266})
	w.now = math.Pi / 2
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	pos := l.Position()
	if pos.X() != 320 || math.Abs(float64(pos.Y()-(133+214))) > 1e-3 {
		t.Fatalf("position = %v, want (320, 347)", pos)
	}
	if d.blocks[0].Model.Col(3).Y() != pos.Y() {
		t.Errorf("model translation y = %v, want %v", d.blocks[0].Model.Col(3).Y(), pos.Y())
	}
}

func TestFlashTint(t *testing.T) {
	rec := &recorder{}
	w := &fakeWindow{rec: rec, now: math.Pi / 2}
	d := &fakeDevice{rec: rec}
	cfg := testConfig
	cfg.Flash = true
	l := New(cfg, w, d, graphics.Bindings{}, animation.Static{})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	tint := d.blocks[0].Tint
	if math.Abs(float64(tint.X()-1)) > 1e-6 || tint.W() != 1 {
		t.Fatalf("tint = %v, want white at pi/2", tint)
	}
}

func TestBackendFailureTerminates(t *testing.T) {
	t.Run("flush", func(t *testing.T) {
		l, w, d := newTestLoop(animation.Static{})
		d.flushErr = graphics.ErrSubmit
		err := l.Step()
		if !errors.Is(err, graphics.ErrSubmit) {
			t.Fatalf("err = %v, want ErrSubmit", err)
		}
		if want := "frame 0: flush: command submission failed"; err.Error() != want {
			t.Errorf("err = %q, want %q", err, want)
		}
		if last := w.rec.calls[len(w.rec.calls)-1]; last != "flush" {
			t.Errorf("last call = %s, want flush", last)
		}
		if l.State() != Terminated {
			t.Errorf("state = %v, want terminated", l.State())
		}
	})
	t.Run("present", func(t *testing.T) {
		l, w, _ := newTestLoop(animation.Static{})
		w.presentErr = graphics.ErrPresentation
		err := l.Run()
		if !errors.Is(err, graphics.ErrPresentation) {
			t.Fatalf("err = %v, want ErrPresentation", err)
		}
		if l.Frames() != 0 {
			t.Errorf("Frames = %d, want 0", l.Frames())
		}
	})
}
