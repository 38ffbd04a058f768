package viz

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dragsim/internal/sim"
)

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeInto(m Model, field int, text string) Model {
	m.focus = field
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func enter(m Model) (Model, tea.Cmd) {
	return send(m, tea.KeyMsg{Type: tea.KeyEnter})
}

// flyToGround feeds ticks for the current generation until the run stops
// asking for more.
func flyToGround(m Model) Model {
	for i := 0; i < 100000; i++ {
		var cmd tea.Cmd
		m, cmd = send(m, TickMsg{Gen: m.gen})
		if cmd == nil {
			return m
		}
	}
	Fail("run never reached the ground")
	return m
}

var _ = Describe("Model", func() {
	var (
		m       Model
		surface = sim.Surface{Width: 800, Height: 600}
		classic = sim.Params{Height: 10, Speed: 20, Angle: 45, Drag: 0}
	)

	BeforeEach(func() {
		m = NewModel(classic, surface)
	})

	Describe("the form", func() {
		It("starts with the given launch values", func() {
			Expect(m.inputs).To(Equal([4]string{"10", "20", "45", "0"}))
			Expect(m.gen).To(BeZero())
			Expect(m.View()).To(ContainSubstring("Launch Angle (deg)"))
		})

		It("cycles focus with tab and shift+tab", func() {
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
			Expect(m.focus).To(Equal(1))
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
			Expect(m.focus).To(Equal(3))
		})

		It("edits the focused field", func() {
			m = typeInto(m, 2, "60")
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
			Expect(m.inputs[2]).To(Equal("6"))
		})

		It("does not leak edits into earlier copies", func() {
			before := m
			m = typeInto(m, 0, "99")
			Expect(before.inputs[0]).To(Equal("10"))
		})
	})

	Describe("launching", func() {
		It("starts a run and schedules a tick", func() {
			m, cmd := enter(m)
			Expect(cmd).NotTo(BeNil())
			Expect(m.gen).To(Equal(uint64(1)))
			Expect(m.eng).NotTo(BeNil())
			Expect(m.err).To(BeEmpty())
		})

		It("rejects non-numeric input and keeps the active run", func() {
			m, _ = enter(m)
			m, _ = send(m, TickMsg{Gen: m.gen})
			eng := m.eng

			m = typeInto(m, 1, "fast")
			m, cmd := enter(m)
			Expect(cmd).To(BeNil())
			Expect(m.err).To(ContainSubstring("Initial Velocity"))
			Expect(m.gen).To(Equal(uint64(1)))
			Expect(m.eng).To(BeIdenticalTo(eng))

			m, cmd = send(m, TickMsg{Gen: m.gen})
			Expect(cmd).NotTo(BeNil())
			Expect(m.frame.Time).To(BeNumerically("~", 2*sim.Dt, 1e-9))
		})

		It("rejects an empty field", func() {
			m = typeInto(m, 3, "")
			m, _ = enter(m)
			Expect(m.eng).To(BeNil())
			Expect(m.err).To(ContainSubstring("Air Resistance"))
		})

		It("reports a missing surface", func() {
			m = NewModel(classic, sim.Surface{})
			m, _ = enter(m)
			Expect(m.eng).To(BeNil())
			Expect(m.err).To(Equal("drawing surface unavailable"))
		})

		It("clears the error on the next good launch", func() {
			m = typeInto(m, 0, "x")
			m, _ = enter(m)
			Expect(m.err).NotTo(BeEmpty())
			m = typeInto(m, 0, "10")
			m, _ = enter(m)
			Expect(m.err).To(BeEmpty())
		})
	})

	Describe("ticks", func() {
		BeforeEach(func() {
			m, _ = enter(m)
		})

		It("advances the matching generation by one step", func() {
			m, _ = send(m, TickMsg{Gen: m.gen})
			Expect(m.frame.Time).To(BeNumerically("~", sim.Dt, 1e-9))
			Expect(m.heights).To(HaveLen(1))
			Expect(m.View()).To(ContainSubstring("Time: 0.02 s"))
		})

		It("drops ticks from a superseded run", func() {
			stale := m.gen
			m, _ = send(m, TickMsg{Gen: stale})
			m, _ = enter(m)
			Expect(m.gen).To(Equal(stale + 1))

			m, cmd := send(m, TickMsg{Gen: stale})
			Expect(cmd).To(BeNil())
			Expect(m.frame.Time).To(BeZero())
			Expect(m.state.Trajectory).To(BeEmpty())
		})

		It("fills the history at the log cadence and stops on the ground", func() {
			m = flyToGround(m)
			Expect(m.eng.Done()).To(BeTrue())
			Expect(m.state.Terminal).To(BeTrue())
			Expect(m.history).NotTo(BeEmpty())
			Expect(m.frame.Height).To(BeNumerically("~", float64(sim.BallRadius)/sim.ScaleFactor, 1e-9))

			steps := len(m.heights)
			Expect(len(m.history)).To(BeNumerically(">=", steps/11))
			Expect(len(m.history)).To(BeNumerically("<=", steps/10+1))
			Expect(m.View()).To(ContainSubstring("LANDED"))
		})

		It("ignores ticks after landing", func() {
			m = flyToGround(m)
			final := m.frame
			m, cmd := send(m, TickMsg{Gen: m.gen})
			Expect(cmd).To(BeNil())
			Expect(m.frame).To(Equal(final))
		})

		It("clears the history when a new run starts", func() {
			m = flyToGround(m)
			Expect(m.history).NotTo(BeEmpty())
			m, _ = enter(m)
			Expect(m.history).To(BeEmpty())
			Expect(m.heights).To(BeEmpty())
			Expect(m.frame.Time).To(BeZero())
		})
	})

	It("keeps rendering after the state overflows", func() {
		m = typeInto(m, 3, "-1000")
		m, _ = enter(m)
		for i := 0; i < 400; i++ {
			m, _ = send(m, TickMsg{Gen: m.gen})
		}
		Expect(m.frame.Speed).To(BeNumerically(">", 1e308))

		view := make(chan string, 1)
		go func() { view <- m.View() }()
		Eventually(view, "5s").Should(Receive(ContainSubstring("Velocity: Infinity m/s")))
	})

	It("quits on escape", func() {
		_, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
	})

	It("resizes the canvas with the window", func() {
		m, _ = send(m, tea.WindowSizeMsg{Width: 140, Height: 40})
		Expect(m.cols).To(Equal(80))
		Expect(m.rows).To(Equal(36))
	})
})
