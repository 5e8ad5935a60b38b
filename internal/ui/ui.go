// Package ui renders live snapshots in the terminal. It is a consumer
// of the monitor's subscription stream and feeds nothing back except
// the quit signal.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pulsemon/internal/model"
	"pulsemon/internal/monitor"
)

// Model renders the latest snapshot from the monitor.
type Model struct {
	mon         *monitor.Monitor
	caps        monitor.Capabilities
	stream      <-chan model.Snapshot
	unsubscribe func()
	latest      model.Snapshot
	width       int
	height      int
}

func New(mon *monitor.Monitor) *Model {
	stream, cancel := mon.Subscribe()
	return &Model{
		mon:         mon,
		caps:        mon.Capabilities(),
		stream:      stream,
		unsubscribe: cancel,
		width:       120,
		height:      40,
	}
}

type tickMsg struct{}

func tickCmd() tea.Cmd { return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return tickMsg{} }) }

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.unsubscribe()
			return m, tea.Quit
		case "+":
			m.mon.SetInterval(m.mon.Interval() * 2)
		case "-":
			m.mon.SetInterval(m.mon.Interval() / 2)
		}
	case tickMsg:
		select {
		case snap, ok := <-m.stream:
			if ok {
				m.latest = snap
			}
		default:
		}
		return m, tickCmd()
	}
	return m, nil
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	sparkRunes  = []rune("▁▂▃▄▅▆▇█")
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	s := m.latest
	host := m.mon.Host()
	header := titleStyle.Render("pulsemon") + "  " +
		subtleStyle.Render(fmt.Sprintf("%s | %s | every %s | %s",
			host.Hostname, host.Platform, m.mon.Interval(),
			s.Timestamp.Format("15:04:05")))

	cpuBody := fmt.Sprintf("%s\nuser %5.1f%%  sys %5.1f%%  load %.2f %.2f %.2f",
		gaugeBar(s.CPU.TotalPercent, 28),
		s.CPU.UserPercent, s.CPU.SystemPercent,
		s.CPU.Load1, s.CPU.Load5, s.CPU.Load15)
	if s.CPU.FrequencyMHz > 0 {
		cpuBody += fmt.Sprintf("\n%.0f MHz", s.CPU.FrequencyMHz)
		if s.CPU.TempC > 0 {
			cpuBody += fmt.Sprintf("  %.0f°C", s.CPU.TempC)
		}
	}
	if spark := sparkline(m.cpuHistory(), 28); spark != "" {
		cpuBody += "\n" + subtleStyle.Render(spark)
	}
	cpuCard := card("CPU", cpuBody)

	memCard := card("Memory",
		fmt.Sprintf("%s  %.1f/%.1f GiB\npressure %3.0f%% (%s)  swap %s",
			gaugeBar(s.Memory.UsedPercent, 28),
			bytesToGiB(s.Memory.Used), bytesToGiB(s.Memory.Total),
			s.Memory.PressurePercent, s.Memory.PressureLevel,
			humanBytes(s.Memory.SwapUsed)))

	diskCard := card("Disk",
		fmt.Sprintf("%s  %.1f/%.1f GiB\nR %s/s  W %s/s",
			gaugeBar(s.Disk.UsedPercent, 28),
			bytesToGiB(s.Disk.Used), bytesToGiB(s.Disk.Total),
			humanBytes(uint64(s.Disk.ReadBps)), humanBytes(uint64(s.Disk.WriteBps))))

	columns := []string{cpuCard, memCard, diskCard}

	if n := s.Network; n != nil {
		body := fmt.Sprintf("RX %s/s  TX %s/s", humanBytes(uint64(n.RecvBps)), humanBytes(uint64(n.SendBps)))
		if n.PingMillis > 0 {
			body += fmt.Sprintf("\nping %.1f ms", n.PingMillis)
		}
		if n.LocalAddress != "" {
			body += "\n" + n.LocalAddress
		}
		columns = append(columns, card("Network", body))
	}
	if g := s.GPU; g != nil {
		columns = append(columns, card("GPU",
			fmt.Sprintf("%s %4.0f%%\n%.0f MHz  %.0f°C", truncate(g.Name, 14), g.UtilPercent, g.FrequencyMHz, g.TempC)))
	}
	if b := s.Battery; b != nil {
		state := "discharging"
		if b.Charging {
			state = "charging"
		}
		body := fmt.Sprintf("%.0f%% (%s)", b.Percent, state)
		if b.MinutesRemaining > 0 {
			body += fmt.Sprintf("  %dm", b.MinutesRemaining)
		}
		if b.Health != "" {
			body += fmt.Sprintf("\n%s, %d cycles", b.Health, b.CycleCount)
		}
		columns = append(columns, card("Battery", body))
	} else if m.caps.BatteryHint != "" {
		columns = append(columns, card("Battery", subtleStyle.Render(m.caps.BatteryHint)))
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	var line2 string
	if sn := s.Sensors; sn != nil {
		line2 = lipgloss.JoinHorizontal(lipgloss.Top,
			card("Thermal", renderReadings(sn.Temps, "%-14s %5.1f°C")),
			card("Fans", renderReadings(sn.Fans, "%-14s %5.0f rpm")))
	} else if m.caps.SensorHint != "" {
		line2 = card("Sensors", subtleStyle.Render(m.caps.SensorHint))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, line1, line2)
}

func (m *Model) cpuHistory() []float64 {
	snaps := m.mon.History()
	out := make([]float64, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snap.CPU.TotalPercent)
	}
	return out
}

// Helpers
func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(v / 100 * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func renderReadings(rs []model.Reading, format string) string {
	if len(rs) == 0 {
		return subtleStyle.Render("no readings")
	}
	lines := make([]string, 0, len(rs))
	for _, r := range rs {
		lines = append(lines, fmt.Sprintf(format, truncate(r.Name, 14), r.Value))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func bytesToGiB(b uint64) float64 { return float64(b) / (1024 * 1024 * 1024) }

func humanBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// Run starts the Bubble Tea program over an already-started monitor.
func Run(mon *monitor.Monitor) error {
	prog := tea.NewProgram(New(mon), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
