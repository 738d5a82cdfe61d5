// Package monitor implements the full-screen record browser behind
// `qc monitor`.
package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/brafe/qc/internal/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	dateLayout   = "2006-01-02 15:04"
	defaultLimit = 200
	chromeHeight = 9 // title, tabs, stats, borders and help
)

// Model is the bubbletea model of the monitor
type Model struct {
	Store           Store
	RefreshInterval time.Duration
	Version         string
	Limit           int

	Keys KeyMap
	Help help.Model

	ActiveTab Tab
	Tables    [tabCount]table.Model
	Data      RefreshDataMsg
	Width     int
	Height    int
}

// NewModel builds a monitor over store
func NewModel(store Store, interval time.Duration, ver string) Model {
	m := Model{
		Store:           store,
		RefreshInterval: interval,
		Version:         ver,
		Limit:           defaultLimit,
		Keys:            DefaultKeyMap(),
		Help:            help.New(),
	}
	for tab := Tab(0); tab < tabCount; tab++ {
		m.Tables[tab] = table.New(
			table.WithColumns(columnsFor(tab)),
			table.WithFocused(tab == m.ActiveTab),
			table.WithHeight(15),
			table.WithStyles(tableStyles()),
		)
	}
	return m
}

func columnsFor(tab Tab) []table.Column {
	switch tab {
	case TabDimensional:
		return []table.Column{
			{Title: "ID", Width: 10}, {Title: "Date", Width: 16}, {Title: "Operator", Width: 10},
			{Title: "Part", Width: 10}, {Title: "X", Width: 8}, {Title: "Y", Width: 7},
			{Title: "Z", Width: 7}, {Title: "Failed", Width: 7}, {Title: "Status", Width: 6},
		}
	case TabBend:
		return []table.Column{
			{Title: "ID", Width: 10}, {Title: "Date", Width: 16}, {Title: "Operator", Width: 10},
			{Title: "Part", Width: 12}, {Title: "Job", Width: 6}, {Title: "Fmax (N)", Width: 10},
			{Title: "σ (N/cm²)", Width: 10}, {Title: "Status", Width: 6},
		}
	default:
		return []table.Column{
			{Title: "ID", Width: 10}, {Title: "Date", Width: 16}, {Title: "Operator", Width: 10},
			{Title: "Method", Width: 7}, {Title: "W1 (g)", Width: 8}, {Title: "Δm (g)", Width: 7},
			{Title: "LOI %", Width: 6}, {Title: "Band", Width: 12}, {Title: "Status", Width: 6},
		}
	}
}

func statusCell(s models.Status) string {
	return strings.ToUpper(string(s))
}

func dimensionalRows(checks []models.DimensionalCheck) []table.Row {
	rows := make([]table.Row, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, table.Row{
			c.ID, c.CreatedAt.Format(dateLayout), c.Operator, c.PartID,
			fmt.Sprintf("%.2f", c.XMeasured), fmt.Sprintf("%.2f", c.YMeasured), fmt.Sprintf("%.2f", c.ZMeasured),
			strings.ToUpper(strings.Join(c.FailedAxes, ",")), statusCell(c.Status),
		})
	}
	return rows
}

func bendRows(tests []models.BendTest) []table.Row {
	rows := make([]table.Row, 0, len(tests))
	for _, t := range tests {
		rows = append(rows, table.Row{
			t.ID, t.CreatedAt.Format(dateLayout), t.Operator, t.PartID, t.JobNo,
			fmt.Sprintf("%.1f", t.MaxForceN), fmt.Sprintf("%.1f", t.StrengthNcm2), statusCell(t.Status),
		})
	}
	return rows
}

func loiRows(tests []models.LOITest) []table.Row {
	rows := make([]table.Row, 0, len(tests))
	for _, t := range tests {
		rows = append(rows, table.Row{
			t.ID, t.CreatedAt.Format(dateLayout), t.Operator, t.Method,
			fmt.Sprintf("%.3f", t.W1), fmt.Sprintf("%.3f", t.MassLoss), fmt.Sprintf("%.2f", t.LOIPercent),
			t.Band, statusCell(t.Status),
		})
	}
	return rows
}

// Init loads data and starts the refresh tick
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchData(), m.scheduleTick())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m, tea.Batch(m.fetchData(), m.scheduleTick())

	case RefreshDataMsg:
		m.Data = msg
		if msg.Err == nil {
			m.Tables[TabDimensional].SetRows(dimensionalRows(msg.Dimensional))
			m.Tables[TabBend].SetRows(bendRows(msg.Bend))
			m.Tables[TabLOI].SetRows(loiRows(msg.LOI))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Help.Width = msg.Width
		for i := range m.Tables {
			m.Tables[i].SetWidth(max(msg.Width-4, 20))
			m.Tables[i].SetHeight(max(msg.Height-chromeHeight, 3))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.NextTab):
			m.setTab(m.ActiveTab.next())
			return m, nil
		case key.Matches(msg, m.Keys.PrevTab):
			m.setTab(m.ActiveTab.prev())
			return m, nil
		case key.Matches(msg, m.Keys.JumpTab):
			m.setTab(Tab(msg.String()[0] - '1'))
			return m, nil
		case key.Matches(msg, m.Keys.Refresh):
			return m, m.fetchData()
		}
	}

	var cmd tea.Cmd
	m.Tables[m.ActiveTab], cmd = m.Tables[m.ActiveTab].Update(msg)
	return m, cmd
}

func (m *Model) setTab(t Tab) {
	m.Tables[m.ActiveTab].Blur()
	m.ActiveTab = t
	m.Tables[t].Focus()
}

// SelectedID returns the record ID under the cursor of the active tab
func (m Model) SelectedID() string {
	row := m.Tables[m.ActiveTab].SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) fetchData() tea.Cmd {
	store, limit := m.Store, m.Limit
	return func() tea.Msg {
		return FetchData(store, limit)
	}
}
