package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

const (
	noticeTTL        = 3 * time.Second
	maxProgressWidth = 60
	maxErrorWidth    = 200
)

var stateLabels = map[service.DownloadState]string{
	service.DownloadIdle:        "ожидание",
	service.DownloadDownloading: "загрузка",
	service.DownloadComplete:    "готово",
	service.DownloadError:       "ошибка",
}

// dashboardModel shows the download progress of the offline cache and lets
// the user start, refresh or clear it and trigger a sync.
type dashboardModel struct {
	ctx       context.Context
	services  *service.ClientServices
	feed      *statusFeed
	buildInfo models.AppBuildInfo

	status   models.CacheStatus
	progress progress.Model
	activity activityModel
	stats    models.Stats
	lastSync *models.SyncReport

	syncing      bool
	confirmClear bool
	showInfo     bool
	errMsg       string
	notice       string
}

func newDashboardModel(ctx context.Context, services *service.ClientServices, feed *statusFeed, buildInfo models.AppBuildInfo) dashboardModel {
	return dashboardModel{
		ctx:       ctx,
		services:  services,
		feed:      feed,
		buildInfo: buildInfo,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxProgressWidth)),
		activity:  newActivityModel(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.feed.next(), m.cmdLoadStats())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cacheStatusMsg:
		m.status = msg.status
		cmds := []tea.Cmd{m.feed.next(), m.progress.SetPercent(float64(msg.status.DownloadProgress) / 100)}
		if msg.status.IsDownloading {
			var cmd tea.Cmd
			m.activity, cmd = m.activity.start("Загрузка каталога...")
			cmds = append(cmds, cmd)
		} else if !m.syncing {
			m.activity = m.activity.stop()
		}
		return m, tea.Batch(cmds...)

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		if p, ok := pm.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.update(msg)
		return m, cmd

	case downloadDoneMsg:
		switch {
		case msg.err == nil:
			m.notice = "Каталог загружен"
		case errors.Is(msg.err, service.ErrDownloadInProgress), errors.Is(msg.err, context.Canceled):
		default:
			m.errMsg = "Загрузка не выполнена: " + humanizeRemoteUnavailableError(msg.err)
		}
		return m, tea.Batch(m.cmdLoadStats(), clearNoticeAfter(noticeTTL))

	case clearDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка очистки кэша: %v", msg.err)
			return m, nil
		}
		m.notice = "Кэш очищен"
		return m, tea.Batch(m.cmdLoadStats(), clearNoticeAfter(noticeTTL))

	case syncDoneMsg:
		m.syncing = false
		if !m.status.IsDownloading {
			m.activity = m.activity.stop()
		}
		if msg.err != nil {
			m.errMsg = syncErrorMessage(msg.err)
		}
		if len(msg.report.Tables) > 0 {
			report := msg.report
			m.lastSync = &report
		}
		return m, m.cmdLoadStats()

	case statsLoadedMsg:
		if msg.err == nil {
			m.stats = msg.stats
		}
		return m, nil

	case clearStatusMsg:
		m.notice = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-8, 10), maxProgressWidth)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.errMsg != "":
		if key.Matches(msg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return m, nil

	case m.showInfo:
		if key.Matches(msg, keys.esc, keys.info) {
			m.showInfo = false
		}
		return m, nil

	case m.confirmClear:
		switch {
		case key.Matches(msg, keys.yes):
			m.confirmClear = false
			return m, m.cmdClear()
		case key.Matches(msg, keys.no, keys.esc):
			m.confirmClear = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.download):
		if m.status.IsDownloading {
			return m, nil
		}
		m.notice = "Загрузка запущена"
		return m, m.cmdDownload()
	case key.Matches(msg, keys.refresh):
		m.notice = "Обновление кэша"
		return m, m.cmdRefresh()
	case key.Matches(msg, keys.clear):
		m.confirmClear = true
	case key.Matches(msg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		var tick tea.Cmd
		m.activity, tick = m.activity.start("Синхронизация...")
		return m, tea.Batch(m.cmdSync(), tick)
	case key.Matches(msg, keys.info):
		m.showInfo = true
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.showInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo, m.status))
	}

	var b strings.Builder
	state := stateLabels[m.services.CacheService.State()]
	fmt.Fprintf(&b, "Состояние: %s\n", state)
	b.WriteString(m.progress.View())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Загружено: %d / %d\n", m.status.DownloadedItems, m.status.TotalItems)
	fmt.Fprintf(&b, "Размер кэша: %s\n", humanBytes(m.status.CacheSize))
	fmt.Fprintf(&b, "Обновлено: %s\n", formatTime(m.status.LastUpdated))
	fmt.Fprintf(&b, "Готов к офлайн-работе: %s\n", yesNo(m.status.ReadyForOffline()))
	if m.status.Error != nil {
		fmt.Fprintf(&b, "Ошибка загрузки: %s\n", errorStyle.Render(fitText(valueOrDash(m.status.Error), maxErrorWidth)))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Записей: %d    Избранное: %d    Ожидают отправки: %d\n",
		m.stats.Records, m.stats.Favorites, m.stats.Pending)
	if m.lastSync != nil {
		b.WriteString("Последняя синхронизация:\n")
		for _, table := range m.lastSync.Tables {
			if table.Skipped {
				fmt.Fprintf(&b, "  %s: пропущено\n", table.Table)
				continue
			}
			fmt.Fprintf(&b, "  %s: получено %d, отправлено %d, ошибок %d\n",
				table.Table, table.Pulled, table.Pushed, table.Failed)
		}
	}

	if view := m.activity.View(); view != "" {
		b.WriteString("\n")
		b.WriteString(view)
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(okStyle.Render(m.notice))
	}

	page := renderPage(
		"ОФЛАЙН-КЭШ КАТАЛОГА",
		b.String(),
		"d: скачать  r: обновить  x: очистить  s: синхронизировать  v: о программе",
	)

	switch {
	case m.errMsg != "":
		page += "\n\n" + errorOverlayModel{message: m.errMsg}.View()
	case m.confirmClear:
		page += "\n\n" + newClearConfirm(m.status.DownloadedItems, m.status.CacheSize).View()
	}

	return appStyle.Render(page)
}

func (m dashboardModel) cmdDownload() tea.Cmd {
	return func() tea.Msg {
		return downloadDoneMsg{err: m.services.CacheService.StartDownload(m.ctx)}
	}
}

func (m dashboardModel) cmdRefresh() tea.Cmd {
	return func() tea.Msg {
		return downloadDoneMsg{err: m.services.CacheService.RefreshCache(m.ctx)}
	}
}

func (m dashboardModel) cmdClear() tea.Cmd {
	return func() tea.Msg {
		return clearDoneMsg{err: m.services.CacheService.ClearCache(m.ctx)}
	}
}

func (m dashboardModel) cmdSync() tea.Cmd {
	return func() tea.Msg {
		report, err := m.services.SyncService.Sync(m.ctx)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m dashboardModel) cmdLoadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.services.CatalogService.Stats(m.ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
