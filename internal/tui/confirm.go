package tui

import "fmt"

type confirmModel struct {
	message string
	details string
}

// newClearConfirm describes what a cache clear will remove.
func newClearConfirm(items int, size int64) confirmModel {
	return confirmModel{
		message: "Очистить кэш каталога?",
		details: fmt.Sprintf("Будет удалено записей: %d (%s)", items, humanBytes(size)),
	}
}

func (m confirmModel) View() string {
	content := titleStyle.Render(m.message)
	if m.details != "" {
		content += "\n" + helpStyle.Render(m.details)
	}
	content += "\n\ny да    n нет"
	return overlayBoxStyle.Render(content)
}
