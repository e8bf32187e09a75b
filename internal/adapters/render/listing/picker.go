package listing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmdb/kmdb-cli/internal/domain"
)

var ErrPickerCancelled = errors.New("no asset selected")

type assetItem struct {
	asset domain.Asset
}

func (i assetItem) Title() string {
	if i.asset.Favorite {
		return favoriteMark + " " + i.asset.Label()
	}
	return i.asset.Label()
}

func (i assetItem) Description() string {
	desc := "id " + string(i.asset.ID)
	if i.asset.IP != "" && i.asset.IP != i.asset.Label() {
		desc += " · " + i.asset.IP
	}
	return desc
}

func (i assetItem) FilterValue() string {
	return i.asset.Label() + " " + i.asset.IP + " " + string(i.asset.ID)
}

type pickerModel struct {
	list     list.Model
	chosen   *domain.Asset
	quitting bool
}

func newPickerModel(assets []domain.Asset, filter string) pickerModel {
	items := make([]list.Item, 0, len(assets))
	for _, asset := range assets {
		items = append(items, assetItem{asset: asset})
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Connect to"
	l.SetShowStatusBar(true)
	if filter != "" {
		l.SetFilterText(filter)
	}
	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(assetItem); ok {
				asset := item.asset
				m.chosen = &asset
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// PickAsset lets the user choose an asset interactively. filter pre-fills
// the list filter.
func PickAsset(ctx context.Context, in io.Reader, out io.Writer, assets []domain.Asset, filter string) (domain.Asset, error) {
	if len(assets) == 0 {
		return domain.Asset{}, fmt.Errorf("pick asset: %w", domain.ErrAssetNotFound)
	}

	p := tea.NewProgram(
		newPickerModel(assets, filter),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.Asset{}, err
	}

	picked, ok := finalModel.(pickerModel)
	if !ok {
		return domain.Asset{}, ErrUnexpectedRenderModel
	}
	if picked.chosen == nil {
		return domain.Asset{}, ErrPickerCancelled
	}
	return *picked.chosen, nil
}
