package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/penguins"
)

type PickerItem struct {
	ID    string
	Label string
	Desc  string
}

// PickerModal is a single-choice list filtered as you type.
type PickerModal struct {
	title      string
	scope      string
	current    string
	picker     *core.Picker
	allItems   map[string]PickerItem
	onSelected func(PickerItem) tea.Msg
}

func NewPickerModal(title, scope string, items []PickerItem, onSelected func(PickerItem) tea.Msg) *PickerModal {
	listItems := make([]core.PickerItem, 0, len(items))
	all := make(map[string]PickerItem, len(items))
	for _, it := range items {
		all[it.ID] = it
		listItems = append(listItems, core.PickerItem{
			ID:     it.ID,
			Label:  it.Label,
			Meta:   it.Desc,
			Search: it.Label + " " + it.ID,
		})
	}
	return &PickerModal{
		title:      title,
		scope:      scope,
		picker:     core.NewPicker(title, listItems),
		allItems:   all,
		onSelected: onSelected,
	}
}

// NewAttributePicker lists the numeric columns, marking current.
func NewAttributePicker(current penguins.Attribute, onSelected func(penguins.Attribute) tea.Msg) *PickerModal {
	items := make([]PickerItem, 0, len(penguins.Attributes))
	for _, a := range penguins.Attributes {
		items = append(items, PickerItem{ID: string(a), Label: a.Label(), Desc: string(a)})
	}
	p := NewPickerModal("Attribute", "screen:picker", items, func(it PickerItem) tea.Msg {
		return onSelected(penguins.Attribute(it.ID))
	})
	p.current = string(current)
	return p
}

func (s *PickerModal) Title() string { return s.title }
func (s *PickerModal) Scope() string { return s.scope }

func (s *PickerModal) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	result := s.picker.HandleKey(keyMsg.String())
	switch result.Action {
	case core.PickerActionCancelled:
		return s, nil, true
	case core.PickerActionSelected:
		item, exists := s.allItems[result.Item.ID]
		if !exists || s.onSelected == nil {
			return s, nil, true
		}
		return s, func() tea.Msg { return s.onSelected(item) }, true
	default:
		return s, nil, false
	}
}

func (s *PickerModal) View(width, height int) string {
	lines := []string{s.title}
	filter := s.picker.Query()
	if filter == "" {
		filter = "(type to filter)"
	}
	lines = append(lines, "Filter: "+filter, "")
	items := s.picker.Items()
	if len(items) == 0 {
		lines = append(lines, "  No items")
	}
	for idx, item := range items {
		prefix := "  "
		if idx == s.picker.Cursor() {
			prefix = "> "
		}
		label := item.Label
		if item.ID == s.current {
			label += " •"
		}
		if item.Meta != "" {
			label += "  " + item.Meta
		}
		lines = append(lines, prefix+label)
	}
	lines = append(lines, "", "Enter select. Esc cancel.")
	return core.ClipHeight(core.TrimToWidth(strings.Join(lines, "\n"), max(20, width)), max(6, height))
}
