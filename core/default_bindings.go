package core

var dealControlScopes = []string{
	"pane:deal:price",
	"pane:deal:down",
	"pane:deal:trade",
	"pane:deal:apr",
	"pane:deal:term",
}

func DefaultKeyBindings() []KeyBinding {
	controlScopes := append([]string(nil), dealControlScopes...)
	return []KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"*"}},
		{Keys: []string{"v"}, Action: "jump", Description: "jump to pane", Scopes: []string{"*"}},
		{Keys: []string{"tab"}, Action: "pane-next", Description: "next pane", Scopes: []string{"*"}},
		{Keys: []string{"shift+tab"}, Action: "pane-prev", Description: "prev pane", Scopes: []string{"*"}},
		{Keys: []string{"enter"}, Action: "pane-focus", Description: "focus pane", Scopes: []string{"*"}},
		{Keys: []string{"left", "right"}, Action: "control-step", Description: "adjust", Scopes: controlScopes},
		{Keys: []string{"e"}, Action: "control-edit", Description: "exact value", Scopes: controlScopes},
		{Keys: []string{"r"}, Action: "control-reset", Description: "reset", Scopes: controlScopes},
		{Keys: []string{"l"}, Action: "open-lender-picker", Description: "lender", Scopes: append(controlScopes, "pane:deal:summary", "pane:rates:table")},
		{Keys: []string{"j", "k"}, Action: "table-move", Description: "move row", Scopes: []string{"pane:rates:table"}},
		{Keys: []string{"enter"}, Action: "apply-rate", Description: "apply rate", Scopes: []string{"pane:rates:table"}},
		{Keys: []string{"1"}, Action: "switch-tab-1", Description: "deal", Scopes: []string{"*"}},
		{Keys: []string{"2"}, Action: "switch-tab-2", Description: "rates", Scopes: []string{"*"}},
		{Keys: []string{"3"}, Action: "switch-tab-3", Description: "settings", Scopes: []string{"*"}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{"screen:value-editor", "screen:lender-picker", "screen:command", "screen:confirm", "screen:jump-picker"}},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{"screen:lender-picker", "screen:command", "screen:jump-picker"}},
	}
}
