package tools

import (
	"fmt"

	"github.com/Manu343726/csrgen/cmd/app"
	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the SoC register map interactively",
	Long: `Opens a terminal browser of the SoC: peripherals and registers on the left,
documentation of the selected item on the right.

Keys: arrows to move, enter to expand/collapse, tab to switch panes, q or esc to quit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := app.MustSession()
		defer session.Close()

		b := newBrowser(session.MustLoadSoC())
		if err := b.run(); err != nil {
			session.Fatal(app.ExitSetup, "running browser: %v", err)
		}
	},
}

// Register tree node reference
type registerItem struct {
	peripheral string
	entry      csr.RegisterEntry
}

type browser struct {
	model *soc.SoC
	tree  *tview.TreeView
	docs  *tview.TextView
	app   *tview.Application
}

func newBrowser(model *soc.SoC) *browser {
	b := &browser{
		model: model,
		docs:  tview.NewTextView().SetDynamicColors(false).SetScrollable(true).SetWrap(false),
		app:   tview.NewApplication(),
	}

	b.docs.SetBorder(true).SetTitle(" documentation ")

	root := b.buildTree()
	b.tree = tview.NewTreeView().SetRoot(root).SetCurrentNode(root)
	b.tree.SetBorder(true).SetTitle(fmt.Sprintf(" %v ", model.Name()))

	b.tree.SetChangedFunc(func(node *tview.TreeNode) {
		b.show(node.GetReference())
	})

	b.tree.SetSelectedFunc(func(node *tview.TreeNode) {
		node.SetExpanded(!node.IsExpanded())
	})

	b.show(root.GetReference())
	return b
}

func (b *browser) buildTree() *tview.TreeNode {
	root := tview.NewTreeNode(b.model.Name()).
		SetReference(b.model).
		SetColor(tcell.ColorWhite)

	for _, m := range b.model.RegisterMaps() {
		peripheral := tview.NewTreeNode(fmt.Sprintf("%v @ 0x%08x", m.Name(), m.BaseAddress())).
			SetReference(m).
			SetColor(tcell.ColorGreen).
			SetExpanded(false)

		for _, entry := range m.Registers() {
			register := tview.NewTreeNode(fmt.Sprintf("0x%08x %v", entry.Address, entry.Register.Name())).
				SetReference(registerItem{peripheral: m.Name(), entry: entry})

			if entry.Register.Access().IsStatus() {
				register.SetColor(tcell.ColorYellow)
			}

			peripheral.AddChild(register)
		}

		root.AddChild(peripheral)
	}

	return root
}

// Returns the documentation shown for a tree node reference
func (b *browser) describe(reference any) string {
	var doc string
	var err error

	switch item := reference.(type) {
	case *soc.SoC:
		doc, err = item.Documentation(0)
	case *csr.RegisterMap:
		doc, err = item.Documentation(0)
	case registerItem:
		doc, err = item.entry.Register.Documentation(0)
		doc = fmt.Sprintf("%v.%v @ 0x%08x\n\n%v", item.peripheral, item.entry.Register.Name(), item.entry.Address, doc)
	default:
		return ""
	}

	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	return doc
}

func (b *browser) show(reference any) {
	b.docs.SetText(b.describe(reference))
	b.docs.ScrollToBeginning()
}

func (b *browser) run() error {
	layout := tview.NewFlex().
		AddItem(b.tree, 0, 1, true).
		AddItem(b.docs, 0, 2, false)

	b.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			b.app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			if b.tree.HasFocus() {
				b.app.SetFocus(b.docs)
			} else {
				b.app.SetFocus(b.tree)
			}
			return nil
		}

		return event
	})

	return b.app.SetRoot(layout, true).EnableMouse(true).Run()
}

func init() {
	ToolsCmd.AddCommand(browseCmd)
}
