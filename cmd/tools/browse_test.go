package tools

import (
	"testing"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc/xtrx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowser_Tree(t *testing.T) {
	model, err := xtrx.Default()
	require.NoError(t, err)

	b := newBrowser(model)
	root := b.tree.GetRoot()

	peripherals := root.GetChildren()
	require.Len(t, peripherals, len(model.RegisterMaps()))

	lms := peripherals[8]
	assert.Equal(t, "lms7002m @ 0x00004000", lms.GetText())
	assert.False(t, lms.IsExpanded())

	registers := lms.GetChildren()
	require.NotEmpty(t, registers)
	assert.Equal(t, "0x00004000 control", registers[0].GetText())

	item, ok := registers[0].GetReference().(registerItem)
	require.True(t, ok)
	assert.Equal(t, "lms7002m", item.peripheral)
}

func TestBrowser_Describe(t *testing.T) {
	model, err := xtrx.Default()
	require.NoError(t, err)

	b := newBrowser(model)

	assert.Contains(t, b.describe(model), "xtrx (12 peripherals")

	pmic, err := model.RegisterMap("pmic")
	require.NoError(t, err)
	assert.Contains(t, b.describe(pmic), "pmic @ 0x00005000")

	control, address, err := pmic.Lookup("control")
	require.NoError(t, err)

	doc := b.describe(registerItem{peripheral: "pmic", entry: csr.RegisterEntry{Register: control, Address: address}})
	assert.Contains(t, doc, "pmic.control @ 0x00005000")
	assert.Contains(t, doc, "reset value: 0x00000002")

	assert.Empty(t, b.describe(nil))
	assert.Contains(t, b.docs.GetText(false), "xtrx (12 peripherals", "the soc is documented on startup")
}
