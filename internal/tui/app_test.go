package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonvc/p2pdesk/internal/client"
	"github.com/simonvc/p2pdesk/internal/exchange"
)

func unverifiedSeller() exchange.Counterparty {
	cp := seller()
	cp.ID = "s-2"
	cp.UserName = "Pavel"
	cp.IsVerified = false
	cp.Coords = nil
	return cp
}

func loadedApp(t *testing.T) (*App, *fakeStorefront) {
	t.Helper()
	api := &fakeStorefront{
		contractors: []exchange.Counterparty{seller(), unverifiedSeller(), buyer()},
		profile:     profile(),
	}
	a := NewApp(api, testSettings)
	require.NotNil(t, a.Init())
	a.Update(contractorsLoadedMsg{contractors: api.contractors})
	return a, api
}

func names(rows []exchange.Counterparty) []string {
	out := make([]string, len(rows))
	for i, cp := range rows {
		out[i] = cp.UserName
	}
	return out
}

func TestApp_TabsFilterByRole(t *testing.T) {
	a, _ := loadedApp(t)
	assert.Equal(t, []string{"Lena", "Pavel"}, names(a.list.rows), "buy tab shows sellers")

	_, cmd := a.Update(runes("s"))
	assert.NotNil(t, cmd, "tab switch refetches")
	assert.True(t, a.loading)
	assert.Equal(t, exchange.TabSell, a.filter.Tab)
	assert.Equal(t, []string{"Oleg"}, names(a.list.rows))

	_, cmd = a.Update(runes("s"))
	assert.Nil(t, cmd, "same tab is a no-op")
}

func TestApp_VerifiedToggle(t *testing.T) {
	a, _ := loadedApp(t)
	_, cmd := a.Update(runes("v"))
	assert.NotNil(t, cmd)
	assert.True(t, a.filter.VerifiedOnly)
	assert.Equal(t, []string{"Lena"}, names(a.list.rows))
	assert.Contains(t, a.View(), "[x] verified only")

	a.Update(runes("v"))
	assert.Len(t, a.list.rows, 2)
}

func TestApp_MapBlockedOnSellTab(t *testing.T) {
	a, _ := loadedApp(t)
	a.Update(runes("s"))
	_, cmd := a.Update(runes("m"))
	assert.Nil(t, cmd)
	assert.Equal(t, exchange.ViewList, a.filter.View)
	assert.True(t, a.statusErr)
}

func TestApp_MapView(t *testing.T) {
	a, _ := loadedApp(t)
	_, cmd := a.Update(runes("m"))
	assert.NotNil(t, cmd)
	require.Equal(t, exchange.ViewMap, a.filter.View)
	assert.Equal(t, []string{"Lena"}, names(a.mapView.markers), "only valid coordinates are plotted")

	v := a.View()
	assert.NotContains(t, v, "Sell KEKS", "tabs are hidden on the map")
	assert.Contains(t, v, "Lena")

	_, cmd = a.Update(runes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, exchange.TabBuy, a.filter.Tab, "tab keys are ignored on the map")

	a.Update(runes("m"))
	assert.Equal(t, exchange.ViewList, a.filter.View)
	assert.Contains(t, a.View(), "Sell KEKS")
}

func TestApp_OpenAndCloseDialog(t *testing.T) {
	a, _ := loadedApp(t)
	_, cmd := a.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, dialogReadyMsg{}, msg)
	a.Update(msg)
	require.Equal(t, modeDialog, a.mode)
	assert.Contains(t, a.View(), "Exchange with Lena")

	_, cmd = a.Update(runes("q"))
	assert.Equal(t, modeDialog, a.mode, "letters go to the form")
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit)
	}

	_, cmd = a.Update(press(tea.KeyEsc))
	assert.Equal(t, modeStorefront, a.mode)
	assert.Nil(t, a.dialog.session)
	assert.NotNil(t, cmd, "profile reload")
}

func openDialog(t *testing.T, a *App) {
	t.Helper()
	_, cmd := a.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	a.Update(cmd())
	require.Equal(t, modeDialog, a.mode)
}

func TestApp_ResultOfClosedDialogIsDropped(t *testing.T) {
	a, api := loadedApp(t)

	openDialog(t, a)
	first := a.dialog.session
	first.SelectPayment(0)
	for _, r := range "200" {
		a.Update(runes(string(r)))
	}
	_, submit := a.Update(press(tea.KeyEnter))
	require.NotNil(t, submit)
	require.True(t, a.dialog.submitting)

	a.Update(press(tea.KeyEsc))
	require.Equal(t, modeStorefront, a.mode)

	openDialog(t, a)
	require.NotSame(t, first, a.dialog.session, "each open gets a fresh session")
	for _, r := range "300" {
		a.Update(runes(string(r)))
	}

	a.Update(submit())
	require.Len(t, api.requests(), 1)
	assert.Equal(t, "300", a.dialog.sending.Value())
	assert.Equal(t, "300", a.dialog.session.Sending().Text)
	assert.Equal(t, "", a.dialog.flash)
	assert.Equal(t, modeDialog, a.mode)
}

func TestApp_DialogMessagesDroppedOnStorefront(t *testing.T) {
	a, _ := loadedApp(t)
	openDialog(t, a)
	s := a.dialog.session
	a.Update(press(tea.KeyEsc))

	_, cmd := a.Update(exchangeResultMsg{session: s})
	assert.Nil(t, cmd)
	_, cmd = a.Update(recalcMsg{session: s, seq: 1, field: exchange.FieldSending})
	assert.Nil(t, cmd)
	assert.Equal(t, modeStorefront, a.mode)
	assert.Nil(t, a.dialog.session)
}

func TestApp_DialogProfileFailure(t *testing.T) {
	a, _ := loadedApp(t)
	a.Update(dialogReadyMsg{contractor: seller(), err: fmt.Errorf("%w: down", client.ErrUnavailable)})
	assert.Equal(t, modeStorefront, a.mode)
	assert.Equal(t, "Service unavailable. Press r to try again.", a.statusMsg)
}

func TestApp_Unavailable(t *testing.T) {
	a := NewApp(&fakeStorefront{}, testSettings)
	a.Update(contractorsLoadedMsg{err: fmt.Errorf("%w: refused", client.ErrUnavailable)})
	assert.Contains(t, a.View(), "Service unavailable. Press r to try again.")

	_, cmd := a.Update(runes("r"))
	assert.NotNil(t, cmd)
}

func TestApp_EmptyState(t *testing.T) {
	a := NewApp(&fakeStorefront{}, testSettings)
	a.Update(contractorsLoadedMsg{contractors: []exchange.Counterparty{}})
	assert.Contains(t, a.View(), "No counterparties match the current filter.")
}

func TestApp_Header(t *testing.T) {
	a := NewApp(&fakeStorefront{}, testSettings)
	assert.Contains(t, a.View(), "loading profile...")

	a.Update(profileLoadedMsg{profile: profile()})
	v := a.View()
	assert.Contains(t, v, "20.00")
	assert.Contains(t, v, "10000 ₽")
}

func TestApp_Quit(t *testing.T) {
	a, _ := loadedApp(t)
	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestUnavailableText(t *testing.T) {
	assert.Equal(t, "Error: boom", unavailableText(fmt.Errorf("boom")))
	assert.Equal(t, "Service unavailable. Press r to try again.",
		unavailableText(&client.StatusError{Code: 502, Message: "bad gateway"}))
}
