package game

import "github.com/idate-tech/luminous/internal/layout"

// Activate performs the action behind a clicked layout target. Clicking
// anything but a field drops the form focus.
func (v *View) Activate(t layout.Target) bool {
	if t.Kind != layout.Field {
		v.form.SetFocus(-1)
	}
	switch t.Kind {
	case layout.NavEntry:
		return v.GoToScene(t.Index, true)
	case layout.Back:
		return v.Prev()
	case layout.Forward:
		return v.Next()
	case layout.Item:
		return v.SelectItem(t.Index)
	case layout.DetailBack:
		return v.CloseDetail()
	case layout.Field:
		if !v.nav.Scene().Contact || !v.form.Editable() {
			return false
		}
		v.form.SetFocus(t.Index)
		return true
	case layout.Submit:
		if !v.nav.Scene().Contact {
			return false
		}
		if v.form.Status == FormSuccess {
			v.form.NewMessage()
			return true
		}
		return v.Submit() == nil
	}
	return false
}

// Enter breaks the line in the message field and submits from the others.
func (v *View) Enter() bool {
	if !v.nav.Scene().Contact || v.form.Focus < 0 {
		return false
	}
	if v.form.Focus == FieldMessage {
		v.form.Type('\n')
		return true
	}
	return v.Submit() == nil
}
