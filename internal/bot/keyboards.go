package bot

import (
	"fmt"

	"github.com/pdfdesk/pdfdesk/internal/session"
)

// Inline button tags. Watermark position tags carry the grid cell as two
// digits, e.g. "wm:pos:02" for top right.
const (
	cbPagesRotate  = "pages:rotate"
	cbPagesDelete  = "pages:delete"
	cbPagesExtract = "pages:extract"
	cbPagesMenu    = "pages:menu"
	cbPagesCancel  = "pages:cancel"

	cbAngleCW   = "angle:90"
	cbAngleCCW  = "angle:-90"
	cbAngleFlip = "angle:180"

	cbWatermarkPos    = "wm:pos:"
	cbWatermarkMosaic = "wm:mosaic"
	cbWatermarkApply  = "wm:apply"
)

// mainKeyboard is the persistent workflow picker.
func mainKeyboard(m *Messages) *Keyboard {
	return &Keyboard{Rows: [][]Button{
		{{Label: m.MenuCompress}, {Label: m.MenuMerge}},
		{{Label: m.MenuSplit}, {Label: m.MenuPDFText}},
		{{Label: m.MenuDocToPDF}, {Label: m.MenuOCR}},
		{{Label: m.MenuSearchable}, {Label: m.MenuWatermark}},
		{{Label: m.MenuPages}},
	}}
}

// pagesMenuKeyboard offers the three page-editor operations.
func pagesMenuKeyboard(m *Messages) *Keyboard {
	return &Keyboard{Inline: true, Rows: [][]Button{
		{
			{Label: m.BtnRotate, Data: cbPagesRotate},
			{Label: m.BtnDelete, Data: cbPagesDelete},
			{Label: m.BtnExtract, Data: cbPagesExtract},
		},
		{{Label: m.BtnCancel, Data: cbPagesCancel}},
	}}
}

func angleKeyboard(m *Messages) *Keyboard {
	return &Keyboard{Inline: true, Rows: [][]Button{
		{
			{Label: "↺ 90°", Data: cbAngleCCW},
			{Label: "↻ 90°", Data: cbAngleCW},
			{Label: "180°", Data: cbAngleFlip},
		},
		{{Label: m.BtnBack, Data: cbPagesMenu}},
	}}
}

var anchorLabels = [3][3]string{
	{"↖", "↑", "↗"},
	{"←", "·", "→"},
	{"↙", "↓", "↘"},
}

// watermarkKeyboard renders the 3x3 position grid with the current selection
// marked, plus the tiling toggle and the apply button. Re-rendering with the
// same draft yields the same keyboard, so repeated presses are idempotent.
func watermarkKeyboard(m *Messages, draft *session.WatermarkDraft) *Keyboard {
	kb := &Keyboard{Inline: true}
	for row := 0; row < 3; row++ {
		var line []Button
		for col := 0; col < 3; col++ {
			label := anchorLabels[row][col]
			if !draft.Mosaic && draft.Row == row && draft.Col == col {
				label = "✓"
			}
			line = append(line, Button{
				Label: label,
				Data:  fmt.Sprintf("%s%d%d", cbWatermarkPos, row, col),
			})
		}
		kb.Rows = append(kb.Rows, line)
	}

	mosaic := m.BtnMosaicOff
	if draft.Mosaic {
		mosaic = m.BtnMosaicOn
	}
	kb.Rows = append(kb.Rows,
		[]Button{{Label: mosaic, Data: cbWatermarkMosaic}},
		[]Button{{Label: m.BtnApply, Data: cbWatermarkApply}},
	)
	return kb
}
