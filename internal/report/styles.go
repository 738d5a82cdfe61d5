package report

import "github.com/xuri/excelize/v2"

type styles struct {
	header int
	pass   int
	fail   int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"003366"}},
		Border: border,
	})
	if err != nil {
		return st, err
	}

	st.pass, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "155724"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D4EDDA"}},
	})
	if err != nil {
		return st, err
	}

	st.fail, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "721C24"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F8D7DA"}},
	})
	return st, err
}
