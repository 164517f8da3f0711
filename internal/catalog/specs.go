package catalog

import (
	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
)

// SpecRow is one label/value line of a product specification table.
type SpecRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NotebookSpecRows builds the specification table for a notebook. Rows are
// computed from the instance alone, so concurrent calls never share state.
func NotebookSpecRows(n *models.Notebook) []SpecRow {
	return []SpecRow{
		{Label: "Диагональ", Value: n.Diagonal},
		{Label: "Тип дисплея", Value: n.DisplayType},
		{Label: "Частота процессора", Value: n.ProcessorFreq},
		{Label: "Оперативная память", Value: n.RAM},
		{Label: "Видеокарта", Value: n.Video},
		{Label: "Время работы аккумулятора", Value: n.TimeWithoutCharge},
	}
}

// SmartphoneSpecRows builds the specification table for a smartphone. The
// embedded-memory row appears only when the phone has an SD slot.
func SmartphoneSpecRows(s *models.Smartphone) []SpecRow {
	rows := []SpecRow{
		{Label: "Диагональ", Value: s.Diagonal},
		{Label: "Тип дисплея", Value: s.DisplayType},
		{Label: "Разрешение экрана", Value: s.Resolution},
		{Label: "Объем батареи", Value: s.AccumVolume},
		{Label: "Оперативная память", Value: s.RAM},
		{Label: "SD карта", Value: yesNo(s.SD)},
	}
	if s.SD {
		volume := ""
		if s.SDVolume != nil {
			volume = *s.SDVolume
		}
		rows = append(rows, SpecRow{Label: "Макс. объём встраиваемой памяти", Value: volume})
	}
	rows = append(rows,
		SpecRow{Label: "Камера (МП)", Value: s.MainCam},
		SpecRow{Label: "Фронтальная камера (МП)", Value: s.FrontCam},
	)
	return rows
}

func yesNo(value bool) string {
	if value {
		return "Да"
	}
	return "Нет"
}
