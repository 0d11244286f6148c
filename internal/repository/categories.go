package repository

import "github.com/julianstephens/aisle/internal/models"

func setCategoryOrder[C comparable](categories map[C]models.CategorySetting, cat C, order int) map[C]models.CategorySetting {
	if categories == nil {
		categories = make(map[C]models.CategorySetting)
	}
	setting := categories[cat]
	setting.Order = order
	categories[cat] = setting
	return categories
}

// A category without an entry is treated as disabled, so the first toggle enables it.
func toggleCategory[C comparable](categories map[C]models.CategorySetting, cat C) map[C]models.CategorySetting {
	if categories == nil {
		categories = make(map[C]models.CategorySetting)
	}
	setting := categories[cat]
	setting.IsEnabled = !setting.IsEnabled
	categories[cat] = setting
	return categories
}
