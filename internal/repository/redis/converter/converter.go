package converter

import "github.com/DRSN-tech/go-recommender/internal/domain"

func ToRedisModel(entry domain.CartEntry) CartEntryRedisModel {
	return CartEntryRedisModel{
		ImageURL:    entry.ImageURL,
		ProductName: entry.ProductName,
		Category:    entry.Category,
		Color:       entry.Color,
		Season:      entry.Season,
		Usage:       entry.Usage,
		Year:        entry.Year,
	}
}

func ToEntity(model CartEntryRedisModel) domain.CartEntry {
	return domain.CartEntry{
		ImageURL:    model.ImageURL,
		ProductName: model.ProductName,
		Category:    model.Category,
		Color:       model.Color,
		Season:      model.Season,
		Usage:       model.Usage,
		Year:        model.Year,
	}
}
