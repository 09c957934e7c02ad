package http

import (
	"strings"

	"github.com/DRSN-tech/go-recommender/internal/domain"
)

// LangRU — единственный поддерживаемый язык подписей. Без lang значения отдаются как есть.
const LangRU = "ru"

// Словари подписей для русского интерфейса. Неизвестные значения не переводятся.
var ruLabels = map[domain.Facet]map[string]string{
	domain.FacetCategory: {
		"Apparel":       "Одежда",
		"Accessories":   "Аксессуары",
		"Footwear":      "Обувь",
		"Personal Care": "Уход за собой",
		"Free Items":    "Подарочные товары",
	},
	domain.FacetSubCategory: {
		"Flip Flops":               "Шлёпанцы",
		"Sandal":                   "Сандалии",
		"Skin Care":                "Уход за кожей",
		"Saree":                    "Сари",
		"Free Gifts":               "Подарочные товары",
		"Ties":                     "Галстуки",
		"Accessories":              "Аксессуары",
		"Shoe Accessories":         "Аксессуары для обуви",
		"Lips":                     "Помада",
		"Apparel Set":              "Комплект одежды",
		"Scarves":                  "Шарфы",
		"Innerwear":                "Нижнее бельё",
		"Topwear":                  "Верхняя одежда",
		"Bottomwear":               "Низ одежды",
		"Loungewear and Nightwear": "Одежда для отдыха и ночная одежда",
		"Dress":                    "Платья",
		"Fragrance":                "Парфюмерия",
		"Makeup":                   "Макияж",
		"Nails":                    "Уход за ногтями",
		"Eyewear":                  "Очки",
		"Watches":                  "Часы",
		"Bags":                     "Сумки",
		"Jewellery":                "Ювелирные изделия",
		"Belts":                    "Ремни",
		"Wallets":                  "Кошельки",
		"Socks":                    "Носки",
		"Cufflinks":                "Запонки",
		"Headwear":                 "Головные уборы",
	},
	domain.FacetGender: {
		"Men":    "Мужчины",
		"Women":  "Женщины",
		"Unisex": "Унисекс",
		"Boys":   "Мальчики",
		"Girls":  "Девочки",
	},
	domain.FacetSeason: {
		"Summer": "Лето",
		"Winter": "Зима",
		"Fall":   "Осень",
		"Spring": "Весна",
	},
	domain.FacetUsage: {
		"Casual": "Повседневный стиль",
		"Sports": "Спортивный стиль",
		"Ethnic": "Этнический стиль",
		"Formal": "Официальный стиль",
		"Travel": "Путешествия",
	},
	domain.FacetColor: {
		"White":             "Белый",
		"Grey":              "Серый",
		"Black":             "Чёрный",
		"Silver":            "Серебристый",
		"Blue":              "Синий",
		"Brown":             "Коричневый",
		"Green":             "Зелёный",
		"Red":               "Красный",
		"Lavender":          "Лаванда",
		"Beige":             "Бежевый",
		"Orange":            "Оранжевый",
		"Gold":              "Золотой",
		"Cream":             "Кремовый",
		"Pink":              "Розовый",
		"Navy Blue":         "Тёмно-синий",
		"Peach":             "Персиковый",
		"Yellow":            "Жёлтый",
		"Steel":             "Стальной",
		"Mustard":           "Горчичный",
		"Maroon":            "Тёмно-вишнёвый",
		"Teal":              "Тёмно-бирюзовый",
		"Off White":         "Не совсем белый",
		"Purple":            "Фиолетовый",
		"Skin":              "Кожа",
		"Turquoise Blue":    "Бирюзовый",
		"Copper":            "Медный",
		"Charcoal":          "Угольный",
		"Olive":             "Оливковый",
		"Magenta":           "Пурпурный",
		"Rust":              "Ржавый",
		"Grey Melange":      "Серый меланж",
		"Multi":             "Мультицветный",
		"Fluorescent Green": "Флуоресцентный зелёный",
	},
}

// ruValues — обратные словари: подпись -> сырое значение.
var ruValues = reverseLabels(ruLabels)

func reverseLabels(labels map[domain.Facet]map[string]string) map[domain.Facet]map[string]string {
	res := make(map[domain.Facet]map[string]string, len(labels))
	for f, dict := range labels {
		rev := make(map[string]string, len(dict))
		for raw, label := range dict {
			rev[label] = raw
		}
		res[f] = rev
	}

	return res
}

// Translator переводит сырые значения фасетов в подписи выбранного языка и обратно.
type Translator struct {
	lang string
}

func NewTranslator(lang string) Translator {
	return Translator{lang: strings.ToLower(strings.TrimSpace(lang))}
}

func (t Translator) active() bool {
	return t.lang == LangRU
}

// Label возвращает подпись значения. Неизвестные значения и пустой язык возвращают value без изменений.
func (t Translator) Label(f domain.Facet, value string) string {
	if !t.active() {
		return value
	}
	if label, ok := ruLabels[f][value]; ok {
		return label
	}

	return value
}

// Value принимает сырое значение или подпись и возвращает сырое значение.
func (t Translator) Value(f domain.Facet, labelOrValue string) string {
	if !t.active() {
		return labelOrValue
	}
	if raw, ok := ruValues[f][labelOrValue]; ok {
		return raw
	}

	return labelOrValue
}
