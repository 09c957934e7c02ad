package converter

// CartEntryRedisModel — элемент списка корзины в Redis.
type CartEntryRedisModel struct {
	ImageURL    string `json:"image_url"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	Year        string `json:"year"`
}
