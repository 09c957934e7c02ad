package converter

// StyleModel представляет запись таблицы styles в PostgreSQL.
type StyleModel struct {
	Position    int32  `db:"position"`
	ID          int64  `db:"id"`
	Gender      string `db:"gender"`
	Category    string `db:"category"`
	SubCategory string `db:"sub_category"`
	ArticleType string `db:"article_type"`
	BaseColour  string `db:"base_colour"`
	Season      string `db:"season"`
	Usage       string `db:"usage"`
	Year        string `db:"year"`
	DisplayName string `db:"display_name"`
}

// ImageLinkModel представляет запись таблицы image_links в PostgreSQL.
type ImageLinkModel struct {
	Filename string `db:"filename"`
	Link     string `db:"link"`
}
