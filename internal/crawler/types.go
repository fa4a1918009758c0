package crawler

// Selectors contains CSS selectors for the review card template.
// Each field has a structural selector and, where the markup has drifted
// before, an attribute-based one.
type Selectors struct {
	// Page level
	CardList []string
	Article  string

	// Header
	HeaderTime    string
	PublishedTime string
	ConsumerName  string
	ConsumerAttr  string
	SubtleSpan    string
	ReviewCount   string
	Country       string

	// Body
	StarRating  string
	RatingAttr  string
	Experience  string
	Title       string
	TitleAttr   string
	Content     string
	ContentAttr string

	// Labels and reply
	InvitedLabel  string
	InvitedAttr   string
	Reply         string
	ReplyAttr     string
	ReplyTime     string
	ReplyTimeAttr string
}

// DefaultSelectors returns the selectors of the current listing template
func DefaultSelectors() Selectors {
	return Selectors{
		CardList: []string{
			"div.styles_cardWrapper__g8amG.styles_show__Z8n7u",
			"div[class*='styles_cardWrapper']",
			"article[data-service-review-card-paper]",
		},
		Article: "article",

		HeaderTime:    "div.styles_reviewCardInnerHeader__8Xqy8 div.typography_body-m__k2UI7.typography_appearance-subtle__PYOVM time",
		PublishedTime: "time[data-service-review-date-time-ago]",
		ConsumerName:  "span.typography_heading-xs__osRhC.typography_appearance-default__t8iAq.styles_consumerName__xKr9c",
		ConsumerAttr:  "[data-consumer-name-typography]",
		SubtleSpan:    "span.typography_body-m__k2UI7.typography_appearance-subtle__PYOVM",
		ReviewCount:   "[data-consumer-reviews-count-typography]",
		Country:       "[data-consumer-country-typography]",

		StarRating:  "div.star-rating_starRating__sdbkn.star-rating_medium__Oj7C9 img",
		RatingAttr:  "[data-service-review-rating]",
		Experience:  "[data-service-review-date-of-experience-typography]",
		Title:       "h2.typography_heading-s__f7029",
		TitleAttr:   "[data-service-review-title-typography]",
		Content:     "p.typography_body-l__v5JLj.typography_appearance-default__t8iAq",
		ContentAttr: "[data-service-review-text-typography]",

		InvitedLabel:  "div.styles_detailsIcon__n1OXF span[role='button'] span",
		InvitedAttr:   "[data-review-label-tooltip-trigger-typography]",
		Reply:         "div.styles_content__eJmhl",
		ReplyAttr:     "[data-service-review-business-reply-text-typography]",
		ReplyTime:     "div.styles_replyInfo__41_in time",
		ReplyTimeAttr: "time[data-service-review-business-reply-date-time-ago]",
	}
}
