package crawler

const fullCard = `
<div class="styles_cardWrapper__g8amG styles_show__Z8n7u">
  <article data-service-review-card-paper="true">
    <div class="styles_reviewCardInnerHeader__8Xqy8">
      <span class="typography_heading-xs__osRhC typography_appearance-default__t8iAq styles_consumerName__xKr9c">Marie Dupont</span>
      <span class="typography_body-m__k2UI7 typography_appearance-subtle__PYOVM">FR</span>
      <span class="typography_body-m__k2UI7 typography_appearance-subtle__PYOVM">3 avis</span>
      <div class="typography_body-m__k2UI7 typography_appearance-subtle__PYOVM">
        <time datetime="2024-03-05T10:15:30.000Z">5 mars 2024</time>
      </div>
    </div>
    <div class="star-rating_starRating__sdbkn star-rating_medium__Oj7C9">
      <img alt="Noté 4 sur 5 étoiles" src="stars-4.svg">
    </div>
    <div class="styles_detailsIcon__n1OXF">
      <span role="button"><span>Avis sur invitation</span></span>
    </div>
    <h2 class="typography_heading-s__f7029">Super banque</h2>
    <p class="typography_body-l__v5JLj typography_appearance-default__t8iAq">Compte ouvert en dix minutes.</p>
    <p><span class="typography_body-m__k2UI7 typography_appearance-subtle__PYOVM">Date de l'expérience : 2 mars 2024</span></p>
    <div class="styles_content__eJmhl">Merci pour votre retour !</div>
    <div class="styles_replyInfo__41_in"><time datetime="2024-03-06T08:00:00.000Z">6 mars 2024</time></div>
  </article>
</div>`

// attributeCard only carries the data-* hooks of the template
const attributeCard = `
<article data-service-review-card-paper="true">
  <span data-consumer-name-typography="true">Jean Martin</span>
  <span data-consumer-reviews-count-typography="true">12 avis</span>
  <span data-consumer-country-typography="true">BE</span>
  <time data-service-review-date-time-ago="true" datetime="2023-11-20T18:42:07.000Z">il y a 2 jours</time>
  <div data-service-review-rating="2"></div>
  <h2 data-service-review-title-typography="true">Frais cachés</h2>
  <p data-service-review-text-typography="true">Des frais  apparaissent
     sans prévenir.</p>
  <p data-service-review-date-of-experience-typography="true">1er nov. 2023</p>
  <span data-review-label-tooltip-trigger-typography="true">Non sollicité</span>
</article>`

// listingPage wraps the given cards in a minimal listing document
func listingPage(cards ...string) string {
	html := `<html><head><meta charset="utf-8"></head><body><main>`
	for _, c := range cards {
		html += c
	}
	return html + `</main></body></html>`
}
