package store

// dialect carries the statements that differ between database engines
type dialect struct {
	name       string
	driver     string
	schema     []string
	insert     string
	insertMeta string
}

const reviewColumns = `
  (publication_key, published_at, reviewer_name, reviewer_review_count, original_language,
   rating, experience_date, experience_day, experience_month, experience_year,
   title, content, is_invited, content_fingerprint, sentiment,
   has_reply, reply_timestamp, scrape_timestamp)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

var sqliteDialect = dialect{
	name:   "sqlite",
	driver: "sqlite",
	schema: []string{`
CREATE TABLE IF NOT EXISTS reviews (
  id                    INTEGER PRIMARY KEY AUTOINCREMENT,
  publication_key       TEXT    NOT NULL DEFAULT '',
  published_at          TEXT    NULL,
  reviewer_name         TEXT    NULL,
  reviewer_review_count INTEGER NULL,
  original_language     TEXT    NULL,
  rating                INTEGER NULL,
  experience_date       TEXT    NULL,
  experience_day        INTEGER NULL,
  experience_month      INTEGER NULL,
  experience_year       INTEGER NULL,
  title                 TEXT    NULL,
  content               TEXT    NULL,
  is_invited            INTEGER NOT NULL DEFAULT 0,
  content_fingerprint   TEXT    NOT NULL,
  sentiment             TEXT    NULL,
  has_reply             INTEGER NOT NULL DEFAULT 0,
  reply_timestamp       TEXT    NULL,
  scrape_timestamp      TEXT    NOT NULL,
  UNIQUE (content_fingerprint, publication_key)
)`, `
CREATE TABLE IF NOT EXISTS harvest_meta (
  name  TEXT PRIMARY KEY,
  value TEXT NOT NULL
)`},
	insert:     "INSERT INTO reviews" + reviewColumns + "\nON CONFLICT (content_fingerprint, publication_key) DO NOTHING",
	insertMeta: "INSERT INTO harvest_meta (name, value) VALUES (?, ?) ON CONFLICT (name) DO NOTHING",
}

var mysqlDialect = dialect{
	name:   "mysql",
	driver: "mysql",
	schema: []string{`
CREATE TABLE IF NOT EXISTS reviews (
  id                    BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  publication_key       VARCHAR(19)  NOT NULL DEFAULT '',
  published_at          DATETIME     NULL,
  reviewer_name         VARCHAR(255) NULL,
  reviewer_review_count INT          NULL,
  original_language     VARCHAR(8)   NULL,
  rating                TINYINT      NULL,
  experience_date       DATE         NULL,
  experience_day        TINYINT      NULL,
  experience_month      TINYINT      NULL,
  experience_year       SMALLINT     NULL,
  title                 TEXT         NULL,
  content               TEXT         NULL,
  is_invited            BOOLEAN      NOT NULL DEFAULT FALSE,
  content_fingerprint   CHAR(64)     NOT NULL,
  sentiment             VARCHAR(8)   NULL,
  has_reply             BOOLEAN      NOT NULL DEFAULT FALSE,
  reply_timestamp       DATETIME     NULL,
  scrape_timestamp      DATETIME     NOT NULL,
  UNIQUE KEY uq_reviews_identity (content_fingerprint, publication_key)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, `
CREATE TABLE IF NOT EXISTS harvest_meta (
  name  VARCHAR(64)  NOT NULL PRIMARY KEY,
  value VARCHAR(255) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	// id = id keeps the existing row untouched, so a duplicate reports 0 rows affected
	insert:     "INSERT INTO reviews" + reviewColumns + "\nON DUPLICATE KEY UPDATE id = id",
	insertMeta: "INSERT INTO harvest_meta (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE name = name",
}

const selectMetaSQL = `SELECT value FROM harvest_meta WHERE name = ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const reportTotalsSQL = `
SELECT
  COUNT(*),
  AVG(rating),
  COUNT(CASE WHEN has_reply THEN 1 END)
FROM reviews
%s
`

const reportSentimentSQL = `
SELECT COALESCE(sentiment, ''), COUNT(*)
FROM reviews
%s
GROUP BY COALESCE(sentiment, '')
`

const reportDaysSQL = `
SELECT SUBSTR(publication_key, 1, 10) AS day, COUNT(*), AVG(rating)
FROM reviews
%s
GROUP BY SUBSTR(publication_key, 1, 10)
ORDER BY day
`
