package postgres

const listingColumns = `id, owner_id, title, description, category, location, status, views, interested, created_at, updated_at`

const insertListingSQL = `
INSERT INTO listings (
  id, owner_id, title, description, category, location,
  status, views, interested, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`

const getListingSQL = `
SELECT ` + listingColumns + `
FROM listings WHERE id = $1
`

const updateListingSQL = `
UPDATE listings SET
  title=$2, description=$3, category=$4, location=$5,
  status=$6, views=$7, interested=$8, updated_at=$9
WHERE id=$1
`

const deleteListingSQL = `DELETE FROM listings WHERE id = $1`

const registerInterestSQL = `
UPDATE listings SET
  interested = array_append(interested, $2),
  views = views + 1,
  updated_at = $3
WHERE id = $1
RETURNING ` + listingColumns

const listListingsByOwnerSQL = `
SELECT ` + listingColumns + `
FROM listings WHERE owner_id = $1
ORDER BY created_at ASC, id ASC
`

const countActiveByOwnerSQL = `SELECT COUNT(*) FROM listings WHERE owner_id = $1 AND status = 'active'`

const insertRatingSQL = `
INSERT INTO ratings (id, exchange_id, rated_user_id, rater_user_id, rating, comment, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`

const getRatingSQL = `
SELECT id, exchange_id, rated_user_id, rater_user_id, rating, comment, created_at
FROM ratings WHERE id = $1
`

const deleteRatingSQL = `DELETE FROM ratings WHERE id = $1`

const listRatingsByRatedSQL = `
SELECT id, exchange_id, rated_user_id, rater_user_id, rating, comment, created_at
FROM ratings WHERE rated_user_id = $1
ORDER BY created_at ASC, id ASC
`

const deleteBadgesSQL = `DELETE FROM badges WHERE user_id = $1`

const insertBadgeSQL = `
INSERT INTO badges (user_id, kind, name, description, earned_at)
VALUES ($1,$2,$3,$4,$5)
`

const listBadgesSQL = `
SELECT user_id, kind, name, description, earned_at
FROM badges WHERE user_id = $1
ORDER BY earned_at ASC, kind ASC
`

const getSubscriptionSQL = `
SELECT user_id, plan_id, start_date, end_date, is_active, auto_renew
FROM subscriptions WHERE user_id = $1
`

const upsertSubscriptionSQL = `
INSERT INTO subscriptions (user_id, plan_id, start_date, end_date, is_active, auto_renew)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (user_id) DO UPDATE SET
  plan_id = EXCLUDED.plan_id,
  start_date = EXCLUDED.start_date,
  end_date = EXCLUDED.end_date,
  is_active = EXCLUDED.is_active,
  auto_renew = EXCLUDED.auto_renew
`

const conversationColumns = `id, listing_id, participants, last_message, last_message_at, exchange_validated, created_at`

const insertConversationSQL = `
INSERT INTO conversations (` + conversationColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`

const insertUnreadSQL = `
INSERT INTO conversation_unread (conversation_id, user_id, unread)
VALUES ($1,$2,$3)
`

const getConversationSQL = `
SELECT ` + conversationColumns + `
FROM conversations WHERE id = $1
`

const findConversationSQL = `
SELECT ` + conversationColumns + `
FROM conversations WHERE listing_id = $1 AND participants = $2
LIMIT 1
`

const listConversationsByParticipantSQL = `
SELECT ` + conversationColumns + `
FROM conversations WHERE $1 = ANY(participants)
ORDER BY COALESCE(last_message_at, created_at) DESC, id ASC
`

const listUnreadSQL = `
SELECT conversation_id, user_id, unread
FROM conversation_unread WHERE conversation_id = ANY($1)
`

const insertMessageSQL = `
INSERT INTO messages (id, conversation_id, sender_id, text, created_at)
VALUES ($1,$2,$3,$4,$5)
`

const touchConversationSQL = `
UPDATE conversations SET last_message=$2, last_message_at=$3
WHERE id=$1
`

const bumpUnreadSQL = `
UPDATE conversation_unread SET unread = unread + 1
WHERE conversation_id = $1 AND user_id <> $2
`

const conversationExistsSQL = `SELECT EXISTS(SELECT 1 FROM conversations WHERE id = $1)`

const listMessagesSQL = `
SELECT id, conversation_id, sender_id, text, created_at
FROM messages WHERE conversation_id = $1
ORDER BY created_at ASC, id ASC
`

const markReadSQL = `
UPDATE conversation_unread SET unread = 0
WHERE conversation_id = $1 AND user_id = $2
`

const markValidatedSQL = `UPDATE conversations SET exchange_validated = TRUE WHERE id = $1`
