package board

import (
	"strconv"

	"github.com/abhigyani/rankboard/internal/domain"
)

// Key schema. Trailing colons on the counter and index keys keep the
// namespace compatible with the classic article-voting layout.
const (
	idCounterKey  = "article:"
	timeIndexKey  = "time:"
	scoreIndexKey = "score:"

	fieldTitle  = "title"
	fieldLink   = "link"
	fieldPoster = "poster"
	fieldTime   = "time"
	fieldVotes  = "votes"
)

func articleKey(id int64) string {
	return "article:" + strconv.FormatInt(id, 10)
}

func votedKey(id int64) string {
	return "voted:" + strconv.FormatInt(id, 10)
}

func groupKey(group string) string {
	return "group:" + group
}

func member(id int64) string {
	return strconv.FormatInt(id, 10)
}

func indexKey(order domain.Order) string {
	if order == domain.OrderTime {
		return timeIndexKey
	}
	return scoreIndexKey
}

// viewKey is the deterministic cache key for a group-scoped view:
// the ordering index name concatenated with the group key.
func viewKey(order domain.Order, group string) string {
	return indexKey(order) + groupKey(group)
}
