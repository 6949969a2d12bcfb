package usecase

import (
	"strconv"
	"time"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// now is swapped in tests
var now = time.Now

// GenerateMessage builds a chat message stamped with the current time
func GenerateMessage(sender, text string) domain.Message {
	return domain.Message{
		Username:  sender,
		Text:      text,
		CreatedAt: now(),
	}
}

// GenerateLocationMessage builds a location message carrying a map link.
// Same shape as a chat message; only the delivery event differs.
func GenerateLocationMessage(sender, mapsURL string) domain.Message {
	return domain.Message{
		Username:  sender,
		Text:      mapsURL,
		CreatedAt: now(),
	}
}

// MapsURL formats a map link for the given coordinates
func MapsURL(latitude, longitude float64) string {
	return domain.MapsBaseURL +
		strconv.FormatFloat(latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(longitude, 'f', -1, 64)
}
