package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/model"
)

// Clock supplies the server time stamped on created and edited content.
type Clock func() time.Time

// SystemClock is the production Clock, in UTC.
func SystemClock() Clock {
	return func() time.Time { return time.Now().UTC() }
}

// ParsePage reads a 1-based page number; missing, non-numeric and
// non-positive values all mean page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func userSummary(u model.User) dto.UserSummary {
	return dto.UserSummary{ID: u.ID, Username: u.Username}
}
